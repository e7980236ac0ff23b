// Package model decodes the semantic-model hand-off: the list of generated
// types and the capabilities each of them must implement.
package model

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/chazu/protobind/pkg/capability"
	"github.com/chazu/protobind/pkg/decl"
)

// Manifest is the upstream hand-off document.
type Manifest struct {
	Types []Type `json:"types" yaml:"types"`
}

// Type is one generated type.
type Type struct {
	Name         string       `json:"name" yaml:"name"`
	Variants     []string     `json:"variants,omitempty" yaml:"variants,omitempty"` // enum types only
	Capabilities []Capability `json:"capabilities" yaml:"capabilities"`
}

// Capability is the serialized form of a capability.Descriptor.
type Capability struct {
	Kind    string  `json:"kind" yaml:"kind"`
	Opcode  *uint64 `json:"opcode,omitempty" yaml:"opcode,omitempty"`
	Reply   string  `json:"reply,omitempty" yaml:"reply,omitempty"`
	Variant string  `json:"variant,omitempty" yaml:"variant,omitempty"`
	From    string  `json:"from,omitempty" yaml:"from,omitempty"`
}

// Parse reads a JSON manifest from r.
func Parse(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// ParseBytes parses a JSON manifest.
func ParseBytes(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// ParseYAML parses a YAML manifest.
func ParseYAML(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// Descriptor converts the serialized capability.
func (c Capability) Descriptor() (capability.Descriptor, error) {
	kind, ok := capability.ParseKind(c.Kind)
	if !ok {
		return nil, fmt.Errorf("unknown capability kind %q", c.Kind)
	}

	switch kind {
	case capability.KindEvent, capability.KindError, capability.KindRequest:
		if c.Opcode == nil {
			return nil, fmt.Errorf("%s capability requires an opcode", kind)
		}
		switch kind {
		case capability.KindEvent:
			return capability.Event{Opcode: *c.Opcode}, nil
		case capability.KindError:
			return capability.Error{Opcode: *c.Opcode}, nil
		}
		return capability.Request{Opcode: *c.Opcode, Reply: decl.Named(c.Reply)}, nil
	case capability.KindResourceIdentifier:
		return capability.ResourceIdentifier{}, nil
	case capability.KindEnumDefault:
		return capability.EnumDefaultValue{Variant: c.Variant}, nil
	case capability.KindLegacyConversion:
		return capability.LegacyConversion{From: c.From}, nil
	}
	return nil, fmt.Errorf("unhandled capability kind %q", c.Kind)
}

// Pairs flattens the manifest into (type, descriptor) pairs in document order.
func (m *Manifest) Pairs() ([]capability.Pair, error) {
	var pairs []capability.Pair
	for _, t := range m.Types {
		for i, c := range t.Capabilities {
			d, err := c.Descriptor()
			if err != nil {
				return nil, fmt.Errorf("type %s capability %d: %w", t.Name, i, err)
			}
			pairs = append(pairs, capability.Pair{TypeName: t.Name, Descriptor: d})
		}
	}
	return pairs, nil
}

// Variants returns the declared variants of every enum type in the manifest.
func (m *Manifest) Variants() capability.Variants {
	v := capability.Variants{}
	for _, t := range m.Types {
		if len(t.Variants) > 0 {
			v[t.Name] = append(v[t.Name], t.Variants...)
		}
	}
	return v
}
