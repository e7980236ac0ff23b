// Package codegen renders capability declarations as Go source.
package codegen

import (
	"bytes"
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/chazu/protobind/pkg/decl"
)

// Options controls rendering.
type Options struct {
	Package        string // package clause of the generated file
	RuntimePackage string // import path of the xproto runtime
	ResourceField  string // struct field holding the resource id
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		Package:        "protocol",
		RuntimePackage: "github.com/chazu/protobind/xproto",
		ResourceField:  "xid",
	}
}

// Result contains the generated code and any warnings.
type Result struct {
	Code     string
	Warnings []string
	Skipped  []SkippedDeclaration
	Err      error // set when the file could not be rendered
}

// SkippedDeclaration records a declaration that was left out of the output.
type SkippedDeclaration struct {
	Type     string
	Contract string
	Reason   string
}

// Generate renders decls into a single Go file.
func Generate(decls []decl.Declaration, opts Options) *Result {
	def := DefaultOptions()
	if opts.Package == "" {
		opts.Package = def.Package
	}
	if opts.RuntimePackage == "" {
		opts.RuntimePackage = def.RuntimePackage
	}
	if opts.ResourceField == "" {
		opts.ResourceField = def.ResourceField
	}

	g := &generator{
		opts:     opts,
		decls:    decls,
		claimed:  map[string]string{},
		warnings: []string{},
		skipped:  []SkippedDeclaration{},
	}
	return g.generate()
}

type generator struct {
	opts     Options
	decls    []decl.Declaration
	claimed  map[string]string // generated identifier -> declaration that owns it
	warnings []string
	skipped  []SkippedDeclaration
}

func (g *generator) generate() *Result {
	f := jen.NewFile(g.opts.Package)
	f.HeaderComment("Code generated by protobind. DO NOT EDIT.")
	f.ImportName(g.opts.RuntimePackage, "xproto")

	for _, d := range g.decls {
		owner := d.SelfType + ": " + d.Contract.String()

		lowered, err := g.lowerDeclaration(d)
		if err != nil {
			g.skip(d, err.Error())
			continue
		}
		if clash, other := g.firstClash(lowered.claims); clash != "" {
			g.skip(d, fmt.Sprintf("%s already generated for %s", clash, other))
			continue
		}
		for _, c := range lowered.claims {
			g.claimed[c] = owner
		}

		f.Comment(fmt.Sprintf("%s implements %s.", d.SelfType, d.Contract))
		for _, code := range lowered.code {
			f.Add(code)
			f.Line()
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Render(buf); err != nil {
		return &Result{
			Code:     fmt.Sprintf("// Error rendering: %v", err),
			Warnings: g.warnings,
			Skipped:  g.skipped,
			Err:      fmt.Errorf("render %s: %w", g.opts.Package, err),
		}
	}

	return &Result{
		Code:     buf.String(),
		Warnings: g.warnings,
		Skipped:  g.skipped,
	}
}

func (g *generator) skip(d decl.Declaration, reason string) {
	g.skipped = append(g.skipped, SkippedDeclaration{
		Type:     d.SelfType,
		Contract: d.Contract.String(),
		Reason:   reason,
	})
	g.warnings = append(g.warnings, fmt.Sprintf("skipped %s for %s: %s", d.Contract, d.SelfType, reason))
}

func (g *generator) firstClash(claims []string) (string, string) {
	for _, c := range claims {
		if other, ok := g.claimed[c]; ok {
			return c, other
		}
	}
	return "", ""
}
