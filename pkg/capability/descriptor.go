// Package capability decides which protocol contracts a generated type
// satisfies and emits the declarations that make it conform.
package capability

import (
	"fmt"

	"github.com/chazu/protobind/pkg/decl"
)

// Kind identifies a descriptor variant.
type Kind int

const (
	KindEvent Kind = iota
	KindError
	KindRequest
	KindResourceIdentifier
	KindEnumDefault
	KindLegacyConversion
)

func (k Kind) String() string {
	switch k {
	case KindEvent:
		return "event"
	case KindError:
		return "error"
	case KindRequest:
		return "request"
	case KindResourceIdentifier:
		return "xid"
	case KindEnumDefault:
		return "default"
	case KindLegacyConversion:
		return "from"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps a manifest kind name back to its Kind.
func ParseKind(s string) (Kind, bool) {
	for k := KindEvent; k <= KindLegacyConversion; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// Descriptor is a tagged union over the capabilities a type can have.
type Descriptor interface {
	Kind() Kind
	capability()
}

// Event marks a type as a protocol event with the given opcode.
type Event struct {
	Opcode uint64
}

func (Event) Kind() Kind  { return KindEvent }
func (Event) capability() {}

// Error marks a type as a protocol error with the given opcode.
type Error struct {
	Opcode uint64
}

func (Error) Kind() Kind  { return KindError }
func (Error) capability() {}

// Request marks a type as a request whose reply is Reply.
type Request struct {
	Opcode uint64
	Reply  decl.TypeRef
}

func (Request) Kind() Kind  { return KindRequest }
func (Request) capability() {}

// ResourceIdentifier marks a type as a wrapper around a resource id.
type ResourceIdentifier struct{}

func (ResourceIdentifier) Kind() Kind  { return KindResourceIdentifier }
func (ResourceIdentifier) capability() {}

// EnumDefaultValue gives an enum a default variant.
type EnumDefaultValue struct {
	Variant string
}

func (EnumDefaultValue) Kind() Kind  { return KindEnumDefault }
func (EnumDefaultValue) capability() {}

// LegacyConversion makes a type constructible from the older type From.
type LegacyConversion struct {
	From string
}

func (LegacyConversion) Kind() Kind  { return KindLegacyConversion }
func (LegacyConversion) capability() {}
