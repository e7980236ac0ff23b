// Package decl defines the renderer-agnostic declaration tree produced by the
// capability emitter. A Declaration describes one contract implementation for
// one generated type: the contract path and the ordered members that satisfy it.
// Nothing in this package knows how to print code; backends walk the tree.
package decl

import "strings"

// SelfName is the placeholder type name for the implementing type.
const SelfName = "Self"

// TypeRef is a reference to a named type, optionally instantiated over one
// type argument.
type TypeRef struct {
	Name string
	Arg  *TypeRef // nil for a plain named type
}

// Named returns a reference to a plain named type.
func Named(name string) TypeRef {
	return TypeRef{Name: name}
}

// Generic returns a reference to name instantiated over arg.
func Generic(name string, arg TypeRef) TypeRef {
	return TypeRef{Name: name, Arg: &arg}
}

// Self returns a reference to the implementing type.
func Self() TypeRef {
	return TypeRef{Name: SelfName}
}

// IsSelf reports whether the reference names the implementing type.
func (t TypeRef) IsSelf() bool {
	return t.Name == SelfName && t.Arg == nil
}

// IsGeneric reports whether the reference carries a type argument.
func (t TypeRef) IsGeneric() bool {
	return t.Arg != nil
}

func (t TypeRef) String() string {
	if t.Arg == nil {
		return t.Name
	}
	return t.Name + "<" + t.Arg.String() + ">"
}

// Path names the contract a declaration implements, e.g. "Event" or
// "From<Window>".
type Path struct {
	Segments []string
	Args     []TypeRef
}

// PathOf builds a path from "::"-separated text with no generic arguments.
func PathOf(s string) Path {
	return Path{Segments: strings.Split(s, "::")}
}

// Name returns the last segment of the path.
func (p Path) Name() string {
	if len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[len(p.Segments)-1]
}

func (p Path) String() string {
	s := strings.Join(p.Segments, "::")
	if len(p.Args) == 0 {
		return s
	}
	args := make([]string, len(p.Args))
	for i, a := range p.Args {
		args[i] = a.String()
	}
	return s + "<" + strings.Join(args, ", ") + ">"
}

// Declaration is one contract implementation for one type.
type Declaration struct {
	SelfType string
	Contract Path
	Members  []Member
}

// Member is a constant, associated type or method inside a Declaration.
type Member interface {
	declMember()
	MemberName() string
}

// Constant is a typed constant member.
type Constant struct {
	Name  string
	Type  TypeRef
	Value Literal
}

func (Constant) declMember()          {}
func (c Constant) MemberName() string { return c.Name }

// AssociatedType binds a type name inside the contract.
type AssociatedType struct {
	Name  string
	Value TypeRef
}

func (AssociatedType) declMember()          {}
func (a AssociatedType) MemberName() string { return a.Name }

// Literal is an unsigned integer literal with the width it is emitted at.
type Literal struct {
	Value uint64
	Bits  int
}

// U8 narrows v to an 8-bit literal. Higher bits are dropped.
func U8(v uint64) Literal {
	return Literal{Value: uint64(uint8(v)), Bits: 8}
}
