package codegen

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/chazu/protobind/pkg/capability"
	"github.com/chazu/protobind/pkg/decl"
)

// runtimeContracts are the contracts declared as interfaces in xproto.
var runtimeContracts = map[string]bool{
	capability.ContractEvent:   true,
	capability.ContractError:   true,
	capability.ContractRequest: true,
	capability.ContractXidType: true,
}

var primitiveTypes = map[string]func() *jen.Statement{
	"u8":   jen.Uint8,
	"u16":  jen.Uint16,
	"u32":  jen.Uint32,
	"u64":  jen.Uint64,
	"i8":   jen.Int8,
	"i16":  jen.Int16,
	"i32":  jen.Int32,
	"i64":  jen.Int64,
	"bool": jen.Bool,
}

// lowered is the Go code for one declaration plus the identifiers it defines:
// package-level names, and "Type.Method" for methods.
type lowered struct {
	code   []jen.Code
	claims []string
}

func (l *lowered) add(code jen.Code, claim string) error {
	for _, c := range l.claims {
		if c == claim {
			return fmt.Errorf("%s defined twice", claim)
		}
	}
	l.code = append(l.code, code)
	l.claims = append(l.claims, claim)
	return nil
}

func (g *generator) lowerDeclaration(d decl.Declaration) (*lowered, error) {
	if len(d.Members) == 0 {
		return nil, fmt.Errorf("declaration has no members")
	}

	out := &lowered{}
	if a := g.assertion(d); a != nil {
		out.code = append(out.code, a)
	}

	for _, m := range d.Members {
		var err error
		switch m := m.(type) {
		case decl.Constant:
			err = g.lowerConstant(out, d, m)
		case decl.AssociatedType:
			err = g.lowerAssociatedType(out, d, m)
		case *decl.Method:
			err = g.lowerMethod(out, d, m)
		default:
			err = fmt.Errorf("unsupported member %T", m)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// assertion returns a compile-time check that the type satisfies the runtime
// interface for its contract, or nil when xproto has no such interface.
func (g *generator) assertion(d decl.Declaration) jen.Code {
	name := d.Contract.Name()
	if !runtimeContracts[name] || len(d.Contract.Segments) != 1 {
		return nil
	}

	iface := jen.Qual(g.opts.RuntimePackage, name)
	if name == capability.ContractRequest {
		reply, ok := associatedType(d, "Reply")
		if !ok {
			return nil
		}
		iface = iface.Types(g.goType(reply, d.SelfType))
	}

	value := jen.Id(d.SelfType).Values()
	if hasRefReceiver(d) {
		value = jen.Parens(jen.Op("*").Id(d.SelfType)).Call(jen.Nil())
	}
	return jen.Var().Id("_").Add(iface).Op("=").Add(value)
}

func (g *generator) lowerConstant(out *lowered, d decl.Declaration, c decl.Constant) error {
	constName := d.SelfType + memberName(c.Name)
	method := memberName(c.Name)

	if err := out.add(
		jen.Const().Id(constName).Add(g.goType(c.Type, d.SelfType)).Op("=").Lit(int(c.Value.Value)),
		constName,
	); err != nil {
		return err
	}
	return out.add(
		jen.Func().Params(jen.Id(d.SelfType)).Id(method).Params().Add(g.goType(c.Type, d.SelfType)).Block(
			jen.Return(jen.Id(constName)),
		),
		d.SelfType+"."+method,
	)
}

func (g *generator) lowerAssociatedType(out *lowered, d decl.Declaration, a decl.AssociatedType) error {
	alias := d.SelfType + memberName(a.Name)
	method := memberName(a.Name)
	target := g.goType(a.Value, d.SelfType)

	if err := out.add(jen.Type().Id(alias).Op("=").Add(target), alias); err != nil {
		return err
	}
	return out.add(
		jen.Func().Params(jen.Id(d.SelfType)).Id(method).Params().Op("*").Add(g.goType(a.Value, d.SelfType)).Block(
			jen.Return(jen.New(g.goType(a.Value, d.SelfType))),
		),
		d.SelfType+"."+method,
	)
}

func (g *generator) lowerMethod(out *lowered, d decl.Declaration, m *decl.Method) error {
	self := d.SelfType
	recv := receiverName(self, m.Params)

	fn := jen.Func()
	var name, claim string
	switch m.Receiver {
	case decl.ReceiverRef:
		fn.Params(jen.Id(recv).Op("*").Id(self))
		name = memberName(m.Name)
		claim = self + "." + name
	case decl.ReceiverOwned:
		fn.Params(jen.Id(recv).Id(self))
		name = memberName(m.Name)
		claim = self + "." + name
	default:
		name = staticName(self, m.Name, d.Contract)
		claim = name
	}

	params := make([]jen.Code, len(m.Params))
	for i, p := range m.Params {
		t := g.goType(p.Type, self)
		if p.Usage == decl.ParamRef {
			t = jen.Op("*").Add(t)
		}
		params[i] = jen.Id(paramName(p.Name)).Add(t)
	}
	fn.Id(name).Params(params...)
	if m.Returns != nil {
		fn.Add(g.goType(*m.Returns, self))
	}

	body := make([]jen.Code, 0, len(m.Body))
	for _, s := range m.Body {
		code, err := g.lowerStatement(self, recv, m, s)
		if err != nil {
			return fmt.Errorf("%s: %w", m.Name, err)
		}
		body = append(body, code)
	}
	return out.add(fn.Block(body...), claim)
}

func (g *generator) lowerStatement(self, recv string, m *decl.Method, s decl.Statement) (jen.Code, error) {
	field := g.opts.ResourceField

	switch s := s.(type) {
	case decl.ReadResourceId:
		if !m.HasReceiver() {
			return nil, fmt.Errorf("reads a resource id without a receiver")
		}
		return jen.Return(jen.Id(recv).Dot(field)), nil
	case decl.ConstructFromResourceId:
		if len(m.Params) == 0 {
			return nil, fmt.Errorf("constructs %s without an id parameter", self)
		}
		return jen.Return(jen.Id(self).Values(jen.Dict{
			jen.Id(field): jen.Id(paramName(m.Params[0].Name)),
		})), nil
	case decl.ReturnNamedVariant:
		return jen.Return(jen.Id(variantName(s.Owner, s.Variant))), nil
	case decl.RemapResourceFields:
		if len(m.Params) == 0 {
			return nil, fmt.Errorf("converts %s to %s without a source parameter", s.OldType, s.NewType)
		}
		return jen.Return(jen.Id(s.NewType).Values(jen.Dict{
			jen.Id(field): jen.Id(paramName(m.Params[0].Name)).Dot(field),
		})), nil
	default:
		return nil, fmt.Errorf("unsupported statement %T", s)
	}
}

// goType renders a type reference. Self resolves to the implementing type.
func (g *generator) goType(t decl.TypeRef, self string) *jen.Statement {
	if t.IsSelf() {
		return jen.Id(self)
	}

	var s *jen.Statement
	if prim, ok := primitiveTypes[t.Name]; ok {
		s = prim()
	} else if t.Name == capability.ResourceIdType {
		s = jen.Qual(g.opts.RuntimePackage, capability.ResourceIdType)
	} else {
		s = jen.Id(t.Name)
	}

	if t.Arg != nil {
		s.Types(g.goType(*t.Arg, self))
	}
	return s
}

func associatedType(d decl.Declaration, name string) (decl.TypeRef, bool) {
	for _, m := range d.Members {
		if a, ok := m.(decl.AssociatedType); ok && a.Name == name {
			return a.Value, true
		}
	}
	return decl.TypeRef{}, false
}

func hasRefReceiver(d decl.Declaration) bool {
	for _, m := range d.Members {
		if mm, ok := m.(*decl.Method); ok && mm.Receiver == decl.ReceiverRef {
			return true
		}
	}
	return false
}
