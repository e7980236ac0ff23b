package capability

import (
	"fmt"

	"github.com/chazu/protobind/pkg/decl"
)

// Contract names.
const (
	ContractEvent   = "Event"
	ContractError   = "Error"
	ContractRequest = "Request"
	ContractXidType = "XidType"
	ContractDefault = "Default"
	ContractFrom    = "From"
)

// ResourceIdType is the type name used for raw resource identifiers.
const ResourceIdType = "ResourceId"

// Pair is one (type, capability) entry handed over by the semantic model.
type Pair struct {
	TypeName   string
	Descriptor Descriptor
}

// ContractPath returns the contract a descriptor implements. It depends only
// on the variant, never on the implementing type.
func ContractPath(d Descriptor) decl.Path {
	switch d := d.(type) {
	case Event:
		return decl.PathOf(ContractEvent)
	case Error:
		return decl.PathOf(ContractError)
	case Request:
		return decl.PathOf(ContractRequest)
	case ResourceIdentifier:
		return decl.PathOf(ContractXidType)
	case EnumDefaultValue:
		return decl.PathOf(ContractDefault)
	case LegacyConversion:
		p := decl.PathOf(ContractFrom)
		p.Args = []decl.TypeRef{decl.Named(d.From)}
		return p
	default:
		panic(fmt.Sprintf("capability: unhandled descriptor %T", d))
	}
}

// Emit produces the implementation declaration for d on typeName. It never
// validates its input; see Validate.
func Emit(d Descriptor, typeName string) decl.Declaration {
	return decl.Declaration{
		SelfType: typeName,
		Contract: ContractPath(d),
		Members:  members(d, typeName),
	}
}

// EmitAll emits one declaration per descriptor, in order.
func EmitAll(typeName string, ds ...Descriptor) []decl.Declaration {
	out := make([]decl.Declaration, 0, len(ds))
	for _, d := range ds {
		out = append(out, Emit(d, typeName))
	}
	return out
}

func members(d Descriptor, typeName string) []decl.Member {
	switch d := d.(type) {
	case Event:
		return []decl.Member{opcodeConst(d.Opcode)}
	case Error:
		return []decl.Member{opcodeConst(d.Opcode)}
	case Request:
		return []decl.Member{
			opcodeConst(d.Opcode),
			decl.AssociatedType{Name: "Reply", Value: d.Reply},
		}
	case ResourceIdentifier:
		xid := decl.NewMethod("xid", decl.ReceiverRef, nil, decl.Returning(decl.Named(ResourceIdType))).
			WithBody(decl.ReadResourceId{})
		fromXid := decl.NewMethod("from_xid", decl.ReceiverNone,
			[]decl.InputParameter{{Name: "xid", Type: decl.Named(ResourceIdType), Usage: decl.ParamOwned}},
			decl.Returning(decl.Self()),
		).WithBody(decl.ConstructFromResourceId{})
		return []decl.Member{xid.Lower(true), fromXid.Lower(true)}
	case EnumDefaultValue:
		m := decl.NewMethod("default", decl.ReceiverNone, nil, decl.Returning(decl.Named(typeName))).
			WithBody(decl.ReturnNamedVariant{Owner: typeName, Variant: d.Variant})
		return []decl.Member{m.Lower(true)}
	case LegacyConversion:
		m := decl.NewMethod("from", decl.ReceiverNone,
			[]decl.InputParameter{{Name: "base", Type: decl.Named(d.From), Usage: decl.ParamOwned}},
			decl.Returning(decl.Self()),
		).WithBody(decl.RemapResourceFields{OldType: d.From, NewType: typeName})
		return []decl.Member{m.Lower(true)}
	default:
		panic(fmt.Sprintf("capability: unhandled descriptor %T", d))
	}
}

func opcodeConst(op uint64) decl.Constant {
	return decl.Constant{
		Name:  "OPCODE",
		Type:  decl.Named("u8"),
		Value: decl.U8(op),
	}
}
