package codegen

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"

	"github.com/chazu/protobind/pkg/decl"
)

// memberName converts a snake_case or SCREAMING_CASE member name to an
// exported Go name: "from_xid" -> "FromXid", "OPCODE" -> "Opcode".
func memberName(name string) string {
	return strcase.ToCamel(strings.ToLower(name))
}

// staticName names the package function for a receiver-less method. Contract
// type arguments are appended so From<Window> and From<Pixmap> don't collide.
func staticName(self, method string, contract decl.Path) string {
	var b strings.Builder
	b.WriteString(self)
	b.WriteString(memberName(method))
	for _, a := range contract.Args {
		writeTypeName(&b, a)
	}
	return b.String()
}

func writeTypeName(b *strings.Builder, t decl.TypeRef) {
	b.WriteString(strcase.ToCamel(t.Name))
	if t.Arg != nil {
		writeTypeName(b, *t.Arg)
	}
}

// variantName is the Go constant for Owner::Variant.
func variantName(owner, variant string) string {
	return owner + strcase.ToCamel(variant)
}

func paramName(name string) string {
	if token.IsKeyword(name) {
		return name + "_"
	}
	return name
}

// receiverName is the lower-cased first letter of the type, or "self" when
// the type does not start with a letter or a parameter already uses that name.
func receiverName(self string, params []decl.InputParameter) string {
	r, _ := utf8.DecodeRuneInString(self)
	if unicode.IsLetter(r) {
		if name := string(unicode.ToLower(r)); !usesParam(params, name) {
			return name
		}
	}
	if usesParam(params, "self") {
		return "recv"
	}
	return "self"
}

func usesParam(params []decl.InputParameter, name string) bool {
	for _, p := range params {
		if paramName(p.Name) == name {
			return true
		}
	}
	return false
}
