package capability

import (
	"errors"
	"go/token"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/chazu/protobind/pkg/decl"
)

// ErrInvalidConfiguration matches every *ValidationError via errors.Is.
var ErrInvalidConfiguration = errors.New("invalid capability configuration")

// Problem categorizes a validation failure.
type Problem string

const (
	ProblemOpcodeRange    Problem = "opcode_out_of_range"
	ProblemUnknownVariant Problem = "unknown_variant"
	ProblemMissingType    Problem = "missing_type"
	ProblemBadIdentifier  Problem = "bad_identifier"
)

// ValidationError describes one rejected (type, descriptor) pair.
type ValidationError struct {
	TypeName string
	Kind     Kind
	Problem  Problem
	Detail   string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(e.Kind.String())
	b.WriteString("] ")
	b.WriteString(string(e.Problem))
	if e.TypeName != "" {
		b.WriteString(" on ")
		b.WriteString(e.TypeName)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// Is reports whether target is ErrInvalidConfiguration or a ValidationError
// with the same kind and problem.
func (e *ValidationError) Is(target error) bool {
	if target == ErrInvalidConfiguration {
		return true
	}
	if t, ok := target.(*ValidationError); ok {
		return e.Kind == t.Kind && e.Problem == t.Problem
	}
	return false
}

// Variants lists the declared variants of enum types, keyed by type name.
// Types missing from the map are not checked for variant existence.
type Variants map[string][]string

// MaxOpcode is the largest opcode that survives the u8 narrowing.
const MaxOpcode = 0xff

// Validate checks one pair under the strict policy. Every problem found is
// returned, combined with multierr.
func Validate(p Pair, variants Variants) error {
	var err error
	kind := p.Descriptor.Kind()
	fail := func(problem Problem, detail string) {
		err = multierr.Append(err, &ValidationError{
			TypeName: p.TypeName,
			Kind:     kind,
			Problem:  problem,
			Detail:   detail,
		})
	}

	if !token.IsIdentifier(p.TypeName) {
		fail(ProblemBadIdentifier, "type name "+strconv.Quote(p.TypeName)+" is not an identifier")
	}

	switch d := p.Descriptor.(type) {
	case Event:
		if d.Opcode > MaxOpcode {
			fail(ProblemOpcodeRange, opcodeDetail(d.Opcode))
		}
	case Error:
		if d.Opcode > MaxOpcode {
			fail(ProblemOpcodeRange, opcodeDetail(d.Opcode))
		}
	case Request:
		if d.Opcode > MaxOpcode {
			fail(ProblemOpcodeRange, opcodeDetail(d.Opcode))
		}
		if d.Reply.Name == "" {
			fail(ProblemMissingType, "request has no reply type")
		} else if !validTypeRef(d.Reply) {
			fail(ProblemBadIdentifier, "reply type "+strconv.Quote(d.Reply.String())+" is not an identifier")
		}
	case ResourceIdentifier:
	case EnumDefaultValue:
		if !token.IsIdentifier(d.Variant) {
			fail(ProblemBadIdentifier, "variant "+strconv.Quote(d.Variant)+" is not an identifier")
		} else if declared, ok := variants[p.TypeName]; ok && !slices.Contains(declared, d.Variant) {
			fail(ProblemUnknownVariant, "variant "+strconv.Quote(d.Variant)+" is not declared on "+p.TypeName)
		}
	case LegacyConversion:
		if d.From == "" {
			fail(ProblemMissingType, "conversion has no source type")
		} else if !token.IsIdentifier(d.From) {
			fail(ProblemBadIdentifier, "source type "+strconv.Quote(d.From)+" is not an identifier")
		}
	}

	return err
}

// ValidateAll validates every pair and combines the failures.
func ValidateAll(pairs []Pair, variants Variants) error {
	var err error
	for _, p := range pairs {
		err = multierr.Append(err, Validate(p, variants))
	}
	return err
}

// validTypeRef reports whether t and its type argument are identifiers.
func validTypeRef(t decl.TypeRef) bool {
	if !token.IsIdentifier(t.Name) {
		return false
	}
	return t.Arg == nil || validTypeRef(*t.Arg)
}

func opcodeDetail(op uint64) string {
	return "opcode " + strconv.FormatUint(op, 10) + " does not fit in 8 bits"
}
