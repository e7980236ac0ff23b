package decl

import (
	"testing"
)

func TestNewMethod(t *testing.T) {
	params := []InputParameter{{Name: "xid", Type: Named("ResourceId"), Usage: ParamOwned}}
	m := NewMethod("from_xid", ReceiverNone, params, Returning(Self()))

	if m.HasReceiver() {
		t.Error("from_xid should have no receiver")
	}
	if len(m.Body) != 0 {
		t.Errorf("new method body should be empty, got %d statements", len(m.Body))
	}
	if m.Returns == nil || !m.Returns.IsSelf() {
		t.Errorf("returns = %v, want Self", m.Returns)
	}
}

func TestLowerVisibility(t *testing.T) {
	tests := []struct {
		name          string
		isTraitMember bool
		want          Visibility
	}{
		{"trait member", true, VisibilityInherited},
		{"inherent member", false, VisibilityPublic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMethod("xid", ReceiverRef, nil, Returning(Named("ResourceId")))
			lowered, ok := m.Lower(tt.isTraitMember).(*Method)
			if !ok {
				t.Fatalf("Lower returned %T, want *Method", lowered)
			}
			if lowered.Visibility != tt.want {
				t.Errorf("Visibility = %v, want %v", lowered.Visibility, tt.want)
			}
		})
	}
}

func TestLowerCopies(t *testing.T) {
	m := NewMethod("default", ReceiverNone, nil, Returning(Named("Gravity"))).
		WithBody(ReturnNamedVariant{Owner: "Gravity", Variant: "Forget"})

	lowered := m.Lower(true).(*Method)
	m.Body[0] = ReadResourceId{}
	m.Name = "changed"

	if lowered.Name != "default" {
		t.Errorf("lowered name changed to %q", lowered.Name)
	}
	if _, ok := lowered.Body[0].(ReturnNamedVariant); !ok {
		t.Errorf("lowered body changed to %T", lowered.Body[0])
	}
}

func TestWithBodyReplaces(t *testing.T) {
	m := NewMethod("xid", ReceiverRef, nil, nil).WithBody(ReadResourceId{})
	m.WithBody(ConstructFromResourceId{})
	if len(m.Body) != 1 {
		t.Fatalf("body length = %d, want 1", len(m.Body))
	}
	if _, ok := m.Body[0].(ConstructFromResourceId); !ok {
		t.Errorf("body[0] = %T, want ConstructFromResourceId", m.Body[0])
	}
}

func TestUsageStrings(t *testing.T) {
	if ReceiverNone.String() != "none" || ReceiverRef.String() != "ref" || ReceiverOwned.String() != "owned" {
		t.Error("unexpected ReceiverUsage strings")
	}
	if ParamOwned.String() != "owned" || ParamRef.String() != "ref" {
		t.Error("unexpected ParameterUsage strings")
	}
}
