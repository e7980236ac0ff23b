package decl

// Statement is one straight-line body operation. The set of statements is
// closed: backends switch over the concrete types below, and a new idiom needs
// a new type here.
type Statement interface {
	declStmt()
}

// ReadResourceId returns the identifier wrapped by the receiver.
type ReadResourceId struct{}

func (ReadResourceId) declStmt() {}

// ConstructFromResourceId wraps the incoming identifier parameter in the
// enclosing type and returns it.
type ConstructFromResourceId struct{}

func (ConstructFromResourceId) declStmt() {}

// ReturnNamedVariant returns Owner::Variant.
type ReturnNamedVariant struct {
	Owner   string
	Variant string
}

func (ReturnNamedVariant) declStmt() {}

// RemapResourceFields rebuilds NewType from an instance of OldType, carrying
// the resource identifier across.
type RemapResourceFields struct {
	OldType string
	NewType string
}

func (RemapResourceFields) declStmt() {}
