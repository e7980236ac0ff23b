package decl

// ReceiverUsage says how a method takes its implicit receiver.
type ReceiverUsage int

const (
	ReceiverNone  ReceiverUsage = iota // static, no receiver
	ReceiverRef                        // borrows the receiver
	ReceiverOwned                      // consumes the receiver
)

func (u ReceiverUsage) String() string {
	switch u {
	case ReceiverRef:
		return "ref"
	case ReceiverOwned:
		return "owned"
	default:
		return "none"
	}
}

// ParameterUsage says how a parameter is passed.
type ParameterUsage int

const (
	ParamOwned ParameterUsage = iota
	ParamRef
)

func (u ParameterUsage) String() string {
	if u == ParamRef {
		return "ref"
	}
	return "owned"
}

// Visibility of a lowered member.
type Visibility int

const (
	VisibilityInherited Visibility = iota // visible through the contract
	VisibilityPublic
)

func (v Visibility) String() string {
	if v == VisibilityPublic {
		return "public"
	}
	return "inherited"
}

// InputParameter is one method parameter.
type InputParameter struct {
	Name  string
	Type  TypeRef
	Usage ParameterUsage
}

// Method is a method member. Build one with NewMethod, attach a body with
// WithBody and call Lower before adding it to a Declaration.
type Method struct {
	Name       string
	Receiver   ReceiverUsage
	Params     []InputParameter
	Returns    *TypeRef // nil for no return value
	Body       []Statement
	Visibility Visibility
}

func (*Method) declMember()          {}
func (m *Method) MemberName() string { return m.Name }

// NewMethod creates a method with an empty body.
func NewMethod(name string, receiver ReceiverUsage, params []InputParameter, returns *TypeRef) *Method {
	return &Method{
		Name:     name,
		Receiver: receiver,
		Params:   params,
		Returns:  returns,
	}
}

// Returning is a helper for the returns argument of NewMethod.
func Returning(t TypeRef) *TypeRef {
	return &t
}

// WithBody replaces the method body and returns the method.
func (m *Method) WithBody(stmts ...Statement) *Method {
	m.Body = append([]Statement(nil), stmts...)
	return m
}

// HasReceiver reports whether the method takes an implicit receiver.
func (m *Method) HasReceiver() bool {
	return m.Receiver != ReceiverNone
}

// Lower finalizes the method as a member. Members implementing a contract
// carry no explicit visibility of their own.
func (m *Method) Lower(isTraitMember bool) Member {
	out := *m
	out.Params = append([]InputParameter(nil), m.Params...)
	out.Body = append([]Statement(nil), m.Body...)
	if isTraitMember {
		out.Visibility = VisibilityInherited
	} else {
		out.Visibility = VisibilityPublic
	}
	return &out
}
