package ir

// PassingMode is the parameter-passing discipline (spec §3.1).
type PassingMode int

const (
	PassByValue PassingMode = iota
	PassByRef
	PassOut
	PassIn
)

func (m PassingMode) String() string {
	switch m {
	case PassByValue:
		return "value"
	case PassByRef:
		return "ref"
	case PassOut:
		return "out"
	case PassIn:
		return "in"
	default:
		return "?"
	}
}

// Parameter is a function/method parameter.
type Parameter struct {
	Node

	Pattern      Pattern
	DeclaredType Type // nil if not explicitly declared (validator may forbid this)
	Initializer  Expression

	IsOptional bool
	IsRest     bool
	Passing    PassingMode
}
