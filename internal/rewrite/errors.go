package rewrite

import (
	"errors"
	"fmt"

	"github.com/gnoswap-labs/junitmig/internal/tree"
)

var (
	ErrMalformedAnnotationValue = errors.New("annotation value is not a string literal")
	ErrInvalidTimeoutValue      = errors.New("timeout value is not an integer literal")
	ErrInvalidExpectedType      = errors.New("expected value is not a class literal")
	ErrMissingMethodBody        = errors.New("annotated declaration has no body to wrap")
)

// FailureKind classifies why a node could not be rewritten.
type FailureKind int

const (
	MalformedAnnotationValue FailureKind = iota + 1
	InvalidTimeoutValue
	InvalidExpectedType
	MissingMethodBody
)

func (k FailureKind) String() string {
	switch k {
	case MalformedAnnotationValue:
		return "MalformedAnnotationValue"
	case InvalidTimeoutValue:
		return "InvalidTimeoutValue"
	case InvalidExpectedType:
		return "InvalidExpectedType"
	case MissingMethodBody:
		return "MissingMethodBody"
	default:
		return "Unknown"
	}
}

func (k FailureKind) sentinel() error {
	switch k {
	case MalformedAnnotationValue:
		return ErrMalformedAnnotationValue
	case InvalidTimeoutValue:
		return ErrInvalidTimeoutValue
	case InvalidExpectedType:
		return ErrInvalidExpectedType
	case MissingMethodBody:
		return ErrMissingMethodBody
	default:
		return nil
	}
}

// Failure reports a node that was left exactly as found because its shape
// did not satisfy a rule.
type Failure struct {
	Kind   FailureKind
	Rule   string
	Node   tree.NodeID
	Pos    tree.Position
	Detail string
}

func (f *Failure) Error() string {
	msg := fmt.Sprintf("%s: %s: %v", f.Pos, f.Rule, f.Kind.sentinel())
	if f.Detail != "" {
		msg += " (" + f.Detail + ")"
	}
	return msg
}

func (f *Failure) Unwrap() error {
	return f.Kind.sentinel()
}
