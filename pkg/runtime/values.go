package runtime

import (
	"fmt"
	"strconv"

	"uninter/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInt Kind = iota
	KindStr
	KindBool
	KindTuple
	KindClosure
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindStr:
		return "string"
	case KindBool:
		return "bool"
	case KindTuple:
		return "tuple"
	case KindClosure:
		return "closure"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values. Values are
// immutable once produced.
type Value interface {
	Kind() Kind
}

type IntValue struct {
	Val int64
}

func (v IntValue) Kind() Kind { return KindInt }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindStr }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

// TupleValue owns exactly two elements.
type TupleValue struct {
	First  Value
	Second Value
}

func (v TupleValue) Kind() Kind { return KindTuple }

// ClosureValue bundles a function body with the environment in effect at
// its definition site. The captured environment is fixed at creation and
// never reassigned.
type ClosureValue struct {
	Parameters []string
	Body       ast.Node
	Env        *Environment
}

func (v *ClosureValue) Kind() Kind { return KindClosure }

// Truthy reports the language's condition test: only the boolean false
// value is false. Int(0) and the empty string are true.
func Truthy(v Value) bool {
	if b, ok := v.(BoolValue); ok {
		return b.Val
	}
	return true
}

// Display renders the textual form of a value, as written by print.
func Display(v Value) string {
	switch val := v.(type) {
	case IntValue:
		return strconv.FormatInt(val.Val, 10)
	case StringValue:
		return val.Val
	case BoolValue:
		if val.Val {
			return "true"
		}
		return "false"
	case TupleValue:
		return "(" + Display(val.First) + ", " + Display(val.Second) + ")"
	case *ClosureValue:
		return "<#closure>"
	default:
		return fmt.Sprintf("[%s]", v.Kind())
	}
}

// Equal reports structural equality. Tuples compare element-wise;
// closures compare by identity; values of differing kinds are unequal.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case IntValue:
		bv, ok := b.(IntValue)
		return ok && av.Val == bv.Val
	case StringValue:
		bv, ok := b.(StringValue)
		return ok && av.Val == bv.Val
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av.Val == bv.Val
	case TupleValue:
		bv, ok := b.(TupleValue)
		return ok && Equal(av.First, bv.First) && Equal(av.Second, bv.Second)
	case *ClosureValue:
		bv, ok := b.(*ClosureValue)
		return ok && av == bv
	default:
		return false
	}
}
