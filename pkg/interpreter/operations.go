package interpreter

import (
	"strings"

	"uninter/interpreter-go/pkg/ast"
	"uninter/interpreter-go/pkg/runtime"
)

// evaluateBinary dispatches the operator table. And/Or short-circuit on
// the left operand's truthiness and yield whichever raw operand the
// boolean logic selects; every other operator evaluates both sides first.
func (i *Interpreter) evaluateBinary(n *ast.BinaryExpression, env *runtime.Environment) (runtime.Value, error) {
	switch n.Op {
	case ast.OpAnd:
		lhs, err := i.Evaluate(n.LHS, env)
		if err != nil {
			return nil, err
		}
		if !runtime.Truthy(lhs) {
			return lhs, nil
		}
		return i.Evaluate(n.RHS, env)
	case ast.OpOr:
		lhs, err := i.Evaluate(n.LHS, env)
		if err != nil {
			return nil, err
		}
		if runtime.Truthy(lhs) {
			return lhs, nil
		}
		return i.Evaluate(n.RHS, env)
	}

	lhs, err := i.Evaluate(n.LHS, env)
	if err != nil {
		return nil, err
	}
	rhs, err := i.Evaluate(n.RHS, env)
	if err != nil {
		return nil, err
	}
	return applyBinary(n.Op, lhs, rhs, n.Loc)
}

func applyBinary(op ast.BinaryOp, lhs, rhs runtime.Value, loc *ast.Location) (runtime.Value, error) {
	switch op {
	case ast.OpAdd:
		return applyAdd(lhs, rhs, loc)
	case ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpRem:
		return applyArithmetic(op, lhs, rhs, loc)
	case ast.OpEq:
		return runtime.BoolValue{Val: runtime.Equal(lhs, rhs)}, nil
	case ast.OpNeq:
		return runtime.BoolValue{Val: !runtime.Equal(lhs, rhs)}, nil
	case ast.OpLt, ast.OpGt, ast.OpLte, ast.OpGte:
		return applyOrdering(op, lhs, rhs, loc)
	default:
		return nil, errUnknownOperator(op, loc)
	}
}

// applyAdd is numeric addition unless either operand is text, in which
// case both operands concatenate in display form.
func applyAdd(lhs, rhs runtime.Value, loc *ast.Location) (runtime.Value, error) {
	if lhs.Kind() == runtime.KindStr || rhs.Kind() == runtime.KindStr {
		return runtime.StringValue{Val: runtime.Display(lhs) + runtime.Display(rhs)}, nil
	}
	a, aok := lhs.(runtime.IntValue)
	b, bok := rhs.(runtime.IntValue)
	if !aok || !bok {
		return nil, errTypeMismatch(ast.OpAdd, lhs, rhs, loc)
	}
	return runtime.IntValue{Val: a.Val + b.Val}, nil
}

func applyArithmetic(op ast.BinaryOp, lhs, rhs runtime.Value, loc *ast.Location) (runtime.Value, error) {
	a, aok := lhs.(runtime.IntValue)
	b, bok := rhs.(runtime.IntValue)
	if !aok || !bok {
		return nil, errTypeMismatch(op, lhs, rhs, loc)
	}
	switch op {
	case ast.OpSub:
		return runtime.IntValue{Val: a.Val - b.Val}, nil
	case ast.OpMul:
		return runtime.IntValue{Val: a.Val * b.Val}, nil
	case ast.OpDiv:
		if b.Val == 0 {
			return nil, errDivisionByZero(loc)
		}
		return runtime.IntValue{Val: floorDiv(a.Val, b.Val)}, nil
	case ast.OpRem:
		if b.Val == 0 {
			return nil, errDivisionByZero(loc)
		}
		return runtime.IntValue{Val: floorMod(a.Val, b.Val)}, nil
	default:
		return nil, errUnknownOperator(op, loc)
	}
}

// applyOrdering compares two ints numerically or two strings
// lexicographically; any other pairing is a type mismatch.
func applyOrdering(op ast.BinaryOp, lhs, rhs runtime.Value, loc *ast.Location) (runtime.Value, error) {
	var cmp int
	switch a := lhs.(type) {
	case runtime.IntValue:
		b, ok := rhs.(runtime.IntValue)
		if !ok {
			return nil, errTypeMismatch(op, lhs, rhs, loc)
		}
		switch {
		case a.Val < b.Val:
			cmp = -1
		case a.Val > b.Val:
			cmp = 1
		}
	case runtime.StringValue:
		b, ok := rhs.(runtime.StringValue)
		if !ok {
			return nil, errTypeMismatch(op, lhs, rhs, loc)
		}
		cmp = strings.Compare(a.Val, b.Val)
	default:
		return nil, errTypeMismatch(op, lhs, rhs, loc)
	}

	switch op {
	case ast.OpLt:
		return runtime.BoolValue{Val: cmp < 0}, nil
	case ast.OpGt:
		return runtime.BoolValue{Val: cmp > 0}, nil
	case ast.OpLte:
		return runtime.BoolValue{Val: cmp <= 0}, nil
	case ast.OpGte:
		return runtime.BoolValue{Val: cmp >= 0}, nil
	default:
		return nil, errUnknownOperator(op, loc)
	}
}

// floorDiv truncates the quotient toward negative infinity, so
// floorDiv(-7, 2) is -4 rather than -3.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod matches floorDiv: the remainder's sign follows the divisor.
func floorMod(a, b int64) int64 {
	r := a % b
	if r != 0 && ((r < 0) != (b < 0)) {
		r += b
	}
	return r
}
