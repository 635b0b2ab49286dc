package interpreter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"uninter/interpreter-go/pkg/ast"
	"uninter/interpreter-go/pkg/runtime"
)

func TestAddNumeric(t *testing.T) {
	assert.Equal(t, runtime.IntValue{Val: 5}, mustEval(t, ast.Bin(ast.OpAdd, ast.Int(2), ast.Int(3))))
	assert.Equal(t, runtime.IntValue{Val: -1}, mustEval(t, ast.Bin(ast.OpAdd, ast.Int(2), ast.Int(-3))))
}

func TestAddConcatenatesWhenEitherOperandIsText(t *testing.T) {
	cases := []struct {
		name string
		node ast.Node
		want string
	}{
		{"str+str", ast.Bin(ast.OpAdd, ast.Str("Hello"), ast.Str(" World")), "Hello World"},
		{"str+int", ast.Bin(ast.OpAdd, ast.Str("n = "), ast.Int(7)), "n = 7"},
		{"int+str", ast.Bin(ast.OpAdd, ast.Int(7), ast.Str(" = n")), "7 = n"},
		{"str+bool", ast.Bin(ast.OpAdd, ast.Str(""), ast.Bool(true)), "true"},
		{"str+tuple", ast.Bin(ast.OpAdd, ast.Str("pair: "), ast.Tup(ast.Int(1), ast.Int(2))), "pair: (1, 2)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, runtime.StringValue{Val: tc.want}, mustEval(t, tc.node))
		})
	}
}

func TestAddOnIncompatibleKindsFails(t *testing.T) {
	_, err := evalNode(t, ast.Bin(ast.OpAdd, ast.Bool(true), ast.Int(1)))
	requireKind(t, err, ErrTypeMismatch)
}

func TestSubMul(t *testing.T) {
	assert.Equal(t, runtime.IntValue{Val: 6}, mustEval(t, ast.Bin(ast.OpSub, ast.Int(10), ast.Int(4))))
	assert.Equal(t, runtime.IntValue{Val: -12}, mustEval(t, ast.Bin(ast.OpMul, ast.Int(3), ast.Int(-4))))
}

func TestDivFloorsTowardNegativeInfinity(t *testing.T) {
	cases := []struct {
		a, b, want int64
	}{
		{7, 2, 3},
		{-7, 2, -4},
		{7, -2, -4},
		{-7, -2, 3},
		{1, 3, 0},
		{2, 5, 0},
		{-1, 3, -1},
		{6, 3, 2},
		{-6, 3, -2},
	}
	for _, tc := range cases {
		val := mustEval(t, ast.Bin(ast.OpDiv, ast.Int(tc.a), ast.Int(tc.b)))
		assert.Equal(t, runtime.IntValue{Val: tc.want}, val, "Div(%d, %d)", tc.a, tc.b)
	}
}

func TestDivByZeroFails(t *testing.T) {
	for _, a := range []int64{0, 1, -7} {
		_, err := evalNode(t, ast.Bin(ast.OpDiv, ast.Int(a), ast.Int(0)))
		requireKind(t, err, ErrDivisionByZero)
	}
}

func TestRemSignFollowsDivisor(t *testing.T) {
	cases := []struct {
		a, b, want int64
	}{
		{7, 3, 1},
		{-7, 3, 2},
		{7, -3, -2},
		{-7, -3, -1},
		{6, 3, 0},
	}
	for _, tc := range cases {
		val := mustEval(t, ast.Bin(ast.OpRem, ast.Int(tc.a), ast.Int(tc.b)))
		assert.Equal(t, runtime.IntValue{Val: tc.want}, val, "Rem(%d, %d)", tc.a, tc.b)
	}
}

func TestRemByZeroFails(t *testing.T) {
	_, err := evalNode(t, ast.Bin(ast.OpRem, ast.Int(5), ast.Int(0)))
	requireKind(t, err, ErrDivisionByZero)
}

func TestDivRemConsistency(t *testing.T) {
	// a == b*floorDiv(a,b) + floorMod(a,b) for every non-zero divisor.
	for _, a := range []int64{-9, -7, -1, 0, 1, 7, 9} {
		for _, b := range []int64{-4, -3, -1, 1, 3, 4} {
			q := floorDiv(a, b)
			r := floorMod(a, b)
			assert.Equal(t, a, b*q+r, "a=%d b=%d", a, b)
			if r != 0 {
				assert.Equal(t, r < 0, b < 0, "remainder sign follows divisor: a=%d b=%d", a, b)
			}
		}
	}
}

func TestEqNeqStructural(t *testing.T) {
	assert.Equal(t, runtime.BoolValue{Val: true}, mustEval(t, ast.Bin(ast.OpEq, ast.Int(2), ast.Int(2))))
	assert.Equal(t, runtime.BoolValue{Val: false}, mustEval(t, ast.Bin(ast.OpEq, ast.Int(2), ast.Str("2"))))
	assert.Equal(t, runtime.BoolValue{Val: true}, mustEval(t, ast.Bin(ast.OpNeq, ast.Int(2), ast.Int(3))))

	tuples := ast.Bin(ast.OpEq,
		ast.Tup(ast.Int(1), ast.Str("a")),
		ast.Tup(ast.Int(1), ast.Str("a")))
	assert.Equal(t, runtime.BoolValue{Val: true}, mustEval(t, tuples))
}

func TestOrderingOperators(t *testing.T) {
	assert.Equal(t, runtime.BoolValue{Val: true}, mustEval(t, ast.Bin(ast.OpLt, ast.Int(1), ast.Int(2))))
	assert.Equal(t, runtime.BoolValue{Val: false}, mustEval(t, ast.Bin(ast.OpGt, ast.Int(1), ast.Int(2))))
	assert.Equal(t, runtime.BoolValue{Val: true}, mustEval(t, ast.Bin(ast.OpLte, ast.Int(2), ast.Int(2))))
	assert.Equal(t, runtime.BoolValue{Val: true}, mustEval(t, ast.Bin(ast.OpGte, ast.Int(3), ast.Int(2))))

	assert.Equal(t, runtime.BoolValue{Val: true}, mustEval(t, ast.Bin(ast.OpLt, ast.Str("abc"), ast.Str("abd"))))
	assert.Equal(t, runtime.BoolValue{Val: true}, mustEval(t, ast.Bin(ast.OpGte, ast.Str("b"), ast.Str("b"))))
}

func TestOrderingOnMixedKindsFails(t *testing.T) {
	cases := []ast.Node{
		ast.Bin(ast.OpLt, ast.Int(1), ast.Str("2")),
		ast.Bin(ast.OpGt, ast.Str("1"), ast.Int(2)),
		ast.Bin(ast.OpLte, ast.Bool(true), ast.Bool(false)),
		ast.Bin(ast.OpGte, ast.Tup(ast.Int(1), ast.Int(2)), ast.Tup(ast.Int(1), ast.Int(2))),
	}
	for _, node := range cases {
		_, err := evalNode(t, node)
		requireKind(t, err, ErrTypeMismatch)
	}
}

func TestAndOrYieldRawOperands(t *testing.T) {
	// The selected operand comes back unforced, not coerced to Bool.
	assert.Equal(t, runtime.IntValue{Val: 2}, mustEval(t, ast.Bin(ast.OpAnd, ast.Int(1), ast.Int(2))))
	assert.Equal(t, runtime.BoolValue{Val: false}, mustEval(t, ast.Bin(ast.OpAnd, ast.Bool(false), ast.Int(2))))
	assert.Equal(t, runtime.IntValue{Val: 1}, mustEval(t, ast.Bin(ast.OpOr, ast.Int(1), ast.Int(2))))
	assert.Equal(t, runtime.StringValue{Val: "rhs"}, mustEval(t, ast.Bin(ast.OpOr, ast.Bool(false), ast.Str("rhs"))))
}

func TestAndOrShortCircuit(t *testing.T) {
	var out bytes.Buffer
	// The right operand's print must not run when the left side decides.
	mustEval(t, ast.Bin(ast.OpAnd, ast.Bool(false), ast.Print(ast.Str("and-rhs"))), WithStdout(&out))
	assert.Empty(t, out.String())

	mustEval(t, ast.Bin(ast.OpOr, ast.Int(1), ast.Print(ast.Str("or-rhs"))), WithStdout(&out))
	assert.Empty(t, out.String())

	// And the right operand does run when the left side does not decide.
	mustEval(t, ast.Bin(ast.OpAnd, ast.Bool(true), ast.Print(ast.Str("ran"))), WithStdout(&out))
	assert.Equal(t, "ran\n", out.String())
}

func TestShortCircuitSkipsRightSideErrors(t *testing.T) {
	val := mustEval(t, ast.Bin(ast.OpOr, ast.Int(1), ast.Var("unbound")))
	assert.Equal(t, runtime.IntValue{Val: 1}, val)
}

func TestUnknownOperatorFails(t *testing.T) {
	_, err := evalNode(t, ast.Bin(ast.BinaryOp("Xor"), ast.Int(1), ast.Int(2)))
	requireKind(t, err, ErrUnknownOperator)
}

func TestOperandsEvaluateLeftToRight(t *testing.T) {
	var out bytes.Buffer
	node := ast.Bin(ast.OpAdd, ast.Print(ast.Int(1)), ast.Print(ast.Int(2)))
	mustEval(t, node, WithStdout(&out))
	assert.Equal(t, "1\n2\n", out.String())
}
