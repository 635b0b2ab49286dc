package ast

// Compact constructors for building trees in tests and fixtures.

func Int(value int64) *IntLiteral { return NewIntLiteral(value) }

func Str(value string) *StrLiteral { return NewStrLiteral(value) }

func Bool(value bool) *BoolLiteral { return NewBoolLiteral(value) }

func Print(value Node) *PrintExpression { return NewPrintExpression(value) }

func Let(name string, value, next Node) *LetExpression {
	return NewLetExpression(Parameter{Text: name}, value, next)
}

func Var(text string) *VarExpression { return NewVarExpression(text) }

func If(condition, then, otherwise Node) *IfExpression {
	return NewIfExpression(condition, then, otherwise)
}

func Fn(params []string, value Node) *FunctionLiteral {
	decls := make([]Parameter, 0, len(params))
	for _, p := range params {
		decls = append(decls, Parameter{Text: p})
	}
	return NewFunctionLiteral(decls, value)
}

func Call(callee Node, args ...Node) *CallExpression {
	return NewCallExpression(callee, args)
}

func Bin(op BinaryOp, lhs, rhs Node) *BinaryExpression {
	return NewBinaryExpression(op, lhs, rhs)
}

func Tup(first, second Node) *TupleLiteral { return NewTupleLiteral(first, second) }

func First(value Node) *FirstExpression { return NewFirstExpression(value) }

func Second(value Node) *SecondExpression { return NewSecondExpression(value) }
