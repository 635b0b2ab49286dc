package interpreter

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"uninter/interpreter-go/pkg/ast"
	"uninter/interpreter-go/pkg/runtime"
)

// DefaultMaxDepth bounds recursive evaluation. The language has no loop
// construct, so user-level recursion maps one-to-one onto evaluator
// frames; exceeding the bound raises a stack-exhausted error instead of
// crashing the host stack.
const DefaultMaxDepth = 250000

// Interpreter drives evaluation of decoded AST nodes.
type Interpreter struct {
	global   *runtime.Environment
	stdout   io.Writer
	logger   zerolog.Logger
	maxDepth int
	depth    int
}

// Option configures an Interpreter at construction time.
type Option func(*Interpreter)

// WithStdout redirects print output (defaults to os.Stdout).
func WithStdout(w io.Writer) Option {
	return func(i *Interpreter) { i.stdout = w }
}

// WithLogger installs a trace logger (defaults to a disabled logger).
func WithLogger(logger zerolog.Logger) Option {
	return func(i *Interpreter) { i.logger = logger }
}

// WithMaxDepth overrides the evaluation depth bound. Non-positive values
// keep the default.
func WithMaxDepth(n int) Option {
	return func(i *Interpreter) {
		if n > 0 {
			i.maxDepth = n
		}
	}
}

// New returns an interpreter with an empty global environment.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		global:   runtime.NewEnvironment(nil),
		stdout:   os.Stdout,
		logger:   zerolog.Nop(),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// GlobalEnvironment returns the interpreter's global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// EvaluateProgram reduces a program's root expression against the global
// environment.
func (i *Interpreter) EvaluateProgram(program *ast.Program) (runtime.Value, error) {
	i.logger.Debug().Str("program", program.Name).Msg("evaluating program")
	return i.Evaluate(program.Expression, i.global)
}

// Evaluate reduces one node to a value within env. Errors abort the whole
// run; output already produced by Print stays written.
func (i *Interpreter) Evaluate(node ast.Node, env *runtime.Environment) (runtime.Value, error) {
	i.depth++
	defer func() { i.depth-- }()
	if i.depth > i.maxDepth {
		return nil, errStackExhausted(i.maxDepth, node.Location())
	}

	switch n := node.(type) {
	case *ast.IntLiteral:
		return runtime.IntValue{Val: n.Value}, nil
	case *ast.StrLiteral:
		return runtime.StringValue{Val: n.Value}, nil
	case *ast.BoolLiteral:
		return runtime.BoolValue{Val: n.Value}, nil
	case *ast.PrintExpression:
		return i.evaluatePrint(n, env)
	case *ast.LetExpression:
		value, err := i.Evaluate(n.Value, env)
		if err != nil {
			return nil, err
		}
		env.Define(n.Name.Text, value)
		return i.Evaluate(n.Next, env)
	case *ast.VarExpression:
		value, ok := env.Lookup(n.Text)
		if !ok {
			return nil, errUnbound(n.Text, n.Loc)
		}
		return value, nil
	case *ast.IfExpression:
		condition, err := i.Evaluate(n.Condition, env)
		if err != nil {
			return nil, err
		}
		if runtime.Truthy(condition) {
			return i.Evaluate(n.Then, env)
		}
		return i.Evaluate(n.Otherwise, env)
	case *ast.FunctionLiteral:
		params := make([]string, 0, len(n.Parameters))
		for _, p := range n.Parameters {
			params = append(params, p.Text)
		}
		return &runtime.ClosureValue{Parameters: params, Body: n.Value, Env: env}, nil
	case *ast.CallExpression:
		return i.evaluateCall(n, env)
	case *ast.BinaryExpression:
		return i.evaluateBinary(n, env)
	case *ast.TupleLiteral:
		first, err := i.Evaluate(n.First, env)
		if err != nil {
			return nil, err
		}
		second, err := i.Evaluate(n.Second, env)
		if err != nil {
			return nil, err
		}
		return runtime.TupleValue{First: first, Second: second}, nil
	case *ast.FirstExpression:
		tuple, err := i.evaluateTupleOperand(n.Value, env, n.Loc)
		if err != nil {
			return nil, err
		}
		return tuple.First, nil
	case *ast.SecondExpression:
		tuple, err := i.evaluateTupleOperand(n.Value, env, n.Loc)
		if err != nil {
			return nil, err
		}
		return tuple.Second, nil
	default:
		return nil, errUnknownNodeKind(node.NodeKind(), node.Location())
	}
}

func (i *Interpreter) evaluatePrint(n *ast.PrintExpression, env *runtime.Environment) (runtime.Value, error) {
	value, err := i.Evaluate(n.Value, env)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(i.stdout, runtime.Display(value)+"\n"); err != nil {
		return nil, err
	}
	return value, nil
}

// evaluateCall applies closure semantics: the arity check precedes
// argument evaluation, arguments evaluate left to right in the caller's
// environment, and the call frame extends the environment captured at the
// function's definition site rather than the caller's.
func (i *Interpreter) evaluateCall(call *ast.CallExpression, env *runtime.Environment) (runtime.Value, error) {
	calleeVal, err := i.Evaluate(call.Callee, env)
	if err != nil {
		return nil, err
	}
	closure, ok := calleeVal.(*runtime.ClosureValue)
	if !ok {
		return nil, errNotCallable(calleeVal, call.Loc)
	}
	if len(call.Arguments) != len(closure.Parameters) {
		return nil, errWrongArity(len(closure.Parameters), len(call.Arguments), call.Loc)
	}

	args := make([]runtime.Value, 0, len(call.Arguments))
	for _, argExpr := range call.Arguments {
		val, err := i.Evaluate(argExpr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}

	frame := closure.Env.Extend()
	for idx, param := range closure.Parameters {
		frame.Define(param, args[idx])
	}
	return i.Evaluate(closure.Body, frame)
}

func (i *Interpreter) evaluateTupleOperand(node ast.Node, env *runtime.Environment, loc *ast.Location) (runtime.TupleValue, error) {
	value, err := i.Evaluate(node, env)
	if err != nil {
		return runtime.TupleValue{}, err
	}
	tuple, ok := value.(runtime.TupleValue)
	if !ok {
		return runtime.TupleValue{}, errNotATuple(value, loc)
	}
	return tuple, nil
}
