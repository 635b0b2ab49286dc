package ast

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

// DecodeProgram decodes a wire document of the form
// {"name": ..., "expression": {...}} into a Program.
func DecodeProgram(data []byte) (*Program, error) {
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	exprRaw, ok := doc["expression"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("document missing expression object")
	}
	expr, err := DecodeNodeMap(exprRaw)
	if err != nil {
		return nil, err
	}
	name, _ := doc["name"].(string)
	return &Program{Name: name, Expression: expr}, nil
}

// DecodeExpression decodes a single wire node. Used by the REPL, which
// feeds one expression object per line.
func DecodeExpression(data []byte) (Node, error) {
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}
	// Accept either a bare node or a full program document.
	if exprRaw, ok := doc["expression"].(map[string]any); ok {
		if _, hasKind := doc["kind"]; !hasKind {
			return DecodeNodeMap(exprRaw)
		}
	}
	return DecodeNodeMap(doc)
}

func decodeDocument(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

// DecodeNodeMap converts one decoded JSON object into a Node, recursing
// through child fields.
func DecodeNodeMap(node map[string]any) (Node, error) {
	kind, _ := node["kind"].(string)
	loc := decodeLocation(node["location"])
	switch NodeKind(kind) {
	case NodeInt:
		val, err := decodeInt(node["value"])
		if err != nil {
			return nil, fmt.Errorf("Int node: %w", err)
		}
		lit := NewIntLiteral(val)
		lit.Loc = loc
		return lit, nil
	case NodeStr:
		val, ok := node["value"].(string)
		if !ok {
			return nil, fmt.Errorf("Str node value is %T, want string", node["value"])
		}
		lit := NewStrLiteral(val)
		lit.Loc = loc
		return lit, nil
	case NodeBool:
		val, ok := node["value"].(bool)
		if !ok {
			return nil, fmt.Errorf("Bool node value is %T, want bool", node["value"])
		}
		lit := NewBoolLiteral(val)
		lit.Loc = loc
		return lit, nil
	case NodePrint:
		val, err := decodeChild(node, "value")
		if err != nil {
			return nil, err
		}
		out := NewPrintExpression(val)
		out.Loc = loc
		return out, nil
	case NodeLet:
		name, err := decodeParameter(node["name"])
		if err != nil {
			return nil, fmt.Errorf("Let node: %w", err)
		}
		value, err := decodeChild(node, "value")
		if err != nil {
			return nil, err
		}
		next, err := decodeChild(node, "next")
		if err != nil {
			return nil, err
		}
		out := NewLetExpression(name, value, next)
		out.Loc = loc
		return out, nil
	case NodeVar:
		text, ok := node["text"].(string)
		if !ok {
			return nil, fmt.Errorf("Var node text is %T, want string", node["text"])
		}
		out := NewVarExpression(text)
		out.Loc = loc
		return out, nil
	case NodeIf:
		condition, err := decodeChild(node, "condition")
		if err != nil {
			return nil, err
		}
		then, err := decodeChild(node, "then")
		if err != nil {
			return nil, err
		}
		otherwise, err := decodeChild(node, "otherwise")
		if err != nil {
			return nil, err
		}
		out := NewIfExpression(condition, then, otherwise)
		out.Loc = loc
		return out, nil
	case NodeFunction:
		paramsRaw, _ := node["parameters"].([]any)
		params := make([]Parameter, 0, len(paramsRaw))
		for _, raw := range paramsRaw {
			param, err := decodeParameter(raw)
			if err != nil {
				return nil, fmt.Errorf("Function node: %w", err)
			}
			params = append(params, param)
		}
		value, err := decodeChild(node, "value")
		if err != nil {
			return nil, err
		}
		out := NewFunctionLiteral(params, value)
		out.Loc = loc
		return out, nil
	case NodeCall:
		callee, err := decodeChild(node, "callee")
		if err != nil {
			return nil, err
		}
		argsRaw, _ := node["arguments"].([]any)
		args := make([]Node, 0, len(argsRaw))
		for _, raw := range argsRaw {
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("Call argument is %T, want object", raw)
			}
			arg, err := DecodeNodeMap(child)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		out := NewCallExpression(callee, args)
		out.Loc = loc
		return out, nil
	case NodeBinary:
		op, ok := node["op"].(string)
		if !ok {
			return nil, fmt.Errorf("Binary node op is %T, want string", node["op"])
		}
		lhs, err := decodeChild(node, "lhs")
		if err != nil {
			return nil, err
		}
		rhs, err := decodeChild(node, "rhs")
		if err != nil {
			return nil, err
		}
		out := NewBinaryExpression(BinaryOp(op), lhs, rhs)
		out.Loc = loc
		return out, nil
	case NodeTuple:
		first, err := decodeChild(node, "first")
		if err != nil {
			return nil, err
		}
		second, err := decodeChild(node, "second")
		if err != nil {
			return nil, err
		}
		out := NewTupleLiteral(first, second)
		out.Loc = loc
		return out, nil
	case NodeFirst:
		val, err := decodeChild(node, "value")
		if err != nil {
			return nil, err
		}
		out := NewFirstExpression(val)
		out.Loc = loc
		return out, nil
	case NodeSecond:
		val, err := decodeChild(node, "value")
		if err != nil {
			return nil, err
		}
		out := NewSecondExpression(val)
		out.Loc = loc
		return out, nil
	default:
		return nil, fmt.Errorf("unknown node kind %q", kind)
	}
}

func decodeChild(node map[string]any, field string) (Node, error) {
	raw, ok := node[field].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s node %s is %T, want object", node["kind"], field, node[field])
	}
	return DecodeNodeMap(raw)
}

func decodeParameter(raw any) (Parameter, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return Parameter{}, fmt.Errorf("parameter is %T, want object", raw)
	}
	text, ok := obj["text"].(string)
	if !ok {
		return Parameter{}, fmt.Errorf("parameter text is %T, want string", obj["text"])
	}
	return Parameter{Text: text, Loc: decodeLocation(obj["location"])}, nil
}

func decodeInt(raw any) (int64, error) {
	switch v := raw.(type) {
	case json.Number:
		return strconv.ParseInt(v.String(), 10, 64)
	case float64:
		return int64(v), nil
	case int64:
		return v, nil
	default:
		return 0, fmt.Errorf("value is %T, want integer", raw)
	}
}

func decodeLocation(raw any) *Location {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	loc := &Location{}
	if start, err := decodeInt(obj["start"]); err == nil {
		loc.Start = int(start)
	}
	if end, err := decodeInt(obj["end"]); err == nil {
		loc.End = int(end)
	}
	if filename, ok := obj["filename"].(string); ok {
		loc.Filename = filename
	}
	return loc
}
