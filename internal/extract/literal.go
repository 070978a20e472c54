package extract

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// EvalLiteral statically computes a plain value for an expression node when
// every reachable leaf is itself a literal. Strings, numbers, booleans and
// null evaluate to Go strings, float64s, bools and nil; object literals to
// map[string]any; array literals to []any.
//
// Evaluation is whole-value: if any object value, object key, or array
// element fails to evaluate, the enclosing value reports false, never a
// partial result. Recursion depth is bounded by the tree's actual nesting.
func (e *Extractor) EvalLiteral(node *sitter.Node) (any, bool) {
	if node == nil {
		return nil, false
	}

	switch node.Type() {
	case "string":
		return stringLiteralValue(e.text(node)), true

	case "number":
		return numberLiteralValue(e.text(node))

	case "true":
		return true, true

	case "false":
		return false, true

	case "null":
		return nil, true

	case "object":
		return e.evalObjectLiteral(node)

	case "array":
		return e.evalArrayLiteral(node)

	default:
		return nil, false
	}
}

// evalObjectLiteral evaluates an object literal. Every property must be a
// plain pair with an identifier-or-literal key and a literal value.
func (e *Extractor) evalObjectLiteral(node *sitter.Node) (map[string]any, bool) {
	value := make(map[string]any)

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "comment":
			continue
		case "pair":
			key, ok := e.propertyKeyName(child.ChildByFieldName("key"))
			if !ok {
				return nil, false
			}
			v, ok := e.EvalLiteral(child.ChildByFieldName("value"))
			if !ok {
				return nil, false
			}
			value[key] = v
		default:
			// Shorthand properties, spreads, methods, computed keys.
			return nil, false
		}
	}

	return value, true
}

// evalArrayLiteral evaluates an array literal element-wise.
func (e *Extractor) evalArrayLiteral(node *sitter.Node) ([]any, bool) {
	value := []any{}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		v, ok := e.EvalLiteral(child)
		if !ok {
			return nil, false
		}
		value = append(value, v)
	}

	return value, true
}

// propertyKeyName returns the property name for an object literal key node.
// Only plain identifier, string, and number keys are supported.
func (e *Extractor) propertyKeyName(key *sitter.Node) (string, bool) {
	if key == nil {
		return "", false
	}
	switch key.Type() {
	case "property_identifier":
		return e.text(key), true
	case "string":
		return stringLiteralValue(e.text(key)), true
	case "number":
		return e.text(key), true
	default:
		return "", false
	}
}

// stringLiteralValue strips the surrounding quotes from a string literal's
// source text.
func stringLiteralValue(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') ||
			(s[0] == '\'' && s[len(s)-1] == '\'') ||
			(s[0] == '`' && s[len(s)-1] == '`') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// numberLiteralValue parses a numeric literal's source text. Handles decimal
// and prefixed (0x, 0o, 0b) forms as well as numeric separators.
func numberLiteralValue(s string) (float64, bool) {
	s = strings.ReplaceAll(s, "_", "")
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, true
	}
	if v, err := strconv.ParseInt(s, 0, 64); err == nil {
		return float64(v), true
	}
	if v, err := strconv.ParseUint(s, 0, 64); err == nil {
		return float64(v), true
	}
	return 0, false
}
