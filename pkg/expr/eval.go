package expr

import (
	"errors"
	"fmt"
)

// eval walks the expression tree against one attribute map. Results are one of
// bool, int64, float64, or string.
func eval(n node, attrs map[string]any) (any, error) {
	switch n := n.(type) {
	case *integerLiteral:
		return n.value, nil
	case *floatLiteral:
		return n.value, nil
	case *stringLiteral:
		return n.value, nil
	case *booleanLiteral:
		return n.value, nil
	case *identifier:
		value, ok := attrs[n.name]
		if !ok {
			return nil, errors.Join(ErrUnknownAttribute, fmt.Errorf("attribute %q", n.name))
		}
		return normalize(n.name, value)
	case *prefixExpression:
		return evalPrefix(n, attrs)
	case *infixExpression:
		return evalInfix(n, attrs)
	default:
		return nil, fmt.Errorf("unsupported expression node %T", n)
	}
}

func evalPrefix(n *prefixExpression, attrs map[string]any) (any, error) {
	right, err := eval(n.right, attrs)
	if err != nil {
		return nil, err
	}
	b, ok := right.(bool)
	if !ok {
		return nil, errors.Join(ErrTypeMismatch,
			fmt.Errorf("operator %q requires a boolean operand, got %T", n.operator, right))
	}
	return !b, nil
}

func evalInfix(n *infixExpression, attrs map[string]any) (any, error) {
	// Logical operators short-circuit: the right operand is not evaluated
	// when the left one already fixes the result.
	switch n.operator {
	case "&&", "||":
		return evalLogical(n, attrs)
	}

	left, err := eval(n.left, attrs)
	if err != nil {
		return nil, err
	}
	right, err := eval(n.right, attrs)
	if err != nil {
		return nil, err
	}

	switch n.operator {
	case "==":
		eq, err := equal(left, right)
		return eq, err
	case "!=":
		eq, err := equal(left, right)
		if err != nil {
			return nil, err
		}
		return !eq, nil
	case "<", ">", "<=", ">=":
		return compare(n.operator, left, right)
	default:
		return nil, fmt.Errorf("unsupported operator %q", n.operator)
	}
}

func evalLogical(n *infixExpression, attrs map[string]any) (any, error) {
	left, err := eval(n.left, attrs)
	if err != nil {
		return nil, err
	}
	lb, ok := left.(bool)
	if !ok {
		return nil, errors.Join(ErrTypeMismatch,
			fmt.Errorf("operator %q requires boolean operands, got %T", n.operator, left))
	}

	if n.operator == "&&" && !lb {
		return false, nil
	}
	if n.operator == "||" && lb {
		return true, nil
	}

	right, err := eval(n.right, attrs)
	if err != nil {
		return nil, err
	}
	rb, ok := right.(bool)
	if !ok {
		return nil, errors.Join(ErrTypeMismatch,
			fmt.Errorf("operator %q requires boolean operands, got %T", n.operator, right))
	}
	return rb, nil
}

// equal compares two operands of compatible types. Integers and floats
// compare numerically across kinds; other cross-type comparisons are a
// type mismatch.
func equal(left, right any) (bool, error) {
	if lf, lok := toFloat(left); lok {
		if rf, rok := toFloat(right); rok {
			return lf == rf, nil
		}
		return false, mismatch("==", left, right)
	}

	switch l := left.(type) {
	case string:
		r, ok := right.(string)
		if !ok {
			return false, mismatch("==", left, right)
		}
		return l == r, nil
	case bool:
		r, ok := right.(bool)
		if !ok {
			return false, mismatch("==", left, right)
		}
		return l == r, nil
	default:
		return false, mismatch("==", left, right)
	}
}

// compare orders two operands: numbers numerically, strings lexicographically.
func compare(operator string, left, right any) (bool, error) {
	if lf, lok := toFloat(left); lok {
		rf, rok := toFloat(right)
		if !rok {
			return false, mismatch(operator, left, right)
		}
		return applyOrder(operator, lf < rf, lf == rf), nil
	}

	ls, lok := left.(string)
	rs, rok := right.(string)
	if !lok || !rok {
		return false, mismatch(operator, left, right)
	}
	return applyOrder(operator, ls < rs, ls == rs), nil
}

func applyOrder(operator string, less, eq bool) bool {
	switch operator {
	case "<":
		return less
	case ">":
		return !less && !eq
	case "<=":
		return less || eq
	default: // ">="
		return !less
	}
}

// normalize coerces an attribute value into the evaluator's operand types.
func normalize(name string, value any) (any, error) {
	switch v := value.(type) {
	case bool, string, int64, float64:
		return v, nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case uint:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case float32:
		return float64(v), nil
	case nil:
		return nil, errors.Join(ErrTypeMismatch, fmt.Errorf("attribute %q is null", name))
	default:
		return nil, errors.Join(ErrTypeMismatch,
			fmt.Errorf("attribute %q has unsupported type %T", name, value))
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func mismatch(operator string, left, right any) error {
	return errors.Join(ErrTypeMismatch,
		fmt.Errorf("operator %q cannot compare %T and %T", operator, left, right))
}
