package deadbasic

import (
	"strings"
)

// ResolveToken resolves one token to a typed value: a quoted token is
// a Str literal, a token matching the numeric grammar is the narrowest
// numeric type that parses exactly, anything else is a variable
// reference.
func ResolveToken(store *VariableStore, tok string) (Value, error) {
	if isQuoted(tok) {
		return StrValue(unquote(tok)), nil
	}
	if v, ok := parseNumericLiteral(tok); ok {
		return v, nil
	}
	if v, ok := store.Get(tok); ok {
		return v, nil
	}
	return Value{}, runtimeErr("UNKNOWN_VARIABLE", ErrUnknownVariable).WithDetail(tok)
}

// compareNumeric applies an ordered or equality operator after
// widening both operands to their common numeric type.
func compareNumeric(a, b Value, op string) (bool, error) {
	if widerType(a.Type, b.Type) == TypeDouble {
		af, bf := a.Float64(), b.Float64()
		switch op {
		case "<":
			return af < bf, nil
		case ">":
			return af > bf, nil
		case "<=":
			return af <= bf, nil
		case ">=":
			return af >= bf, nil
		case "=":
			return af == bf, nil
		case "!=":
			return af != bf, nil
		}
	} else {
		switch op {
		case "<":
			return a.Num < b.Num, nil
		case ">":
			return a.Num > b.Num, nil
		case "<=":
			return a.Num <= b.Num, nil
		case ">=":
			return a.Num >= b.Num, nil
		case "=":
			return a.Num == b.Num, nil
		case "!=":
			return a.Num != b.Num, nil
		}
	}
	return false, syntaxErr("INVALID_CONDITION", ErrInvalidExpression).WithDetail("unknown operator '" + op + "'")
}

// EvalCondition evaluates the condition tokens of an if or while
// header: either "not <value>" or "<lhs> <op> <rhs>" with
// op in {=, !=, <, >, <=, >=}.
func EvalCondition(store *VariableStore, toks []string) (bool, error) {
	if len(toks) == 0 {
		return false, syntaxErr("CONDITION_REQUIRED", ErrConditionRequired)
	}
	if strings.ToLower(toks[0]) == "not" {
		if len(toks) != 2 {
			return false, syntaxErr("INVALID_CONDITION", ErrInvalidExpression).WithDetail("'not' expects exactly one value")
		}
		v, err := ResolveToken(store, toks[1])
		if err != nil {
			return false, err
		}
		return !v.Truthy(), nil
	}
	if len(toks) != 3 {
		return false, syntaxErr("INVALID_CONDITION", ErrInvalidExpression)
	}
	lhs, err := ResolveToken(store, toks[0])
	if err != nil {
		return false, err
	}
	rhs, err := ResolveToken(store, toks[2])
	if err != nil {
		return false, err
	}
	op := toks[1]

	if lhs.Type == TypeStr || rhs.Type == TypeStr {
		if lhs.Type != rhs.Type {
			return false, runtimeErr("TYPE_MISMATCH", ErrTypeMismatch).
				WithDetail("cannot compare " + lhs.Type.String() + " with " + rhs.Type.String())
		}
		switch op {
		case "=":
			return lhs.Str == rhs.Str, nil
		case "!=":
			return lhs.Str != rhs.Str, nil
		}
		return false, runtimeErr("TYPE_MISMATCH", ErrTypeMismatch).
			WithDetail("'" + op + "' requires numeric operands")
	}
	return compareNumeric(lhs, rhs, op)
}

// Add evaluates the sum of two numeric values, widening the narrower
// operand (Int -> Long -> Double).
func Add(a, b Value) (Value, error) {
	if !a.IsNumeric() || !b.IsNumeric() {
		return Value{}, runtimeErr("NOT_NUMERIC", ErrTypeMismatch)
	}
	switch widerType(a.Type, b.Type) {
	case TypeDouble:
		return DoubleValue(a.Float64() + b.Float64()), nil
	case TypeLong:
		return LongValue(a.Num + b.Num), nil
	default:
		return IntValue(a.Num + b.Num), nil
	}
}

// EvalExpression evaluates an assignment right-hand side: a single
// token, or the binary addition form "<a> + <b>".
func EvalExpression(store *VariableStore, toks []string) (Value, error) {
	switch len(toks) {
	case 1:
		return ResolveToken(store, toks[0])
	case 3:
		if toks[1] != "+" {
			return Value{}, syntaxErr("INVALID_EXPRESSION", ErrInvalidExpression).
				WithDetail("unknown operator '" + toks[1] + "'")
		}
		lhs, err := ResolveToken(store, toks[0])
		if err != nil {
			return Value{}, err
		}
		rhs, err := ResolveToken(store, toks[2])
		if err != nil {
			return Value{}, err
		}
		return Add(lhs, rhs)
	}
	return Value{}, syntaxErr("INVALID_EXPRESSION", ErrInvalidExpression)
}
