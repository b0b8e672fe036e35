package deadbasic

import (
	"math"
	"strconv"
	"strings"
)

// Type enumerates the declared variable types.
type Type int

const (
	TypeInt Type = iota
	TypeLong
	TypeDouble
	TypeStr
)

var typeNames = map[Type]string{
	TypeInt:    "int",
	TypeLong:   "long",
	TypeDouble: "double",
	TypeStr:    "str",
}

func (t Type) String() string { return typeNames[t] }

// TypeFromKeyword maps a declaration keyword to its type.
func TypeFromKeyword(kw string) (Type, bool) {
	switch kw {
	case "int":
		return TypeInt, true
	case "long":
		return TypeLong, true
	case "double":
		return TypeDouble, true
	case "str":
		return TypeStr, true
	}
	return 0, false
}

// Value is a typed payload. Int and Long share the integer slot,
// Double uses the float slot, Str the string slot.
type Value struct {
	Type  Type
	Num   int64
	Float float64
	Str   string
}

func IntValue(n int64) Value      { return Value{Type: TypeInt, Num: n} }
func LongValue(n int64) Value     { return Value{Type: TypeLong, Num: n} }
func DoubleValue(f float64) Value { return Value{Type: TypeDouble, Float: f} }
func StrValue(s string) Value     { return Value{Type: TypeStr, Str: s} }

// IsNumeric reports whether the value participates in arithmetic.
func (v Value) IsNumeric() bool { return v.Type != TypeStr }

// Float64 returns the numeric payload widened to float64.
func (v Value) Float64() float64 {
	if v.Type == TypeDouble {
		return v.Float
	}
	return float64(v.Num)
}

// Truthy implements condition truthiness: numeric zero and the empty
// string are false, everything else is true.
func (v Value) Truthy() bool {
	if v.Type == TypeStr {
		return v.Str != ""
	}
	if v.Type == TypeDouble {
		return v.Float != 0
	}
	return v.Num != 0
}

// String renders the value the way printtext and showvars display it.
func (v Value) String() string {
	switch v.Type {
	case TypeDouble:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case TypeStr:
		return v.Str
	default:
		return strconv.FormatInt(v.Num, 10)
	}
}

// ParseLiteral parses literal text under the grammar of the declared
// type. It never truncates: text that does not parse exactly fails.
func ParseLiteral(t Type, text string) (Value, error) {
	switch t {
	case TypeInt:
		n, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return Value{}, runtimeErr("INVALID_LITERAL", ErrTypeMismatch).WithDetail("'" + text + "' is not an int")
		}
		return IntValue(n), nil
	case TypeLong:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Value{}, runtimeErr("INVALID_LITERAL", ErrTypeMismatch).WithDetail("'" + text + "' is not a long")
		}
		return LongValue(n), nil
	case TypeDouble:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, runtimeErr("INVALID_LITERAL", ErrTypeMismatch).WithDetail("'" + text + "' is not a double")
		}
		return DoubleValue(f), nil
	case TypeStr:
		return StrValue(unquote(text)), nil
	}
	return Value{}, runtimeErr("INVALID_LITERAL", ErrTypeMismatch).WithDetail("unknown type")
}

// parseNumericLiteral infers the narrowest numeric type that parses
// the token exactly: Int, then Long, then Double.
func parseNumericLiteral(text string) (Value, bool) {
	if n, err := strconv.ParseInt(text, 10, 32); err == nil {
		return IntValue(n), true
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return LongValue(n), true
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil && !math.IsInf(f, 0) {
		return DoubleValue(f), true
	}
	return Value{}, false
}

// widerType returns the common type two numeric operands widen to,
// following Int -> Long -> Double.
func widerType(a, b Type) Type {
	if a == TypeDouble || b == TypeDouble {
		return TypeDouble
	}
	if a == TypeLong || b == TypeLong {
		return TypeLong
	}
	return TypeInt
}

// isQuoted reports whether the token is a double-quoted string literal.
func isQuoted(tok string) bool {
	return len(tok) >= 2 && strings.HasPrefix(tok, `"`) && strings.HasSuffix(tok, `"`)
}

// unquote strips one pair of surrounding double quotes, if present.
func unquote(tok string) string {
	if isQuoted(tok) {
		return tok[1 : len(tok)-1]
	}
	return tok
}
