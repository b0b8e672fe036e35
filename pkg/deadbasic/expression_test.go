package deadbasic

import (
	"errors"
	"testing"
)

// newTestStore builds a store with a few declared variables.
func newTestStore(t *testing.T) *VariableStore {
	t.Helper()
	store := NewVariableStore()
	decls := []struct {
		name string
		typ  Type
		val  Value
	}{
		{"x", TypeInt, IntValue(5)},
		{"big", TypeLong, LongValue(9999999999)},
		{"pi", TypeDouble, DoubleValue(3.14)},
		{"name", TypeStr, StrValue("Ryan")},
	}
	for _, d := range decls {
		if err := store.Declare(d.name, d.typ, d.val); err != nil {
			t.Fatalf("Declare(%s) error: %v", d.name, err)
		}
	}
	return store
}

func TestResolveToken(t *testing.T) {
	store := newTestStore(t)
	tests := []struct {
		name     string
		tok      string
		expected Value
		wantErr  error
	}{
		{name: "quoted string", tok: `"hello"`, expected: StrValue("hello")},
		{name: "int literal", tok: "42", expected: IntValue(42)},
		{name: "negative int literal", tok: "-7", expected: IntValue(-7)},
		{name: "long literal beyond int32", tok: "3000000000", expected: LongValue(3000000000)},
		{name: "double literal", tok: "2.5", expected: DoubleValue(2.5)},
		{name: "int variable", tok: "x", expected: IntValue(5)},
		{name: "str variable", tok: "name", expected: StrValue("Ryan")},
		{name: "undeclared variable", tok: "ghost", wantErr: ErrUnknownVariable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ResolveToken(store, tt.tok)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveToken(%q) error: %v", tt.tok, err)
			}
			if v != tt.expected {
				t.Errorf("ResolveToken(%q) = %+v, want %+v", tt.tok, v, tt.expected)
			}
		})
	}
}

func TestEvalCondition(t *testing.T) {
	store := newTestStore(t)
	tests := []struct {
		name     string
		toks     []string
		expected bool
		wantErr  error
	}{
		{name: "less than true", toks: []string{"x", "<", "10"}, expected: true},
		{name: "less than false", toks: []string{"x", "<", "5"}, expected: false},
		{name: "greater than", toks: []string{"x", ">", "4"}, expected: true},
		{name: "equals numeric", toks: []string{"x", "=", "5"}, expected: true},
		{name: "not equals numeric", toks: []string{"x", "!=", "5"}, expected: false},
		{name: "less or equal", toks: []string{"x", "<=", "5"}, expected: true},
		{name: "greater or equal", toks: []string{"x", ">=", "6"}, expected: false},
		{name: "int widened against double", toks: []string{"x", ">", "pi"}, expected: true},
		{name: "int widened against long", toks: []string{"big", ">", "x"}, expected: true},
		{name: "str equality", toks: []string{"name", "=", `"Ryan"`}, expected: true},
		{name: "str inequality", toks: []string{"name", "!=", `"Bob"`}, expected: true},
		{name: "not falsy int", toks: []string{"not", "0"}, expected: true},
		{name: "not truthy var", toks: []string{"not", "x"}, expected: false},
		{name: "not empty string", toks: []string{"not", `""`}, expected: true},
		{name: "mixed str and numeric", toks: []string{"name", "=", "5"}, wantErr: ErrTypeMismatch},
		{name: "ordered op on strings", toks: []string{"name", "<", `"Bob"`}, wantErr: ErrTypeMismatch},
		{name: "empty condition", toks: nil, wantErr: ErrConditionRequired},
		{name: "two tokens", toks: []string{"x", "<"}, wantErr: ErrInvalidExpression},
		{name: "unknown operator", toks: []string{"x", "<>", "5"}, wantErr: ErrInvalidExpression},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EvalCondition(store, tt.toks)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("EvalCondition(%v) error: %v", tt.toks, err)
			}
			if got != tt.expected {
				t.Errorf("EvalCondition(%v) = %v, want %v", tt.toks, got, tt.expected)
			}
		})
	}
}

func TestAddWidening(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Value
		expected Value
	}{
		{name: "int plus int stays int", a: IntValue(2), b: IntValue(3), expected: IntValue(5)},
		{name: "int plus long widens to long", a: IntValue(2), b: LongValue(3), expected: LongValue(5)},
		{name: "long plus double widens to double", a: LongValue(2), b: DoubleValue(0.5), expected: DoubleValue(2.5)},
		{name: "int plus double widens to double", a: IntValue(1), b: DoubleValue(0.25), expected: DoubleValue(1.25)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Add(tt.a, tt.b)
			if err != nil {
				t.Fatalf("Add error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Add = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestAddRejectsStrings(t *testing.T) {
	if _, err := Add(StrValue("a"), IntValue(1)); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("err = %v, want ErrTypeMismatch", err)
	}
}

func TestEvalExpression(t *testing.T) {
	store := newTestStore(t)
	tests := []struct {
		name     string
		toks     []string
		expected Value
		wantErr  error
	}{
		{name: "single token", toks: []string{"x"}, expected: IntValue(5)},
		{name: "addition", toks: []string{"x", "+", "1"}, expected: IntValue(6)},
		{name: "addition with variable", toks: []string{"x", "+", "x"}, expected: IntValue(10)},
		{name: "unsupported operator", toks: []string{"x", "*", "2"}, wantErr: ErrInvalidExpression},
		{name: "wrong arity", toks: []string{"x", "+"}, wantErr: ErrInvalidExpression},
		{name: "string operand in addition", toks: []string{"name", "+", "1"}, wantErr: ErrTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EvalExpression(store, tt.toks)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("EvalExpression error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("EvalExpression = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestParseLiteral(t *testing.T) {
	tests := []struct {
		name     string
		typ      Type
		text     string
		expected Value
		wantErr  bool
	}{
		{name: "int", typ: TypeInt, text: "5", expected: IntValue(5)},
		{name: "int overflow", typ: TypeInt, text: "3000000000", wantErr: true},
		{name: "int rejects decimal", typ: TypeInt, text: "1.5", wantErr: true},
		{name: "long", typ: TypeLong, text: "9999999999", expected: LongValue(9999999999)},
		{name: "double", typ: TypeDouble, text: "3.14", expected: DoubleValue(3.14)},
		{name: "double accepts integer text", typ: TypeDouble, text: "3", expected: DoubleValue(3)},
		{name: "str strips quotes", typ: TypeStr, text: `"Ryan"`, expected: StrValue("Ryan")},
		{name: "str keeps bare text", typ: TypeStr, text: "Ryan", expected: StrValue("Ryan")},
		{name: "int rejects words", typ: TypeInt, text: "five", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLiteral(tt.typ, tt.text)
			if tt.wantErr {
				if !errors.Is(err, ErrTypeMismatch) {
					t.Fatalf("err = %v, want ErrTypeMismatch", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLiteral error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("ParseLiteral = %+v, want %+v", got, tt.expected)
			}
		})
	}
}
