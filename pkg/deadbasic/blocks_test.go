package deadbasic

import (
	"errors"
	"testing"
)

func mustParse(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := ParseProgram(src, "test.ba")
	if err != nil {
		t.Fatalf("ParseProgram error: %v", err)
	}
	return prog
}

func TestResolveBlocksPairsIfElse(t *testing.T) {
	prog := mustParse(t, "if x = 1\n\tprinttext a\nelse\n\tprinttext b\nendif\n")
	table, err := ResolveBlocks(prog)
	if err != nil {
		t.Fatalf("ResolveBlocks error: %v", err)
	}
	pairing, ok := table.Pairing(0)
	if !ok {
		t.Fatal("no pairing for header at index 0")
	}
	if pairing.Kind != BlockIf || pairing.Split != 2 || pairing.Terminator != 4 {
		t.Errorf("pairing = %+v, want split 2 terminator 4", pairing)
	}
	if p, ok := table.PairingAtSplit(2); !ok || p.Header != 0 {
		t.Errorf("PairingAtSplit(2) = %+v ok=%v", p, ok)
	}
	if p, ok := table.PairingAtTerminator(4); !ok || p.Header != 0 {
		t.Errorf("PairingAtTerminator(4) = %+v ok=%v", p, ok)
	}
}

func TestResolveBlocksPairsWhile(t *testing.T) {
	prog := mustParse(t, "while x < 3\n\tx = x + 1\nendwhile\n")
	table, err := ResolveBlocks(prog)
	if err != nil {
		t.Fatalf("ResolveBlocks error: %v", err)
	}
	pairing, _ := table.Pairing(0)
	if pairing.Kind != BlockWhile || pairing.Split != -1 || pairing.Terminator != 2 {
		t.Errorf("pairing = %+v, want no split, terminator 2", pairing)
	}
}

func TestResolveBlocksSequentialBlocks(t *testing.T) {
	src := "if x = 1\n\tprinttext a\nendif\nwhile x < 2\n\tx = x + 1\nendwhile\n"
	prog := mustParse(t, src)
	table, err := ResolveBlocks(prog)
	if err != nil {
		t.Fatalf("ResolveBlocks error: %v", err)
	}
	if _, ok := table.Pairing(0); !ok {
		t.Error("missing pairing for first header")
	}
	if _, ok := table.Pairing(3); !ok {
		t.Error("missing pairing for second header")
	}
}

func TestResolveBlocksErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{
			name: "header inside open block",
			src:  "if x = 1\nwhile x < 2\n\tprinttext a\nendwhile\nendif\n",
			want: ErrNestedBlock,
		},
		{
			name: "header in body",
			src:  "while x < 2\n\tif x = 1\nendwhile\n",
			want: ErrNestedBlock,
		},
		{
			name: "terminator in body",
			src:  "while x < 2\n\tendwhile\nendwhile\n",
			want: ErrFormat,
		},
		{
			name: "body line without block",
			src:  "\tprinttext a\n",
			want: ErrFormat,
		},
		{
			name: "else without if",
			src:  "else\n",
			want: ErrFormat,
		},
		{
			name: "else for while",
			src:  "while x < 2\n\tx = x + 1\nelse\nendwhile\n",
			want: ErrFormat,
		},
		{
			name: "catch without try",
			src:  "catch err\n",
			want: ErrFormat,
		},
		{
			name: "double else",
			src:  "if x = 1\n\tprinttext a\nelse\nelse\nendif\n",
			want: ErrFormat,
		},
		{
			name: "mismatched terminator",
			src:  "if x = 1\n\tprinttext a\nendwhile\n",
			want: ErrFormat,
		},
		{
			name: "unterminated if",
			src:  "if x = 1\n\tprinttext a\n",
			want: ErrUnterminatedBlock,
		},
		{
			name: "unterminated while",
			src:  "while x < 2\n\tx = x + 1\n",
			want: ErrUnterminatedBlock,
		},
		{
			name: "top level line inside open block",
			src:  "if x = 1\nprinttext a\nendif\n",
			want: ErrFormat,
		},
		{
			name: "catch with two args",
			src:  "try\n\tprinttext a\ncatch a b\nendtry\n",
			want: ErrFormat,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := mustParse(t, tt.src)
			_, err := ResolveBlocks(prog)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestResolveBlocksTryCatch(t *testing.T) {
	prog := mustParse(t, "try\n\tadd 1 x\ncatch err\n\tprinttext err\nendtry\n")
	table, err := ResolveBlocks(prog)
	if err != nil {
		t.Fatalf("ResolveBlocks error: %v", err)
	}
	pairing, _ := table.Pairing(0)
	if pairing.Kind != BlockTry || pairing.Split != 2 || pairing.Terminator != 4 {
		t.Errorf("pairing = %+v", pairing)
	}
}
