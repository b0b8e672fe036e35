package deadbasic

import (
	"errors"
	"testing"
)

func TestTokenizeClassification(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		kind     StatementKind
		block    BlockKind
		keyword  string
		declName string
		args     []string
	}{
		{
			name:     "int declaration",
			line:     "int x 5",
			kind:     StmtDeclaration,
			keyword:  "int",
			declName: "x",
			args:     []string{"5"},
		},
		{
			name:     "str declaration keeps quoted token",
			line:     `str name "Ryan Smith"`,
			kind:     StmtDeclaration,
			keyword:  "str",
			declName: "name",
			args:     []string{`"Ryan Smith"`},
		},
		{
			name:    "assignment",
			line:    "x = x + 1",
			kind:    StmtAssignment,
			keyword: "x",
			args:    []string{"x", "+", "1"},
		},
		{
			name:    "if header",
			line:    "if x < 3",
			kind:    StmtBlockHeader,
			block:   BlockIf,
			keyword: "if",
			args:    []string{"x", "<", "3"},
		},
		{
			name:    "while header",
			line:    "while not done",
			kind:    StmtBlockHeader,
			block:   BlockWhile,
			keyword: "while",
			args:    []string{"not", "done"},
		},
		{
			name:    "try header",
			line:    "try",
			kind:    StmtBlockHeader,
			block:   BlockTry,
			keyword: "try",
		},
		{
			name:    "else marker",
			line:    "else",
			kind:    StmtElseMarker,
			block:   BlockIf,
			keyword: "else",
		},
		{
			name:    "catch marker with var",
			line:    "catch err",
			kind:    StmtElseMarker,
			block:   BlockTry,
			keyword: "catch",
			args:    []string{"err"},
		},
		{
			name:    "endwhile terminator",
			line:    "endwhile",
			kind:    StmtBlockTerminator,
			block:   BlockWhile,
			keyword: "endwhile",
		},
		{
			name:    "printtext command",
			line:    `printtext "hello" x`,
			kind:    StmtCommand,
			keyword: "printtext",
			args:    []string{`"hello"`, "x"},
		},
		{
			name:    "keywords are case insensitive",
			line:    "PRINTTEXT hi",
			kind:    StmtCommand,
			keyword: "printtext",
			args:    []string{"hi"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, ok, err := Tokenize(tt.line, 1)
			if err != nil {
				t.Fatalf("Tokenize(%q) error: %v", tt.line, err)
			}
			if !ok {
				t.Fatalf("Tokenize(%q) returned no statement", tt.line)
			}
			if st.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", st.Kind, tt.kind)
			}
			if st.Kind == StmtBlockHeader || st.Kind == StmtElseMarker || st.Kind == StmtBlockTerminator {
				if st.Block != tt.block {
					t.Errorf("block = %v, want %v", st.Block, tt.block)
				}
			}
			if st.Keyword != tt.keyword {
				t.Errorf("keyword = %q, want %q", st.Keyword, tt.keyword)
			}
			if tt.declName != "" && st.Name != tt.declName {
				t.Errorf("name = %q, want %q", st.Name, tt.declName)
			}
			if len(st.Args) != len(tt.args) {
				t.Fatalf("args = %v, want %v", st.Args, tt.args)
			}
			for i := range tt.args {
				if st.Args[i] != tt.args[i] {
					t.Errorf("args[%d] = %q, want %q", i, st.Args[i], tt.args[i])
				}
			}
		})
	}
}

func TestTokenizeSkipsBlanksAndComments(t *testing.T) {
	for _, line := range []string{"", "   ", "\t", "# a comment", "`` old style comment", "    # indented comment"} {
		if _, ok, err := Tokenize(line, 1); err != nil || ok {
			t.Errorf("Tokenize(%q) = ok=%v err=%v, want skipped", line, ok, err)
		}
	}
}

func TestTokenizeStripsTrailingComment(t *testing.T) {
	st, ok, err := Tokenize("int x 5 # the counter", 1)
	if err != nil || !ok {
		t.Fatalf("Tokenize error: %v", err)
	}
	if len(st.Args) != 1 || st.Args[0] != "5" {
		t.Errorf("args = %v, want [5]", st.Args)
	}
}

func TestTokenizeKeepsHashInsideString(t *testing.T) {
	st, ok, err := Tokenize(`printtext "#1 result"`, 1)
	if err != nil || !ok {
		t.Fatalf("Tokenize error: %v", err)
	}
	if len(st.Args) != 1 || st.Args[0] != `"#1 result"` {
		t.Errorf("args = %v", st.Args)
	}
}

func TestTokenizeIndentation(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		depth     int
		wantError bool
	}{
		{name: "top level", line: "printtext hi", depth: 0},
		{name: "one tab", line: "\tprinttext hi", depth: 1},
		{name: "four spaces", line: "    printtext hi", depth: 1},
		{name: "two spaces", line: "  printtext hi", wantError: true},
		{name: "tab then space", line: "\t printtext hi", wantError: true},
		{name: "two tabs", line: "\t\tprinttext hi", wantError: true},
		{name: "eight spaces", line: "        printtext hi", wantError: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, ok, err := Tokenize(tt.line, 1)
			if tt.wantError {
				if !errors.Is(err, ErrFormat) {
					t.Fatalf("err = %v, want ErrFormat", err)
				}
				return
			}
			if err != nil || !ok {
				t.Fatalf("Tokenize error: %v", err)
			}
			if st.Indent != tt.depth {
				t.Errorf("indent = %d, want %d", st.Indent, tt.depth)
			}
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want error
	}{
		{name: "unknown command", line: "frobnicate x", want: ErrUnknownCommand},
		{name: "unterminated string", line: `printtext "oops`, want: ErrFormat},
		{name: "declaration missing value", line: "int x", want: ErrFormat},
		{name: "if without condition", line: "if", want: ErrConditionRequired},
		{name: "while without condition", line: "while", want: ErrConditionRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Tokenize(tt.line, 1)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseProgramLineNumbers(t *testing.T) {
	src := "# header comment\nint x 0\n\nprinttext x\n"
	prog, err := ParseProgram(src, "test.ba")
	if err != nil {
		t.Fatalf("ParseProgram error: %v", err)
	}
	if len(prog.Statements) != 2 {
		t.Fatalf("statements = %d, want 2", len(prog.Statements))
	}
	if prog.Statements[0].Line != 2 || prog.Statements[1].Line != 4 {
		t.Errorf("line numbers = %d, %d, want 2, 4", prog.Statements[0].Line, prog.Statements[1].Line)
	}
}
