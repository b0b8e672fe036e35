package deadbasic

import (
	"strings"
)

// commandKeywords is the fixed table of built-in commands. Block and
// declaration keywords are classified separately.
var commandKeywords = map[string]bool{
	"printtext": true,
	"showvars":  true,
	"openfile":  true,
	"add":       true,
	"input":     true,
	"help":      true,
}

// indentDepth determines the nesting depth of a line. Bodies are
// indented by exactly one TAB or exactly four spaces; anything else
// in the leading whitespace is a format error.
func indentDepth(line string) (int, string, error) {
	rest := line
	depth := 0
	switch {
	case strings.HasPrefix(rest, "\t"):
		depth = 1
		rest = rest[1:]
	case strings.HasPrefix(rest, "    "):
		depth = 1
		rest = rest[4:]
	case strings.HasPrefix(rest, " "):
		return 0, "", syntaxErr("BAD_INDENTATION", ErrFormat)
	}
	if depth == 1 && len(rest) > 0 && (rest[0] == ' ' || rest[0] == '\t') {
		// A second indent level would mean a nested body.
		return 0, "", syntaxErr("BAD_INDENTATION", ErrFormat)
	}
	return depth, rest, nil
}

// splitFields splits a statement on whitespace while keeping quoted
// string literals ("...") as single tokens, quotes preserved. A '#'
// outside quotes starts a comment and ends the statement.
func splitFields(s string) ([]string, error) {
	var fields []string
	var cur strings.Builder
	inString := false
	flush := func() {
		if cur.Len() > 0 {
			fields = append(fields, cur.String())
			cur.Reset()
		}
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == '"':
			inString = !inString
			cur.WriteByte(ch)
		case !inString && ch == '#':
			flush()
			return fields, nil
		case !inString && (ch == ' ' || ch == '\t'):
			flush()
		default:
			cur.WriteByte(ch)
		}
	}
	if inString {
		return nil, syntaxErr("UNTERMINATED_STRING", ErrFormat)
	}
	flush()
	return fields, nil
}

// Tokenize parses one raw source line into a Statement. The second
// return value is false for blank and comment-only lines.
func Tokenize(line string, lineNo int) (Statement, bool, error) {
	if strings.TrimSpace(line) == "" {
		return Statement{}, false, nil
	}
	depth, rest, err := indentDepth(line)
	if err != nil {
		return Statement{}, false, err
	}
	trimmed := strings.TrimSpace(rest)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "``") {
		return Statement{}, false, nil
	}
	tokens, err := splitFields(trimmed)
	if err != nil {
		return Statement{}, false, err
	}
	if len(tokens) == 0 {
		return Statement{}, false, nil
	}

	st := Statement{
		Indent:  depth,
		Line:    lineNo,
		Keyword: strings.ToLower(tokens[0]),
		Args:    tokens[1:],
	}

	if declType, ok := TypeFromKeyword(st.Keyword); ok {
		if len(st.Args) < 2 {
			return Statement{}, false, syntaxErr("MISSING_ARGUMENT", ErrFormat).
				WithDetail(st.Keyword + " needs: <name> <value>")
		}
		st.Kind = StmtDeclaration
		st.DeclType = declType
		st.Name = st.Args[0]
		st.Args = st.Args[1:]
		return st, true, nil
	}

	// Assignment: "<name> = <expr>" with '=' as the second token.
	if len(tokens) >= 2 && tokens[1] == "=" {
		if len(tokens) < 3 {
			return Statement{}, false, syntaxErr("INVALID_EXPRESSION", ErrInvalidExpression)
		}
		st.Kind = StmtAssignment
		st.Name = tokens[0]
		st.Args = tokens[2:]
		return st, true, nil
	}

	switch st.Keyword {
	case "if":
		st.Kind = StmtBlockHeader
		st.Block = BlockIf
	case "while":
		st.Kind = StmtBlockHeader
		st.Block = BlockWhile
	case "try":
		st.Kind = StmtBlockHeader
		st.Block = BlockTry
	case "else":
		st.Kind = StmtElseMarker
		st.Block = BlockIf
	case "catch":
		st.Kind = StmtElseMarker
		st.Block = BlockTry
	case "endif":
		st.Kind = StmtBlockTerminator
		st.Block = BlockIf
	case "endwhile":
		st.Kind = StmtBlockTerminator
		st.Block = BlockWhile
	case "endtry":
		st.Kind = StmtBlockTerminator
		st.Block = BlockTry
	default:
		if !commandKeywords[st.Keyword] {
			return Statement{}, false, syntaxErr("UNKNOWN_COMMAND", ErrUnknownCommand).WithDetail(tokens[0])
		}
		st.Kind = StmtCommand
	}

	if st.Kind == StmtBlockHeader && st.Block != BlockTry && len(st.Args) == 0 {
		return Statement{}, false, syntaxErr("CONDITION_REQUIRED", ErrConditionRequired).WithDetail(st.Keyword)
	}
	return st, true, nil
}

// ParseProgram tokenizes a whole source unit into a Program.
func ParseProgram(src, file string) (*Program, error) {
	prog := &Program{File: file}
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")
	for i, line := range lines {
		st, ok, err := Tokenize(line, i+1)
		if err != nil {
			if de, isDB := err.(*DeadBasicError); isDB {
				de.At(file, i+1)
			}
			return nil, err
		}
		if !ok {
			continue
		}
		prog.Statements = append(prog.Statements, st)
	}
	return prog, nil
}
