package deadbasic

// StatementKind is the closed set of parsed line variants. Dispatch in
// the engine is an exhaustive switch over these, never a string lookup.
type StatementKind int

const (
	StmtDeclaration StatementKind = iota
	StmtAssignment
	StmtCommand
	StmtBlockHeader
	StmtElseMarker
	StmtBlockTerminator
)

// BlockKind identifies which block family a header, split marker or
// terminator belongs to.
type BlockKind int

const (
	BlockIf BlockKind = iota
	BlockWhile
	BlockTry
)

var blockNames = map[BlockKind]string{
	BlockIf:    "if",
	BlockWhile: "while",
	BlockTry:   "try",
}

func (k BlockKind) String() string { return blockNames[k] }

// Statement is one parsed source line. Immutable once parsed.
type Statement struct {
	Kind     StatementKind
	Block    BlockKind // header/marker/terminator family
	Indent   int       // 0 = top level, 1 = block body
	Line     int       // 1-based source line number
	Keyword  string    // lower-cased first token
	DeclType Type      // declarations only
	Name     string    // declaration/assignment target
	Args     []string  // remaining raw tokens, quotes preserved
}

// Program is the ordered statement sequence of one source unit.
type Program struct {
	File       string
	Statements []Statement
}
