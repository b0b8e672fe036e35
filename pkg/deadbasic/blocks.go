package deadbasic

// BlockPairing records the statement indices of one resolved block.
type BlockPairing struct {
	Kind       BlockKind
	Header     int
	Split      int // else/catch index, -1 if absent
	Terminator int
}

// BlockTable is the jump table the execution engine consults. It is
// built once per Program, before any statement executes, so all
// structural errors surface eagerly.
type BlockTable struct {
	byHeader     map[int]BlockPairing
	bySplit      map[int]BlockPairing
	byTerminator map[int]BlockPairing
}

// Pairing looks up the block a header index opens.
func (t *BlockTable) Pairing(header int) (BlockPairing, bool) {
	p, ok := t.byHeader[header]
	return p, ok
}

// PairingAtSplit looks up the block an else/catch index splits.
func (t *BlockTable) PairingAtSplit(split int) (BlockPairing, bool) {
	p, ok := t.bySplit[split]
	return p, ok
}

// PairingAtTerminator looks up the block a terminator index closes.
func (t *BlockTable) PairingAtTerminator(term int) (BlockPairing, bool) {
	p, ok := t.byTerminator[term]
	return p, ok
}

// ResolveBlocks walks the program once, pairing every if/while/try
// header with its split marker and terminator. A single open-header
// slot enforces the no-nesting rule: opening a second block before the
// first closes fails, and bodies must stay flat.
func ResolveBlocks(p *Program) (*BlockTable, error) {
	table := &BlockTable{
		byHeader:     make(map[int]BlockPairing),
		bySplit:      make(map[int]BlockPairing),
		byTerminator: make(map[int]BlockPairing),
	}
	var open *BlockPairing

	fail := func(st *Statement, e *DeadBasicError) error {
		return e.At(p.File, st.Line)
	}

	for i := range p.Statements {
		st := &p.Statements[i]

		if st.Indent == 1 {
			switch st.Kind {
			case StmtBlockHeader:
				return nil, fail(st, syntaxErr("NESTED_BLOCK", ErrNestedBlock).WithDetail(st.Keyword))
			case StmtElseMarker, StmtBlockTerminator:
				return nil, fail(st, syntaxErr("MISPLACED_BLOCK", ErrFormat).WithDetail(st.Keyword))
			}
			if open == nil {
				return nil, fail(st, syntaxErr("BODY_WITHOUT_BLOCK", ErrFormat))
			}
			continue
		}

		switch st.Kind {
		case StmtBlockHeader:
			if open != nil {
				return nil, fail(st, syntaxErr("NESTED_BLOCK", ErrNestedBlock).
					WithDetail(st.Keyword+" inside an open "+open.Kind.String()))
			}
			open = &BlockPairing{Kind: st.Block, Header: i, Split: -1}
		case StmtElseMarker:
			if open == nil || open.Kind != st.Block {
				code := "MISPLACED_ELSE"
				if st.Block == BlockTry {
					code = "MISPLACED_CATCH"
				}
				return nil, fail(st, syntaxErr(code, ErrFormat))
			}
			if open.Split >= 0 {
				return nil, fail(st, syntaxErr("MISPLACED_BLOCK", ErrFormat).
					WithDetail("multiple '"+st.Keyword+"' not allowed"))
			}
			if st.Block == BlockTry && len(st.Args) > 1 {
				return nil, fail(st, syntaxErr("TOO_MANY_ARGUMENTS", ErrFormat).
					WithDetail("catch takes zero or one var name"))
			}
			open.Split = i
		case StmtBlockTerminator:
			if open == nil || open.Kind != st.Block {
				return nil, fail(st, syntaxErr("MISPLACED_END", ErrFormat).WithDetail(st.Keyword))
			}
			open.Terminator = i
			table.byHeader[open.Header] = *open
			if open.Split >= 0 {
				table.bySplit[open.Split] = *open
			}
			table.byTerminator[i] = *open
			open = nil
		default:
			if open != nil {
				return nil, fail(st, syntaxErr("LINE_INSIDE_BLOCK", ErrFormat).
					WithDetail("inside "+open.Kind.String()))
			}
		}
	}

	if open != nil {
		hdr := &p.Statements[open.Header]
		return nil, syntaxErr("UNTERMINATED_BLOCK", ErrUnterminatedBlock).
			WithDetail("'" + hdr.Keyword + "' is missing its 'end" + hdr.Keyword + "'").
			At(p.File, hdr.Line)
	}
	return table, nil
}
