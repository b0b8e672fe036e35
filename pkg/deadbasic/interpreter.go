package deadbasic

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/theramdev/deadbasic/pkg/logger"
)

// engineDebugLog writes interpreter-area debug output when enabled.
func engineDebugLog(format string, args ...interface{}) {
	logger.Debug(logger.AreaInterpreter, format, args...)
}

// Version of the DeadBasic language this engine implements.
const Version = "0.4.5"

// Interpreter executes DeadBasic programs. State is an instruction
// pointer into the current Program plus the variable store; there are
// no process-wide globals.
type Interpreter struct {
	store  *VariableStore
	out    io.Writer
	in     *bufio.Reader
	file   string
	direct bool

	// Console-mode block contexts, kept alive across input lines.
	consoleIf  *consoleIfContext
	consoleTry *consoleTryContext
}

type consoleIfContext struct {
	condTrue bool
	inElse   bool
}

type consoleTryContext struct {
	hasError bool
	inCatch  bool
	errName  string
	errMsg   string
}

// New creates an interpreter writing program output to out and
// reading input command responses from in.
func New(out io.Writer, in io.Reader) *Interpreter {
	br, ok := in.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(in)
	}
	return &Interpreter{
		store: NewVariableStore(),
		out:   out,
		in:    br,
		file:  "<console>",
	}
}

// Store exposes the variable store, mainly for tests.
func (ip *Interpreter) Store() *VariableStore { return ip.store }

// located stamps engine errors with the current source position.
func (ip *Interpreter) located(err error, st *Statement) error {
	var de *DeadBasicError
	if errors.As(err, &de) {
		if de.LineNumber == 0 {
			de.At(ip.file, st.Line)
		}
		if ip.direct {
			de.Direct()
		}
	}
	return err
}

// RunFile loads path as a fresh Program and runs it to completion.
func (ip *Interpreter) RunFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fileErr("FILE_NOT_FOUND", ErrFileNotFound).WithDetail(path)
		}
		return fileErr("FILE_READ", ErrFileNotFound).WithDetail(path + ": " + err.Error())
	}
	prog, err := ParseProgram(string(data), path)
	if err != nil {
		return err
	}
	ip.file = path
	ip.direct = false
	engineDebugLog("running %s: %d statements", path, len(prog.Statements))
	return ip.RunProgram(prog)
}

// RunProgram executes a parsed program. Block structure is resolved
// fully before the first statement runs, so structural errors surface
// before any side effect.
func (ip *Interpreter) RunProgram(prog *Program) error {
	blocks, err := ResolveBlocks(prog)
	if err != nil {
		return err
	}

	pc := 0
	var protect *BlockPairing // open try block whose body pc is inside

	for pc < len(prog.Statements) {
		st := &prog.Statements[pc]

		switch st.Kind {
		case StmtBlockHeader:
			pairing, _ := blocks.Pairing(pc)
			switch st.Block {
			case BlockIf:
				cond, err := EvalCondition(ip.store, st.Args)
				if err != nil {
					return ip.located(err, st)
				}
				switch {
				case cond:
					pc++
				case pairing.Split >= 0:
					pc = pairing.Split + 1
				default:
					pc = pairing.Terminator + 1
				}
			case BlockWhile:
				cond, err := EvalCondition(ip.store, st.Args)
				if err != nil {
					return ip.located(err, st)
				}
				if cond {
					pc++
				} else {
					pc = pairing.Terminator + 1
				}
			case BlockTry:
				p := pairing
				protect = &p
				pc++
			}

		case StmtElseMarker:
			// Reached by falling through the first arm: the second
			// arm is never executed after a clean first arm.
			pairing, _ := blocks.PairingAtSplit(pc)
			if st.Block == BlockTry {
				protect = nil
			}
			pc = pairing.Terminator + 1

		case StmtBlockTerminator:
			if st.Block == BlockWhile {
				// Loop-back edge: re-evaluate the header condition.
				pairing, _ := blocks.PairingAtTerminator(pc)
				pc = pairing.Header
			} else {
				if st.Block == BlockTry {
					protect = nil
				}
				pc++
			}

		default:
			if err := ip.execSimple(st); err != nil {
				err = ip.located(err, st)
				if protect != nil {
					pairing := *protect
					protect = nil
					engineDebugLog("try captured error at line %d: %v", st.Line, err)
					if pairing.Split >= 0 {
						ip.bindCatchVar(&prog.Statements[pairing.Split], err)
						pc = pairing.Split + 1
					} else {
						// try without catch: the error is suppressed.
						pc = pairing.Terminator + 1
					}
					continue
				}
				return err
			}
			pc++
		}
	}
	return nil
}

// bindCatchVar binds the optional catch error variable to the message
// of the captured error.
func (ip *Interpreter) bindCatchVar(catch *Statement, err error) {
	if len(catch.Args) == 0 {
		return
	}
	ip.store.BindStr(catch.Args[0], err.Error())
}

// ExecuteLine executes one console input line. Single-level if and
// try blocks stay open across lines; while needs the multi-line scan
// of a file and is rejected here.
func (ip *Interpreter) ExecuteLine(line string, lineNo int) error {
	ip.direct = true
	st, ok, err := Tokenize(line, lineNo)
	if err != nil {
		return ip.located(err, &Statement{Line: lineNo})
	}
	if !ok {
		return nil
	}
	if st.Block == BlockWhile && st.Kind != StmtCommand {
		return syntaxErr("WHILE_IN_CONSOLE", ErrWhileNotInConsole).Direct()
	}

	if st.Indent == 0 {
		return ip.consoleTopLevel(&st)
	}
	return ip.consoleBodyLine(&st)
}

func (ip *Interpreter) consoleTopLevel(st *Statement) error {
	switch st.Kind {
	case StmtBlockHeader:
		if ip.consoleIf != nil || ip.consoleTry != nil {
			return ip.located(syntaxErr("NESTED_BLOCK", ErrNestedBlock).WithDetail(st.Keyword), st)
		}
		if st.Block == BlockIf {
			cond, err := EvalCondition(ip.store, st.Args)
			if err != nil {
				return ip.located(err, st)
			}
			ip.consoleIf = &consoleIfContext{condTrue: cond}
			return nil
		}
		ip.consoleTry = &consoleTryContext{}
		return nil

	case StmtElseMarker:
		if st.Block == BlockIf {
			if ip.consoleIf == nil {
				return ip.located(syntaxErr("MISPLACED_ELSE", ErrFormat), st)
			}
			if ip.consoleIf.inElse {
				return ip.located(syntaxErr("MISPLACED_BLOCK", ErrFormat).WithDetail("multiple 'else' not allowed"), st)
			}
			ip.consoleIf.inElse = true
			return nil
		}
		if ip.consoleTry == nil {
			return ip.located(syntaxErr("MISPLACED_CATCH", ErrFormat), st)
		}
		if ip.consoleTry.inCatch {
			return ip.located(syntaxErr("MISPLACED_BLOCK", ErrFormat).WithDetail("multiple 'catch' not allowed"), st)
		}
		if len(st.Args) > 1 {
			return ip.located(syntaxErr("TOO_MANY_ARGUMENTS", ErrFormat).WithDetail("catch takes zero or one var name"), st)
		}
		ip.consoleTry.inCatch = true
		if len(st.Args) == 1 {
			ip.consoleTry.errName = st.Args[0]
			if ip.consoleTry.hasError {
				ip.store.BindStr(ip.consoleTry.errName, ip.consoleTry.errMsg)
			}
		}
		return nil

	case StmtBlockTerminator:
		if st.Block == BlockIf {
			if ip.consoleIf == nil {
				return ip.located(syntaxErr("MISPLACED_END", ErrFormat).WithDetail("endif"), st)
			}
			ip.consoleIf = nil
			return nil
		}
		if ip.consoleTry == nil {
			return ip.located(syntaxErr("MISPLACED_END", ErrFormat).WithDetail("endtry"), st)
		}
		ip.consoleTry = nil
		return nil

	default:
		if ip.consoleIf != nil || ip.consoleTry != nil {
			return ip.located(syntaxErr("LINE_INSIDE_BLOCK", ErrFormat), st)
		}
		return ip.located(ip.execSimple(st), st)
	}
}

func (ip *Interpreter) consoleBodyLine(st *Statement) error {
	switch st.Kind {
	case StmtBlockHeader, StmtElseMarker, StmtBlockTerminator:
		return ip.located(syntaxErr("MISPLACED_BLOCK", ErrFormat).WithDetail(st.Keyword), st)
	}

	if ctx := ip.consoleIf; ctx != nil {
		active := (!ctx.inElse && ctx.condTrue) || (ctx.inElse && !ctx.condTrue)
		if !active {
			return nil
		}
		return ip.located(ip.execSimple(st), st)
	}

	if ctx := ip.consoleTry; ctx != nil {
		switch {
		case !ctx.inCatch && !ctx.hasError:
			if err := ip.located(ip.execSimple(st), st); err != nil {
				ctx.hasError = true
				ctx.errMsg = err.Error()
			}
			return nil
		case ctx.inCatch && ctx.hasError:
			return ip.located(ip.execSimple(st), st)
		default:
			return nil
		}
	}

	return ip.located(syntaxErr("BODY_WITHOUT_BLOCK", ErrFormat), st)
}
