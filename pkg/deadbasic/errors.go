// Package deadbasic implements the DeadBasic language engine: tokenizing
// source lines, resolving block structure, maintaining a typed variable
// store, evaluating simple expressions and executing statements.
package deadbasic

import (
	"errors"
	"fmt"
)

// Error definitions specific to the DeadBasic engine. These are the
// stable kinds callers can match with errors.Is; the structured
// DeadBasicError wraps one of them and carries position information.
var (
	ErrFormat            = errors.New("format error")
	ErrUnknownCommand    = errors.New("unknown command")
	ErrUnknownVariable   = errors.New("unknown variable")
	ErrTypeMismatch      = errors.New("type mismatch")
	ErrNestedBlock       = errors.New("nested block not supported")
	ErrUnterminatedBlock = errors.New("unterminated block")
	ErrFileNotFound      = errors.New("file not found")
	ErrDuplicateVariable = errors.New("variable already declared")
	ErrInvalidExpression = errors.New("invalid expression")
	ErrConditionRequired = errors.New("condition required")
	ErrWhileNotInConsole = errors.New("while/endwhile are only supported in .ba files")
	ErrMissingArgument   = errors.New("required argument is missing")
)

// Error categories, printed in upper case like classic interpreters do.
const (
	ErrCategorySyntax  = "SYNTAX ERROR"
	ErrCategoryRuntime = "RUNTIME ERROR"
	ErrCategoryFile    = "FILE ERROR"
)

// FriendlyErrorTexts maps error codes to user-facing messages.
var FriendlyErrorTexts = map[string]string{
	"BAD_INDENTATION":     "BODY LINES MUST BE INDENTED BY ONE TAB OR FOUR SPACES",
	"UNTERMINATED_STRING": "STRING LITERAL IS MISSING ITS CLOSING QUOTE",
	"UNKNOWN_COMMAND":     "COMMAND NOT RECOGNIZED",
	"UNKNOWN_VARIABLE":    "VARIABLE NOT DECLARED",
	"TYPE_MISMATCH":       "VALUE DOES NOT MATCH THE DECLARED TYPE",
	"DUPLICATE_VARIABLE":  "VARIABLE ALREADY DECLARED",
	"NESTED_BLOCK":        "NESTED BLOCKS ARE NOT SUPPORTED",
	"UNTERMINATED_BLOCK":  "FILE ENDED WITH AN OPEN BLOCK",
	"FILE_NOT_FOUND":      "FILE NOT FOUND",
	"INVALID_LITERAL":     "LITERAL CANNOT BE PARSED UNDER THE DECLARED TYPE",
	"CONDITION_REQUIRED":  "CONDITION EXPECTED AFTER IF/WHILE",
	"INVALID_CONDITION":   "CONDITION MUST BE: <lhs> <op> <rhs> OR: not <value>",
	"INVALID_EXPRESSION":  "EXPRESSION MUST BE A SINGLE VALUE OR: <a> + <b>",
	"MISSING_ARGUMENT":    "REQUIRED ARGUMENT IS MISSING",
	"TOO_MANY_ARGUMENTS":  "TOO MANY ARGUMENTS PROVIDED",
	"NOT_NUMERIC":         "OPERAND IS NOT NUMERIC",
	"MISPLACED_BLOCK":     "BLOCK KEYWORDS MUST BE AT TOP LEVEL (NO INDENT)",
	"MISPLACED_ELSE":      "'else' WITHOUT MATCHING 'if'",
	"MISPLACED_CATCH":     "'catch' WITHOUT MATCHING 'try'",
	"MISPLACED_END":       "BLOCK TERMINATOR WITHOUT MATCHING HEADER",
	"BODY_WITHOUT_BLOCK":  "INDENTED LINE WITHOUT AN OPEN while/if/try",
	"LINE_INSIDE_BLOCK":   "INSIDE A BLOCK: EXPECTED AN INDENTED LINE OR THE CLOSING KEYWORD",
	"WHILE_IN_CONSOLE":    "while/endwhile ARE ONLY SUPPORTED IN .ba FILES, NOT IN THE CONSOLE",
	"UNKNOWN_TYPE":        "TYPE MUST BE ONE OF int, long, double, str",
	"INPUT_FAILED":        "COULD NOT READ INPUT",
	"FILE_READ":           "FILE COULD NOT BE READ",
}

// DeadBasicError is a structured engine error with source position.
type DeadBasicError struct {
	Category   string // SYNTAX ERROR, RUNTIME ERROR, FILE ERROR
	Code       string // key into FriendlyErrorTexts
	Detail     string // optional extra context (token, name, path)
	File       string // source file, empty in direct mode
	LineNumber int    // 1-based source line, 0 when unknown
	DirectMode bool   // error raised from a console line
	err        error  // sentinel for errors.Is
}

// Error implements the error interface.
func (de *DeadBasicError) Error() string {
	text := FriendlyErrorTexts[de.Code]
	if text == "" {
		text = de.Code
	}
	if de.Detail != "" {
		text += ": " + de.Detail
	}
	if de.DirectMode || de.LineNumber == 0 {
		return de.Category + ": " + text
	}
	file := de.File
	if file == "" {
		file = "<input>"
	}
	return fmt.Sprintf("%s [%s:line %d]: %s", de.Category, file, de.LineNumber, text)
}

// Unwrap exposes the sentinel kind so callers can use errors.Is.
func (de *DeadBasicError) Unwrap() error { return de.err }

// NewDeadBasicError creates a structured error of the given kind.
func NewDeadBasicError(category, code string, kind error) *DeadBasicError {
	return &DeadBasicError{Category: category, Code: code, err: kind}
}

// WithDetail attaches extra context to the message.
func (de *DeadBasicError) WithDetail(detail string) *DeadBasicError {
	de.Detail = detail
	return de
}

// At attaches the source position.
func (de *DeadBasicError) At(file string, line int) *DeadBasicError {
	de.File = file
	de.LineNumber = line
	return de
}

// Direct marks the error as raised from a console line.
func (de *DeadBasicError) Direct() *DeadBasicError {
	de.DirectMode = true
	return de
}

func syntaxErr(code string, kind error) *DeadBasicError {
	return NewDeadBasicError(ErrCategorySyntax, code, kind)
}

func runtimeErr(code string, kind error) *DeadBasicError {
	return NewDeadBasicError(ErrCategoryRuntime, code, kind)
}

func fileErr(code string, kind error) *DeadBasicError {
	return NewDeadBasicError(ErrCategoryFile, code, kind)
}
