package main

import (
	"fmt"
	"strings"
)

//
// Error kinds.  Every failure the interpreter can produce is tagged
// with one of these; the REPL renders them and resumes reading.
// errExecutionReachedEnd is an internal signal only: the END
// statement raises it to unwind the statement executor, and execute
// translates it to success
//

type errKind int

const (
	errExpectedStatement errKind = iota
	errExpectedCommand
	errExpectedKeyword
	errExpectedVariableName
	errExpectedRelationalOperator
	errExpectedChar
	errUnexpectedKeyword
	errUnexpectedOperator
	errUnexpectedTokensAtEndOfLine
	errFactorCouldNotBeParsed
	errNumberParse
	errInvalidLineIndex
	errExpectedAsciiInput
	errCommandNotUsableInInteractiveMode
	errReturnOnEmptyStack
	errDivisionByZero
	errInterrupted
	errExecutionReachedEnd
)

func (k errKind) String() string {

	switch k {
	default:
		return "error"

	case errExpectedStatement:
		return "Expected a statement"

	case errExpectedCommand:
		return "Expected a command"

	case errExpectedKeyword:
		return "Expected a keyword"

	case errExpectedVariableName:
		return "Expected a variable name"

	case errExpectedRelationalOperator:
		return "Expected a relational operator"

	case errExpectedChar:
		return "Expected character"

	case errUnexpectedKeyword:
		return "Unexpected keyword"

	case errUnexpectedOperator:
		return "Unexpected operator"

	case errUnexpectedTokensAtEndOfLine:
		return "Unexpected tokens at end of line"

	case errFactorCouldNotBeParsed:
		return "Factor could not be parsed"

	case errNumberParse:
		return fmt.Sprintf("Number out of range [%d; %d]",
			numberMin, numberMax)

	case errInvalidLineIndex:
		return fmt.Sprintf("Line numbers should be in range [%d; %d]",
			lineIndexMin, lineIndexMax)

	case errExpectedAsciiInput:
		return "Input must be ASCII only"

	case errCommandNotUsableInInteractiveMode:
		return "GOSUB cannot be used in interactive mode"

	case errReturnOnEmptyStack:
		return "RETURN with no GOSUB outstanding"

	case errDivisionByZero:
		return "Division by 0"

	case errInterrupted:
		return "Interrupted"

	case errExecutionReachedEnd:
		return "Execution reached END"
	}
}

//
// basicError carries a kind plus whatever context was available at
// the point of failure: the statement text, the cursor offset into
// it, and (once the run loop has seen it) the offending line number
//

type basicError struct {
	kind   errKind
	ch     byte  // the wanted character, for errExpectedChar
	cause  error // the strconv failure, for errNumberParse
	lineNo int16 // 0 in immediate mode
	stmt   string
	offset int // -1 when no location was recorded
}

func (e *basicError) Error() string {

	msg := e.kind.String()

	if e.kind == errExpectedChar {
		msg = fmt.Sprintf("Expected '%c'", e.ch)
	}

	if e.lineNo != 0 {
		return fmt.Sprintf("line %d: %s", e.lineNo, msg)
	}

	return msg
}

func (e *basicError) Unwrap() error {

	return e.cause
}

//
// render produces the full diagnostic: the message, the context
// line, and a caret anchored at the recorded offset.  When the error
// came out of a stored line, the caret is shifted by the width of
// the "<number> " prefix the context line is printed with
//

func (e *basicError) render() string {

	var sb strings.Builder

	sb.WriteString(e.Error())

	if e.stmt == "" {
		return sb.String()
	}

	sb.WriteByte('\n')

	prefix := ""
	if e.lineNo != 0 {
		prefix = fmt.Sprintf("%d ", e.lineNo)
	}

	sb.WriteString("  ")
	sb.WriteString(prefix)
	sb.WriteString(e.stmt)

	if e.offset >= 0 {
		sb.WriteByte('\n')
		sb.WriteString("  ")
		sb.WriteString(strings.Repeat(" ", len(prefix)+e.offset))
		sb.WriteByte('^')
	}

	return sb.String()
}

//
// Constructors.  streamError snapshots the statement and cursor
// position so the caret lands where the parse gave up
//

func newError(kind errKind) *basicError {

	return &basicError{kind: kind, offset: -1}
}

func streamError(kind errKind, cs *charStream) *basicError {

	return &basicError{kind: kind, stmt: cs.buf, offset: cs.loc()}
}

func expectedError(ch byte, cs *charStream) *basicError {

	e := streamError(errExpectedChar, cs)
	e.ch = ch

	return e
}

func numberError(cause error, cs *charStream) *basicError {

	var e *basicError

	if cs != nil {
		e = streamError(errNumberParse, cs)
	} else {
		e = newError(errNumberParse)
	}

	e.cause = cause

	return e
}

//
// atLine tags an error with the stored line it came from, unless it
// already carries one.  Non-basicError values (I/O failures during
// INPUT, for instance) pass through untouched
//

func atLine(err error, lineNo int16) error {

	if be, ok := err.(*basicError); ok && be.lineNo == 0 {
		be.lineNo = lineNo
	}

	return err
}
