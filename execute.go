package main

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
)

//
// The statement interpreter.  It owns the program counter, the
// GOSUB return stack, and the variable environment, all of which
// persist across statements and across RUN invocations.  Statements
// are parsed and executed in a single pass straight off a charStream;
// there is no AST
//

type interpreter struct {
	pc          int16 // 0 when no line is pending
	curLine     int16 // line being executed, for diagnostics
	running     bool
	returnStack []int16
	env         *environment
	out         io.Writer
	readInput   func(prompt string) (string, error)
	intr        atomic.Bool
	traceExec   bool
	log         zerolog.Logger
}

func newInterpreter(out io.Writer, readInput func(string) (string, error)) *interpreter {

	return &interpreter{
		env:       newEnvironment(),
		out:       out,
		readInput: readInput,
		log:       zerolog.Nop(),
	}
}

//
// setLogger hands the interpreter (and its environment) the trace
// logger.  Tracing stays silent until toggled on
//

func (i *interpreter) setLogger(log zerolog.Logger) {

	i.log = log
	i.env.log = log
}

//
// interrupt is called from the signal handler goroutine; the run
// loop polls the flag between statements
//

func (i *interpreter) interrupt() {

	i.intr.Store(true)
}

//
// execute parses and runs exactly one statement from the stream.
// The stream must be positioned at the start of the statement, and
// must be exhausted when the statement is done, except for END,
// which short-circuits out and is reported as success
//

func (i *interpreter) execute(cs *charStream) error {

	if err := i.statement(cs); err != nil {
		if be, ok := err.(*basicError); ok && be.kind == errExecutionReachedEnd {
			return nil
		}
		return err
	}

	if !cs.isEmpty() {
		return streamError(errUnexpectedTokensAtEndOfLine, cs)
	}

	return nil
}

//
// run executes the stored program from its lowest line number.  The
// program counter is pre-set to the fall-through line before each
// statement executes, so a control transfer is nothing more than the
// statement overwriting pc.  Errors propagate out with pc cleared
//

func (i *interpreter) run(prog *programStorage) error {

	first, ok := prog.firstIndex()
	if !ok {
		return nil
	}

	i.pc = first
	i.running = true
	i.intr.Store(false)

	defer func() {
		i.pc = 0
		i.curLine = 0
		i.running = false
	}()

	for i.pc != 0 {
		cur := i.pc
		i.curLine = cur

		if i.intr.Swap(false) {
			return atLine(newError(errInterrupted), cur)
		}

		if next, ok := prog.successor(cur); ok {
			i.pc = next
		} else {
			i.pc = 0
		}

		text, ok := prog.get(cur)
		if !ok {
			// GOTO landed between lines; carry on at the successor
			continue
		}

		if i.traceExec {
			i.log.Debug().
				Int16("line", cur).
				Str("stmt", text).
				Msg("exec")
		}

		if err := i.execute(newCharStream(text)); err != nil {
			return atLine(err, cur)
		}
	}

	return nil
}

//
// statement dispatches on the leading keyword.  THEN and the REPL
// commands are keywords too, but they can never begin a statement
//

func (i *interpreter) statement(cs *charStream) error {

	kw, ok := cs.consumeKeyword()
	if !ok {
		return streamError(errExpectedStatement, cs)
	}

	switch kw {
	default:
		return streamError(errUnexpectedKeyword, cs)

	case kwPrint:
		return i.executePrint(cs)

	case kwIf:
		return i.executeIf(cs)

	case kwGoto:
		return i.executeGoto(cs)

	case kwLet:
		return i.executeLet(cs)

	case kwGosub:
		return i.executeGosub(cs)

	case kwReturn:
		return i.executeReturn(cs)

	case kwEnd:
		return i.executeEnd()

	case kwInput:
		return i.executeInput(cs)
	}
}

//
// PRINT expr_list.  Each item is either a string literal printed
// without its quotes or an expression printed in decimal, each
// followed by a single space; the list ends with a newline
//

func (i *interpreter) executePrint(cs *charStream) error {

	for {
		s, present, err := cs.consumeString()
		if err != nil {
			return err
		}

		if present {
			fmt.Fprintf(i.out, "%s ", s)
		} else {
			value, err := i.expression(cs)
			if err != nil {
				return err
			}
			fmt.Fprintf(i.out, "%d ", value)
		}

		if !cs.consumeChar(',') {
			break
		}
	}

	fmt.Fprintln(i.out)

	return nil
}

//
// IF expr relop expr THEN statement.  A false condition discards the
// rest of the line and falls through
//

func (i *interpreter) executeIf(cs *charStream) error {

	lhs, err := i.expression(cs)
	if err != nil {
		return err
	}

	op, ok := cs.consumeRelop()
	if !ok {
		return streamError(errExpectedRelationalOperator, cs)
	}

	rhs, err := i.expression(cs)
	if err != nil {
		return err
	}

	if !compare(op, lhs, rhs) {
		cs.flush()
		return nil
	}

	if kw, ok := cs.consumeKeyword(); !ok || kw != kwThen {
		return streamError(errExpectedKeyword, cs)
	}

	return i.statement(cs)
}

//
// GOTO expr.  The target need not exist: the run loop resumes at the
// successor of whatever pc holds, so a missing target silently skips
// to the next stored line
//

func (i *interpreter) executeGoto(cs *charStream) error {

	target, err := i.lineIndexExpression(cs)
	if err != nil {
		return err
	}

	i.pc = target

	return nil
}

func (i *interpreter) executeLet(cs *charStream) error {

	name, ok := cs.consumeVar()
	if !ok {
		return streamError(errExpectedVariableName, cs)
	}

	if !cs.consumeChar('=') {
		return expectedError('=', cs)
	}

	value, err := i.expression(cs)
	if err != nil {
		return err
	}

	i.env.set(name, value)

	return nil
}

//
// GOSUB expr.  Only meaningful while a program is running.  The run
// loop has already advanced pc to the fall-through line, so pushing
// the prevailing pc records exactly where RETURN should resume
//

func (i *interpreter) executeGosub(cs *charStream) error {

	if !i.running {
		return streamError(errCommandNotUsableInInteractiveMode, cs)
	}

	target, err := i.lineIndexExpression(cs)
	if err != nil {
		return err
	}

	i.returnStack = append(i.returnStack, i.pc)
	i.pc = target

	return nil
}

func (i *interpreter) executeReturn(cs *charStream) error {

	if len(i.returnStack) == 0 {
		return streamError(errReturnOnEmptyStack, cs)
	}

	top := len(i.returnStack) - 1
	i.pc = i.returnStack[top]
	i.returnStack = i.returnStack[:top]

	return nil
}

//
// END clears pc so the run loop exits, then unwinds through the
// statement executor via the distinguished error kind that execute
// filters back to success
//

func (i *interpreter) executeEnd() error {

	i.pc = 0

	return newError(errExecutionReachedEnd)
}

//
// INPUT var_list.  Each variable prompts with "<name>? ".  Numeric
// replies are stored as-is; anything else stores the ASCII code of
// its first byte, and an empty reply stores 0
//

func (i *interpreter) executeInput(cs *charStream) error {

	for {
		name, ok := cs.consumeVar()
		if !ok {
			return streamError(errExpectedVariableName, cs)
		}

		reply, err := i.readInput(name + "? ")
		if err != nil {
			return err
		}

		reply = strings.TrimSpace(reply)

		if value, perr := parseNumber(reply); perr == nil {
			i.env.set(name, value)
		} else if len(reply) > 0 {
			i.env.set(name, int16(reply[0]))
		} else {
			i.env.set(name, 0)
		}

		if !cs.consumeChar(',') {
			break
		}
	}

	return nil
}

//
// Expression grammar.  expr is left-associative over + and -, term
// chains * and / the same way, and factor is a variable, a number
// literal, or a parenthesized expression.  All arithmetic is int16
// and wraps
//

func (i *interpreter) expression(cs *charStream) (int16, error) {

	sign := int16(1)

	if ch, ok := cs.consumeCharIf(isSign); ok && ch == '-' {
		sign = -1
	}

	total, err := i.term(cs)
	if err != nil {
		return 0, err
	}

	total *= sign

	for {
		ch, ok := cs.consumeCharIf(isSign)
		if !ok {
			return total, nil
		}

		other, err := i.term(cs)
		if err != nil {
			return 0, err
		}

		if ch == '+' {
			total += other
		} else {
			total -= other
		}
	}
}

func (i *interpreter) term(cs *charStream) (int16, error) {

	total, err := i.factor(cs)
	if err != nil {
		return 0, err
	}

	for {
		ch, ok := cs.consumeCharIf(isMulOp)
		if !ok {
			return total, nil
		}

		other, err := i.factor(cs)
		if err != nil {
			return 0, err
		}

		if ch == '*' {
			total *= other
		} else {
			if other == 0 {
				return 0, streamError(errDivisionByZero, cs)
			}
			total /= other
		}
	}
}

func (i *interpreter) factor(cs *charStream) (int16, error) {

	if name, ok := cs.consumeVar(); ok {
		return i.env.get(name), nil
	}

	if digits, ok := cs.consumeNumber(); ok {
		value, err := parseNumber(digits)
		if err != nil {
			return 0, numberError(err, cs)
		}
		return value, nil
	}

	if cs.consumeChar('(') {
		value, err := i.expression(cs)
		if err != nil {
			return 0, err
		}
		if !cs.consumeChar(')') {
			return 0, expectedError(')', cs)
		}
		return value, nil
	}

	return 0, streamError(errFactorCouldNotBeParsed, cs)
}

//
// lineIndexExpression evaluates an expression and validates it as a
// line index, for GOTO and GOSUB targets
//

func (i *interpreter) lineIndexExpression(cs *charStream) (int16, error) {

	value, err := i.expression(cs)
	if err != nil {
		return 0, err
	}

	// int16 can never exceed lineIndexMax, so only the low bound
	// needs checking

	if value < lineIndexMin {
		return 0, streamError(errInvalidLineIndex, cs)
	}

	return value, nil
}

func compare(op int, lhs, rhs int16) bool {

	switch op {
	default:
		return false

	case relLess:
		return lhs < rhs

	case relGreater:
		return lhs > rhs

	case relLessEqual:
		return lhs <= rhs

	case relGreaterEqual:
		return lhs >= rhs

	case relNotEqual:
		return lhs != rhs

	case relEqual:
		return lhs == rhs
	}
}
