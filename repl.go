package main

import (
	"fmt"
	"io"

	"github.com/goforj/godump"
)

//
// The read/evaluate/print loop.  Each input line is classified as a
// numbered line (a program edit), a command, or an immediate
// statement.  Statements and commands acknowledge success with OK;
// program edits are silent; errors are rendered to the error writer
// and the loop carries on
//

type repl struct {
	interp     *interpreter
	prog       *programStorage
	out        io.Writer
	errOut     io.Writer
	readLine   func(prompt string) (string, error)
	printStats bool
	exiting    bool
}

func newRepl(out, errOut io.Writer, readLine, readInput func(string) (string, error)) *repl {

	return &repl{
		interp:   newInterpreter(out, readInput),
		prog:     newProgramStorage(),
		out:      out,
		errOut:   errOut,
		readLine: readLine,
	}
}

//
// loop reads until EOF or BYE.  Read errors other than EOF propagate
// to the caller; everything else is reported and swallowed
//

func (r *repl) loop() error {

	for !r.exiting {
		line, err := r.readLine(myPrompt)
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}

		r.processLine(line)
	}

	return nil
}

//
// processLine handles one raw input line.  Non-ASCII input is
// rejected before anything else looks at it
//

func (r *repl) processLine(raw string) {

	line := trimBlank(raw)
	if line == "" {
		return
	}

	if !isASCII(line) {
		r.report(newError(errExpectedAsciiInput))
		return
	}

	index, numbered, body, err := parseCodeLine(line)
	if err != nil {
		r.report(err)
		return
	}

	if numbered {
		r.editLine(index, body)
		return
	}

	r.processStatement(body)
}

//
// A numbered line with an empty body erases the stored line at that
// index; otherwise the body replaces whatever was there
//

func (r *repl) editLine(index int16, body string) {

	if body == "" {
		r.prog.erase(index)
	} else {
		r.prog.insert(index, body)
	}
}

//
// processStatement dispatches an unnumbered line.  RUN, LIST and
// CLEAR are language keywords but act on the REPL; the extended
// commands (HELP and friends) are bare words outside the keyword
// table; anything else is handed to the interpreter as an immediate
// statement
//

func (r *repl) processStatement(body string) {

	cs := newCharStream(body)

	probe := *cs
	if kw, ok := probe.consumeKeyword(); ok {
		switch kw {
		default:
			if err := r.interp.execute(cs); err != nil {
				r.report(err)
			} else {
				r.ok()
			}

		case kwRun:
			r.runProgram()

		case kwList:
			r.listProgram()

		case kwClear:
			r.prog.clear()
			r.ok()
		}
		return
	}

	probe = *cs
	if word, ok := probe.consumeVar(); ok {
		if r.command(word, &probe) {
			return
		}
	}

	r.report(streamError(errExpectedStatement, cs))
}

func (r *repl) runProgram() {

	var clock cpuClock

	if r.printStats {
		clock = startCPUClock()
	}

	if err := r.interp.run(r.prog); err != nil {
		r.report(err)
		return
	}

	if r.printStats {
		clock.report(r.out)
	}

	r.ok()
}

func (r *repl) listProgram() {

	r.prog.iterate(func(index int16, text string) bool {
		fmt.Fprintf(r.out, "%d %s\n", index, text)
		return true
	})

	r.ok()
}

//
// The extended commands.  These are REPL conveniences, not part of
// the language, so an unrecognized word falls back to the caller's
// "expected a statement" diagnostic
//

func (r *repl) command(word string, rest *charStream) bool {

	switch word {
	default:
		return false

	case "HELP":
		executeHelp(r.out)
		r.ok()

	case "BYE":
		r.exiting = true

	case "DUMP":
		r.dumpState()
		r.ok()

	case "STATS":
		r.printStats = !r.printStats
		fmt.Fprintf(r.out, "Execution statistics %s\n",
			switchSetting(r.printStats))
		r.ok()

	case "TRACE":
		r.executeTrace(rest)
	}

	return true
}

//
// TRACE EXEC toggles per-line execution tracing; TRACE VARS toggles
// tracing of every variable store; TRACE VARS A B narrows it to the
// named variables
//

func (r *repl) executeTrace(rest *charStream) {

	word, ok := rest.consumeVar()
	if !ok {
		fmt.Fprintln(r.out, "usage: TRACE EXEC | TRACE VARS [name ...]")
		return
	}

	switch word {
	default:
		fmt.Fprintln(r.out, "usage: TRACE EXEC | TRACE VARS [name ...]")
		return

	case "EXEC":
		r.interp.traceExec = !r.interp.traceExec
		fmt.Fprintf(r.out, "Execution trace %s\n",
			switchSetting(r.interp.traceExec))

	case "VARS":
		name, ok := rest.consumeVar()
		if !ok {
			fmt.Fprintf(r.out, "Variable trace %s\n",
				switchSetting(r.interp.env.toggleTraceAll()))
			break
		}

		for {
			fmt.Fprintf(r.out, "Tracing variable %q %s\n", name,
				switchSetting(r.interp.env.traceVariable(name)))
			if name, ok = rest.consumeVar(); !ok {
				break
			}
		}
	}

	r.ok()
}

//
// DUMP renders the interpreter state for debugging a stuck program
//

func (r *repl) dumpState() {

	godump.Dump(struct {
		PC          int16
		ReturnStack []int16
		Variables   map[string]int16
	}{
		PC:          r.interp.pc,
		ReturnStack: r.interp.returnStack,
		Variables:   r.interp.env.vars,
	})
}

func (r *repl) ok() {

	fmt.Fprintln(r.out, "OK")
}

func (r *repl) report(err error) {

	if be, ok := err.(*basicError); ok {
		fmt.Fprintln(r.errOut, be.render())
	} else {
		fmt.Fprintln(r.errOut, err)
	}
}
