package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

func main() {

	var programFile string

	switch len(os.Args) {
	default:
		crash("usage: tiny-basic [program" + basFileSuffix + "]")

	case 1:
		// nothing to do

	case 2:
		programFile = os.Args[1]
	}

	//
	// On a terminal we get line editing and history from liner; on a
	// pipe we fall back to plain buffered reads so the REPL still
	// honors the line-in/line-out contract
	//

	g.interactive = term.IsTerminal(int(os.Stdin.Fd()))

	var readCommand, readInput func(string) (string, error)

	if g.interactive {
		setupLiners()
		defer cleanupLiners()

		readCommand = func(prompt string) (string, error) {
			return readLine(g.parserLiner, prompt, true)
		}
		readInput = func(prompt string) (string, error) {
			return readLine(g.inputLiner, prompt, false)
		}
	} else {
		in := bufio.NewReader(os.Stdin)
		readCommand = pipeReader(in, os.Stdout, false)
		readInput = pipeReader(in, os.Stdout, true)
	}

	r := newRepl(os.Stdout, os.Stderr, readCommand, readInput)

	r.interp.setLogger(zerolog.New(os.Stderr).
		With().
		Timestamp().
		Logger().
		Level(zerolog.DebugLevel))

	//
	// Run the signal handling code in a goroutine.  ^C during a RUN
	// interrupts the program and drops back to the prompt
	//

	go sigHdlr(r.interp)

	printBanner()

	if programFile != "" {
		if err := loadProgram(r.prog, programFile); err != nil {
			crash(err.Error())
		}
	}

	fmt.Println("READY")

	if err := r.loop(); err != nil {
		crash(err.Error())
	}
}

func sigHdlr(i *interpreter) {

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)

	for range sigChan {
		i.interrupt()
	}
}

func printBanner() {

	fmt.Printf("TINY BASIC %s (16-bit integers)\n", VERSION)
	fmt.Println("Type HELP for a summary of statements and commands")
}

//
// loadProgram preloads numbered lines from a source file into the
// program store.  Only numbered lines are allowed there; anything
// else aborts startup so a typo can't silently execute
//

func loadProgram(prog *programStorage, filename string) error {

	if !strings.HasSuffix(filename, basFileSuffix) {
		return fmt.Errorf("%s: program files end in %s",
			filename, basFileSuffix)
	}

	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	lineNo := 0
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		lineNo++

		line := trimBlank(scanner.Text())
		if line == "" {
			continue
		}

		if !isASCII(line) {
			return fmt.Errorf("%s:%d: %s", filename, lineNo,
				newError(errExpectedAsciiInput))
		}

		index, numbered, body, err := parseCodeLine(line)
		if err != nil {
			return fmt.Errorf("%s:%d: %s", filename, lineNo, err)
		}

		if !numbered || body == "" {
			return fmt.Errorf("%s:%d: expected a numbered line",
				filename, lineNo)
		}

		prog.insert(index, body)
	}

	return scanner.Err()
}

//
// Print a fatal message and abort the process.  We write to standard
// error, since the user may have redirected standard output.  Make
// sure to close the liners first, so the terminal state is sane
//

func crash(msg string) {

	cleanupLiners()

	if msg != "" {
		fmt.Fprintln(os.Stderr, msg)
	}

	os.Exit(1)
}
