package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/danswartzendruber/liner"
	"github.com/tklauser/go-sysconf"
)

//
// We create two Liner instances.  One for the command loop, and one
// for INPUT statements.  We do this because we want a scrollback
// history for the command loop, but not for user input.  They must
// be closed in LIFO order, as Close restores the terminal to its
// previous state
//

func setupLiners() {

	g.parserLiner = liner.NewLiner()
	g.inputLiner = liner.NewLiner()
}

func cleanupLiners() {

	cleanupLiner(&g.inputLiner)
	cleanupLiner(&g.parserLiner)
}

func cleanupLiner(linerState **liner.State) {

	if *linerState != nil {
		(*linerState).Close()
		*linerState = nil
	}
}

//
// Read a line from the terminal, with editing and history.  ^C at
// the prompt abandons the current line; ^D at the start of a line
// reads as EOF
//

func readLine(l *liner.State, prompt string, history bool) (string, error) {

	s, err := l.Prompt(prompt)
	if err != nil {
		if err == liner.ErrPromptAborted {
			return "", nil
		}
		return "", err
	}

	if history && s != "" {
		l.AppendHistory(s)
	}

	return s, nil
}

//
// Line readers for piped input.  The prompt is still written for
// INPUT statements (callers expect to see "A? "), but the command
// prompt is suppressed so redirected sessions produce clean output
//

func pipeReader(in *bufio.Reader, out io.Writer, echoPrompt bool) func(string) (string, error) {

	return func(prompt string) (string, error) {
		if echoPrompt {
			fmt.Fprint(out, prompt)
		}

		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return "", err
		}

		return strings.TrimRight(line, "\r\n"), nil
	}
}

//
// trimBlank strips leading and trailing spaces and tabs
//

func trimBlank(s string) string {

	return strings.Trim(s, " \t")
}

func isASCII(s string) bool {

	for i := 0; i < len(s); i++ {
		if s[i] > 0x7f {
			return false
		}
	}

	return true
}

//
// parseNumber parses a decimal literal into the 16-bit Number type.
// Overflow comes back as the strconv range error; callers wrap it
// with stream context
//

func parseNumber(s string) (int16, error) {

	value, err := strconv.ParseInt(s, 10, 16)
	if err != nil {
		return 0, err
	}

	return int16(value), nil
}

func switchSetting(b bool) string {

	if b {
		return "ON"
	} else {
		return "OFF"
	}
}

//
// Runtime statistics for an executing program
//

type cpuClock struct {
	elapsed time.Time
	utime   int64
	stime   int64
}

func startCPUClock() cpuClock {

	utime, stime := getCPUInfo()

	return cpuClock{
		elapsed: time.Now(),
		utime:   utime,
		stime:   stime,
	}
}

func (c cpuClock) report(w io.Writer) {

	elapsed := time.Since(c.elapsed)
	utime, stime := getCPUInfo()

	fmt.Fprintf(w, "CPU Usage: elapsed = %s / user = %s / system = %s\n",
		formatCPUTime(int64(elapsed.Seconds())),
		formatCPUTime(utime-c.utime), formatCPUTime(stime-c.stime))
}

func formatCPUTime(t int64) string {

	var h, m int64

	if t >= 3600 {
		h = t / 3600
		t = t % 3600
	}

	if t >= 60 {
		m = t / 60
		t = t % 60
	}

	return fmt.Sprintf("%02d:%02d:%02d", h, m, t)
}

//
// getCPUInfo reads user and system CPU time from /proc/self/stat,
// scaled by the clock tick rate.  On any surprise it reports zeros
// rather than taking the interpreter down over a statistics line
//

func getCPUInfo() (int64, int64) {

	clktck, err := sysconf.Sysconf(sysconf.SC_CLK_TCK)
	if err != nil || clktck == 0 {
		return 0, 0
	}

	contents, err := os.ReadFile("/proc/self/stat")
	if err != nil {
		return 0, 0
	}

	fields := strings.Fields(string(contents))
	if len(fields) < 15 {
		return 0, 0
	}

	utime, err := strconv.ParseInt(fields[13], 10, 64)
	if err != nil {
		return 0, 0
	}

	stime, err := strconv.ParseInt(fields[14], 10, 64)
	if err != nil {
		return 0, 0
	}

	return utime / clktck, stime / clktck
}
