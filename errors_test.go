package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderImmediate(t *testing.T) {

	cs := newCharStream("PRINT X)")
	cs.cur = 7

	err := streamError(errUnexpectedTokensAtEndOfLine, cs)

	require.Equal(t,
		"Unexpected tokens at end of line\n"+
			"  PRINT X)\n"+
			"  "+strings.Repeat(" ", 7)+"^",
		err.render())
}

func TestRenderWithLineNumber(t *testing.T) {

	cs := newCharStream("PRINT X)")
	cs.cur = 7

	err := streamError(errUnexpectedTokensAtEndOfLine, cs)
	atLine(err, 20)

	require.Equal(t,
		"line 20: Unexpected tokens at end of line\n"+
			"  20 PRINT X)\n"+
			"  "+strings.Repeat(" ", 10)+"^",
		err.render())
}

func TestRenderNoContext(t *testing.T) {

	err := newError(errInterrupted)

	require.Equal(t, "Interrupted", err.render())
}

func TestExpectedCharMessage(t *testing.T) {

	cs := newCharStream("LET A 5")
	cs.cur = 6

	err := expectedError('=', cs)

	require.Equal(t, "Expected '='", err.Error())
	require.Equal(t, byte('='), err.ch)
}

func TestAtLineKeepsExistingLineNumber(t *testing.T) {

	err := newError(errDivisionByZero)
	atLine(err, 10)
	atLine(err, 20)

	require.Equal(t, int16(10), err.lineNo)
}

func TestNumberErrorUnwraps(t *testing.T) {

	_, cause := parseNumber("99999")
	require.Error(t, cause)

	err := numberError(cause, newCharStream("99999"))

	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "Number out of range")
}
