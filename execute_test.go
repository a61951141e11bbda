package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

//
// Test scaffolding.  scriptedInput plays the user for INPUT
// statements, recording the prompts it was shown
//

type scriptedInput struct {
	prompts []string
	replies []string
}

func (s *scriptedInput) read(prompt string) (string, error) {

	s.prompts = append(s.prompts, prompt)

	if len(s.replies) == 0 {
		return "", io.EOF
	}

	reply := s.replies[0]
	s.replies = s.replies[1:]

	return reply, nil
}

func testInterp(replies ...string) (*interpreter, *bytes.Buffer, *scriptedInput) {

	var out bytes.Buffer

	in := &scriptedInput{replies: replies}

	return newInterpreter(&out, in.read), &out, in
}

func loadLines(t *testing.T, lines ...string) *programStorage {

	t.Helper()

	p := newProgramStorage()

	for _, line := range lines {
		index, numbered, body, err := parseCodeLine(line)
		require.NoError(t, err)
		require.True(t, numbered)
		p.insert(index, body)
	}

	return p
}

func requireKind(t *testing.T, err error, kind errKind) {

	t.Helper()

	require.Error(t, err)

	be, ok := err.(*basicError)
	require.True(t, ok, "want *basicError, got %T: %v", err, err)
	require.Equal(t, kind, be.kind, "got %v", be.kind)
}

func TestPrintString(t *testing.T) {

	i, out, _ := testInterp()

	require.NoError(t, i.execute(newCharStream(`PRINT "HELLO"`)))
	require.Equal(t, "HELLO \n", out.String())
}

func TestPrintExpressionList(t *testing.T) {

	i, out, _ := testInterp()

	require.NoError(t, i.execute(newCharStream(`PRINT 1, "AND", 2`)))
	require.Equal(t, "1 AND 2 \n", out.String())
}

func TestExpressionPrecedence(t *testing.T) {

	cases := []struct {
		stmt string
		want string
	}{
		{"PRINT 1+2*3", "7 \n"},
		{"PRINT (1+2)*3", "9 \n"},
		{"PRINT 2*3*4", "24 \n"},
		{"PRINT 7/2", "3 \n"},
		{"PRINT 10-2-3", "5 \n"},
		{"PRINT -5+3", "-2 \n"},
		{"PRINT 32767+1", "-32768 \n"},
	}

	for _, tc := range cases {
		i, out, _ := testInterp()

		require.NoError(t, i.execute(newCharStream(tc.stmt)), tc.stmt)
		require.Equal(t, tc.want, out.String(), tc.stmt)
	}
}

func TestDivisionByZero(t *testing.T) {

	i, _, _ := testInterp()

	err := i.execute(newCharStream("PRINT 1/0"))
	requireKind(t, err, errDivisionByZero)
}

func TestNumberLiteralOverflow(t *testing.T) {

	i, _, _ := testInterp()

	err := i.execute(newCharStream("PRINT 40000"))
	requireKind(t, err, errNumberParse)
}

func TestLetAndUndefinedVariable(t *testing.T) {

	i, out, _ := testInterp()

	require.NoError(t, i.execute(newCharStream("LET A = 40 + 2")))
	require.NoError(t, i.execute(newCharStream("PRINT A, B")))

	// undefined variables read as zero
	require.Equal(t, "42 0 \n", out.String())
}

func TestLetDiagnostics(t *testing.T) {

	i, _, _ := testInterp()

	err := i.execute(newCharStream("LET 5 = 1"))
	requireKind(t, err, errExpectedVariableName)

	err = i.execute(newCharStream("LET A 5"))
	requireKind(t, err, errExpectedChar)
}

func TestIfTrue(t *testing.T) {

	i, out, _ := testInterp()

	require.NoError(t, i.execute(newCharStream(`IF 1 < 2 THEN PRINT "YES"`)))
	require.Equal(t, "YES \n", out.String())
}

func TestIfFalseDiscardsRestOfLine(t *testing.T) {

	i, out, _ := testInterp()

	// the rest of the line is never parsed on a false condition
	require.NoError(t, i.execute(newCharStream("IF 1 > 2 THEN !!! not a statement")))
	require.Equal(t, "", out.String())
}

func TestIfMissingRelop(t *testing.T) {

	i, _, _ := testInterp()

	err := i.execute(newCharStream("IF 1 THEN PRINT 1"))
	requireKind(t, err, errExpectedRelationalOperator)
}

func TestIfMissingThen(t *testing.T) {

	i, _, _ := testInterp()

	err := i.execute(newCharStream("IF 1 < 2 PRINT 1"))
	requireKind(t, err, errExpectedKeyword)
}

func TestTrailingTokensRejected(t *testing.T) {

	i, _, _ := testInterp()

	err := i.execute(newCharStream("PRINT 1 FOO"))
	requireKind(t, err, errUnexpectedTokensAtEndOfLine)
}

func TestEndIsImmediateSuccess(t *testing.T) {

	i, out, _ := testInterp()

	require.NoError(t, i.execute(newCharStream("END")))
	require.Equal(t, "", out.String())
}

func TestGosubRefusedInImmediateMode(t *testing.T) {

	i, _, _ := testInterp()

	err := i.execute(newCharStream("GOSUB 10"))
	requireKind(t, err, errCommandNotUsableInInteractiveMode)
}

func TestRunEmptyProgram(t *testing.T) {

	i, out, _ := testInterp()

	require.NoError(t, i.run(newProgramStorage()))
	require.Equal(t, "", out.String())
}

func TestRunSimpleProgram(t *testing.T) {

	i, out, _ := testInterp()

	prog := loadLines(t,
		"10 LET A = 2",
		"20 PRINT A * 2",
	)

	require.NoError(t, i.run(prog))
	require.Equal(t, "4 \n", out.String())
}

func TestRunGosubReturn(t *testing.T) {

	i, out, _ := testInterp()

	prog := loadLines(t,
		"10 GOSUB 40",
		`20 PRINT "DONE"`,
		"30 END",
		`40 PRINT "SUB"`,
		"50 RETURN",
	)

	require.NoError(t, i.run(prog))
	require.Equal(t, "SUB \nDONE \n", out.String())
	require.Empty(t, i.returnStack)
}

func TestRunGotoMissingLineFallsThrough(t *testing.T) {

	i, out, _ := testInterp()

	prog := loadLines(t,
		"10 GOTO 25",
		"20 PRINT 1",
		"30 PRINT 2",
	)

	require.NoError(t, i.run(prog))
	require.Equal(t, "2 \n", out.String())
}

func TestRunGotoBackwards(t *testing.T) {

	i, out, _ := testInterp()

	prog := loadLines(t,
		"10 LET N = N + 1",
		"20 IF N < 3 THEN GOTO 10",
		"30 PRINT N",
	)

	require.NoError(t, i.run(prog))
	require.Equal(t, "3 \n", out.String())
}

func TestGotoInvalidTarget(t *testing.T) {

	i, _, _ := testInterp()

	prog := loadLines(t, "10 GOTO 0")

	err := i.run(prog)
	requireKind(t, err, errInvalidLineIndex)
}

func TestRunErrorCarriesLineNumber(t *testing.T) {

	i, _, _ := testInterp()

	prog := loadLines(t, "10 RETURN")

	err := i.run(prog)
	requireKind(t, err, errReturnOnEmptyStack)

	be := err.(*basicError)
	require.Equal(t, int16(10), be.lineNo)
}

func TestRunEndStopsProgram(t *testing.T) {

	i, out, _ := testInterp()

	prog := loadLines(t,
		"10 PRINT 1",
		"20 END",
		"30 PRINT 2",
	)

	require.NoError(t, i.run(prog))
	require.Equal(t, "1 \n", out.String())
}

func TestInputNumber(t *testing.T) {

	i, out, in := testInterp("41")

	prog := loadLines(t,
		"10 INPUT A",
		"20 PRINT A + 1",
	)

	require.NoError(t, i.run(prog))
	require.Equal(t, []string{"A? "}, in.prompts)
	require.Equal(t, "42 \n", out.String())
}

func TestInputNonNumericStoresFirstByte(t *testing.T) {

	i, out, _ := testInterp("Q", "")

	prog := loadLines(t,
		"10 INPUT A, B",
		"20 PRINT A, B",
	)

	require.NoError(t, i.run(prog))
	require.Equal(t, "81 0 \n", out.String())
}

func TestVariablesSurviveRuns(t *testing.T) {

	i, out, _ := testInterp()

	require.NoError(t, i.run(loadLines(t, "10 LET A = 7")))
	require.NoError(t, i.run(loadLines(t, "10 PRINT A")))

	require.Equal(t, "7 \n", out.String())
}

//
// interruptWriter raises the interrupt flag as a side effect of the
// first PRINT, standing in for ^C arriving mid-run
//

type interruptWriter struct {
	i *interpreter
}

func (w *interruptWriter) Write(p []byte) (int, error) {

	w.i.interrupt()

	return len(p), nil
}

func TestInterrupt(t *testing.T) {

	i, _, _ := testInterp()
	i.out = &interruptWriter{i: i}

	prog := loadLines(t,
		"10 PRINT 1",
		"20 GOTO 10",
	)

	err := i.run(prog)
	requireKind(t, err, errInterrupted)

	be := err.(*basicError)
	require.Equal(t, int16(20), be.lineNo)
}
