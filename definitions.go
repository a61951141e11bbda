package main

import (
	"math"

	"github.com/danswartzendruber/liner"
)

//
// Constants
//

const VERSION = "1.0.2"

const myPrompt = "> "

const basFileSuffix = ".bas"

//
// Numbers are 16-bit two's complement, the width the classic DEC
// dialects used.  Arithmetic wraps; literals that do not fit are
// rejected when parsed
//

const numberMin = math.MinInt16
const numberMax = math.MaxInt16

//
// Stored line numbers run from 1 to numberMax inclusive.  0 is
// reserved as the "no line" sentinel for the program counter and
// for diagnostics
//

const lineIndexMin = 1
const lineIndexMax = numberMax

//
// Language keywords.  All keywords are uppercase and matching is
// case sensitive, so 'print' is a variable name, not a statement
//

const (
	kwPrint = iota
	kwIf
	kwThen
	kwRun
	kwList
	kwClear
	kwGoto
	kwLet
	kwGosub
	kwReturn
	kwEnd
	kwInput
)

var keywordMap = map[string]int{
	"PRINT":  kwPrint,
	"IF":     kwIf,
	"THEN":   kwThen,
	"RUN":    kwRun,
	"LIST":   kwList,
	"CLEAR":  kwClear,
	"GOTO":   kwGoto,
	"LET":    kwLet,
	"GOSUB":  kwGosub,
	"RETURN": kwReturn,
	"END":    kwEnd,
	"INPUT":  kwInput,
}

//
// Relational operators
//

const (
	relLess = iota
	relGreater
	relLessEqual
	relGreaterEqual
	relNotEqual
	relEqual
)

//
// Global variables.  Only the terminal plumbing lives here; the
// interpreter and the REPL carry their own state so they can be
// exercised in isolation
//

var g struct {
	parserLiner *liner.State
	inputLiner  *liner.State
	interactive bool
}
