package main

import (
	"github.com/rs/zerolog"
)

//
// The variable environment.  Undefined variables read as zero, so
// there is no separate "declare" step and no unset error.  Values
// survive across statements, across RUN invocations, and across
// CLEAR (which only empties the stored program)
//

//
// This map is used to keep track of variables which are being traced
//

type environment struct {
	vars     map[string]int16
	traced   map[string]bool
	traceAll bool
	log      zerolog.Logger
}

func newEnvironment() *environment {

	return &environment{
		vars:   make(map[string]int16),
		traced: make(map[string]bool),
		log:    zerolog.Nop(),
	}
}

func (e *environment) get(name string) int16 {

	return e.vars[name]
}

func (e *environment) set(name string, value int16) {

	if e.traceAll || e.traced[name] {
		e.log.Debug().
			Str("var", name).
			Int16("value", value).
			Msg("store")
	}

	e.vars[name] = value
}

//
// Toggle tracing for a single variable.  Tracing a specific variable
// disables the global trace flag, mirroring how a user narrows their
// focus
//

func (e *environment) traceVariable(name string) bool {

	e.traceAll = false
	e.traced[name] = !e.traced[name]

	return e.traced[name]
}

func (e *environment) toggleTraceAll() bool {

	e.traceAll = !e.traceAll

	return e.traceAll
}
