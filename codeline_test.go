package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCodeLineNumbered(t *testing.T) {

	index, numbered, body, err := parseCodeLine("10   PRINT 1")
	require.NoError(t, err)
	require.True(t, numbered)
	require.Equal(t, int16(10), index)
	require.Equal(t, "PRINT 1", body)
}

func TestParseCodeLineBareNumber(t *testing.T) {

	index, numbered, body, err := parseCodeLine("20")
	require.NoError(t, err)
	require.True(t, numbered)
	require.Equal(t, int16(20), index)
	require.Equal(t, "", body)
}

func TestParseCodeLineUnnumbered(t *testing.T) {

	_, numbered, body, err := parseCodeLine("PRINT 1")
	require.NoError(t, err)
	require.False(t, numbered)
	require.Equal(t, "PRINT 1", body)
}

func TestParseCodeLineIndexOverflow(t *testing.T) {

	_, _, _, err := parseCodeLine("99999 PRINT 1")
	require.Error(t, err)

	be, ok := err.(*basicError)
	require.True(t, ok)
	require.Equal(t, errNumberParse, be.kind)
}

func TestParseCodeLineIndexZero(t *testing.T) {

	_, _, _, err := parseCodeLine("0 PRINT 1")
	require.Error(t, err)

	be, ok := err.(*basicError)
	require.True(t, ok)
	require.Equal(t, errInvalidLineIndex, be.kind)
}
