package main

//
// A code line is an optional line number followed by a statement
// body.  Numbered lines edit the stored program; unnumbered lines
// are commands or immediate statements
//

//
// parseCodeLine splits one input line.  A leading digit run is
// parsed as a Number and validated as a line index; the remainder
// (already stripped of the whitespace that followed the number) is
// the statement body.  Lines with no leading digits pass through
// untouched
//

func parseCodeLine(line string) (int16, bool, string, error) {

	cs := newCharStream(line)

	digits, ok := cs.consumeNumber()
	if !ok {
		return 0, false, cs.flush(), nil
	}

	index, err := parseNumber(digits)
	if err != nil {
		return 0, false, "", numberError(err, cs)
	}

	if index < lineIndexMin {
		return 0, false, "", streamError(errInvalidLineIndex, cs)
	}

	return index, true, cs.flush(), nil
}
