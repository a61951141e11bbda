package main

//
// charStream is a cursor over a single ASCII input line.  Every
// recognizer that consumes something skips trailing whitespace on
// success, so the cursor always rests on the next significant
// character or at the end of the line.  That keeps the recognizers
// composable without a separate tokenizer pass
//

type charStream struct {
	buf string
	cur int
}

func newCharStream(line string) *charStream {

	cs := &charStream{buf: line}
	cs.skipSpace()

	return cs
}

//
// Character class helpers.  The stream only ever holds ASCII, so
// byte-at-a-time tests are all we need
//

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch byte) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z')
}

func isBlank(ch byte) bool {
	return ch == ' ' || ch == '\t'
}

func isSign(ch byte) bool {
	return ch == '+' || ch == '-'
}

func isMulOp(ch byte) bool {
	return ch == '*' || ch == '/'
}

//
// loc reports the current cursor offset, for diagnostics
//

func (cs *charStream) loc() int {

	return cs.cur
}

func (cs *charStream) peek() (byte, bool) {

	if cs.cur >= len(cs.buf) {
		return 0, false
	}

	return cs.buf[cs.cur], true
}

//
// matchChar tests the next character against a predicate without
// advancing
//

func (cs *charStream) matchChar(pred func(byte) bool) (byte, bool) {

	ch, ok := cs.peek()
	if !ok || !pred(ch) {
		return 0, false
	}

	return ch, true
}

//
// consumeCharIf advances over one character matching the predicate,
// then skips trailing whitespace
//

func (cs *charStream) consumeCharIf(pred func(byte) bool) (byte, bool) {

	ch, ok := cs.matchChar(pred)
	if !ok {
		return 0, false
	}

	cs.cur++
	cs.skipSpace()

	return ch, true
}

func (cs *charStream) consumeChar(want byte) bool {

	_, ok := cs.consumeCharIf(func(ch byte) bool {
		return ch == want
	})

	return ok
}

//
// consumeNumber consumes a greedy run of ASCII digits and returns
// the raw digit substring.  Parsing (and overflow detection) is the
// caller's problem
//

func (cs *charStream) consumeNumber() (string, bool) {

	start := cs.cur

	cs.advanceWhile(isDigit)

	if cs.cur == start {
		return "", false
	}

	digits := cs.buf[start:cs.cur]
	cs.skipSpace()

	return digits, true
}

//
// consumeKeyword consumes a greedy run of alphabetic characters and
// looks it up in the keyword table.  On a miss the cursor is restored
// to where it started, so a caller can fall back to consumeVar without
// losing the identifier
//

func (cs *charStream) consumeKeyword() (int, bool) {

	start := cs.cur

	cs.advanceWhile(isAlpha)

	if cs.cur == start {
		return 0, false
	}

	word := cs.buf[start:cs.cur]

	kw, ok := keywordMap[word]
	if !ok {
		cs.cur = start
		return 0, false
	}

	cs.skipSpace()

	return kw, true
}

//
// consumeVar consumes an identifier: an alphabetic character followed
// by any run of alphanumerics, '_' or '-'.  Names are case sensitive
//

func (cs *charStream) consumeVar() (string, bool) {

	start := cs.cur

	if _, ok := cs.matchChar(isAlpha); !ok {
		return "", false
	}

	cs.advanceWhile(func(ch byte) bool {
		return isAlpha(ch) || isDigit(ch) || ch == '_' || ch == '-'
	})

	name := cs.buf[start:cs.cur]
	cs.skipSpace()

	return name, true
}

//
// consumeString consumes a double-quoted string literal and returns
// its body without the quotes.  The present flag distinguishes an
// absent literal from an empty one.  A missing closing quote is an
// error, reported at the point the scan gave up
//

func (cs *charStream) consumeString() (string, bool, error) {

	if _, ok := cs.matchChar(func(ch byte) bool { return ch == '"' }); !ok {
		return "", false, nil
	}

	cs.cur++

	start := cs.cur

	cs.advanceWhile(func(ch byte) bool {
		return ch >= 0x20 && ch <= 0x7e && ch != '"'
	})

	body := cs.buf[start:cs.cur]

	if ch, ok := cs.peek(); !ok || ch != '"' {
		return "", false, expectedError('"', cs)
	}

	cs.cur++
	cs.skipSpace()

	return body, true, nil
}

//
// consumeRelop recognizes <, >, <=, >=, <> (or the equivalent ><)
// and =, preferring the longest match
//

func (cs *charStream) consumeRelop() (int, bool) {

	switch {
	default:
		return 0, false

	case cs.consumeChar('<'):
		if cs.consumeChar('=') {
			return relLessEqual, true
		} else if cs.consumeChar('>') {
			return relNotEqual, true
		}
		return relLess, true

	case cs.consumeChar('>'):
		if cs.consumeChar('=') {
			return relGreaterEqual, true
		} else if cs.consumeChar('<') {
			return relNotEqual, true
		}
		return relGreater, true

	case cs.consumeChar('='):
		return relEqual, true
	}
}

//
// flush returns the remainder of the line and leaves the cursor at
// the end
//

func (cs *charStream) flush() string {

	rest := cs.buf[cs.cur:]
	cs.cur = len(cs.buf)

	return rest
}

func (cs *charStream) isEmpty() bool {

	return cs.cur >= len(cs.buf)
}

func (cs *charStream) advanceWhile(pred func(byte) bool) {

	for {
		if _, ok := cs.matchChar(pred); !ok {
			return
		}
		cs.cur++
	}
}

func (cs *charStream) skipSpace() {

	cs.advanceWhile(isBlank)
}
