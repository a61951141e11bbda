package main

import (
	"github.com/google/btree"
)

//
// A set of wrapper routines around the btree package.  We do this to
// hide the tree interface from the interpreter code: the run loop
// only ever asks for a line, the first line, or the successor of a
// line, and doesn't care how the program is stored
//

type programLine struct {
	index int16
	text  string
}

type programStorage struct {
	tree *btree.BTreeG[programLine]
}

func newProgramStorage() *programStorage {

	return &programStorage{
		tree: btree.NewG(2, func(a, b programLine) bool {
			return a.index < b.index
		}),
	}
}

//
// insert stores text at index, replacing any previous line there
//

func (p *programStorage) insert(index int16, text string) {

	p.tree.ReplaceOrInsert(programLine{index: index, text: text})
}

//
// erase removes the line at index.  Erasing a missing line is a
// no-op
//

func (p *programStorage) erase(index int16) {

	p.tree.Delete(programLine{index: index})
}

func (p *programStorage) clear() {

	p.tree.Clear(false)
}

func (p *programStorage) get(index int16) (string, bool) {

	line, ok := p.tree.Get(programLine{index: index})
	if !ok {
		return "", false
	}

	return line.text, true
}

func (p *programStorage) firstIndex() (int16, bool) {

	line, ok := p.tree.Min()
	if !ok {
		return 0, false
	}

	return line.index, true
}

//
// successor returns the smallest stored index strictly greater than
// the argument.  The pivot itself need not be stored, which is what
// lets GOTO to a missing line fall through to the next real one
//

func (p *programStorage) successor(index int16) (int16, bool) {

	var next int16
	var found bool

	p.tree.AscendGreaterOrEqual(programLine{index: index},
		func(line programLine) bool {
			if line.index == index {
				return true
			}
			next = line.index
			found = true
			return false
		})

	return next, found
}

//
// iterate visits every stored line in ascending index order, until
// the callback returns false
//

func (p *programStorage) iterate(fn func(index int16, text string) bool) {

	p.tree.Ascend(func(line programLine) bool {
		return fn(line.index, line.text)
	})
}

func (p *programStorage) empty() bool {

	return p.tree.Len() == 0
}
