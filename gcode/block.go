package gcode

import "strings"

// Block is one command line: the command word followed by its parameters.
type Block []Word

// Word returns the first parameter word with letter w.
func (b Block) Word(w byte) (Word, bool) {
	if len(b) < 2 {
		return Word{}, false
	}
	for _, g := range b[1:] {
		if g.W == w {
			return g, true
		}
	}
	return Word{}, false
}

// Command returns the leading word of the block.
func (b Block) Command() Word {
	if len(b) == 0 {
		return Word{}
	}
	return b[0]
}

// Params returns every word after the command.
func (b Block) Params() Block {
	if len(b) < 2 {
		return nil
	}
	return b[1:]
}

func (b Block) String() string {
	s := make([]string, len(b))
	for i, w := range b {
		s[i] = w.String()
	}
	return strings.Join(s, " ")
}
