package gcode

import (
	"bufio"
	"io"
	"strings"
)

type parserState int

const (
	stateReading parserState = iota
	stateDone
)

// Parser reads command lines from G-code text.
//
// It never fails on content: comments, blank lines and tokens that are not
// letter-addressed words are dropped. Only read errors are returned.
type Parser struct {
	br    *bufio.Reader
	state parserState
	line  int
}

func NewParser(r io.Reader) *Parser {
	if br, ok := r.(*bufio.Reader); ok {
		return &Parser{br: br}
	}

	return &Parser{br: bufio.NewReaderSize(r, 64*1024)}
}

// Line returns the number of input lines consumed so far.
func (p *Parser) Line() int { return p.line }

// Done reports whether the input is exhausted.
func (p *Parser) Done() bool { return p.state == stateDone }

func (p *Parser) Read() (Block, error) {
	for p.state == stateReading {
		s, err := p.br.ReadString('\n')
		if err == io.EOF {
			p.state = stateDone
			if s == "" {
				break
			}
			err = nil
		}
		if err != nil {
			p.state = stateDone
			return nil, err
		}
		p.line++

		if b := tokenize(s); b != nil {
			return b, nil
		}
	}

	return nil, io.EOF
}

// stripComments drops a trailing ';' comment, any "(...)" spans and a
// trailing "*NN" checksum. An unclosed '(' runs to the end of the line.
func stripComments(s string) string {
	s = strings.SplitN(s, ";", 2)[0]
	for {
		i := strings.IndexByte(s, '(')
		if i == -1 {
			break
		}
		j := strings.IndexByte(s[i:], ')')
		if j == -1 {
			s = s[:i]
			break
		}
		s = s[:i] + " " + s[i+j+1:]
	}
	return strings.SplitN(s, "*", 2)[0]
}

func tokenize(s string) Block {
	s = stripComments(s)
	fields := strings.Fields(strings.ToUpper(s))

	var b Block
	for _, f := range fields {
		w := parseWord(f)
		if !w.IsValid() {
			continue
		}
		if len(b) == 0 && w.W == 'N' {
			// line number
			continue
		}
		b = append(b, w)
	}

	return b
}
