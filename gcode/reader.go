package gcode

import (
	"io"
	"strings"
)

// Reader is a source of blocks. Read returns io.EOF once exhausted.
type Reader interface {
	Read() (Block, error)
}

var _ Reader = &Parser{}

// ReadAll drains r. Blocks read before an error are returned with it.
func ReadAll(r Reader) ([]Block, error) {
	var res []Block
	for {
		b, err := r.Read()
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			return res, err
		}
		res = append(res, b)
	}
}

// Parse splits a whole program into blocks.
func Parse(data string) ([]Block, error) {
	return ReadAll(NewParser(strings.NewReader(data)))
}

// MustParse is Parse for literals known to be readable. It panics on error.
func MustParse(data string) []Block {
	res, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return res
}
