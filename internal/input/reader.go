// Package input reads interactive answers from the terminal.
package input

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// Reader is an interface for reading user input
type Reader interface {
	ReadString(delim byte) (string, error)
}

// StdinReader reads lines from os.Stdin. The buffer is created on first
// use so constructing one never touches stdin.
type StdinReader struct {
	reader *bufio.Reader
}

// NewStdinReader creates a new StdinReader
func NewStdinReader() *StdinReader {
	return &StdinReader{}
}

// ReadString reads until delimiter
func (r *StdinReader) ReadString(delim byte) (string, error) {
	if r.reader == nil {
		r.reader = bufio.NewReader(os.Stdin)
	}
	return r.reader.ReadString(delim)
}

// StringReader replays fixed answers, one per ReadString call, then
// returns io.EOF. Answers should include their delimiter.
type StringReader struct {
	inputs []string
	index  int
}

// NewStringReader creates a reader from strings.
func NewStringReader(inputs ...string) *StringReader {
	return &StringReader{inputs: inputs}
}

// ReadString returns the next pre-configured string.
func (r *StringReader) ReadString(delim byte) (string, error) {
	if r.index >= len(r.inputs) {
		return "", io.EOF
	}
	result := r.inputs[r.index]
	r.index++
	return result, nil
}

// Confirm reads one line from r and reports whether it is "y" or "yes",
// ignoring case and surrounding space. A read error, including EOF on an
// empty line, counts as no.
func Confirm(r Reader) bool {
	answer, err := r.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
