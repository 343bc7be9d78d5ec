package basestation

import (
	"bufio"
	"io"
)

// Scanner decodes a stream of BaseStation lines, one per call to Scan.
// A line that fails to decode is reported through Message and does not
// stop the scan.
type Scanner struct {
	lines *bufio.Scanner
	line  int
	msg   *Message
	err   error
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{lines: bufio.NewScanner(r)}
}

// Scan advances to the next line. It returns false at the end of input or
// on a read error, which Err then reports.
func (s *Scanner) Scan() bool {
	s.msg, s.err = nil, nil
	if !s.lines.Scan() {
		return false
	}
	s.line++
	s.msg, s.err = Decode(s.lines.Text())
	return true
}

// Message returns the record decoded from the current line, or the
// *DecodeError it failed with.
func (s *Scanner) Message() (*Message, error) {
	return s.msg, s.err
}

// Text returns the raw current line.
func (s *Scanner) Text() string {
	return s.lines.Text()
}

// Line returns the 1-based number of the current line.
func (s *Scanner) Line() int {
	return s.line
}

// Err returns the first read error, not decode errors.
func (s *Scanner) Err() error {
	return s.lines.Err()
}
