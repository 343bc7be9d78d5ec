package basestation

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedField is wrapped by a DecodeError when a column holds text
	// outside its grammar.
	ErrMalformedField = errors.New("malformed field")

	// ErrTruncatedLine is wrapped by a DecodeError when a required column
	// is missing from the line.
	ErrTruncatedLine = errors.New("truncated line")
)

// DecodeError reports the column that made a line undecodable.
type DecodeError struct {
	Index int
	Name  string
	Kind  Kind
	Value string
	Err   error
}

func (e *DecodeError) Error() string {
	if errors.Is(e.Err, ErrTruncatedLine) {
		return fmt.Sprintf("basestation: field %d (%s): %v", e.Index, e.Name, e.Err)
	}
	return fmt.Sprintf("basestation: field %d (%s): invalid %s %q: %v", e.Index, e.Name, e.Kind, e.Value, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func malformed(index int, value string, cause error) *DecodeError {
	f := FieldAt(index)
	err := ErrMalformedField
	if cause != nil {
		err = fmt.Errorf("%w: %v", ErrMalformedField, cause)
	}
	return &DecodeError{Index: index, Name: f.Name, Kind: f.Kind, Value: value, Err: err}
}

func truncated(index, count int) *DecodeError {
	f := FieldAt(index)
	return &DecodeError{
		Index: index,
		Name:  f.Name,
		Kind:  f.Kind,
		Err:   fmt.Errorf("%w: line has %d fields", ErrTruncatedLine, count),
	}
}
