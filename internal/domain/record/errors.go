package record

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel kinds for record errors.
var (
	ErrSyntaxInvalid        = errors.New("syntax invalid")
	ErrTimestampUnparseable = errors.New("timestamp unparseable")
	ErrNotObject            = errors.New("record root is not an object")
)

// SyntaxError reports a parse failure with its location.
type SyntaxError struct {
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Msg    string `json:"message"`
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid JSON syntax: %s at line %d, column %d", e.Msg, e.Line, e.Column)
}

// Unwrap lets callers match the sentinel with errors.Is.
func (e *SyntaxError) Unwrap() error { return ErrSyntaxInvalid }

// newSyntaxError converts an encoding/json error into a located SyntaxError.
func newSyntaxError(data []byte, err error) *SyntaxError {
	var offset int64
	msg := err.Error()

	var serr *json.SyntaxError
	if errors.As(err, &serr) {
		offset = serr.Offset
		msg = serr.Error()
	}

	line, col := locate(data, offset)
	return &SyntaxError{Line: line, Column: col, Msg: msg}
}

// locate converts a byte offset into 1-based line and column numbers.
func locate(data []byte, offset int64) (line, col int) {
	line, col = 1, 1
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
