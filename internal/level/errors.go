package level

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingSeparator is returned when ENTITY or LEVEL is absent.
	ErrMissingSeparator = errors.New("missing section separator")
	// ErrBadSize is returned for an unreadable width,height line.
	ErrBadSize = errors.New("invalid level size")
	// ErrBadLegend is returned for a legend line missing required fields.
	ErrBadLegend = errors.New("invalid legend line")
	// ErrMissingSheet is returned when a required sprite sheet is unknown.
	ErrMissingSheet = errors.New("missing sprite sheet")
	// ErrUnexpectedEOF is returned when the text ends before the size line.
	ErrUnexpectedEOF = errors.New("unexpected end of level text")
)

// ParseError locates a failure in the level text.
type ParseError struct {
	Level string
	Line  int // 1-based; 0 when not tied to a line
	Err   error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("level: %s: line %d: %v", e.Level, e.Line, e.Err)
	}
	return fmt.Sprintf("level: %s: %v", e.Level, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
