package command

import (
	"errors"
	"fmt"
)

// Common errors returned by the command package.
var (
	// ErrParse is returned when a command line cannot be split into words.
	ErrParse = errors.New("invalid command, cannot parse")

	// ErrEmptyCommand is returned when a command line contains no words.
	// It wraps ErrParse.
	ErrEmptyCommand = fmt.Errorf("%w: empty command", ErrParse)

	// ErrMissingCurrent is returned when a {} template is resolved without
	// a current path.
	ErrMissingCurrent = errors.New("one-path placeholder resolved without a current path")
)
