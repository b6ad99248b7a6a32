package listview

import (
	"errors"
	"fmt"
)

// Common engine errors.
var (
	// ErrInvalidArgument is the parent of every caller contract violation.
	ErrInvalidArgument = errors.New("invalid argument")

	ErrIndexOutOfRange = fmt.Errorf("%w: index outside selectable range", ErrInvalidArgument)
	ErrNotSelectable   = fmt.Errorf("%w: item is not selectable", ErrInvalidArgument)
	ErrUnknownKey      = fmt.Errorf("%w: unknown navigation key", ErrInvalidArgument)

	// ErrBusy is returned when an entry point is called while another is still running.
	ErrBusy = errors.New("list engine busy")

	ErrNilContainer = errors.New("container cannot be nil")
	ErrNilRenderer  = errors.New("renderer cannot be nil")
)
