package window

import "errors"

var (
	// ErrCursorPosition is returned when the backend refuses to move the
	// cursor.
	ErrCursorPosition = errors.New("cursor position rejected")
	// ErrBuilderConsumed is returned by a second Build on the same builder.
	ErrBuilderConsumed = errors.New("window builder already built")
)

// CreationError reports that the backend could not create a window, for
// example because of missing permissions, an incompatible display
// configuration or exhausted resources.
type CreationError struct {
	Err error
}

func (e *CreationError) Error() string {
	return "window creation failed: " + e.Err.Error()
}

func (e *CreationError) Unwrap() error {
	return e.Err
}
