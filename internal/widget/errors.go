package widget

import "errors"

var (
	// ErrUnknownWidget indicates no mounted widget has the given ID.
	ErrUnknownWidget = errors.New("unknown widget")

	// ErrUnknownStudy indicates a selection that is not in the widget's study list.
	ErrUnknownStudy = errors.New("unknown study")

	// ErrNotReady indicates the widget has no study list to select from.
	ErrNotReady = errors.New("widget has no studies to select from")
)
