package bar

import "errors"

var (
	// ErrStudiesUnavailable indicates the study list could not be fetched
	// or BAR reported the request as unsuccessful.
	ErrStudiesUnavailable = errors.New("studies unavailable")

	// ErrImageUnavailable indicates an eFP image could not be retrieved.
	ErrImageUnavailable = errors.New("image unavailable")
)
