package species

import "errors"

var (
	// ErrUnknownSpecies indicates the gene's species has no species table entry.
	ErrUnknownSpecies = errors.New("unknown species")

	// ErrIncompleteMapping indicates the species is known but there is no
	// way yet to translate this gene into a BAR identifier.
	ErrIncompleteMapping = errors.New("incomplete gene identifier mapping")
)
