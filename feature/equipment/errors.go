package equipment

import "errors"

var (
	// ErrNotFound is returned when the equipment does not exist.
	ErrNotFound = errors.New("equipment not found")
	// ErrInvalid is returned when equipment input fails validation.
	ErrInvalid = errors.New("invalid equipment")
)
