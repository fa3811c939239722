package permissions

import "errors"

var (
	// ErrDuplicateGroup is returned when a definition source declares the
	// same group name twice
	ErrDuplicateGroup = errors.New("duplicate group name")
)
