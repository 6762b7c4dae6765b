package models

import "errors"

// Sentinel errors for entity lookups.
var (
	ErrPersonNotFound = errors.New("person not found")
	ErrFamilyNotFound = errors.New("family not found")
)

// Sentinel errors for selection validation.
var (
	ErrSelectionEmpty = errors.New("selection is empty: no interesting people, no anchor, and include_all_people not set")
	ErrMissingID      = errors.New("id is required")
)
