package api

import "errors"

// Common errors
var (
	// ErrCreatorNotFound indicates the profile page had no user info block
	ErrCreatorNotFound = errors.New("creator not found")
	// ErrMissingID indicates a call was made without the id it pages over
	ErrMissingID = errors.New("missing id")
)
