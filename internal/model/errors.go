package model

import "errors"

var (
	// ErrNotFound is returned when a property id has no merged record.
	ErrNotFound = errors.New("property not found")

	// ErrNoListings is returned by the comparison matcher when there are not
	// enough distinct listings left to match both addresses.
	ErrNoListings = errors.New("not enough distinct listings to compare")
)
