package storage

import "errors"

var (
	// ErrNotFound is returned when a referenced person, product or
	// achievement does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotAllowed is returned when a write touches a (person, product)
	// pair whose permission is off.
	ErrNotAllowed = errors.New("product not allowed for person")

	// ErrLeadImmutable is returned on attempts to delete the LEAD person.
	ErrLeadImmutable = errors.New("LEAD person cannot be deleted")
)
