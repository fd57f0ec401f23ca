package repository

import "errors"

// ErrNotFound is returned when a keyed lookup has no row.
var ErrNotFound = errors.New("not found")
