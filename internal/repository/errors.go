package repository

import "errors"

// ErrNotFound is returned (wrapped) when a record lookup matches no row.
var ErrNotFound = errors.New("not found")
