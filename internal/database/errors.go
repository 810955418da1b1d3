package database

import "errors"

// ErrNotFound is returned when a row does not exist for the given owner
var ErrNotFound = errors.New("record not found")
