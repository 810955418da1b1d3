package models

import "errors"

// ErrUnknownPriority is returned when a priority name is not recognised
var ErrUnknownPriority = errors.New("priority must be one of High, Medium, Low, Completed")
