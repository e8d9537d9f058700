package driver

import "errors"

var (
	ErrDriverNotFound = errors.New("driver not found")
	ErrImmutableField = errors.New("driver company and email cannot be changed")
)
