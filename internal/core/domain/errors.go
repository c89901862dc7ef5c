package domain

import "errors"

// Persistence-level errors. Repositories translate driver errors into
// these so services never depend on GORM error values.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrDuplicateEmail = errors.New("email already exists")
)
