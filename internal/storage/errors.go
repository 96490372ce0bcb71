package storage

import "errors"

var (
	// ErrNotFound indicates a chord set file does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a create would replace an existing file.
	ErrAlreadyExists = errors.New("already exists")
	// ErrParse indicates a file is not in the expected CSV layout.
	ErrParse = errors.New("parse error")
	// ErrInvalidName indicates a chord set name cannot be used as a file name.
	ErrInvalidName = errors.New("invalid name")
	// ErrIO indicates a write or delete failed at the filesystem level.
	ErrIO = errors.New("i/o error")
)
