package domain

import "errors"

var (
	ErrFileNotFound   = errors.New("file not found")
	ErrSchemaMismatch = errors.New("schema mismatch")
	ErrEmptyInput     = errors.New("empty input")
	ErrUnknownDialect = errors.New("unknown sql dialect")
	ErrUnknownQuoting = errors.New("unknown quoting mode")
	ErrUnknownFormat  = errors.New("unknown format")
)
