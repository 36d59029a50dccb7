package db

import "errors"

var (
	ErrResultNotFound = errors.New("game result not found")
	ErrBucketNotFound = errors.New("bucket not found")
	ErrNilDB          = errors.New("database connection is nil")
	ErrNilResult      = errors.New("game result is nil")
)
