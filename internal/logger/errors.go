package logger

import "errors"

var (
	// ErrNilConfig is returned when a nil configuration is provided.
	ErrNilConfig = errors.New("logger config is nil")
)
