package pipeline

import "errors"

// Sentinel errors classifying every unit failure. Wrapped with %w at the
// failure site so log consumers can match on errors.Is.
var (
	// ErrTransport marks a failed forecast client call.
	ErrTransport = errors.New("transport error")
	// ErrFilesystem marks a failed read, write or mkdir.
	ErrFilesystem = errors.New("filesystem error")
	// ErrDecode marks malformed JSON.
	ErrDecode = errors.New("decode error")
	// ErrValidation marks JSON that decoded but does not satisfy the
	// expected shape.
	ErrValidation = errors.New("validation error")
)
