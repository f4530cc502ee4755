package transform

import "errors"

var (
	// ErrDegenerateMatrix indicates a singular or non-finite matrix.
	ErrDegenerateMatrix = errors.New("transform: degenerate matrix")
	// ErrSizeMismatch indicates source and destination sizes that an
	// identity copy cannot reconcile.
	ErrSizeMismatch = errors.New("transform: size mismatch")
	// ErrEmptyFrame indicates an empty source, destination or sampling area.
	ErrEmptyFrame = errors.New("transform: empty frame")
)
