package render

import "errors"

// Errors returned by FloatImage and the exporters. Match them with errors.Is;
// I/O failures wrap both ErrIO and the underlying cause.
var (
	ErrInvalidDimensions = errors.New("invalid image dimensions")
	ErrChannelMismatch   = errors.New("color length does not match channel count")
	ErrOutOfBounds       = errors.New("pixel coordinates out of bounds")
	ErrIO                = errors.New("image i/o failed")
	ErrNotImplemented    = errors.New("not implemented")
)
