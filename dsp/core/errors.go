package core

import "errors"

var (
	// ErrInsufficientData reports a buffer shorter than a stage's minimum.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrDegenerateSignal reports a signal whose energy or normalization
	// denominator is zero, so no meaningful estimate exists.
	ErrDegenerateSignal = errors.New("degenerate signal")

	// ErrImplausibleResult reports an estimate outside its physiological range.
	ErrImplausibleResult = errors.New("implausible result")

	// ErrMalformedInput reports inconsistent input shape (mismatched channel
	// lengths, negative samples, timestamps out of order).
	ErrMalformedInput = errors.New("malformed input")
)
