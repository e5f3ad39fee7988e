package format

import "errors"

var (
	// ErrTruncated indicates the stream lacked the bytes required for a field.
	ErrTruncated = errors.New("format: truncated stream")
	// ErrShortWrite indicates the sink accepted fewer bytes than required.
	ErrShortWrite = errors.New("format: short write")
)
