package engine

import "errors"

// ErrExhausted is returned by LineSource.Next when no line remains.
var ErrExhausted = errors.New("yamlprops: no more lines")

// LineSource is a pull-based supplier of raw text lines.
type LineSource interface {
	// HasNext reports whether another line is available. It only buffers
	// and may be called repeatedly.
	HasNext() (bool, error)
	// Next returns the next line without its terminator.
	Next() (string, error)
}
