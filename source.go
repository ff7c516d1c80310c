package yamlprops

import (
	"io"

	"golang.org/x/text/encoding"

	eng "github.com/reoring/yamlprops/internal/engine"
	"github.com/reoring/yamlprops/source/lines"
)

// LineSource is a pull-based supplier of raw text lines. HasNext only buffers
// and may be called repeatedly; Next returns ErrExhausted when the input is
// consumed. Custom implementations may be passed to Parse.
type LineSource interface {
	HasNext() (bool, error)
	Next() (string, error)
}

var _ LineSource = eng.LineSource(nil)

// ErrExhausted is returned by LineSource.Next when no line remains.
var ErrExhausted = eng.ErrExhausted

// FromString reads lines from an in-memory string.
func FromString(s string) LineSource { return lines.NewString(s) }

// FromReader reads lines of UTF-8 text from r.
func FromReader(r io.Reader) LineSource { return lines.NewReader(r) }

// FromBytes decodes r with enc (UTF-8 when nil) using a raw buffer of
// bufSize bytes (lines.DefaultBufferSize when <= 0). Invalid byte sequences
// are replaced with U+FFFD.
func FromBytes(r io.Reader, enc encoding.Encoding, bufSize int) LineSource {
	return lines.NewDecoder(r, enc, bufSize)
}
