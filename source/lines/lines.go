// Package lines provides the line sources consumed by the parser: an
// in-memory string, a buffered UTF-8 reader and a decoding byte stream.
//
// Every source strips "\n" and "\r\n" terminators and implements
// engine.LineSource: HasNext buffers at most one line, Next fails with
// engine.ErrExhausted once the input is consumed. Errors from the underlying
// reader are returned unchanged and repeated on later calls.
package lines

import (
	"bufio"
	"io"
	"strings"

	eng "github.com/reoring/yamlprops/internal/engine"
)

// NewString splits s lazily. Empty input yields no lines and a trailing
// terminator does not produce an extra empty line.
func NewString(s string) eng.LineSource { return &stringSource{s: s} }

type stringSource struct {
	s       string
	pos     int
	pending string
	has     bool
}

func (s *stringSource) HasNext() (bool, error) {
	if s.has {
		return true, nil
	}
	if s.pos >= len(s.s) {
		return false, nil
	}
	rest := s.s[s.pos:]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		s.pending = trimCR(rest[:i])
		s.pos += i + 1
	} else {
		s.pending = trimCR(rest)
		s.pos = len(s.s)
	}
	s.has = true
	return true, nil
}

func (s *stringSource) Next() (string, error) {
	return next(s, &s.has, &s.pending)
}

// NewReader reads UTF-8 text through a bufio.Reader.
func NewReader(r io.Reader) eng.LineSource {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &readerSource{br: br}
}

type readerSource struct {
	br      *bufio.Reader
	pending string
	has     bool
	eof     bool
	err     error
}

func (s *readerSource) HasNext() (bool, error) {
	if s.has {
		return true, nil
	}
	if s.err != nil {
		return false, s.err
	}
	if s.eof {
		return false, nil
	}
	line, err := s.br.ReadString('\n')
	switch {
	case err == io.EOF:
		s.eof = true
		if line == "" {
			return false, nil
		}
	case err != nil:
		s.err = err
		return false, err
	default:
		line = line[:len(line)-1]
	}
	s.pending = trimCR(line)
	s.has = true
	return true, nil
}

func (s *readerSource) Next() (string, error) {
	return next(s, &s.has, &s.pending)
}

// next implements Next on top of HasNext for every source.
func next(src eng.LineSource, has *bool, pending *string) (string, error) {
	ok, err := src.HasNext()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", eng.ErrExhausted
	}
	*has = false
	line := *pending
	*pending = ""
	return line, nil
}

func trimCR(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\r' {
		return s[:n-1]
	}
	return s
}
