package lines

import (
	"bytes"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	eng "github.com/reoring/yamlprops/internal/engine"
)

const (
	// DefaultBufferSize is the raw byte buffer size used when none is given.
	DefaultBufferSize = 4096
	// MinBufferSize leaves room for a partial multi-byte sequence carried
	// over between reads.
	MinBufferSize = 16
)

// NewDecoder reads raw bytes from r and decodes them with enc, bufSize bytes
// at a time. A nil enc means UTF-8. Malformed or unmappable input is replaced
// with U+FFFD instead of failing. Memory stays bounded by the longest line.
func NewDecoder(r io.Reader, enc encoding.Encoding, bufSize int) eng.LineSource {
	if enc == nil {
		enc = unicode.UTF8
	}
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	if bufSize < MinBufferSize {
		bufSize = MinBufferSize
	}
	return &decodingSource{
		r:   r,
		dec: enc.NewDecoder(),
		raw: make([]byte, bufSize),
		dst: make([]byte, 4*bufSize),
	}
}

// LookupEncoding resolves a WHATWG encoding label such as "utf-8",
// "utf-16le" or "windows-1252". The empty label means UTF-8.
func LookupEncoding(name string) (encoding.Encoding, error) {
	if name == "" {
		return unicode.UTF8, nil
	}
	return htmlindex.Get(name)
}

type decodingSource struct {
	r   io.Reader
	dec transform.Transformer

	raw  []byte // fixed size; raw[:rawN] is not decoded yet
	rawN int
	dst  []byte

	text    []byte // decoded text, consumed up to head
	head    int
	scanned int   // text[:scanned] has been searched for newlines
	ends    []int // newline offsets in text; ends[:ei] are consumed
	ei      int

	eof     bool
	err     error
	pending string
	has     bool
}

func (s *decodingSource) HasNext() (bool, error) {
	for !s.has {
		if s.ei < len(s.ends) {
			end := s.ends[s.ei]
			s.ei++
			s.pending = trimCR(string(s.text[s.head:end]))
			s.head = end + 1
			s.has = true
			break
		}
		if s.err != nil {
			return false, s.err
		}
		if s.eof {
			if s.head < len(s.text) {
				s.pending = trimCR(string(s.text[s.head:]))
				s.head = len(s.text)
				s.has = true
				break
			}
			return false, nil
		}
		if err := s.fill(); err != nil {
			s.err = err
			return false, err
		}
	}
	return true, nil
}

func (s *decodingSource) Next() (string, error) {
	return next(s, &s.has, &s.pending)
}

// fill reads one chunk, decodes it and records the newlines it contains. It
// is only called when no complete line is buffered. Bytes returned together
// with a read error are decoded first; the error is kept for HasNext to
// report once the lines they complete have been consumed.
func (s *decodingSource) fill() error {
	s.compact()
	n, readErr := s.r.Read(s.raw[s.rawN:])
	s.rawN += n
	atEOF := readErr == io.EOF
	if err := s.decode(atEOF); err != nil {
		return err
	}
	s.scan()
	s.eof = atEOF
	if readErr != nil && !atEOF {
		s.err = readErr
	}
	return nil
}

func (s *decodingSource) decode(atEOF bool) error {
	src := s.raw[:s.rawN]
	for {
		nDst, nSrc, err := s.dec.Transform(s.dst, src, atEOF)
		s.text = append(s.text, s.dst[:nDst]...)
		src = src[nSrc:]
		switch err {
		case nil:
			s.rawN = copy(s.raw, src)
			return nil
		case transform.ErrShortDst:
			if nDst == 0 && nSrc == 0 {
				s.dst = make([]byte, 2*len(s.dst))
			}
		case transform.ErrShortSrc:
			if atEOF {
				s.text = append(s.text, "\uFFFD"...)
				s.rawN = 0
				return nil
			}
			// keep the partial sequence for the next read
			s.rawN = copy(s.raw, src)
			return nil
		default:
			return err
		}
	}
}

func (s *decodingSource) scan() {
	for s.scanned < len(s.text) {
		i := bytes.IndexByte(s.text[s.scanned:], '\n')
		if i < 0 {
			s.scanned = len(s.text)
			return
		}
		s.ends = append(s.ends, s.scanned+i)
		s.scanned += i + 1
	}
}

// compact drops consumed text. Every recorded newline has been consumed when
// it runs, so the offsets can simply be reset.
func (s *decodingSource) compact() {
	if s.head == 0 {
		return
	}
	n := copy(s.text, s.text[s.head:])
	s.text = s.text[:n]
	s.scanned -= s.head
	s.head = 0
	s.ends = s.ends[:0]
	s.ei = 0
}
