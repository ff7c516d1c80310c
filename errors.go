package yamlprops

import (
	"errors"
	"fmt"
	"strings"

	eng "github.com/reoring/yamlprops/internal/engine"
)

// Issue codes.
const (
	// Structural (lexer and resolver).
	CodeIndentation  = eng.CodeIndentation
	CodeInvalidKey   = eng.CodeInvalidKey
	CodeInvalidValue = eng.CodeInvalidValue
	CodeSequence     = eng.CodeSequence
	// Schema (collectors).
	CodeInvalidType  = "invalid_type"
	CodeDuplicateKey = "duplicate_key"
	CodeRequired     = "required"
	CodeUnknownKey   = "unknown_key"
	// Broken invariants between the parser stages.
	CodeInternal = eng.CodeInternal
)

// Phases.
const (
	PhaseLexer     = eng.PhaseLexer
	PhaseResolver  = eng.PhaseResolver
	PhaseCollector = "collector"
)

// maxFragment caps the length of Issue.InputFragment in runes.
const maxFragment = 64

// Issue describes why an input was rejected.
type Issue struct {
	Code    string // One of the codes listed above.
	Phase   string // Stage that rejected the input.
	Path    string // Dotted key, when known.
	Message string // Localized via i18n.
	Hint    string // Precise reason, e.g. "missing colon".
	Cause   error  // Optional: underlying error.
	// Line is the 1-based line number (0 when unknown).
	Line int
	// InputFragment is the offending raw line, truncated.
	InputFragment string
}

// Issues is a collection of issues that implements error. Parsing stops at
// the first problem, so it normally holds a single entry.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		b.WriteString(it.Code)
		if it.Hint != "" {
			fmt.Fprintf(b, " (%s)", it.Hint)
		}
		if it.Path != "" {
			fmt.Fprintf(b, " at %s", it.Path)
		}
		if it.Line > 0 {
			fmt.Fprintf(b, " on line %d", it.Line)
		}
		if it.InputFragment != "" {
			fmt.Fprintf(b, ": %q", it.InputFragment)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// HasCode reports whether err carries an issue with the given code.
func HasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

func fragment(raw string) string {
	r := []rune(raw)
	if len(r) <= maxFragment {
		return raw
	}
	return string(r[:maxFragment]) + "…"
}
