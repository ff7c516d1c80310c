package engine

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lex classifies one raw line (without its terminator).
func Lex(raw string, g Grammar) (Line, error) {
	depth := 0
	irregular := false
	rest := raw
	for rest != "" {
		r, size := utf8.DecodeRuneInString(rest)
		if r == ' ' {
			depth++
		} else if unicode.IsSpace(r) {
			irregular = true
		} else {
			break
		}
		rest = rest[size:]
	}

	if irregular && rest != "" && (rest[0] != CommentMarker || !g.TolerateIndentedComments) {
		return nil, lexError(CodeIndentation, ReasonIrregularIndent, raw)
	}
	if rest == "" || rest[0] == CommentMarker {
		return Empty{}, nil
	}

	if rest[0] == ListMarker {
		after := rest[1:]
		if r, _ := utf8.DecodeRuneInString(after); after == "" || !unicode.IsSpace(r) {
			return nil, lexError(CodeInvalidValue, ReasonListWhitespace, raw)
		}
		v, err := lexValue(after, raw, g)
		if err != nil {
			return nil, err
		}
		return ListItem{Depth: depth, Value: v}, nil
	}

	colon := strings.IndexByte(rest, ':')
	if colon < 0 {
		return nil, lexError(CodeInvalidKey, ReasonMissingColon, raw)
	}
	line := strings.TrimRightFunc(rest, unicode.IsSpace)
	key := line[:colon]
	if reason := keyReason(key); reason != "" {
		return nil, lexError(CodeInvalidKey, reason, raw)
	}
	if colon == len(line)-1 {
		return Key{Depth: depth, Key: key}, nil
	}
	tail := line[colon+1:]
	if r, _ := utf8.DecodeRuneInString(tail); !unicode.IsSpace(r) {
		return nil, lexError(CodeInvalidValue, ReasonColonWhitespace, raw)
	}
	v, err := lexValue(tail, raw, g)
	if err != nil {
		return nil, err
	}
	return KeyValue{Depth: depth, Key: key, Value: v}, nil
}

func lexValue(s, raw string, g Grammar) (string, error) {
	v := strings.TrimFunc(s, unicode.IsSpace)
	if v == "" {
		return "", lexError(CodeInvalidValue, ReasonEmptyValue, raw)
	}
	if v[0] == Quote {
		out, reason := unquote(v)
		if reason != "" {
			return "", lexError(CodeInvalidValue, reason, raw)
		}
		return out, nil
	}
	if strings.ContainsAny(v, g.reserved()) {
		return "", lexError(CodeInvalidValue, ReasonInvalidCharNoQuotes, raw)
	}
	return v, nil
}

// unquote strips the surrounding quotes of v and resolves \" escapes inside
// them. Any other backslash, including a trailing one, is kept verbatim.
func unquote(v string) (string, string) {
	if len(v) < 2 || v[len(v)-1] != Quote {
		return "", ReasonMissingEndQuote
	}
	inner := v[1 : len(v)-1]
	if strings.IndexByte(inner, Quote) < 0 {
		return inner, ""
	}
	var b strings.Builder
	b.Grow(len(inner))
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		switch {
		case c == Escape && i+1 < len(inner) && inner[i+1] == Quote:
			b.WriteByte(Quote)
			i++
		case c == Quote:
			return "", ReasonUnescapedQuote
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), ""
}

// ValidateKey checks a dotted key against the key grammar.
func ValidateKey(key string) error {
	if reason := keyReason(key); reason != "" {
		return IssueError{SimpleIssue{Code: CodeInvalidKey, Phase: PhaseLexer, Path: key, Message: reason}}
	}
	return nil
}

func keyReason(key string) string {
	if key == "" {
		return ReasonEmptyKey
	}
	for _, seg := range strings.Split(key, string(KeySeparator)) {
		if seg == "" {
			return ReasonEmptyKeySegment
		}
		for _, r := range seg {
			if !isKeyRune(r) {
				return ReasonForbiddenKeyChar
			}
		}
		if isSpecial(seg[0]) {
			return ReasonSegmentStartsSpecial
		}
		if isSpecial(seg[len(seg)-1]) {
			return ReasonSegmentEndsSpecial
		}
	}
	return ""
}

func isKeyRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'
}

func isSpecial(c byte) bool { return c == '-' || c == '_' }
