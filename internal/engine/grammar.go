package engine

// Markers of the line grammar.
const (
	CommentMarker = '#'
	ListMarker    = '-'
	Quote         = '"'
	Escape        = '\\'
	KeySeparator  = '.'
)

// Grammar selects between the two observed variants of the subset grammar.
type Grammar struct {
	// TolerateIndentedComments classifies a comment line preceded by
	// non-space indentation (tabs, form feeds, ...) as Empty instead of
	// rejecting it.
	TolerateIndentedComments bool
	// ReserveDot forbids '.' in unquoted values.
	ReserveDot bool
}

var (
	// DefaultGrammar tolerates irregular indentation before comments and
	// allows dots in unquoted values, so versions like 1.2.3 need no quotes.
	DefaultGrammar = Grammar{TolerateIndentedComments: true}
	// StrictGrammar rejects both.
	StrictGrammar = Grammar{ReserveDot: true}
)

// reserved lists the characters that force a value to be quoted.
func (g Grammar) reserved() string {
	if g.ReserveDot {
		return `"#:-.`
	}
	return `"#:-`
}
