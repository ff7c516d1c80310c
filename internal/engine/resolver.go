package engine

import "strings"

// Sink receives the events produced by the Resolver.
type Sink interface {
	CollectSingleValue(key, value string) error
	CollectListValue(key, value string, isNewList bool) error
}

type lineKind int

const (
	kindNone lineKind = iota
	kindKey
	kindKeyValue
	kindListItem
)

type frame struct {
	depth int
	key   string
}

// Resolver turns classified lines into dotted keys and collector events.
// It holds the state of a single parse and must not be shared.
type Resolver struct {
	sink    Sink
	grammar Grammar
	stack   []frame
	prev    lineKind
}

// NewResolver returns a Resolver feeding sink.
func NewResolver(sink Sink, g Grammar) *Resolver {
	return &Resolver{sink: sink, grammar: g}
}

// Feed lexes raw and applies the resulting line.
func (r *Resolver) Feed(raw string) error {
	line, err := Lex(raw, r.grammar)
	if err != nil {
		return err
	}
	return r.Apply(line, raw)
}

// Apply resolves an already classified line. raw is only used for error
// reporting.
func (r *Resolver) Apply(line Line, raw string) error {
	switch l := line.(type) {
	case Empty:
		return nil
	case Key:
		if err := r.open(l.Depth, raw); err != nil {
			return err
		}
		r.stack = append(r.stack, frame{depth: l.Depth, key: l.Key})
		r.prev = kindKey
		return nil
	case KeyValue:
		if err := r.open(l.Depth, raw); err != nil {
			return err
		}
		if err := r.sink.CollectSingleValue(r.path(l.Key), l.Value); err != nil {
			return err
		}
		r.prev = kindKeyValue
		return nil
	case ListItem:
		if r.prev != kindKey && r.prev != kindListItem {
			return IssueError{SimpleIssue{Code: CodeSequence, Phase: PhaseResolver, Message: ReasonNoKeyToAttach, Input: raw}}
		}
		if err := r.sink.CollectListValue(r.path(""), l.Value, r.prev == kindKey); err != nil {
			return err
		}
		r.prev = kindListItem
		return nil
	default:
		return IssueError{SimpleIssue{Code: CodeInternal, Phase: PhaseResolver, Message: ReasonUnknownLine, Input: raw}}
	}
}

// open closes every frame at depth or deeper.
func (r *Resolver) open(depth int, raw string) error {
	for len(r.stack) > 0 && r.stack[len(r.stack)-1].depth >= depth {
		r.stack = r.stack[:len(r.stack)-1]
	}
	if len(r.stack) == 0 && depth > 0 {
		return IssueError{SimpleIssue{Code: CodeSequence, Phase: PhaseResolver, Message: ReasonFirstKeyIndent, Input: raw}}
	}
	return nil
}

// path joins the open frames and an optional last segment.
func (r *Resolver) path(last string) string {
	if len(r.stack) == 0 {
		return last
	}
	var b strings.Builder
	for i, f := range r.stack {
		if i > 0 {
			b.WriteByte(KeySeparator)
		}
		b.WriteString(f.key)
	}
	if last != "" {
		b.WriteByte(KeySeparator)
		b.WriteString(last)
	}
	return b.String()
}

// Depth reports how many nesting levels are currently open.
func (r *Resolver) Depth() int { return len(r.stack) }
