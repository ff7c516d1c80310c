package engine

import "strconv"

// Line is the classification of one physical input line. The concrete
// variants are Empty, Key, KeyValue and ListItem; consumers switch over them
// exhaustively.
type Line interface {
	isLine()
	String() string
}

// Empty is a blank or comment-only line.
type Empty struct{}

// Key opens a nesting level without an immediate value.
type Key struct {
	Depth int
	Key   string
}

// KeyValue is a leaf scalar property.
type KeyValue struct {
	Depth int
	Key   string
	Value string
}

// ListItem is one element of the list attached to the nearest open key.
type ListItem struct {
	Depth int
	Value string
}

func (Empty) isLine()    {}
func (Key) isLine()      {}
func (KeyValue) isLine() {}
func (ListItem) isLine() {}

func (Empty) String() string { return "Empty" }
func (l Key) String() string { return "Key(" + strconv.Itoa(l.Depth) + ", " + strconv.Quote(l.Key) + ")" }
func (l KeyValue) String() string {
	return "KeyValue(" + strconv.Itoa(l.Depth) + ", " + strconv.Quote(l.Key) + ", " + strconv.Quote(l.Value) + ")"
}
func (l ListItem) String() string {
	return "ListItem(" + strconv.Itoa(l.Depth) + ", " + strconv.Quote(l.Value) + ")"
}
