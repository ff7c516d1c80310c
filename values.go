package yamlprops

import (
	"errors"
	"iter"
)

var (
	// ErrIndexOutOfRange is returned by indexed access outside [0, Len).
	ErrIndexOutOfRange = errors.New("yamlprops: index out of range")
	// ErrConcurrentModification is returned by an Iterator whose Values grew
	// after the iterator was created.
	ErrConcurrentModification = errors.New("yamlprops: values modified during iteration")
)

// Values is the append-only list behind a multiple-valued property. It is
// never empty and is read-only once the Document is materialized.
type Values struct {
	items   []string // len(items) is the capacity
	n       int
	version int
}

func newValues(first string) *Values {
	v := &Values{items: make([]string, 1)}
	v.items[0] = first
	v.n = 1
	return v
}

// add appends s, doubling the backing array when full.
func (v *Values) add(s string) {
	if v.n == len(v.items) {
		grown := make([]string, 2*len(v.items))
		copy(grown, v.items)
		v.items = grown
	}
	v.items[v.n] = s
	v.n++
	v.version++
}

// Len returns the number of values.
func (v *Values) Len() int { return v.n }

// Get returns the i-th value.
func (v *Values) Get(i int) (string, error) {
	if i < 0 || i >= v.n {
		return "", ErrIndexOutOfRange
	}
	return v.items[i], nil
}

// Slice returns a copy of the values.
func (v *Values) Slice() []string {
	out := make([]string, v.n)
	copy(out, v.items[:v.n])
	return out
}

// All yields index/value pairs in insertion order.
func (v *Values) All() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i := 0; i < v.n; i++ {
			if !yield(i, v.items[i]) {
				return
			}
		}
	}
}

// Iterator returns a fail-fast forward iterator.
func (v *Values) Iterator() *Iterator {
	return &Iterator{v: v, version: v.version}
}

// View returns the identity view over all values.
func (v *Values) View() View[string] {
	return View[string]{src: v, lo: 0, hi: v.n, fn: identity}
}

// Iterator walks a Values forward. It fails with ErrConcurrentModification
// when the underlying Values grew since the iterator was created.
type Iterator struct {
	v       *Values
	version int
	pos     int
}

// Next returns the next value; ok is false once the values are exhausted.
func (it *Iterator) Next() (s string, ok bool, err error) {
	if it.v.version != it.version {
		return "", false, ErrConcurrentModification
	}
	if it.pos >= it.v.n {
		return "", false, nil
	}
	s = it.v.items[it.pos]
	it.pos++
	return s, true, nil
}

func identity(s string) (string, error) { return s, nil }
