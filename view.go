package yamlprops

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// View is a read-only, lazily mapped window over a Values. Views share the
// backing array but no cursor, so disjoint views can be traversed from
// different goroutines once parsing has completed.
type View[T any] struct {
	src    *Values
	lo, hi int
	fn     func(string) (T, error)
}

// MapValues returns a view converting every value with fn on access.
func MapValues[T any](v *Values, fn func(string) (T, error)) View[T] {
	return View[T]{src: v, lo: 0, hi: v.Len(), fn: fn}
}

// Len returns the number of elements in the view.
func (w View[T]) Len() int { return w.hi - w.lo }

// Get maps and returns the i-th element of the view.
func (w View[T]) Get(i int) (T, error) {
	if i < 0 || i >= w.Len() {
		var zero T
		return zero, ErrIndexOutOfRange
	}
	return w.fn(w.src.items[w.lo+i])
}

// Sub returns the elements [from, to) of the view.
func (w View[T]) Sub(from, to int) (View[T], error) {
	if from < 0 || to > w.Len() || from > to {
		return View[T]{}, ErrIndexOutOfRange
	}
	return View[T]{src: w.src, lo: w.lo + from, hi: w.lo + to, fn: w.fn}, nil
}

// Split cuts the view in two halves. The first half gets the extra element
// when the length is odd.
func (w View[T]) Split() (View[T], View[T]) {
	mid := w.lo + (w.Len()+1)/2
	return View[T]{src: w.src, lo: w.lo, hi: mid, fn: w.fn},
		View[T]{src: w.src, lo: mid, hi: w.hi, fn: w.fn}
}

// Collect maps every element, stopping at the first mapping error.
func (w View[T]) Collect() ([]T, error) {
	out := make([]T, 0, w.Len())
	for i := 0; i < w.Len(); i++ {
		v, err := w.Get(i)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ParallelEach calls fn for every element, traversing up to workers disjoint
// sub-ranges concurrently. i is the index within w. The first error cancels
// the remaining work and is returned.
func (w View[T]) ParallelEach(ctx context.Context, workers int, fn func(i int, v T) error) error {
	if workers < 1 {
		workers = 1
	}
	parts := []View[T]{w}
	for len(parts) < workers {
		largest := -1
		for i, p := range parts {
			if p.Len() >= 2 && (largest < 0 || p.Len() > parts[largest].Len()) {
				largest = i
			}
		}
		if largest < 0 {
			break
		}
		a, b := parts[largest].Split()
		parts[largest] = a
		parts = append(parts, b)
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, p := range parts {
		g.Go(func() error {
			for i := 0; i < p.Len(); i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				v, err := p.Get(i)
				if err != nil {
					return err
				}
				if err := fn(p.lo-w.lo+i, v); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
