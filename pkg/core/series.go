package core

import (
	"golang.org/x/exp/constraints"
)

// Series is an ordered column of values indexed oldest to newest. The
// dataframe columns are Series so window and crossing checks read
// naturally at call sites.
type Series[T constraints.Ordered] []T

// Length returns the number of values in the series
func (s Series[T]) Length() int {
	return len(s)
}

// Last returns the value at the given position counted from the end:
// position 0 is the newest value, 1 the one before it
func (s Series[T]) Last(position int) T {
	return s[len(s)-1-position]
}

// LastValues returns the trailing window of up to 'size' values. A size
// larger than the series returns the series unchanged.
func (s Series[T]) LastValues(size int) Series[T] {
	if l := len(s); l > size {
		return s[l-size:]
	}
	return s
}

// Crossover reports whether the series moved above the reference on the
// newest value: strictly above now, at or below on the previous one.
// Both series need at least two values.
func (s Series[T]) Crossover(ref Series[T]) bool {
	return s.Last(0) > ref.Last(0) && s.Last(1) <= ref.Last(1)
}

// Crossunder reports whether the series moved below the reference on
// the newest value: at or below now, strictly above on the previous one
func (s Series[T]) Crossunder(ref Series[T]) bool {
	return s.Last(0) <= ref.Last(0) && s.Last(1) > ref.Last(1)
}
