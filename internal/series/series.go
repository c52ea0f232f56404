// Package series defines the value types the indicator kernel operates on:
// immutable numeric and tri-state boolean sequences ordered oldest to newest,
// the derivation recipe attached to every derived sequence, and trailing
// alignment of sequences with different lengths.
package series

import (
	"fmt"
	"math"
)

// Recipe records how a derived sequence was produced: the transform
// identifier plus its scalar parameters. A later index-shifted view carries
// the same recipe with an increased offset, so "value n bars ago" can be
// re-derived consistently instead of being reinterpreted as a raw slice
// offset.
type Recipe struct {
	Transform string
	Args      []float64
	Offset    int
}

// Shifted returns the recipe for a view displaced n bars into the past.
func (r Recipe) Shifted(n int) Recipe {
	out := r
	out.Args = append([]float64{}, r.Args...)
	out.Offset += n
	return out
}

// Numeric is an ordered sequence of float64 observations, oldest to newest.
// NaN marks positions that are not yet computable (insufficient lookback).
// The backing buffer is private: constructors copy their input and accessors
// copy their output, so no two Numeric values ever alias the same storage.
type Numeric struct {
	values []float64
	recipe Recipe
}

// NewNumeric copies values into a fresh raw series with an empty recipe.
func NewNumeric(values []float64) *Numeric {
	return &Numeric{values: append([]float64{}, values...)}
}

// NewDerived copies values into a series carrying the given recipe.
func NewDerived(values []float64, r Recipe) *Numeric {
	return &Numeric{values: append([]float64{}, values...), recipe: r}
}

func (s *Numeric) Len() int { return len(s.values) }

// At returns the value at position i, oldest first.
func (s *Numeric) At(i int) float64 { return s.values[i] }

// Last returns the most recent value, or NaN for an empty series.
func (s *Numeric) Last() float64 {
	if len(s.values) == 0 {
		return math.NaN()
	}
	return s.values[len(s.values)-1]
}

// Values returns a copy of the backing buffer.
func (s *Numeric) Values() []float64 {
	return append([]float64{}, s.values...)
}

func (s *Numeric) Recipe() Recipe { return s.recipe }

// Shift returns the view of this series n bars in the past: the same values
// with the newest n observations dropped, carrying the source recipe with an
// increased offset. Shift(0) is a plain copy.
func (s *Numeric) Shift(n int) (*Numeric, error) {
	if n < 0 {
		return nil, fmt.Errorf("shift: negative offset %d: %w", n, ErrInvalidParameter)
	}
	if n >= len(s.values) {
		return nil, fmt.Errorf("shift: offset %d exceeds history %d: %w", n, len(s.values), ErrInsufficientData)
	}
	return NewDerived(s.values[:len(s.values)-n], s.recipe.Shifted(n)), nil
}

// tail returns the trailing n values without copying. Callers inside this
// package must copy before handing the slice out.
func (s *Numeric) tail(n int) []float64 {
	return s.values[len(s.values)-n:]
}

// Tri is a tri-state truth value: positions with insufficient lookback are
// TriUndef rather than false, so downstream reductions can tell "not true"
// from "not yet computable".
type Tri int8

const (
	TriUndef Tri = -1
	TriFalse Tri = 0
	TriTrue  Tri = 1
)

// Bool is an ordered sequence of tri-state truth values, oldest to newest.
// Immutable under the same copy discipline as Numeric.
type Bool struct {
	values []Tri
}

// NewBool copies plain booleans into a Bool series with no undefined slots.
func NewBool(values []bool) *Bool {
	out := make([]Tri, len(values))
	for i, v := range values {
		if v {
			out[i] = TriTrue
		}
	}
	return &Bool{values: out}
}

// NewTriBool copies tri-state values into a Bool series.
func NewTriBool(values []Tri) *Bool {
	return &Bool{values: append([]Tri{}, values...)}
}

func (b *Bool) Len() int { return len(b.values) }

// At returns the tri-state value at position i.
func (b *Bool) At(i int) Tri { return b.values[i] }

// True reports whether position i is defined and true.
func (b *Bool) True(i int) bool { return b.values[i] == TriTrue }

// Values returns a copy of the backing buffer.
func (b *Bool) Values() []Tri {
	return append([]Tri{}, b.values...)
}

func (b *Bool) tail(n int) []Tri {
	return b.values[len(b.values)-n:]
}
