// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package bitset defines a fixed-capacity bit set used to
// track the state of small enumerations (e.g., which
// pointer buttons or keys are held down).
package bitset

import (
	"iter"
	"math/bits"
	"unsafe"
)

// Uint represents the granularity of a bit set.
type Uint interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// S is a bit set with custom granularity.
// The zero value is an empty set with no capacity;
// call Init before use.
type S[T Uint] struct {
	s   []T
	cnt int
}

// nbit returns the number of bits in T.
func (*S[T]) nbit() int { return int(unsafe.Sizeof(T(0))) * 8 }

// New creates a set able to hold the indices [0, n).
func New[T Uint](n int) *S[T] { return new(S[T]).Init(n) }

// Init initializes the set to hold the indices [0, n).
// Any previously set bits are discarded.
func (s *S[T]) Init(n int) *S[T] {
	nb := s.nbit()
	s.s = make([]T, (n+nb-1)/nb)
	s.cnt = 0
	return s
}

// Cap returns the number of indices the set can hold.
func (s *S[_]) Cap() int { return len(s.s) * s.nbit() }

// Len returns the number of set bits.
func (s *S[_]) Len() int { return s.cnt }

// Set sets a given bit.
// Out of range indices are ignored.
func (s *S[T]) Set(index int) {
	i, b, ok := s.locate(index)
	if !ok {
		return
	}
	if s.s[i]&b == 0 {
		s.s[i] |= b
		s.cnt++
	}
}

// Unset unsets a given bit.
// Out of range indices are ignored.
func (s *S[T]) Unset(index int) {
	i, b, ok := s.locate(index)
	if !ok {
		return
	}
	if s.s[i]&b != 0 {
		s.s[i] &^= b
		s.cnt--
	}
}

// IsSet checks whether a given bit is set.
func (s *S[T]) IsSet(index int) bool {
	i, b, ok := s.locate(index)
	return ok && s.s[i]&b != 0
}

// Clear unsets every bit.
func (s *S[T]) Clear() {
	if s.cnt == 0 {
		return
	}
	clear(s.s)
	s.cnt = 0
}

// All returns an iterator over the indices of set bits,
// in increasing order.
func (s *S[T]) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		n := s.nbit()
		for i, x := range s.s {
			for x != 0 {
				b := bits.TrailingZeros64(uint64(x))
				if !yield(i*n + b) {
					return
				}
				x &^= T(1) << b
			}
		}
	}
}

func (s *S[T]) locate(index int) (i int, b T, ok bool) {
	if index < 0 || index >= s.Cap() {
		return
	}
	n := s.nbit()
	return index / n, T(1) << (index & (n - 1)), true
}
