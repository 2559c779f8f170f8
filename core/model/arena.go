package model

import (
	"fmt"
	"iter"
)

// Key addresses a slot in an Arena. The zero Key is never handed out, so it
// doubles as "no key".
type Key struct {
	index uint32
	gen   uint32
}

// IsZero reports whether k is the zero key.
func (k Key) IsZero() bool { return k.gen == 0 }

func (k Key) String() string {
	if k.IsZero() {
		return "nil"
	}
	return fmt.Sprintf("%dv%d", k.index, k.gen)
}

type slot[T any] struct {
	val      T
	gen      uint32
	occupied bool
}

// Arena stores values in reusable slots. Removing a value bumps the slot's
// generation, so keys held from before the removal stop resolving instead of
// aliasing whatever is inserted into the slot next.
type Arena[T any] struct {
	slots []slot[T]
	free  []uint32
	n     int
}

// Insert stores v and returns its key.
func (a *Arena[T]) Insert(v T) Key {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot[T]{gen: 1})
	}
	s := &a.slots[idx]
	s.val = v
	s.occupied = true
	a.n++
	return Key{index: idx, gen: s.gen}
}

func (a *Arena[T]) slot(k Key) *slot[T] {
	if k.IsZero() || int(k.index) >= len(a.slots) {
		return nil
	}
	s := &a.slots[k.index]
	if !s.occupied || s.gen != k.gen {
		return nil
	}
	return s
}

// Get returns a pointer to the value stored under k. The pointer is valid
// until the next Insert.
func (a *Arena[T]) Get(k Key) (*T, bool) {
	s := a.slot(k)
	if s == nil {
		return nil, false
	}
	return &s.val, true
}

// Contains reports whether k still resolves.
func (a *Arena[T]) Contains(k Key) bool { return a.slot(k) != nil }

// Remove deletes the value under k and returns it.
func (a *Arena[T]) Remove(k Key) (T, bool) {
	var zero T
	s := a.slot(k)
	if s == nil {
		return zero, false
	}
	v := s.val
	s.val = zero
	s.occupied = false
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	a.free = append(a.free, k.index)
	a.n--
	return v, true
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int { return a.n }

// All yields live entries in slot order.
func (a *Arena[T]) All() iter.Seq2[Key, *T] {
	return func(yield func(Key, *T) bool) {
		for i := range a.slots {
			s := &a.slots[i]
			if !s.occupied {
				continue
			}
			if !yield(Key{index: uint32(i), gen: s.gen}, &s.val) {
				return
			}
		}
	}
}
