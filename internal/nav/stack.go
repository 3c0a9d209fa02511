// Package nav is the screen stack behind the gallery's back and home buttons.
package nav

// Stack holds screens with the root at the bottom. The root is never popped.
// It is only mutated from Bubbletea's single-threaded Update loop.
type Stack[T any] struct {
	items []T
}

// New creates a stack holding only root.
func New[T any](root T) *Stack[T] {
	return &Stack[T]{items: []T{root}}
}

// Current returns the top screen.
func (s *Stack[T]) Current() T {
	return s.items[len(s.items)-1]
}

// Root returns the bottom screen.
func (s *Stack[T]) Root() T {
	return s.items[0]
}

// Depth returns the number of screens, root included.
func (s *Stack[T]) Depth() int {
	return len(s.items)
}

// Push puts a screen on top.
func (s *Stack[T]) Push(v T) {
	s.items = append(s.items, v)
}

// Pop removes the top screen and returns it. Returns false when only the root
// is left.
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if len(s.items) <= 1 {
		return zero, false
	}
	top := s.items[len(s.items)-1]
	s.items[len(s.items)-1] = zero
	s.items = s.items[:len(s.items)-1]
	return top, true
}

// Reset drops everything above the root. Returns false if already at root.
func (s *Stack[T]) Reset() bool {
	if len(s.items) <= 1 {
		return false
	}
	var zero T
	for i := 1; i < len(s.items); i++ {
		s.items[i] = zero
	}
	s.items = s.items[:1]
	return true
}
