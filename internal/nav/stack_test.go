package nav

import "testing"

func TestPushPop(t *testing.T) {
	s := New("menu")
	if s.Current() != "menu" || s.Depth() != 1 {
		t.Fatalf("expected root only, got %q depth %d", s.Current(), s.Depth())
	}
	s.Push("heart")
	s.Push("drawer")
	if s.Current() != "drawer" || s.Depth() != 3 {
		t.Fatalf("expected drawer on top, got %q depth %d", s.Current(), s.Depth())
	}
	top, ok := s.Pop()
	if !ok || top != "drawer" {
		t.Fatalf("expected to pop drawer, got %q %v", top, ok)
	}
	if s.Current() != "heart" {
		t.Fatalf("expected heart, got %q", s.Current())
	}
}

func TestPopNeverRemovesRoot(t *testing.T) {
	s := New(1)
	if _, ok := s.Pop(); ok {
		t.Fatal("expected pop at root to fail")
	}
	if s.Current() != 1 {
		t.Fatalf("expected root kept, got %d", s.Current())
	}
}

func TestReset(t *testing.T) {
	s := New("menu")
	if s.Reset() {
		t.Fatal("expected reset at root to report no change")
	}
	s.Push("a")
	s.Push("b")
	if !s.Reset() {
		t.Fatal("expected reset to report change")
	}
	if s.Depth() != 1 || s.Current() != "menu" || s.Root() != "menu" {
		t.Fatalf("expected only root, got depth %d current %q", s.Depth(), s.Current())
	}
}
