package utils

import "testing"

func TestNewLogger(t *testing.T) {
	l, err := NewLogger(false)
	if err != nil {
		t.Fatalf("NewLogger(false): %v", err)
	}
	if l == nil {
		t.Fatal("nil logger")
	}
	ld, err := NewLogger(true)
	if err != nil {
		t.Fatalf("NewLogger(true): %v", err)
	}
	if ld == nil {
		t.Fatal("nil debug logger")
	}
}
