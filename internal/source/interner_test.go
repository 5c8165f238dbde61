package source

import "testing"

func TestInternerRoundTrip(t *testing.T) {
	in := NewInterner()

	a := in.Intern("wibble")
	b := in.Intern("wobble")
	if a == b {
		t.Fatal("distinct strings received the same ID")
	}
	if again := in.Intern("wibble"); again != a {
		t.Errorf("re-interning returned %d, want %d", again, a)
	}

	got, ok := in.Lookup(a)
	if !ok || got != "wibble" {
		t.Errorf("Lookup(%d) = %q, %v", a, got, ok)
	}
	if in.MustLookup(b) != "wobble" {
		t.Errorf("MustLookup(%d) = %q", b, in.MustLookup(b))
	}
}

func TestInternerEmptyString(t *testing.T) {
	in := NewInterner()
	if id := in.Intern(""); id != NoStringID {
		t.Errorf("Intern(\"\") = %d, want NoStringID", id)
	}
	s, ok := in.Lookup(NoStringID)
	if !ok || s != "" {
		t.Errorf("Lookup(NoStringID) = %q, %v", s, ok)
	}
	if in.Len() != 1 {
		t.Errorf("fresh interner Len() = %d, want 1", in.Len())
	}
}

func TestInternerInvalidID(t *testing.T) {
	in := NewInterner()
	if _, ok := in.Lookup(StringID(99)); ok {
		t.Error("Lookup of unknown ID succeeded")
	}
	defer func() {
		if recover() == nil {
			t.Error("MustLookup of unknown ID did not panic")
		}
	}()
	in.MustLookup(StringID(99))
}
