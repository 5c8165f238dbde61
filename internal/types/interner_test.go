package types

import (
	"testing"

	"tern/internal/source"
)

func TestInternerDeduplicates(t *testing.T) {
	in := NewInterner(nil)
	b := in.Builtins()

	listA := in.Intern(MakeList(b.Int))
	listB := in.Intern(MakeList(b.Int))
	if listA != listB {
		t.Errorf("identical list descriptors interned as %d and %d", listA, listB)
	}
	if other := in.Intern(MakeList(b.String)); other == listA {
		t.Error("List(Int) and List(String) share a TypeID")
	}
	if in.Intern(Type{Kind: KindInvalid}) != NoTypeID {
		t.Error("invalid descriptor interned as a real type")
	}
}

func TestCustomInfoRoundTrip(t *testing.T) {
	in := NewInterner(nil)
	b := in.Builtins()
	name := in.Strings.Intern("Shape")
	id := in.RegisterCustom(name, source.Span{Start: 5, End: 10})
	in.SetVariants(id, []VariantInfo{
		{Name: in.Strings.Intern("Circle"), Fields: []FieldInfo{
			{Name: in.Strings.Intern("radius"), Position: 0, Type: b.Float},
		}},
	})

	info, ok := in.CustomInfo(id)
	if !ok {
		t.Fatal("CustomInfo missed a registered type")
	}
	if info.Name != name {
		t.Errorf("info.Name = %d, want %d", info.Name, name)
	}
	if len(info.Variants) != 1 || len(info.Variants[0].Fields) != 1 {
		t.Fatalf("variants = %+v", info.Variants)
	}
	if in.VariantCount(id) != 1 {
		t.Errorf("VariantCount = %d, want 1", in.VariantCount(id))
	}
	if in.VariantCount(b.Int) != 0 {
		t.Error("VariantCount nonzero for builtin")
	}
	if _, ok := in.CustomInfo(b.Int); ok {
		t.Error("CustomInfo succeeded on a builtin")
	}
}

func TestLabel(t *testing.T) {
	in := NewInterner(nil)
	b := in.Builtins()
	custom := in.RegisterCustom(in.Strings.Intern("Wibble"), source.Span{})

	tests := []struct {
		id   TypeID
		want string
	}{
		{b.Int, "Int"},
		{b.Float, "Float"},
		{b.Bool, "Bool"},
		{b.String, "String"},
		{b.Nil, "Nil"},
		{in.Intern(MakeList(b.Int)), "List(Int)"},
		{in.Intern(MakeList(in.Intern(MakeList(b.String)))), "List(List(String))"},
		{custom, "Wibble"},
		{NoTypeID, "?"},
	}
	for _, tt := range tests {
		if got := Label(in, tt.id); got != tt.want {
			t.Errorf("Label(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}
