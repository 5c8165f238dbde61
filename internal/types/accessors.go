package types

import "tern/internal/source"

// AccessorEntry records one field that is safe to access with `.` syntax on
// any value of its custom type, whichever variant the value turns out to be.
type AccessorEntry struct {
	Name     source.StringID
	Position uint32
	Type     TypeID
}

// AccessorTable maps field names to accessor entries for one custom type.
// It is pure data: built once from the variant list, then only read.
// Listing order follows the first variant's declaration order.
type AccessorTable struct {
	entries map[source.StringID]AccessorEntry
	order   []source.StringID
}

// Lookup returns the entry for the field name.
func (t *AccessorTable) Lookup(name source.StringID) (AccessorEntry, bool) {
	if t == nil {
		return AccessorEntry{}, false
	}
	entry, ok := t.entries[name]
	return entry, ok
}

// Fields returns the accessible field names in declaration order.
// The slice aliases the table's storage; callers must not modify it.
func (t *AccessorTable) Fields() []source.StringID {
	if t == nil {
		return nil
	}
	return t.order
}

// Entries returns the accessor entries in declaration order.
func (t *AccessorTable) Entries() []AccessorEntry {
	if t == nil {
		return nil
	}
	out := make([]AccessorEntry, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.entries[name])
	}
	return out
}

func (t *AccessorTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// BuildAccessorTable reconciles the custom type's variants into the set of
// fields accessible without pattern matching. With a single variant every
// field qualifies. With several, a field qualifies only when every variant
// defines the same name at the same position with the identical type; a
// field that is absent, repositioned, or retyped in even one variant is
// excluded outright. An empty table is a valid result.
//
// The function is pure and never fails: malformed definitions (no variants,
// duplicate names within a variant) are upstream precondition violations
// caught by the loader.
func (in *Interner) BuildAccessorTable(typeID TypeID) *AccessorTable {
	table := &AccessorTable{entries: make(map[source.StringID]AccessorEntry)}
	info := in.customInfo(typeID)
	if info == nil || len(info.Variants) == 0 {
		return table
	}

	first := info.Variants[0]
	rest := info.Variants[1:]
	for _, field := range first.Fields {
		if !uniformAcross(rest, field) {
			continue
		}
		table.entries[field.Name] = AccessorEntry{
			Name:     field.Name,
			Position: field.Position,
			Type:     field.Type,
		}
		table.order = append(table.order, field.Name)
	}
	return table
}

// uniformAcross reports whether every variant defines the field at the same
// position with the exact same type. TypeIDs are interned, so identity
// compare is exact type equality.
func uniformAcross(variants []VariantInfo, want FieldInfo) bool {
	for _, variant := range variants {
		found := false
		for _, field := range variant.Fields {
			if field.Name != want.Name {
				continue
			}
			if field.Position != want.Position || field.Type != want.Type {
				return false
			}
			found = true
			break
		}
		if !found {
			return false
		}
	}
	return true
}
