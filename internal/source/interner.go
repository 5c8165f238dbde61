package source

// StringID is a stable handle for an interned string.
type StringID uint32

// NoStringID marks the absence of a name. It always resolves to "".
const NoStringID StringID = 0

// Interner deduplicates identifier strings and hands out stable IDs, so
// name comparison elsewhere is an integer compare.
type Interner struct {
	byID  []string
	index map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": 0},
	}
}

// Intern returns the ID for s, allocating one on first sight.
func (in *Interner) Intern(s string) StringID {
	if id, ok := in.index[s]; ok {
		return id
	}
	// Own copy, detached from whatever buffer the caller sliced s from.
	cpy := string([]byte(s))
	id := StringID(len(in.byID))
	in.byID = append(in.byID, cpy)
	in.index[cpy] = id
	return id
}

// Lookup resolves an ID back to its string.
func (in *Interner) Lookup(id StringID) (string, bool) {
	if !in.Has(id) {
		return "", false
	}
	return in.byID[id], true
}

// MustLookup resolves an ID and panics on an invalid one.
func (in *Interner) MustLookup(id StringID) string {
	s, ok := in.Lookup(id)
	if !ok {
		panic("source: invalid StringID")
	}
	return s
}

func (in *Interner) Has(id StringID) bool {
	return int(id) < len(in.byID)
}

// Len counts interned strings, including the reserved empty entry.
func (in *Interner) Len() int {
	return len(in.byID)
}
