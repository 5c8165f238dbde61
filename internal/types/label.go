package types

import "tern/internal/source"

// Label returns a user-facing name for a TypeID, e.g. "Int", "List(String)",
// or a custom type's declared name.
func Label(in *Interner, id TypeID) string {
	return labelDepth(in, id, 0)
}

func labelDepth(in *Interner, id TypeID, depth int) string {
	if in == nil || id == NoTypeID {
		return "?"
	}
	if depth > 6 {
		return "..."
	}
	t, ok := in.Lookup(id)
	if !ok {
		return "?"
	}
	switch t.Kind {
	case KindNil, KindBool, KindInt, KindFloat, KindString:
		return t.Kind.String()
	case KindList:
		return "List(" + labelDepth(in, t.Elem, depth+1) + ")"
	case KindCustom:
		return formatCustomType(in, id)
	default:
		return "?"
	}
}

func formatCustomType(in *Interner, id TypeID) string {
	info, ok := in.CustomInfo(id)
	if !ok {
		return "?"
	}
	return lookupNameFallback(in.Strings, info.Name)
}

func lookupNameFallback(strings *source.Interner, id source.StringID) string {
	if strings == nil {
		return "?"
	}
	if name, ok := strings.Lookup(id); ok && name != "" {
		return name
	}
	return "?"
}
