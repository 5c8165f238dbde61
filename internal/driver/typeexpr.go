package driver

import (
	"strings"

	"tern/internal/types"
)

// resolveTypeExpr maps a manifest type string onto a TypeID. The grammar is
// deliberately small: builtin names, previously declared custom type names,
// and List(<type>) nesting. Field types arrive fully resolved from the
// upstream inference driver, so nothing richer is needed here.
func resolveTypeExpr(in *types.Interner, declared map[string]types.TypeID, expr string) (types.TypeID, bool) {
	expr = strings.TrimSpace(expr)
	if inner, ok := listElement(expr); ok {
		elem, ok := resolveTypeExpr(in, declared, inner)
		if !ok {
			return types.NoTypeID, false
		}
		return in.Intern(types.MakeList(elem)), true
	}

	b := in.Builtins()
	switch expr {
	case "Int":
		return b.Int, true
	case "Float":
		return b.Float, true
	case "Bool":
		return b.Bool, true
	case "String":
		return b.String, true
	case "Nil":
		return b.Nil, true
	}
	if id, ok := declared[expr]; ok {
		return id, true
	}
	return types.NoTypeID, false
}

func listElement(expr string) (string, bool) {
	if strings.HasPrefix(expr, "List(") && strings.HasSuffix(expr, ")") {
		return expr[len("List(") : len(expr)-1], true
	}
	return "", false
}
