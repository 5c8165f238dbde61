package sema

import (
	"tern/internal/diag"
	"tern/internal/source"
	"tern/internal/types"
)

// Checker resolves field-access expressions against cached accessor tables
// and reports failures through the diagnostic pipeline. It holds no mutable
// state beyond the table cache, which is safe for concurrent use, so a
// single Checker may serve parallel drivers.
type Checker struct {
	types    *types.Interner
	cache    *AccessorCache
	reporter diag.Reporter
}

func NewChecker(in *types.Interner, reporter diag.Reporter) *Checker {
	return &Checker{
		types:    in,
		cache:    NewAccessorCache(),
		reporter: reporter,
	}
}

// Types exposes the checker's type interner.
func (c *Checker) Types() *types.Interner {
	return c.types
}

// AccessorTable returns the (cached) accessor table for a custom type.
func (c *Checker) AccessorTable(id types.TypeID) *types.AccessorTable {
	return c.cache.Get(c.types, id)
}

// CheckFieldAccess types a `value.field` expression. On success it returns
// the field's type for the surrounding inference to keep using. On failure
// it emits the Unknown record field diagnostic and returns NoTypeID, the
// error sentinel, so one bad access does not cascade.
func (c *Checker) CheckFieldAccess(receiver types.TypeID, field source.StringID, span source.Span) types.TypeID {
	table := c.cache.Get(c.types, receiver)
	fieldType, failure := ResolveFieldAccess(c.types, table, receiver, field, span)
	if failure == nil {
		return fieldType
	}
	if c.reporter != nil {
		d := failure.Diagnostic()
		c.reporter.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes, d.Fixes)
	}
	return types.NoTypeID
}
