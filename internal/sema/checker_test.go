package sema

import (
	"sync"
	"testing"

	"tern/internal/diag"
	"tern/internal/source"
	"tern/internal/types"
)

func TestCheckerReportsAndContinues(t *testing.T) {
	in := types.NewInterner(nil)
	wibble := wibbleFixture(in)
	bag := diag.NewBag(10)
	checker := NewChecker(in, diag.BagReporter{Bag: bag})

	if got := checker.CheckFieldAccess(wibble, in.Strings.Intern("a"), source.Span{}); got != in.Builtins().Int {
		t.Errorf(".a typed as %d, want Int", got)
	}
	if bag.Len() != 0 {
		t.Errorf("successful access emitted %d diagnostics", bag.Len())
	}

	if got := checker.CheckFieldAccess(wibble, in.Strings.Intern("b"), source.Span{Start: 3, End: 4}); got != types.NoTypeID {
		t.Errorf(".b typed as %d, want NoTypeID sentinel", got)
	}
	if bag.Len() != 1 {
		t.Fatalf("failed access emitted %d diagnostics, want 1", bag.Len())
	}
	d := bag.Items()[0]
	if d.Code != diag.SemaUnknownRecordField {
		t.Errorf("code = %v", d.Code)
	}

	// The checker keeps going after a failure.
	if got := checker.CheckFieldAccess(wibble, in.Strings.Intern("a"), source.Span{}); got != in.Builtins().Int {
		t.Errorf("access after failure typed as %d, want Int", got)
	}
}

func TestAccessorCacheReusesTables(t *testing.T) {
	in := types.NewInterner(nil)
	wibble := wibbleFixture(in)
	cache := NewAccessorCache()

	first := cache.Get(in, wibble)
	second := cache.Get(in, wibble)
	if first != second {
		t.Error("cache rebuilt the table for the same type")
	}
	if cache.Len() != 1 {
		t.Errorf("cache holds %d tables, want 1", cache.Len())
	}
}

func TestAccessorCacheConcurrentReaders(t *testing.T) {
	in := types.NewInterner(nil)
	wibble := wibbleFixture(in)
	cache := NewAccessorCache()
	aID := in.Strings.Intern("a")

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			table := cache.Get(in, wibble)
			if _, ok := table.Lookup(aID); !ok {
				t.Error("shared field missing from concurrently fetched table")
			}
		}()
	}
	wg.Wait()

	if cache.Len() != 1 {
		t.Errorf("cache holds %d tables after concurrent access, want 1", cache.Len())
	}
}
