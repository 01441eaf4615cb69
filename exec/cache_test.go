package exec

import (
	"testing"

	"github.com/npillmayer/combi/ast"
)

func TestMemoCacheGetPutRoundTrip(t *testing.T) {
	c := NewMemoCache()
	if _, _, found := c.Get(1, 0); found {
		t.Fatalf("expected no entry before Put")
	}
	node := &ast.ParsedRule{RuleID: 1, Length: 3}
	c.Put(1, 0, node, true)

	got, ok, found := c.Get(1, 0)
	if !found || !ok || got != node {
		t.Fatalf("got found=%v ok=%v node=%v, want the stored entry back", found, ok, got)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestMemoCacheDistinguishesFailureFromAbsence(t *testing.T) {
	c := NewMemoCache()
	c.Put(1, 0, nil, false)
	_, ok, found := c.Get(1, 0)
	if !found {
		t.Fatalf("expected a recorded failure to still be 'found'")
	}
	if ok {
		t.Errorf("expected ok=false for a recorded failed match")
	}
}

func TestMemoCacheInvalidateFromDropsOnlyAtOrPastPos(t *testing.T) {
	c := NewMemoCache()
	c.Put(1, 0, &ast.ParsedRule{}, true)
	c.Put(1, 5, &ast.ParsedRule{}, true)
	c.Put(1, 10, &ast.ParsedRule{}, true)

	c.InvalidateFrom(5)

	if _, _, found := c.Get(1, 0); !found {
		t.Errorf("entry before the invalidation point should survive")
	}
	if _, _, found := c.Get(1, 5); found {
		t.Errorf("entry at the invalidation point should be dropped")
	}
	if _, _, found := c.Get(1, 10); found {
		t.Errorf("entry past the invalidation point should be dropped")
	}
}
