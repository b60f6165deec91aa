package badgertable

import (
	"testing"

	"github.com/entable/entable/entry"
	"github.com/entable/entable/hashtable"
	"github.com/entable/entable/hashtable/testkit"
	"github.com/entable/entable/meta"
)

func newTestTable(t *testing.T) *Table {
	t.Helper()
	table, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() {
		if err := table.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return table
}

func TestBadgerTable_Conformance(t *testing.T) {
	testkit.RunConformance(t, func(t *testing.T) hashtable.HashTable {
		t.Helper()
		return newTestTable(t)
	})
}

func TestNew_EmptyDir(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatalf("expected error for empty directory")
	}
}

// The index must not accumulate stale slots when the same (entry, attribute)
// pair is re-asserted.
func TestBadgerTable_IndexStableUnderOverwrite(t *testing.T) {
	table := newTestTable(t)
	e := entry.New("subject")

	for i := 0; i < 3; i++ {
		m := meta.New("src", e.Address(), "color", []string{"red", "green", "blue"}[i])
		if err := table.AssertMeta(m); err != nil {
			t.Fatalf("AssertMeta(%d) failed: %v", i, err)
		}
	}

	metas, err := table.MetasFromEntry(e)
	if err != nil {
		t.Fatalf("MetasFromEntry failed: %v", err)
	}
	if len(metas) != 1 {
		t.Fatalf("got %d metas, want 1 (overwrites must collapse)", len(metas))
	}
	if metas[0].Value() != "blue" {
		t.Fatalf("got value %q, want last-asserted %q", metas[0].Value(), "blue")
	}
}

func TestBadgerTable_Reopen(t *testing.T) {
	dir := t.TempDir()

	table, err := New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	e := entry.New("durable entry")
	if err := table.PutEntry(e); err != nil {
		t.Fatalf("PutEntry failed: %v", err)
	}
	m := meta.New("src", e.Address(), "attr", "val")
	if err := table.AssertMeta(m); err != nil {
		t.Fatalf("AssertMeta failed: %v", err)
	}
	if err := table.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := New(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Entry(e.Address())
	if err != nil || got == nil {
		t.Fatalf("Entry after reopen: %v %v", got, err)
	}
	metas, err := reopened.MetasFromEntry(e)
	if err != nil {
		t.Fatalf("MetasFromEntry after reopen failed: %v", err)
	}
	if len(metas) != 1 || !metas[0].Equal(m) {
		t.Fatalf("expected [m] after reopen, got %d metas", len(metas))
	}
}
