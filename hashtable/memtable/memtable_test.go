package memtable

import (
	"fmt"
	"sync"
	"testing"

	"github.com/entable/entable/entry"
	"github.com/entable/entable/hashtable"
	"github.com/entable/entable/hashtable/testkit"
	"github.com/entable/entable/meta"
)

func TestMemTable_Conformance(t *testing.T) {
	testkit.RunConformance(t, func(t *testing.T) hashtable.HashTable {
		t.Helper()
		return New()
	})
}

func TestMemTable_ConcurrentAccess(t *testing.T) {
	table := New()
	e := entry.New("shared subject")
	if err := table.PutEntry(e); err != nil {
		t.Fatalf("PutEntry failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m := meta.New("src", e.Address(), fmt.Sprintf("attr-%d", i), "v")
			if err := table.AssertMeta(m); err != nil {
				t.Errorf("AssertMeta failed: %v", err)
			}
			if _, err := table.MetasFromEntry(e); err != nil {
				t.Errorf("MetasFromEntry failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	metas, err := table.MetasFromEntry(e)
	if err != nil {
		t.Fatalf("MetasFromEntry failed: %v", err)
	}
	if len(metas) != 8 {
		t.Fatalf("got %d metas, want 8", len(metas))
	}
}
