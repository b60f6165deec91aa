// Package testkit provides a conformance suite run against every HashTable
// backend.
package testkit

import (
	"testing"

	"github.com/entable/entable/content"
	"github.com/entable/entable/entry"
	"github.com/entable/entable/hashtable"
	"github.com/entable/entable/meta"
)

// NewTable constructs a fresh, empty HashTable instance for a test.
// The returned table MUST be isolated from other tests.
type NewTable func(t *testing.T) hashtable.HashTable

// RunConformance exercises the HashTable contract against a backend.
func RunConformance(t *testing.T, newTable NewTable) {
	t.Helper()

	t.Run("PutGetRoundTrip", func(t *testing.T) {
		table := newTable(t)
		e := entry.New("hello, hash table")

		if err := table.PutEntry(e); err != nil {
			t.Fatalf("PutEntry failed: %v", err)
		}
		got, err := table.Entry(e.Address())
		if err != nil {
			t.Fatalf("Entry failed: %v", err)
		}
		if got == nil {
			t.Fatalf("Entry returned absent after PutEntry")
		}
		if got.Value() != e.Value() {
			t.Fatalf("Entry value mismatch: got %q want %q", got.Value(), e.Value())
		}
		if got.Address() != e.Address() {
			t.Fatalf("Entry address mismatch: got %s want %s", got.Address(), e.Address())
		}
	})

	t.Run("AbsentEntry", func(t *testing.T) {
		table := newTable(t)
		addr := content.AddressOf([]byte("never stored"), content.DefaultDigest)

		got, err := table.Entry(addr)
		if err != nil {
			t.Fatalf("Entry failed: %v", err)
		}
		if got != nil {
			t.Fatalf("Entry returned %q for a never-written address", got.Value())
		}
	})

	t.Run("PutIdempotent", func(t *testing.T) {
		table := newTable(t)
		e := entry.New("same bytes")

		for i := 0; i < 2; i++ {
			if err := table.PutEntry(e); err != nil {
				t.Fatalf("PutEntry(%d) failed: %v", i, err)
			}
			got, err := table.Entry(e.Address())
			if err != nil {
				t.Fatalf("Entry(%d) failed: %v", i, err)
			}
			if got == nil || got.Value() != e.Value() {
				t.Fatalf("Entry(%d) mismatch: got %v", i, got)
			}
		}
	})

	t.Run("AbsentMeta", func(t *testing.T) {
		table := newTable(t)
		e := entry.New("subject")
		addr := meta.MakeAddress(e.Address(), "never-asserted")

		got, err := table.Meta(addr)
		if err != nil {
			t.Fatalf("Meta failed: %v", err)
		}
		if got != nil {
			t.Fatalf("Meta returned a value for a never-asserted address")
		}
	})

	t.Run("AssertAndGetMeta", func(t *testing.T) {
		table := newTable(t)
		e := entry.New("subject")
		m := meta.New("agentA", e.Address(), "color", "red")

		if err := table.AssertMeta(m); err != nil {
			t.Fatalf("AssertMeta failed: %v", err)
		}
		got, err := table.Meta(m.Address())
		if err != nil {
			t.Fatalf("Meta failed: %v", err)
		}
		if got == nil {
			t.Fatalf("Meta returned absent after AssertMeta")
		}
		if !got.Equal(m) {
			t.Fatalf("Meta mismatch: got %+v want %+v", got, m)
		}
	})

	t.Run("MetaLastWriteWins", func(t *testing.T) {
		table := newTable(t)
		e := entry.New("subject")
		m1 := meta.New("agentA", e.Address(), "color", "red")
		m2 := meta.New("agentB", e.Address(), "color", "blue")

		if m1.Address() != m2.Address() {
			t.Fatalf("meta addresses differ for the same (entry, attribute) pair")
		}

		if err := table.AssertMeta(m1); err != nil {
			t.Fatalf("AssertMeta(m1) failed: %v", err)
		}
		metas, err := table.MetasFromEntry(e)
		if err != nil {
			t.Fatalf("MetasFromEntry failed: %v", err)
		}
		if len(metas) != 1 || !metas[0].Equal(m1) {
			t.Fatalf("expected [m1], got %d metas", len(metas))
		}

		if err := table.AssertMeta(m2); err != nil {
			t.Fatalf("AssertMeta(m2) failed: %v", err)
		}
		got, err := table.Meta(m1.Address())
		if err != nil {
			t.Fatalf("Meta failed: %v", err)
		}
		if got == nil || !got.Equal(m2) {
			t.Fatalf("expected m2 after overwrite, got %+v", got)
		}
		metas, err = table.MetasFromEntry(e)
		if err != nil {
			t.Fatalf("MetasFromEntry failed: %v", err)
		}
		if len(metas) != 1 || !metas[0].Equal(m2) {
			t.Fatalf("expected [m2] after overwrite, got %d metas", len(metas))
		}
	})

	t.Run("MetasFromEntrySorted", func(t *testing.T) {
		table := newTable(t)
		e := entry.New("subject")
		other := entry.New("other subject")

		// Asserted deliberately out of order.
		want := []*meta.EntryMeta{
			meta.New("src", e.Address(), "attr-a", "x"),
			meta.New("src", e.Address(), "attr-b", "x"),
			meta.New("src", e.Address(), "attr-c", "x"),
		}
		for _, m := range []*meta.EntryMeta{want[2], want[0], want[1]} {
			if err := table.AssertMeta(m); err != nil {
				t.Fatalf("AssertMeta failed: %v", err)
			}
		}
		// Noise about a different entry must not appear in results.
		if err := table.AssertMeta(meta.New("src", other.Address(), "attr-a", "x")); err != nil {
			t.Fatalf("AssertMeta(other) failed: %v", err)
		}

		got, err := table.MetasFromEntry(e)
		if err != nil {
			t.Fatalf("MetasFromEntry failed: %v", err)
		}
		if len(got) != len(want) {
			t.Fatalf("MetasFromEntry returned %d metas, want %d", len(got), len(want))
		}
		for i := range want {
			if !got[i].Equal(want[i]) {
				t.Fatalf("MetasFromEntry[%d] = %+v, want %+v", i, got[i], want[i])
			}
		}
	})
}
