package meta

import (
	"testing"

	"github.com/entable/entable/content"
	"github.com/entable/entable/entry"
)

const testNodeID = "test node id"

func testMeta() *EntryMeta {
	e := entry.New("test entry content")
	return New(testNodeID, e.Address(), "meta-attribute", "meta value")
}

func TestNew_Accessors(t *testing.T) {
	e := entry.New("test entry content")
	m := testMeta()

	if m.EntryAddress() != e.Address() {
		t.Fatalf("EntryAddress mismatch: got %s want %s", m.EntryAddress(), e.Address())
	}
	if m.Attribute() != "meta-attribute" {
		t.Fatalf("Attribute mismatch: got %q", m.Attribute())
	}
	if m.Value() != "meta value" {
		t.Fatalf("Value mismatch: got %q", m.Value())
	}
	if m.Source() != testNodeID {
		t.Fatalf("Source mismatch: got %q", m.Source())
	}
}

func TestAddress_CollapsesOnEntryAndAttribute(t *testing.T) {
	e := entry.New("test entry content")
	m1 := New("agentA", e.Address(), "color", "red")
	m2 := New("agentB", e.Address(), "color", "blue")

	if m1.Address() != m2.Address() {
		t.Fatalf("same (entry, attribute) gave different addresses: %s vs %s", m1.Address(), m2.Address())
	}
	if m1.Address() != MakeAddress(e.Address(), "color") {
		t.Fatalf("Address disagrees with MakeAddress")
	}

	m3 := New("agentA", e.Address(), "shape", "red")
	if m3.Address() == m1.Address() {
		t.Fatalf("different attributes collided")
	}
}

func TestCompare_TotalOrder(t *testing.T) {
	m1ax := New(testNodeID, content.Address("1"), "a", "x")
	m1ay := New(testNodeID, content.Address("1"), "a", "y")
	m1bx := New(testNodeID, content.Address("1"), "b", "x")
	m2ax := New(testNodeID, content.Address("2"), "a", "x")

	// Entry address dominates.
	if c := m1ax.Compare(m2ax); c >= 0 {
		t.Fatalf("m1ax vs m2ax: got %d, want negative", c)
	}
	if c := m1ax.Compare(m1ax); c != 0 {
		t.Fatalf("m1ax vs itself: got %d, want 0", c)
	}
	if c := m2ax.Compare(m1ax); c <= 0 {
		t.Fatalf("m2ax vs m1ax: got %d, want positive", c)
	}
	if c := m1ay.Compare(m2ax); c >= 0 {
		t.Fatalf("m1ay vs m2ax: got %d, want negative", c)
	}

	// Then attribute.
	if !m1ax.Less(m1bx) || m1bx.Less(m1ax) {
		t.Fatalf("attribute tie-break wrong")
	}

	// Then value.
	if !m1ax.Less(m1ay) || m1ay.Less(m1ax) {
		t.Fatalf("value tie-break wrong")
	}
}

func TestSort_TotalOrder(t *testing.T) {
	m1ax := New(testNodeID, content.Address("1"), "a", "x")
	m1ay := New(testNodeID, content.Address("1"), "a", "y")
	m1bx := New(testNodeID, content.Address("1"), "b", "x")
	m2ax := New(testNodeID, content.Address("2"), "a", "x")

	metas := []*EntryMeta{m2ax, m1bx, m1ay, m1ax}
	Sort(metas)

	want := []*EntryMeta{m1ax, m1ay, m1bx, m2ax}
	for i := range want {
		if !metas[i].Equal(want[i]) {
			t.Fatalf("Sort[%d] = %+v, want %+v", i, metas[i], want[i])
		}
	}
}

func TestContent_RoundTrip(t *testing.T) {
	m := testMeta()
	want := `{"entry_address":"QmbXSE38SN3SuJDmHKSSw5qWWegvU7oTxrLDRavWjyxMrT","attribute":"meta-attribute","value":"meta value","source":"test node id"}`

	c, err := m.Content()
	if err != nil {
		t.Fatalf("Content failed: %v", err)
	}
	if string(c) != want {
		t.Fatalf("wire bytes mismatch:\n got %s\nwant %s", c, want)
	}

	back, err := FromContent(c)
	if err != nil {
		t.Fatalf("FromContent failed: %v", err)
	}
	if !back.Equal(m) {
		t.Fatalf("round trip mismatch: got %+v want %+v", back, m)
	}
}

func TestFromContent_Malformed(t *testing.T) {
	if _, err := FromContent(content.Content(`{"entry_address": 42}`)); err == nil {
		t.Fatalf("expected decode error for malformed content")
	}
	if _, err := FromContent(content.Content(`not json`)); err == nil {
		t.Fatalf("expected decode error for non-JSON content")
	}
}
