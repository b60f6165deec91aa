// Package memtable implements hashtable.HashTable in process memory. It is
// the reference backend for tests and for composing multi-backend setups.
package memtable

import (
	"sync"

	"github.com/entable/entable/content"
	"github.com/entable/entable/entry"
	"github.com/entable/entable/hashtable"
	"github.com/entable/entable/meta"
)

// Table stores content bytes in maps keyed by address. Unlike the file
// backend it serializes its own access, so it is safe for concurrent use;
// that is a property of this backend, not of the HashTable contract.
type Table struct {
	mu      sync.RWMutex
	entries map[content.Address]content.Content
	metas   map[content.Address]content.Content
}

var _ hashtable.HashTable = (*Table)(nil)

func New() *Table {
	return &Table{
		entries: make(map[content.Address]content.Content),
		metas:   make(map[content.Address]content.Content),
	}
}

func (t *Table) PutEntry(e *entry.Entry) error {
	addr := e.Address()
	if addr == "" {
		return hashtable.ErrInvalidAddress
	}
	c, err := e.Content()
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[addr] = c
	return nil
}

func (t *Table) Entry(address content.Address) (*entry.Entry, error) {
	if address == "" {
		return nil, hashtable.ErrInvalidAddress
	}
	t.mu.RLock()
	c, ok := t.entries[address]
	t.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	e, err := entry.FromContent(c)
	if err != nil {
		return nil, &hashtable.DecodeError{Table: "entries", Address: address, Err: err}
	}
	return e, nil
}

func (t *Table) AssertMeta(m *meta.EntryMeta) error {
	addr := m.Address()
	if addr == "" {
		return hashtable.ErrInvalidAddress
	}
	c, err := m.Content()
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.metas[addr] = c
	return nil
}

func (t *Table) Meta(address content.Address) (*meta.EntryMeta, error) {
	if address == "" {
		return nil, hashtable.ErrInvalidAddress
	}
	t.mu.RLock()
	c, ok := t.metas[address]
	t.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	m, err := meta.FromContent(c)
	if err != nil {
		return nil, &hashtable.DecodeError{Table: "metas", Address: address, Err: err}
	}
	return m, nil
}

func (t *Table) MetasFromEntry(e *entry.Entry) ([]*meta.EntryMeta, error) {
	target := e.Address()

	t.mu.RLock()
	contents := make(map[content.Address]content.Content, len(t.metas))
	for addr, c := range t.metas {
		contents[addr] = c
	}
	t.mu.RUnlock()

	var metas []*meta.EntryMeta
	for addr, c := range contents {
		m, err := meta.FromContent(c)
		if err != nil {
			return nil, &hashtable.DecodeError{Table: "metas", Address: addr, Err: err}
		}
		if m.EntryAddress() == target {
			metas = append(metas, m)
		}
	}

	meta.Sort(metas)
	return metas, nil
}
