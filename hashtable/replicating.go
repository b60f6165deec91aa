package hashtable

import (
	"fmt"

	"github.com/entable/entable/content"
	"github.com/entable/entable/entry"
	"github.com/entable/entable/meta"
)

// NamedTable associates a backend with a stable name.
//
// This is used for multi-backend orchestration where callers need to retain
// per-backend identity (e.g. for reporting or auditing).
type NamedTable struct {
	Name  string
	Table HashTable
}

// ReplicatingTable writes to all configured backends.
//
// Reads fall back in order; MetasFromEntry merges across backends like
// MultiTable. Replication here is storage-layer mirroring only: it carries no
// network coordination or consensus.
type ReplicatingTable struct {
	Backends []NamedTable
}

var _ HashTable = (*ReplicatingTable)(nil)

func (r ReplicatingTable) PutEntry(e *entry.Entry) error {
	if len(r.Backends) == 0 {
		return ErrNoBackends
	}
	for _, b := range r.Backends {
		if b.Table == nil {
			return fmt.Errorf("hashtable: nil table for backend %q", b.Name)
		}
		if err := b.Table.PutEntry(e); err != nil {
			return fmt.Errorf("hashtable: backend %q: %w", b.Name, err)
		}
	}
	return nil
}

func (r ReplicatingTable) Entry(address content.Address) (*entry.Entry, error) {
	for _, b := range r.Backends {
		if b.Table == nil {
			continue
		}
		e, err := b.Table.Entry(address)
		if err != nil {
			return nil, err
		}
		if e != nil {
			return e, nil
		}
	}
	return nil, nil
}

func (r ReplicatingTable) AssertMeta(em *meta.EntryMeta) error {
	if len(r.Backends) == 0 {
		return ErrNoBackends
	}
	for _, b := range r.Backends {
		if b.Table == nil {
			return fmt.Errorf("hashtable: nil table for backend %q", b.Name)
		}
		if err := b.Table.AssertMeta(em); err != nil {
			return fmt.Errorf("hashtable: backend %q: %w", b.Name, err)
		}
	}
	return nil
}

func (r ReplicatingTable) Meta(address content.Address) (*meta.EntryMeta, error) {
	for _, b := range r.Backends {
		if b.Table == nil {
			continue
		}
		em, err := b.Table.Meta(address)
		if err != nil {
			return nil, err
		}
		if em != nil {
			return em, nil
		}
	}
	return nil, nil
}

func (r ReplicatingTable) MetasFromEntry(e *entry.Entry) ([]*meta.EntryMeta, error) {
	backends := make([]HashTable, 0, len(r.Backends))
	for _, b := range r.Backends {
		if b.Table != nil {
			backends = append(backends, b.Table)
		}
	}
	return mergeMetas(backends, e)
}
