package hashtable

import (
	"github.com/entable/entable/content"
	"github.com/entable/entable/entry"
	"github.com/entable/entable/meta"
)

// MultiTable provides deterministic, ordered fallback across multiple
// backends.
//
// Read order is the slice order in Backends; callers MUST supply a fixed
// order. This avoids map-iteration nondeterminism and makes the retrieval
// strategy explicit.
//
// Writes go only to the first backend. MetasFromEntry merges results from all
// backends, earlier backends winning on a meta-address conflict, and returns
// them in the EntryMeta total order.
type MultiTable struct {
	Backends []HashTable
}

var _ HashTable = (*MultiTable)(nil)

func (m MultiTable) PutEntry(e *entry.Entry) error {
	if len(m.Backends) == 0 {
		return ErrNoBackends
	}
	return m.Backends[0].PutEntry(e)
}

func (m MultiTable) Entry(address content.Address) (*entry.Entry, error) {
	for _, t := range m.Backends {
		e, err := t.Entry(address)
		if err != nil {
			return nil, err
		}
		if e != nil {
			return e, nil
		}
	}
	return nil, nil
}

func (m MultiTable) AssertMeta(em *meta.EntryMeta) error {
	if len(m.Backends) == 0 {
		return ErrNoBackends
	}
	return m.Backends[0].AssertMeta(em)
}

func (m MultiTable) Meta(address content.Address) (*meta.EntryMeta, error) {
	for _, t := range m.Backends {
		em, err := t.Meta(address)
		if err != nil {
			return nil, err
		}
		if em != nil {
			return em, nil
		}
	}
	return nil, nil
}

func (m MultiTable) MetasFromEntry(e *entry.Entry) ([]*meta.EntryMeta, error) {
	return mergeMetas(m.Backends, e)
}

// mergeMetas queries each backend in order and merges by meta address, the
// earliest backend winning a conflict.
func mergeMetas(backends []HashTable, e *entry.Entry) ([]*meta.EntryMeta, error) {
	seen := make(map[content.Address]*meta.EntryMeta)
	for _, t := range backends {
		metas, err := t.MetasFromEntry(e)
		if err != nil {
			return nil, err
		}
		for _, em := range metas {
			addr := em.Address()
			if _, ok := seen[addr]; !ok {
				seen[addr] = em
			}
		}
	}
	out := make([]*meta.EntryMeta, 0, len(seen))
	for _, em := range seen {
		out = append(out, em)
	}
	meta.Sort(out)
	return out, nil
}
