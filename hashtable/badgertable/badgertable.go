// Package badgertable implements hashtable.HashTable on an embedded badger
// key-value store.
//
// Unlike the file backend, assertions are indexed by entry address on write,
// so MetasFromEntry is a prefix scan over the index rather than a scan of
// every stored assertion. Observable results are identical: same set, same
// order.
package badgertable

import (
	"bytes"
	"fmt"
	"os"

	"github.com/dgraph-io/badger"

	"github.com/entable/entable/content"
	"github.com/entable/entable/entry"
	"github.com/entable/entable/hashtable"
	"github.com/entable/entable/meta"
)

// Key prefixes. Addresses are base58 and never contain ':', so it is a safe
// separator inside index keys.
var (
	entryPref = []byte("entry:")
	metaPref  = []byte("meta:")
	eidxPref  = []byte("eidx:")
)

// Table is a badger-backed HashTable. Callers own the lifecycle: Close must
// be called before the process exits to release the store.
type Table struct {
	db *badger.DB
}

var _ hashtable.HashTable = (*Table)(nil)

// New opens (creating if needed) a badger store rooted at dir.
func New(dir string) (*Table, error) {
	if dir == "" {
		return nil, fmt.Errorf("badgertable: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("badgertable: ensure %q: %w", dir, err)
	}
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("badgertable: open %q: %w", dir, err)
	}
	return &Table{db: db}, nil
}

func (t *Table) Close() error {
	return t.db.Close()
}

func entryKey(a content.Address) []byte { return append(entryPref[:len(entryPref):len(entryPref)], a...) }

func metaKey(a content.Address) []byte { return append(metaPref[:len(metaPref):len(metaPref)], a...) }

// eidxKey is eidx:<entryAddress>:<metaAddress>.
func eidxKey(entryAddr, metaAddr content.Address) []byte {
	k := append(eidxPref[:len(eidxPref):len(eidxPref)], entryAddr...)
	k = append(k, ':')
	return append(k, metaAddr...)
}

func eidxScanPrefix(entryAddr content.Address) []byte {
	k := append(eidxPref[:len(eidxPref):len(eidxPref)], entryAddr...)
	return append(k, ':')
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
	return t.db.Update(func(txn *badger.Txn) error {
		return txn.Set(entryKey(addr), c)
	})
}

func (t *Table) Entry(address content.Address) (*entry.Entry, error) {
	if address == "" {
		return nil, hashtable.ErrInvalidAddress
	}
	c, err := t.get(entryKey(address))
	if err != nil || c == nil {
		return nil, err
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
	// The index write is idempotent for a fixed (entry, attribute) pair: the
	// meta address collapses on those two fields, so a later assertion lands
	// on the same index key and the same meta key.
	return t.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(metaKey(addr), c); err != nil {
			return err
		}
		return txn.Set(eidxKey(m.EntryAddress(), addr), nil)
	})
}

func (t *Table) Meta(address content.Address) (*meta.EntryMeta, error) {
	if address == "" {
		return nil, hashtable.ErrInvalidAddress
	}
	c, err := t.get(metaKey(address))
	if err != nil || c == nil {
		return nil, err
	}
	m, err := meta.FromContent(c)
	if err != nil {
		return nil, &hashtable.DecodeError{Table: "metas", Address: address, Err: err}
	}
	return m, nil
}

func (t *Table) MetasFromEntry(e *entry.Entry) ([]*meta.EntryMeta, error) {
	target := e.Address()
	prefix := eidxScanPrefix(target)

	var metas []*meta.EntryMeta
	err := t.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			metaAddr := content.Address(bytes.TrimPrefix(it.Item().Key(), prefix))
			item, err := txn.Get(metaKey(metaAddr))
			if err == badger.ErrKeyNotFound {
				// Dangling index entry; the assertion itself is gone.
				continue
			}
			if err != nil {
				return err
			}
			c, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			m, err := meta.FromContent(c)
			if err != nil {
				return &hashtable.DecodeError{Table: "metas", Address: metaAddr, Err: err}
			}
			if m.EntryAddress() == target {
				metas = append(metas, m)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	meta.Sort(metas)
	return metas, nil
}

// get returns the value at key, or (nil, nil) when the key is absent.
func (t *Table) get(key []byte) (content.Content, error) {
	var c content.Content
	err := t.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		b, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		c = content.Content(b)
		return nil
	})
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
