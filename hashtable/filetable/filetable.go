// Package filetable implements hashtable.HashTable on a filesystem: one
// directory per logical table, one file per stored address.
package filetable

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/entable/entable/content"
	"github.com/entable/entable/entry"
	"github.com/entable/entable/hashtable"
	"github.com/entable/entable/meta"
)

// Logical tables, mapped to subdirectories of the root.
const (
	entriesTable = "entries"
	metasTable   = "metas"
)

const fileExt = ".json"

// Table is a filesystem-backed HashTable.
//
// Layout under the root directory:
//
//	entries/<address>.json   raw content bytes, one file per record
//	metas/<address>.json     raw content bytes, one file per assertion
//
// Subdirectories are created lazily on first use. Every operation is a
// direct, sequential filesystem call; there is no internal locking, caching
// or background work. Concurrent writers, in or across processes, race at
// whole-file-write granularity and must be serialized by the caller.
type Table struct {
	fs   afero.Fs
	path string
}

var _ hashtable.HashTable = (*Table)(nil)

// New constructs a Table rooted at path on the OS filesystem.
//
// The path is resolved to an absolute, canonical location and must be an
// existing, accessible directory; the resolved path is the table's identity
// for the remainder of its lifetime and is not re-validated per operation.
func New(path string) (*Table, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("filetable: resolve %q: %w", path, err)
	}
	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("filetable: resolve %q: %w", path, err)
	}
	info, err := os.Stat(canonical)
	if err != nil {
		return nil, fmt.Errorf("filetable: stat %q: %w", canonical, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("filetable: %q is not a directory", canonical)
	}
	return &Table{
		fs:   afero.NewBasePathFs(afero.NewOsFs(), canonical),
		path: canonical,
	}, nil
}

// NewWithFs constructs a Table rooted at path inside an arbitrary afero
// filesystem. Tests use this with an in-memory fs.
func NewWithFs(fs afero.Fs, path string) (*Table, error) {
	clean := filepath.Clean(path)
	ok, err := afero.DirExists(fs, clean)
	if err != nil {
		return nil, fmt.Errorf("filetable: stat %q: %w", clean, err)
	}
	if !ok {
		return nil, fmt.Errorf("filetable: %q is not a directory", clean)
	}
	return &Table{
		fs:   afero.NewBasePathFs(fs, clean),
		path: clean,
	}, nil
}

// Path returns the canonical root directory.
func (t *Table) Path() string { return t.path }

// dir ensures the given logical table's subdirectory exists and returns it.
func (t *Table) dir(table string) (string, error) {
	if err := t.fs.MkdirAll(table, 0o755); err != nil {
		return "", fmt.Errorf("filetable: ensure %s dir: %w", table, err)
	}
	return table, nil
}

func itemPath(table string, address content.Address) (string, error) {
	if address == "" {
		return "", hashtable.ErrInvalidAddress
	}
	return filepath.Join(table, string(address)+fileExt), nil
}

// upsert writes the item's content bytes to its table/address file as a
// single whole-file write, replacing any existing file.
func (t *Table) upsert(table string, item content.Addressable) error {
	path, err := itemPath(table, item.Address())
	if err != nil {
		return err
	}
	c, err := item.Content()
	if err != nil {
		return err
	}
	if _, err := t.dir(table); err != nil {
		return err
	}
	if err := afero.WriteFile(t.fs, path, []byte(c), 0o644); err != nil {
		return fmt.Errorf("filetable: write %s: %w", path, err)
	}
	return nil
}

// lookup reads the content bytes at table/address. A missing file is the
// defined absent outcome (nil, nil), not an error.
func (t *Table) lookup(table string, address content.Address) (content.Content, error) {
	path, err := itemPath(table, address)
	if err != nil {
		return nil, err
	}
	b, err := afero.ReadFile(t.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("filetable: read %s: %w", path, err)
	}
	return content.Content(b), nil
}

func (t *Table) PutEntry(e *entry.Entry) error {
	return t.upsert(entriesTable, e)
}

func (t *Table) Entry(address content.Address) (*entry.Entry, error) {
	c, err := t.lookup(entriesTable, address)
	if err != nil || c == nil {
		return nil, err
	}
	e, err := entry.FromContent(c)
	if err != nil {
		return nil, &hashtable.DecodeError{Table: entriesTable, Address: address, Err: err}
	}
	return e, nil
}

func (t *Table) AssertMeta(m *meta.EntryMeta) error {
	return t.upsert(metasTable, m)
}

func (t *Table) Meta(address content.Address) (*meta.EntryMeta, error) {
	c, err := t.lookup(metasTable, address)
	if err != nil || c == nil {
		return nil, err
	}
	m, err := meta.FromContent(c)
	if err != nil {
		return nil, &hashtable.DecodeError{Table: metasTable, Address: address, Err: err}
	}
	return m, nil
}

// MetasFromEntry scans every stored assertion and keeps those about e.
//
// Metadata is keyed by its composite (entry, attribute) address, so there is
// no index from entry to assertions; this walks the whole metas directory and
// decodes every file. O(total assertions) per query, an accepted limitation
// of this backend (badgertable keeps a secondary index instead).
//
// A file that fails to decode fails the whole query with a *DecodeError
// naming the offending address; results are never silently partial under
// corruption.
func (t *Table) MetasFromEntry(e *entry.Entry) ([]*meta.EntryMeta, error) {
	dir, err := t.dir(metasTable)
	if err != nil {
		return nil, err
	}
	target := e.Address()

	var metas []*meta.EntryMeta
	walk := func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if stem == "" {
			return nil
		}
		m, err := t.Meta(content.Address(stem))
		if err != nil {
			return err
		}
		if m != nil && m.EntryAddress() == target {
			metas = append(metas, m)
		}
		return nil
	}
	if err := afero.Walk(t.fs, dir, walk); err != nil {
		return nil, err
	}

	meta.Sort(metas)
	return metas, nil
}
