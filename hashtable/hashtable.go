// Package hashtable defines the storage abstraction over content-addressed
// entries and their EAV metadata, plus backend-composition helpers.
//
// Backends (file-based, in-memory, badger-indexed, networked) are variants
// behind the HashTable interface, selected at construction time.
package hashtable

import (
	"github.com/entable/entable/content"
	"github.com/entable/entable/entry"
	"github.com/entable/entable/meta"
)

// HashTable is the persistence contract for entries and metadata.
//
// Contract:
// - Stored values are immutable and keyed strictly by their own address.
// - PutEntry and AssertMeta MUST be idempotent for identical content;
//   AssertMeta is last-write-wins for a given (entry, attribute) pair.
// - Point lookups return (nil, nil) when the address holds nothing; absence
//   is a defined outcome, not an error.
// - MetasFromEntry returns every stored assertion about the entry, sorted by
//   the EntryMeta total order (entry address, attribute, value).
// - Decode failures on stored bytes surface as *DecodeError, never a panic.
//
// Mutating operations require external serialization: implementations are not
// obliged to coordinate concurrent in-process writers, and nothing coordinates
// writers across processes.
type HashTable interface {
	PutEntry(e *entry.Entry) error
	Entry(address content.Address) (*entry.Entry, error)
	AssertMeta(m *meta.EntryMeta) error
	Meta(address content.Address) (*meta.EntryMeta, error)
	MetasFromEntry(e *entry.Entry) ([]*meta.EntryMeta, error)
}
