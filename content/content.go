// Package content defines the content-addressing primitives shared by every
// stored type: opaque addresses, canonical serialized content, and the
// Addressable capability linking the two.
package content

// Address is a content-derived identifier rendered as a base58 multihash
// string. It is the sole lookup key into storage.
//
// Contract:
// - Identical content always yields the identical address.
// - Distinct content yields distinct addresses (up to digest collision).
// - Equality and ordering are lexicographic over the string form.
type Address string

func (a Address) String() string { return string(a) }

// Content is the canonical serialized byte form of a stored value.
// Content values are immutable once produced.
type Content []byte

// Addressable is the capability any stored type must implement: derive its
// own address from its content, and serialize itself to canonical bytes.
//
// Reconstruction is per-type (see entry.FromContent, meta.FromContent) and
// must satisfy the round-trip law: FromContent(x.Content()) == x.
type Addressable interface {
	Address() Address
	Content() (Content, error)
}
