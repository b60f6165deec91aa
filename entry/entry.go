// Package entry defines the stored record type: an immutable unit of
// application data with no identity beyond its address and content.
package entry

import (
	"github.com/entable/entable/content"
)

// Entry is an immutable stored record. Its address is the digest of its raw
// content; the content bytes are the canonical serialized form.
type Entry struct {
	value string
}

// New constructs an Entry over the given raw content.
func New(value string) *Entry {
	return &Entry{value: value}
}

// FromContent reconstructs an Entry from stored content bytes.
//
// Every byte string is a valid Entry, so decoding cannot fail; the error is
// part of the reconstruction contract shared with other stored types.
func FromContent(c content.Content) (*Entry, error) {
	return &Entry{value: string(c)}, nil
}

func (e *Entry) Address() content.Address {
	return content.AddressOf([]byte(e.value), content.DefaultDigest)
}

func (e *Entry) Content() (content.Content, error) {
	return content.Content(e.value), nil
}

// Value returns the raw content string.
func (e *Entry) Value() string { return e.value }

func (e *Entry) String() string { return e.value }
