// Package meta defines the EAV assertion entity: a (entry, attribute, value)
// fact about a stored record, attributed to the asserting agent.
package meta

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/entable/entable/content"
)

// EntryMeta is an extended EAV (entity-attribute-value) assertion:
// E = the address of the entry the assertion is about
// A = the name of the meta attribute
// V = the value of the meta attribute
// source = the agent making the assertion
//
// The address of an EntryMeta is derived from the entry address and the
// attribute name only, so a given (entry, attribute) pair always maps to one
// storage slot: a later assertion overwrites an earlier one regardless of
// value or source.
type EntryMeta struct {
	entryAddress content.Address
	attribute    string
	value        string
	source       string
}

// wireMeta is the serialized shape. Field order is part of the format.
type wireMeta struct {
	EntryAddress string `json:"entry_address"`
	Attribute    string `json:"attribute"`
	Value        string `json:"value"`
	Source       string `json:"source"`
}

// New builds an EntryMeta from EAV fields and the asserting agent's id.
// No validation beyond presence: empty fields are the caller's concern.
func New(source string, entryAddress content.Address, attribute, value string) *EntryMeta {
	return &EntryMeta{
		entryAddress: entryAddress,
		attribute:    attribute,
		value:        value,
		source:       source,
	}
}

// FromContent reconstructs an EntryMeta from stored content bytes.
func FromContent(c content.Content) (*EntryMeta, error) {
	var w wireMeta
	if err := json.Unmarshal([]byte(c), &w); err != nil {
		return nil, fmt.Errorf("meta: decode EntryMeta: %w", err)
	}
	return &EntryMeta{
		entryAddress: content.Address(w.EntryAddress),
		attribute:    w.Attribute,
		value:        w.Value,
		source:       w.Source,
	}, nil
}

func (m *EntryMeta) EntryAddress() content.Address { return m.entryAddress }

func (m *EntryMeta) Attribute() string { return m.attribute }

func (m *EntryMeta) Value() string { return m.value }

func (m *EntryMeta) Source() string { return m.source }

// MakeAddress derives the storage address for any assertion about the given
// (entry, attribute) pair. Value and source are deliberately excluded.
func MakeAddress(entryAddress content.Address, attribute string) content.Address {
	return content.AddressOf([]byte(string(entryAddress)+attribute), content.DefaultDigest)
}

func (m *EntryMeta) Address() content.Address {
	return MakeAddress(m.entryAddress, m.attribute)
}

func (m *EntryMeta) Content() (content.Content, error) {
	b, err := json.Marshal(wireMeta{
		EntryAddress: string(m.entryAddress),
		Attribute:    m.attribute,
		Value:        m.value,
		Source:       m.source,
	})
	if err != nil {
		return nil, fmt.Errorf("meta: encode EntryMeta: %w", err)
	}
	return content.Content(b), nil
}

// Compare implements the total order over assertions: entry address first,
// then attribute, then value. Source never participates.
func (m *EntryMeta) Compare(o *EntryMeta) int {
	if c := strings.Compare(string(m.entryAddress), string(o.entryAddress)); c != 0 {
		return c
	}
	if c := strings.Compare(m.attribute, o.attribute); c != 0 {
		return c
	}
	return strings.Compare(m.value, o.value)
}

func (m *EntryMeta) Less(o *EntryMeta) bool { return m.Compare(o) < 0 }

// Equal reports field-wise equality, including source.
func (m *EntryMeta) Equal(o *EntryMeta) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.entryAddress == o.entryAddress &&
		m.attribute == o.attribute &&
		m.value == o.value &&
		m.source == o.source
}

// Sort orders assertions in place by the EntryMeta total order.
func Sort(metas []*EntryMeta) {
	sort.Slice(metas, func(i, j int) bool { return metas[i].Less(metas[j]) })
}
