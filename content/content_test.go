package content

import (
	"testing"

	"github.com/multiformats/go-multihash"
)

func TestSumAddress_Deterministic(t *testing.T) {
	a1, err := SumAddress([]byte("test entry content"), DefaultDigest)
	if err != nil {
		t.Fatalf("SumAddress failed: %v", err)
	}
	a2, err := SumAddress([]byte("test entry content"), DefaultDigest)
	if err != nil {
		t.Fatalf("SumAddress failed: %v", err)
	}
	if a1 != a2 {
		t.Fatalf("same content gave different addresses: %s vs %s", a1, a2)
	}
	// Known vector: sha2-256 multihash, base58.
	if want := Address("QmbXSE38SN3SuJDmHKSSw5qWWegvU7oTxrLDRavWjyxMrT"); a1 != want {
		t.Fatalf("address mismatch: got %s want %s", a1, want)
	}
}

func TestSumAddress_DistinctContent(t *testing.T) {
	a1, err := SumAddress([]byte("foo"), DefaultDigest)
	if err != nil {
		t.Fatalf("SumAddress failed: %v", err)
	}
	a2, err := SumAddress([]byte("bar"), DefaultDigest)
	if err != nil {
		t.Fatalf("SumAddress failed: %v", err)
	}
	if a1 == a2 {
		t.Fatalf("distinct content collided: %s", a1)
	}
}

func TestSumAddress_PluggableDigest(t *testing.T) {
	sha256Addr, err := SumAddress([]byte("swap me"), multihash.SHA2_256)
	if err != nil {
		t.Fatalf("SumAddress(sha2-256) failed: %v", err)
	}
	sha512Addr, err := SumAddress([]byte("swap me"), multihash.SHA2_512)
	if err != nil {
		t.Fatalf("SumAddress(sha2-512) failed: %v", err)
	}
	if sha256Addr == sha512Addr {
		t.Fatalf("digest algorithm did not affect the address")
	}
}

func TestAddressOf_MatchesSum(t *testing.T) {
	want, err := SumAddress([]byte("x"), DefaultDigest)
	if err != nil {
		t.Fatalf("SumAddress failed: %v", err)
	}
	if got := AddressOf([]byte("x"), DefaultDigest); got != want {
		t.Fatalf("AddressOf mismatch: got %s want %s", got, want)
	}
}

func TestCID_Interop(t *testing.T) {
	addr := AddressOf([]byte("interop"), DefaultDigest)
	id, err := CID(addr)
	if err != nil {
		t.Fatalf("CID failed: %v", err)
	}
	if !id.Defined() {
		t.Fatalf("CID is undefined")
	}
	// The CID must carry the same multihash the address renders.
	back, err := multihash.FromB58String(string(addr))
	if err != nil {
		t.Fatalf("FromB58String failed: %v", err)
	}
	if string(id.Hash()) != string(back) {
		t.Fatalf("CID multihash does not match address")
	}
}

func TestCID_RejectsMalformedAddress(t *testing.T) {
	if _, err := CID(Address("not base58 0OIl")); err == nil {
		t.Fatalf("expected error for malformed address")
	}
}
