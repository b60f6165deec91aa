package content

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// DefaultDigest is the digest algorithm used by the current address format.
//
// It is a default, not a constant of the entity model: every derivation call
// site passes the code explicitly so the algorithm can migrate without
// touching entity semantics.
const DefaultDigest = multihash.SHA2_256

// SumAddress derives the canonical textual address for data: a multihash of
// the given code, rendered in base58.
func SumAddress(data []byte, code uint64) (Address, error) {
	sum, err := multihash.Sum(data, code, -1)
	if err != nil {
		return "", err
	}
	return Address(sum.B58String()), nil
}

// AddressOf is SumAddress for call sites that cannot propagate an error.
func AddressOf(data []byte, code uint64) Address {
	a, err := SumAddress(data, code)
	if err != nil {
		// multihash.Sum only errors for unknown codes or invalid lengths;
		// with a registered code and -1 length this is unreachable.
		return ""
	}
	return a
}

// CID re-renders a stored address as a CIDv1 (raw codec, same multihash) for
// IPFS-side tooling. The base58 multihash form remains the canonical address;
// this is an interop view only.
func CID(a Address) (cid.Cid, error) {
	sum, err := multihash.FromB58String(string(a))
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}
