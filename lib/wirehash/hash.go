// Package wirehash computes content fingerprints over encoded wire
// payloads. A fingerprint is a keyed BLAKE3 digest; the key encodes a
// domain so the same bytes hashed for two different purposes (a raw
// payload versus a Merkle leaf, say) never collide.
package wirehash

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Digest is a 32-byte BLAKE3 fingerprint.
type Digest [32]byte

// domainKey is a 32-byte BLAKE3 keyed-hash key. Each kind of input this
// package fingerprints (whole payload, single record, Merkle tree node)
// gets its own key so that identical bytes hashed under different
// domains never produce the same digest. The key does not depend on the
// payload's root wire type.
type domainKey [32]byte

var (
	payloadDomainKey = domainKey{
		't', 'y', 'b', 'i', 'n', '.', 'w', 'i', 'r', 'e', 'h', 'a', 's', 'h', '.',
		'p', 'a', 'y', 'l', 'o', 'a', 'd', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
	recordDomainKey = domainKey{
		't', 'y', 'b', 'i', 'n', '.', 'w', 'i', 'r', 'e', 'h', 'a', 's', 'h', '.',
		'r', 'e', 'c', 'o', 'r', 'd', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
	treeDomainKey = domainKey{
		't', 'y', 'b', 'i', 'n', '.', 'w', 'i', 'r', 'e', 'h', 'a', 's', 'h', '.',
		't', 'r', 'e', 'e', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
)

func keyedHash(key domainKey, data []byte) Digest {
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("wirehash: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var d Digest
	copy(d[:], hasher.Sum(nil))
	return d
}

// Payload fingerprints one encoded wire payload — the output of any
// [wire.Codec]'s Encode/EncodeInto — for content-addressing (dedup,
// cache keys, integrity checks on stored encoded state).
func Payload(encoded []byte) Digest {
	return keyedHash(payloadDomainKey, encoded)
}

// Record fingerprints one element of a typed sequence of encoded
// records, distinct from [Payload] so a lone record's digest never
// collides with a whole-payload digest over the same bytes.
func Record(encoded []byte) Digest {
	return keyedHash(recordDomainKey, encoded)
}

// MerkleRoot computes a binary Merkle tree over digests and returns the
// root, letting a typed sequence of records be fingerprinted without
// re-encoding or re-hashing the whole sequence when one record changes.
// The tree is built bottom-up: adjacent pairs are concatenated and
// hashed; an odd trailing node is promoted to the next level unhashed
// rather than duplicated, so a list and a prefix of a longer list never
// collide by construction.
//
// Panics if digests is empty.
func MerkleRoot(digests []Digest) Digest {
	if len(digests) == 0 {
		panic("wirehash.MerkleRoot: empty digest list")
	}
	if len(digests) == 1 {
		return digests[0]
	}

	hasher, err := blake3.NewKeyed(treeDomainKey[:])
	if err != nil {
		panic("wirehash: BLAKE3 keyed hash initialization failed: " + err.Error())
	}

	var combined [64]byte
	hashPair := func(left, right Digest) Digest {
		copy(combined[:32], left[:])
		copy(combined[32:], right[:])
		hasher.Reset()
		hasher.Write(combined[:])
		var out Digest
		copy(out[:], hasher.Sum(nil))
		return out
	}

	level := make([]Digest, len(digests))
	copy(level, digests)

	for len(level) > 1 {
		nextLen := (len(level) + 1) / 2
		next := make([]Digest, nextLen)
		for i := 0; i < len(level)-1; i += 2 {
			next[i/2] = hashPair(level[i], level[i+1])
		}
		if len(level)%2 == 1 {
			next[nextLen-1] = level[len(level)-1]
		}
		level = next
	}
	return level[0]
}

// String returns the lowercase hex encoding of d.
func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// ParseDigest parses a 64-character hex string into a Digest.
func ParseDigest(hexString string) (Digest, error) {
	var d Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return d, fmt.Errorf("wirehash: parsing digest: %w", err)
	}
	if len(decoded) != 32 {
		return d, fmt.Errorf("wirehash: digest is %d bytes, want 32", len(decoded))
	}
	copy(d[:], decoded)
	return d, nil
}
