// Package diger computes and verifies self-addressing digests over
// serializations, per spec §4.2. The algorithm is selected entirely by
// the CESR code; callers never name an algorithm directly once the code
// is chosen.
package diger

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"

	"github.com/forestrie/go-keri/codex"
	"github.com/forestrie/go-keri/matter"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"
)

// DefaultCode is the digest code used for SAIDs unless a caller pins
// another one: Blake3-256, per spec §4.2.
const DefaultCode = "E"

// Digest is a computed digest, framed as a CESR Matter primitive.
type Digest struct {
	matter.Matter
}

// Compute hashes ser with the algorithm named by code and returns the
// framed digest. code must be one of the digest algorithms in the codex.
func Compute(ser []byte, code string) (Digest, error) {
	s, err := codex.Lookup(code)
	if err != nil {
		return Digest{}, fmt.Errorf("%w: %w", ErrUnsupportedAlgorithm, err)
	}
	sum, err := sum(s.Algo, ser)
	if err != nil {
		return Digest{}, err
	}
	m, err := matter.New(code, sum)
	if err != nil {
		return Digest{}, err
	}
	return Digest{m}, nil
}

// Verify recomputes the digest over ser with d's algorithm and
// byte-compares it against d's stored raw digest.
func Verify(d Digest, ser []byte) bool {
	sum, err := sum(codexAlgo(d.Code()), ser)
	if err != nil {
		return false
	}
	return constantTimeEqual(sum, d.Raw())
}

func codexAlgo(code string) codex.Algorithm {
	s, err := codex.Lookup(code)
	if err != nil {
		return codex.AlgoNone
	}
	return s.Algo
}

func sum(algo codex.Algorithm, ser []byte) ([]byte, error) {
	switch algo {
	case codex.AlgoBlake3_256:
		return blake3Sum(ser, 32), nil
	case codex.AlgoBlake3_512:
		return blake3Sum(ser, 64), nil
	case codex.AlgoBlake2b256:
		h := blake2b.Sum256(ser)
		return h[:], nil
	case codex.AlgoBlake2b512:
		h := blake2b.Sum512(ser)
		return h[:], nil
	case codex.AlgoBlake2s256:
		h := blake2s.Sum256(ser)
		return h[:], nil
	case codex.AlgoSHA3_256:
		h := sha3.Sum256(ser)
		return h[:], nil
	case codex.AlgoSHA3_512:
		h := sha3.Sum512(ser)
		return h[:], nil
	case codex.AlgoSHA2_256:
		h := sha256.Sum256(ser)
		return h[:], nil
	case codex.AlgoSHA2_512:
		h := sha512.Sum512(ser)
		return h[:], nil
	default:
		return nil, fmt.Errorf("%w: algorithm %d", ErrUnsupportedAlgorithm, algo)
	}
}

// blake3Sum hashes ser and reads n bytes from the BLAKE3 extendable output,
// matching the New()/Write()/Digest().Read() idiom the pack's other BLAKE3
// call sites use (e.g. luxfi's transmuter stake keys).
func blake3Sum(ser []byte, n int) []byte {
	h := blake3.New()
	h.Write(ser)
	out := make([]byte, n)
	h.Digest().Read(out)
	return out
}

func constantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var v byte
	for i := range a {
		v |= a[i] ^ b[i]
	}
	return v == 0
}
