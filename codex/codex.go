// Package codex enumerates the CESR primitive codes this module understands:
// their algorithm, raw payload size, and the derived textual/binary widths.
// It is the static lookup table that matter, diger and signer dispatch on.
package codex

import "fmt"

// Algorithm identifies the cryptographic or structural meaning of a code.
type Algorithm int

const (
	AlgoNone Algorithm = iota
	AlgoEd25519Seed
	AlgoEd25519Verfer
	AlgoEd25519VerferNonTrans
	AlgoEd25519Sig
	AlgoBlake3_256
	AlgoBlake3_512
	AlgoBlake2b256
	AlgoBlake2b512
	AlgoBlake2s256
	AlgoSHA3_256
	AlgoSHA3_512
	AlgoSHA2_256
	AlgoSHA2_512
)

// Sizes describes the fixed geometry of one code: the number of characters
// in the code prefix (cs), the number of raw payload bytes it carries, and
// the derived full text length (fs) and binary length (bs).
type Sizes struct {
	Code string
	Algo Algorithm
	CS   int // code size, in text characters
	RS   int // raw size, in bytes
	FS   int // full text size, in characters (multiple of 4)
	BS   int // full binary size, in bytes
}

// padSize returns the number of zero lead-bytes needed to align rs bytes to
// a 3-byte boundary per the lead-byte rule in spec §3.1.
func padSize(rs int) int {
	return (3 - rs%3) % 3
}

func newSizes(code string, algo Algorithm, rs int) Sizes {
	cs := len(code)
	ps := padSize(rs)
	fs := (rs + ps) * 4 / 3
	// bs is the total binary width: the same bits as the fs-character text
	// form, just packed 8-bits-per-byte instead of 6-bits-per-char. It
	// covers the pad bytes and the code bits together with the raw payload.
	bs := (fs * 3) / 4
	return Sizes{Code: code, Algo: algo, CS: cs, RS: rs, FS: fs, BS: bs}
}

// table is the static codex. New codes require new entries here, not new
// Go types: dispatch on algorithm is always a single switch over Algo.
var table = map[string]Sizes{
	"A": newSizes("A", AlgoEd25519Seed, 32),
	"D": newSizes("D", AlgoEd25519VerferNonTrans, 32),
	"B": newSizes("B", AlgoEd25519Verfer, 32),
	"0B": newSizes("0B", AlgoEd25519Sig, 64),
	"E": newSizes("E", AlgoBlake3_256, 32),
	"H": newSizes("H", AlgoBlake3_512, 64),
	"F": newSizes("F", AlgoBlake2b256, 32),
	"0F": newSizes("0F", AlgoBlake2b512, 64),
	"G": newSizes("G", AlgoBlake2s256, 32),
	"I": newSizes("I", AlgoSHA3_256, 32),
	"0G": newSizes("0G", AlgoSHA3_512, 64),
	"J": newSizes("J", AlgoSHA2_256, 32),
	"0H": newSizes("0H", AlgoSHA2_512, 64),
}

// ErrUnknownCode is returned when a code has no codex entry.
var ErrUnknownCode = fmt.Errorf("codex: unknown code")

// Lookup returns the Sizes entry for a code, or ErrUnknownCode.
func Lookup(code string) (Sizes, error) {
	s, ok := table[code]
	if !ok {
		return Sizes{}, fmt.Errorf("%w: %q", ErrUnknownCode, code)
	}
	return s, nil
}

// MustLookup panics on an unknown code; reserved for module-internal call
// sites that pass a compile-time-constant code.
func MustLookup(code string) Sizes {
	s, err := Lookup(code)
	if err != nil {
		panic(err)
	}
	return s
}

// CodeForAlgorithm returns the preferred (shortest) code for an algorithm.
func CodeForAlgorithm(algo Algorithm) (string, error) {
	for code, s := range table {
		if s.Algo == algo {
			return code, nil
		}
	}
	return "", fmt.Errorf("codex: no code registered for algorithm %d", algo)
}

// HardSize returns the code-size (cs) that a textual primitive's leading
// character class implies, by scanning registered codes from longest to
// shortest prefix. This lets Decode determine cs without first knowing the
// full code.
func HardSize(text string) (int, error) {
	// Two-character hard codes are distinguished by a leading '0'.
	if len(text) >= 2 && text[0] == '0' {
		if _, ok := table[text[:2]]; ok {
			return 2, nil
		}
		return 0, fmt.Errorf("%w: %q", ErrUnknownCode, text[:2])
	}
	if len(text) >= 1 {
		if _, ok := table[text[:1]]; ok {
			return 1, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCode, text)
}
