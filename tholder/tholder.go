// Package tholder parses and evaluates signing thresholds, numeric or
// weighted fractional, per spec §4.5.
package tholder

import (
	"fmt"
	"math/big"
	"strconv"
)

// Kind distinguishes the two threshold forms.
type Kind int

const (
	KindNumeric Kind = iota
	KindWeighted
)

// Tholder evaluates whether a set of signing-key indices satisfies a
// threshold. The zero value is not valid; build one with Parse.
type Tholder struct {
	kind    Kind
	numeric int
	weights []*big.Rat
	raw     []string // original fraction strings, for Serialize fidelity
}

// Parse accepts the three forms spec §4.5 allows: an int (any k of the
// listed signers), a decimal string "k", or a slice of reduced-fraction
// strings such as ["1/2","1/2","1/2"].
func Parse(raw any) (Tholder, error) {
	switch v := raw.(type) {
	case int:
		if v < 0 {
			return Tholder{}, fmt.Errorf("%w: negative numeric threshold %d", ErrInvalidForm, v)
		}
		return Tholder{kind: KindNumeric, numeric: v}, nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return Tholder{}, fmt.Errorf("%w: %q is not a decimal integer", ErrInvalidForm, v)
		}
		if n < 0 {
			return Tholder{}, fmt.Errorf("%w: negative numeric threshold %d", ErrInvalidForm, n)
		}
		return Tholder{kind: KindNumeric, numeric: n}, nil
	case []string:
		if len(v) == 0 {
			return Tholder{}, ErrEmptyWeights
		}
		weights := make([]*big.Rat, len(v))
		for i, frac := range v {
			r, ok := new(big.Rat).SetString(frac)
			if !ok {
				return Tholder{}, fmt.Errorf("%w: %q is not a valid fraction", ErrInvalidForm, frac)
			}
			weights[i] = r
		}
		raw := make([]string, len(v))
		copy(raw, v)
		return Tholder{kind: KindWeighted, weights: weights, raw: raw}, nil
	case []any:
		strs := make([]string, len(v))
		for i, e := range v {
			s, ok := e.(string)
			if !ok {
				return Tholder{}, fmt.Errorf("%w: weighted threshold entries must be strings", ErrInvalidForm)
			}
			strs[i] = s
		}
		return Parse(strs)
	default:
		return Tholder{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidForm, raw)
	}
}

// Kind reports which form this threshold takes.
func (t Tholder) Kind() Kind { return t.kind }

// Size returns the number of weight slots for a weighted threshold, or the
// numeric value for a numeric one (used by callers sizing signer lists).
func (t Tholder) Size() int {
	if t.kind == KindWeighted {
		return len(t.weights)
	}
	return t.numeric
}

// Satisfied reports whether the given set of signing-key indices satisfies
// the threshold. Duplicate indices are counted once. For a numeric
// threshold this is len(unique(indices)) >= k. For a weighted threshold it
// is the exact-rational inequality sum(w_i) >= 1, per spec §4.5/§8
// invariant 6.
func (t Tholder) Satisfied(indices []int) bool {
	seen := make(map[int]bool, len(indices))
	for _, i := range indices {
		seen[i] = true
	}
	switch t.kind {
	case KindNumeric:
		return len(seen) >= t.numeric
	case KindWeighted:
		sum := new(big.Rat)
		for i := range seen {
			if i < 0 || i >= len(t.weights) {
				continue
			}
			sum.Add(sum, t.weights[i])
		}
		return sum.Cmp(big.NewRat(1, 1)) >= 0
	default:
		return false
	}
}

// Serialize renders the threshold the way an event field stores it: a
// bare decimal string for numeric thresholds, or a slice of the original
// fraction strings for weighted ones (spec §4.5).
func (t Tholder) Serialize() any {
	switch t.kind {
	case KindNumeric:
		return strconv.Itoa(t.numeric)
	case KindWeighted:
		out := make([]string, len(t.raw))
		copy(out, t.raw)
		return out
	default:
		return nil
	}
}

// IsNonTransferable reports the nt="0" with empty weights convention that
// closes a KEL to further rotation (spec §4.5).
func (t Tholder) IsNonTransferable() bool {
	return t.kind == KindNumeric && t.numeric == 0
}
