// Package signer implements the Ed25519 private-key holder and public-key
// verifier the rest of the module treats as the in-process binding of the
// signing contract in spec §6.4. A seed is an Ed25519 private scalar
// carrier (code "A", 32 raw bytes); a Verfer is the corresponding public
// key, CESR-framed with code "D" (non-transferable) or "B" (transferable).
//
// Ed25519 itself is implemented with the standard library's crypto/ed25519
// rather than a third-party curve package: see DESIGN.md for why no pack
// dependency substitutes for it here.
package signer

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"github.com/forestrie/go-keri/matter"
)

// SeedCode is the Matter code for an Ed25519 seed.
const SeedCode = "A"

// Signer holds an Ed25519 private key and can produce raw signatures and
// indexed contributions for an event.
type Signer struct {
	seed   []byte // 32-byte Ed25519 seed
	priv   ed25519.PrivateKey
	verfer Verfer
}

// New derives a Signer from a 32-byte seed. If seed is nil, a fresh random
// seed is generated. transferable selects whether the derived Verfer uses
// the transferable ("B") or non-transferable ("D") code.
func New(seed []byte, transferable bool) (*Signer, error) {
	if seed == nil {
		seed = make([]byte, ed25519.SeedSize)
		if _, err := rand.Read(seed); err != nil {
			return nil, fmt.Errorf("signer: %w", err)
		}
	}
	if len(seed) != ed25519.SeedSize {
		return nil, ErrBadSeedLength
	}
	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)

	vf, err := NewVerfer(pub, transferable)
	if err != nil {
		return nil, err
	}

	return &Signer{seed: seed, priv: priv, verfer: vf}, nil
}

// Seed returns the 32-byte Ed25519 seed, CESR-framed.
func (s *Signer) Seed() (matter.Matter, error) {
	return matter.New(SeedCode, s.seed)
}

// Verfer returns the public verification key paired with this Signer.
func (s *Signer) Verfer() Verfer { return s.verfer }

// CryptoSigner exposes the Ed25519 private key as a crypto.Signer, for
// adapters (e.g. cose.NewSigner) that need the standard interface rather
// than this type's own Sign.
func (s *Signer) CryptoSigner() ed25519.PrivateKey { return s.priv }

// Sign implements the core's signing contract (spec §6.4): it returns the
// raw 64-byte Ed25519 signature over message. keyIndex is accepted for
// interface symmetry with indexed contributions but is not used by an
// in-process Ed25519 signer, which always signs with its single key.
func (s *Signer) Sign(message []byte, keyIndex int) ([]byte, error) {
	return ed25519.Sign(s.priv, message), nil
}
