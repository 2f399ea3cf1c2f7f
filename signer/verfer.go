package signer

import (
	"crypto/ed25519"

	"github.com/forestrie/go-keri/matter"
)

// Verfer is an Ed25519 public verification key, CESR-framed.
type Verfer struct {
	matter.Matter
	transferable bool
}

// NewVerfer frames a raw 32-byte Ed25519 public key as a Verfer.
func NewVerfer(pub []byte, transferable bool) (Verfer, error) {
	if len(pub) != ed25519.PublicKeySize {
		return Verfer{}, ErrBadKeyLength
	}
	code := "D"
	if transferable {
		code = "B"
	}
	m, err := matter.New(code, pub)
	if err != nil {
		return Verfer{}, err
	}
	return Verfer{Matter: m, transferable: transferable}, nil
}

// Transferable reports whether this key commits to a next-key digest
// (participates in rotation) or is a terminal, non-transferable key.
func (v Verfer) Transferable() bool { return v.transferable }

// Verify implements the core's verification contract (spec §6.4).
func (v Verfer) Verify(message, sig []byte) bool {
	return ed25519.Verify(ed25519.PublicKey(v.Raw()), message, sig)
}
