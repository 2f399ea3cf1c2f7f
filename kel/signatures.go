package kel

import (
	"fmt"

	"github.com/forestrie/go-keri/event"
	"github.com/forestrie/go-keri/matter"
	"github.com/forestrie/go-keri/signer"
	"github.com/forestrie/go-keri/tholder"
)

// verifyThreshold implements spec §4.10 for a fully-signed event: each
// indexed signature is verified against k[idx], and the set of indices
// that verify must satisfy th.
func verifyThreshold(th tholder.Tholder, verfers []signer.Verfer, message []byte, sigs []event.IndexedSig) error {
	good := make([]int, 0, len(sigs))
	for _, sig := range sigs {
		if sig.Idx < 0 || sig.Idx >= len(verfers) {
			continue
		}
		if verfers[sig.Idx].Verify(message, sig.Sig) {
			good = append(good, sig.Idx)
		}
	}
	if !th.Satisfied(good) {
		return fmt.Errorf("%w: %d of %d keys satisfied, threshold not reached", ErrThresholdNotMet, len(good), len(verfers))
	}
	return nil
}

// VerfersFromQB64 frames a set of CESR-text public keys as Verfers.
func VerfersFromQB64(keys []string) ([]signer.Verfer, error) {
	out := make([]signer.Verfer, len(keys))
	for i, k := range keys {
		code := k[:1]
		transferable := code == "B"
		vf, err := verferFromText(k, transferable)
		if err != nil {
			return nil, err
		}
		out[i] = vf
	}
	return out, nil
}

func verferFromText(qb64 string, transferable bool) (signer.Verfer, error) {
	_, raw, err := matter.DecodeText(qb64)
	if err != nil {
		return signer.Verfer{}, err
	}
	return signer.NewVerfer(raw, transferable)
}
