// Package receipt signs and verifies witness receipts over a KEL/TEL
// event's SAID as COSE_Sign1 envelopes (RFC 8152), per the resolution of
// SPEC_FULL.md §9's receipt-semantics open question: a receipt is an
// attachment-group item carried alongside an event, not a separate event
// type. The payload is the event's SAID rather than its framed text - a
// witness attests to the digest it received, not to re-transmitting the
// whole event - and the witness AID travels in the COSE unprotected
// header, since it identifies the signer rather than being covered by the
// signature itself. Grounded on the teacher's massifs.RootSigner /
// massifs/cose usage of veraison/go-cose, with the envelope's own framing
// delegated to the module's cborcodec rather than calling
// cose.Sign1Message's MarshalCBOR/UnmarshalCBOR directly, so every
// deterministically-encoded wire value in the module goes through the one
// codec.
package receipt

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"github.com/forestrie/go-keri/cborcodec"
	"github.com/forestrie/go-keri/signer"
	cose "github.com/veraison/go-cose"
)

// Sign wraps said (an event's SAID, CESR text) in a COSE_Sign1 envelope
// attesting that witnessAID received and is vouching for that event.
func Sign(said string, witnessAID string, s *signer.Signer) ([]byte, error) {
	coseSigner, err := cose.NewSigner(cose.AlgorithmEdDSA, s.CryptoSigner())
	if err != nil {
		return nil, fmt.Errorf("receipt: %w", err)
	}

	msg := cose.Sign1Message{
		Headers: cose.Headers{
			Protected: cose.ProtectedHeader{
				cose.HeaderLabelAlgorithm: cose.AlgorithmEdDSA,
			},
			Unprotected: cose.UnprotectedHeader{
				cose.HeaderLabelKeyID: []byte(witnessAID),
			},
		},
		Payload: []byte(said),
	}
	if err := msg.Sign(rand.Reader, nil, coseSigner); err != nil {
		return nil, fmt.Errorf("receipt: %w", err)
	}

	codec, err := cborcodec.New()
	if err != nil {
		return nil, fmt.Errorf("receipt: %w", err)
	}
	return codec.Marshal(&msg)
}

// Verify decodes a COSE_Sign1 envelope, checks its payload against the
// expected said, matches its unprotected key ID against the given witness
// verfers, and checks the signature. It returns the AID of the witness
// that produced it.
func Verify(envelope []byte, said string, witnesses []signer.Verfer) (witnessAID string, err error) {
	codec, err := cborcodec.New()
	if err != nil {
		return "", fmt.Errorf("receipt: %w", err)
	}
	var msg cose.Sign1Message
	if err := codec.Unmarshal(envelope, &msg); err != nil {
		return "", fmt.Errorf("receipt: %w", err)
	}
	kid, ok := msg.Headers.Unprotected[cose.HeaderLabelKeyID].([]byte)
	if !ok {
		return "", ErrNoSignature
	}
	witnessAID = string(kid)

	if string(msg.Payload) != said {
		return "", ErrPayloadMismatch
	}

	for _, w := range witnesses {
		qb64, qerr := w.QB64()
		if qerr != nil {
			return "", qerr
		}
		if qb64 != witnessAID {
			continue
		}
		verifier, verr := cose.NewVerifier(cose.AlgorithmEdDSA, ed25519.PublicKey(w.Raw()))
		if verr != nil {
			return "", fmt.Errorf("receipt: %w", verr)
		}
		if err := msg.Verify(nil, verifier); err != nil {
			return "", fmt.Errorf("receipt: %w", err)
		}
		return witnessAID, nil
	}
	return "", ErrUnknownWitness
}
