package receipt

import (
	"testing"

	"github.com/forestrie/go-keri/signer"
)

func TestSignVerify_RoundTrip(t *testing.T) {
	s, err := signer.New(nil, false)
	if err != nil {
		t.Fatalf("signer.New: %v", err)
	}
	aid, err := s.Verfer().QB64()
	if err != nil {
		t.Fatalf("QB64: %v", err)
	}
	said := "EeventSAID"

	env, err := Sign(said, aid, s)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	gotAID, err := Verify(env, said, []signer.Verfer{s.Verfer()})
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if gotAID != aid {
		t.Fatalf("witness AID = %q, want %q", gotAID, aid)
	}
}

func TestVerify_UnknownWitness(t *testing.T) {
	signed, err := signer.New(nil, false)
	if err != nil {
		t.Fatalf("signer.New: %v", err)
	}
	other, err := signer.New(nil, false)
	if err != nil {
		t.Fatalf("signer.New: %v", err)
	}
	aid, _ := signed.Verfer().QB64()
	said := "EeventSAID"

	env, err := Sign(said, aid, signed)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := Verify(env, said, []signer.Verfer{other.Verfer()}); err == nil {
		t.Fatalf("expected ErrUnknownWitness when the signer is not in the witness set")
	}
}

func TestVerify_PayloadMismatch(t *testing.T) {
	s, err := signer.New(nil, false)
	if err != nil {
		t.Fatalf("signer.New: %v", err)
	}
	aid, _ := s.Verfer().QB64()

	env, err := Sign("EeventSAID", aid, s)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := Verify(env, "EdifferentSAID", []signer.Verfer{s.Verfer()}); err == nil {
		t.Fatalf("expected ErrPayloadMismatch for a receipt over a different said")
	}
}
