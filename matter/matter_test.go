package matter

import (
	"bytes"
	"testing"
)

func TestRoundTripText(t *testing.T) {
	raw := bytes.Repeat([]byte{0x11}, 32)
	text, err := EncodeText("E", raw)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(text)%4 != 0 {
		t.Fatalf("text length %d not a multiple of 4", len(text))
	}
	if text[:1] != "E" {
		t.Fatalf("expected code prefix E, got %q", text[:1])
	}
	code, got, err := DecodeText(text)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if code != "E" || !bytes.Equal(got, raw) {
		t.Fatalf("round trip mismatch: code=%q raw=%x", code, got)
	}
}

func TestRoundTripBinary(t *testing.T) {
	raw := bytes.Repeat([]byte{0xAB}, 32)
	bin, err := EncodeBinary("E", raw)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	code, got, err := DecodeBinary(bin)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if code != "E" || !bytes.Equal(got, raw) {
		t.Fatalf("round trip mismatch: code=%q raw=%x", code, got)
	}
}

func TestEncodeWrongRawLength(t *testing.T) {
	if _, err := EncodeText("E", make([]byte, 10)); err == nil {
		t.Fatal("expected error for wrong raw length")
	}
}

func TestDecodeTruncated(t *testing.T) {
	if _, _, err := DecodeText("E"); err == nil {
		t.Fatal("expected error for truncated input")
	}
}

func TestDecodeUnknownCode(t *testing.T) {
	if _, _, err := DecodeText("zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz"); err == nil {
		t.Fatal("expected error for unknown code")
	}
}
