package cborcodec

import "testing"

type sample struct {
	B int    `cbor:"2,keyasint"`
	A string `cbor:"1,keyasint"`
}

func TestCodec_RoundTrip(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	in := sample{A: "x", B: 7}
	data, err := c.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out sample
	if err := c.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: %+v != %+v", out, in)
	}
}

func TestCodec_Deterministic(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	in := sample{A: "x", B: 7}
	d1, _ := c.Marshal(in)
	d2, _ := c.Marshal(in)
	if string(d1) != string(d2) {
		t.Fatalf("encoding not deterministic across calls")
	}
}
