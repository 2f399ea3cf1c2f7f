package diger

import "testing"

func TestComputeAndVerifyBlake3(t *testing.T) {
	ser := []byte(`{"age":25,"name":"Charlie"}`)
	d, err := Compute(ser, DefaultCode)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if !Verify(d, ser) {
		t.Fatal("expected digest to verify")
	}
	if Verify(d, append(append([]byte{}, ser...), 'x')) {
		t.Fatal("digest should not verify against mutated serialization")
	}
}

func TestComputeEachAlgorithm(t *testing.T) {
	ser := []byte("hello world")
	for _, code := range []string{"E", "H", "F", "0F", "G", "I", "0G", "J", "0H"} {
		d, err := Compute(ser, code)
		if err != nil {
			t.Fatalf("code %q: %v", code, err)
		}
		if !Verify(d, ser) {
			t.Fatalf("code %q: did not verify", code)
		}
	}
}

func TestComputeUnsupportedCode(t *testing.T) {
	if _, err := Compute([]byte("x"), "zz"); err == nil {
		t.Fatal("expected error")
	}
}
