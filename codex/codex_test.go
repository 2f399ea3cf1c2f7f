package codex

import "testing"

func TestLookupBlake3_256(t *testing.T) {
	s, err := Lookup("E")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.CS != 1 || s.RS != 32 || s.FS != 44 {
		t.Fatalf("unexpected sizes: %+v", s)
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("zz"); err == nil {
		t.Fatal("expected error for unknown code")
	}
}

func TestHardSizeSingleAndDouble(t *testing.T) {
	cs, err := HardSize("Euabc")
	if err != nil || cs != 1 {
		t.Fatalf("got cs=%d err=%v", cs, err)
	}
	cs, err = HardSize("0Babc")
	if err != nil || cs != 2 {
		t.Fatalf("got cs=%d err=%v", cs, err)
	}
}

func TestCodeForAlgorithm(t *testing.T) {
	code, err := CodeForAlgorithm(AlgoBlake3_256)
	if err != nil || code != "E" {
		t.Fatalf("got code=%q err=%v", code, err)
	}
}
