package tholder

import "testing"

// TestNumericThresholdS3 mirrors spec §8 S3: a 2-of-3 threshold.
func TestNumericThresholdS3(t *testing.T) {
	th, err := Parse("2")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if th.Satisfied([]int{0}) {
		t.Fatal("single signer should not satisfy 2-of-3")
	}
	if !th.Satisfied([]int{0, 2}) {
		t.Fatal("two signers should satisfy 2-of-3")
	}
}

// TestWeightedThresholdS4 mirrors spec §8 S4.
func TestWeightedThresholdS4(t *testing.T) {
	th, err := Parse([]string{"1/2", "1/2", "1/2"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !th.Satisfied([]int{0, 1}) {
		t.Fatal("1/2 + 1/2 should satisfy the threshold")
	}
	if th.Satisfied([]int{0}) {
		t.Fatal("1/2 alone should not satisfy the threshold")
	}
}

func TestWeightedThresholdThreeWay(t *testing.T) {
	th, err := Parse([]string{"1/3", "1/3", "1/3"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if th.Satisfied([]int{0, 1}) {
		t.Fatal("2/3 should not satisfy a sum-to-1 threshold")
	}
	if !th.Satisfied([]int{0, 1, 2}) {
		t.Fatal("3/3 should satisfy")
	}
}

func TestDuplicateIndicesIdempotent(t *testing.T) {
	th, _ := Parse("2")
	if th.Satisfied([]int{0, 0, 0}) {
		t.Fatal("duplicate indices must not count multiple times")
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	th, _ := Parse("3")
	if th.Serialize() != "3" {
		t.Fatalf("got %v", th.Serialize())
	}
	wth, _ := Parse([]string{"1/2", "1/2"})
	ser, ok := wth.Serialize().([]string)
	if !ok || len(ser) != 2 || ser[0] != "1/2" {
		t.Fatalf("got %v", wth.Serialize())
	}
}

func TestNonTransferable(t *testing.T) {
	th, _ := Parse("0")
	if !th.IsNonTransferable() {
		t.Fatal("expected non-transferable")
	}
}

func TestInvalidForms(t *testing.T) {
	if _, err := Parse("not-a-number"); err == nil {
		t.Fatal("expected error")
	}
	if _, err := Parse([]string{}); err == nil {
		t.Fatal("expected error for empty weights")
	}
	if _, err := Parse(3.14); err == nil {
		t.Fatal("expected error for unsupported type")
	}
}
