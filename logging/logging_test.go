package logging

import "testing"

func TestNop_DoesNotPanic(t *testing.T) {
	l := Nop()
	l.Info("ignored")
}

func TestNewDevelopment_Builds(t *testing.T) {
	if _, err := NewDevelopment(); err != nil {
		t.Fatalf("NewDevelopment: %v", err)
	}
}
