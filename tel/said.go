package tel

import (
	"strings"

	"github.com/forestrie/go-keri/canon"
	"github.com/forestrie/go-keri/codex"
	"github.com/forestrie/go-keri/diger"
	"github.com/forestrie/go-keri/event"
)

// saidWidth returns a "#"-filled placeholder the width of the default
// digest's CESR text, for use as a same-length stand-in so that
// substituting the real SAID afterwards changes no byte length and needs
// no re-hashing (the same trick kel.Inception uses for self-addressing
// AIDs, spec §4.4).
func saidWidth() (string, error) {
	s, err := codex.Lookup(diger.DefaultCode)
	if err != nil {
		return "", err
	}
	return strings.Repeat("#", s.FS), nil
}

// reframe re-marshals ked canonically after a same-width field substitution
// (e.g. writing the registry ID into "i" once its SAID is known).
func reframe(ked event.KED) ([]byte, error) {
	return canon.MarshalMap(ked)
}
