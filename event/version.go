package event

import (
	"fmt"
	"strconv"
)

// VersionProtocol and VersionKind are the fixed protocol/serialization tags
// this module supports; spec §3.2 names KERI10JSON specifically.
const (
	VersionProtocol = "KERI10"
	VersionKind     = "JSON"
)

// placeholderVersion is "KERI10JSON000000_": 6 + 4 + 6 + 1 = 17 characters.
const placeholderVersion = VersionProtocol + VersionKind + "000000_"

// FormatVersion renders the version string for a given framed size.
func FormatVersion(size int) string {
	return fmt.Sprintf("%s%s%06x_", VersionProtocol, VersionKind, size)
}

// ParseVersion extracts the declared size from a version string of the
// form "KERI10JSON{size_hex6}_".
func ParseVersion(v string) (size int, err error) {
	prefix := VersionProtocol + VersionKind
	if len(v) != len(prefix)+7 || v[:len(prefix)] != prefix || v[len(v)-1] != '_' {
		return 0, fmt.Errorf("%w: malformed version string %q", ErrNonCanonicalJson, v)
	}
	hexPart := v[len(prefix) : len(v)-1]
	n, err := strconv.ParseInt(hexPart, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad size field in version string %q: %w", ErrNonCanonicalJson, v, err)
	}
	return int(n), nil
}
