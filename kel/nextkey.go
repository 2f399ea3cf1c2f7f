package kel

import "github.com/forestrie/go-keri/diger"

// NextKeyDigest computes the commitment spec §3.3 describes: a digest over
// the CESR text of a verfer that is expected to appear in a future
// rotation's "k".
func NextKeyDigest(verferQB64 string, code string) (string, error) {
	if code == "" {
		code = diger.DefaultCode
	}
	d, err := diger.Compute([]byte(verferQB64), code)
	if err != nil {
		return "", err
	}
	return d.QB64()
}

// NextKeyDigests computes NextKeyDigest for each verfer in order.
func NextKeyDigests(verfersQB64 []string, code string) ([]string, error) {
	out := make([]string, len(verfersQB64))
	for i, v := range verfersQB64 {
		d, err := NextKeyDigest(v, code)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

// checkNextCommitment verifies, position-for-position (not set-wise, per
// spec §3.3), that the new keys k hash to the prior event's next-key
// digests n.
func checkNextCommitment(priorN []string, newK []string) error {
	if len(priorN) != len(newK) {
		return ErrNextKeyDigestMismatch
	}
	for j, verfer := range newK {
		got, err := NextKeyDigest(verfer, diger.DefaultCode)
		if err != nil {
			return err
		}
		if got != priorN[j] {
			return ErrNextKeyDigestMismatch
		}
	}
	return nil
}
