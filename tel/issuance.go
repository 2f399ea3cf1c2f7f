package tel

import (
	"fmt"

	"github.com/forestrie/go-keri/event"
)

// Issuance builds an iss event marking credentialSaid as issued in
// registry's TEL. It is the credential's own projection's first event
// (s = "0"); there is no "p" since nothing precedes it.
func Issuance(registry RegistryState, credentialSaid string) (text []byte, ked event.KED, err error) {
	if credentialSaid == "" {
		return nil, nil, fmt.Errorf("%w: issuance requires a credential SAID", ErrInvariantViolation)
	}
	ked = event.KED{
		event.FieldVersion:  nil,
		event.FieldType:     string(event.Iss),
		event.FieldSaid:     nil,
		event.FieldSubject:  credentialSaid,
		event.FieldSeq:      "0",
		event.FieldRegistry: registry.RegistryID,
	}
	text, _, ked, err = event.Serialize(ked)
	return text, ked, err
}

// Revocation builds a rev event for a credential already tracked as
// issued, chaining "p" to its prior TEL event and incrementing its own
// sequence (spec §4.8: rev MUST reference the prior iss of the same
// credential).
func Revocation(registry RegistryState, prior CredentialState) (text []byte, ked event.KED, err error) {
	if prior.Status == StatusRevoked {
		return nil, nil, fmt.Errorf("%w: %s", ErrAlreadyRevoked, prior.Said)
	}
	if prior.Status != StatusIssued {
		return nil, nil, fmt.Errorf("%w: credential %s is not in issued status", ErrRevokeBeforeIssue, prior.Said)
	}
	ked = event.KED{
		event.FieldVersion:  nil,
		event.FieldType:     string(event.Rev),
		event.FieldSaid:     nil,
		event.FieldSubject:  prior.Said,
		event.FieldSeq:      fmt.Sprintf("%x", prior.Seq+1),
		event.FieldPrior:    prior.LastSaid,
		event.FieldRegistry: registry.RegistryID,
	}
	text, _, ked, err = event.Serialize(ked)
	return text, ked, err
}
