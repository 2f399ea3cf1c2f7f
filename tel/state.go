// Package tel implements the transaction event log engine of spec §4.8:
// registry inception (vcp), credential issuance and revocation (iss/rev),
// and nested registries anchored by a parent registry's ixn events. It
// follows the same pure-builder-plus-centralized-Accept architecture as
// package kel.
package tel

// CredentialStatus is the per-credential state tracked within a registry.
type CredentialStatus string

const (
	StatusIssued  CredentialStatus = "issued"
	StatusRevoked CredentialStatus = "revoked"
)

// CredentialState is the current projection for one credential SAID within
// a registry's TEL.
type CredentialState struct {
	Said     string
	Status   CredentialStatus
	Seq      int
	LastSaid string
}

// RegistryState is the key state for one TEL registry (spec §4.8).
type RegistryState struct {
	RegistryID string
	Issuer     string
	Backers    []string
	BackerT    int
	Parent     string // "" unless this registry was anchored by a parent's ixn
	Seq        int    // registry's own event sequence (vcp is 0, each ixn +1)
	LastSaid   string
}

// TEL is the append-only sequence of events for one registry, plus its
// derived RegistryState and the CredentialState of everything it has
// issued or revoked.
type TEL struct {
	Events      []map[string]any
	State       RegistryState
	Credentials map[string]*CredentialState
}

// New returns an empty TEL ready to accept a registry inception event.
func New() *TEL {
	return &TEL{Credentials: make(map[string]*CredentialState)}
}

// Credential returns the tracked state for said, if any.
func (t *TEL) Credential(said string) (CredentialState, bool) {
	c, ok := t.Credentials[said]
	if !ok {
		return CredentialState{}, false
	}
	return *c, true
}
