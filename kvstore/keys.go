package kvstore

import "fmt"

// Key layout, spec §6.3. Every helper returns the exact string a Store
// implementation persists under.

// KELKey addresses a framed KEL event.
func KELKey(aid string, seqHex string) string {
	return fmt.Sprintf("kel/%s/%s", aid, seqHex)
}

// TELKey addresses a framed TEL event.
func TELKey(registryID string, seqHex string) string {
	return fmt.Sprintf("tel/%s/%s", registryID, seqHex)
}

// ACDCKey addresses a credential document by its SAID.
func ACDCKey(said string) string {
	return fmt.Sprintf("acdc/%s", said)
}

// SigKey addresses one indexed signature on an event.
func SigKey(said string, idx int) string {
	return fmt.Sprintf("sig/%s/%d", said, idx)
}

// EscrowKey addresses an escrowed event within a pipeline stage.
func EscrowKey(stage string, key string) string {
	return fmt.Sprintf("escrow/%s/%s", stage, key)
}

// AliasKey addresses a human-assigned alias within a scope (e.g. "aid",
// "registry").
func AliasKey(scope string, name string) string {
	return fmt.Sprintf("alias/%s/%s", scope, name)
}
