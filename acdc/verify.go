package acdc

import (
	"fmt"

	"github.com/forestrie/go-keri/event"
	"github.com/forestrie/go-keri/saider"
	"github.com/forestrie/go-keri/tel"
)

// ResolveACDC looks up a previously issued ACDC by its SAID, for edge
// resolution. Callers typically back this with kvstore.
type ResolveACDC func(said string) (event.KED, bool)

// ResolveRegistry looks up a registry's TEL by its registry ID.
type ResolveRegistry func(registryID string) (*tel.TEL, bool)

// Verify recomputes both SAIDs, resolves "s" against schemas, validates
// the attribute data, and - when resolvers are given (nil skips the
// check, e.g. for an ACDC with no edges) - confirms every edge target
// resolves to an issued credential in its own registry TEL.
func Verify(doc event.KED, schemas *SchemaRegistry, resolveACDC ResolveACDC, resolveRegistry ResolveRegistry) error {
	ok, err := saider.VerifySaid(doc, event.FieldSaid)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTopSaid
	}

	attr, ok := doc["a"].(map[string]any)
	if !ok {
		return fmt.Errorf("%w: missing attribute block", ErrInvariantViolation)
	}
	attrOK, err := saider.VerifySaid(attr, "d")
	if err != nil {
		return err
	}
	if !attrOK {
		return ErrAttributeSaid
	}

	schemaSaid, _ := doc["s"].(string)
	if err := schemas.Validate(schemaSaid, attr); err != nil {
		return err
	}

	edges, _ := doc["e"].(map[string]any)
	if len(edges) == 0 || resolveACDC == nil || resolveRegistry == nil {
		return nil
	}
	for name, raw := range edges {
		if name == "d" {
			continue
		}
		edge, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		targetSaid, _ := edge["n"].(string)
		if targetSaid == "" {
			continue
		}
		if err := verifyEdgeTarget(targetSaid, resolveACDC, resolveRegistry); err != nil {
			return fmt.Errorf("edge %q: %w", name, err)
		}
	}
	return nil
}

func verifyEdgeTarget(targetSaid string, resolveACDC ResolveACDC, resolveRegistry ResolveRegistry) error {
	target, ok := resolveACDC(targetSaid)
	if !ok {
		return fmt.Errorf("%w: %s", ErrEdgeTargetMissing, targetSaid)
	}
	registryID, _ := target[event.FieldRegistry].(string)
	registry, ok := resolveRegistry(registryID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrEdgeRegistryMissing, registryID)
	}
	cred, ok := registry.Credential(targetSaid)
	if !ok || cred.Status != tel.StatusIssued {
		return fmt.Errorf("%w: %s", ErrEdgeNotIssued, targetSaid)
	}
	return nil
}
