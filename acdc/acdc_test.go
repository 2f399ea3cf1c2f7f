package acdc

import (
	"testing"

	"github.com/forestrie/go-keri/event"
	"github.com/forestrie/go-keri/tel"
)

func registerNameSchema(t *testing.T) (*SchemaRegistry, string) {
	t.Helper()
	registry := NewSchemaRegistry()
	said, err := registry.Register(map[string]any{
		"$id":     nil,
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type":    "object",
		"properties": map[string]any{
			"d":    map[string]any{"type": "string"},
			"name": map[string]any{"type": "string"},
		},
		"required": []any{"name"},
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return registry, said
}

func TestBuildAndVerifyRoundTrip(t *testing.T) {
	schemas, schemaSaid := registerNameSchema(t)

	_, doc, err := Build(BuildParams{
		Issuer:     "EissuerAID",
		Registry:   "EregistryID",
		SchemaSaid: schemaSaid,
		Attributes: map[string]any{"name": "Alice"},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if err := Verify(doc, schemas, nil, nil); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestVerifyRejectsTamperedAttribute(t *testing.T) {
	schemas, schemaSaid := registerNameSchema(t)

	_, doc, err := Build(BuildParams{
		Issuer:     "EissuerAID",
		Registry:   "EregistryID",
		SchemaSaid: schemaSaid,
		Attributes: map[string]any{"name": "Alice"},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	attr := doc["a"].(map[string]any)
	attr["name"] = "Mallory"
	if err := Verify(doc, schemas, nil, nil); err == nil {
		t.Fatal("expected tampered attribute to fail SAID verification")
	}
}

func TestVerifyRejectsSchemaViolation(t *testing.T) {
	schemas, schemaSaid := registerNameSchema(t)

	_, doc, err := Build(BuildParams{
		Issuer:     "EissuerAID",
		Registry:   "EregistryID",
		SchemaSaid: schemaSaid,
		Attributes: map[string]any{}, // missing required "name"
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := Verify(doc, schemas, nil, nil); err == nil {
		t.Fatal("expected schema validation failure")
	}
}

func TestVerifyEdgeToIssuedCredential(t *testing.T) {
	schemas, schemaSaid := registerNameSchema(t)

	_, vcpKed, regState, err := tel.RegistryInception(tel.RegistryInceptionParams{Issuer: "EissuerAID"})
	if err != nil {
		t.Fatalf("RegistryInception: %v", err)
	}
	registry := tel.New()
	if err := tel.Accept(registry, vcpKed, true); err != nil {
		t.Fatalf("accept vcp: %v", err)
	}

	_, targetDoc, err := Build(BuildParams{
		Issuer:     "EissuerAID",
		Registry:   regState.RegistryID,
		SchemaSaid: schemaSaid,
		Attributes: map[string]any{"name": "Target"},
	})
	if err != nil {
		t.Fatalf("Build target: %v", err)
	}
	targetSaid := targetDoc[event.FieldSaid].(string)

	_, issKed, err := tel.Issuance(registry.State, targetSaid)
	if err != nil {
		t.Fatalf("Issuance: %v", err)
	}
	if err := tel.Accept(registry, issKed, false); err != nil {
		t.Fatalf("accept iss: %v", err)
	}

	_, doc, err := Build(BuildParams{
		Issuer:     "EissuerAID",
		Registry:   regState.RegistryID,
		SchemaSaid: schemaSaid,
		Attributes: map[string]any{"name": "Holder"},
		Edges: map[string]any{
			"source": map[string]any{"n": targetSaid},
		},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	resolveACDC := func(said string) (event.KED, bool) {
		if said == targetSaid {
			return targetDoc, true
		}
		return nil, false
	}
	resolveRegistry := func(registryID string) (*tel.TEL, bool) {
		if registryID == registry.State.RegistryID {
			return registry, true
		}
		return nil, false
	}

	if err := Verify(doc, schemas, resolveACDC, resolveRegistry); err != nil {
		t.Fatalf("Verify with edge: %v", err)
	}
}
