package acdc

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/kaptinlin/jsonschema"

	"github.com/forestrie/go-keri/saider"
)

// SchemaRegistry holds JSON-Schema documents that are themselves
// saidified on their "$id" (spec §4.9), compiled once at registration
// time and kept available for attribute validation.
type SchemaRegistry struct {
	mu        sync.RWMutex
	compiler  *jsonschema.Compiler
	compiled  map[string]*jsonschema.Schema
	documents map[string]map[string]any
}

// NewSchemaRegistry returns an empty registry.
func NewSchemaRegistry() *SchemaRegistry {
	return &SchemaRegistry{
		compiler:  jsonschema.NewCompiler(),
		compiled:  make(map[string]*jsonschema.Schema),
		documents: make(map[string]map[string]any),
	}
}

// Register saidifies doc on "$id", compiles it, and returns the schema
// SAID callers reference from an ACDC's "s" field.
func (r *SchemaRegistry) Register(doc map[string]any) (string, error) {
	said, out, err := saider.Saidify(doc, "$id", "")
	if err != nil {
		return "", err
	}

	raw, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	schema, err := r.compiler.Compile(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSchemaMismatch, err)
	}

	r.mu.Lock()
	r.compiled[said] = schema
	r.documents[said] = out
	r.mu.Unlock()
	return said, nil
}

// Validate checks data against the schema registered under said.
func (r *SchemaRegistry) Validate(said string, data map[string]any) error {
	r.mu.RLock()
	schema, ok := r.compiled[said]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSchemaNotFound, said)
	}

	result := schema.Validate(data)
	if !result.IsValid() {
		return fmt.Errorf("%w: %s", ErrDataInvalid, said)
	}
	return nil
}

// Document returns the saidified schema document registered under said.
func (r *SchemaRegistry) Document(said string) (map[string]any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.documents[said]
	return d, ok
}
