// Package acdc implements the Authentic Chained Data Container
// builder/verifier of spec §4.9: a saidified JSON document chaining an
// issuer, a registry, a schema, and a saidified attribute block, with
// optional edges to other ACDCs and rules.
package acdc

import (
	"fmt"

	"github.com/forestrie/go-keri/event"
	"github.com/forestrie/go-keri/saider"
)

// BuildParams composes one ACDC (spec §3.4).
type BuildParams struct {
	Issuer     string
	Registry   string
	SchemaSaid string
	Attributes map[string]any
	Edges      map[string]any // nil if the credential carries none
	Rules      map[string]any // nil if the credential carries none
}

// Build saidifies the attribute block, then composes and saidifies the
// top-level document, reusing event.Serialize for the "v"/"d" framing so
// an ACDC's SAID is computed exactly the way a KEL/TEL event's is.
func Build(p BuildParams) (text []byte, doc event.KED, err error) {
	if p.Issuer == "" || p.Registry == "" || p.SchemaSaid == "" {
		return nil, nil, fmt.Errorf("%w: issuer, registry and schema are required", ErrInvariantViolation)
	}

	attrs := p.Attributes
	if attrs == nil {
		attrs = map[string]any{}
	}
	attrWork := make(map[string]any, len(attrs)+1)
	for k, v := range attrs {
		attrWork[k] = v
	}
	_, attrOut, err := saider.Saidify(attrWork, "d", "")
	if err != nil {
		return nil, nil, err
	}

	ked := event.KED{
		event.FieldVersion: nil,
		event.FieldSaid:    nil,
		event.FieldSubject: p.Issuer,
		event.FieldRegistry: p.Registry,
		"s":                p.SchemaSaid,
		"a":                attrOut,
	}
	if p.Edges != nil {
		ked["e"] = p.Edges
	}
	if p.Rules != nil {
		ked["r"] = p.Rules
	}

	text, _, doc, err = event.Serialize(ked)
	if err != nil {
		return nil, nil, err
	}
	return text, doc, nil
}
