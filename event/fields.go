package event

// KED is an event dictionary: the mapping from short keys to values that
// is serialized as canonical JSON and wrapped in a CESR version frame
// (spec §3.2).
type KED = map[string]any

// Type enumerates the event types carried in the "t" field.
type Type string

const (
	Icp Type = "icp" // inception
	Rot Type = "rot" // rotation
	Ixn Type = "ixn" // interaction
	Dip Type = "dip" // delegated inception
	Drt Type = "drt" // delegated rotation
	Vcp Type = "vcp" // registry inception (TEL)
	Iss Type = "iss" // credential issuance (TEL)
	Rev Type = "rev" // credential revocation (TEL)
	Rct Type = "rct" // receipt
)

// Common field keys, spec §3.2.
const (
	FieldVersion  = "v"
	FieldType     = "t"
	FieldSaid     = "d"
	FieldSubject  = "i"
	FieldSeq      = "s"
	FieldPrior    = "p"
	FieldKT       = "kt"
	FieldK        = "k"
	FieldNT       = "nt"
	FieldN        = "n"
	FieldBT       = "bt"
	FieldB        = "b"
	FieldConfig   = "c"
	FieldAnchors  = "a"
	FieldDelegator = "di"
	FieldRegistry  = "ri"
	FieldIssuer    = "ii"
	FieldParent    = "pr"
)

// IndexedSig is a signature on an event paired with the position of the
// signing key within the event's "k" (spec §4.10).
type IndexedSig struct {
	Idx int
	Sig []byte
}

// Indices extracts the idx values from a set of indexed signatures, in the
// order given (duplicates included; callers that need a set should
// de-duplicate, e.g. via tholder.Satisfied which already does).
func Indices(sigs []IndexedSig) []int {
	out := make([]int, len(sigs))
	for i, s := range sigs {
		out[i] = s.Idx
	}
	return out
}

// Seal is an anchor seal, a {i, s, d} reference embedded in one event that
// binds another event's acceptance to it (Glossary).
type Seal struct {
	I string `json:"i"`
	S string `json:"s"`
	D string `json:"d"`
}

// ToMap renders a Seal as the any-tree shape canon/event expect.
func (s Seal) ToMap() map[string]any {
	return map[string]any{"i": s.I, "s": s.S, "d": s.D}
}

// SealFromMap recovers a Seal from an untyped anchor entry.
func SealFromMap(m map[string]any) (Seal, bool) {
	i, _ := m["i"].(string)
	s, _ := m["s"].(string)
	d, _ := m["d"].(string)
	if i == "" || s == "" || d == "" {
		return Seal{}, false
	}
	return Seal{I: i, S: s, D: d}, true
}
