// Package matter implements CESR Matter primitives.
//
// A Matter is a (code, raw) pair. Encoding places the code as a base64url
// prefix over the lead-padded payload; decoding inverts this. See spec
// §4.1 for the exact algorithm and its failure modes.
package matter
