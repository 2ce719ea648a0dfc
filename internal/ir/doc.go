// Package ir defines the canonical value model used to identify solver
// problems and outcomes.
//
// Values are restricted to strings, 64-bit integers, booleans, arrays and
// objects. Floats and null are rejected: a count carried in a float64 loses
// precision above 2^53.
//
// # Canonical JSON
//
// MarshalCanonical produces RFC 8785 style output:
//   - object keys sorted by UTF-16 code units
//   - strings NFC normalized, no HTML escaping
//   - no insignificant whitespace
//
// The canonical bytes feed ProblemID and OutcomeID, so the same problem maps
// to the same ID whether it came from CLI flags or a suite file.
package ir
