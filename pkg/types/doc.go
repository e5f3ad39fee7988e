// Package types defines the data model for POL Registry Policy ("PReg")
// files: registry value types, instruction payloads, instructions, and whole
// policy documents, plus the typed errors the codec reports.
//
// This package only exposes values and core types. The codec itself lives in
// github.com/joshuapare/pregkit/pkg/preg.
//
// Design goals:
//   - Value types with structural equality; no shared or aliased ownership.
//   - Invalid payload/type pairings checked once by the payload codec.
//   - Paranoid bounds checking; never panic on malformed input.
//   - Typed errors with stable categories (header/delimiter/size/...).
//
// This package has no dependencies beyond the standard library.
package types
