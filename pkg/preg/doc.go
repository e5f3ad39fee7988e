// Package preg implements the codec for Microsoft POL Registry Policy files:
// a binary container holding a sequence of registry-edit instructions inside
// a UTF-16LE bracketed grammar.
//
// The wire format is an 8-byte header (signature "PReg", version 1) followed
// by zero or more instructions:
//
//	'[' KeyPath ';' Value ';' Type ';' Size ';' Data ']'
//
// where every literal delimiter is one UTF-16LE code unit, KeyPath is a
// backslash-joined sequence of non-empty printable-ASCII segments terminated
// by NUL, Value is at most 259 printable-ASCII characters terminated by NUL,
// Type and Size are little-endian uint32 fields, and Data is Size bytes
// interpreted per Type.
//
// Parse and Write are independent pure transformations over caller-supplied
// byte sources and sinks. The parser is a strict one-shot validator: a
// corrupt file is entirely untrusted, so every failure aborts the whole parse
// with a typed error from pkg/types and no partial document. Serialization
// likewise aborts on the first sink failure.
//
// Both directions round-trip exactly: for any document built from values that
// respect the grammar's constraints, Parse(Write(doc)) is structurally equal
// to doc, and re-serializing reproduces the input bytes.
package preg
