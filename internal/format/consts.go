// Package format houses the low-level wire layer of the POL Registry Policy
// file format. The goal is to keep the byte-order plumbing focused,
// allocation-free where possible, and independent from the public API so
// higher-level packages can orchestrate the data in a more ergonomic form.
package format

var (
	// PRegSignature is the four-byte signature at the start of every POL file.
	// Layout:
	//   0x00  'P' 'R' 'e' 'g'
	PRegSignature = []byte{'P', 'R', 'e', 'g'}
)

const (
	// PRegVersion is the only file version this codec accepts, stored as a
	// little-endian uint32 directly after the signature.
	PRegVersion = 1

	// HeaderSize is the size of the POL header in bytes: 4-byte signature
	// followed by the 4-byte version.
	HeaderSize = 8

	// CodeUnitSize is the width of one UTF-16LE code unit.
	CodeUnitSize = 2

	// DWORDSize and QWORDSize are the payload widths of the fixed-size
	// registry value types.
	DWORDSize = 4
	QWORDSize = 8

	// MaxValueNameLen is the maximum number of characters in a value name.
	// Windows caps registry value names at 259 characters plus terminator.
	MaxValueNameLen = 259
)

// Code-unit values of the bracketed-grammar delimiters. Every delimiter is
// encoded on the wire as a full UTF-16LE unit (ASCII code point, high byte
// zero), never as a single byte.
const (
	UnitNul          = 0x0000
	UnitSemicolon    = 0x003B // ';'
	UnitOpenBracket  = 0x005B // '['
	UnitBackslash    = 0x005C // '\'
	UnitCloseBracket = 0x005D // ']'
)

// Printable-ASCII bounds for key path and value name characters
// (space through tilde inclusive).
const (
	UnitPrintableMin = 0x0020
	UnitPrintableMax = 0x007E
)

// IsPrintable reports whether u is a printable-ASCII code unit.
func IsPrintable(u uint16) bool {
	return u >= UnitPrintableMin && u <= UnitPrintableMax
}

// IsKeyChar reports whether u may appear inside a key path segment:
// printable ASCII excluding the backslash delimiter.
func IsKeyChar(u uint16) bool {
	return IsPrintable(u) && u != UnitBackslash
}
