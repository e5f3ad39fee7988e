// Package utf16le implements the strict UTF-16LE <-> UTF-8 transcoding the
// POL wire format depends on: single NUL-terminated strings and NUL-delimited
// string lists.
//
// Conversion goes through golang.org/x/text, but its UTF-16 decoder
// substitutes U+FFFD for ill-formed input instead of failing, so every decode
// first runs a surrogate-pairing scan and rejects ill-formed sequences hard.
// Codecs are constructed per call; nothing in this package is shared state.
package utf16le

import (
	"encoding/binary"
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	// ErrEmpty indicates a zero-length buffer where at least a terminator
	// was required.
	ErrEmpty = errors.New("utf16le: empty buffer")
	// ErrOddLength indicates a byte length that is not a whole number of
	// code units.
	ErrOddLength = errors.New("utf16le: odd byte length")
	// ErrMissingTerminator indicates the final code unit was not NUL.
	ErrMissingTerminator = errors.New("utf16le: missing NUL terminator")
	// ErrInvalidUTF16 indicates an unpaired surrogate in the input.
	ErrInvalidUTF16 = errors.New("utf16le: ill-formed UTF-16 sequence")
	// ErrInvalidUTF8 indicates the string to encode is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("utf16le: invalid UTF-8 string")
)

const unitSize = 2

// DecodeString interprets b as UTF-16LE code units ending in a mandatory
// single NUL unit and returns the transcoded UTF-8 string. The terminator is
// counted inside len(b) but is not part of the result; a terminator-only
// buffer yields "".
func DecodeString(b []byte) (string, error) {
	if len(b) == 0 {
		return "", ErrEmpty
	}
	if len(b)%unitSize != 0 {
		return "", ErrOddLength
	}
	if b[len(b)-2] != 0 || b[len(b)-1] != 0 {
		return "", ErrMissingTerminator
	}
	return decodeUnits(b[:len(b)-unitSize])
}

// EncodeString transcodes s to UTF-16LE and appends one NUL unit. The result
// is (codeUnitCount+1)*2 bytes long.
func EncodeString(s string) ([]byte, error) {
	if !utf8.ValidString(s) {
		return nil, ErrInvalidUTF8
	}
	enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	out, _, err := transform.Bytes(enc, []byte(s))
	if err != nil {
		return nil, ErrInvalidUTF8
	}
	return append(out, 0, 0), nil
}

// DecodeStringList splits the UTF-16LE code-unit stream on NUL units. The
// final unit must be NUL; every maximal non-empty run between NULs becomes
// one string, in order. A terminator-only buffer yields an empty list.
func DecodeStringList(b []byte) ([]string, error) {
	if len(b) == 0 {
		return nil, ErrEmpty
	}
	if len(b)%unitSize != 0 {
		return nil, ErrOddLength
	}
	if b[len(b)-2] != 0 || b[len(b)-1] != 0 {
		return nil, ErrMissingTerminator
	}

	out := []string{}
	start := 0
	for i := 0; i < len(b); i += unitSize {
		if b[i] == 0 && b[i+1] == 0 {
			if i > start {
				s, err := decodeUnits(b[start:i])
				if err != nil {
					return nil, err
				}
				out = append(out, s)
			}
			start = i + unitSize
		}
	}
	return out, nil
}

// EncodeStringList encodes each string in order, each self-terminated by its
// own NUL unit, and returns the concatenation. Fails on the first element
// that does not encode.
func EncodeStringList(ss []string) ([]byte, error) {
	var out []byte
	for _, s := range ss {
		enc, err := EncodeString(s)
		if err != nil {
			return nil, err
		}
		out = append(out, enc...)
	}
	return out, nil
}

// decodeUnits converts a terminator-free run of code units to UTF-8,
// rejecting unpaired surrogates before handing off to the x/text decoder.
func decodeUnits(b []byte) (string, error) {
	if len(b) == 0 {
		return "", nil
	}
	if err := validateUnits(b); err != nil {
		return "", err
	}
	dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	out, _, err := transform.Bytes(dec, b)
	if err != nil {
		return "", ErrInvalidUTF16
	}
	return string(out), nil
}

// validateUnits scans for surrogate pairing violations. The x/text decoder
// would silently replace these with U+FFFD, which must be a hard error here.
func validateUnits(b []byte) error {
	for i := 0; i < len(b); i += unitSize {
		u := binary.LittleEndian.Uint16(b[i:])
		switch {
		case u >= 0xD800 && u <= 0xDBFF:
			// High surrogate: the next unit must be a low surrogate.
			if i+2*unitSize > len(b) {
				return ErrInvalidUTF16
			}
			next := binary.LittleEndian.Uint16(b[i+unitSize:])
			if next < 0xDC00 || next > 0xDFFF {
				return ErrInvalidUTF16
			}
			i += unitSize
		case u >= 0xDC00 && u <= 0xDFFF:
			// Low surrogate with no preceding high surrogate.
			return ErrInvalidUTF16
		}
	}
	return nil
}
