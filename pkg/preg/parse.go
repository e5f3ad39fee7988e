package preg

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/joshuapare/pregkit/internal/format"
	"github.com/joshuapare/pregkit/internal/payload"
	"github.com/joshuapare/pregkit/pkg/types"
)

// Parse consumes the complete POL byte stream from r: an 8-byte header
// followed by zero or more bracketed instructions. Any grammar violation is
// fatal for the whole parse; no partial document is ever returned.
func Parse(r io.Reader) (*types.PolicyFile, error) {
	if err := parseHeader(r); err != nil {
		return nil, err
	}

	body := &types.PolicyBody{Instructions: []types.Instruction{}}
	for {
		u, ok, err := nextUnit(r)
		if err != nil {
			return nil, err
		}
		if !ok {
			break // clean end of data at an instruction boundary
		}
		if u != format.UnitOpenBracket {
			return nil, fmt.Errorf("%w: expected '[', got %#04x", types.ErrInvalidDelimiter, u)
		}
		ins, err := parseInstruction(r)
		if err != nil {
			return nil, err
		}
		body.Instructions = append(body.Instructions, ins)
	}
	return &types.PolicyFile{Body: body}, nil
}

// ParseBytes parses an in-memory POL image.
func ParseBytes(b []byte) (*types.PolicyFile, error) {
	return Parse(bytes.NewReader(b))
}

// parseHeader requires the fixed "PReg" signature and version 1. A short or
// mismatching header aborts with ErrInvalidHeader; nothing is recovered.
func parseHeader(r io.Reader) error {
	var hdr [format.HeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return fmt.Errorf("%w: short header", types.ErrInvalidHeader)
	}
	if !bytes.Equal(hdr[:4], format.PRegSignature) {
		return fmt.Errorf("%w: bad signature % x", types.ErrInvalidHeader, hdr[:4])
	}
	if version := binary.LittleEndian.Uint32(hdr[4:]); version != format.PRegVersion {
		return fmt.Errorf("%w: unsupported version %d", types.ErrInvalidHeader, version)
	}
	return nil
}

// parseInstruction matches `KeyPath ';' Value ';' Type ';' Size ';' Data ']'`
// (the opening '[' has already been consumed by the caller).
func parseInstruction(r io.Reader) (types.Instruction, error) {
	var ins types.Instruction
	var err error

	if ins.KeyPath, err = parseKeyPath(r); err != nil {
		return types.Instruction{}, err
	}
	if err = expectUnit(r, format.UnitSemicolon); err != nil {
		return types.Instruction{}, err
	}
	if ins.ValueName, err = parseValueName(r); err != nil {
		return types.Instruction{}, err
	}
	if err = expectUnit(r, format.UnitSemicolon); err != nil {
		return types.Instruction{}, err
	}
	if ins.Type, err = parseType(r); err != nil {
		return types.Instruction{}, err
	}
	if err = expectUnit(r, format.UnitSemicolon); err != nil {
		return types.Instruction{}, err
	}
	size, err := readU32(r)
	if err != nil {
		return types.Instruction{}, err
	}
	if err = expectUnit(r, format.UnitSemicolon); err != nil {
		return types.Instruction{}, err
	}
	if ins.Data, err = payload.Decode(r, ins.Type, size); err != nil {
		return types.Instruction{}, err
	}
	if err = expectUnit(r, format.UnitCloseBracket); err != nil {
		return types.Instruction{}, err
	}
	return ins, nil
}

// parseKeyPath reads backslash-joined segments of printable-ASCII units up to
// the terminating NUL. Segments must be non-empty; the backslash itself never
// appears inside a segment.
func parseKeyPath(r io.Reader) (string, error) {
	var sb strings.Builder
	segLen := 0
	for {
		u, err := readUnit(r)
		if err != nil {
			return "", err
		}
		switch {
		case u == format.UnitNul:
			if segLen == 0 {
				return "", fmt.Errorf("%w: key path ends on a delimiter", types.ErrEmptyKeySegment)
			}
			return sb.String(), nil
		case u == format.UnitBackslash:
			if segLen == 0 {
				return "", fmt.Errorf("%w: consecutive or leading '\\'", types.ErrEmptyKeySegment)
			}
			sb.WriteByte('\\')
			segLen = 0
		case format.IsKeyChar(u):
			sb.WriteByte(byte(u))
			segLen++
		default:
			return "", fmt.Errorf("%w: %#04x", types.ErrInvalidKeyCharacter, u)
		}
	}
}

// parseValueName reads up to MaxValueNameLen printable-ASCII units terminated
// by NUL. The terminator is required exactly at the cap; one more data unit is
// ErrValueTooLong.
func parseValueName(r io.Reader) (string, error) {
	var sb strings.Builder
	for {
		u, err := readUnit(r)
		if err != nil {
			return "", err
		}
		if u == format.UnitNul {
			return sb.String(), nil
		}
		if !format.IsPrintable(u) {
			return "", fmt.Errorf("%w: %#04x", types.ErrInvalidValueCharacter, u)
		}
		if sb.Len() == format.MaxValueNameLen {
			return "", fmt.Errorf("%w: more than %d characters", types.ErrValueTooLong, format.MaxValueNameLen)
		}
		sb.WriteByte(byte(u))
	}
}

// parseType reads the 32-bit type tag and validates it against the closed
// set. REG_NONE has no legal payload, so it fails here rather than at
// payload time.
func parseType(r io.Reader) (types.RegType, error) {
	n, err := readU32(r)
	if err != nil {
		return 0, err
	}
	t := types.RegType(n)
	if !t.Valid() {
		return 0, fmt.Errorf("%w: tag %d", types.ErrInvalidType, n)
	}
	return t, nil
}

// nextUnit reads one code unit, reporting ok=false on a clean end of data.
// A single trailing byte is a truncated unit, not a clean end.
func nextUnit(r io.Reader) (uint16, bool, error) {
	var b [format.CodeUnitSize]byte
	_, err := io.ReadFull(r, b[:])
	if err == io.EOF {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%w: torn code unit", types.ErrUnexpectedEOF)
	}
	return binary.LittleEndian.Uint16(b[:]), true, nil
}

// readUnit reads one code unit mid-instruction, where end of data is fatal.
func readUnit(r io.Reader) (uint16, error) {
	u, err := format.ReadU16(r)
	if err != nil {
		return 0, eof(err)
	}
	return u, nil
}

func readU32(r io.Reader) (uint32, error) {
	n, err := format.ReadU32(r)
	if err != nil {
		return 0, eof(err)
	}
	return n, nil
}

// expectUnit consumes one code unit and requires it to equal want.
func expectUnit(r io.Reader, want uint16) error {
	u, err := readUnit(r)
	if err != nil {
		return err
	}
	if u != want {
		return fmt.Errorf("%w: expected %#04x, got %#04x", types.ErrInvalidDelimiter, want, u)
	}
	return nil
}

func eof(err error) error {
	if errors.Is(err, format.ErrTruncated) {
		return fmt.Errorf("%w: %v", types.ErrUnexpectedEOF, err)
	}
	return err
}
