// Package payload maps a registry value type tag to the concrete decoding and
// encoding rule for its data, bridging the wire layer (internal/format) and
// the text codec (internal/utf16le) to the public data model.
package payload

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/joshuapare/pregkit/internal/format"
	"github.com/joshuapare/pregkit/internal/utf16le"
	"github.com/joshuapare/pregkit/pkg/types"
)

// Decode reads size bytes from r and interprets them according to t.
// REG_NONE never has a legal payload and always fails with ErrInvalidType.
func Decode(r io.Reader, t types.RegType, size uint32) (types.Value, error) {
	switch t {
	case types.REG_SZ, types.REG_EXPAND_SZ, types.REG_LINK:
		b, err := format.ReadBytes(r, int64(size))
		if err != nil {
			return types.Value{}, eof(err)
		}
		s, err := utf16le.DecodeString(b)
		if err != nil {
			return types.Value{}, textErr(err)
		}
		return types.StringValue(s), nil

	case types.REG_MULTI_SZ, types.REG_RESOURCE_LIST,
		types.REG_FULL_RESOURCE_DESCRIPTOR, types.REG_RESOURCE_REQUIREMENTS_LIST:
		b, err := format.ReadBytes(r, int64(size))
		if err != nil {
			return types.Value{}, eof(err)
		}
		ss, err := utf16le.DecodeStringList(b)
		if err != nil {
			return types.Value{}, textErr(err)
		}
		return types.MultiStringValue(ss), nil

	case types.REG_BINARY:
		b, err := format.ReadBytes(r, int64(size))
		if err != nil {
			return types.Value{}, eof(err)
		}
		return types.BinaryValue(b), nil

	case types.REG_DWORD_LITTLE_ENDIAN:
		if size != format.DWORDSize {
			return types.Value{}, fmt.Errorf("%w: REG_DWORD size %d", types.ErrSizeMismatch, size)
		}
		n, err := format.ReadU32(r)
		if err != nil {
			return types.Value{}, eof(err)
		}
		return types.DwordValue(n), nil

	case types.REG_DWORD_BIG_ENDIAN:
		if size != format.DWORDSize {
			return types.Value{}, fmt.Errorf("%w: REG_DWORD_BIG_ENDIAN size %d", types.ErrSizeMismatch, size)
		}
		n, err := format.ReadU32BE(r)
		if err != nil {
			return types.Value{}, eof(err)
		}
		return types.DwordValue(n), nil

	case types.REG_QWORD_LITTLE_ENDIAN:
		if size != format.QWORDSize {
			return types.Value{}, fmt.Errorf("%w: REG_QWORD size %d", types.ErrSizeMismatch, size)
		}
		n, err := format.ReadU64(r)
		if err != nil {
			return types.Value{}, eof(err)
		}
		return types.QwordValue(n), nil

	case types.REG_QWORD_BIG_ENDIAN:
		if size != format.QWORDSize {
			return types.Value{}, fmt.Errorf("%w: REG_QWORD_BIG_ENDIAN size %d", types.ErrSizeMismatch, size)
		}
		n, err := format.ReadU64BE(r)
		if err != nil {
			return types.Value{}, eof(err)
		}
		return types.QwordValue(n), nil

	default:
		return types.Value{}, fmt.Errorf("%w: %s", types.ErrInvalidType, t)
	}
}

// Encode produces the payload bytes for v under type t. The returned length
// is exactly what a decode of the same type would require for its size field.
func Encode(t types.RegType, v types.Value) ([]byte, error) {
	switch t {
	case types.REG_SZ, types.REG_EXPAND_SZ, types.REG_LINK:
		s, ok := v.Str()
		if !ok {
			return nil, mismatch(t, v)
		}
		b, err := utf16le.EncodeString(s)
		if err != nil {
			return nil, textErr(err)
		}
		return b, nil

	case types.REG_MULTI_SZ, types.REG_RESOURCE_LIST,
		types.REG_FULL_RESOURCE_DESCRIPTOR, types.REG_RESOURCE_REQUIREMENTS_LIST:
		ss, ok := v.Strings()
		if !ok {
			return nil, mismatch(t, v)
		}
		b, err := utf16le.EncodeStringList(ss)
		if err != nil {
			return nil, textErr(err)
		}
		return b, nil

	case types.REG_BINARY:
		b, ok := v.Bytes()
		if !ok {
			return nil, mismatch(t, v)
		}
		return b, nil

	case types.REG_DWORD_LITTLE_ENDIAN:
		n, ok := v.Uint32()
		if !ok {
			return nil, mismatch(t, v)
		}
		var b [format.DWORDSize]byte
		binary.LittleEndian.PutUint32(b[:], n)
		return b[:], nil

	case types.REG_DWORD_BIG_ENDIAN:
		n, ok := v.Uint32()
		if !ok {
			return nil, mismatch(t, v)
		}
		var b [format.DWORDSize]byte
		binary.BigEndian.PutUint32(b[:], n)
		return b[:], nil

	case types.REG_QWORD_LITTLE_ENDIAN:
		n, ok := v.Uint64()
		if !ok {
			return nil, mismatch(t, v)
		}
		var b [format.QWORDSize]byte
		binary.LittleEndian.PutUint64(b[:], n)
		return b[:], nil

	case types.REG_QWORD_BIG_ENDIAN:
		n, ok := v.Uint64()
		if !ok {
			return nil, mismatch(t, v)
		}
		var b [format.QWORDSize]byte
		binary.BigEndian.PutUint64(b[:], n)
		return b[:], nil

	default:
		return nil, fmt.Errorf("%w: %s", types.ErrInvalidType, t)
	}
}

func mismatch(t types.RegType, v types.Value) error {
	return fmt.Errorf("%w: %s payload for %s", types.ErrTypeMismatch, v.Kind(), t)
}

// eof translates wire-layer truncation into the public EOF sentinel.
func eof(err error) error {
	if errors.Is(err, format.ErrTruncated) {
		return fmt.Errorf("%w: %v", types.ErrUnexpectedEOF, err)
	}
	return err
}

// textErr classifies text-codec failures: length problems are size errors,
// a missing NUL is a delimiter violation, everything else is a transcode
// failure.
func textErr(err error) error {
	switch {
	case errors.Is(err, utf16le.ErrEmpty), errors.Is(err, utf16le.ErrOddLength):
		return fmt.Errorf("%w: %v", types.ErrSizeMismatch, err)
	case errors.Is(err, utf16le.ErrMissingTerminator):
		return fmt.Errorf("%w: %v", types.ErrInvalidDelimiter, err)
	default:
		return fmt.Errorf("%w: %v", types.ErrTranscoding, err)
	}
}
