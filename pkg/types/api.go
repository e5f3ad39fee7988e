package types

import (
	"fmt"
	"strconv"
	"strings"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindHeader    ErrKind = iota // bad "PReg" signature or version
	ErrKindEOF                      // stream ended inside a structure
	ErrKindDelimiter                // expected '[', ';', ']' or NUL not found
	ErrKindKeyPath                  // key path grammar violation
	ErrKindValue                    // value name grammar violation
	ErrKindType                     // type tag outside the closed set
	ErrKindSize                     // declared size incompatible with the type
	ErrKindTranscode                // UTF-16LE <-> UTF-8 conversion failure
	ErrKindWrite                    // sink rejected a write during serialization
)

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Sentinels returned by the codec. All parse and write failures wrap exactly
// one of these, so callers match with errors.Is.
var (
	// ErrInvalidHeader indicates the first 8 bytes are not a valid PReg header.
	ErrInvalidHeader = &Error{Kind: ErrKindHeader, Msg: "invalid POL header"}
	// ErrUnexpectedEOF indicates the stream ended inside an instruction.
	ErrUnexpectedEOF = &Error{Kind: ErrKindEOF, Msg: "unexpected end of data"}
	// ErrInvalidDelimiter indicates a required '[', ';', ']' or NUL was missing.
	ErrInvalidDelimiter = &Error{Kind: ErrKindDelimiter, Msg: "invalid delimiter"}
	// ErrEmptyKeySegment indicates a zero-length key path segment.
	ErrEmptyKeySegment = &Error{Kind: ErrKindKeyPath, Msg: "empty key path segment"}
	// ErrInvalidKeyCharacter indicates a key path unit outside printable ASCII.
	ErrInvalidKeyCharacter = &Error{Kind: ErrKindKeyPath, Msg: "invalid key path character"}
	// ErrValueTooLong indicates a value name longer than 259 characters.
	ErrValueTooLong = &Error{Kind: ErrKindValue, Msg: "value name too long"}
	// ErrInvalidValueCharacter indicates a value name unit outside printable ASCII.
	ErrInvalidValueCharacter = &Error{Kind: ErrKindValue, Msg: "invalid value name character"}
	// ErrInvalidType indicates a type tag outside the closed set (REG_NONE included).
	ErrInvalidType = &Error{Kind: ErrKindType, Msg: "invalid registry value type"}
	// ErrSizeMismatch indicates a declared payload size incompatible with the type.
	ErrSizeMismatch = &Error{Kind: ErrKindSize, Msg: "payload size mismatch"}
	// ErrTranscoding indicates a UTF-16LE <-> UTF-8 conversion failure.
	ErrTranscoding = &Error{Kind: ErrKindTranscode, Msg: "transcoding failure"}
	// ErrWriteFailure indicates the sink rejected a write mid-serialization.
	ErrWriteFailure = &Error{Kind: ErrKindWrite, Msg: "write failure"}
	// ErrTypeMismatch indicates a Value whose variant does not match its RegType.
	ErrTypeMismatch = &Error{Kind: ErrKindType, Msg: "value has different type"}
)

// -----------------------------------------------------------------------------
// Registry value types
// -----------------------------------------------------------------------------

// RegType enumerates Windows registry value types as they appear on the wire.
// (The numbers align with Windows definitions.)
type RegType uint32

const (
	REG_NONE                       RegType = 0
	REG_SZ                         RegType = 1
	REG_EXPAND_SZ                  RegType = 2
	REG_BINARY                     RegType = 3
	REG_DWORD                      RegType = 4
	REG_DWORD_LITTLE_ENDIAN        RegType = 4 // alias for clarity
	REG_DWORD_BIG_ENDIAN           RegType = 5
	REG_LINK                       RegType = 6
	REG_MULTI_SZ                   RegType = 7
	REG_RESOURCE_LIST              RegType = 8
	REG_FULL_RESOURCE_DESCRIPTOR   RegType = 9
	REG_RESOURCE_REQUIREMENTS_LIST RegType = 10
	REG_QWORD                      RegType = 11
	REG_QWORD_LITTLE_ENDIAN        RegType = 11 // alias for clarity
	REG_QWORD_BIG_ENDIAN           RegType = 12
)

// Valid reports whether t is a member of the closed set of concrete
// instruction types. REG_NONE never carries a payload and is not valid.
func (t RegType) Valid() bool {
	return t >= REG_SZ && t <= REG_QWORD_BIG_ENDIAN
}

// String implements the Stringer interface for RegType.
func (t RegType) String() string {
	switch t {
	case REG_NONE:
		return "REG_NONE"
	case REG_SZ:
		return "REG_SZ"
	case REG_EXPAND_SZ:
		return "REG_EXPAND_SZ"
	case REG_BINARY:
		return "REG_BINARY"
	case REG_DWORD:
		return "REG_DWORD"
	case REG_DWORD_BIG_ENDIAN:
		return "REG_DWORD_BIG_ENDIAN"
	case REG_LINK:
		return "REG_LINK"
	case REG_MULTI_SZ:
		return "REG_MULTI_SZ"
	case REG_RESOURCE_LIST:
		return "REG_RESOURCE_LIST"
	case REG_FULL_RESOURCE_DESCRIPTOR:
		return "REG_FULL_RESOURCE_DESCRIPTOR"
	case REG_RESOURCE_REQUIREMENTS_LIST:
		return "REG_RESOURCE_REQUIREMENTS_LIST"
	case REG_QWORD:
		return "REG_QWORD"
	case REG_QWORD_BIG_ENDIAN:
		return "REG_QWORD_BIG_ENDIAN"
	default:
		return fmt.Sprintf("UNKNOWN_TYPE_%d", uint32(t))
	}
}

// -----------------------------------------------------------------------------
// Instruction payloads
// -----------------------------------------------------------------------------

// ValueKind identifies the active variant of a Value.
type ValueKind int

const (
	KindNone        ValueKind = iota // zero Value, no payload
	KindString                       // UTF-8 string
	KindMultiString                  // ordered list of UTF-8 strings
	KindBinary                       // raw bytes
	KindDword                        // unsigned 32-bit integer
	KindQword                        // unsigned 64-bit integer
)

// String implements the Stringer interface for ValueKind.
func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindMultiString:
		return "multi-string"
	case KindBinary:
		return "binary"
	case KindDword:
		return "dword"
	case KindQword:
		return "qword"
	default:
		return "none"
	}
}

// Value is the payload of one instruction: exactly one of a string, a string
// list, a byte blob, a uint32 or a uint64. The zero Value holds nothing.
// Construct values with the XxxValue functions; the payload codec checks that
// the active variant matches the instruction's RegType.
type Value struct {
	kind ValueKind
	str  string
	list []string
	raw  []byte
	num  uint64
}

// StringValue returns a Value holding a single UTF-8 string.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// MultiStringValue returns a Value holding an ordered list of UTF-8 strings.
func MultiStringValue(ss []string) Value { return Value{kind: KindMultiString, list: ss} }

// BinaryValue returns a Value holding raw bytes.
func BinaryValue(b []byte) Value { return Value{kind: KindBinary, raw: b} }

// DwordValue returns a Value holding an unsigned 32-bit integer.
func DwordValue(v uint32) Value { return Value{kind: KindDword, num: uint64(v)} }

// QwordValue returns a Value holding an unsigned 64-bit integer.
func QwordValue(v uint64) Value { return Value{kind: KindQword, num: v} }

// Kind returns the active variant.
func (v Value) Kind() ValueKind { return v.kind }

// Str returns the string payload. ok is false when the variant differs.
func (v Value) Str() (s string, ok bool) { return v.str, v.kind == KindString }

// Strings returns the string-list payload. ok is false when the variant differs.
func (v Value) Strings() (ss []string, ok bool) { return v.list, v.kind == KindMultiString }

// Bytes returns the raw byte payload. ok is false when the variant differs.
func (v Value) Bytes() (b []byte, ok bool) { return v.raw, v.kind == KindBinary }

// Uint32 returns the 32-bit payload. ok is false when the variant differs.
func (v Value) Uint32() (n uint32, ok bool) { return uint32(v.num), v.kind == KindDword }

// Uint64 returns the 64-bit payload. ok is false when the variant differs.
func (v Value) Uint64() (n uint64, ok bool) { return v.num, v.kind == KindQword }

// Equal reports structural equality: same variant, same contents.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindMultiString:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != o.list[i] {
				return false
			}
		}
		return true
	case KindBinary:
		if len(v.raw) != len(o.raw) {
			return false
		}
		for i := range v.raw {
			if v.raw[i] != o.raw[i] {
				return false
			}
		}
		return true
	case KindDword, KindQword:
		return v.num == o.num
	default:
		return true
	}
}

// String implements the Stringer interface for Value.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return strconv.Quote(v.str)
	case KindMultiString:
		quoted := make([]string, len(v.list))
		for i, s := range v.list {
			quoted[i] = strconv.Quote(s)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	case KindBinary:
		return fmt.Sprintf("% x", v.raw)
	case KindDword, KindQword:
		return strconv.FormatUint(v.num, 10)
	default:
		return "<none>"
	}
}

// -----------------------------------------------------------------------------
// Documents
// -----------------------------------------------------------------------------

// Instruction is one registry-edit record of a POL file.
type Instruction struct {
	KeyPath   string  // backslash-delimited key location, printable ASCII
	ValueName string  // 0..259 printable ASCII characters
	Type      RegType // declared registry type of Data
	Data      Value   // payload, variant matching Type
}

// Equal reports structural equality over every field.
func (i Instruction) Equal(o Instruction) bool {
	return i.KeyPath == o.KeyPath &&
		i.ValueName == o.ValueName &&
		i.Type == o.Type &&
		i.Data.Equal(o.Data)
}

// PolicyBody is the ordered instruction sequence of a parsed file.
// Order is significant and preserved on round-trip.
type PolicyBody struct {
	Instructions []Instruction
}

// Equal reports structural equality of the instruction sequences.
func (b *PolicyBody) Equal(o *PolicyBody) bool {
	if b == nil || o == nil {
		return b == o
	}
	if len(b.Instructions) != len(o.Instructions) {
		return false
	}
	for i := range b.Instructions {
		if !b.Instructions[i].Equal(o.Instructions[i]) {
			return false
		}
	}
	return true
}

// PolicyFile is a whole POL document. A nil Body means the header was present
// but the file carried no parseable body; parse failures are reported on the
// error channel, never folded into the document.
type PolicyFile struct {
	Body *PolicyBody
}

// Equal reports structural equality, including body presence.
func (f *PolicyFile) Equal(o *PolicyFile) bool {
	if f == nil || o == nil {
		return f == o
	}
	return f.Body.Equal(o.Body)
}
