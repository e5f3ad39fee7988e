package format

import (
	"bytes"
	"encoding/binary"
	"io"
)

// Binary encoding utilities for fixed-width integers on POL streams.
//
// The wire format is little-endian except for the REG_*_BIG_ENDIAN payload
// types, so every width comes in both byte orders. The BE variants are a pure
// byte-position swap of the LE ones; host order never enters the picture.
//
// Implementation: Uses encoding/binary.LittleEndian / BigEndian.
//
// Performance Note: Go's standard library implementation is already highly
// optimized by the compiler; the fixed-size scratch arrays below stay on the
// stack.

// ReadU16 reads a little-endian uint16 from r.
func ReadU16(r io.Reader) (uint16, error) {
	var b [2]byte
	if err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

// ReadU16BE reads a big-endian uint16 from r.
func ReadU16BE(r io.Reader) (uint16, error) {
	var b [2]byte
	if err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b[:]), nil
}

// ReadU32 reads a little-endian uint32 from r.
func ReadU32(r io.Reader) (uint32, error) {
	var b [4]byte
	if err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// ReadU32BE reads a big-endian uint32 from r.
func ReadU32BE(r io.Reader) (uint32, error) {
	var b [4]byte
	if err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

// ReadU64 reads a little-endian uint64 from r.
func ReadU64(r io.Reader) (uint64, error) {
	var b [8]byte
	if err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// ReadU64BE reads a big-endian uint64 from r.
func ReadU64BE(r io.Reader) (uint64, error) {
	var b [8]byte
	if err := readFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

// WriteU16 writes a little-endian uint16 to w.
func WriteU16(w io.Writer, v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return writeFull(w, b[:])
}

// WriteU16BE writes a big-endian uint16 to w.
func WriteU16BE(w io.Writer, v uint16) error {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return writeFull(w, b[:])
}

// WriteU32 writes a little-endian uint32 to w.
func WriteU32(w io.Writer, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return writeFull(w, b[:])
}

// WriteU32BE writes a big-endian uint32 to w.
func WriteU32BE(w io.Writer, v uint32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return writeFull(w, b[:])
}

// WriteU64 writes a little-endian uint64 to w.
func WriteU64(w io.Writer, v uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return writeFull(w, b[:])
}

// WriteU64BE writes a big-endian uint64 to w.
func WriteU64BE(w io.Writer, v uint64) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return writeFull(w, b[:])
}

// ReadBytes reads exactly n bytes from r. The length comes from untrusted
// size fields, so the buffer grows with the data actually read rather than
// being allocated up front; a forged multi-GiB length fails with ErrTruncated
// as soon as the stream runs dry.
func ReadBytes(r io.Reader, n int64) ([]byte, error) {
	if n < 0 {
		return nil, ErrTruncated
	}
	var buf bytes.Buffer
	if copied, err := io.CopyN(&buf, r, n); err != nil || copied < n {
		return nil, ErrTruncated
	}
	return buf.Bytes(), nil
}

// readFull fills buf from r, mapping every short read to ErrTruncated so
// callers see a single failure mode regardless of where the stream ended.
func readFull(r io.Reader, buf []byte) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		return ErrTruncated
	}
	return nil
}

// writeFull writes buf to w, mapping short writes to ErrShortWrite.
func writeFull(w io.Writer, buf []byte) error {
	n, err := w.Write(buf)
	if err != nil {
		return err
	}
	if n < len(buf) {
		return ErrShortWrite
	}
	return nil
}
