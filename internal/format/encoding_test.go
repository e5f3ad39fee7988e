package format

import (
	"bytes"
	"errors"
	"testing"
)

func TestReadWriteRoundTripLE(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteU16(&buf, 0x1234); err != nil {
		t.Fatalf("WriteU16: %v", err)
	}
	if err := WriteU32(&buf, 0xDEADBEEF); err != nil {
		t.Fatalf("WriteU32: %v", err)
	}
	if err := WriteU64(&buf, 0x0102030405060708); err != nil {
		t.Fatalf("WriteU64: %v", err)
	}

	u16, err := ReadU16(&buf)
	if err != nil || u16 != 0x1234 {
		t.Fatalf("ReadU16 = %#x, %v", u16, err)
	}
	u32, err := ReadU32(&buf)
	if err != nil || u32 != 0xDEADBEEF {
		t.Fatalf("ReadU32 = %#x, %v", u32, err)
	}
	u64, err := ReadU64(&buf)
	if err != nil || u64 != 0x0102030405060708 {
		t.Fatalf("ReadU64 = %#x, %v", u64, err)
	}
}

func TestReadWriteRoundTripBE(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteU32BE(&buf, 123321); err != nil {
		t.Fatalf("WriteU32BE: %v", err)
	}
	u32, err := ReadU32BE(&buf)
	if err != nil || u32 != 123321 {
		t.Fatalf("ReadU32BE = %d, %v", u32, err)
	}

	buf.Reset()
	if err := WriteU64BE(&buf, 0x1122334455667788); err != nil {
		t.Fatalf("WriteU64BE: %v", err)
	}
	u64, err := ReadU64BE(&buf)
	if err != nil || u64 != 0x1122334455667788 {
		t.Fatalf("ReadU64BE = %#x, %v", u64, err)
	}
}

// Byte order must be applied to the wire, not a no-op over host order.
func TestByteOrderIsApplied(t *testing.T) {
	var le, be bytes.Buffer
	if err := WriteU32(&le, 123321); err != nil {
		t.Fatalf("WriteU32: %v", err)
	}
	if err := WriteU32BE(&be, 123321); err != nil {
		t.Fatalf("WriteU32BE: %v", err)
	}
	if bytes.Equal(le.Bytes(), be.Bytes()) {
		t.Fatalf("LE and BE encodings are identical: % x", le.Bytes())
	}

	// Decoding LE bytes as BE must give the byte-swapped value.
	swapped, err := ReadU32BE(&le)
	if err != nil {
		t.Fatalf("ReadU32BE: %v", err)
	}
	if swapped == 123321 {
		t.Fatalf("BE decode of LE bytes did not swap")
	}
}

func TestWireLayout(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteU32(&buf, 0x04030201); err != nil {
		t.Fatalf("WriteU32: %v", err)
	}
	want := []byte{0x01, 0x02, 0x03, 0x04}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("LE layout = % x, want % x", buf.Bytes(), want)
	}

	buf.Reset()
	if err := WriteU32BE(&buf, 0x04030201); err != nil {
		t.Fatalf("WriteU32BE: %v", err)
	}
	want = []byte{0x04, 0x03, 0x02, 0x01}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("BE layout = % x, want % x", buf.Bytes(), want)
	}
}

func TestShortReadsTruncated(t *testing.T) {
	cases := [][]byte{
		{},
		{0x01},
		{0x01, 0x02, 0x03},
		{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07},
	}
	for _, c := range cases {
		if _, err := ReadU16(bytes.NewReader(c[:min(len(c), 1)])); !errors.Is(err, ErrTruncated) {
			t.Fatalf("ReadU16 short: %v", err)
		}
		if _, err := ReadU32(bytes.NewReader(c)); len(c) < 4 && !errors.Is(err, ErrTruncated) {
			t.Fatalf("ReadU32 short (%d bytes): %v", len(c), err)
		}
		if _, err := ReadU64(bytes.NewReader(c)); !errors.Is(err, ErrTruncated) {
			t.Fatalf("ReadU64 short (%d bytes): %v", len(c), err)
		}
	}
}

func TestReadBytes(t *testing.T) {
	src := []byte{0xAA, 0xBB, 0xCC}
	got, err := ReadBytes(bytes.NewReader(src), 3)
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if !bytes.Equal(got, src) {
		t.Fatalf("ReadBytes = % x", got)
	}
	if _, err := ReadBytes(bytes.NewReader(src), 4); !errors.Is(err, ErrTruncated) {
		t.Fatalf("ReadBytes short: %v", err)
	}
}

func TestReadBytesHostileLengths(t *testing.T) {
	if _, err := ReadBytes(bytes.NewReader([]byte{1}), -1); !errors.Is(err, ErrTruncated) {
		t.Fatalf("ReadBytes negative: %v", err)
	}
	// A declared length far beyond the data must fail without allocating the
	// declared amount up front.
	if _, err := ReadBytes(bytes.NewReader([]byte{1, 2}), 1<<31); !errors.Is(err, ErrTruncated) {
		t.Fatalf("ReadBytes huge: %v", err)
	}
}

type failingWriter struct{ n int }

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.n <= 0 {
		return 0, errors.New("sink full")
	}
	n := min(len(p), w.n)
	w.n -= n
	if n < len(p) {
		return n, errors.New("sink full")
	}
	return n, nil
}

func TestWriteFailurePropagates(t *testing.T) {
	if err := WriteU32(&failingWriter{}, 1); err == nil {
		t.Fatal("expected write error")
	}
	if err := WriteU64(&failingWriter{n: 3}, 1); err == nil {
		t.Fatal("expected write error on partial sink")
	}
}
