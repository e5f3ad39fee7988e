package preg

import (
	"bytes"
	"fmt"
	"io"

	"github.com/joshuapare/pregkit/internal/format"
	"github.com/joshuapare/pregkit/internal/payload"
	"github.com/joshuapare/pregkit/internal/utf16le"
	"github.com/joshuapare/pregkit/pkg/types"
)

// Write serializes f to w: the 8-byte header followed by every instruction in
// order. Each payload is buffered first so its exact byte count fills the
// size field. Any sink failure aborts the whole write; callers must discard
// partial output.
//
// Write performs no validation beyond what the payload and text codecs
// enforce; supplying a value name over 259 characters is the caller's
// mistake and surfaces when the result is parsed.
func Write(w io.Writer, f *types.PolicyFile) error {
	if err := writeHeader(w); err != nil {
		return err
	}
	if f == nil || f.Body == nil {
		return nil
	}
	for i := range f.Body.Instructions {
		if err := writeInstruction(w, &f.Body.Instructions[i]); err != nil {
			return err
		}
	}
	return nil
}

// WriteBytes serializes f to a fresh in-memory POL image.
func WriteBytes(f *types.PolicyFile) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeHeader(w io.Writer) error {
	if _, err := w.Write(format.PRegSignature); err != nil {
		return writeErr(err)
	}
	if err := format.WriteU32(w, format.PRegVersion); err != nil {
		return writeErr(err)
	}
	return nil
}

// writeInstruction emits `'[' KeyPath ';' Value ';' Type ';' Size ';' Data ']'`.
func writeInstruction(w io.Writer, ins *types.Instruction) error {
	data, err := payload.Encode(ins.Type, ins.Data)
	if err != nil {
		return err
	}

	if err := writeUnit(w, format.UnitOpenBracket); err != nil {
		return err
	}
	if err := writeString(w, ins.KeyPath); err != nil {
		return err
	}
	if err := writeUnit(w, format.UnitSemicolon); err != nil {
		return err
	}
	if err := writeString(w, ins.ValueName); err != nil {
		return err
	}
	if err := writeUnit(w, format.UnitSemicolon); err != nil {
		return err
	}
	if err := format.WriteU32(w, uint32(ins.Type)); err != nil {
		return writeErr(err)
	}
	if err := writeUnit(w, format.UnitSemicolon); err != nil {
		return err
	}
	if err := format.WriteU32(w, uint32(len(data))); err != nil {
		return writeErr(err)
	}
	if err := writeUnit(w, format.UnitSemicolon); err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return writeErr(err)
	}
	return writeUnit(w, format.UnitCloseBracket)
}

// writeString transcodes s and emits it NUL-terminated.
func writeString(w io.Writer, s string) error {
	b, err := utf16le.EncodeString(s)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrTranscoding, err)
	}
	if _, err := w.Write(b); err != nil {
		return writeErr(err)
	}
	return nil
}

func writeUnit(w io.Writer, u uint16) error {
	if err := format.WriteU16(w, u); err != nil {
		return writeErr(err)
	}
	return nil
}

func writeErr(err error) error {
	return fmt.Errorf("%w: %v", types.ErrWriteFailure, err)
}
