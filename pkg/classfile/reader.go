package classfile

import (
	"bytes"
	"encoding/binary"
	"io"
)

// byteSliceReader adapts a raw attribute body (already read in full)
// into an io.Reader so nested attribute parsing reuses the same
// reader primitives as the top-level decode.
func byteSliceReader(b []byte) io.Reader {
	return bytes.NewReader(b)
}

// reader wraps an io.Reader with the big-endian fixed-width and
// raw-byte-run primitives the class-file format is built from. Every
// read advances the cursor by the width read; there is no seeking
// beyond sequential consumption (spec §4.1).
type reader struct {
	r io.Reader
}

func newReader(r io.Reader) *reader {
	return &reader{r: r}
}

// readU8 reads one unsigned byte.
func (rd *reader) readU8(context string) (uint8, error) {
	var v uint8
	if err := binary.Read(rd.r, binary.BigEndian, &v); err != nil {
		return 0, &Truncated{Context: context, Err: err}
	}
	return v, nil
}

// readU16 reads a big-endian unsigned 16-bit field.
func (rd *reader) readU16(context string) (uint16, error) {
	var v uint16
	if err := binary.Read(rd.r, binary.BigEndian, &v); err != nil {
		return 0, &Truncated{Context: context, Err: err}
	}
	return v, nil
}

// readU32 reads a big-endian unsigned 32-bit field.
func (rd *reader) readU32(context string) (uint32, error) {
	var v uint32
	if err := binary.Read(rd.r, binary.BigEndian, &v); err != nil {
		return 0, &Truncated{Context: context, Err: err}
	}
	return v, nil
}

// readBytes reads exactly n raw bytes. Short reads (EOF mid-field)
// surface as Truncated rather than returning a partially-filled slice.
func (rd *reader) readBytes(n int, context string) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(rd.r, buf); err != nil {
		return nil, &Truncated{Context: context, Err: err}
	}
	return buf, nil
}
