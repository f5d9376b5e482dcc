package record

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Writer appends length-prefixed PaymentRecord TLV streams to an
// underlying io.Writer, since a bare concatenation of TLV streams has no
// way to tell where one payment's record ends and the next begins.
type Writer struct {
	w io.Writer
}

// NewWriter wraps w for sequential PaymentRecord writes.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write encodes p and appends it to the stream.
func (rw *Writer) Write(p *PaymentRecord) error {
	var buf bytes.Buffer
	if err := p.Encode(&buf); err != nil {
		return fmt.Errorf("encoding payment record: %w", err)
	}

	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(buf.Len()))

	if _, err := rw.w.Write(length[:]); err != nil {
		return fmt.Errorf("writing record length: %w", err)
	}
	if _, err := rw.w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing record body: %w", err)
	}

	return nil
}

// Reader reads back a stream produced by Writer.
type Reader struct {
	r io.Reader
}

// NewReader wraps r for sequential PaymentRecord reads.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Read returns the next PaymentRecord, or io.EOF once the stream is
// exhausted.
func (rr *Reader) Read() (*PaymentRecord, error) {
	var length [4]byte
	if _, err := io.ReadFull(rr.r, length[:]); err != nil {
		return nil, err
	}

	body := make([]byte, binary.BigEndian.Uint32(length[:]))
	if _, err := io.ReadFull(rr.r, body); err != nil {
		return nil, fmt.Errorf("reading record body: %w", err)
	}

	var p PaymentRecord
	if err := p.Decode(bytes.NewReader(body)); err != nil {
		return nil, fmt.Errorf("decoding payment record: %w", err)
	}

	return &p, nil
}
