package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// bitWriter appends fields most-significant-bit first with no padding between them.
type bitWriter struct {
	buf bytes.Buffer
	w   *bitio.Writer
	n   int
}

func newBitWriter() *bitWriter {
	bw := &bitWriter{}
	bw.w = bitio.NewWriter(&bw.buf)
	return bw
}

func (bw *bitWriter) writeBits(field string, v uint64, width uint8) error {
	if width < 64 && v>>width != 0 {
		return fmt.Errorf("%s: %d does not fit in %d bits: %w", field, v, width, ErrValueRange)
	}
	if err := bw.w.WriteBits(v, width); err != nil {
		return fmt.Errorf("%s: %w", field, err)
	}
	bw.n += int(width)
	return nil
}

func (bw *bitWriter) writeString(field string, s []byte) error {
	if len(s) > 0xff {
		return fmt.Errorf("%s: length %d exceeds 255 bytes: %w", field, len(s), ErrValueRange)
	}
	if err := bw.writeBits(field+" length", uint64(len(s)), 8); err != nil {
		return err
	}
	for _, b := range s {
		if err := bw.writeBits(field, uint64(b), 8); err != nil {
			return err
		}
	}
	return nil
}

// bytes flushes the trailing partial byte, zero padded, and returns the stream.
func (bw *bitWriter) bytes() ([]byte, error) {
	if err := bw.w.Close(); err != nil {
		return nil, err
	}
	return bw.buf.Bytes(), nil
}

// bitReader is the counterpart of bitWriter.
type bitReader struct {
	r *bitio.Reader
	n int
}

func newBitReader(data []byte) *bitReader {
	return &bitReader{r: bitio.NewReader(bytes.NewReader(data))}
}

func (br *bitReader) readBits(field string, width uint8) (uint64, error) {
	v, err := br.r.ReadBits(width)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, fmt.Errorf("%s at bit %d: %w", field, br.n, ErrTruncated)
		}
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	br.n += int(width)
	return v, nil
}

func (br *bitReader) readString(field string) ([]byte, error) {
	length, err := br.readBits(field+" length", 8)
	if err != nil {
		return nil, err
	}
	s := make([]byte, length)
	for i := range s {
		b, err := br.readBits(field, 8)
		if err != nil {
			return nil, err
		}
		s[i] = byte(b)
	}
	return s, nil
}
