package journal

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// Reader yields records from a journal stream, header first
type Reader struct {
	f      io.Closer
	dec    *zstd.Decoder
	mp     *msgpack.Decoder
	header Header
}

// Open reads a journal file and validates its header
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.f = f
	return r, nil
}

// NewReader wraps r and consumes the header record
func NewReader(r io.Reader) (*Reader, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJournalHeader, err)
	}
	mp := msgpack.NewDecoder(dec)
	mp.SetCustomStructTag("json")

	jr := &Reader{dec: dec, mp: mp}
	var first Record
	if err := mp.Decode(&first); err != nil {
		dec.Close()
		return nil, fmt.Errorf("%w: %v", ErrJournalHeader, err)
	}
	if first.Kind != KindHeader || first.Header == nil {
		dec.Close()
		return nil, fmt.Errorf("%w: first record is %s", ErrJournalHeader, first.Kind)
	}
	if first.Header.Version != FormatVersion {
		dec.Close()
		return nil, fmt.Errorf("%w: version %d, want %d", ErrJournalHeader, first.Header.Version, FormatVersion)
	}
	jr.header = *first.Header
	return jr, nil
}

// Header returns the journal header
func (r *Reader) Header() Header { return r.header }

// Next returns the next record, io.EOF at the end of the stream
// A truncated tail, left by a crashed run, also reads as io.EOF
func (r *Reader) Next() (Record, error) {
	var rec Record
	if err := r.mp.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Record{}, io.EOF
		}
		return Record{}, err
	}
	return rec, nil
}

// Close releases the decoder and any file opened by Open
func (r *Reader) Close() error {
	r.dec.Close()
	if r.f != nil {
		err := r.f.Close()
		r.f = nil
		return err
	}
	return nil
}
