package journal

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrClosed is returned by writes after Close
var ErrClosed = errors.New("journal closed")

// Writer appends records to a zstd stream
// Safe for concurrent use; the recorder writes from the game loop while shutdown closes from main
type Writer struct {
	mu  sync.Mutex
	f   io.Closer
	enc *zstd.Encoder
	w   *bufio.Writer
	mp  *msgpack.Encoder
	n   int
}

// Create opens path for writing, creating parent directories
func Create(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	w, err := NewWriter(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w.f = f
	return w, nil
}

// NewWriter wraps w; closing the Writer does not close w
func NewWriter(w io.Writer) (*Writer, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, err
	}
	bw := bufio.NewWriterSize(enc, 128*1024)
	mp := msgpack.NewEncoder(bw)
	mp.SetCustomStructTag("json")
	return &Writer{enc: enc, w: bw, mp: mp}, nil
}

// Write appends one record
func (w *Writer) Write(rec Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.mp == nil {
		return ErrClosed
	}
	if err := w.mp.Encode(&rec); err != nil {
		return err
	}
	w.n++
	return nil
}

// Flush pushes buffered records into the compressed stream
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.w == nil {
		return ErrClosed
	}
	if err := w.w.Flush(); err != nil {
		return err
	}
	return w.enc.Flush()
}

// Count returns records written so far
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.n
}

// Close flushes and finishes the stream; repeated calls are no-ops
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

func (w *Writer) closeLocked() error {
	var err error
	if w.w != nil {
		err = w.w.Flush()
	}
	if w.enc != nil {
		if cerr := w.enc.Close(); err == nil {
			err = cerr
		}
		w.enc = nil
	}
	if w.f != nil {
		if cerr := w.f.Close(); err == nil {
			err = cerr
		}
		w.f = nil
	}
	w.w = nil
	w.mp = nil
	return err
}
