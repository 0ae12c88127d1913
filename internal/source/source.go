// Package source opens IGC input files, transparently decompressing zstd.
package source

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

type file struct {
	io.Reader
	closers []io.Closer
}

func (f *file) Close() error {
	var first error
	for i := len(f.closers) - 1; i >= 0; i-- {
		if err := f.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Open opens path for a single forward pass. Files named *.zst or starting
// with the zstd frame magic are decompressed on the fly.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	adviseSequential(f)

	rc, err := wrap(f, strings.HasSuffix(strings.ToLower(path), ".zst"))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rc, nil
}

// NewReader is Open for an already open stream, e.g. stdin.
func NewReader(r io.ReadCloser) (io.ReadCloser, error) {
	return wrap(r, false)
}

func wrap(rc io.ReadCloser, forceZstd bool) (io.ReadCloser, error) {
	br := bufio.NewReaderSize(rc, 64*1024)
	compressed := forceZstd
	if !compressed {
		head, _ := br.Peek(len(zstdMagic))
		compressed = bytes.Equal(head, zstdMagic)
	}
	if !compressed {
		return &file{Reader: br, closers: []io.Closer{rc}}, nil
	}

	zr, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	return &file{Reader: zr, closers: []io.Closer{rc, zr.IOReadCloser()}}, nil
}
