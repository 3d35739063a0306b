// Package adifio opens and creates ADIF log files with transparent
// compression. Real-world logs get large; .gz and .zst files are
// handled by extension so the import and export pipelines stream
// through them unchanged.
package adifio

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/qsopipe/qsopipe/pkg/qsoerrors"
)

// Open opens path for reading, decompressing .gz and .zst transparently.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is operator-provided
	if err != nil {
		return nil, qsoerrors.Wrap(err, qsoerrors.ErrorTypeData, "open input file")
	}

	switch {
	case strings.HasSuffix(path, ".gz"):
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, qsoerrors.Wrap(err, qsoerrors.ErrorTypeData, "open gzip stream")
		}
		return &readCloser{r: zr, closers: []io.Closer{zr, f}}, nil
	case strings.HasSuffix(path, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, qsoerrors.Wrap(err, qsoerrors.ErrorTypeData, "open zstd stream")
		}
		return &readCloser{r: zr, closers: []io.Closer{closerFunc(func() error { zr.Close(); return nil }), f}}, nil
	default:
		return f, nil
	}
}

// ReadAll reads the whole (possibly compressed) file into memory.
func ReadAll(path string) (string, error) {
	r, err := Open(path)
	if err != nil {
		return "", err
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", qsoerrors.Wrap(err, qsoerrors.ErrorTypeData, "read input file")
	}
	return string(data), nil
}

// Create opens path for writing, compressing .gz and .zst
// transparently. Closing the returned writer flushes the compressor
// before closing the file.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path) //nolint:gosec // G304: path is operator-provided
	if err != nil {
		return nil, qsoerrors.Wrap(err, qsoerrors.ErrorTypeData, "create output file")
	}

	switch {
	case strings.HasSuffix(path, ".gz"):
		zw := gzip.NewWriter(f)
		return &writeCloser{w: zw, closers: []io.Closer{zw, f}}, nil
	case strings.HasSuffix(path, ".zst"):
		zw, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, qsoerrors.Wrap(err, qsoerrors.ErrorTypeData, "create zstd stream")
		}
		return &writeCloser{w: zw, closers: []io.Closer{zw, f}}, nil
	default:
		return f, nil
	}
}

type readCloser struct {
	r       io.Reader
	closers []io.Closer
}

func (rc *readCloser) Read(p []byte) (int, error) { return rc.r.Read(p) }

func (rc *readCloser) Close() error {
	var first error
	for _, c := range rc.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type writeCloser struct {
	w       io.Writer
	closers []io.Closer
}

func (wc *writeCloser) Write(p []byte) (int, error) { return wc.w.Write(p) }

func (wc *writeCloser) Close() error {
	var first error
	for _, c := range wc.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
