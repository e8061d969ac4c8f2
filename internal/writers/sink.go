// internal/writers/sink.go
package writers

import (
	"errors"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression names returned by CompressionFor.
const (
	CompressNone = ""
	CompressGzip = "gzip"
	CompressZstd = "zstd"
	CompressLZ4  = "lz4"
)

// CompressionFor picks a codec from the destination suffix.
func CompressionFor(path string) string {
	switch {
	case strings.HasSuffix(path, ".gz"):
		return CompressGzip
	case strings.HasSuffix(path, ".zst"):
		return CompressZstd
	case strings.HasSuffix(path, ".lz4"):
		return CompressLZ4
	default:
		return CompressNone
	}
}

// multiWriteCloser closes the codec first, then the file.
type multiWriteCloser struct {
	io.Writer
	closers []io.Closer
}

func (m *multiWriteCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// Create opens path for writing, truncating any existing file, and wraps it
// in the codec chosen by CompressionFor. "-" writes to stdout uncompressed.
func Create(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	fh, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	switch CompressionFor(path) {
	case CompressGzip:
		gw := gzip.NewWriter(fh)
		return &multiWriteCloser{Writer: gw, closers: []io.Closer{gw, fh}}, nil
	case CompressZstd:
		zw, err := zstd.NewWriter(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return &multiWriteCloser{Writer: zw, closers: []io.Closer{zw, fh}}, nil
	case CompressLZ4:
		lw := lz4.NewWriter(fh)
		return &multiWriteCloser{Writer: lw, closers: []io.Closer{lw, fh}}, nil
	}
	return fh, nil
}

// IsBrokenPipe reports whether an error is a broken pipe / closed pipe.
// Useful when downstream consumers (like `head`) close early.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
