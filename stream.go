// Reading documents from streams.
//
// Scanning needs the whole document in one buffer, so streams are read to
// the end first. Package index archives and mirrors commonly hold documents
// gzip- or zstd-compressed; with Decompress set the format is detected from
// its magic bytes and decoded transparently, and anything else is read as
// is. MaxSize always limits the decoded size, so a small compressed input
// cannot expand without bound.
package cabalscan

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// DefaultMaxSize is the size limit applied when ReadOptions.MaxSize is zero.
const DefaultMaxSize = 16 * 1024 * 1024

// minDecoderMemory is the smallest memory bound given to the zstd decoder,
// so ordinary window sizes are accepted under small size limits.
const minDecoderMemory = 1 << 20

// ReadOptions configures ReadAll and ScanReader.
type ReadOptions struct {
	MaxSize    int64 // Maximum decoded size in bytes (default 16MB, negative for no limit)
	Decompress bool  // Detect and decode gzip or zstd input
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// ReadAll reads r to the end, decompressing it if requested. It returns
// ErrTooLarge if the decoded content exceeds the size limit.
func ReadAll(r io.Reader, opts ReadOptions) ([]byte, error) {
	limit := opts.MaxSize
	if limit == 0 {
		limit = DefaultMaxSize
	}

	src := r
	decoding := false
	if opts.Decompress {
		var memory int64
		if limit > 0 {
			memory = max(limit, minDecoderMemory)
		}
		rc, coded, err := decompress(r, memory)
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		src, decoding = rc, coded
	}
	if limit > 0 {
		src = io.LimitReader(src, limit+1)
	}

	data, err := io.ReadAll(src)
	if err != nil {
		if decoding {
			return nil, decodeError(err)
		}
		return nil, err
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, limit)
	}
	return data, nil
}

// Decompress returns a reader that decodes r if it starts with a gzip or
// zstd header, or reads r unchanged otherwise. The caller must Close it.
func Decompress(r io.Reader) (io.ReadCloser, error) {
	rc, _, err := decompress(r, 0)
	return rc, err
}

// decompress is Decompress with a memory bound for the zstd decoder: when
// maxMemory is positive, frames whose window or declared content exceeds it
// are refused before anything is allocated for them. The bool reports
// whether a decoder was put in front of r.
func decompress(r io.Reader, maxMemory int64) (io.ReadCloser, bool, error) {
	br := bufio.NewReader(r)
	// Short or empty input is not an error here; it just is not compressed.
	magic, _ := br.Peek(len(zstdMagic))

	switch {
	case bytes.HasPrefix(magic, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, false, fmt.Errorf("%w: gzip: %w", ErrDecompress, err)
		}
		return zr, true, nil
	case bytes.HasPrefix(magic, zstdMagic):
		// One decoder per stream: input is streamed rather than buffered, so
		// the shared EncodeAll/DecodeAll style does not apply.
		opts := []zstd.DOption{zstd.WithDecoderConcurrency(1)}
		if maxMemory > 0 {
			opts = append(opts,
				zstd.WithDecoderMaxMemory(uint64(maxMemory)),
				zstd.WithDecoderMaxWindow(uint64(min(maxMemory, zstd.MaxWindowSize))),
			)
		}
		zr, err := zstd.NewReader(br, opts...)
		if err != nil {
			return nil, false, decodeError(err)
		}
		return zr.IOReadCloser(), true, nil
	}
	return io.NopCloser(br), false, nil
}

// decodeError classifies an error from a decoder. A zstd frame refused for
// exceeding the memory bound is too large rather than corrupt.
func decodeError(err error) error {
	if errors.Is(err, zstd.ErrWindowSizeExceeded) || errors.Is(err, zstd.ErrDecoderSizeExceeded) {
		return fmt.Errorf("%w: %w", ErrTooLarge, err)
	}
	return fmt.Errorf("%w: %w", ErrDecompress, err)
}
