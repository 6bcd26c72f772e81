package archive

import (
	"archive/zip"
	"bytes"
	"io"

	"github.com/klauspost/compress/flate"
)

// Builder accumulates collected files into a single zip stream.
// Entries are compressed as they are appended, not buffered until the
// end, and deflate runs at BestSpeed: download archives favor
// throughput over ratio.
type Builder struct {
	buf       bytes.Buffer
	zw        *zip.Writer
	fileCount int
}

func NewBuilder() *Builder {
	b := &Builder{}
	b.zw = zip.NewWriter(&b.buf)
	b.zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestSpeed)
	})
	return b
}

// Add appends one entry under the given archive path.
func (b *Builder) Add(name string, content []byte) error {
	w, err := b.zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(content)
	if err == nil {
		b.fileCount++
	}
	return err
}

// FileCount is the number of entries appended so far.
func (b *Builder) FileCount() int { return b.fileCount }

// Close finalizes the central directory and returns the archive bytes.
func (b *Builder) Close() ([]byte, error) {
	if err := b.zw.Close(); err != nil {
		return nil, err
	}
	return b.buf.Bytes(), nil
}
