// Package source opens match exports and streams their data rows.
package source

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Extensions recognised as match exports, longest first.
var matchExts = []string{".csv.zst", ".csv.gz", ".csv"}

// IsMatchFile reports whether name looks like a match export.
func IsMatchFile(name string) bool {
	return matchExt(name) != ""
}

// BaseName strips the match-export extension: "m1.csv.gz" → "m1".
func BaseName(name string) string {
	return name[:len(name)-len(matchExt(name))]
}

func matchExt(name string) string {
	lower := strings.ToLower(name)
	for _, ext := range matchExts {
		if strings.HasSuffix(lower, ext) && len(lower) > len(ext) {
			return name[len(name)-len(ext):]
		}
	}
	return ""
}

// File is an open match export positioned at its first data row.
type File struct {
	closers []io.Closer
	r       *csv.Reader
}

// Open opens the export at path, decompressing .gz and .zst files, and
// consumes the header row.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open export: %w", err)
	}
	file := &File{closers: []io.Closer{f}}

	var in io.Reader = f
	switch ext := strings.ToLower(matchExt(path)); ext {
	case ".csv.gz":
		gz, err := gzip.NewReader(f)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("open gzip stream: %w", err)
		}
		file.closers = append(file.closers, gz)
		in = gz
	case ".csv.zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("open zstd stream: %w", err)
		}
		rc := zr.IOReadCloser()
		file.closers = append(file.closers, rc)
		in = rc
	}

	if err := file.init(in); err != nil {
		file.Close()
		return nil, err
	}
	return file, nil
}

// NewReader wraps an already-open uncompressed stream. The header row is
// consumed before returning.
func NewReader(r io.Reader) (*File, error) {
	file := &File{}
	if err := file.init(r); err != nil {
		return nil, err
	}
	return file, nil
}

func (f *File) init(r io.Reader) error {
	cr := csv.NewReader(newPadReader(r))
	cr.Comma = ','
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	f.r = cr

	// Header row. An empty file simply has no data rows.
	if _, err := cr.Read(); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read header: %w", err)
	}
	return nil
}

// Read returns the next data row, or io.EOF. Padding around a field is
// dropped; whitespace inside quotes is kept.
func (f *File) Read() ([]string, error) {
	return f.r.Read()
}

// Close releases the decompressor and the underlying file.
func (f *File) Close() error {
	var errs []error
	for i := len(f.closers) - 1; i >= 0; i-- {
		if err := f.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	f.closers = nil
	return errors.Join(errs...)
}

// padReader drops spaces and tabs that sit between a field and the next
// delimiter or line end, outside quotes. Together with the csv reader's
// TrimLeadingSpace this trims both sides of every field, and tolerates
// `"OpTic" ,` which encoding/csv otherwise rejects.
type padReader struct {
	r   *bufio.Reader
	out []byte
	off int

	pending    []byte // held-back padding, emitted only if the field goes on
	inQuotes   bool
	fieldStart bool // nothing but padding since the last delimiter
	closed     bool // previous byte closed a quoted field
}

func newPadReader(r io.Reader) *padReader {
	return &padReader{r: bufio.NewReader(r), fieldStart: true}
}

func (p *padReader) Read(b []byte) (int, error) {
	if p.off == len(p.out) {
		p.out, p.off = p.out[:0], 0
		for len(p.out) == 0 {
			c, err := p.r.ReadByte()
			if err != nil {
				return 0, err
			}
			p.step(c)
		}
	}
	n := copy(b, p.out[p.off:])
	p.off += n
	return n, nil
}

func (p *padReader) step(c byte) {
	if p.inQuotes {
		p.out = append(p.out, c)
		if c == '"' {
			p.inQuotes = false
			p.closed = true
		}
		return
	}

	switch c {
	case ' ', '\t':
		if p.fieldStart {
			p.out = append(p.out, c)
		} else {
			p.pending = append(p.pending, c)
		}
		return
	case ',', '\n', '\r':
		p.pending = p.pending[:0]
		p.out = append(p.out, c)
		p.fieldStart = true
		p.closed = false
		return
	}

	// "" inside a quoted field reopens it.
	if c == '"' && (p.fieldStart || (p.closed && len(p.pending) == 0)) {
		p.inQuotes = true
	}
	p.out = append(p.out, p.pending...)
	p.pending = p.pending[:0]
	p.out = append(p.out, c)
	p.fieldStart = false
	p.closed = false
}
