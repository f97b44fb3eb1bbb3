// Package csvfile reads delimited weather tables from disk.
package csvfile

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// candidates are the delimiters recognized by detection, in tie-break order.
var candidates = []rune{',', ';', '\t'}

// File is a CSV reader bound to an open file.
type File struct {
	*csv.Reader
	f *os.File
}

// Open opens path for row-by-row reading. A zero comma selects the delimiter
// from the header line.
func Open(path string, comma rune) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(f, comma)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &File{Reader: r, f: f}, nil
}

// Close releases the underlying file.
func (f *File) Close() error {
	return f.f.Close()
}

// NewReader wraps r in a lenient csv.Reader: a leading UTF-8 BOM is dropped,
// rows may have any number of fields and stray quotes are tolerated.
func NewReader(r io.Reader, comma rune) (*csv.Reader, error) {
	br := bufio.NewReader(r)
	if err := skipBOM(br); err != nil {
		return nil, err
	}
	if comma == 0 {
		comma = DetectDelimiter(peekLine(br))
	}

	cr := csv.NewReader(br)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr, nil
}

// DetectDelimiter picks the candidate delimiter that occurs most often outside
// quotes in line. Comma wins ties and is returned when none occurs.
func DetectDelimiter(line []byte) rune {
	counts := make(map[rune]int, len(candidates))
	quoted := false
	for _, b := range line {
		switch r := rune(b); {
		case r == '"':
			quoted = !quoted
		case !quoted:
			counts[r]++
		}
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if counts[c] > counts[best] {
			best = c
		}
	}
	return best
}

func skipBOM(br *bufio.Reader) error {
	head, err := br.Peek(len(bom))
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if bytes.Equal(head, bom) {
		_, err := br.Discard(len(bom))
		return err
	}
	return nil
}

// peekLine returns the first line without consuming it, capped at the buffer size.
func peekLine(br *bufio.Reader) []byte {
	buf, _ := br.Peek(br.Size())
	if i := bytes.IndexByte(buf, '\n'); i >= 0 {
		return buf[:i]
	}
	return buf
}
