package csv

import (
	"bufio"
	"io"
	"os"
	"strings"
)

const defaultBufferSize = 4 << 10

// Writer writes rows to a CSV file.
//
// Rows are serialized by joining fields with ',' and terminating each row
// with '\n'. Unless WriterOptions.QuoteFields is set, fields are written
// verbatim: a field containing a comma, quote or newline produces output that
// does not read back as the same row.
//
// Every call opens the destination, writes, and closes it again, so a Writer
// holds no open file between calls.
type Writer struct {
	path string
	opts WriterOptions
}

// NewWriter creates a Writer for the file at path with default options.
func NewWriter(path string) *Writer {
	return NewWriterWithOptions(path, DefaultWriterOptions())
}

// NewWriterWithOptions creates a Writer for the file at path with custom options.
func NewWriterWithOptions(path string, opts WriterOptions) *Writer {
	return &Writer{path: path, opts: opts}
}

// Path returns the destination file name.
func (w *Writer) Path() string {
	return w.path
}

// WriteAll creates or truncates the destination and writes rows to it.
func (w *Writer) WriteAll(rows [][]string) error {
	return w.writeFile(os.O_WRONLY|os.O_CREATE|os.O_TRUNC, rows)
}

// AppendRow opens the destination in append mode, creating it if needed,
// writes a single row and closes it.
func (w *Writer) AppendRow(row []string) error {
	return w.writeFile(os.O_WRONLY|os.O_CREATE|os.O_APPEND, [][]string{row})
}

func (w *Writer) writeFile(flag int, rows [][]string) (err error) {
	if err := w.opts.Validate(); err != nil {
		return err
	}

	perm := w.opts.Perm
	if perm == 0 {
		perm = DefaultWriterOptions().Perm
	}

	f, err := os.OpenFile(w.path, flag, perm)
	if err != nil {
		return &IOError{Op: "open", Path: w.path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &IOError{Op: "close", Path: w.path, Err: cerr}
		}
	}()

	bw := bufio.NewWriterSize(f, defaultBufferSize)
	for _, row := range rows {
		if err := writeRow(bw, row, w.opts.QuoteFields); err != nil {
			return &IOError{Op: "write", Path: w.path, Err: err}
		}
	}
	if err := bw.Flush(); err != nil {
		return &IOError{Op: "write", Path: w.path, Err: err}
	}
	return nil
}

// rowWriter is satisfied by *bufio.Writer, *bytes.Buffer and *strings.Builder.
type rowWriter interface {
	io.ByteWriter
	io.StringWriter
}

// writeRow writes fields joined by ',' followed by '\n'.
func writeRow(w rowWriter, row []string, quote bool) error {
	for i, field := range row {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if err := writeField(w, field, quote); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}

// writeField writes one field. With quote set, fields that need it are
// wrapped in quotes and embedded quotes are doubled.
func writeField(w rowWriter, field string, quote bool) error {
	if !quote || !fieldNeedsQuotes(field) {
		_, err := w.WriteString(field)
		return err
	}

	if err := w.WriteByte('"'); err != nil {
		return err
	}
	if _, err := w.WriteString(strings.ReplaceAll(field, `"`, `""`)); err != nil {
		return err
	}
	return w.WriteByte('"')
}

func fieldNeedsQuotes(field string) bool {
	return strings.ContainsAny(field, ",\"\n\r")
}
