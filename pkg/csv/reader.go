package csv

import (
	"errors"
	"io"
	"iter"
	"os"

	"github.com/shapestone/shape-rowcsv/internal/parser"
	"github.com/shapestone/shape-rowcsv/internal/tokenizer"
)

// Reader streams rows from a CSV source one at a time.
//
// The Reader owns its source. The source is closed exactly once: when Read
// reports io.EOF, when Read fails with an *IOError, or on Close, whichever
// comes first. Rows are produced lazily and the sequence cannot be restarted.
//
// Example usage:
//
//	r, err := csv.Open("data.csv", "utf-8")
//	if err != nil {
//	    // handle error
//	}
//	defer r.Close()
//
//	for {
//	    row, err := r.Read()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        // handle error
//	    }
//	    fmt.Println(row)
//	}
//
// A Reader is not safe for concurrent use.
type Reader struct {
	name      string
	closer    io.Closer
	stream    *tokenizer.ReaderStream
	tok       *tokenizer.Tokenizer
	validator *parser.Validator
	line      int
	closed    bool
}

// Open opens filename for reading. An empty encoding means "utf-8";
// any encoding other than UTF-8 fails with ErrUnsupportedEncoding.
func Open(filename, encoding string) (*Reader, error) {
	opts := DefaultReaderOptions()
	opts.Encoding = encoding
	return OpenWithOptions(filename, opts)
}

// OpenWithOptions opens filename for reading with custom options.
// A file that cannot be opened is reported as *IOError.
func OpenWithOptions(filename string, opts ReaderOptions) (*Reader, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, &IOError{Op: "open", Path: filename, Err: err}
	}

	r := newReader(f, opts)
	r.name = filename
	return r, nil
}

// NewReader creates a Reader consuming src with default options.
// If src implements io.Closer the Reader takes ownership and closes it.
func NewReader(src io.Reader) *Reader {
	if src == nil {
		panic("csv: reader source cannot be nil")
	}
	return newReader(src, DefaultReaderOptions())
}

// NewReaderWithOptions creates a Reader consuming src with custom options.
// Encoding is validated but has no other effect: src is read as UTF-8.
func NewReaderWithOptions(src io.Reader, opts ReaderOptions) (*Reader, error) {
	if src == nil {
		panic("csv: reader source cannot be nil")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return newReader(src, opts), nil
}

func newReader(src io.Reader, opts ReaderOptions) *Reader {
	stream := tokenizer.NewReaderStream(src)

	r := &Reader{
		stream:    stream,
		tok:       tokenizer.New(stream),
		validator: parser.NewValidator(opts.parserOptions()),
	}
	if c, ok := src.(io.Closer); ok {
		r.closer = c
	}
	return r
}

// Read returns the next row.
//
// At the end of the input Read releases the source and returns io.EOF. Every
// later call, and every call after Close, returns ErrReaderClosed. Rows of the
// wrong width are reported as *ParseError when FieldsPerRecord is enabled;
// reading may continue after such an error.
func (r *Reader) Read() ([]string, error) {
	if r.closed {
		return nil, ErrReaderClosed
	}

	for {
		row, ok := r.tok.NextRow()

		// A failed read ends the stream, so any row ending there is incomplete.
		if err := r.stream.Err(); err != nil {
			readErr := &IOError{Op: "read", Path: r.name, Err: err}
			_ = r.release()
			return nil, readErr
		}

		if !ok {
			if err := r.release(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		}

		start := r.tok.RowStart()
		keep, err := r.validator.Check(start.Line, row)
		if err != nil {
			return nil, wrapParseError(err)
		}
		if !keep {
			continue
		}

		r.line = start.Line
		return row, nil
	}
}

// ReadAll reads all remaining rows. A successful call returns err == nil, not io.EOF.
// The source is released whether or not an error occurs.
func (r *Reader) ReadAll() (rows [][]string, err error) {
	defer func() {
		if cerr := r.Close(); cerr != nil && err == nil {
			rows, err = nil, cerr
		}
	}()

	for {
		row, err := r.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}

// Rows returns the remaining rows as a single-use sequence.
// Iteration stops after the first error, which is yielded with a nil row.
// The source is released when iteration ends, including when the loop body
// breaks out early.
//
//	for row, err := range r.Rows() {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(row)
//	}
func (r *Reader) Rows() iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		defer r.Close()

		for {
			row, err := r.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(row, nil) {
				return
			}
		}
	}
}

// Line returns the line on which the most recently returned row started.
// It is 0 before the first row.
func (r *Reader) Line() int {
	return r.line
}

// Close releases the source. It is safe to call more than once; only the
// first call after the source was acquired closes it.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	return r.release()
}

func (r *Reader) release() error {
	r.closed = true
	if r.closer == nil {
		return nil
	}

	c := r.closer
	r.closer = nil
	if err := c.Close(); err != nil {
		return &IOError{Op: "close", Path: r.name, Err: err}
	}
	return nil
}

// WithReader opens filename, passes the Reader to fn and closes it on every
// exit path, including a panic in fn. The error from fn takes precedence over
// the error from closing.
//
//	err := csv.WithReader("data.csv", "utf-8", func(r *csv.Reader) error {
//	    rows, err := r.ReadAll()
//	    ...
//	})
func WithReader(filename, encoding string, fn func(r *Reader) error) (err error) {
	r, err := Open(filename, encoding)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := r.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fn(r)
}
