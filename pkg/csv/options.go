// Package csv provides configurable options for CSV reading and writing.
package csv

import (
	"io"
	"io/fs"
	"strings"

	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-rowcsv/internal/parser"
)

// DefaultEncoding is the only encoding Open accepts.
const DefaultEncoding = "utf-8"

// ReaderOptions configures CSV reading behavior.
type ReaderOptions struct {
	// Encoding names the text encoding of files opened with OpenWithOptions.
	// Only UTF-8 is supported ("utf-8" or "utf8", any case).
	// Default: "utf-8"
	Encoding string

	// FieldsPerRecord is the expected number of fields per record.
	// If positive, each record must have exactly this many fields.
	// If 0, the first record determines the expected field count.
	// If negative, no field count validation is performed.
	// Default: -1
	FieldsPerRecord int

	// OnBadLine specifies how records of the wrong width are handled.
	// Default: BadLineModeError
	OnBadLine BadLineMode

	// WarningCallback is invoked for skipped records when OnBadLine is BadLineModeWarn.
	WarningCallback func(line int, message string)
}

// DefaultReaderOptions returns the default reader configuration.
func DefaultReaderOptions() ReaderOptions {
	return ReaderOptions{
		Encoding:        DefaultEncoding,
		FieldsPerRecord: -1, // lenient, like the tokenizer
		OnBadLine:       BadLineModeError,
	}
}

// WriterOptions configures CSV writing behavior.
type WriterOptions struct {
	// QuoteFields wraps fields containing a comma, quote, CR or LF in quotes
	// and doubles embedded quotes, so the output reads back unchanged.
	// Default: false (fields are written verbatim)
	QuoteFields bool

	// Perm is the permission used when the destination file is created.
	// Default: 0o644
	Perm fs.FileMode
}

// DefaultWriterOptions returns the default writer configuration.
func DefaultWriterOptions() WriterOptions {
	return WriterOptions{
		QuoteFields: false,
		Perm:        0o644,
	}
}

// Validate checks if the reader options are valid.
func (o ReaderOptions) Validate() error {
	if !supportedEncoding(o.Encoding) {
		return &OptionsError{Field: "Encoding", Message: "unsupported encoding " + o.Encoding, Err: ErrUnsupportedEncoding}
	}
	if o.OnBadLine < BadLineModeError || o.OnBadLine > BadLineModeSkip {
		return &OptionsError{Field: "OnBadLine", Message: "unknown mode " + o.OnBadLine.String()}
	}
	return nil
}

// Validate checks if the writer options are valid.
func (o WriterOptions) Validate() error {
	if o.Perm&^fs.ModePerm != 0 {
		return &OptionsError{Field: "Perm", Message: "only permission bits are allowed"}
	}
	return nil
}

// OptionsError represents an invalid option configuration.
type OptionsError struct {
	Field   string
	Message string
	Err     error
}

func (e *OptionsError) Error() string {
	return "csv: invalid " + e.Field + ": " + e.Message
}

// Unwrap returns the underlying sentinel, if any.
func (e *OptionsError) Unwrap() error {
	return e.Err
}

// supportedEncoding reports whether name denotes UTF-8. The empty string means the default.
func supportedEncoding(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return true
	default:
		return false
	}
}

// parserOptions maps reader options onto the internal parser configuration.
func (o ReaderOptions) parserOptions() parser.Options {
	return parser.Options{
		FieldsPerRecord: o.FieldsPerRecord,
		OnBadLine:       parser.BadLineMode(o.OnBadLine),
		WarningCallback: o.WarningCallback,
	}
}

// ParseWithOptions parses CSV format into an AST from a string with custom options.
//
// Example:
//
//	opts := csv.DefaultReaderOptions()
//	opts.FieldsPerRecord = 0  // first record sets the width
//	node, err := csv.ParseWithOptions("name,age\nAlice,30", opts)
func ParseWithOptions(input string, opts ReaderOptions) (ast.SchemaNode, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	node, err := parser.NewParserWithOptions(input, opts.parserOptions()).Parse()
	if err != nil {
		return nil, wrapParseError(err)
	}
	return node, nil
}

// ParseReaderWithOptions parses CSV format into an AST from an io.Reader with custom options.
// A read failure of r is returned as *IOError.
//
// Example:
//
//	opts := csv.DefaultReaderOptions()
//	opts.OnBadLine = csv.BadLineModeSkip
//	node, err := csv.ParseReaderWithOptions(file, opts)
func ParseReaderWithOptions(reader io.Reader, opts ReaderOptions) (ast.SchemaNode, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	p := parser.NewParserFromReader(reader, opts.parserOptions())
	node, err := p.Parse()
	if rerr := p.ReadErr(); rerr != nil {
		return nil, &IOError{Op: "read", Err: rerr}
	}
	if err != nil {
		return nil, wrapParseError(err)
	}
	return node, nil
}
