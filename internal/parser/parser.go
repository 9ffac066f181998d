// Package parser builds Shape AST documents from CSV rows.
// Rows come from the row tokenizer; this package only assembles them and
// applies record-width validation.
package parser

import (
	"errors"
	"fmt"
	"io"

	"github.com/shapestone/shape-core/pkg/ast"
	shapetokenizer "github.com/shapestone/shape-core/pkg/tokenizer"
	"github.com/shapestone/shape-rowcsv/internal/tokenizer"
)

// ErrFieldCount is wrapped by errors reporting a record of the wrong width.
var ErrFieldCount = errors.New("wrong number of fields")

// BadLineMode specifies how to handle malformed lines.
type BadLineMode int

const (
	// BadLineModeError returns an error on malformed lines (default).
	BadLineModeError BadLineMode = iota
	// BadLineModeWarn reports a warning but continues parsing.
	BadLineModeWarn
	// BadLineModeSkip silently skips malformed lines.
	BadLineModeSkip
)

// Options configures the parser behavior.
type Options struct {
	// FieldsPerRecord validates field count. 0=first record sets count, negative=no validation
	FieldsPerRecord int
	// OnBadLine specifies how to handle records of the wrong width. Default: BadLineModeError
	OnBadLine BadLineMode
	// WarningCallback is invoked for warnings when OnBadLine is BadLineModeWarn
	WarningCallback func(line int, message string)
}

// DefaultOptions returns default parser options.
// FieldsPerRecord defaults to -1: the tokenizer is lenient and so is the parser.
func DefaultOptions() Options {
	return Options{
		FieldsPerRecord: -1,
		OnBadLine:       BadLineModeError,
	}
}

// FieldCountError reports a record whose width differs from the expected width.
type FieldCountError struct {
	Line     int
	Got      int
	Expected int
}

func (e *FieldCountError) Error() string {
	return fmt.Sprintf("record on line %d: %v (got %d, expected %d)",
		e.Line, ErrFieldCount, e.Got, e.Expected)
}

// Unwrap returns ErrFieldCount.
func (e *FieldCountError) Unwrap() error {
	return ErrFieldCount
}

// Validator tracks the expected record width across a stream of rows.
// It is shared by the AST parser and the streaming reader.
type Validator struct {
	opts     Options
	expected int
	seen     int
}

// NewValidator creates a Validator for opts.
func NewValidator(opts Options) *Validator {
	return &Validator{opts: opts, expected: opts.FieldsPerRecord}
}

// Check reports whether the row starting on line should be kept.
// A non-nil error means parsing must stop.
func (v *Validator) Check(line int, row []string) (bool, error) {
	if v.opts.FieldsPerRecord < 0 {
		return true, nil
	}

	first := v.seen == 0
	v.seen++
	if first && v.opts.FieldsPerRecord == 0 {
		v.expected = len(row)
		return true, nil
	}
	if len(row) == v.expected {
		return true, nil
	}

	err := &FieldCountError{Line: line, Got: len(row), Expected: v.expected}
	switch v.opts.OnBadLine {
	case BadLineModeSkip:
		return false, nil
	case BadLineModeWarn:
		if v.opts.WarningCallback != nil {
			v.opts.WarningCallback(line, err.Error())
		}
		return false, nil
	default:
		return false, err
	}
}

// Parser drains a row tokenizer into an AST.
type Parser struct {
	tok       *tokenizer.Tokenizer
	validator *Validator
	readErr   func() error
}

// NewParser creates a new CSV parser for the given input string.
// For parsing from io.Reader, use NewParserFromReader instead.
func NewParser(input string) *Parser {
	return NewParserWithOptions(input, DefaultOptions())
}

// NewParserWithOptions creates a new CSV parser with custom options.
func NewParserWithOptions(input string, opts Options) *Parser {
	return NewParserFromStreamWithOptions(shapetokenizer.NewStream(input), opts)
}

// NewParserFromReader creates a parser decoding UTF-8 from r.
// A read failure of r ends the input; ReadErr reports it after Parse.
func NewParserFromReader(r io.Reader, opts Options) *Parser {
	stream := tokenizer.NewReaderStream(r)
	p := NewParserFromStreamWithOptions(stream, opts)
	p.readErr = stream.Err
	return p
}

// NewParserFromStreamWithOptions creates a new CSV parser from a stream with custom options.
func NewParserFromStreamWithOptions(stream shapetokenizer.Stream, opts Options) *Parser {
	return &Parser{
		tok:       tokenizer.New(stream),
		validator: NewValidator(opts),
	}
}

// ReadErr returns the error that ended a reader-backed input early, if any.
func (p *Parser) ReadErr() error {
	if p.readErr == nil {
		return nil
	}
	return p.readErr()
}

// Parse reads every row and returns an AST representing the CSV file.
//
// Returns *ast.ArrayDataNode - an array of records, where each record is an ArrayDataNode of fields.
// Each field is a LiteralNode holding a string. Record and field nodes carry
// the position where the record started.
func (p *Parser) Parse() (ast.SchemaNode, error) {
	records := make([]ast.SchemaNode, 0, 16)

	for {
		row, ok := p.tok.NextRow()
		if !ok {
			break
		}

		start := p.tok.RowStart()
		keep, err := p.validator.Check(start.Line, row)
		if err != nil {
			return nil, err
		}
		if !keep {
			continue
		}

		records = append(records, RecordNode(row, start))
	}

	return ast.NewArrayDataNode(records, ast.ZeroPosition()), nil
}

// RecordNode converts a row into an ArrayDataNode of LiteralNodes positioned at start.
func RecordNode(row []string, start tokenizer.Position) *ast.ArrayDataNode {
	pos := ast.NewPosition(start.Offset, start.Line, start.Column)
	fields := make([]ast.SchemaNode, len(row))
	for i, value := range row {
		fields[i] = ast.NewLiteralNode(value, pos)
	}
	return ast.NewArrayDataNode(fields, pos)
}
