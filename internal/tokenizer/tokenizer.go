package tokenizer

import (
	"io"
	"strings"

	shapetokenizer "github.com/shapestone/shape-core/pkg/tokenizer"
)

// Position locates the first character of a row in the source.
// Line and Column are 1-indexed.
type Position struct {
	Offset int
	Line   int
	Column int
}

// Tokenizer is a row-level state machine over a character stream.
//
// It reads one character at a time and never reads a character twice: when
// the character after a closing quote has to be inspected, it is parked in a
// pending slot and handled by the next step in Normal state.
//
// Recognized syntax:
//
//	Row          = Field { "," Field } ( "\n" | EOF ) ;
//	Field        = QuotedPart | { Char } ;
//	QuotedPart   = '"' { QuotedChar | '""' } [ '"' { Char } ] ;
//
// Malformed input is never an error. A quote that does not start a field is
// data, and an unterminated quoted field runs to the end of the source.
//
// A Tokenizer is not safe for concurrent use.
type Tokenizer struct {
	stream shapetokenizer.Stream
	state  ParseState

	field   strings.Builder
	row     []string
	started bool // current field holds data or opened a quoted section

	pending    rune
	hasPending bool

	rowStart Position
	done     bool
}

// New creates a Tokenizer reading from stream.
func New(stream shapetokenizer.Stream) *Tokenizer {
	return &Tokenizer{
		stream:   stream,
		state:    StateNormal,
		rowStart: Position{Line: 1, Column: 1},
	}
}

// NewFromString creates a Tokenizer over an in-memory string.
func NewFromString(input string) *Tokenizer {
	return New(shapetokenizer.NewStream(input))
}

// NewFromReader creates a Tokenizer decoding UTF-8 from r.
func NewFromReader(r io.Reader) *Tokenizer {
	return New(NewReaderStream(r))
}

// NextRow consumes characters until a row boundary and returns the row.
// It returns false once the source is exhausted and on every call after that.
// A returned row is never modified by later calls.
func (t *Tokenizer) NextRow() ([]string, bool) {
	if t.done {
		return nil, false
	}

	t.row = nil
	t.field.Reset()
	t.started = false
	t.state = StateNormal
	t.markRowStart()

	for {
		ch, ok := t.next()
		if !ok {
			t.done = true
			if t.field.Len() > 0 || len(t.row) > 0 {
				t.closeField()
				return t.row, true
			}
			return nil, false
		}

		if t.state == StateInQuotes {
			t.stepQuoted(ch)
			continue
		}

		switch ch {
		case CharDQuote:
			if t.started {
				t.field.WriteRune(ch)
				continue
			}
			t.started = true
			t.state = StateInQuotes
		case CharComma:
			t.closeField()
		case CharNewline:
			t.closeField()
			return t.row, true
		default:
			t.field.WriteRune(ch)
			t.started = true
		}
	}
}

// stepQuoted handles one character while in quoted mode.
func (t *Tokenizer) stepQuoted(ch rune) {
	if ch != CharDQuote {
		t.field.WriteRune(ch)
		return
	}

	look, ok := t.stream.NextChar()
	if ok && look == CharDQuote {
		t.field.WriteRune(CharDQuote)
		return
	}

	t.state = StateNormal
	if ok {
		t.pending = look
		t.hasPending = true
	}
}

// State returns the mode the tokenizer is currently in.
func (t *Tokenizer) State() ParseState {
	return t.state
}

// RowStart returns where the most recently started row began.
func (t *Tokenizer) RowStart() Position {
	return t.rowStart
}

// next returns the pending character if one is parked, otherwise the next
// character from the stream.
func (t *Tokenizer) next() (rune, bool) {
	if t.hasPending {
		t.hasPending = false
		return t.pending, true
	}
	return t.stream.NextChar()
}

// closeField appends the accumulated field to the row and resets the buffer.
func (t *Tokenizer) closeField() {
	t.row = append(t.row, t.field.String())
	t.field.Reset()
	t.started = false
}

func (t *Tokenizer) markRowStart() {
	loc := t.stream.GetLocation()
	t.rowStart = Position{
		Offset: loc.Cursor,
		Line:   loc.Row,
		Column: loc.Column,
	}
}
