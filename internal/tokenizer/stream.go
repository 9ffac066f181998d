package tokenizer

import (
	"bufio"
	"io"

	shapetokenizer "github.com/shapestone/shape-core/pkg/tokenizer"
)

// readerSource is the decoding state shared by a ReaderStream and its clones.
type readerSource struct {
	raw io.Reader
	br  *bufio.Reader
	err error // first read error other than io.EOF
	eof bool
}

// ReaderStream is a forward-only shapetokenizer.Stream over an io.Reader.
//
// Characters are decoded one at a time with bufio.Reader.ReadRune, so a
// multibyte character split across reads of the source is decoded whole and
// memory use does not depend on the length of the input. An invalid byte
// decodes as the replacement character U+FFFD, as it does for shapetokenizer.NewStream.
//
// A read failure ends the stream; Err reports it. Clones share the source
// and keep their own Location, so the stream cannot backtrack past
// characters already consumed by any of them.
type ReaderStream struct {
	src      *readerSource
	location shapetokenizer.Location
}

var _ shapetokenizer.Stream = (*ReaderStream)(nil)

// NewReaderStream creates a stream decoding UTF-8 from r.
func NewReaderStream(r io.Reader) *ReaderStream {
	return &ReaderStream{
		src: &readerSource{raw: r, br: bufio.NewReader(r)},
		location: shapetokenizer.Location{
			Row:    1,
			Column: 1,
		},
	}
}

// Err returns the first error other than io.EOF returned by the source.
func (s *ReaderStream) Err() error {
	return s.src.err
}

// Clone returns a stream sharing the source with an independent Location.
func (s *ReaderStream) Clone() shapetokenizer.Stream {
	return &ReaderStream{src: s.src, location: s.location}
}

// Match copies the Location of other, which must be a clone of s.
func (s *ReaderStream) Match(other shapetokenizer.Stream) {
	o, ok := other.(*ReaderStream)
	if !ok {
		panic("type assertion failed: expected *tokenizer.ReaderStream")
	}
	if o.src != s.src {
		panic("trying to match two different streams")
	}
	s.location = o.location
}

// PeekChar returns the next character without consuming it.
func (s *ReaderStream) PeekChar() (rune, bool) {
	r, ok := s.read()
	if !ok {
		return 0, false
	}
	// UnreadRune cannot fail directly after a successful ReadRune.
	_ = s.src.br.UnreadRune()
	return r, true
}

// NextChar consumes and returns the next character.
func (s *ReaderStream) NextChar() (rune, bool) {
	r, ok := s.read()
	if !ok {
		return 0, false
	}

	s.location.Cursor++
	s.location.Column++
	if r == '\n' {
		s.location.Row++
		s.location.Column = 1
	}
	return r, true
}

// MatchChars consumes match if the stream continues with it. On a mismatch
// only the first character is inspected without being consumed; a longer
// partial match is consumed, since the stream cannot rewind.
func (s *ReaderStream) MatchChars(match []rune) bool {
	for _, mr := range match {
		r, ok := s.PeekChar()
		if !ok || r != mr {
			return false
		}
		s.NextChar()
	}
	return true
}

// IsEos reports whether the source is exhausted or has failed.
func (s *ReaderStream) IsEos() bool {
	_, ok := s.PeekChar()
	return !ok
}

// GetOffset returns the number of characters consumed.
func (s *ReaderStream) GetOffset() int {
	return s.location.Cursor
}

// GetRow returns the current line number (1-indexed).
func (s *ReaderStream) GetRow() int {
	return s.location.Row
}

// GetColumn returns the current column number (1-indexed).
func (s *ReaderStream) GetColumn() int {
	return s.location.Column
}

// Reset returns to the start of the input. Only a source implementing
// io.Seeker is re-read; otherwise just the Location is reset.
func (s *ReaderStream) Reset() {
	s.location = shapetokenizer.Location{Row: 1, Column: 1}

	seeker, ok := s.src.raw.(io.Seeker)
	if !ok {
		return
	}
	if _, err := seeker.Seek(0, io.SeekStart); err != nil {
		s.src.err = err
		return
	}
	s.src.br.Reset(s.src.raw)
	s.src.err = nil
	s.src.eof = false
}

// GetLocation returns the current position.
func (s *ReaderStream) GetLocation() shapetokenizer.Location {
	return s.location
}

// SetLocation overrides the reported position. It does not move the source.
func (s *ReaderStream) SetLocation(loc shapetokenizer.Location) {
	s.location = loc
}

func (s *ReaderStream) read() (rune, bool) {
	if s.src.eof {
		return 0, false
	}

	r, _, err := s.src.br.ReadRune()
	if err != nil {
		s.src.eof = true
		if err != io.EOF {
			s.src.err = err
		}
		return 0, false
	}
	return r, true
}
