package csv

import (
	"io"
)

// Scanner provides a header-aware interface for reading CSV records one at a time.
// Records are parsed incrementally as Scan is called, so memory use does not
// grow with the size of the input.
//
// The Scanner does not close the underlying reader.
//
// Example usage:
//
//	file, _ := os.Open("data.csv")
//	defer file.Close()
//
//	scanner := csv.NewScanner(file).SetHasHeaders(true)
//	for scanner.Scan() {
//	    record := scanner.Record()
//	    name, _ := record.GetByName("name")
//	    fmt.Println(name)
//	}
//	if err := scanner.Err(); err != nil {
//	    // handle error
//	}
type Scanner struct {
	reader     *Reader
	hasHeaders bool
	headers    []string
	current    []string
	started    bool
	done       bool
	err        error
}

// borrowedReader hides io.Closer so the Reader does not close a source it does not own.
type borrowedReader struct {
	io.Reader
}

// NewScanner creates a new Scanner that reads CSV from the given io.Reader.
// By default, the scanner assumes no headers. Use SetHasHeaders(true) to treat
// the first row as headers.
func NewScanner(reader io.Reader) *Scanner {
	if reader == nil {
		panic("csv: reader source cannot be nil")
	}
	return &Scanner{
		reader:  NewReader(borrowedReader{reader}),
		headers: []string{},
	}
}

// SetHasHeaders sets whether the first row should be treated as headers.
// It has no effect once scanning has started.
// Returns the Scanner for method chaining.
func (s *Scanner) SetHasHeaders(hasHeaders bool) *Scanner {
	if !s.started {
		s.hasHeaders = hasHeaders
	}
	return s
}

// Scan advances the scanner to the next record.
// It returns false when there are no more records or an error occurs.
// After Scan returns false, the Err method will return any error that occurred.
func (s *Scanner) Scan() bool {
	if s.done || s.err != nil {
		return false
	}

	if !s.started {
		s.started = true
		if s.hasHeaders {
			headers, ok := s.next()
			if !ok {
				return false
			}
			s.headers = headers
		}
	}

	row, ok := s.next()
	if !ok {
		s.current = nil
		return false
	}
	s.current = row
	return true
}

// next reads one row, recording exhaustion or failure.
func (s *Scanner) next() ([]string, bool) {
	row, err := s.reader.Read()
	switch {
	case err == nil:
		return row, true
	case err == io.EOF:
		s.done = true
	default:
		s.err = err
		_ = s.reader.Close()
	}
	return nil, false
}

// Record returns the current record.
// This should only be called after Scan() returns true.
func (s *Scanner) Record() Record {
	if s.current == nil {
		return Record{fields: []string{}, headers: s.headers}
	}
	return Record{fields: s.current, headers: s.headers}
}

// Err returns the error, if any, that was encountered during scanning.
// It returns nil if no error occurred or at EOF.
func (s *Scanner) Err() error {
	return s.err
}

// Headers returns the column headers if SetHasHeaders(true) was called.
// Returns an empty slice if no headers were set.
// This is available after the first call to Scan().
func (s *Scanner) Headers() []string {
	return s.headers
}

// Line returns the line on which the current record started.
func (s *Scanner) Line() int {
	return s.reader.Line()
}
