// Package tokenizer splits a character stream into CSV rows using Shape's stream framework.
package tokenizer

import "fmt"

// Characters with structural meaning to the row tokenizer.
// Every other character, including '\r', is field data.
const (
	CharComma   = ','  // field separator
	CharDQuote  = '"'  // opens and closes quoted mode
	CharNewline = '\n' // row terminator outside quoted mode
)

// ParseState is the single bit of mode the tokenizer carries between characters.
type ParseState int

const (
	// StateNormal interprets commas and newlines as structure.
	StateNormal ParseState = iota
	// StateInQuotes treats everything except a quote as field data.
	StateInQuotes
)

// String returns the state name.
func (s ParseState) String() string {
	switch s {
	case StateNormal:
		return "Normal"
	case StateInQuotes:
		return "InQuotes"
	default:
		return fmt.Sprintf("ParseState(%d)", int(s))
	}
}
