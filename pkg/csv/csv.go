// Package csv reads and writes comma-separated rows one row at a time.
//
// Rows are split by a character-level state machine running over Shape's
// tokenizer stream. A field may be wrapped in double quotes to contain commas
// or newlines, and a quote inside a quoted field is written as two quotes.
// Parsing is lenient: malformed quoting never produces an error, and an
// unterminated quoted field runs to the end of the input.
//
// # Reading
//
// Reader streams rows lazily from a file or any io.Reader and owns its source:
//
//	r, err := csv.Open("data.csv", "utf-8")
//	if err != nil {
//	    // handle error
//	}
//	defer r.Close()
//
//	for row, err := range r.Rows() {
//	    if err != nil {
//	        // handle error
//	    }
//	    fmt.Println(row)
//	}
//
// WithReader scopes a Reader to a callback and closes it on every exit path.
// Scanner adds header-aware access on top of Reader.
//
// # Writing
//
// Writer joins fields with ',' and terminates rows with '\n':
//
//	w := csv.NewWriter("out.csv")
//	err := w.WriteAll([][]string{{"a", "b"}, {"c", "d"}})
//	err = w.AppendRow([]string{"e", "f"})
//
// By default no quoting is applied. Set WriterOptions.QuoteFields when fields
// may contain commas, quotes or newlines.
//
// # AST
//
// Parse and ParseReader build a Shape AST (*ast.ArrayDataNode of records) for
// integration with other Shape formats; Render turns it back into CSV.
//
// # Thread Safety
//
// Reader, Scanner and Writer values are not safe for concurrent use. The
// package-level Parse functions share no state and may be called concurrently.
package csv

import (
	"io"

	"github.com/shapestone/shape-core/pkg/ast"
)

// Parse parses CSV format into an AST from a string.
//
// Returns an ast.ArrayDataNode representing the parsed CSV:
//   - *ast.ArrayDataNode for the file (array of records)
//   - Each record is an *ast.ArrayDataNode of fields
//   - Each field is an *ast.LiteralNode containing a string value
//
// Example:
//
//	node, err := csv.Parse("name,age\nAlice,30\nBob,25")
//	arrayNode := node.(*ast.ArrayDataNode)
//	records := arrayNode.Elements()
//	// records[0] is the header row
//	// records[1] is the first data row
func Parse(input string) (ast.SchemaNode, error) {
	return ParseWithOptions(input, DefaultReaderOptions())
}

// ParseReader parses CSV format into an AST from an io.Reader.
//
// The input is consumed through a buffered stream, one character at a time.
// The caller remains responsible for closing reader.
//
// Example:
//
//	file, err := os.Open("data.csv")
//	if err != nil {
//	    // handle error
//	}
//	defer file.Close()
//
//	node, err := csv.ParseReader(file)
func ParseReader(reader io.Reader) (ast.SchemaNode, error) {
	return ParseReaderWithOptions(reader, DefaultReaderOptions())
}

// Format returns the format identifier for this parser.
func Format() string {
	return "CSV"
}
