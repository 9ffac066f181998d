// Package csv provides typed access to rows and conversion between rows and Shape's AST.
package csv

import (
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-rowcsv/internal/parser"
	"github.com/shapestone/shape-rowcsv/internal/tokenizer"
)

// Record represents a single row in a CSV file.
// It provides access to field values by index or by header name.
type Record struct {
	fields  []string
	headers []string // shared with the Scanner that produced the record
}

// NewRecord creates a Record from fields and optional headers.
func NewRecord(fields, headers []string) Record {
	return Record{fields: fields, headers: headers}
}

// Get gets the field value at the specified index.
// Returns (value, false) if the index is out of bounds.
// Index is 0-based.
func (r Record) Get(index int) (string, bool) {
	if index < 0 || index >= len(r.fields) {
		return "", false
	}
	return r.fields[index], true
}

// GetByName gets the field value by header name.
// Returns (value, false) if the header name is not found or if no headers are set.
//
// Example:
//
//	record := scanner.Record()
//	name, ok := record.GetByName("name")
//	if !ok {
//	    // Header "name" not found or no headers set
//	}
func (r Record) GetByName(name string) (string, bool) {
	for i, header := range r.headers {
		if header == name {
			return r.Get(i)
		}
	}
	return "", false
}

// Fields returns a copy of the field values in the record.
func (r Record) Fields() []string {
	fields := make([]string, len(r.fields))
	copy(fields, r.fields)
	return fields
}

// Headers returns the header names the record was read with.
func (r Record) Headers() []string {
	return r.headers
}

// Len returns the number of fields in the record.
func (r Record) Len() int {
	return len(r.fields)
}

// ToAST converts rows to an AST ArrayDataNode of records.
// This is useful for integration with other Shape parsers.
func ToAST(rows [][]string) *ast.ArrayDataNode {
	records := make([]ast.SchemaNode, len(rows))
	for i, row := range rows {
		records[i] = parser.RecordNode(row, tokenizer.Position{})
	}
	return ast.NewArrayDataNode(records, ast.ZeroPosition())
}

// FromAST extracts rows from an AST produced by Parse, ParseReader or ToAST.
func FromAST(node ast.SchemaNode) ([][]string, error) {
	arrayNode, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return nil, fmt.Errorf("expected *ast.ArrayDataNode, got %T", node)
	}

	rows := make([][]string, 0, arrayNode.Len())
	for _, elem := range arrayNode.Elements() {
		recordNode, ok := elem.(*ast.ArrayDataNode)
		if !ok {
			return nil, fmt.Errorf("expected record to be *ast.ArrayDataNode, got %T", elem)
		}

		row, err := recordFields(recordNode)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
