// Package csv provides AST rendering to CSV bytes.
//
// This file converts Shape AST nodes back into CSV text that the Reader
// parses into the same rows.
package csv

import (
	"bytes"
	"fmt"

	"github.com/shapestone/shape-core/pkg/ast"
)

// Render converts an AST node to CSV bytes.
//
// The node should be the result of Parse() or ParseReader(), or a single
// record node. Unlike Writer's default mode, Render always quotes fields
// containing commas, quotes or newlines, so Parse(Render(node)) yields the
// same rows.
//
// Example:
//
//	node, _ := csv.Parse("name,note\nAlice,\"a, b\"\n")
//	bytes, _ := csv.Render(node)
//	// bytes: name,note\nAlice,"a, b"\n
func Render(node ast.SchemaNode) ([]byte, error) {
	if node == nil {
		return []byte{}, nil
	}

	var buf bytes.Buffer
	if err := renderNode(node, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderNode renders a document or a single record.
func renderNode(node ast.SchemaNode, buf *bytes.Buffer) error {
	arr, ok := node.(*ast.ArrayDataNode)
	if !ok {
		return fmt.Errorf("unsupported node type for CSV rendering: %T", node)
	}

	elements := arr.Elements()
	if len(elements) == 0 {
		return nil
	}

	// A record holds literals; a document holds records.
	if _, isRecord := elements[0].(*ast.LiteralNode); isRecord {
		return renderRecord(arr, buf)
	}
	for _, elem := range elements {
		record, ok := elem.(*ast.ArrayDataNode)
		if !ok {
			return fmt.Errorf("unexpected element type in array: %T", elem)
		}
		if err := renderRecord(record, buf); err != nil {
			return err
		}
	}
	return nil
}

// renderRecord renders one record followed by a newline.
func renderRecord(node *ast.ArrayDataNode, buf *bytes.Buffer) error {
	row, err := recordFields(node)
	if err != nil {
		return err
	}
	return writeRow(buf, row, true)
}

// recordFields extracts the string values of a record node.
func recordFields(node *ast.ArrayDataNode) ([]string, error) {
	row := make([]string, 0, node.Len())
	for _, elem := range node.Elements() {
		lit, ok := elem.(*ast.LiteralNode)
		if !ok {
			return nil, fmt.Errorf("expected field to be *ast.LiteralNode, got %T", elem)
		}

		switch v := lit.Value().(type) {
		case string:
			row = append(row, v)
		case nil:
			row = append(row, "")
		default:
			row = append(row, fmt.Sprintf("%v", v))
		}
	}
	return row, nil
}
