package csv

import (
	"reflect"
	"testing"

	"github.com/shapestone/shape-core/pkg/ast"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want string
	}{
		{"empty document", nil, ""},
		{"plain rows", [][]string{{"a", "b"}, {"c", "d"}}, "a,b\nc,d\n"},
		{"comma quoted", [][]string{{"a,b", "c"}}, "\"a,b\",c\n"},
		{"quote doubled", [][]string{{`say "hi"`}}, "\"say \"\"hi\"\"\"\n"},
		{"newline quoted", [][]string{{"x\ny"}}, "\"x\ny\"\n"},
		{"empty fields", [][]string{{"", "", ""}}, ",,\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(ToAST(tt.rows))
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRender_RoundTrip(t *testing.T) {
	input := "name,note\nAlice,\"a, b\"\nBob,\"multi\nline \"\"quoted\"\"\"\n"

	node, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	out, err := Render(node)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if string(out) != input {
		t.Errorf("Render(Parse(x)) = %q, want %q", out, input)
	}
}

func TestRender_SingleRecord(t *testing.T) {
	record := ast.NewArrayDataNode([]ast.SchemaNode{
		ast.NewLiteralNode("a", ast.ZeroPosition()),
		ast.NewLiteralNode(42, ast.ZeroPosition()),
		ast.NewLiteralNode(nil, ast.ZeroPosition()),
	}, ast.ZeroPosition())

	got, err := Render(record)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if string(got) != "a,42,\n" {
		t.Errorf("Render() = %q, want %q", got, "a,42,\n")
	}
}

func TestRender_Errors(t *testing.T) {
	t.Run("nil node", func(t *testing.T) {
		got, err := Render(nil)
		if err != nil || len(got) != 0 {
			t.Errorf("Render(nil) = %q, %v", got, err)
		}
	})

	t.Run("literal at top level", func(t *testing.T) {
		if _, err := Render(ast.NewLiteralNode("x", ast.ZeroPosition())); err == nil {
			t.Error("expected error for bare literal")
		}
	})

	t.Run("mixed document", func(t *testing.T) {
		doc := ast.NewArrayDataNode([]ast.SchemaNode{
			ToAST([][]string{{"a"}}).Get(0),
			ast.NewLiteralNode("b", ast.ZeroPosition()),
		}, ast.ZeroPosition())
		if _, err := Render(doc); err == nil {
			t.Error("expected error for literal among records")
		}
	})
}

func TestToAST_FromAST(t *testing.T) {
	rows := [][]string{{"a", ""}, {"b"}}

	got, err := FromAST(ToAST(rows))
	if err != nil {
		t.Fatalf("FromAST() error = %v", err)
	}
	if !reflect.DeepEqual(got, rows) {
		t.Errorf("FromAST(ToAST(rows)) = %q, want %q", got, rows)
	}

	if _, err := FromAST(ast.NewLiteralNode("x", ast.ZeroPosition())); err == nil {
		t.Error("FromAST accepted a literal node")
	}
}

func TestRecord(t *testing.T) {
	r := NewRecord([]string{"1", "Alice"}, []string{"id", "name"})

	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
	if v, ok := r.Get(1); !ok || v != "Alice" {
		t.Errorf("Get(1) = %q, %v", v, ok)
	}
	if _, ok := r.Get(2); ok {
		t.Error("Get(2) reported ok")
	}
	if _, ok := r.Get(-1); ok {
		t.Error("Get(-1) reported ok")
	}
	if v, ok := r.GetByName("id"); !ok || v != "1" {
		t.Errorf("GetByName(id) = %q, %v", v, ok)
	}

	fields := r.Fields()
	fields[0] = "changed"
	if v, _ := r.Get(0); v != "1" {
		t.Error("Fields() did not return a copy")
	}

	bare := NewRecord([]string{"x"}, nil)
	if _, ok := bare.GetByName("id"); ok {
		t.Error("GetByName without headers reported ok")
	}
}
