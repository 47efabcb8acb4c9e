package parser

import (
	"testing"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

func TestParseValidSource(t *testing.T) {
	source := []byte("package p;\n\nclass A {\n    void m() {}\n}\n")
	tree, err := Parse(source)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.Kind() != "program" {
		t.Fatalf("root kind = %q", root.Kind())
	}
	if HasTopLevelError(root) {
		t.Error("valid source flagged as top-level error")
	}
}

func TestHasTopLevelError(t *testing.T) {
	source := []byte("}}} not java (((\n")
	tree, err := Parse(source)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	defer tree.Close()

	if !HasTopLevelError(tree.RootNode()) {
		t.Error("garbage input not flagged")
	}
}

func TestRecoverableErrorNotTopLevel(t *testing.T) {
	// A broken statement inside a method body recovers below the root;
	// the file as a whole stays usable.
	source := []byte("package p;\nclass A {\n    void m() { int = ; }\n}\n")
	tree, err := Parse(source)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	defer tree.Close()

	if HasTopLevelError(tree.RootNode()) {
		t.Error("nested error escalated to file skip")
	}
}

func TestWalkVisitsAllNodes(t *testing.T) {
	source := []byte("class A { void m() {} }")
	tree, err := Parse(source)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	defer tree.Close()

	var classes, methods int
	Walk(tree.RootNode(), func(node *tree_sitter.Node) bool {
		switch node.Kind() {
		case "class_declaration":
			classes++
		case "method_declaration":
			methods++
		}
		return true
	})
	if classes != 1 || methods != 1 {
		t.Errorf("classes=%d methods=%d", classes, methods)
	}
}

func TestWalkPrune(t *testing.T) {
	source := []byte("class A { void m() {} }")
	tree, err := Parse(source)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	defer tree.Close()

	var methods int
	Walk(tree.RootNode(), func(node *tree_sitter.Node) bool {
		if node.Kind() == "class_declaration" {
			return false
		}
		if node.Kind() == "method_declaration" {
			methods++
		}
		return true
	})
	if methods != 0 {
		t.Errorf("pruned subtree visited: methods=%d", methods)
	}
}

func TestNodeTextIndependentCopy(t *testing.T) {
	source := []byte("class Abc {}")
	tree, err := Parse(source)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	defer tree.Close()

	class := tree.RootNode().Child(0)
	name := class.ChildByFieldName("name")
	text := NodeText(name, source)
	if text != "Abc" {
		t.Fatalf("text = %q", text)
	}
	source[6] = 'X'
	if text != "Abc" {
		t.Error("NodeText aliases the source buffer")
	}
}

func TestParseConcurrent(t *testing.T) {
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 20; j++ {
				tree, err := Parse([]byte("class A { void m() {} }"))
				if err != nil {
					t.Error(err)
					return
				}
				tree.Close()
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
