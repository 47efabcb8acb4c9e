// ast_debug prints the tree-sitter parse tree of a Java file, for
// inspecting node kinds and field names when extending extraction.
//
//	go run ./cmd/ast_debug path/to/File.java
package main

import (
	"fmt"
	"os"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/javagraph/internal/parser"
)

func printAST(node *tree_sitter.Node, source []byte, indent int) {
	if node == nil {
		return
	}
	prefix := ""
	for i := 0; i < indent; i++ {
		prefix += "  "
	}
	text := string(source[node.StartByte():node.EndByte()])
	if len(text) > 60 {
		text = text[:60] + "..."
	}
	fmt.Printf("%s%s [%d:%d] %q\n", prefix, node.Kind(), node.StartPosition().Row+1, node.EndPosition().Row+1, text)
	for i := uint(0); i < node.ChildCount(); i++ {
		printAST(node.Child(i), source, indent+1)
	}
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: ast_debug <file.java>")
		os.Exit(2)
	}
	source, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "read:", err)
		os.Exit(1)
	}
	tree, err := parser.Parse(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, "parse:", err)
		os.Exit(1)
	}
	defer tree.Close()

	if parser.HasTopLevelError(tree.RootNode()) {
		fmt.Fprintln(os.Stderr, "warning: tree has top-level errors")
	}
	printAST(tree.RootNode(), source, 0)
}
