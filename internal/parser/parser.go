// Package parser wraps the tree-sitter Java grammar behind the narrow
// surface the entity walker needs: parse bytes to a tree, walk nodes,
// slice node text out of the source buffer.
package parser

import (
	"fmt"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

var (
	javaOnce sync.Once
	javaLang *tree_sitter.Language
	pool     *sync.Pool
)

func initJava() {
	javaOnce.Do(func() {
		javaLang = tree_sitter.NewLanguage(tree_sitter_java.Language())
		pool = &sync.Pool{
			New: func() any {
				p := tree_sitter.NewParser()
				if err := p.SetLanguage(javaLang); err != nil {
					panic(fmt.Sprintf("set language: %v", err))
				}
				return p
			},
		}
	})
}

// Language returns the tree-sitter Java language.
func Language() *tree_sitter.Language {
	initJava()
	return javaLang
}

// Parse parses Java source into a tree-sitter AST Tree.
// The caller must call tree.Close() when done.
// Parsers are pooled via sync.Pool to avoid per-file allocation.
func Parse(source []byte) (*tree_sitter.Tree, error) {
	initJava()

	p, _ := pool.Get().(*tree_sitter.Parser)
	if p == nil {
		return nil, fmt.Errorf("failed to get java parser")
	}
	tree := p.Parse(source, nil)
	pool.Put(p)

	if tree == nil {
		return nil, fmt.Errorf("parse failed")
	}
	return tree, nil
}

// HasTopLevelError reports whether the tree is unusable for extraction:
// the root is not a program node, or a direct child of the root is an
// error node. Error nodes nested deeper do not disqualify the file; the
// walker skips the broken declarations individually.
func HasTopLevelError(root *tree_sitter.Node) bool {
	if root == nil || root.Kind() != "program" {
		return true
	}
	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)
		if child != nil && child.Kind() == "ERROR" {
			return true
		}
	}
	return false
}

// WalkFunc is called for each node during AST traversal.
// Return false to skip children.
type WalkFunc func(node *tree_sitter.Node) bool

// Walk traverses the AST in depth-first order.
func Walk(node *tree_sitter.Node, fn WalkFunc) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil {
			Walk(child, fn)
		}
	}
}

// NodeText returns the text content of a node as an independent copy;
// the result does not alias the source buffer.
func NodeText(node *tree_sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
