package extract

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/javagraph/internal/parser"
)

// Java AST node kinds recognized by the comment/modifier extractor.
//
//	class_declaration
//	├── modifiers
//	│   ├── marker_annotation   @Service (no arguments)
//	│   ├── annotation          @Value("...") (with arguments)
//	│   └── "public", "static", ... keyword nodes
//	├── name (identifier)
//	└── body (class_body)
const (
	kindModifiers        = "modifiers"
	kindMarkerAnnotation = "marker_annotation"
	kindAnnotation       = "annotation"
	kindBlockComment     = "block_comment"
)

// Annotations returns the annotation names declared on a node's modifier
// list, each prefixed with "@", in source order. Declarations without a
// modifier list yield an empty slice.
func Annotations(node *tree_sitter.Node, source []byte) []string {
	var annotations []string
	eachModifierChild(node, func(mod *tree_sitter.Node) {
		if mod.Kind() != kindMarkerAnnotation && mod.Kind() != kindAnnotation {
			return
		}
		nameNode := mod.ChildByFieldName("name")
		if nameNode != nil {
			annotations = append(annotations, "@"+parser.NodeText(nameNode, source))
		}
	})
	return annotations
}

// Modifiers returns the non-annotation modifier keywords (public, static,
// final, ...) in source order, excluding annotations.
func Modifiers(node *tree_sitter.Node, source []byte) []string {
	var modifiers []string
	eachModifierChild(node, func(mod *tree_sitter.Node) {
		if mod.Kind() == kindMarkerAnnotation || mod.Kind() == kindAnnotation {
			return
		}
		modifiers = append(modifiers, parser.NodeText(mod, source))
	})
	return modifiers
}

// Javadoc returns the verbatim text of a documentation comment immediately
// preceding the declaration, or "".
//
// Only the single previous named sibling is inspected: comments further
// back, or separated from the declaration by any other sibling, are never
// attributed. This single-hop check is a deliberate precision limit.
func Javadoc(node *tree_sitter.Node, source []byte) string {
	prev := node.PrevNamedSibling()
	if prev == nil || prev.Kind() != kindBlockComment {
		return ""
	}
	text := parser.NodeText(prev, source)
	if strings.HasPrefix(text, "/**") {
		return text
	}
	return ""
}

// eachModifierChild invokes fn for every child of the node's modifier-list
// children, in source order. Nodes without a modifiers child are a no-op.
func eachModifierChild(node *tree_sitter.Node, fn func(mod *tree_sitter.Node)) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || child.Kind() != kindModifiers {
			continue
		}
		for j := uint(0); j < child.ChildCount(); j++ {
			if mod := child.Child(j); mod != nil {
				fn(mod)
			}
		}
	}
}
