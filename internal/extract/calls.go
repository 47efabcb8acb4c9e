package extract

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/javagraph/internal/parser"
)

const kindMethodInvocation = "method_invocation"

// collectInvocations gathers every method invocation under a method or
// constructor declaration, depth-first, in first-encountered order.
//
// AST shape:
//
//	method_invocation
//	├── object (receiver, optional)
//	├── name (called method)
//	└── arguments
//
// A call with a receiver is recorded as "receiverText.name"; the receiver
// text is used literally, so a chained receiver like a.b().c() is kept
// unsimplified. A bare call is recorded as just the name and interpreted
// as a same-class call during resolution. Duplicates are removed by exact
// string equality within one body. Traversal descends into arguments, so
// a call nested inside another call's argument list is collected as its
// own entry.
func collectInvocations(node *tree_sitter.Node, source []byte) []string {
	var calls []string
	seen := make(map[string]bool)

	parser.Walk(node, func(n *tree_sitter.Node) bool {
		if n.Kind() != kindMethodInvocation {
			return true
		}
		nameNode := n.ChildByFieldName("name")
		if nameNode == nil {
			return true
		}
		call := parser.NodeText(nameNode, source)
		if objectNode := n.ChildByFieldName("object"); objectNode != nil {
			call = parser.NodeText(objectNode, source) + "." + call
		}
		if !seen[call] {
			seen[call] = true
			calls = append(calls, call)
		}
		return true
	})

	return calls
}
