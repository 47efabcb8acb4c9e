// Package extract walks a parsed Java syntax tree and produces the flat
// entity list for one file: class-like declarations, methods,
// constructors, and fields, with positions, metadata, and raw call
// expressions attached.
package extract

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/javagraph/internal/entity"
	"github.com/DeusData/javagraph/internal/fqn"
	"github.com/DeusData/javagraph/internal/parser"
)

// Declaration node kinds dispatched by the walker. Anything else found in
// a class body (punctuation, stray comments, enum constants) is skipped.
const (
	kindClassDecl       = "class_declaration"
	kindInterfaceDecl   = "interface_declaration"
	kindEnumDecl        = "enum_declaration"
	kindMethodDecl      = "method_declaration"
	kindConstructorDecl = "constructor_declaration"
	kindFieldDecl       = "field_declaration"
	kindClassBody       = "class_body"

	kindPackageDecl      = "package_declaration"
	kindScopedIdentifier = "scoped_identifier"
	kindIdentifier       = "identifier"

	kindVariableDeclarator = "variable_declarator"
	kindFormalParameter    = "formal_parameter"
	kindSpreadParameter    = "spread_parameter"

	// Enum bodies nest member declarations one level deeper than class
	// and interface bodies.
	kindEnumBodyDecls = "enum_body_declarations"
)

// classLikeKind maps a declaration node kind to its entity kind.
// Unrecognized kinds return "" and are skipped by the caller.
func classLikeKind(nodeKind string) entity.Kind {
	switch nodeKind {
	case kindClassDecl:
		return entity.Class
	case kindInterfaceDecl:
		return entity.Interface
	case kindEnumDecl:
		return entity.Enum
	default:
		return ""
	}
}

// Extract returns all entities declared in one parsed Java file.
// Every text field on the returned entities is an independent copy; the
// tree and source buffer may be released as soon as Extract returns.
func Extract(tree *tree_sitter.Tree, source []byte, filePath string) []*entity.Entity {
	w := &walker{source: source, filePath: filePath}
	root := tree.RootNode()
	w.pkg = extractPackage(root, source)
	w.walkDeclarations(root, nil)
	return w.entities
}

type walker struct {
	source   []byte
	filePath string
	pkg      string
	entities []*entity.Entity
}

// extractPackage scans only the root's direct children for a package
// declaration and returns its qualified identifier text, or "".
func extractPackage(root *tree_sitter.Node, source []byte) string {
	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)
		if child == nil || child.Kind() != kindPackageDecl {
			continue
		}
		for j := uint(0); j < child.ChildCount(); j++ {
			sub := child.Child(j)
			if sub == nil {
				continue
			}
			if sub.Kind() == kindScopedIdentifier || sub.Kind() == kindIdentifier {
				return parser.NodeText(sub, source)
			}
		}
	}
	return ""
}

// walkDeclarations scans a node's direct children for class-like
// declarations, recursing into body nodes with the same enclosing chain.
// Imports, comments, and anything outside the recognized declaration set
// never produce entities.
func (w *walker) walkDeclarations(node *tree_sitter.Node, chain []string) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if classLikeKind(child.Kind()) != "" {
			w.extractClassLike(child, chain)
		} else if child.Kind() == kindClassBody {
			w.walkDeclarations(child, chain)
		}
	}
}

// extractClassLike emits one class-like entity and dispatches over the
// body's direct children: methods, constructors, fields, and nested
// class-like declarations (which extend the enclosing chain).
func (w *walker) extractClassLike(node *tree_sitter.Node, chain []string) {
	kind := classLikeKind(node.Kind())
	name := nodeName(node, w.source)
	if name == "" {
		// Nameless declaration: skip the entity but keep walking the body
		// so nested named declarations are still extracted.
		if body := node.ChildByFieldName("body"); body != nil {
			w.walkDeclarations(body, chain)
		}
		return
	}

	w.entities = append(w.entities, w.newEntity(kind, name, node, chain))

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}
	memberChain := append(chain[:len(chain):len(chain)], name)
	w.extractMembers(body, memberChain)
}

func (w *walker) extractMembers(body *tree_sitter.Node, memberChain []string) {
	for i := uint(0); i < body.ChildCount(); i++ {
		member := body.Child(i)
		if member == nil {
			continue
		}
		switch member.Kind() {
		case kindMethodDecl:
			w.extractMethod(member, memberChain)
		case kindConstructorDecl:
			w.extractConstructor(member, memberChain)
		case kindFieldDecl:
			w.extractField(member, memberChain)
		case kindEnumBodyDecls:
			w.extractMembers(member, memberChain)
		default:
			if classLikeKind(member.Kind()) != "" {
				w.extractClassLike(member, memberChain)
			}
		}
	}
}

func (w *walker) extractMethod(node *tree_sitter.Node, chain []string) {
	name := nodeName(node, w.source)
	if name == "" {
		return
	}
	e := w.newEntity(entity.Method, name, node, chain)
	e.Parameters = extractParameters(node, w.source)
	if typeNode := node.ChildByFieldName("type"); typeNode != nil {
		e.ReturnType = parser.NodeText(typeNode, w.source)
	}
	e.Calls = collectInvocations(node, w.source)
	w.entities = append(w.entities, e)
}

func (w *walker) extractConstructor(node *tree_sitter.Node, chain []string) {
	name := nodeName(node, w.source)
	if name == "" {
		return
	}
	e := w.newEntity(entity.Constructor, name, node, chain)
	e.Parameters = extractParameters(node, w.source)
	e.Calls = collectInvocations(node, w.source)
	w.entities = append(w.entities, e)
}

// extractField emits one entity per variable declarator, so a co-declared
// field like `int a, b;` yields two entities sharing the declaration's
// modifiers, annotations, javadoc, and declared type.
//
// AST shape (field type is a sibling of the declarator, not inside it):
//
//	field_declaration
//	├── modifiers
//	├── type
//	└── variable_declarator
//	    └── name (identifier)
func (w *walker) extractField(node *tree_sitter.Node, chain []string) {
	var fieldType string
	if typeNode := node.ChildByFieldName("type"); typeNode != nil {
		fieldType = parser.NodeText(typeNode, w.source)
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		declarator := node.Child(i)
		if declarator == nil || declarator.Kind() != kindVariableDeclarator {
			continue
		}
		nameNode := declarator.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		e := w.newEntity(entity.Field, parser.NodeText(nameNode, w.source), node, chain)
		e.ReturnType = fieldType
		w.entities = append(w.entities, e)
	}
}

// newEntity fills the attributes every entity shares: position, verbatim
// source, qualified name chained through every enclosing level, and the
// shared metadata from the comment/modifier extractor.
func (w *walker) newEntity(kind entity.Kind, name string, node *tree_sitter.Node, chain []string) *entity.Entity {
	parts := make([]string, 0, len(chain)+2)
	parts = append(parts, w.pkg)
	parts = append(parts, chain...)
	parts = append(parts, name)

	var className string
	if len(chain) > 0 {
		className = chain[len(chain)-1]
	}

	return &entity.Entity{
		Kind:          kind,
		Name:          name,
		QualifiedName: fqn.Join(parts...),
		FilePath:      w.filePath,
		StartLine:     int(node.StartPosition().Row) + 1,
		EndLine:       int(node.EndPosition().Row) + 1,
		SourceCode:    parser.NodeText(node, w.source),
		PackageName:   w.pkg,
		ClassName:     className,
		Modifiers:     Modifiers(node, w.source),
		Annotations:   Annotations(node, w.source),
		Javadoc:       Javadoc(node, w.source),
	}
}

// extractParameters returns the verbatim "type name" text of each formal
// parameter, including varargs (spread_parameter).
func extractParameters(node *tree_sitter.Node, source []byte) []string {
	paramsNode := node.ChildByFieldName("parameters")
	if paramsNode == nil {
		return nil
	}
	var params []string
	for i := uint(0); i < paramsNode.ChildCount(); i++ {
		child := paramsNode.Child(i)
		if child == nil {
			continue
		}
		if child.Kind() == kindFormalParameter || child.Kind() == kindSpreadParameter {
			params = append(params, parser.NodeText(child, source))
		}
	}
	return params
}

func nodeName(node *tree_sitter.Node, source []byte) string {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return ""
	}
	return parser.NodeText(nameNode, source)
}
