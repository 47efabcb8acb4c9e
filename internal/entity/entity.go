package entity

// Kind classifies a code entity extracted from a Java syntax tree.
type Kind string

const (
	Class       Kind = "class"
	Interface   Kind = "interface"
	Enum        Kind = "enum"
	Field       Kind = "field"
	Method      Kind = "method"
	Constructor Kind = "constructor"
)

// ClassLike reports whether the kind is a class, interface, or enum
// declaration. Class-like entities own members and contribute to the
// class simple-name index used during call resolution.
func (k Kind) ClassLike() bool {
	return k == Class || k == Interface || k == Enum
}

// Callable reports whether the kind carries a body with call expressions.
func (k Kind) Callable() bool {
	return k == Method || k == Constructor
}

// Entity is one structural fact extracted from a Java source file: a
// class-like, field, method, or constructor declaration.
//
// Entities are created exactly once during extraction. Calls and CalledBy
// are the only fields mutated afterwards, and only by the corpus-wide
// resolution pass; after that the record is treated as immutable.
type Entity struct {
	Kind          Kind   `json:"entity_type"`
	Name          string `json:"name"`
	QualifiedName string `json:"qualified_name"`
	FilePath      string `json:"file_path"`
	StartLine     int    `json:"start_line"` // 1-based, inclusive
	EndLine       int    `json:"end_line"`   // 1-based, inclusive
	SourceCode    string `json:"source_code"`

	// PackageName is empty for the default package.
	PackageName string `json:"package_name,omitempty"`
	// ClassName is the immediate enclosing class simple name for members,
	// empty for top-level declarations. Not the full enclosing chain.
	ClassName string `json:"class_name,omitempty"`

	// Modifiers are non-annotation modifier keywords in source order.
	Modifiers []string `json:"modifiers,omitempty"`
	// Annotations are annotation names prefixed with "@", in source order.
	Annotations []string `json:"annotations,omitempty"`
	// Javadoc is the verbatim text of the documentation comment immediately
	// preceding the declaration, or empty.
	Javadoc string `json:"javadoc,omitempty"`

	// Parameters holds the verbatim "type name" text of each formal
	// parameter (methods and constructors only).
	Parameters []string `json:"parameters,omitempty"`
	// ReturnType is the declared return type for methods and the declared
	// field type for fields, verbatim with generics retained.
	ReturnType string `json:"return_type,omitempty"`

	// Calls starts as raw call expressions collected from the body and is
	// rewritten in place to resolved (or "?."-prefixed unresolved)
	// qualified strings during resolution.
	Calls []string `json:"calls,omitempty"`
	// CalledBy holds qualified names of corpus entities that call this one.
	// Populated only during resolution, set semantics, sorted.
	CalledBy []string `json:"called_by,omitempty"`
}
