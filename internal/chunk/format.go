package chunk

import (
	"strings"

	"github.com/DeusData/javagraph/internal/entity"
)

// FormatText renders one entity (or one part of a split method) as
// embedding text: location header, javadoc, source, call-graph footer.
//
//	// Package: com.example.order.service
//	// Class: OrderService
//
//	/** Creates an order. */
//	public OrderDto create(OrderRequest request) { ... }
//
//	// Calls: com.example.OrderRepository.save
//	// Called by: com.example.OrderController.createOrder
func FormatText(e *entity.Entity, partSource string) string {
	var sections []string

	if header := locationHeader(e); header != "" {
		sections = append(sections, header)
	}
	if e.Javadoc != "" {
		sections = append(sections, e.Javadoc)
	}
	source := partSource
	if source == "" {
		source = e.SourceCode
	}
	sections = append(sections, source)
	if footer := callGraphFooter(e); footer != "" {
		sections = append(sections, footer)
	}

	return strings.Join(sections, "\n\n")
}

// FormatClassSummary renders a class-like entity as a structural summary:
// annotations, declaration header, and its member fields and methods
// gathered from the full entity list. The summary replaces the full class
// source so the chunk stays retrieval-sized.
func FormatClassSummary(e *entity.Entity, all []*entity.Entity) string {
	var sections []string

	if header := locationHeader(e); header != "" {
		sections = append(sections, header)
	}
	if e.Javadoc != "" {
		sections = append(sections, e.Javadoc)
	}
	sections = append(sections, classSummary(e, all))
	if footer := callGraphFooter(e); footer != "" {
		sections = append(sections, footer)
	}

	return strings.Join(sections, "\n\n")
}

func locationHeader(e *entity.Entity) string {
	var lines []string
	if e.PackageName != "" {
		lines = append(lines, "// Package: "+e.PackageName)
	}
	if e.ClassName != "" {
		lines = append(lines, "// Class: "+e.ClassName)
	}
	return strings.Join(lines, "\n")
}

func callGraphFooter(e *entity.Entity) string {
	var lines []string
	if len(e.Calls) > 0 {
		lines = append(lines, "// Calls: "+strings.Join(e.Calls, ", "))
	}
	if len(e.CalledBy) > 0 {
		lines = append(lines, "// Called by: "+strings.Join(e.CalledBy, ", "))
	}
	return strings.Join(lines, "\n")
}

func classSummary(e *entity.Entity, all []*entity.Entity) string {
	var lines []string

	lines = append(lines, e.Annotations...)

	decl := strings.TrimSpace(strings.Join(e.Modifiers, " ") + " " + string(e.Kind) + " " + e.Name)
	lines = append(lines, decl+" {")

	// Members: entities whose immediate enclosing class is this one.
	var fields, methods []*entity.Entity
	for _, m := range all {
		if m.ClassName != e.Name || m.QualifiedName == e.QualifiedName {
			continue
		}
		switch {
		case m.Kind == entity.Field:
			fields = append(fields, m)
		case m.Kind.Callable():
			methods = append(methods, m)
		}
	}

	if len(fields) > 0 {
		lines = append(lines, "    // Fields:")
		for _, f := range fields {
			t := f.ReturnType
			if t == "" {
				t = "?"
			}
			lines = append(lines, "    //   "+t+" "+f.Name)
		}
	}
	if len(methods) > 0 {
		lines = append(lines, "    // Methods:")
		for _, m := range methods {
			sig := m.Name + "(" + strings.Join(m.Parameters, ", ") + ")"
			if m.ReturnType != "" {
				sig += " -> " + m.ReturnType
			}
			lines = append(lines, "    //   "+sig)
		}
	}

	lines = append(lines, "}")
	return strings.Join(lines, "\n")
}
