package graph

import (
	"strings"

	"github.com/DeusData/javagraph/internal/entity"
)

// FieldTypeIndex maps a class simple name to its declared fields' types,
// keyed by field name. Built from the complete corpus, not per file: a
// field's declaring class and the code that references it may live in
// different files.
//
// Declared types are truncated at the first generic-parameter marker
// (List<Order> -> List); array and other suffixes are not normalized.
// When two classes in different packages share a simple name, the later
// one overwrites the earlier entries — a lossy simplification callers
// must be aware of, kept deterministic by sorted file processing order.
type FieldTypeIndex map[string]map[string]string

// BuildFieldTypeIndex scans all field entities across the corpus.
func BuildFieldTypeIndex(entities []*entity.Entity) FieldTypeIndex {
	index := make(FieldTypeIndex)
	for _, e := range entities {
		if e.Kind != entity.Field || e.ClassName == "" || e.ReturnType == "" {
			continue
		}
		typeName := e.ReturnType
		if idx := strings.Index(typeName, "<"); idx >= 0 {
			typeName = typeName[:idx]
		}
		fields, ok := index[e.ClassName]
		if !ok {
			fields = make(map[string]string)
			index[e.ClassName] = fields
		}
		fields[e.Name] = typeName
	}
	return index
}

// Lookup returns the declared type of a field on a class simple name.
func (idx FieldTypeIndex) Lookup(className, fieldName string) (string, bool) {
	fields, ok := idx[className]
	if !ok {
		return "", false
	}
	t, ok := fields[fieldName]
	return t, ok
}
