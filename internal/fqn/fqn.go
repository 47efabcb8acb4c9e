// Package fqn builds and splits dot-joined qualified names: the path from
// package through every enclosing declaration to an entity's simple name.
package fqn

import "strings"

// Join joins the non-empty components with dots, preserving order.
// Examples:
//   - Join("com.example", "OrderService", "create") -> "com.example.OrderService.create"
//   - Join("", "Outer", "Inner") -> "Outer.Inner"
func Join(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ".")
}

// Enclosing returns qn with its last segment removed, or "" when qn has a
// single segment. For a member's qualified name this is the qualified name
// of its enclosing declaration chain.
func Enclosing(qn string) string {
	if idx := strings.LastIndex(qn, "."); idx >= 0 {
		return qn[:idx]
	}
	return ""
}

// Simple returns the last dot-separated segment.
func Simple(qn string) string {
	if idx := strings.LastIndex(qn, "."); idx >= 0 {
		return qn[idx+1:]
	}
	return qn
}
