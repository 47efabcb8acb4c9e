package graph

import (
	"errors"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/DeusData/javagraph/internal/entity"
	"github.com/DeusData/javagraph/internal/fqn"
)

// UnresolvedPrefix marks a call whose target type could not be determined.
// Unresolved calls are a legitimate terminal classification, not an error;
// downstream consumers decide how to handle them.
const UnresolvedPrefix = "?."

// IsUnresolved reports whether a resolved call string is the terminal
// unresolved form.
func IsUnresolved(call string) bool {
	return strings.HasPrefix(call, UnresolvedPrefix)
}

// ErrAlreadyResolved is returned when Resolve is invoked a second time on
// the same Resolver. Resolution is defined as a single pass; re-resolving
// already-rewritten call strings would not be a no-op.
var ErrAlreadyResolved = errors.New("corpus already resolved")

// Resolver rewrites each method/constructor entity's raw call expressions
// into qualified targets and populates reverse called-by edges.
//
// Per raw call string, in priority order:
//  1. Bare name: assumed same-class; the caller's enclosing chain plus the
//     name must exist in the qualified-name index.
//  2. Receiver form X.Y: X as a known class simple name, else X as a
//     capitalized identifier taken as an external class reference, else
//     X as a declared field of the caller's class with the field's type
//     substituted and retried.
//  3. Otherwise unresolved: "?." + Y.
//
// Local variables and parameters are never type-inferred; that is a
// permanent limitation of the model, not a transient gap.
type Resolver struct {
	registry *Registry
	fields   FieldTypeIndex
	done     bool
}

// NewResolver builds a resolver over pre-built corpus indexes.
func NewResolver(registry *Registry, fields FieldTypeIndex) *Resolver {
	return &Resolver{registry: registry, fields: fields}
}

// Resolve runs the single corpus-wide resolution pass. Calls lists are
// rewritten in place, preserving order and duplicate count; CalledBy sets
// are populated, sorted, only for targets that exist in the corpus.
func (r *Resolver) Resolve(entities []*entity.Entity) error {
	if r.done {
		return ErrAlreadyResolved
	}
	r.done = true

	// targetQN -> set of caller QNs
	calledBy := make(map[string]map[string]struct{})

	for _, e := range entities {
		if !e.Kind.Callable() {
			continue
		}
		for i, raw := range e.Calls {
			resolved := r.resolveCall(raw, e)
			e.Calls[i] = resolved
			if IsUnresolved(resolved) {
				continue
			}
			// Reverse edge only when the target is an extracted entity;
			// calls resolving outside the corpus have nothing to attach to.
			if _, ok := r.registry.Lookup(resolved); ok {
				callers, ok := calledBy[resolved]
				if !ok {
					callers = make(map[string]struct{})
					calledBy[resolved] = callers
				}
				callers[e.QualifiedName] = struct{}{}
			}
		}
	}

	for _, e := range entities {
		callers, ok := calledBy[e.QualifiedName]
		if !ok {
			continue
		}
		names := make([]string, 0, len(callers))
		for qn := range callers {
			names = append(names, qn)
		}
		sort.Strings(names)
		e.CalledBy = names
	}
	return nil
}

// resolveCall maps one raw call string to a qualified or unresolved form.
func (r *Resolver) resolveCall(raw string, caller *entity.Entity) string {
	idx := strings.LastIndex(raw, ".")
	if idx < 0 {
		// Bare name: same-class call against the caller's enclosing chain.
		candidate := fqn.Join(fqn.Enclosing(caller.QualifiedName), raw)
		if _, ok := r.registry.Lookup(candidate); ok {
			return candidate
		}
		return UnresolvedPrefix + raw
	}

	// The receiver may itself be a chained expression; it is kept literal,
	// so only a plain identifier receiver can match a class or field.
	receiver, name := raw[:idx], raw[idx+1:]

	if qualified := r.resolveReceiver(receiver, name); qualified != "" {
		return qualified
	}
	if fieldType, ok := r.fields.Lookup(caller.ClassName, receiver); ok {
		if qualified := r.resolveReceiver(fieldType, name); qualified != "" {
			return qualified
		}
	}
	return UnresolvedPrefix + name
}

// resolveReceiver qualifies a call through a receiver taken as a type
// reference: a known class-like simple name resolves to its corpus
// qualified name; a capitalized plain identifier is kept as an external
// class reference. Anything else does not resolve.
func (r *Resolver) resolveReceiver(receiver, name string) string {
	if qn, ok := r.registry.ClassQN(receiver); ok {
		return qn + "." + name
	}
	if isCapitalizedIdentifier(receiver) {
		return receiver + "." + name
	}
	return ""
}

// isCapitalizedIdentifier reports whether s is a plain identifier starting
// with an upper-case letter, the heuristic for a class name used as a
// call receiver.
func isCapitalizedIdentifier(s string) bool {
	first, size := utf8.DecodeRuneInString(s)
	if size == 0 || !unicode.IsUpper(first) {
		return false
	}
	for _, r := range s[size:] {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '$' {
			return false
		}
	}
	return true
}
