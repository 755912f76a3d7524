package flagctx

import "sort"

// MultiBuilder assembles a multi-context from single-kind contexts. Start
// with NewMultiBuilder; Add contexts in any order.
type MultiBuilder struct {
	contexts []Context
}

// NewMultiBuilder starts an empty MultiBuilder.
func NewMultiBuilder() *MultiBuilder {
	return &MultiBuilder{}
}

// Add appends a single-kind context. Validation happens in Build.
func (mb *MultiBuilder) Add(c Context) *MultiBuilder {
	mb.contexts = append(mb.contexts, c)
	return mb
}

// Build validates and returns the multi-context. At least one context is
// required, nested contexts must be single-kind, and kinds must not
// repeat. A multi-context of exactly one kind is the same thing as that
// single context, so it is returned directly. Nested contexts are stored
// sorted by kind.
func (mb *MultiBuilder) Build() (Context, error) {
	if len(mb.contexts) == 0 {
		return Context{}, Issues{issueAt("/", CodeEmptyMulti, "multi-kind context must contain at least one nested context")}
	}

	var iss Issues
	seen := make(map[Kind]struct{}, len(mb.contexts))
	for _, c := range mb.contexts {
		if !c.defined {
			iss = AppendIssues(iss, issueAt("/", CodeUninitialized, "multi-kind context cannot contain an uninitialized context"))
			continue
		}
		if c.IsMulti() {
			iss = AppendIssues(iss, issueAt("/", CodeNestedMulti, "multi-kind context cannot contain another multi-kind context"))
			continue
		}
		if _, dup := seen[c.kind]; dup {
			iss = AppendIssues(iss, issueAt("/"+pointerEscape(string(c.kind)), CodeDuplicateKind, "multi-kind context cannot contain two contexts of the same kind"))
			continue
		}
		seen[c.kind] = struct{}{}
	}
	if len(iss) > 0 {
		return Context{}, iss
	}

	if len(mb.contexts) == 1 {
		return mb.contexts[0], nil
	}

	nested := make([]Context, len(mb.contexts))
	copy(nested, mb.contexts)
	sort.Slice(nested, func(i, j int) bool { return nested[i].kind < nested[j].kind })
	return Context{defined: true, kind: MultiKind, multi: nested}, nil
}
