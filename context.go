package flagctx

import (
	"sort"

	"github.com/flagctx/flagctx/attr"
)

// Context is the evaluation subject of a feature-flag query: a
// kind-qualified identity plus its attributes, or a container of several
// such identities (a multi-context).
//
// A Context is immutable and safe for concurrent use. Values are produced
// by Builder and MultiBuilder, or by decoding one of the wire shapes; the
// zero Context is uninitialized and cannot be encoded.
type Context struct {
	defined bool

	kind Kind
	key  string

	name      string
	hasName   bool
	anonymous bool

	secondary    string
	hasSecondary bool

	attributes map[string]attr.Value
	private    []attr.Ref

	// multi holds the nested contexts of a multi-context, sorted by kind.
	// Non-nil iff kind == MultiKind.
	multi []Context
}

// Defined reports whether the Context was produced by a builder or a
// decode, as opposed to being a zero value.
func (c Context) Defined() bool { return c.defined }

// Kind returns the context kind; MultiKind for multi-contexts.
func (c Context) Kind() Kind { return c.kind }

// IsMulti reports whether the context holds several nested kinds.
func (c Context) IsMulti() bool { return c.kind.IsMulti() }

// Key returns the context key. Multi-contexts have no key of their own.
func (c Context) Key() string { return c.key }

// Name returns the optional name and whether it was set.
func (c Context) Name() (string, bool) { return c.name, c.hasName }

// Anonymous reports whether the context was marked anonymous.
func (c Context) Anonymous() bool { return c.anonymous }

// Secondary returns the optional secondary key and whether it was set.
func (c Context) Secondary() (string, bool) { return c.secondary, c.hasSecondary }

// Attribute returns the named custom attribute.
func (c Context) Attribute(name string) (attr.Value, bool) {
	v, ok := c.attributes[name]
	return v, ok
}

// AttributeNames returns the sorted names of all custom attributes.
func (c Context) AttributeNames() []string {
	if len(c.attributes) == 0 {
		return nil
	}
	names := make([]string, 0, len(c.attributes))
	for k := range c.attributes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// PrivateAttributes returns a copy of the private attribute references, in
// the order they were added.
func (c Context) PrivateAttributes() []attr.Ref {
	if len(c.private) == 0 {
		return nil
	}
	out := make([]attr.Ref, len(c.private))
	copy(out, c.private)
	return out
}

// Kinds returns the sorted kinds reachable in this context: the nested
// kinds of a multi-context, or the context's own kind.
func (c Context) Kinds() []Kind {
	if !c.defined {
		return nil
	}
	if !c.IsMulti() {
		return []Kind{c.kind}
	}
	ks := make([]Kind, len(c.multi))
	for i, nested := range c.multi {
		ks[i] = nested.kind
	}
	return ks
}

// Individual returns the single-kind context for the given kind. A
// single-kind context returns itself when the kind matches.
func (c Context) Individual(kind Kind) (Context, bool) {
	if !c.defined {
		return Context{}, false
	}
	if !c.IsMulti() {
		if c.kind == kind {
			return c, true
		}
		return Context{}, false
	}
	for _, nested := range c.multi {
		if nested.kind == kind {
			return nested, true
		}
	}
	return Context{}, false
}

// IndividualCount returns the number of single-kind contexts: len(Kinds()).
func (c Context) IndividualCount() int {
	if !c.defined {
		return 0
	}
	if !c.IsMulti() {
		return 1
	}
	return len(c.multi)
}

// Equal reports deep equality of two contexts: same kind, key, name,
// anonymous flag, secondary key, attributes, private references (in
// order), and nested contexts.
func (c Context) Equal(other Context) bool {
	if c.defined != other.defined ||
		c.kind != other.kind ||
		c.key != other.key ||
		c.hasName != other.hasName || c.name != other.name ||
		c.anonymous != other.anonymous ||
		c.hasSecondary != other.hasSecondary || c.secondary != other.secondary {
		return false
	}
	if len(c.attributes) != len(other.attributes) {
		return false
	}
	for k, v := range c.attributes {
		ov, ok := other.attributes[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	if len(c.private) != len(other.private) {
		return false
	}
	for i := range c.private {
		if !c.private[i].Equal(other.private[i]) {
			return false
		}
	}
	if len(c.multi) != len(other.multi) {
		return false
	}
	for i := range c.multi {
		if !c.multi[i].Equal(other.multi[i]) {
			return false
		}
	}
	return true
}

// String renders the context as its canonical JSON wire form.
func (c Context) String() string {
	data, err := EncodeJSON(c)
	if err != nil {
		return "(uninitialized context)"
	}
	return string(data)
}
