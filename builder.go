package flagctx

import (
	"github.com/flagctx/flagctx/attr"
)

// Builder assembles a single-kind Context. The zero value is not usable;
// start with NewBuilder. Setters may be called in any order and the
// builder may be reused after Build: the built Context shares no mutable
// state with it.
type Builder struct {
	kind Kind
	key  string

	name      string
	hasName   bool
	anonymous bool

	secondary    string
	hasSecondary bool

	attributes map[string]attr.Value
	private    []attr.Ref

	allowEmptyKey bool
}

// NewBuilder starts a Builder for a context with the given key. The kind
// defaults to DefaultKind unless Kind is called.
func NewBuilder(key string) *Builder {
	return &Builder{key: key}
}

// Key replaces the context key.
func (b *Builder) Key(key string) *Builder {
	b.key = key
	return b
}

// Kind sets the context kind. It is validated at Build time.
func (b *Builder) Kind(kind Kind) *Builder {
	b.kind = kind
	return b
}

// Name sets the optional context name.
func (b *Builder) Name(name string) *Builder {
	b.name = name
	b.hasName = true
	return b
}

// Anonymous marks the context as anonymous. False is the default and is
// omitted from the wire form.
func (b *Builder) Anonymous(anonymous bool) *Builder {
	b.anonymous = anonymous
	return b
}

// Secondary sets the optional secondary key, carried on the wire inside
// "_meta".
func (b *Builder) Secondary(secondary string) *Builder {
	b.secondary = secondary
	b.hasSecondary = true
	return b
}

// SetString sets a string-valued custom attribute.
func (b *Builder) SetString(name, value string) *Builder {
	return b.SetValue(name, attr.String(value))
}

// SetBool sets a boolean-valued custom attribute.
func (b *Builder) SetBool(name string, value bool) *Builder {
	return b.SetValue(name, attr.Bool(value))
}

// SetInt sets a numeric custom attribute.
func (b *Builder) SetInt(name string, value int) *Builder {
	return b.SetValue(name, attr.Int(value))
}

// SetFloat64 sets a numeric custom attribute.
func (b *Builder) SetFloat64(name string, value float64) *Builder {
	return b.SetValue(name, attr.Float64(value))
}

// SetValue sets a custom attribute, ignoring inputs TrySetValue rejects.
func (b *Builder) SetValue(name string, value attr.Value) *Builder {
	b.TrySetValue(name, value)
	return b
}

// TrySetValue sets a custom attribute and reports whether the input was
// usable. Built-in names redirect to the corresponding setter when the
// value type matches: "kind", "key" and "name" accept strings, "anonymous"
// accepts booleans; mismatched types are rejected. "_meta" is never
// settable this way. A null value removes the named attribute.
func (b *Builder) TrySetValue(name string, value attr.Value) bool {
	switch name {
	case "":
		return false
	case "kind":
		if value.Type() != attr.TypeString {
			return false
		}
		b.Kind(Kind(value.StringValue()))
		return true
	case "key":
		if value.Type() != attr.TypeString {
			return false
		}
		b.Key(value.StringValue())
		return true
	case "name":
		if value.Type() != attr.TypeString {
			return false
		}
		b.Name(value.StringValue())
		return true
	case "anonymous":
		if value.Type() != attr.TypeBool {
			return false
		}
		b.Anonymous(value.BoolValue())
		return true
	case "_meta":
		return false
	}
	if value.IsNull() {
		delete(b.attributes, name)
		return true
	}
	if b.attributes == nil {
		b.attributes = make(map[string]attr.Value)
	}
	b.attributes[name] = value
	return true
}

// Private appends attribute references to redact before the context leaves
// the SDK. Order is preserved.
func (b *Builder) Private(refs ...attr.Ref) *Builder {
	b.private = append(b.private, refs...)
	return b
}

// PrivateNames appends private attribute references that treat each input
// as one literal attribute name, never as a path.
func (b *Builder) PrivateNames(names ...string) *Builder {
	for _, n := range names {
		b.private = append(b.private, attr.NewNameRef(n))
	}
	return b
}

// AllowEmptyKey permits Build to accept an empty key. Contexts decoded
// from the legacy user format rely on this; new contexts should not.
func (b *Builder) AllowEmptyKey() *Builder {
	b.allowEmptyKey = true
	return b
}

// Build validates the accumulated state and returns the Context. An unset
// kind defaults to DefaultKind. Unparsable private references are carried
// as given; their errors surface through attr.Ref.Err, not here.
func (b *Builder) Build() (Context, error) {
	kind := b.kind
	if kind == "" {
		kind = DefaultKind
	}
	var iss Issues
	if err := kind.Validate(); err != nil {
		kindIss, _ := AsIssues(err)
		iss = AppendIssues(iss, kindIss...)
	}
	if b.key == "" && !b.allowEmptyKey {
		iss = AppendIssues(iss, issueAt("/key", CodeEmptyKey, "context key cannot be empty"))
	}
	if len(iss) > 0 {
		return Context{}, iss
	}

	c := Context{
		defined:      true,
		kind:         kind,
		key:          b.key,
		name:         b.name,
		hasName:      b.hasName,
		anonymous:    b.anonymous,
		secondary:    b.secondary,
		hasSecondary: b.hasSecondary,
	}
	if len(b.attributes) > 0 {
		c.attributes = make(map[string]attr.Value, len(b.attributes))
		for k, v := range b.attributes {
			c.attributes[k] = v
		}
	}
	if len(b.private) > 0 {
		c.private = make([]attr.Ref, len(b.private))
		copy(c.private, b.private)
	}
	return c, nil
}
