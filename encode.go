package flagctx

import (
	"github.com/flagctx/flagctx/attr"
	"github.com/flagctx/flagctx/internal/wire"
)

// EncodeJSON serializes the context into its canonical modern wire form:
// single-kind contexts as the standalone single-kind shape, multi-contexts
// as the multi-kind shape. The legacy user shape is never produced.
//
// Canonicalization omits defaults: an unset name, a false anonymous flag,
// and an empty _meta leave no trace on the wire.
func EncodeJSON(c Context) ([]byte, error) {
	doc, err := projectContext(c)
	if err != nil {
		return nil, err
	}
	return wire.Emit(doc)
}

// MarshalJSON implements json.Marshaler with the same canonical form.
func (c Context) MarshalJSON() ([]byte, error) { return EncodeJSON(c) }

// projectContext renders the model into a wire document. The legacy
// variant is not a possible output: decoding already normalized legacy
// input into a DefaultKind single-kind context.
func projectContext(c Context) (wire.Document, error) {
	if !c.defined {
		return wire.Document{}, Issues{issueAt("/", CodeUninitialized, "cannot encode an uninitialized context")}
	}
	if c.IsMulti() {
		if len(c.multi) == 0 {
			// Builders cannot produce this.
			panic("flagctx: multi-kind context must contain at least one nested context")
		}
		m := &wire.Multi{Entries: make(map[string]wire.Nested, len(c.multi))}
		for _, nested := range c.multi {
			m.Entries[string(nested.kind)] = projectNested(nested)
		}
		return wire.Document{Variant: wire.VariantMulti, Multi: m}, nil
	}
	return wire.Document{
		Variant: wire.VariantSingle,
		Single:  &wire.Single{Kind: string(c.kind), Nested: projectNested(c)},
	}, nil
}

// projectNested wraps anonymous and _meta as present optionals regardless
// of value; the serializer's omission rules decide what reaches the wire.
func projectNested(c Context) wire.Nested {
	n := wire.Nested{Key: c.key}
	if c.hasName {
		name := c.name
		n.Name = &name
	}
	anonymous := c.anonymous
	n.Anonymous = &anonymous
	meta := &wire.Meta{}
	if c.hasSecondary {
		secondary := c.secondary
		meta.Secondary = &secondary
	}
	if len(c.private) > 0 {
		meta.PrivateAttributes = append([]attr.Ref(nil), c.private...)
	}
	n.Meta = meta
	if len(c.attributes) > 0 {
		n.Attributes = make(map[string]attr.Value, len(c.attributes))
		for k, v := range c.attributes {
			n.Attributes[k] = v
		}
	}
	return n
}
