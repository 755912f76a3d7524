package flagctx

import (
	"sort"

	"github.com/goccy/go-json"

	"github.com/flagctx/flagctx/attr"
	"github.com/flagctx/flagctx/internal/wire"
)

// DecodeJSON parses a context from JSON. All three wire shapes are
// accepted: the legacy user format, the modern single-kind format, and the
// modern multi-kind format. Legacy input is normalized to a single-kind
// context of DefaultKind.
func DecodeJSON(data []byte) (Context, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return Context{}, Issues{{Path: "/", Code: CodeParseError, Message: "malformed JSON document", Cause: err}}
	}
	return DecodeValue(v)
}

// DecodeValue decodes a context from an already-parsed JSON tree
// (map[string]any, []any, string, float64/json.Number, bool, nil), for
// callers that hold a context embedded in a larger decoded document.
func DecodeValue(v any) (Context, error) {
	doc, err := wire.ParseValue(v)
	if err != nil {
		return Context{}, fromWireIssues(err)
	}
	switch doc.Variant {
	case wire.VariantMulti:
		return contextFromMulti(doc.Multi)
	case wire.VariantSingle:
		return contextFromSingle(doc.Single)
	default:
		return contextFromLegacy(doc.Legacy)
	}
}

// UnmarshalJSON implements json.Unmarshaler, so a Context field decodes
// in place inside larger payloads.
func (c *Context) UnmarshalJSON(data []byte) error {
	dc, err := DecodeJSON(data)
	if err != nil {
		return err
	}
	*c = dc
	return nil
}

// fromWireIssues converts wire-level findings into the public issue type.
func fromWireIssues(err error) Issues {
	wi, ok := err.(wire.Issues)
	if !ok {
		return Issues{{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err}}
	}
	var iss Issues
	for _, s := range wi {
		iss = AppendIssues(iss, Issue{Code: s.Code, Path: s.Path, Message: s.Message})
	}
	return iss
}

// ---- wire -> model conversion ----

// applyNested feeds one nested wire record into a Builder. The application
// order is fixed: attributes, anonymous, name, secondary, private
// references. The caller assigns the kind afterwards, so an attribute
// named "kind" redirected by TrySetValue cannot win over the real one.
func applyNested(b *Builder, n wire.Nested) *Builder {
	for _, k := range sortedAttrNames(n.Attributes) {
		b.SetValue(k, n.Attributes[k])
	}
	if n.Anonymous != nil {
		b.Anonymous(*n.Anonymous)
	}
	if n.Name != nil {
		b.Name(*n.Name)
	}
	if n.Meta != nil {
		if n.Meta.Secondary != nil {
			b.Secondary(*n.Meta.Secondary)
		}
		b.Private(n.Meta.PrivateAttributes...)
	}
	return b
}

func contextFromSingle(s *wire.Single) (Context, error) {
	b := NewBuilder(s.Key)
	return applyNested(b, s.Nested).Kind(Kind(s.Kind)).Build()
}

func contextFromMulti(m *wire.Multi) (Context, error) {
	kinds := make([]string, 0, len(m.Entries))
	for k := range m.Entries {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)

	mb := NewMultiBuilder()
	for _, kind := range kinds {
		n := m.Entries[kind]
		b := NewBuilder(n.Key)
		c, err := applyNested(b, n).Kind(Kind(kind)).Build()
		if err != nil {
			if iss, ok := AsIssues(err); ok {
				return Context{}, rebaseIssues(iss, kind)
			}
			return Context{}, err
		}
		mb.Add(c)
	}
	return mb.Build()
}

// contextFromLegacy projects the legacy user record onto the modern model:
// secondary moves under _meta, firstName/lastName keep their wire-level
// camelCase as attribute names, custom entries become attributes unless
// they would shadow a built-in field, and the kind becomes DefaultKind.
func contextFromLegacy(u *wire.LegacyUser) (Context, error) {
	b := NewBuilder(u.Key)
	b.AllowEmptyKey()
	if u.Anonymous != nil {
		b.Anonymous(*u.Anonymous)
	}
	if u.Secondary != nil {
		b.Secondary(*u.Secondary)
	}
	if u.Name != nil {
		b.Name(*u.Name)
	}
	if u.Avatar != nil {
		b.SetString("avatar", *u.Avatar)
	}
	if u.FirstName != nil {
		b.SetString("firstName", *u.FirstName)
	}
	if u.LastName != nil {
		b.SetString("lastName", *u.LastName)
	}
	if u.Country != nil {
		b.SetString("country", *u.Country)
	}
	if u.Email != nil {
		b.SetString("email", *u.Email)
	}
	if u.IP != nil {
		b.SetString("ip", *u.IP)
	}
	for _, k := range sortedAttrNames(u.Custom) {
		if isReservedAttribute(k) {
			continue
		}
		b.SetValue(k, u.Custom[k])
	}
	b.Private(u.PrivateAttributeNames...)
	return b.Build()
}

// isReservedAttribute reports whether a legacy custom attribute name would
// shadow a built-in field of the modern shape and must be dropped.
func isReservedAttribute(name string) bool {
	switch name {
	case "kind", "key", "name", "anonymous", "_meta":
		return true
	}
	return false
}

func sortedAttrNames(m map[string]attr.Value) []string {
	if len(m) == 0 {
		return nil
	}
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
