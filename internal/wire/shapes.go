package wire

import "github.com/flagctx/flagctx/attr"

// Variant identifies which of the three wire shapes a document used.
type Variant int

const (
	// VariantLegacy is the pre-unified user shape, accepted on input only.
	VariantLegacy Variant = iota
	// VariantSingle is the modern standalone single-kind shape.
	VariantSingle
	// VariantMulti is the modern multi-kind shape.
	VariantMulti
)

// Meta mirrors the "_meta" object of the modern shapes.
type Meta struct {
	Secondary         *string
	PrivateAttributes []attr.Ref
}

// IsEmpty reports whether the meta object would serialize to nothing.
func (m *Meta) IsEmpty() bool {
	return m == nil || (m.Secondary == nil && len(m.PrivateAttributes) == 0)
}

// Nested holds the fields of one single-kind context without its kind: the
// named fields plus the open attribute map that absorbs every unrecognized
// top-level key.
type Nested struct {
	Key        string
	Name       *string
	Anonymous  *bool
	Attributes map[string]attr.Value
	Meta       *Meta
}

// Single is a standalone modern single-kind document.
type Single struct {
	Kind string
	Nested
}

// Multi is a modern multi-kind document: one nested record per kind.
type Multi struct {
	Entries map[string]Nested
}

// LegacyUser is the pre-unified user shape. Recognized fields are typed;
// unrecognized top-level fields are dropped by the parser.
type LegacyUser struct {
	Key                   string
	Secondary             *string
	IP                    *string
	Country               *string
	Email                 *string
	FirstName             *string
	LastName              *string
	Avatar                *string
	Name                  *string
	Anonymous             *bool
	Custom                map[string]attr.Value
	PrivateAttributeNames []attr.Ref
}

// Document is the discriminated result of parsing one wire document.
// Exactly one of Single, Multi, Legacy is non-nil, matching Variant.
type Document struct {
	Variant Variant
	Single  *Single
	Multi   *Multi
	Legacy  *LegacyUser
}
