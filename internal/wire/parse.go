package wire

import (
	"sort"
	"strconv"
	"strings"

	"github.com/flagctx/flagctx/attr"
)

// Issue is a minimal validation finding used inside the wire layer. The
// root package converts these into its public issue type.
type Issue struct {
	Path    string
	Code    string
	Message string
}

// Issues aggregates wire-level findings and implements error.
type Issues []Issue

func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	return iss[0].Code + " at " + iss[0].Path + ": " + iss[0].Message
}

// escapePointer escapes a field name for use in a JSON Pointer:
// '~' -> '~0', '/' -> '~1' per RFC 6901.
func escapePointer(name string) string {
	return strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
}

// rebase prefixes every issue path with /<field>, so findings inside a
// nested record point into the enclosing document.
func rebase(iss Issues, field string) Issues {
	p := "/" + escapePointer(field)
	out := make(Issues, len(iss))
	for i, it := range iss {
		if it.Path == "" || it.Path == "/" {
			it.Path = p
		} else {
			it.Path = p + it.Path
		}
		out[i] = it
	}
	return out
}

// ---- discriminator ----

// Classify inspects the kind field of an already-parsed JSON object and
// reports which wire shape the document uses. The decision depends on the
// type and presence of kind alone:
//
//	absent            -> VariantLegacy
//	null              -> error (kind cannot be null)
//	non-string        -> error (kind must be a string)
//	""                -> error (kind cannot be empty string)
//	"kind"            -> error (kind cannot be "kind")
//	"multi"           -> VariantMulti
//	any other string  -> VariantSingle
//
// Trying the shapes in order instead would misroute documents: a legacy
// parser happily ignores a kind of the wrong type as an unknown field.
func Classify(doc map[string]any) (Variant, error) {
	raw, present := doc["kind"]
	if !present {
		return VariantLegacy, nil
	}
	switch k := raw.(type) {
	case string:
		switch k {
		case "multi":
			return VariantMulti, nil
		case "":
			return 0, Issues{{Path: "/kind", Code: "invalid_kind", Message: "context kind cannot be empty string"}}
		case "kind":
			return 0, Issues{{Path: "/kind", Code: "invalid_kind", Message: `context kind cannot be "kind"`}}
		default:
			return VariantSingle, nil
		}
	case nil:
		return 0, Issues{{Path: "/kind", Code: "invalid_kind", Message: "context kind cannot be null"}}
	default:
		return 0, Issues{{Path: "/kind", Code: "invalid_kind", Message: "context kind must be a string"}}
	}
}

// ---- shape parsers ----

// ParseValue parses a decoded JSON tree into the discriminated wire
// document. The root of a context document must be a JSON object.
func ParseValue(v any) (Document, error) {
	doc, ok := v.(map[string]any)
	if !ok {
		return Document{}, Issues{{Path: "/", Code: "invalid_type", Message: "context must be a JSON object"}}
	}
	variant, err := Classify(doc)
	if err != nil {
		return Document{}, err
	}
	switch variant {
	case VariantMulti:
		m, err := parseMulti(doc)
		if err != nil {
			return Document{}, err
		}
		return Document{Variant: VariantMulti, Multi: m}, nil
	case VariantSingle:
		s, err := parseSingle(doc)
		if err != nil {
			return Document{}, err
		}
		return Document{Variant: VariantSingle, Single: s}, nil
	default:
		l, err := parseLegacy(doc)
		if err != nil {
			return Document{}, err
		}
		return Document{Variant: VariantLegacy, Legacy: l}, nil
	}
}

// parseMulti reads a multi-kind document: every key other than the "multi"
// discriminator names a kind whose value is a nested single-kind object.
func parseMulti(doc map[string]any) (*Multi, error) {
	entries := make(map[string]Nested, len(doc)-1)
	kinds := make([]string, 0, len(doc)-1)
	for k := range doc {
		if k != "kind" {
			kinds = append(kinds, k)
		}
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		if kind == "" {
			return nil, Issues{{Path: "/", Code: "invalid_kind", Message: "context kind cannot be empty string"}}
		}
		obj, ok := doc[kind].(map[string]any)
		if !ok {
			return nil, Issues{{Path: "/" + escapePointer(kind), Code: "invalid_type", Message: "nested context must be a JSON object"}}
		}
		nested, err := parseNested(obj)
		if err != nil {
			if iss, ok := err.(Issues); ok {
				return nil, rebase(iss, kind)
			}
			return nil, err
		}
		entries[kind] = *nested
	}
	if len(entries) == 0 {
		return nil, Issues{{Path: "/", Code: "empty_multi", Message: "multi-kind context must contain at least one nested context"}}
	}
	return &Multi{Entries: entries}, nil
}

// parseSingle reads a standalone single-kind document; the discriminator
// already guarantees kind is a usable string.
func parseSingle(doc map[string]any) (*Single, error) {
	kind := doc["kind"].(string)
	rest := make(map[string]any, len(doc)-1)
	for k, v := range doc {
		if k != "kind" {
			rest[k] = v
		}
	}
	nested, err := parseNested(rest)
	if err != nil {
		return nil, err
	}
	return &Single{Kind: kind, Nested: *nested}, nil
}

// parseNested reads the body of a single-kind context: the named fields
// key, name, anonymous and _meta, with every other field routed into the
// open attribute map. Explicit null on an optional named field counts as
// absent.
func parseNested(obj map[string]any) (*Nested, error) {
	n := &Nested{}

	raw, present := obj["key"]
	if !present {
		return nil, Issues{{Path: "/key", Code: "required", Message: "context key is required"}}
	}
	key, ok := raw.(string)
	if !ok {
		return nil, Issues{{Path: "/key", Code: "invalid_type", Message: "context key must be a string"}}
	}
	if key == "" {
		return nil, Issues{{Path: "/key", Code: "empty_key", Message: "context key cannot be empty"}}
	}
	n.Key = key

	for _, field := range sortedKeys(obj) {
		v := obj[field]
		switch field {
		case "key":
			// handled above
		case "name":
			s, err := optionalString(v, "/name", "context name must be a string")
			if err != nil {
				return nil, err
			}
			n.Name = s
		case "anonymous":
			b, err := optionalBool(v, "/anonymous", "anonymous must be a boolean")
			if err != nil {
				return nil, err
			}
			n.Anonymous = b
		case "_meta":
			m, err := parseMeta(v)
			if err != nil {
				return nil, err
			}
			n.Meta = m
		default:
			if n.Attributes == nil {
				n.Attributes = make(map[string]attr.Value)
			}
			n.Attributes[field] = attr.FromAny(v)
		}
	}
	return n, nil
}

// parseMeta reads the _meta object. Anything other than an object or null
// violates the meta invariant; unknown fields inside _meta are ignored.
func parseMeta(v any) (*Meta, error) {
	if v == nil {
		return nil, nil
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, Issues{{Path: "/_meta", Code: "malformed_meta", Message: "_meta must be a JSON object"}}
	}
	m := &Meta{}
	if raw, present := obj["secondary"]; present {
		s, err := optionalString(raw, "/_meta/secondary", "secondary must be a string")
		if err != nil {
			return nil, err
		}
		m.Secondary = s
	}
	if raw, present := obj["privateAttributes"]; present {
		refs, err := refList(raw, "/_meta/privateAttributes")
		if err != nil {
			return nil, err
		}
		m.PrivateAttributes = refs
	}
	if m.IsEmpty() {
		return nil, nil
	}
	return m, nil
}

// parseLegacy reads the pre-unified user shape. Only key is required;
// every recognized optional field is strictly typed, and unrecognized
// top-level fields are dropped without error.
func parseLegacy(doc map[string]any) (*LegacyUser, error) {
	l := &LegacyUser{}

	raw, present := doc["key"]
	if !present {
		return nil, Issues{{Path: "/key", Code: "required", Message: "user key is required"}}
	}
	key, ok := raw.(string)
	if !ok {
		return nil, Issues{{Path: "/key", Code: "invalid_type", Message: "user key must be a string"}}
	}
	l.Key = key // empty keys are tolerated for legacy users

	strFields := []struct {
		name string
		dst  **string
	}{
		{"secondary", &l.Secondary},
		{"ip", &l.IP},
		{"country", &l.Country},
		{"email", &l.Email},
		{"firstName", &l.FirstName},
		{"lastName", &l.LastName},
		{"avatar", &l.Avatar},
		{"name", &l.Name},
	}
	for _, f := range strFields {
		if raw, present := doc[f.name]; present {
			s, err := optionalString(raw, "/"+f.name, f.name+" must be a string")
			if err != nil {
				return nil, err
			}
			*f.dst = s
		}
	}

	if raw, present := doc["anonymous"]; present {
		b, err := optionalBool(raw, "/anonymous", "anonymous must be a boolean")
		if err != nil {
			return nil, err
		}
		l.Anonymous = b
	}

	if raw, present := doc["custom"]; present && raw != nil {
		obj, ok := raw.(map[string]any)
		if !ok {
			return nil, Issues{{Path: "/custom", Code: "invalid_type", Message: "custom must be a JSON object"}}
		}
		l.Custom = make(map[string]attr.Value, len(obj))
		for k, v := range obj {
			l.Custom[k] = attr.FromAny(v)
		}
	}

	if raw, present := doc["privateAttributeNames"]; present {
		refs, err := refList(raw, "/privateAttributeNames")
		if err != nil {
			return nil, err
		}
		l.PrivateAttributeNames = refs
	}

	return l, nil
}

// ---- field helpers ----

func optionalString(v any, path, msg string) (*string, error) {
	if v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, Issues{{Path: path, Code: "invalid_type", Message: msg}}
	}
	return &s, nil
}

func optionalBool(v any, path, msg string) (*bool, error) {
	if v == nil {
		return nil, nil
	}
	b, ok := v.(bool)
	if !ok {
		return nil, Issues{{Path: path, Code: "invalid_type", Message: msg}}
	}
	return &b, nil
}

// refList parses an array of attribute reference strings; null counts as
// absent. Unparsable references are kept with their error attached so they
// survive a round trip unchanged.
func refList(v any, path string) ([]attr.Ref, error) {
	if v == nil {
		return nil, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, Issues{{Path: path, Code: "invalid_type", Message: "attribute references must be an array of strings"}}
	}
	refs := make([]attr.Ref, 0, len(arr))
	for i, item := range arr {
		s, ok := item.(string)
		if !ok {
			return nil, Issues{{Path: path + "/" + strconv.Itoa(i), Code: "invalid_type", Message: "attribute reference must be a string"}}
		}
		refs = append(refs, attr.NewRef(s))
	}
	return refs, nil
}

func sortedKeys(m map[string]any) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}
