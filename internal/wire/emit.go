package wire

import (
	"github.com/goccy/go-json"
)

// Emit serializes a wire document as canonical JSON. Only the modern
// shapes are writable; the legacy shape exists for input alone, so
// reaching it here is a programmer error.
func Emit(doc Document) ([]byte, error) {
	return json.Marshal(EmitTree(doc))
}

// EmitTree renders the document as a generic JSON tree with the canonical
// omission rules applied: absent name, false anonymous, and empty _meta
// produce no output at all.
func EmitTree(doc Document) map[string]any {
	switch doc.Variant {
	case VariantSingle:
		out := nestedTree(doc.Single.Nested)
		out["kind"] = doc.Single.Kind
		return out
	case VariantMulti:
		out := make(map[string]any, len(doc.Multi.Entries)+1)
		out["kind"] = "multi"
		for kind, nested := range doc.Multi.Entries {
			out[kind] = nestedTree(nested)
		}
		return out
	default:
		panic("wire: cannot serialize implicit user contexts")
	}
}

func nestedTree(n Nested) map[string]any {
	out := make(map[string]any, len(n.Attributes)+4)
	for k, v := range n.Attributes {
		out[k] = v.AsAny()
	}
	out["key"] = n.Key
	if n.Name != nil {
		out["name"] = *n.Name
	}
	if n.Anonymous != nil && *n.Anonymous {
		out["anonymous"] = true
	}
	if !n.Meta.IsEmpty() {
		meta := make(map[string]any, 2)
		if n.Meta.Secondary != nil {
			meta["secondary"] = *n.Meta.Secondary
		}
		if len(n.Meta.PrivateAttributes) > 0 {
			refs := make([]string, len(n.Meta.PrivateAttributes))
			for i, r := range n.Meta.PrivateAttributes {
				refs[i] = r.String()
			}
			meta["privateAttributes"] = refs
		}
		out["_meta"] = meta
	}
	return out
}
