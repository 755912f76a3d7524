package flagctx

import (
	"gopkg.in/yaml.v3"
)

// DecodeYAML decodes a context authored as YAML, accepting the same three
// shapes as DecodeJSON. Useful for test fixtures and offline-evaluation
// files; the YAML tree is normalized into a JSON-like tree first.
func DecodeYAML(data []byte) (Context, error) {
	var node any
	if err := yaml.Unmarshal(data, &node); err != nil {
		return Context{}, Issues{{Path: "/", Code: CodeParseError, Message: "malformed YAML document", Cause: err}}
	}
	return DecodeValue(yamlNormalizeValue(node))
}

// yamlAnyToStringMap converts YAML-decoded values (which may contain
// map[any]any) into JSON-like map[string]any recursively. Non-map roots
// return nil; non-string keys are dropped.
func yamlAnyToStringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = yamlNormalizeValue(vv)
		}
		return out
	default:
		return nil
	}
}

func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return yamlAnyToStringMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlNormalizeValue(t[i])
		}
		return arr
	default:
		return v
	}
}
