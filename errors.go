package flagctx

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeParseError    = "parse_error"
	CodeInvalidKind   = "invalid_kind"
	CodeEmptyKey      = "empty_key"
	CodeEmptyMulti    = "empty_multi"
	CodeMalformedMeta = "malformed_meta"
	// Builder-level codes (multi-context assembly)
	CodeDuplicateKind = "duplicate_kind"
	CodeNestedMulti   = "nested_multi"
	// Encoding a zero-value Context that never went through a builder.
	CodeUninitialized = "uninitialized_context"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /org/key).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints.
	Cause   error  // Optional: underlying error.
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_kind at /kind: context kind cannot be null
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Message != "" {
			fmt.Fprintf(b, ": %s", it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// HasCode reports whether the error carries at least one Issue with the
// given code.
func HasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// issueAt creates an Issue at the given JSON Pointer path.
func issueAt(path, code, msg string) Issue {
	return Issue{Path: path, Code: code, Message: msg}
}

// pointerEscape escapes a field name for use in a JSON Pointer:
// '~' -> '~0', '/' -> '~1' per RFC 6901.
func pointerEscape(name string) string {
	return strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
}

// rebaseIssues prefixes every issue path with /<field>, pointing findings
// from a nested context at their place in the enclosing document.
func rebaseIssues(iss Issues, field string) Issues {
	p := "/" + pointerEscape(field)
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
