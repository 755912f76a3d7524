package attr

import (
	"errors"
	"strings"
)

// Ref parsing errors, reported by Ref.Err.
var (
	ErrRefEmpty          = errors.New("attribute reference cannot be empty")
	ErrRefEmptyComponent = errors.New("attribute reference has an empty path component")
	ErrRefInvalidEscape  = errors.New("attribute reference has an invalid ~ escape (expected ~0 or ~1)")
)

// Ref is a reference to a context attribute: either a plain attribute name,
// or a slash-prefixed path addressing a nested value, such as "/address/city".
// Path components unescape "~1" to "/" and "~0" to "~".
//
// A Ref is never rejected outright: an unparsable input keeps its raw string
// (so it survives serialization unchanged) and reports the problem via Err.
// The zero Ref is the empty, invalid reference.
type Ref struct {
	raw        string
	components []string
	err        error
}

// NewRef parses an attribute reference. Input not starting with "/" is a
// single literal attribute name. Input starting with "/" is a path; each
// component must be non-empty and use only valid "~" escapes.
func NewRef(raw string) Ref {
	if raw == "" {
		return Ref{raw: raw, err: ErrRefEmpty}
	}
	if !strings.HasPrefix(raw, "/") {
		return Ref{raw: raw, components: []string{raw}}
	}
	if raw == "/" {
		return Ref{raw: raw, err: ErrRefEmptyComponent}
	}
	parts := strings.Split(raw[1:], "/")
	components := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			return Ref{raw: raw, err: ErrRefEmptyComponent}
		}
		c, err := unescapeRefComponent(p)
		if err != nil {
			return Ref{raw: raw, err: err}
		}
		components = append(components, c)
	}
	return Ref{raw: raw, components: components}
}

// NewNameRef builds a Ref that treats the whole input as one literal
// attribute name, never as a path. "/a/b" becomes the attribute named
// "/a/b" itself, escaped accordingly in String.
func NewNameRef(name string) Ref {
	if name == "" {
		return Ref{raw: name, err: ErrRefEmpty}
	}
	if !strings.HasPrefix(name, "/") {
		return Ref{raw: name, components: []string{name}}
	}
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return Ref{raw: "/" + esc, components: []string{name}}
}

// unescapeRefComponent reverses the RFC 6901 style escaping: "~1" -> "/",
// "~0" -> "~". Any other "~" sequence is an error.
func unescapeRefComponent(s string) (string, error) {
	if !strings.Contains(s, "~") {
		return s, nil
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '~' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			return "", ErrRefInvalidEscape
		}
		switch s[i] {
		case '0':
			b.WriteByte('~')
		case '1':
			b.WriteByte('/')
		default:
			return "", ErrRefInvalidEscape
		}
	}
	return b.String(), nil
}

// String returns the raw reference string, exactly as it serializes.
func (r Ref) String() string { return r.raw }

// IsValid reports whether the reference parsed successfully.
func (r Ref) IsValid() bool { return r.err == nil }

// Err returns the parse error, or nil for a valid reference.
func (r Ref) Err() error { return r.err }

// Depth returns the number of path components, or 0 for invalid references.
func (r Ref) Depth() int { return len(r.components) }

// Component returns the i-th unescaped path component, or "" when out of
// range.
func (r Ref) Component(i int) string {
	if i < 0 || i >= len(r.components) {
		return ""
	}
	return r.components[i]
}

// Equal reports whether two references have the same raw string.
func (r Ref) Equal(other Ref) bool { return r.raw == other.raw }

// MarshalText implements encoding.TextMarshaler.
func (r Ref) MarshalText() ([]byte, error) { return []byte(r.raw), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Ref) UnmarshalText(text []byte) error {
	*r = NewRef(string(text))
	return nil
}
