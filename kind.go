package flagctx

// Kind is the namespace tag of a Context, such as "user" or "org".
// Kinds are case-sensitive. "multi" is reserved for multi-contexts and
// "kind" is forbidden outright.
type Kind string

const (
	// DefaultKind is the kind assumed when none is given, and the kind of
	// every context decoded from the legacy user format.
	DefaultKind Kind = "user"
	// MultiKind is the reserved kind of a multi-context.
	MultiKind Kind = "multi"
)

// IsMulti reports whether the kind is the reserved multi-context kind.
func (k Kind) IsMulti() bool { return k == MultiKind }

// Validate checks that the kind is usable for a single-kind context:
// non-empty, not a reserved word, and made of letters, digits, '.', '_'
// or '-'. Case is never normalized and whitespace is never trimmed.
func (k Kind) Validate() error {
	switch k {
	case "":
		return Issues{issueAt("/kind", CodeInvalidKind, "context kind cannot be empty string")}
	case "kind":
		return Issues{issueAt("/kind", CodeInvalidKind, `context kind cannot be "kind"`)}
	case MultiKind:
		return Issues{issueAt("/kind", CodeInvalidKind, `context kind cannot be "multi" for a single-kind context`)}
	}
	for i := 0; i < len(k); i++ {
		if !isKindChar(k[i]) {
			return Issues{issueAt("/kind", CodeInvalidKind, "context kind can only contain letters, digits, '.', '_' or '-'")}
		}
	}
	return nil
}

func isKindChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') || c == '.' || c == '_' || c == '-'
}
