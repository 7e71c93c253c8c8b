package annotator

import "fmt"

// PublicMarker is prefixed onto the documentation of stable public API.
const PublicMarker = "--Public API--"

// Kind is the tag of a Directive.
type Kind int

const (
	KindPublic Kind = iota
	KindVersionAdded
	KindDeprecated
)

func (k Kind) String() string {
	switch k {
	case KindPublic:
		return "public"
	case KindVersionAdded:
		return "versionadded"
	case KindDeprecated:
		return "deprecated"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps a kind name ("public", "versionadded", "deprecated") to
// its Kind. "new" is accepted as an alias of "versionadded", matching the
// MarkNew* constructors.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "public":
		return KindPublic, nil
	case "versionadded", "new":
		return KindVersionAdded, nil
	case "deprecated":
		return KindDeprecated, nil
	default:
		return 0, fmt.Errorf("unknown directive kind %q (valid: public, versionadded or its alias new, deprecated)", s)
	}
}

// Directive is one annotation to insert. An empty Argument targets the
// text after the summary line; otherwise the named argument's description.
// Public directives ignore Version, Message and Argument.
type Directive struct {
	Kind     Kind
	Version  string
	Message  string
	Argument string
}

// Text returns the literal text the directive inserts.
func (d Directive) Text() string {
	switch d.Kind {
	case KindPublic:
		return PublicMarker
	case KindVersionAdded:
		return ".. versionadded:: " + d.Version + "\n    " + d.Message
	case KindDeprecated:
		return ".. deprecated:: " + d.Version + "\n    " + d.Message
	default:
		return ""
	}
}

func (d Directive) String() string {
	switch {
	case d.Kind == KindPublic:
		return d.Kind.String()
	case d.Argument != "":
		return fmt.Sprintf("%s %s (argument %s)", d.Kind, d.Version, d.Argument)
	default:
		return fmt.Sprintf("%s %s", d.Kind, d.Version)
	}
}

// MarkPublic tags a callable as part of the public API.
func MarkPublic() Directive {
	return Directive{Kind: KindPublic}
}

// MarkDeprecatedMethod adds a deprecation note after the summary line.
func MarkDeprecatedMethod(version, message string) Directive {
	return Directive{Kind: KindDeprecated, Version: version, Message: message}
}

// MarkNewMethod adds a version-added note after the summary line.
func MarkNewMethod(version, message string) Directive {
	return Directive{Kind: KindVersionAdded, Version: version, Message: message}
}

// MarkDeprecatedArgument adds a deprecation note below the description of
// argument.
func MarkDeprecatedArgument(argument, version, message string) Directive {
	return Directive{Kind: KindDeprecated, Version: version, Message: message, Argument: argument}
}

// MarkNewArgument adds a version-added note below the description of
// argument.
func MarkNewArgument(argument, version, message string) Directive {
	return Directive{Kind: KindVersionAdded, Version: version, Message: message, Argument: argument}
}
