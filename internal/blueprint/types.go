package blueprint

import "fmt"

// Variable type constants for the type discriminator field.
const (
	TypeString = "string"
	TypeBool   = "bool"
	TypeChoice = "choice"
)

// ValidTypes contains all valid variable type values.
var ValidTypes = []string{TypeString, TypeBool, TypeChoice}

// Generator constants for computed defaults.
const (
	GeneratorDeveloperName = "developer-name"
)

// Kind discriminates the representations of a resolved Value.
type Kind int

// KindString and related constants enumerate the value variants.
const (
	KindString Kind = iota
	KindBool
	KindChoice
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return TypeString
	case KindBool:
		return TypeBool
	case KindChoice:
		return TypeChoice
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a resolved variable value. Str carries string and choice values,
// Bool carries booleans; the other field is ignored for a given Kind.
type Value struct {
	Kind Kind
	Str  string
	Bool bool
}

// StringValue wraps s as a string-kinded value.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// BoolValue wraps b as a bool-kinded value.
func BoolValue(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// ChoiceValue wraps s as a choice-kinded value.
func ChoiceValue(s string) Value { return Value{Kind: KindChoice, Str: s} }

// Scalar returns the native Go representation, for template data and
// answer records.
func (v Value) Scalar() any {
	if v.Kind == KindBool {
		return v.Bool
	}
	return v.Str
}

// Display renders the value for prompts and logs.
func (v Value) Display() string {
	if v.Kind == KindBool {
		if v.Bool {
			return "true"
		}
		return "false"
	}
	return v.Str
}

// Variable declares one configurable option: its name, type, prompt text,
// default source, and constraints. At most one of Default, DefaultTemplate,
// and Generator may be set.
type Variable struct {
	Name            string   `yaml:"name"`
	Type            string   `yaml:"type"`
	Prompt          string   `yaml:"prompt,omitempty"`
	Description     string   `yaml:"description,omitempty"`
	Default         any      `yaml:"default,omitempty"`
	DefaultTemplate string   `yaml:"default_template,omitempty"`
	Generator       string   `yaml:"generator,omitempty"`
	Choices         []string `yaml:"choices,omitempty"`
	Pattern         string   `yaml:"pattern,omitempty"`
	Email           bool     `yaml:"email,omitempty"`
}

// HasDefault reports whether the variable resolves without an answer.
// Booleans always default (to false) unless declared otherwise.
func (v *Variable) HasDefault() bool {
	return v.Type == TypeBool || v.Default != nil || v.DefaultTemplate != "" || v.Generator != ""
}

// FileRule associates a template file with an optional inclusion predicate.
// A file with no predicate is always materialized. Raw files are copied
// verbatim without placeholder substitution.
type FileRule struct {
	Path string     `yaml:"path"`
	When *Predicate `yaml:"when,omitempty"`
	Raw  bool       `yaml:"raw,omitempty"`
}

// Blueprint is the static declaration driving one scaffold: variables in
// prompt order, and the file rules for the template corpus.
type Blueprint struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	MinVersion  string     `yaml:"min_version,omitempty"`
	Variables   []Variable `yaml:"variables"`
	Files       []FileRule `yaml:"files"`
}

// Variable returns the declaration for name, if present.
func (bp *Blueprint) Variable(name string) (*Variable, bool) {
	for i := range bp.Variables {
		if bp.Variables[i].Name == name {
			return &bp.Variables[i], true
		}
	}
	return nil, false
}

// ValidationError reports a variable that cannot be resolved or a defect in
// the blueprint itself: a missing value with no default, a constraint
// violation, an undeclared reference, or a default dependency cycle.
type ValidationError struct {
	Variable   string
	Constraint string
}

func (e *ValidationError) Error() string {
	if e.Variable == "" {
		return e.Constraint
	}
	return fmt.Sprintf("variable %q: %s", e.Variable, e.Constraint)
}
