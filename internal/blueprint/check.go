package blueprint

import (
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"

	"github.com/kiln-labs/kiln/internal/branding"
)

// Check runs the semantic validation the JSON Schema cannot express:
// duplicate declarations, choice set membership, default source conflicts,
// undeclared references in predicates and default templates, and default
// dependency cycles. The first defect found is returned as a
// ValidationError.
func (bp *Blueprint) Check() error {
	declared := make(map[string]bool, len(bp.Variables))
	for i := range bp.Variables {
		v := &bp.Variables[i]
		if declared[v.Name] {
			return &ValidationError{Variable: v.Name, Constraint: "declared more than once"}
		}
		declared[v.Name] = true
		if err := checkVariable(v); err != nil {
			return err
		}
	}

	seenPath := make(map[string]bool, len(bp.Files))
	for i := range bp.Files {
		f := &bp.Files[i]
		if f.Path == "" {
			return &ValidationError{Constraint: "file rule with empty path"}
		}
		if seenPath[f.Path] {
			return &ValidationError{Constraint: fmt.Sprintf("file %q listed more than once", f.Path)}
		}
		seenPath[f.Path] = true
		if f.When == nil {
			continue
		}
		if err := checkPredicate(f.When, f.Path); err != nil {
			return err
		}
		for _, name := range f.When.Vars() {
			if !declared[name] {
				return &ValidationError{
					Variable:   name,
					Constraint: fmt.Sprintf("referenced by predicate on %q but not declared", f.Path),
				}
			}
		}
	}

	// Validates default template references and rejects cycles.
	if _, err := bp.DefaultOrder(); err != nil {
		return err
	}
	return nil
}

// checkVariable validates a single declaration in isolation.
func checkVariable(v *Variable) error {
	switch v.Type {
	case TypeString, TypeBool, TypeChoice:
	default:
		return &ValidationError{Variable: v.Name, Constraint: fmt.Sprintf("unknown type %q", v.Type)}
	}

	if v.Type == TypeChoice && len(v.Choices) == 0 {
		return &ValidationError{Variable: v.Name, Constraint: "choice variable with no choices"}
	}
	if v.Type != TypeChoice && len(v.Choices) > 0 {
		return &ValidationError{Variable: v.Name, Constraint: "choices are only valid for choice variables"}
	}

	sources := 0
	if v.Default != nil {
		sources++
	}
	if v.DefaultTemplate != "" {
		sources++
	}
	if v.Generator != "" {
		sources++
	}
	if sources > 1 {
		return &ValidationError{Variable: v.Name, Constraint: "default, default_template, and generator are mutually exclusive"}
	}

	if v.DefaultTemplate != "" && v.Type != TypeString {
		return &ValidationError{Variable: v.Name, Constraint: "default_template is only valid for string variables"}
	}
	if v.Generator != "" {
		if v.Type != TypeString {
			return &ValidationError{Variable: v.Name, Constraint: "generator is only valid for string variables"}
		}
		if v.Generator != GeneratorDeveloperName {
			return &ValidationError{Variable: v.Name, Constraint: fmt.Sprintf("unknown generator %q", v.Generator)}
		}
	}

	if v.Default != nil {
		switch d := v.Default.(type) {
		case bool:
			if v.Type != TypeBool {
				return &ValidationError{Variable: v.Name, Constraint: fmt.Sprintf("boolean default on %s variable", v.Type)}
			}
		case string:
			switch v.Type {
			case TypeBool:
				return &ValidationError{Variable: v.Name, Constraint: "string default on bool variable"}
			case TypeChoice:
				if !contains(v.Choices, d) {
					return &ValidationError{Variable: v.Name, Constraint: fmt.Sprintf("default %q is not one of the declared choices", d)}
				}
			}
		default:
			return &ValidationError{Variable: v.Name, Constraint: fmt.Sprintf("default must be a string or boolean, got %T", v.Default)}
		}
	}

	if v.Pattern != "" {
		if v.Type == TypeBool {
			return &ValidationError{Variable: v.Name, Constraint: "pattern is not valid for bool variables"}
		}
		if _, err := regexp.Compile(v.Pattern); err != nil {
			return &ValidationError{Variable: v.Name, Constraint: fmt.Sprintf("invalid pattern: %v", err)}
		}
	}
	if v.Email && v.Type != TypeString {
		return &ValidationError{Variable: v.Name, Constraint: "email constraint is only valid for string variables"}
	}

	return nil
}

// checkPredicate rejects predicate shapes that would evaluate to a silent
// constant: an empty node, a variable test combined with a combinator, more
// than one combinator, or equals/in without a variable.
func checkPredicate(p *Predicate, filePath string) error {
	fail := func(reason string) error {
		return &ValidationError{Constraint: fmt.Sprintf("invalid predicate on %q: %s", filePath, reason)}
	}

	combinators := 0
	if p.Not != nil {
		combinators++
	}
	if len(p.All) > 0 {
		combinators++
	}
	if len(p.Any) > 0 {
		combinators++
	}

	switch {
	case p.Var == "" && combinators == 0:
		return fail("no variable test and no combinator")
	case p.Var != "" && combinators > 0:
		return fail("var cannot be combined with not/all/any")
	case combinators > 1:
		return fail("not, all, and any are mutually exclusive")
	case p.Var == "" && (p.Equals != nil || len(p.In) > 0):
		return fail("equals/in require var")
	case p.Equals != nil && len(p.In) > 0:
		return fail("equals and in are mutually exclusive")
	}

	if p.Not != nil {
		if err := checkPredicate(p.Not, filePath); err != nil {
			return err
		}
	}
	for i := range p.All {
		if err := checkPredicate(&p.All[i], filePath); err != nil {
			return err
		}
	}
	for i := range p.Any {
		if err := checkPredicate(&p.Any[i], filePath); err != nil {
			return err
		}
	}
	return nil
}

// DefaultOrder returns all variable names in a deterministic resolution
// order: declaration order, except that a variable whose default template
// references other variables is ordered after them. A dependency cycle is
// a ValidationError.
func (bp *Blueprint) DefaultOrder() ([]string, error) {
	deps := make(map[string][]string)
	for i := range bp.Variables {
		v := &bp.Variables[i]
		if v.DefaultTemplate == "" {
			continue
		}
		refs, err := templateRefs(v.DefaultTemplate)
		if err != nil {
			return nil, &ValidationError{Variable: v.Name, Constraint: fmt.Sprintf("invalid default template: %v", err)}
		}
		for _, r := range refs {
			if _, ok := bp.Variable(r); !ok {
				return nil, &ValidationError{
					Variable:   v.Name,
					Constraint: fmt.Sprintf("default template references undeclared variable %q", r),
				}
			}
		}
		deps[v.Name] = refs
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(bp.Variables))
	order := make([]string, 0, len(bp.Variables))

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case visiting:
			return &ValidationError{Variable: name, Constraint: "default dependency cycle"}
		case done:
			return nil
		}
		state[name] = visiting
		for _, dep := range deps[name] {
			if err := visit(dep); err != nil {
				return err
			}
		}
		state[name] = done
		order = append(order, name)
		return nil
	}

	for i := range bp.Variables {
		if err := visit(bp.Variables[i].Name); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// CheckVersion enforces the blueprint's min_version against the running CLI
// version. Dev builds with unparseable versions skip the check.
func (bp *Blueprint) CheckVersion(current string) error {
	if bp.MinVersion == "" {
		return nil
	}
	minimum, err := semver.NewVersion(bp.MinVersion)
	if err != nil {
		return &ValidationError{Constraint: fmt.Sprintf("invalid min_version %q: %v", bp.MinVersion, err)}
	}
	cur, err := semver.NewVersion(current)
	if err != nil {
		return nil
	}
	if cur.LessThan(minimum) {
		return fmt.Errorf("blueprint %q requires %s >= %s (running %s)", bp.Name, branding.CLIName(), minimum, cur)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
