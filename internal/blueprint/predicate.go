package blueprint

import "fmt"

// Predicate gates a file rule on the resolved configuration. A leaf
// predicate names a variable and a test: equals compares against a string
// or boolean, in tests membership in a string set, and a bare var tests
// boolean truthiness (non-emptiness for string values). The not, all, and
// any forms combine predicates.
//
// Eval is total: an unknown variable evaluates to false rather than
// failing. Undeclared references are rejected earlier, when the blueprint
// is checked.
type Predicate struct {
	Var    string      `yaml:"var,omitempty"`
	Equals any         `yaml:"equals,omitempty"`
	In     []string    `yaml:"in,omitempty"`
	Not    *Predicate  `yaml:"not,omitempty"`
	All    []Predicate `yaml:"all,omitempty"`
	Any    []Predicate `yaml:"any,omitempty"`
}

// Eval evaluates the predicate against a resolved configuration.
func (p *Predicate) Eval(cfg map[string]Value) bool {
	switch {
	case p.Not != nil:
		return !p.Not.Eval(cfg)
	case len(p.All) > 0:
		for i := range p.All {
			if !p.All[i].Eval(cfg) {
				return false
			}
		}
		return true
	case len(p.Any) > 0:
		for i := range p.Any {
			if p.Any[i].Eval(cfg) {
				return true
			}
		}
		return false
	}

	v, ok := cfg[p.Var]
	if !ok {
		return false
	}

	switch {
	case p.Equals != nil:
		return valueEquals(v, p.Equals)
	case len(p.In) > 0:
		if v.Kind == KindBool {
			return false
		}
		for _, s := range p.In {
			if v.Str == s {
				return true
			}
		}
		return false
	default:
		if v.Kind == KindBool {
			return v.Bool
		}
		return v.Str != ""
	}
}

// Vars returns the variable names the predicate references, deduplicated,
// in first-reference order.
func (p *Predicate) Vars() []string {
	seen := make(map[string]bool)
	var out []string
	p.collectVars(seen, &out)
	return out
}

func (p *Predicate) collectVars(seen map[string]bool, out *[]string) {
	if p.Var != "" && !seen[p.Var] {
		seen[p.Var] = true
		*out = append(*out, p.Var)
	}
	if p.Not != nil {
		p.Not.collectVars(seen, out)
	}
	for i := range p.All {
		p.All[i].collectVars(seen, out)
	}
	for i := range p.Any {
		p.Any[i].collectVars(seen, out)
	}
}

// valueEquals compares a resolved value with a YAML-decoded literal.
// Booleans only match booleans; string and choice values match strings.
func valueEquals(v Value, want any) bool {
	switch w := want.(type) {
	case bool:
		return v.Kind == KindBool && v.Bool == w
	case string:
		return v.Kind != KindBool && v.Str == w
	default:
		return v.Kind != KindBool && v.Str == fmt.Sprintf("%v", w)
	}
}
