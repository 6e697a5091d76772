package resolve

import (
	"bytes"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/kiln-labs/kiln/internal/blueprint"
	"github.com/kiln-labs/kiln/internal/namegen"
)

// Config is the resolved configuration: every declared variable mapped to a
// concrete value. It is immutable once returned by Resolve.
type Config map[string]blueprint.Value

// TemplateData returns the configuration as native Go values keyed by
// variable name, for use as text/template data.
func (c Config) TemplateData() map[string]any {
	data := make(map[string]any, len(c))
	for name, v := range c {
		data[name] = v.Scalar()
	}
	return data
}

// Options controls resolution.
type Options struct {
	// Seed drives generated defaults (e.g. developer names). Zero selects a
	// time-based seed; tests pin a seed for reproducible output.
	Seed int64
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Resolve computes the final value of every declared variable. Supplied
// answers win; missing variables fall back to their default (literal,
// templated on already-resolved variables, or generated). A missing value
// with no default, an answer for an undeclared variable, or a constraint
// violation is a ValidationError naming the variable.
func Resolve(bp *blueprint.Blueprint, answers map[string]any, opts Options) (Config, error) {
	for name := range answers {
		if _, ok := bp.Variable(name); !ok {
			return nil, &blueprint.ValidationError{Variable: name, Constraint: "not declared in blueprint"}
		}
	}

	order, err := bp.DefaultOrder()
	if err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := namegen.New(seed)

	cfg := make(Config, len(order))
	for _, name := range order {
		v, _ := bp.Variable(name)

		var val blueprint.Value
		if raw, answered := answers[name]; answered {
			val, err = coerce(v, raw)
		} else {
			val, err = defaultValue(v, cfg, rng)
		}
		if err != nil {
			return nil, err
		}
		if err := checkConstraints(v, val); err != nil {
			return nil, err
		}
		cfg[name] = val
	}
	return cfg, nil
}

// SelectFiles evaluates each file rule's predicate against the resolved
// configuration and returns the rules to materialize, in declaration order.
// Evaluation is total; undeclared predicate references were already
// rejected when the blueprint was loaded.
func SelectFiles(bp *blueprint.Blueprint, cfg Config) []blueprint.FileRule {
	var selected []blueprint.FileRule
	for _, f := range bp.Files {
		if f.When == nil || f.When.Eval(cfg) {
			selected = append(selected, f)
		}
	}
	return selected
}

// coerce converts a supplied answer to a typed value. Bool variables accept
// native booleans and "true"/"false" strings (flag input arrives as text).
func coerce(v *blueprint.Variable, raw any) (blueprint.Value, error) {
	switch v.Type {
	case blueprint.TypeBool:
		switch r := raw.(type) {
		case bool:
			return blueprint.BoolValue(r), nil
		case string:
			b, err := strconv.ParseBool(r)
			if err != nil {
				return blueprint.Value{}, &blueprint.ValidationError{
					Variable:   v.Name,
					Constraint: fmt.Sprintf("expected a boolean, got %q", r),
				}
			}
			return blueprint.BoolValue(b), nil
		default:
			return blueprint.Value{}, &blueprint.ValidationError{
				Variable:   v.Name,
				Constraint: fmt.Sprintf("expected a boolean, got %T", raw),
			}
		}
	case blueprint.TypeChoice:
		s, ok := raw.(string)
		if !ok {
			return blueprint.Value{}, &blueprint.ValidationError{
				Variable:   v.Name,
				Constraint: fmt.Sprintf("expected a string, got %T", raw),
			}
		}
		return blueprint.ChoiceValue(s), nil
	default:
		s, ok := raw.(string)
		if !ok {
			return blueprint.Value{}, &blueprint.ValidationError{
				Variable:   v.Name,
				Constraint: fmt.Sprintf("expected a string, got %T", raw),
			}
		}
		return blueprint.StringValue(s), nil
	}
}

// defaultValue computes the default for an unanswered variable. Variables
// earlier in the dependency order are already present in cfg, so templated
// defaults resolve against concrete values.
func defaultValue(v *blueprint.Variable, cfg Config, rng *rand.Rand) (blueprint.Value, error) {
	switch {
	case v.Generator == blueprint.GeneratorDeveloperName:
		return blueprint.StringValue(namegen.Pick(rng)), nil
	case v.DefaultTemplate != "":
		s, err := renderDefault(v.DefaultTemplate, cfg)
		if err != nil {
			return blueprint.Value{}, &blueprint.ValidationError{
				Variable:   v.Name,
				Constraint: fmt.Sprintf("computing default: %v", err),
			}
		}
		return blueprint.StringValue(s), nil
	case v.Default != nil:
		switch d := v.Default.(type) {
		case bool:
			return blueprint.BoolValue(d), nil
		case string:
			if v.Type == blueprint.TypeChoice {
				return blueprint.ChoiceValue(d), nil
			}
			return blueprint.StringValue(d), nil
		}
	case v.Type == blueprint.TypeBool:
		return blueprint.BoolValue(false), nil
	}
	return blueprint.Value{}, &blueprint.ValidationError{
		Variable:   v.Name,
		Constraint: "no value supplied and no default declared",
	}
}

// renderDefault executes a default template against the partial config.
func renderDefault(src string, cfg Config) (string, error) {
	tmpl, err := template.New("default").Option("missingkey=error").Parse(src)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg.TemplateData()); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// checkConstraints validates a resolved value against the variable's
// declared constraints.
func checkConstraints(v *blueprint.Variable, val blueprint.Value) error {
	if v.Type == blueprint.TypeChoice {
		found := false
		for _, c := range v.Choices {
			if val.Str == c {
				found = true
				break
			}
		}
		if !found {
			return &blueprint.ValidationError{
				Variable:   v.Name,
				Constraint: fmt.Sprintf("value %q is not one of [%s]", val.Str, strings.Join(v.Choices, ", ")),
			}
		}
	}

	if v.Pattern != "" && val.Kind != blueprint.KindBool {
		re, err := regexp.Compile(v.Pattern)
		if err != nil {
			return &blueprint.ValidationError{
				Variable:   v.Name,
				Constraint: fmt.Sprintf("invalid pattern: %v", err),
			}
		}
		if !re.MatchString(val.Str) {
			return &blueprint.ValidationError{
				Variable:   v.Name,
				Constraint: fmt.Sprintf("value %q does not match pattern %s", val.Str, v.Pattern),
			}
		}
	}

	if v.Email && !emailPattern.MatchString(val.Str) {
		return &blueprint.ValidationError{
			Variable:   v.Name,
			Constraint: fmt.Sprintf("value %q is not a valid email address", val.Str),
		}
	}
	return nil
}
