// Package prompt collects blueprint answers interactively. It walks the
// declared variables in order using numbered menus and free-text questions
// over plain reader/writer pairs, so the flow is testable with scripted
// input. Accepting a default leaves the variable unanswered; the resolver
// computes the actual value.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/kiln-labs/kiln/internal/blueprint"
)

// maxAttempts bounds re-prompting on invalid input before giving up.
const maxAttempts = 3

// Collect asks for every variable not already present in preset, in
// declaration order. The returned map contains the preset answers plus
// everything the user typed; accepted defaults are omitted.
func Collect(bp *blueprint.Blueprint, preset map[string]any, r io.Reader, w io.Writer) (map[string]any, error) {
	reader := bufio.NewReader(r)

	answers := make(map[string]any, len(bp.Variables))
	for k, v := range preset {
		answers[k] = v
	}

	for i := range bp.Variables {
		v := &bp.Variables[i]
		if _, ok := answers[v.Name]; ok {
			continue
		}

		val, answered, err := ask(v, reader, w)
		if err != nil {
			return nil, err
		}
		if answered {
			answers[v.Name] = val
		}
	}
	return answers, nil
}

func ask(v *blueprint.Variable, reader *bufio.Reader, w io.Writer) (any, bool, error) {
	switch v.Type {
	case blueprint.TypeChoice:
		return askChoice(v, reader, w)
	case blueprint.TypeBool:
		return askBool(v, reader, w)
	default:
		return askString(v, reader, w)
	}
}

// askChoice presents a numbered menu. Empty input accepts the default.
func askChoice(v *blueprint.Variable, reader *bufio.Reader, w io.Writer) (any, bool, error) {
	def, _ := v.Default.(string)

	fmt.Fprintf(w, "\n%s\n", label(v))
	for i, c := range v.Choices {
		marker := ""
		if c == def {
			marker = " (default)"
		}
		fmt.Fprintf(w, "  %d) %s%s\n", i+1, c, marker)
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		fmt.Fprintf(w, "Enter number [1-%d]: ", len(v.Choices))

		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, false, fmt.Errorf("reading selection for %q: %w", v.Name, err)
		}
		line = strings.TrimSpace(line)

		if line == "" && def != "" {
			return nil, false, nil
		}

		num, err := strconv.Atoi(line)
		if err != nil || num < 1 || num > len(v.Choices) {
			fmt.Fprintf(w, "Invalid selection %q: choose 1-%d\n", line, len(v.Choices))
			continue
		}
		return v.Choices[num-1], true, nil
	}
	return nil, false, fmt.Errorf("no valid selection for %q after %d attempts", v.Name, maxAttempts)
}

// askBool asks a yes/no question. Empty input accepts the default.
func askBool(v *blueprint.Variable, reader *bufio.Reader, w io.Writer) (any, bool, error) {
	def, _ := v.Default.(bool)
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		fmt.Fprintf(w, "\n%s %s: ", label(v), hint)

		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, false, fmt.Errorf("reading answer for %q: %w", v.Name, err)
		}
		line = strings.ToLower(strings.TrimSpace(line))

		switch line {
		case "":
			return nil, false, nil
		case "y", "yes", "true":
			return true, true, nil
		case "n", "no", "false":
			return false, true, nil
		}
		fmt.Fprintf(w, "Please answer y or n\n")
	}
	return nil, false, fmt.Errorf("no valid answer for %q after %d attempts", v.Name, maxAttempts)
}

// askString asks for free text, re-prompting while the input violates the
// variable's constraints. Empty input accepts the default when one exists.
func askString(v *blueprint.Variable, reader *bufio.Reader, w io.Writer) (any, bool, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		fmt.Fprintf(w, "\n%s%s: ", label(v), defaultHint(v))

		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, false, fmt.Errorf("reading answer for %q: %w", v.Name, err)
		}
		line = strings.TrimSpace(line)

		if line == "" {
			if v.HasDefault() {
				return nil, false, nil
			}
			fmt.Fprintf(w, "A value is required\n")
			continue
		}

		if msg := constraintViolation(v, line); msg != "" {
			fmt.Fprintf(w, "%s\n", msg)
			continue
		}
		return line, true, nil
	}
	return nil, false, fmt.Errorf("no valid answer for %q after %d attempts", v.Name, maxAttempts)
}

// label returns the prompt text for a variable.
func label(v *blueprint.Variable) string {
	if v.Prompt != "" {
		return v.Prompt
	}
	return v.Name
}

// defaultHint renders the default shown after the prompt label.
func defaultHint(v *blueprint.Variable) string {
	switch {
	case v.Generator != "":
		return " (random)"
	case v.DefaultTemplate != "":
		return " (computed)"
	case v.Default != nil:
		if s, ok := v.Default.(string); ok && s != "" {
			return fmt.Sprintf(" [%s]", s)
		}
	}
	return ""
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// constraintViolation pre-checks a typed answer so the user can correct it
// immediately instead of failing the whole run at resolution time.
func constraintViolation(v *blueprint.Variable, input string) string {
	if v.Pattern != "" {
		re, err := regexp.Compile(v.Pattern)
		if err == nil && !re.MatchString(input) {
			return fmt.Sprintf("Value must match pattern %s", v.Pattern)
		}
	}
	if v.Email && !emailPattern.MatchString(input) {
		return "Value must be a valid email address"
	}
	return ""
}

// IsTerminal checks if the given file is a terminal, for auto-detecting
// interactive mode.
func IsTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
