// Package render substitutes resolved configuration values into template
// bodies. Rendering is pure text transformation; reading template sources
// and writing output belongs to the scaffold layer.
package render

import (
	"bytes"
	"fmt"
	"text/template"
)

// TemplateError reports a template that fails to parse or references a
// variable absent from the resolved configuration.
type TemplateError struct {
	File   string
	Detail string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template %s: %s", e.File, e.Detail)
}

// File renders one template body with the given data. Every placeholder
// must resolve; a missing key is a TemplateError, never a silent
// "<no value>" in the output.
func File(name string, body []byte, data map[string]any) ([]byte, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(body))
	if err != nil {
		return nil, &TemplateError{File: name, Detail: err.Error()}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, &TemplateError{File: name, Detail: err.Error()}
	}
	return buf.Bytes(), nil
}
