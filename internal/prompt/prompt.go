// Package prompt builds the instruction sent to the language model.
//
// The default template is embedded in the binary. It fixes the "Definition: Term"
// output grammar, gives two worked examples, and appends the user's text
// verbatim as the last thing in the prompt. text/template is used so the input
// is neither escaped nor trimmed.
package prompt

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
)

// ErrInvalidTemplate is returned when an override template cannot be used.
var ErrInvalidTemplate = errors.New("invalid prompt template")

//go:embed flashcard.tmpl
var defaultTemplate string

// data is the value the template is executed against.
type data struct {
	Input string
}

// Builder renders prompts from a parsed template.
type Builder struct {
	tmpl *template.Template
}

var defaultBuilder = mustParse("flashcard", defaultTemplate)

// Build renders the default prompt for input. It is deterministic and pure.
func Build(input string) string {
	return defaultBuilder.Build(input)
}

// NewBuilder returns a Builder for the template at path, or the default
// builder when path is empty. Override templates must reference {{.Input}}.
func NewBuilder(path string) (*Builder, error) {
	if path == "" {
		return defaultBuilder, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrInvalidTemplate, path, err)
	}

	if !strings.Contains(string(content), "{{.Input}}") {
		return nil, fmt.Errorf("%w: template must reference {{.Input}}", ErrInvalidTemplate)
	}

	tmpl, err := template.New("flashcard").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}

	// Dry run so that references to unknown fields fail here rather than in Build.
	if err := tmpl.Execute(io.Discard, data{}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}

	return &Builder{tmpl: tmpl}, nil
}

// Build renders the prompt for input.
func (b *Builder) Build(input string) string {
	var buf bytes.Buffer
	// Templates are dry-run at construction; writes to a bytes.Buffer do not fail.
	_ = b.tmpl.Execute(&buf, data{Input: input})
	return buf.String()
}

func mustParse(name, text string) *Builder {
	return &Builder{tmpl: template.Must(template.New(name).Parse(text))}
}
