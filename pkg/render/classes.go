package render

import (
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ChromeClass is a typed identifier for the CSS classes the table renderer
// emits.
type ChromeClass string

const (
	ClassTable       ChromeClass = "form-table"
	ClassTitle       ChromeClass = "title"
	ClassInvalid     ChromeClass = "does_not_validate"
	ClassDescription ChromeClass = "input_description"
	ClassControl     ChromeClass = "input_itself"
	ClassFieldset    ChromeClass = "fieldset"
)

// Theme token keys that override the default classes.
const (
	TokenTable       = "formtable.table"
	TokenTitle       = "formtable.title"
	TokenInvalid     = "formtable.invalid"
	TokenDescription = "formtable.description"
	TokenControl     = "formtable.control"
	TokenFieldset    = "formtable.fieldset"
)

// Classes holds the class names applied to each piece of chrome. The
// fieldset wrapper receives both Fieldset and Fieldset + "_" + name.
type Classes struct {
	Table       string
	Title       string
	Invalid     string
	Description string
	Control     string
	Fieldset    string
}

// DefaultClasses returns the classes used when nothing is overridden.
func DefaultClasses() Classes {
	return Classes{
		Table:       string(ClassTable),
		Title:       string(ClassTitle),
		Invalid:     string(ClassInvalid),
		Description: string(ClassDescription),
		Control:     string(ClassControl),
		Fieldset:    string(ClassFieldset),
	}
}

// merge returns c with every non-empty field of override applied.
func (c Classes) merge(override Classes) Classes {
	pick := func(base, next string) string {
		if trimmed := strings.TrimSpace(next); trimmed != "" {
			return trimmed
		}
		return base
	}
	return Classes{
		Table:       pick(c.Table, override.Table),
		Title:       pick(c.Title, override.Title),
		Invalid:     pick(c.Invalid, override.Invalid),
		Description: pick(c.Description, override.Description),
		Control:     pick(c.Control, override.Control),
		Fieldset:    pick(c.Fieldset, override.Fieldset),
	}
}

func classesFromTheme(cfg *theme.RendererConfig) Classes {
	if cfg == nil || len(cfg.Tokens) == 0 {
		return Classes{}
	}
	return Classes{
		Table:       cfg.Tokens[TokenTable],
		Title:       cfg.Tokens[TokenTitle],
		Invalid:     cfg.Tokens[TokenInvalid],
		Description: cfg.Tokens[TokenDescription],
		Control:     cfg.Tokens[TokenControl],
		Fieldset:    cfg.Tokens[TokenFieldset],
	}
}
