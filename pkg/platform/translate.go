package platform

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Translator formats user-facing strings for one locale. Format strings
// double as catalog keys; unknown keys are formatted as-is.
type Translator struct {
	printer *message.Printer
}

// NewTranslator builds a Translator for locale from a locale -> key ->
// message table.
func NewTranslator(locale string, translations map[string]map[string]string) (*Translator, error) {
	tag := language.English
	if locale != "" {
		parsed, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("platform: locale %q: %w", locale, err)
		}
		tag = parsed
	}

	builder := catalog.NewBuilder(catalog.Fallback(language.English))
	for name, messages := range translations {
		msgTag, err := language.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("platform: translations locale %q: %w", name, err)
		}
		for key, msg := range messages {
			if err := builder.SetString(msgTag, key, msg); err != nil {
				return nil, fmt.Errorf("platform: translation %q: %w", key, err)
			}
		}
	}

	return &Translator{printer: message.NewPrinter(tag, message.Catalog(builder))}, nil
}

// Translate returns the translated format with args applied.
func (t *Translator) Translate(format string, args ...any) string {
	if t == nil || t.printer == nil {
		if len(args) == 0 {
			return format
		}
		return fmt.Sprintf(format, args...)
	}
	return t.printer.Sprintf(format, args...)
}
