package render

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"
)

// DefaultHeaderLevel is the heading element used for table headers.
const DefaultHeaderLevel = "h3"

// Translator resolves a user-facing string. Implementations are sprintf
// aware: args are applied to the translated format.
type Translator interface {
	Translate(format string, args ...any) string
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(format string, args ...any) string

// Translate calls the underlying function.
func (fn TranslatorFunc) Translate(format string, args ...any) string {
	return fn(format, args...)
}

// Option configures a render call.
type Option func(*config)

type config struct {
	header      string
	headerLevel string
	translator  Translator
	classes     Classes
	sanitizer   *bluemonday.Policy
}

// WithHeader emits a heading above the first table.
func WithHeader(header string) Option {
	return func(cfg *config) {
		cfg.header = header
	}
}

// WithHeaderLevel overrides the heading element (h1..h6). Invalid values are
// ignored.
func WithHeaderLevel(level string) Option {
	return func(cfg *config) {
		level = strings.ToLower(strings.TrimSpace(level))
		if validHeaderLevel(level) {
			cfg.headerLevel = level
		}
	}
}

// WithTranslator supplies the translator used for the required marker
// tooltip.
func WithTranslator(t Translator) Option {
	return func(cfg *config) {
		if t != nil {
			cfg.translator = t
		}
	}
}

// WithClasses overrides individual chrome classes. Empty fields keep the
// current value.
func WithClasses(classes Classes) Option {
	return func(cfg *config) {
		cfg.classes = cfg.classes.merge(classes)
	}
}

// WithTheme applies class overrides from a go-theme renderer configuration
// using the formtable.* token keys.
func WithTheme(rc *theme.RendererConfig) Option {
	return func(cfg *config) {
		cfg.classes = cfg.classes.merge(classesFromTheme(rc))
	}
}

// WithSanitizer cleans markup rows and descriptions through the given
// bluemonday policy before they are emitted.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		cfg.sanitizer = policy
	}
}

func newConfig(options []Option) *config {
	cfg := &config{
		headerLevel: DefaultHeaderLevel,
		translator:  TranslatorFunc(sprintfTranslator),
		classes:     DefaultClasses(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	return cfg
}

func (c *config) sanitize(content string) string {
	if c.sanitizer == nil || content == "" {
		return content
	}
	return c.sanitizer.Sanitize(content)
}

func sprintfTranslator(format string, args ...any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

func validHeaderLevel(level string) bool {
	switch level {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	default:
		return false
	}
}
