package form

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goliatone/go-formtable/pkg/input"
	"github.com/goliatone/go-formtable/pkg/nonce"
	"github.com/goliatone/go-formtable/pkg/render"
)

// ReservedQueryArg is stripped from the current URL when computing the
// default form action.
const ReservedQueryArg = "non_existent_query"

// Form encodings.
const (
	EncodingMultipart  = "multipart/form-data"
	EncodingURLEncoded = "application/x-www-form-urlencoded"
)

const defaultMaxMemory = 32 << 20

// Services are the host platform collaborators a form needs.
type Services interface {
	nonce.Minter
	ActionURL(strip string) string
	Translate(format string, args ...any) string
}

// Option customises a Form.
type Option func(*Form)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithMetrics records token mint and verify outcomes.
func WithMetrics(metrics *nonce.Metrics) Option {
	return func(f *Form) {
		f.metrics = metrics
	}
}

// WithRegistry builds inputs from a clone of reg instead of the default
// registry. The form's extension types are added to the clone.
func WithRegistry(reg *input.Registry) Option {
	return func(f *Form) {
		if reg != nil {
			f.registry = reg.Clone()
		}
	}
}

// WithMaxMemory bounds the memory used when parsing multipart submissions.
func WithMaxMemory(bytes int64) Option {
	return func(f *Form) {
		if bytes > 0 {
			f.maxMemory = bytes
		}
	}
}

// Form owns an ordered list of inputs, its attributes and its anti-forgery
// token. A Form serves a single request and is not safe for concurrent use.
type Form struct {
	services  Services
	registry  *input.Registry
	tokens    *nonce.Manager
	metrics   *nonce.Metrics
	logger    *slog.Logger
	maxMemory int64

	attrs  input.Attributes
	inputs []input.Descriptor

	policy TokenPolicy
	state  tokenState
	token  *input.Leaf
}

// New builds a form bound to services. The form posts multipart data back
// to the current URL and knows the primary_button, secondary_button and
// rich_editor input types in addition to the registry defaults.
func New(services Services, options ...Option) *Form {
	f := &Form{
		services:  services,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxMemory: defaultMaxMemory,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.registry == nil {
		f.registry = input.DefaultRegistry()
	}
	registerExtensions(f.registry)

	var minter nonce.Minter
	if services != nil {
		minter = services
	}
	f.tokens = nonce.NewManager(minter,
		nonce.WithRegistry(f.registry),
		nonce.WithMetrics(f.metrics),
	)

	f.attrs.Set("method", "post")
	f.attrs.Set("enctype", EncodingMultipart)
	if services != nil {
		f.attrs.Set("action", services.ActionURL(ReservedQueryArg))
	}
	return f
}

// ID returns the form identity.
func (f *Form) ID() string {
	return f.attrs.Get("id")
}

// SetAttribute sets an attribute on the <form> element. An "id" goes through
// SetID; a failure to mint the token is only logged, so call SetID directly
// to handle it.
func (f *Form) SetAttribute(key, value string) *Form {
	if strings.EqualFold(strings.TrimSpace(key), "id") {
		if err := f.SetID(value); err != nil {
			f.logger.Warn("form token not bound", "form", value, "error", err)
		}
		return f
	}
	f.attrs.Set(key, value)
	return f
}

// Attribute returns a <form> attribute.
func (f *Form) Attribute(key string) string {
	return f.attrs.Get(key)
}

// SetEncoding switches the submission encoding.
func (f *Form) SetEncoding(enctype string) *Form {
	f.attrs.Set("enctype", enctype)
	return f
}

// Registry exposes the input types known to the form.
func (f *Form) Registry() *input.Registry {
	return f.registry
}

// Add appends descriptors to the form.
func (f *Form) Add(descriptors ...input.Descriptor) *Form {
	for _, d := range descriptors {
		if d == nil {
			continue
		}
		f.inputs = append(f.inputs, d)
	}
	return f
}

// Inputs returns the top-level descriptors in order, token included.
func (f *Form) Inputs() []input.Descriptor {
	return append([]input.Descriptor(nil), f.inputs...)
}

// Find returns the first descriptor named name anywhere in the tree.
func (f *Form) Find(name string) (input.Descriptor, bool) {
	var found input.Descriptor
	input.Walk(f.inputs, func(d input.Descriptor) bool {
		if d.Name() == name {
			found = d
			return false
		}
		return true
	})
	return found, found != nil
}

// NewInput builds a leaf of a registered type without adding it, for use
// inside containers.
func (f *Form) NewInput(typeName, name string) (*input.Leaf, error) {
	leaf, err := f.registry.New(typeName, name)
	if err != nil {
		return nil, fmt.Errorf("form: %w", err)
	}
	return leaf, nil
}

// MustNewInput mirrors NewInput but panics when the type is unknown.
func (f *Form) MustNewInput(typeName, name string) *input.Leaf {
	leaf, err := f.NewInput(typeName, name)
	if err != nil {
		panic(err)
	}
	return leaf
}

// Input builds a leaf of a registered type and adds it to the form.
func (f *Form) Input(typeName, name string) (*input.Leaf, error) {
	leaf, err := f.NewInput(typeName, name)
	if err != nil {
		return nil, err
	}
	f.Add(leaf)
	return leaf, nil
}

func (f *Form) mustInput(typeName, name string) *input.Leaf {
	leaf := f.MustNewInput(typeName, name)
	f.Add(leaf)
	return leaf
}

// Text adds a text input.
func (f *Form) Text(name string) *input.Leaf { return f.mustInput(input.TypeText, name) }

// Email adds an email input.
func (f *Form) Email(name string) *input.Leaf { return f.mustInput(input.TypeEmail, name) }

// Number adds a number input.
func (f *Form) Number(name string) *input.Leaf { return f.mustInput(input.TypeNumber, name) }

// Password adds a password input.
func (f *Form) Password(name string) *input.Leaf { return f.mustInput(input.TypePassword, name) }

// Hidden adds a hidden input.
func (f *Form) Hidden(name string) *input.Leaf { return f.mustInput(input.TypeHidden, name) }

// Textarea adds a textarea.
func (f *Form) Textarea(name string) *input.Leaf { return f.mustInput(input.TypeTextarea, name) }

// Checkbox adds a checkbox.
func (f *Form) Checkbox(name string) *input.Leaf { return f.mustInput(input.TypeCheckbox, name) }

// Select adds a select.
func (f *Form) Select(name string) *input.Leaf { return f.mustInput(input.TypeSelect, name) }

// File adds a file input.
func (f *Form) File(name string) *input.Leaf { return f.mustInput(input.TypeFile, name) }

// Submit adds a plain submit button.
func (f *Form) Submit(name string) *input.Leaf { return f.mustInput(input.TypeSubmit, name) }

// PrimaryButton adds a primary submit button.
func (f *Form) PrimaryButton(name string) *input.Leaf {
	return f.mustInput(TypePrimaryButton, name)
}

// SecondaryButton adds a secondary submit button.
func (f *Form) SecondaryButton(name string) *input.Leaf {
	return f.mustInput(TypeSecondaryButton, name)
}

// RichEditor adds a rich-text editor.
func (f *Form) RichEditor(name string) *input.Leaf {
	return f.mustInput(TypeRichEditor, name)
}

// Markup adds a full-width markup row.
func (f *Form) Markup(name, content string) *input.Markup {
	m := input.NewMarkup(name, content)
	f.Add(m)
	return m
}

// Fieldset adds a container with the given legend.
func (f *Form) Fieldset(name, legend string) *input.Container {
	c := input.NewContainer(name).SetLegend(legend)
	f.Add(c)
	return c
}

// Validates reports whether every leaf passes validation.
func (f *Form) Validates() bool {
	for _, leaf := range input.Leaves(f.inputs) {
		if !leaf.Validates() {
			return false
		}
	}
	return true
}

// RenderTable renders the form inputs as label/value tables. The required
// marker tooltip is translated through the form's services.
func (f *Form) RenderTable(options ...render.Option) string {
	base := make([]render.Option, 0, len(options)+1)
	if f.services != nil {
		base = append(base, render.WithTranslator(f.services))
	}
	return render.Table(f.inputs, append(base, options...)...)
}

// Open returns the opening <form> tag.
func (f *Form) Open() string {
	return "<form" + f.attrs.String() + ">"
}

// Close returns the closing </form> tag.
func (f *Form) Close() string {
	return "</form>"
}
