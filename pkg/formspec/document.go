package formspec

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formtable/pkg/form"
	"github.com/goliatone/go-formtable/pkg/input"
	"github.com/goliatone/go-formtable/pkg/render"
)

// Pseudo types that map onto Markup and Container rather than registered
// input types.
const (
	TypeMarkup   = "markup"
	TypeFieldset = "fieldset"
)

// ErrInvalidDocument wraps every structural problem found while parsing.
var ErrInvalidDocument = errors.New("invalid form document")

// Document is a declarative form.
type Document struct {
	ID          string  `yaml:"id"`
	Header      string  `yaml:"header"`
	HeaderLevel string  `yaml:"header_level"`
	Encoding    string  `yaml:"encoding"`
	Inputs      []Input `yaml:"inputs"`
	// AutomaticToken defaults to true when omitted.
	AutomaticToken *bool `yaml:"automatic_token"`
}

// Input declares one descriptor. Content applies to markup, Legend and
// Inputs to fieldsets.
type Input struct {
	Type        string            `yaml:"type"`
	Name        string            `yaml:"name"`
	Label       string            `yaml:"label"`
	Description string            `yaml:"description"`
	Required    bool              `yaml:"required"`
	Hidden      bool              `yaml:"hidden"`
	Value       string            `yaml:"value"`
	Options     []Option          `yaml:"options"`
	Attributes  map[string]string `yaml:"attributes"`
	Content     string            `yaml:"content"`
	Legend      string            `yaml:"legend"`
	Inputs      []Input           `yaml:"inputs"`
}

// Option is a select option.
type Option struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// Parse decodes and validates a YAML document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("formspec: decode: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads and parses a YAML document from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("formspec: read %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w (file %s)", err, path)
	}
	return doc, nil
}

// Validate checks names are present and unique across the whole tree.
func (d *Document) Validate() error {
	seen := make(map[string]string)
	return validateInputs(d.Inputs, "inputs", seen)
}

func validateInputs(inputs []Input, path string, seen map[string]string) error {
	for i, in := range inputs {
		at := fmt.Sprintf("%s[%d]", path, i)
		name := strings.TrimSpace(in.Name)
		if name == "" {
			return fmt.Errorf("formspec: %s: name is required: %w", at, ErrInvalidDocument)
		}
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("formspec: %s: name %q already used at %s: %w", at, name, prev, ErrInvalidDocument)
		}
		seen[name] = at

		kind := strings.ToLower(strings.TrimSpace(in.Type))
		if kind != TypeFieldset && len(in.Inputs) > 0 {
			return fmt.Errorf("formspec: %s: only fieldsets take nested inputs: %w", at, ErrInvalidDocument)
		}
		if kind == TypeFieldset {
			if err := validateInputs(in.Inputs, at+".inputs", seen); err != nil {
				return err
			}
		}
	}
	return nil
}

// TokenEnabled reports whether the document keeps the automatic token.
func (d *Document) TokenEnabled() bool {
	return d.AutomaticToken == nil || *d.AutomaticToken
}

// ApplyOption customises Apply.
type ApplyOption func(*applyConfig)

type applyConfig struct {
	labeler Labeler
}

// WithLabeler replaces DefaultLabeler for inputs without a label.
func WithLabeler(labeler Labeler) ApplyOption {
	return func(cfg *applyConfig) {
		if labeler != nil {
			cfg.labeler = labeler
		}
	}
}

// Apply adds the declared inputs to f, then sets its identity so the
// automatic token, unless disabled, lands after them. Unknown input types
// fail the whole call before anything is added.
func (d *Document) Apply(f *form.Form, options ...ApplyOption) error {
	if f == nil {
		return errors.New("formspec: form is nil")
	}
	cfg := &applyConfig{labeler: DefaultLabeler}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	descriptors, err := d.build(f, d.Inputs, cfg)
	if err != nil {
		return err
	}

	if !d.TokenEnabled() {
		f.DisableAutomaticToken()
	}
	if d.Encoding != "" {
		f.SetEncoding(d.Encoding)
	}
	f.Add(descriptors...)
	if d.ID != "" {
		if err := f.SetID(d.ID); err != nil {
			return fmt.Errorf("formspec: %w", err)
		}
	}
	return nil
}

// RenderOptions returns the render options implied by the document header.
func (d *Document) RenderOptions() []render.Option {
	var opts []render.Option
	if d.Header != "" {
		opts = append(opts, render.WithHeader(d.Header))
	}
	if d.HeaderLevel != "" {
		opts = append(opts, render.WithHeaderLevel(d.HeaderLevel))
	}
	return opts
}

func (d *Document) build(f *form.Form, inputs []Input, cfg *applyConfig) ([]input.Descriptor, error) {
	out := make([]input.Descriptor, 0, len(inputs))
	for _, in := range inputs {
		name := strings.TrimSpace(in.Name)
		switch kind := strings.ToLower(strings.TrimSpace(in.Type)); kind {
		case TypeMarkup:
			out = append(out, input.NewMarkup(name, in.Content))
		case TypeFieldset:
			container := input.NewContainer(name).SetLabel(in.Label)
			if in.Legend != "" {
				container.SetLegend(in.Legend)
			}
			children, err := d.build(f, in.Inputs, cfg)
			if err != nil {
				return nil, err
			}
			container.Add(children...)
			out = append(out, container)
		default:
			if kind == "" {
				kind = input.TypeText
			}
			leaf, err := f.NewInput(kind, name)
			if err != nil {
				return nil, fmt.Errorf("formspec: input %q: %w", name, err)
			}
			applyLeaf(leaf, in, cfg)
			out = append(out, leaf)
		}
	}
	return out, nil
}

func applyLeaf(leaf *input.Leaf, in Input, cfg *applyConfig) {
	label := in.Label
	if label == "" && !leaf.Hidden() {
		label = cfg.labeler(leaf.Name())
	}
	leaf.SetLabel(label).
		SetDescription(in.Description).
		SetRequired(in.Required).
		SetValue(in.Value)
	if in.Hidden {
		leaf.SetHidden(true)
	}
	for _, opt := range in.Options {
		optLabel := opt.Label
		if optLabel == "" {
			optLabel = opt.Value
		}
		leaf.AddOption(opt.Value, optLabel)
	}

	keys := make([]string, 0, len(in.Attributes))
	for key := range in.Attributes {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		leaf.SetAttribute(key, in.Attributes[key])
	}
}
