package input

import (
	"fmt"
	"html"
	"strings"
)

// Descriptor is implemented by *Leaf, *Markup and *Container only.
type Descriptor interface {
	Name() string
	descriptor()
}

// Label holds the text shown next to an input or above a container. A label
// whose Content is empty is distinct from a missing label only to callers
// that care; renderers look at Content.
type Label struct {
	Content string
}

// Legend is the caption of a fieldset container.
type Legend struct {
	Label Label
}

// Option is a choice offered by a select input.
type Option struct {
	Value string
	Label string
}

// Leaf is a single-value input.
type Leaf struct {
	name        string
	kind        Type
	attrs       Attributes
	label       Label
	description string
	required    bool
	hidden      bool
	value       string
	posted      *string
	options     []Option
	errors      []string
}

// NewLeaf builds a leaf of the given type. Most callers go through
// Registry.New so the type is resolved by name.
func NewLeaf(kind Type, name string) *Leaf {
	leaf := &Leaf{
		name:   strings.TrimSpace(name),
		kind:   kind,
		hidden: kind.Hidden,
	}
	return leaf
}

func (*Leaf) descriptor() {}

// Name returns the input name used as the submitted form key.
func (l *Leaf) Name() string { return l.name }

// Type returns the input type the leaf was created from.
func (l *Leaf) Type() Type { return l.kind }

// Attributes exposes the HTML attributes rendered on the control.
func (l *Leaf) Attributes() *Attributes { return &l.attrs }

// Attribute returns a single attribute value.
func (l *Leaf) Attribute(key string) string { return l.attrs.Get(key) }

// SetAttribute stores an HTML attribute on the control.
func (l *Leaf) SetAttribute(key, value string) *Leaf {
	l.attrs.Set(key, value)
	return l
}

// Hidden reports whether the leaf renders without a visible row. A hidden
// attribute hides the leaf just like a hidden type does.
func (l *Leaf) Hidden() bool { return l.hidden || l.attrs.Has("hidden") }

// SetHidden overrides the hidden flag inherited from the input type.
func (l *Leaf) SetHidden(hidden bool) *Leaf {
	l.hidden = hidden
	return l
}

// Label returns the leaf label.
func (l *Leaf) Label() Label { return l.label }

// SetLabel sets the label content.
func (l *Leaf) SetLabel(content string) *Leaf {
	l.label = Label{Content: content}
	return l
}

// SetDescription sets the help text rendered below the control.
func (l *Leaf) SetDescription(description string) *Leaf {
	l.description = description
	return l
}

// Description returns the raw description.
func (l *Leaf) Description() string { return l.description }

// Required reports whether a value must be submitted.
func (l *Leaf) Required() bool { return l.required }

// SetRequired toggles the required flag.
func (l *Leaf) SetRequired(required bool) *Leaf {
	l.required = required
	return l
}

// SetValue sets the value shown when nothing has been posted.
func (l *Leaf) SetValue(value string) *Leaf {
	l.value = value
	return l
}

// Value returns the posted value when present, otherwise the configured
// value.
func (l *Leaf) Value() string {
	if l.posted != nil {
		return *l.posted
	}
	return l.value
}

// PostedValue returns the submitted value and whether one was submitted.
func (l *Leaf) PostedValue() (string, bool) {
	if l.posted == nil {
		return "", false
	}
	return *l.posted, true
}

// SetPostedValue records the value submitted for this input.
func (l *Leaf) SetPostedValue(value string) *Leaf {
	l.posted = &value
	return l
}

// ClearPostedValue forgets a previously recorded submission.
func (l *Leaf) ClearPostedValue() *Leaf {
	l.posted = nil
	return l
}

// AddOption appends a select option.
func (l *Leaf) AddOption(value, label string) *Leaf {
	if label == "" {
		label = value
	}
	l.options = append(l.options, Option{Value: value, Label: label})
	return l
}

// Options returns the select options.
func (l *Leaf) Options() []Option { return append([]Option(nil), l.options...) }

// AddError flags the leaf as failing validation.
func (l *Leaf) AddError(message string) *Leaf {
	l.errors = append(l.errors, message)
	return l
}

// Errors returns the validation messages recorded on the leaf.
func (l *Leaf) Errors() []string { return append([]string(nil), l.errors...) }

// ClearErrors resets the validation state.
func (l *Leaf) ClearErrors() *Leaf {
	l.errors = nil
	return l
}

// Validates reports whether the leaf has no validation errors.
func (l *Leaf) Validates() bool { return len(l.errors) == 0 }

// ControlID returns the id attribute of the control, defaulting to the name.
func (l *Leaf) ControlID() string {
	if id := l.attrs.Get("id"); id != "" {
		return id
	}
	return l.name
}

// DisplayLabel renders the <label> element. Leaves without label content
// render nothing.
func (l *Leaf) DisplayLabel() string {
	if l.label.Content == "" {
		return ""
	}
	return fmt.Sprintf(`<label for="%s">%s</label>`, html.EscapeString(l.ControlID()), l.label.Content)
}

// DisplayInput renders the control through the leaf's input type.
func (l *Leaf) DisplayInput() string {
	if l.kind.Render == nil {
		return renderInput(l, "text")
	}
	return l.kind.Render(l)
}

// DisplayDescription returns the description followed by any validation
// messages.
func (l *Leaf) DisplayDescription() string {
	if len(l.errors) == 0 {
		return l.description
	}
	var builder strings.Builder
	builder.WriteString(l.description)
	for _, message := range l.errors {
		builder.WriteString(`<span class="input_error">`)
		builder.WriteString(html.EscapeString(message))
		builder.WriteString(`</span>`)
	}
	return builder.String()
}

// Markup is content inserted verbatim, spanning the full row.
type Markup struct {
	name    string
	content string
}

// NewMarkup builds a markup descriptor.
func NewMarkup(name, content string) *Markup {
	return &Markup{name: strings.TrimSpace(name), content: content}
}

func (*Markup) descriptor() {}

// Name returns the markup name.
func (m *Markup) Name() string { return m.name }

// SetContent replaces the markup content.
func (m *Markup) SetContent(content string) *Markup {
	m.content = content
	return m
}

// DisplayInput returns the content unchanged.
func (m *Markup) DisplayInput() string { return m.content }

// Container groups descriptors into a fieldset.
type Container struct {
	name   string
	label  Label
	legend *Legend
	inputs []Descriptor
}

// NewContainer builds an empty container.
func NewContainer(name string) *Container {
	return &Container{name: strings.TrimSpace(name)}
}

func (*Container) descriptor() {}

// Name returns the container name.
func (c *Container) Name() string { return c.name }

// Label returns the container's own label.
func (c *Container) Label() Label { return c.label }

// SetLabel sets the container's own label content.
func (c *Container) SetLabel(content string) *Container {
	c.label = Label{Content: content}
	return c
}

// Legend returns the fieldset legend, or nil.
func (c *Container) Legend() *Legend { return c.legend }

// SetLegend sets the fieldset legend content.
func (c *Container) SetLegend(content string) *Container {
	c.legend = &Legend{Label: Label{Content: content}}
	return c
}

// Heading returns the label content, falling back to the legend's label
// content when the label content is empty.
func (c *Container) Heading() string {
	if c.label.Content != "" {
		return c.label.Content
	}
	if c.legend == nil {
		return ""
	}
	return c.legend.Label.Content
}

// Add appends descriptors to the container. Nil descriptors are ignored.
func (c *Container) Add(descriptors ...Descriptor) *Container {
	for _, d := range descriptors {
		if d == nil {
			continue
		}
		c.inputs = append(c.inputs, d)
	}
	return c
}

// Inputs returns the nested descriptors in order.
func (c *Container) Inputs() []Descriptor {
	return append([]Descriptor(nil), c.inputs...)
}

// Walk visits every descriptor depth-first in order, descending into
// containers after visiting them. Returning false from fn stops the walk.
func Walk(descriptors []Descriptor, fn func(Descriptor) bool) bool {
	for _, d := range descriptors {
		if !fn(d) {
			return false
		}
		if container, ok := d.(*Container); ok {
			if !Walk(container.inputs, fn) {
				return false
			}
		}
	}
	return true
}

// Leaves returns every leaf in the tree, in order.
func Leaves(descriptors []Descriptor) []*Leaf {
	var out []*Leaf
	Walk(descriptors, func(d Descriptor) bool {
		if leaf, ok := d.(*Leaf); ok {
			out = append(out, leaf)
		}
		return true
	})
	return out
}
