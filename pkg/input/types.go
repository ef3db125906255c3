package input

import (
	"html"
	"strings"
)

// Built-in type names.
const (
	TypeText     = "text"
	TypeEmail    = "email"
	TypeNumber   = "number"
	TypePassword = "password"
	TypeHidden   = "hidden"
	TypeTextarea = "textarea"
	TypeCheckbox = "checkbox"
	TypeSelect   = "select"
	TypeFile     = "file"
	TypeSubmit   = "submit"
)

func registerBuiltins(reg *Registry) {
	for _, kind := range []string{TypeText, TypeEmail, TypeNumber, TypePassword, TypeFile, TypeSubmit} {
		reg.MustRegister(Type{
			Name:   kind,
			Render: func(l *Leaf) string { return renderInput(l, kind) },
		})
	}
	reg.MustRegister(Type{
		Name:   TypeHidden,
		Hidden: true,
		Render: func(l *Leaf) string { return renderInput(l, "hidden") },
	})
	reg.MustRegister(Type{Name: TypeTextarea, Render: renderTextarea})
	reg.MustRegister(Type{Name: TypeCheckbox, Render: renderCheckbox})
	reg.MustRegister(Type{Name: TypeSelect, Render: renderSelect})
}

// RenderInput renders an <input> element of the given HTML type. Extension
// types built on plain inputs use it directly.
func RenderInput(l *Leaf, htmlType string) string {
	return renderInput(l, htmlType)
}

// RenderTextarea renders a <textarea> element.
func RenderTextarea(l *Leaf) string {
	return renderTextarea(l)
}

func renderInput(l *Leaf, htmlType string) string {
	var builder strings.Builder
	builder.WriteString(`<input type="`)
	builder.WriteString(html.EscapeString(htmlType))
	builder.WriteString(`"`)
	writeIdentity(&builder, l)
	switch htmlType {
	case "file", "password":
	default:
		builder.WriteString(` value="`)
		builder.WriteString(html.EscapeString(l.Value()))
		builder.WriteString(`"`)
	}
	writeCommon(&builder, l)
	builder.WriteString(` />`)
	return builder.String()
}

func renderTextarea(l *Leaf) string {
	var builder strings.Builder
	builder.WriteString(`<textarea`)
	writeIdentity(&builder, l)
	writeCommon(&builder, l)
	builder.WriteString(`>`)
	builder.WriteString(html.EscapeString(l.Value()))
	builder.WriteString(`</textarea>`)
	return builder.String()
}

func renderCheckbox(l *Leaf) string {
	value := l.value
	if value == "" {
		value = "on"
	}
	var builder strings.Builder
	builder.WriteString(`<input type="checkbox"`)
	writeIdentity(&builder, l)
	builder.WriteString(` value="`)
	builder.WriteString(html.EscapeString(value))
	builder.WriteString(`"`)
	if checked(l) {
		builder.WriteString(` checked`)
	}
	writeCommon(&builder, l)
	builder.WriteString(` />`)
	return builder.String()
}

// checked: a posted checkbox is checked when it was submitted at all;
// otherwise the "checked" attribute decides.
func checked(l *Leaf) bool {
	if posted, ok := l.PostedValue(); ok {
		return posted != ""
	}
	return l.attrs.Has("checked")
}

func renderSelect(l *Leaf) string {
	current := l.Value()
	var builder strings.Builder
	builder.WriteString(`<select`)
	writeIdentity(&builder, l)
	writeCommon(&builder, l)
	builder.WriteString(`>`)
	for _, option := range l.options {
		builder.WriteString(`<option value="`)
		builder.WriteString(html.EscapeString(option.Value))
		builder.WriteString(`"`)
		if option.Value == current {
			builder.WriteString(` selected`)
		}
		builder.WriteString(`>`)
		builder.WriteString(html.EscapeString(option.Label))
		builder.WriteString(`</option>`)
	}
	builder.WriteString(`</select>`)
	return builder.String()
}

func writeIdentity(builder *strings.Builder, l *Leaf) {
	builder.WriteString(` name="`)
	builder.WriteString(html.EscapeString(l.name))
	builder.WriteString(`" id="`)
	builder.WriteString(html.EscapeString(l.ControlID()))
	builder.WriteString(`"`)
}

// writeCommon emits the free-form attributes, skipping the ones the renderer
// already controls.
func writeCommon(builder *strings.Builder, l *Leaf) {
	extra := Attributes{}
	for _, key := range l.attrs.Keys() {
		switch key {
		case "name", "id", "type", "value", "checked":
			continue
		}
		extra.Set(key, l.attrs.Get(key))
	}
	if l.required && !extra.Has("required") && !l.Hidden() {
		extra.Set("required", "")
	}
	builder.WriteString(extra.String())
}
