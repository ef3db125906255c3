package form

import (
	"github.com/goliatone/go-formtable/pkg/input"
)

// Input types every form knows on top of the registry defaults.
const (
	TypePrimaryButton   = "primary_button"
	TypeSecondaryButton = "secondary_button"
	TypeRichEditor      = "rich_editor"
)

const richEditorRows = "10"

func registerExtensions(reg *input.Registry) {
	for _, t := range []input.Type{
		{Name: TypePrimaryButton, Render: buttonRenderer("button-primary")},
		{Name: TypeSecondaryButton, Render: buttonRenderer("button-secondary")},
		{Name: TypeRichEditor, Render: renderRichEditor},
	} {
		if reg.Has(t.Name) {
			continue
		}
		reg.MustRegister(t)
	}
}

func buttonRenderer(class string) input.Renderer {
	return func(l *input.Leaf) string {
		attrs := l.Attributes()
		attrs.AddClass("button")
		attrs.AddClass(class)
		return input.RenderInput(l, "submit")
	}
}

func renderRichEditor(l *input.Leaf) string {
	attrs := l.Attributes()
	attrs.AddClass("rich-editor")
	if !attrs.Has("rows") {
		attrs.Set("rows", richEditorRows)
	}
	attrs.Set("data-editor", "rich")
	return `<div class="rich-editor-wrap">` + input.RenderTextarea(l) + `</div>`
}
