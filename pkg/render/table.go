package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-formtable/pkg/htmltable"
	"github.com/goliatone/go-formtable/pkg/input"
)

// RequiredMessage is the tooltip shown on the required marker.
const RequiredMessage = "This input is required."

// Table renders descriptors as two-column label/value tables. Containers
// close the current table, render their own inputs inside a fieldset wrapper
// and start a fresh table afterwards, so rows never merge across a fieldset.
// Hidden leaves bypass the table. Nothing is emitted for a sequence without
// visible rows, a header or containers.
func Table(inputs []input.Descriptor, options ...Option) string {
	cfg := newConfig(options)
	return cfg.renderInputs(cfg.header, inputs)
}

// renderInputs returns its own buffer; nested containers are rendered by a
// separate call whose result is merged in by value.
func (c *config) renderInputs(header string, inputs []input.Descriptor) string {
	var out strings.Builder

	if header != "" {
		fmt.Fprintf(&out, "<%s class=\"%s\">%s</%s>\n",
			c.headerLevel,
			html.EscapeString(c.classes.Title),
			header,
			c.headerLevel,
		)
	}

	table := c.newTable()

	for _, descriptor := range inputs {
		switch in := descriptor.(type) {
		case *input.Container:
			if table.Body().Len() > 0 {
				out.WriteString(table.String())
			}
			nested := c.renderInputs(in.Heading(), in.Inputs())
			fmt.Fprintf(&out, `<div class="%s %s_%s">%s</div>`,
				html.EscapeString(c.classes.Fieldset),
				html.EscapeString(c.classes.Fieldset),
				html.EscapeString(in.Name()),
				nested,
			)
			table = c.newTable()
		case *input.Markup:
			table.Body().Row().TD().
				SetAttribute("colspan", "2").
				Text(c.sanitize(in.DisplayInput()))
		case *input.Leaf:
			if in.Hidden() {
				out.WriteString(in.DisplayInput())
				continue
			}
			c.leafRow(table, in)
		}
	}

	if table.Body().Len() > 0 {
		out.WriteString(table.String())
	}
	return out.String()
}

func (c *config) leafRow(table *htmltable.Table, leaf *input.Leaf) {
	description := c.sanitize(leaf.DisplayDescription())
	if description != "" {
		description = fmt.Sprintf(`<div class="%s">%s</div>`, html.EscapeString(c.classes.Description), description)
	}

	row := table.Body().Row()
	if !leaf.Validates() {
		row.CSSClass(c.classes.Invalid)
	}

	label := leaf.DisplayLabel()
	if leaf.Required() {
		label += fmt.Sprintf(` <sup><abbr title="%s">*</abbr></sup>`,
			html.EscapeString(c.translator.Translate(RequiredMessage)),
		)
	}

	row.TH().Text(label)
	row.TD().Textf(`<div class="%s">%s</div>%s`,
		html.EscapeString(c.classes.Control),
		leaf.DisplayInput(),
		description,
	)
}

func (c *config) newTable() *htmltable.Table {
	return htmltable.New().SetAttribute("class", c.classes.Table)
}
