// Package htmltable assembles HTML tables row by row. Cell content is
// written as-is (it is usually markup produced elsewhere); attribute values
// are escaped.
package htmltable

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formtable/pkg/input"
)

// Table is a <table> with a single <tbody>.
type Table struct {
	attrs input.Attributes
	body  Body
}

// Body holds the table rows.
type Body struct {
	rows []*Row
}

// Row is a <tr>.
type Row struct {
	attrs input.Attributes
	cells []*Cell
}

// Cell is a <th> or <td>.
type Cell struct {
	tag     string
	attrs   input.Attributes
	content string
}

// New returns an empty table.
func New() *Table {
	return &Table{}
}

// SetAttribute sets an attribute on the <table> element.
func (t *Table) SetAttribute(key, value string) *Table {
	t.attrs.Set(key, value)
	return t
}

// CSSClass appends a class to the <table> element.
func (t *Table) CSSClass(class string) *Table {
	t.attrs.AddClass(class)
	return t
}

// Attribute returns a <table> attribute.
func (t *Table) Attribute(key string) string {
	return t.attrs.Get(key)
}

// Body returns the table body.
func (t *Table) Body() *Body {
	return &t.body
}

// Row appends a new row.
func (b *Body) Row() *Row {
	row := &Row{}
	b.rows = append(b.rows, row)
	return row
}

// Len returns the number of rows.
func (b *Body) Len() int {
	return len(b.rows)
}

// SetAttribute sets an attribute on the <tr> element.
func (r *Row) SetAttribute(key, value string) *Row {
	r.attrs.Set(key, value)
	return r
}

// CSSClass appends a class to the <tr> element.
func (r *Row) CSSClass(class string) *Row {
	r.attrs.AddClass(class)
	return r
}

// Attribute returns a <tr> attribute.
func (r *Row) Attribute(key string) string {
	return r.attrs.Get(key)
}

// TH appends a header cell.
func (r *Row) TH() *Cell {
	return r.cell("th")
}

// TD appends a data cell.
func (r *Row) TD() *Cell {
	return r.cell("td")
}

// Cells returns the number of cells in the row.
func (r *Row) Cells() int {
	return len(r.cells)
}

func (r *Row) cell(tag string) *Cell {
	c := &Cell{tag: tag}
	r.cells = append(r.cells, c)
	return c
}

// SetAttribute sets an attribute on the cell.
func (c *Cell) SetAttribute(key, value string) *Cell {
	c.attrs.Set(key, value)
	return c
}

// CSSClass appends a class to the cell.
func (c *Cell) CSSClass(class string) *Cell {
	c.attrs.AddClass(class)
	return c
}

// Text replaces the cell content.
func (c *Cell) Text(content string) *Cell {
	c.content = content
	return c
}

// Textf replaces the cell content with a formatted string.
func (c *Cell) Textf(format string, args ...any) *Cell {
	c.content = fmt.Sprintf(format, args...)
	return c
}

// Content returns the cell content.
func (c *Cell) Content() string {
	return c.content
}

// String renders the table.
func (t *Table) String() string {
	var builder strings.Builder
	builder.WriteString("<table")
	builder.WriteString(t.attrs.String())
	builder.WriteString(">\n\t<tbody>\n")
	for _, row := range t.body.rows {
		builder.WriteString("\t\t<tr")
		builder.WriteString(row.attrs.String())
		builder.WriteString(">\n")
		for _, cell := range row.cells {
			builder.WriteString("\t\t\t<")
			builder.WriteString(cell.tag)
			builder.WriteString(cell.attrs.String())
			builder.WriteString(">")
			builder.WriteString(cell.content)
			builder.WriteString("</")
			builder.WriteString(cell.tag)
			builder.WriteString(">\n")
		}
		builder.WriteString("\t\t</tr>\n")
	}
	builder.WriteString("\t</tbody>\n</table>\n")
	return builder.String()
}
