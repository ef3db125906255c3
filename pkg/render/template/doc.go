// Package template defines the template rendering seam used for full-page
// output such as the submission rejection page, and a pongo2-backed engine
// implementing it.
package template
