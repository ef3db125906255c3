// Package input defines the descriptors a form is built from. A descriptor is
// one of three variants: a Leaf carrying a single value (text field, checkbox,
// hidden token, ...), a Markup row inserted verbatim, or a Container holding
// an ordered, arbitrarily nested list of further descriptors (rendered as a
// fieldset). The variants are sealed so renderers can switch over them
// exhaustively.
//
// Leaf controls are produced by input types registered in a Registry. The
// default registry ships the common HTML controls; forms register their own
// extension types on a clone.
package input
