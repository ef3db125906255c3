// Package render turns input descriptors into the two-column form table
// markup: one row per visible leaf (label on the left, control and
// description on the right), full-width rows for markup, fieldset wrappers
// for containers and raw output for hidden inputs.
package render
