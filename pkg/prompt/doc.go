// Package prompt fills form inputs from a terminal, one question per input,
// using survey. The collected values can be posted back through
// form.AcceptSubmission to preview validation offline.
package prompt
