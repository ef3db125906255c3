// Package form builds HTML forms as ordered trees of inputs, renders them as
// label/value tables and guards their submissions with an automatic
// anti-forgery token.
//
// Setting a form identity with SetID mints a hidden token input named
// "automatic_nonce_<id>". Changing the identity again replaces that input in
// place, so at most one automatic token is ever present. IsSubmission only
// recognises a post as belonging to the form when the token field was
// submitted, and AcceptSubmission returns a *RejectionError when the value
// does not verify. DisableAutomaticToken opts a form out for good.
package form
