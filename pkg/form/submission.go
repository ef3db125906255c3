package form

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/goliatone/go-formtable/pkg/input"
	"github.com/goliatone/go-formtable/pkg/render"
)

type submission struct {
	values url.Values
	files  map[string][]*multipart.FileHeader
}

func (s submission) has(name string) bool {
	if _, ok := s.values[name]; ok {
		return true
	}
	_, ok := s.files[name]
	return ok
}

// IsSubmission reports whether r posts this form. While a token is bound the
// token field must be present as well; its value is not checked here.
func (f *Form) IsSubmission(r *http.Request) bool {
	sub, err := f.parse(r)
	if err != nil {
		return false
	}
	if f.state == tokenBound && f.token != nil {
		if _, ok := sub.values[f.token.Name()]; !ok {
			return false
		}
	}
	return f.posted(r, sub)
}

// AcceptSubmission copies the posted values into the inputs, flags empty
// required inputs and then verifies the token if one is bound. A failed
// check returns a *RejectionError and the caller must stop processing the
// request.
func (f *Form) AcceptSubmission(r *http.Request) error {
	sub, err := f.parse(r)
	if err != nil {
		return fmt.Errorf("form: parse submission: %w", err)
	}
	f.accept(sub)

	if f.state != tokenBound || f.token == nil {
		return nil
	}
	submitted, _ := f.token.PostedValue()
	if err := f.tokens.Verify(submitted, f.ID()); err != nil {
		f.logger.Warn("form token rejected", "form", f.ID(), "error", err)
		return &RejectionError{FormID: f.ID(), Err: err}
	}
	f.logger.Debug("form token accepted", "form", f.ID())
	return nil
}

func (f *Form) parse(r *http.Request) (submission, error) {
	if r == nil {
		return submission{}, errors.New("nil request")
	}
	if r.PostForm == nil {
		err := r.ParseMultipartForm(f.maxMemory)
		if errors.Is(err, http.ErrNotMultipart) {
			err = r.ParseForm()
		}
		if err != nil {
			return submission{}, err
		}
	}
	sub := submission{values: r.PostForm}
	if r.MultipartForm != nil {
		sub.files = r.MultipartForm.File
	}
	return sub, nil
}

// posted reports whether r is a POST carrying at least one of the form's
// own input names.
func (f *Form) posted(r *http.Request, sub submission) bool {
	if r.Method != http.MethodPost {
		return false
	}
	for _, leaf := range input.Leaves(f.inputs) {
		if leaf == f.token {
			continue
		}
		if sub.has(leaf.Name()) {
			return true
		}
	}
	return false
}

func (f *Form) accept(sub submission) {
	required := f.translate(render.RequiredMessage)
	for _, leaf := range input.Leaves(f.inputs) {
		leaf.ClearErrors()
		name := leaf.Name()
		switch {
		case sub.values.Has(name):
			leaf.SetPostedValue(sub.values.Get(name))
		case len(sub.files[name]) > 0:
			leaf.SetPostedValue(sub.files[name][0].Filename)
		case leaf.Type().Name == input.TypeCheckbox:
			leaf.SetPostedValue("")
		default:
			leaf.ClearPostedValue()
		}

		if leaf.Required() && !leaf.Hidden() {
			if value, _ := leaf.PostedValue(); value == "" {
				leaf.AddError(required)
			}
		}
	}
}

func (f *Form) translate(format string, args ...any) string {
	if f.services == nil {
		return fmt.Sprintf(format, args...)
	}
	return f.services.Translate(format, args...)
}
