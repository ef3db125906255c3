package platform

import (
	"errors"
	"net/http"

	"github.com/goliatone/go-formtable/pkg/nonce"
)

const (
	defaultRejectionTitle   = "Something went wrong."
	defaultRejectionMessage = "Form validity check failed (missing token)."
	defaultRejectionBack    = "Please try again."
)

const rejectionPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="robots" content="noindex">
<title>{{ title }}</title>
</head>
<body id="error-page">
<h1>{{ title }}</h1>
<p>{{ message }}</p>
{% if back %}<p><a href="{{ back }}">{{ back_label }}</a></p>
{% endif %}</body>
</html>
`

// Reject ends request processing after a failed token check: it logs the
// failure and writes a 403 page. Errors that are not token failures get a
// plain 500.
func (q *Request) Reject(w http.ResponseWriter, err error) {
	logger := q.site.logger
	path := ""
	if q.request != nil && q.request.URL != nil {
		path = q.request.URL.Path
	}

	if !errors.Is(err, nonce.ErrVerificationFailed) {
		logger.Error("form submission failed", "error", err, "path", path)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger.Warn("form token rejected", "error", err, "path", path)

	rejection := q.site.cfg.Rejection
	title := rejection.Title
	if title == "" {
		title = q.Translate(defaultRejectionTitle)
	}
	message := rejection.Message
	if message == "" {
		message = q.Translate(defaultRejectionMessage)
	}
	back := ""
	if q.request != nil {
		back = q.request.Referer()
	}
	page := rejection.Template
	if page == "" {
		page = rejectionPage
	}

	body, renderErr := q.site.templates.RenderString(page, map[string]any{
		"title":      title,
		"message":    message,
		"back":       back,
		"back_label": q.Translate(defaultRejectionBack),
	})
	if renderErr != nil {
		logger.Error("render rejection page", "error", renderErr)
		http.Error(w, message, http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(body))
}
