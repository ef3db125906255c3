package platform

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-formtable/pkg/form"
	"github.com/goliatone/go-formtable/pkg/nonce"
	"github.com/goliatone/go-formtable/pkg/render/template"
	"github.com/goliatone/go-formtable/pkg/render/template/gotemplate"
)

// Option customises a Site.
type Option func(*Site)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Site) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRegisterer registers token metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(s *Site) {
		s.registerer = reg
	}
}

// WithTemplateRenderer replaces the engine used for the rejection page.
func WithTemplateRenderer(renderer template.TemplateRenderer) Option {
	return func(s *Site) {
		if renderer != nil {
			s.templates = renderer
		}
	}
}

// WithClock overrides the time source used for tokens.
func WithClock(now func() time.Time) Option {
	return func(s *Site) {
		if now != nil {
			s.now = now
		}
	}
}

// Site holds process-wide services. Use ForRequest to obtain the
// request-scoped services a form is built with.
type Site struct {
	cfg        Config
	logger     *slog.Logger
	registerer prometheus.Registerer
	templates  template.TemplateRenderer
	now        func() time.Time

	mac        *nonce.MAC
	metrics    *nonce.Metrics
	translator *Translator
}

// NewSite validates cfg and wires the token minter, translator, metrics and
// template engine.
func NewSite(cfg Config, options ...Option) (*Site, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Site{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	mac, err := nonce.NewMAC([]byte(cfg.Secret),
		nonce.WithLifetime(cfg.TokenLifetime),
		nonce.WithClock(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("platform: %w", err)
	}
	s.mac = mac

	if s.registerer != nil {
		metrics, err := nonce.NewMetrics(s.registerer)
		if err != nil {
			return nil, fmt.Errorf("platform: register metrics: %w", err)
		}
		s.metrics = metrics
	}

	translator, err := NewTranslator(cfg.Locale, cfg.Translations)
	if err != nil {
		return nil, err
	}
	s.translator = translator

	if s.templates == nil {
		engine, err := gotemplate.New()
		if err != nil {
			return nil, fmt.Errorf("platform: template engine: %w", err)
		}
		s.templates = engine
	}

	return s, nil
}

// Logger returns the site logger.
func (s *Site) Logger() *slog.Logger {
	return s.logger
}

// Metrics returns the token metrics, or nil when no registerer was set.
func (s *Site) Metrics() *nonce.Metrics {
	return s.metrics
}

// Translate formats a string with the site translator.
func (s *Site) Translate(format string, args ...any) string {
	return s.translator.Translate(format, args...)
}

// ForRequest returns the services scoped to r. A nil request is allowed for
// offline rendering: the action URL is empty and tokens carry no subject.
func (s *Site) ForRequest(r *http.Request) *Request {
	subject := ""
	if r != nil && s.cfg.SubjectCookie != "" {
		if cookie, err := r.Cookie(s.cfg.SubjectCookie); err == nil {
			subject = cookie.Value
		}
	}
	return &Request{
		site:    s,
		request: r,
		mac:     s.mac.ForSubject(subject),
	}
}

// Request implements form.Services for one incoming request.
type Request struct {
	site    *Site
	request *http.Request
	mac     *nonce.MAC
}

var _ form.Services = (*Request)(nil)

// HTTPRequest returns the request the services are scoped to.
func (q *Request) HTTPRequest() *http.Request {
	return q.request
}

// ActionURL returns the current request URI without the strip query
// parameter. The URL stays relative so the browser posts back on whatever
// scheme and port the page was served from.
func (q *Request) ActionURL(strip string) string {
	if q.request == nil || q.request.URL == nil {
		return ""
	}
	u := *q.request.URL
	if strip != "" && u.RawQuery != "" {
		u.RawQuery = removeQueryArg(u.RawQuery, strip)
	}
	return u.RequestURI()
}

// removeQueryArg drops every pair named key from a raw query and leaves the
// other pairs untouched and in order.
func removeQueryArg(rawQuery, key string) string {
	pairs := strings.Split(rawQuery, "&")
	kept := pairs[:0]
	for _, pair := range pairs {
		name, _, _ := strings.Cut(pair, "=")
		if unescaped, err := url.QueryUnescape(name); err == nil {
			name = unescaped
		}
		if name == key {
			continue
		}
		kept = append(kept, pair)
	}
	return strings.Join(kept, "&")
}

// Mint implements nonce.Minter.
func (q *Request) Mint(key string) string {
	return q.mac.Mint(key)
}

// Verify implements nonce.Minter.
func (q *Request) Verify(value, key string) bool {
	return q.mac.Verify(value, key)
}

// Translate implements form.Services.
func (q *Request) Translate(format string, args ...any) string {
	return q.site.Translate(format, args...)
}

// NewForm builds a form bound to this request, carrying the site logger and
// token metrics.
func (q *Request) NewForm(options ...form.Option) *form.Form {
	base := []form.Option{
		form.WithLogger(q.site.logger),
		form.WithMetrics(q.site.metrics),
	}
	return form.New(q, append(base, options...)...)
}
