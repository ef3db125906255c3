package testsupport

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formtable/pkg/nonce"
)

// Secret signs every token minted by Services.
const Secret = "testsupport-secret"

// Epoch is the fixed instant Services mints tokens at.
var Epoch = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// Services is a deterministic stand-in for the host platform: tokens come
// from a MAC pinned to Epoch, the action URL is fixed and translations are
// prefixed so tests can see they happened.
type Services struct {
	MAC    *nonce.MAC
	Action string
	// Prefix is prepended to every translated string.
	Prefix string
	// Stripped records the query parameter ActionURL was asked to drop.
	Stripped string
}

// NewServices builds Services with a MAC bound to subject.
func NewServices(t *testing.T, subject string) *Services {
	t.Helper()

	mac, err := nonce.NewMAC([]byte(Secret),
		nonce.WithSubject(subject),
		nonce.WithClock(func() time.Time { return Epoch }),
	)
	if err != nil {
		t.Fatalf("new mac: %v", err)
	}
	return &Services{MAC: mac, Action: "/wp-admin/options.php?page=settings"}
}

func (s *Services) Mint(key string) string { return s.MAC.Mint(key) }

func (s *Services) Verify(value, key string) bool { return s.MAC.Verify(value, key) }

func (s *Services) ActionURL(strip string) string {
	s.Stripped = strip
	return s.Action
}

func (s *Services) Translate(format string, args ...any) string {
	return s.Prefix + fmt.Sprintf(format, args...)
}

// PostForm builds a urlencoded POST request carrying values.
func PostForm(target string, values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

// PostMultipart builds a multipart POST request carrying values and one
// file per entry in files (field name to file name).
func PostMultipart(t *testing.T, target string, values url.Values, files map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, list := range values {
		for _, value := range list {
			if err := writer.WriteField(key, value); err != nil {
				t.Fatalf("write field: %v", err)
			}
		}
	}
	for field, filename := range files {
		part, err := writer.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte("contents of " + filename)); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	r := httptest.NewRequest(http.MethodPost, target, &body)
	r.Header.Set("Content-Type", writer.FormDataContentType())
	return r
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// MustReadGoldenString reads a golden file and returns its content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return string(data)
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
