package formspec_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formtable/pkg/form"
	"github.com/goliatone/go-formtable/pkg/formspec"
	"github.com/goliatone/go-formtable/pkg/input"
	"github.com/goliatone/go-formtable/pkg/testsupport"
)

const settingsYAML = `
id: settings
header: General Settings
header_level: h2
inputs:
  - type: text
    name: blogname
    required: true
    description: In a few words, explain what this site is about.
  - type: select
    name: start_of_week
    value: "1"
    options:
      - {value: "0", label: Sunday}
      - {value: "1", label: Monday}
  - type: markup
    name: notice
    content: <p>Changes apply immediately.</p>
  - type: fieldset
    name: mail
    legend: Mail
    inputs:
      - type: email
        name: adminEmail
        attributes:
          placeholder: you@example.com
          autocomplete: email
  - type: primary_button
    name: submit
    value: Save Changes
`

func TestDefaultLabeler(t *testing.T) {
	cases := map[string]string{
		"blogname":      "Blogname",
		"start_of_week": "Start Of Week",
		"adminEmail":    "Admin Email",
		"page-2":        "Page 2",
		"":              "",
	}
	for in, want := range cases {
		if got := formspec.DefaultLabeler(in); got != want {
			t.Fatalf("DefaultLabeler(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseAndApply(t *testing.T) {
	doc, err := formspec.Parse([]byte(settingsYAML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !doc.TokenEnabled() {
		t.Fatalf("token should default to enabled")
	}

	f := form.New(testsupport.NewServices(t, "user-1"))
	if err := doc.Apply(f); err != nil {
		t.Fatalf("apply: %v", err)
	}

	var names []string
	for _, d := range f.Inputs() {
		names = append(names, d.Name())
	}
	want := []string{"blogname", "start_of_week", "notice", "mail", "submit", "automatic_nonce_settings"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("inputs mismatch (-want +got):\n%s", diff)
	}

	d, ok := f.Find("adminEmail")
	if !ok {
		t.Fatalf("nested email not found")
	}
	email := d.(*input.Leaf)
	if email.Label().Content != "Admin Email" {
		t.Fatalf("derived label = %q", email.Label().Content)
	}
	if diff := cmp.Diff([]string{"autocomplete", "placeholder"}, email.Attributes().Keys()); diff != "" {
		t.Fatalf("attribute order mismatch (-want +got):\n%s", diff)
	}

	out := f.RenderTable(doc.RenderOptions()...)
	for _, fragment := range []string{
		`<h2 class="title">General Settings</h2>`,
		`<option value="1" selected>Monday</option>`,
		`<td colspan="2"><p>Changes apply immediately.</p></td>`,
		`<div class="fieldset fieldset_mail"><h2 class="title">Mail</h2>`,
		`class="button button-primary"`,
		`name="automatic_nonce_settings"`,
	} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("output missing %q:\n%s", fragment, out)
		}
	}
}

func TestApply_TokenDisabled(t *testing.T) {
	doc, err := formspec.Parse([]byte("id: quiet\nautomatic_token: false\nencoding: application/x-www-form-urlencoded\ninputs:\n  - name: q\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	f := form.New(testsupport.NewServices(t, ""))
	if err := doc.Apply(f); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, ok := f.Token(); ok {
		t.Fatalf("token should be disabled")
	}
	if f.ID() != "quiet" || f.Attribute("enctype") != form.EncodingURLEncoded {
		t.Fatalf("unexpected form attributes: %s", f.Open())
	}
	d, _ := f.Find("q")
	if d.(*input.Leaf).Type().Name != input.TypeText {
		t.Fatalf("missing type should default to text")
	}
}

func TestApply_UnknownTypeAddsNothing(t *testing.T) {
	doc, err := formspec.Parse([]byte("id: x\ninputs:\n  - name: a\n  - name: b\n    type: colour_wheel\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	f := form.New(testsupport.NewServices(t, ""))
	err = doc.Apply(f)
	if !errors.Is(err, input.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
	if len(f.Inputs()) != 0 {
		t.Fatalf("partial apply left %d inputs", len(f.Inputs()))
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"missing name":     "inputs:\n  - type: text\n",
		"duplicate nested": "inputs:\n  - name: a\n  - name: g\n    type: fieldset\n    inputs:\n      - name: a\n",
		"children on leaf": "inputs:\n  - name: a\n    inputs:\n      - name: b\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := formspec.Parse([]byte(doc))
			if !errors.Is(err, formspec.ErrInvalidDocument) {
				t.Fatalf("expected ErrInvalidDocument, got %v", err)
			}
		})
	}
	if _, err := formspec.Parse([]byte("inputs: [\n")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "form.yaml")
	if err := os.WriteFile(path, []byte(settingsYAML), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	doc, err := formspec.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.ID != "settings" || len(doc.Inputs) != 5 {
		t.Fatalf("unexpected document %#v", doc)
	}
	if _, err := formspec.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestWithLabeler(t *testing.T) {
	doc, err := formspec.Parse([]byte("inputs:\n  - name: title\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	f := form.New(testsupport.NewServices(t, ""))
	if err := doc.Apply(f, formspec.WithLabeler(strings.ToUpper)); err != nil {
		t.Fatalf("apply: %v", err)
	}
	d, _ := f.Find("title")
	if got := d.(*input.Leaf).Label().Content; got != "TITLE" {
		t.Fatalf("label = %q", got)
	}
}
