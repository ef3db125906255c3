package input_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formtable/pkg/input"
)

func TestRegistry_NewUnknownType(t *testing.T) {
	reg := input.DefaultRegistry()

	if _, err := reg.New("colour-wheel", "tint"); !errors.Is(err, input.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestRegistry_CloneIsolatesRegistrations(t *testing.T) {
	base := input.DefaultRegistry()
	cloned := base.Clone()
	cloned.MustRegister(input.Type{
		Name:   "Stars",
		Render: func(l *input.Leaf) string { return "*" },
	})

	if !cloned.Has("stars") {
		t.Fatalf("expected clone to resolve normalised name")
	}
	if base.Has("stars") {
		t.Fatalf("expected base registry to be untouched")
	}
}

func TestRegistry_RejectsInvalidTypes(t *testing.T) {
	reg := input.NewRegistry()
	if err := reg.Register(input.Type{Name: " "}); !errors.Is(err, input.ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType for blank name, got %v", err)
	}
	if err := reg.Register(input.Type{Name: "x"}); !errors.Is(err, input.ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType for nil renderer, got %v", err)
	}
}

func TestLeaf_DisplayInput(t *testing.T) {
	reg := input.DefaultRegistry()

	cases := []struct {
		name  string
		build func() *input.Leaf
		want  string
	}{
		{
			name: "text with escaped value",
			build: func() *input.Leaf {
				leaf, _ := reg.New(input.TypeText, "title")
				return leaf.SetValue(`a "quoted" <b>`).SetRequired(true)
			},
			want: `<input type="text" name="title" id="title" value="a &#34;quoted&#34; &lt;b&gt;" required />`,
		},
		{
			name: "hidden never carries required",
			build: func() *input.Leaf {
				leaf, _ := reg.New(input.TypeHidden, "token")
				return leaf.SetValue("abc").SetRequired(true)
			},
			want: `<input type="hidden" name="token" id="token" value="abc" />`,
		},
		{
			name: "textarea",
			build: func() *input.Leaf {
				leaf, _ := reg.New(input.TypeTextarea, "notes")
				return leaf.SetValue("x & y").SetAttribute("rows", "4")
			},
			want: `<textarea name="notes" id="notes" rows="4">x &amp; y</textarea>`,
		},
		{
			name: "checkbox posted",
			build: func() *input.Leaf {
				leaf, _ := reg.New(input.TypeCheckbox, "agree")
				return leaf.SetPostedValue("on")
			},
			want: `<input type="checkbox" name="agree" id="agree" value="on" checked />`,
		},
		{
			name: "select marks current value",
			build: func() *input.Leaf {
				leaf, _ := reg.New(input.TypeSelect, "size")
				return leaf.AddOption("s", "Small").AddOption("m", "Medium").SetValue("m")
			},
			want: `<select name="size" id="size"><option value="s">Small</option><option value="m" selected>Medium</option></select>`,
		},
		{
			name: "password never echoes value",
			build: func() *input.Leaf {
				leaf, _ := reg.New(input.TypePassword, "secret")
				return leaf.SetPostedValue("hunter2")
			},
			want: `<input type="password" name="secret" id="secret" />`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, tc.build().DisplayInput()); diff != "" {
				t.Fatalf("markup mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLeaf_PostedValueWins(t *testing.T) {
	leaf := input.NewLeaf(input.Type{Name: "text"}, "name").SetValue("default")
	if got := leaf.Value(); got != "default" {
		t.Fatalf("expected default value, got %q", got)
	}
	leaf.SetPostedValue("")
	if got, ok := leaf.PostedValue(); !ok || got != "" {
		t.Fatalf("expected empty posted value to be recorded, got %q (ok=%v)", got, ok)
	}
	if got := leaf.Value(); got != "" {
		t.Fatalf("expected posted value to replace default, got %q", got)
	}
}

func TestLeaf_ValidationState(t *testing.T) {
	leaf := input.NewLeaf(input.Type{Name: "text"}, "name").SetDescription("Your name")
	if !leaf.Validates() {
		t.Fatalf("expected fresh leaf to validate")
	}
	leaf.AddError("Required <field>")
	if leaf.Validates() {
		t.Fatalf("expected leaf with errors to fail validation")
	}
	want := `Your name<span class="input_error">Required &lt;field&gt;</span>`
	if diff := cmp.Diff(want, leaf.DisplayDescription()); diff != "" {
		t.Fatalf("description mismatch (-want +got):\n%s", diff)
	}
}

func TestContainer_HeadingPrefersLabelContent(t *testing.T) {
	cases := []struct {
		name      string
		container *input.Container
		want      string
	}{
		{"label only", input.NewContainer("a").SetLabel("Label"), "Label"},
		{"label beats legend", input.NewContainer("a").SetLabel("Label").SetLegend("Legend"), "Label"},
		{"empty label falls back to legend", input.NewContainer("a").SetLabel("").SetLegend("Legend"), "Legend"},
		{"nothing", input.NewContainer("a"), ""},
	}
	for _, tc := range cases {
		if got := tc.container.Heading(); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestWalk_DepthFirstOrder(t *testing.T) {
	inner := input.NewContainer("inner").Add(input.NewMarkup("m", ""))
	outer := input.NewContainer("outer").Add(
		input.NewLeaf(input.Type{Name: "text"}, "a"),
		inner,
		input.NewLeaf(input.Type{Name: "text"}, "b"),
	)
	tree := []input.Descriptor{input.NewLeaf(input.Type{Name: "text"}, "first"), outer}

	var names []string
	input.Walk(tree, func(d input.Descriptor) bool {
		names = append(names, d.Name())
		return true
	})

	want := []string{"first", "outer", "a", "inner", "m", "b"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("walk order mismatch (-want +got):\n%s", diff)
	}

	leaves := input.Leaves(tree)
	if len(leaves) != 3 {
		t.Fatalf("expected 3 leaves, got %d", len(leaves))
	}
}

func TestAttributes_OrderAndBooleans(t *testing.T) {
	var attrs input.Attributes
	attrs.Set("data-x", "1")
	attrs.Set("disabled", "")
	attrs.Set("data-x", "2")
	attrs.AddClass("wide")
	attrs.AddClass("wide")

	if diff := cmp.Diff(` data-x="2" disabled class="wide"`, attrs.String()); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}

	attrs.Delete("disabled")
	if diff := cmp.Diff([]string{"data-x", "class"}, attrs.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}
