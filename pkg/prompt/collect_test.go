package prompt_test

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formtable/pkg/form"
	"github.com/goliatone/go-formtable/pkg/prompt"
	"github.com/goliatone/go-formtable/pkg/testsupport"
)

type scriptedDriver struct {
	answers  map[string]any
	asked    []string
	required []string
}

func (d *scriptedDriver) answer(message string) any {
	d.asked = append(d.asked, message)
	return d.answers[message]
}

func (d *scriptedDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	if cfg.Validator != nil {
		d.required = append(d.required, cfg.Message)
	}
	value, _ := d.answer(cfg.Message).(string)
	return value, nil
}

func (d *scriptedDriver) Password(_ context.Context, cfg prompt.InputConfig) (string, error) {
	value, _ := d.answer(cfg.Message).(string)
	return value, nil
}

func (d *scriptedDriver) Confirm(_ context.Context, cfg prompt.ConfirmConfig) (bool, error) {
	value, _ := d.answer(cfg.Message).(bool)
	return value, nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg prompt.SelectConfig) (int, error) {
	value, _ := d.answer(cfg.Message).(int)
	return value, nil
}

func (d *scriptedDriver) TextArea(_ context.Context, cfg prompt.InputConfig) (string, error) {
	value, _ := d.answer(cfg.Message).(string)
	return value, nil
}

type abortingDriver struct{ scriptedDriver }

func (abortingDriver) Input(context.Context, prompt.InputConfig) (string, error) {
	return "", prompt.ErrAborted
}

func TestCollect(t *testing.T) {
	svc := testsupport.NewServices(t, "")
	f := form.New(svc)
	f.Text("blogname").SetLabel("Site title").SetRequired(true)
	f.Password("pass")
	f.Checkbox("public").SetLabel("Public")
	f.Checkbox("comments").SetLabel("Comments")
	f.Select("week").SetLabel("Week starts").AddOption("0", "Sunday").AddOption("1", "Monday")
	f.Textarea("bio")
	f.File("avatar")
	f.PrimaryButton("save")
	if err := f.SetID("settings"); err != nil {
		t.Fatalf("set id: %v", err)
	}

	driver := &scriptedDriver{answers: map[string]any{
		"Site title":  "My blog",
		"pass":        "hunter2",
		"Public":      true,
		"Comments":    false,
		"Week starts": 1,
		"bio":         "hello",
	}}
	values, err := prompt.Collect(context.Background(), driver, f.Inputs())
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	want := url.Values{
		"blogname":                 {"My blog"},
		"pass":                     {"hunter2"},
		"public":                   {"on"},
		"week":                     {"1"},
		"bio":                      {"hello"},
		"automatic_nonce_settings": {svc.Mint("automatic_nonce_settings")},
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Site title"}, driver.required); diff != "" {
		t.Fatalf("required prompts mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Site title", "pass", "Public", "Comments", "Week starts", "bio"}, driver.asked); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}

	// the collected values post back cleanly
	r := testsupport.PostForm("/", values)
	if !f.IsSubmission(r) {
		t.Fatalf("collected values should form a submission")
	}
	if err := f.AcceptSubmission(r); err != nil {
		t.Fatalf("accept: %v", err)
	}
}

func TestCollect_Aborted(t *testing.T) {
	f := form.New(testsupport.NewServices(t, ""))
	f.Text("name")

	_, err := prompt.Collect(context.Background(), &abortingDriver{}, f.Inputs())
	if !errors.Is(err, prompt.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if _, err := prompt.Collect(context.Background(), nil, f.Inputs()); err == nil {
		t.Fatalf("expected error for nil driver")
	}
}
