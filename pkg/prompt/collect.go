package prompt

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-formtable/pkg/form"
	"github.com/goliatone/go-formtable/pkg/input"
)

// Collect asks for a value for every fillable leaf and returns them keyed by
// input name. Hidden inputs, files, buttons and markup are skipped; their
// current values are carried over where the browser would send them.
func Collect(ctx context.Context, driver Driver, descriptors []input.Descriptor) (url.Values, error) {
	if driver == nil {
		return nil, errors.New("prompt: driver is nil")
	}
	values := url.Values{}
	for _, leaf := range input.Leaves(descriptors) {
		if leaf.Hidden() {
			values.Set(leaf.Name(), leaf.Value())
			continue
		}
		if err := collectLeaf(ctx, driver, leaf, values); err != nil {
			return nil, fmt.Errorf("prompt: %s: %w", leaf.Name(), err)
		}
	}
	return values, nil
}

func collectLeaf(ctx context.Context, driver Driver, leaf *input.Leaf, values url.Values) error {
	cfg := InputConfig{
		Message: message(leaf),
		Default: leaf.Value(),
		Help:    leaf.Description(),
	}
	if leaf.Required() {
		cfg.Validator = required
	}

	switch leaf.Type().Name {
	case input.TypeFile, input.TypeSubmit, form.TypePrimaryButton, form.TypeSecondaryButton:
		return nil
	case input.TypePassword:
		value, err := driver.Password(ctx, cfg)
		if err != nil {
			return err
		}
		values.Set(leaf.Name(), value)
	case input.TypeCheckbox:
		ok, err := driver.Confirm(ctx, ConfirmConfig{
			Message: cfg.Message,
			Default: leaf.Attributes().Has("checked"),
			Help:    cfg.Help,
		})
		if err != nil {
			return err
		}
		if ok {
			value := leaf.Value()
			if value == "" {
				value = "on"
			}
			values.Set(leaf.Name(), value)
		}
	case input.TypeSelect:
		options := leaf.Options()
		if len(options) == 0 {
			return nil
		}
		labels := make([]string, len(options))
		defaultIndex := 0
		for i, option := range options {
			labels[i] = option.Label
			if option.Value == leaf.Value() {
				defaultIndex = i
			}
		}
		index, err := driver.Select(ctx, SelectConfig{
			Message:      cfg.Message,
			Options:      labels,
			DefaultIndex: defaultIndex,
			Help:         cfg.Help,
		})
		if err != nil {
			return err
		}
		if index >= 0 && index < len(options) {
			values.Set(leaf.Name(), options[index].Value)
		}
	case input.TypeTextarea, form.TypeRichEditor:
		value, err := driver.TextArea(ctx, cfg)
		if err != nil {
			return err
		}
		values.Set(leaf.Name(), value)
	default:
		value, err := driver.Input(ctx, cfg)
		if err != nil {
			return err
		}
		values.Set(leaf.Name(), value)
	}
	return nil
}

func message(leaf *input.Leaf) string {
	label := strings.TrimSpace(leaf.Label().Content)
	if label == "" {
		return leaf.Name()
	}
	return label
}

func required(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("a value is required")
	}
	return nil
}
