// Package nonce manages the anti-forgery token bound to a form. The token is
// keyed by the form identity, minted by a Minter and carried as a hidden
// input; on submission the posted value is checked against the same key.
package nonce

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formtable/pkg/input"
)

// KeyPrefix prefixes the form identity to build the token input name.
const KeyPrefix = "automatic_nonce_"

// ErrVerificationFailed marks a submission whose token did not verify.
var ErrVerificationFailed = errors.New("token verification failed")

// Key derives the token input name for a form identity.
func Key(formID string) string {
	return KeyPrefix + formID
}

// Minter is the security primitive that mints and checks tokens for a key.
type Minter interface {
	Mint(key string) string
	Verify(value, key string) bool
}

// VerificationError describes a rejected token.
type VerificationError struct {
	FormID  string
	Key     string
	Missing bool
}

func (e *VerificationError) Error() string {
	if e.Missing {
		return fmt.Sprintf("nonce: token %q missing for form %q: %s", e.Key, e.FormID, ErrVerificationFailed)
	}
	return fmt.Sprintf("nonce: token %q invalid for form %q: %s", e.Key, e.FormID, ErrVerificationFailed)
}

// Unwrap exposes ErrVerificationFailed to errors.Is.
func (e *VerificationError) Unwrap() error {
	return ErrVerificationFailed
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithRegistry resolves the hidden input type from the given registry.
func WithRegistry(reg *input.Registry) ManagerOption {
	return func(m *Manager) {
		if reg != nil {
			m.registry = reg
		}
	}
}

// WithMetrics records mint and verify outcomes.
func WithMetrics(metrics *Metrics) ManagerOption {
	return func(m *Manager) {
		m.metrics = metrics
	}
}

// Manager generates and verifies form tokens.
type Manager struct {
	minter   Minter
	registry *input.Registry
	metrics  *Metrics
}

// NewManager builds a Manager around a Minter.
func NewManager(minter Minter, options ...ManagerOption) *Manager {
	m := &Manager{minter: minter}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	if m.registry == nil {
		m.registry = input.DefaultRegistry()
	}
	return m
}

// Generate mints a fresh token for formID and wraps it in a hidden input
// named by Key(formID). Binding the input to a form is left to the caller.
func (m *Manager) Generate(formID string) (*input.Leaf, error) {
	if m.minter == nil {
		return nil, errors.New("nonce: minter is nil")
	}
	key := Key(formID)
	leaf, err := m.registry.New(input.TypeHidden, key)
	if err != nil {
		return nil, fmt.Errorf("nonce: build token input: %w", err)
	}
	leaf.SetValue(m.minter.Mint(key))
	m.metrics.observeMint()
	return leaf, nil
}

// Verify checks a submitted value against formID's key. Any failure,
// including an empty value, returns a *VerificationError.
func (m *Manager) Verify(value, formID string) error {
	key := Key(formID)
	if value == "" {
		m.metrics.observeVerify(false)
		return &VerificationError{FormID: formID, Key: key, Missing: true}
	}
	if m.minter == nil || !m.minter.Verify(value, key) {
		m.metrics.observeVerify(false)
		return &VerificationError{FormID: formID, Key: key}
	}
	m.metrics.observeVerify(true)
	return nil
}
