package form

import (
	"fmt"

	"github.com/goliatone/go-formtable/pkg/input"
	"github.com/goliatone/go-formtable/pkg/nonce"
)

// TokenPolicy decides whether identity changes mint a token.
type TokenPolicy int

const (
	// AutoTokenEnabled regenerates the token on every SetID.
	AutoTokenEnabled TokenPolicy = iota
	// AutoTokenDisabled leaves identity changes alone. There is no way back.
	AutoTokenDisabled
)

type tokenState int

const (
	tokenUnset tokenState = iota
	tokenBound
	// tokenDisabled is set by DisableAutomaticToken, as opposed to a token that
	// was never generated.
	tokenDisabled
)

// SetID assigns the form identity. With automatic tokens enabled, a token
// keyed by the new identity is minted and replaces any previously bound
// token in place.
func (f *Form) SetID(id string) error {
	f.attrs.Set("id", id)
	if f.policy == AutoTokenDisabled {
		return nil
	}

	leaf, err := f.tokens.Generate(id)
	if err != nil {
		f.unbindToken()
		f.state = tokenUnset
		return fmt.Errorf("form: generate token: %w", err)
	}
	f.bindToken(leaf)
	f.logger.Debug("form token bound", "form", id, "key", leaf.Name())
	return nil
}

// DisableAutomaticToken drops the bound token and stops later SetID calls
// from minting one. A token can still be added by hand with Hidden.
func (f *Form) DisableAutomaticToken() *Form {
	f.unbindToken()
	f.state = tokenDisabled
	f.policy = AutoTokenDisabled
	return f
}

// AutomaticToken reports whether identity changes mint a token.
func (f *Form) AutomaticToken() bool {
	return f.policy == AutoTokenEnabled
}

// TokenPolicy returns the current policy.
func (f *Form) TokenPolicy() TokenPolicy {
	return f.policy
}

// Token returns the bound token input.
func (f *Form) Token() (*input.Leaf, bool) {
	if f.state != tokenBound || f.token == nil {
		return nil, false
	}
	return f.token, true
}

// TokenKey returns the name the token is submitted under.
func (f *Form) TokenKey() string {
	return nonce.Key(f.ID())
}

func (f *Form) bindToken(leaf *input.Leaf) {
	if f.token != nil {
		for i, d := range f.inputs {
			if d == input.Descriptor(f.token) {
				f.inputs[i] = leaf
				f.token = leaf
				f.state = tokenBound
				return
			}
		}
	}
	f.inputs = append(f.inputs, leaf)
	f.token = leaf
	f.state = tokenBound
}

func (f *Form) unbindToken() {
	if f.token == nil {
		return
	}
	for i, d := range f.inputs {
		if d == input.Descriptor(f.token) {
			f.inputs = append(f.inputs[:i], f.inputs[i+1:]...)
			break
		}
	}
	f.token = nil
}
