package nonce_test

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/goliatone/go-formtable/pkg/input"
	"github.com/goliatone/go-formtable/pkg/nonce"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newMAC(t *testing.T, c *clock, options ...nonce.MACOption) *nonce.MAC {
	t.Helper()
	options = append(options, nonce.WithClock(c.Now))
	mac, err := nonce.NewMAC([]byte("test-secret"), options...)
	if err != nil {
		t.Fatalf("new mac: %v", err)
	}
	return mac
}

func TestKey(t *testing.T) {
	if got := nonce.Key("settings"); got != "automatic_nonce_settings" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestNewMAC_RequiresSecret(t *testing.T) {
	if _, err := nonce.NewMAC(nil); err == nil {
		t.Fatalf("expected error for empty secret")
	}
	long := make([]byte, 200)
	if _, err := nonce.NewMAC(long); err != nil {
		t.Fatalf("expected long secret to be accepted, got %v", err)
	}
}

func TestMAC_VerifyWindows(t *testing.T) {
	c := &clock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	mac := newMAC(t, c, nonce.WithLifetime(2*time.Hour))

	token := mac.Mint("automatic_nonce_settings")
	if len(token) != 10 {
		t.Fatalf("expected 10 character token, got %q", token)
	}
	if !mac.Verify(token, "automatic_nonce_settings") {
		t.Fatalf("expected fresh token to verify")
	}
	if mac.Verify(token, "automatic_nonce_profile") {
		t.Fatalf("token must not verify for another key")
	}

	c.now = c.now.Add(time.Hour)
	if !mac.Verify(token, "automatic_nonce_settings") {
		t.Fatalf("expected token from the previous window to verify")
	}

	c.now = c.now.Add(2 * time.Hour)
	if mac.Verify(token, "automatic_nonce_settings") {
		t.Fatalf("expected expired token to fail")
	}
}

func TestMAC_SubjectBinding(t *testing.T) {
	c := &clock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	alice := newMAC(t, c, nonce.WithSubject("alice"))
	bob := alice.ForSubject("bob")

	token := alice.Mint("k")
	if bob.Verify(token, "k") {
		t.Fatalf("token minted for alice must not verify for bob")
	}
	if !alice.Verify(token, "k") {
		t.Fatalf("expected token to verify for its subject")
	}
	if alice.Verify("", "k") {
		t.Fatalf("empty token must never verify")
	}
}

func TestManager_GenerateBuildsHiddenInput(t *testing.T) {
	c := &clock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	mac := newMAC(t, c)
	manager := nonce.NewManager(mac)

	leaf, err := manager.Generate("settings")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if leaf.Name() != "automatic_nonce_settings" {
		t.Fatalf("unexpected token name %q", leaf.Name())
	}
	if !leaf.Hidden() || leaf.Type().Name != input.TypeHidden {
		t.Fatalf("expected hidden input, got type %q", leaf.Type().Name)
	}
	if !mac.Verify(leaf.Value(), "automatic_nonce_settings") {
		t.Fatalf("expected generated value to verify")
	}
}

func TestManager_Verify(t *testing.T) {
	c := &clock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	mac := newMAC(t, c)
	manager := nonce.NewManager(mac)

	valid := mac.Mint(nonce.Key("settings"))
	if err := manager.Verify(valid, "settings"); err != nil {
		t.Fatalf("expected valid token, got %v", err)
	}

	otherKey := mac.Mint(nonce.Key("profile"))
	err := manager.Verify(otherKey, "settings")
	if !errors.Is(err, nonce.ErrVerificationFailed) {
		t.Fatalf("expected ErrVerificationFailed, got %v", err)
	}
	var verr *nonce.VerificationError
	if !errors.As(err, &verr) || verr.Missing || verr.Key != "automatic_nonce_settings" {
		t.Fatalf("unexpected verification error %#v", err)
	}

	err = manager.Verify("", "settings")
	if !errors.As(err, &verr) || !verr.Missing {
		t.Fatalf("expected missing token error, got %v", err)
	}
}

func TestManager_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := nonce.NewMetrics(reg)
	if err != nil {
		t.Fatalf("new metrics: %v", err)
	}
	again, err := nonce.NewMetrics(reg)
	if err != nil {
		t.Fatalf("re-registering metrics should reuse collectors: %v", err)
	}

	c := &clock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	mac := newMAC(t, c)
	manager := nonce.NewManager(mac, nonce.WithMetrics(metrics))
	other := nonce.NewManager(mac, nonce.WithMetrics(again))

	leaf, err := manager.Generate("a")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	_ = manager.Verify(leaf.Value(), "a")
	_ = other.Verify("nope", "a")

	count, err := testutil.GatherAndCount(reg, "formtable_tokens_minted_total", "formtable_token_verifications_total")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 series, got %d", count)
	}
}
