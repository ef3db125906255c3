package nonce

import (
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/crypto/blake2b"
)

// DefaultLifetime is how long a minted token stays valid at most. Tokens
// are always accepted for at least half of it.
const DefaultLifetime = 24 * time.Hour

const tokenLength = 10

// MACOption configures a MAC minter.
type MACOption func(*MAC)

// WithLifetime overrides the token lifetime.
func WithLifetime(lifetime time.Duration) MACOption {
	return func(m *MAC) {
		if lifetime > 0 {
			m.lifetime = lifetime
		}
	}
}

// WithSubject binds tokens to a user or session identifier.
func WithSubject(subject string) MACOption {
	return func(m *MAC) {
		m.subject = subject
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) MACOption {
	return func(m *MAC) {
		if now != nil {
			m.now = now
		}
	}
}

// MAC mints time-windowed tokens with a keyed BLAKE2b hash over the window
// counter, the key and the subject. A token verifies during the window it
// was minted in and the following one.
type MAC struct {
	secret   []byte
	lifetime time.Duration
	subject  string
	now      func() time.Time
}

var _ Minter = (*MAC)(nil)

// NewMAC builds a MAC minter. Secrets longer than 64 bytes are hashed down
// to the BLAKE2b key size.
func NewMAC(secret []byte, options ...MACOption) (*MAC, error) {
	if len(secret) == 0 {
		return nil, errors.New("nonce: secret is required")
	}
	key := append([]byte(nil), secret...)
	if len(key) > blake2b.Size {
		sum := blake2b.Sum256(key)
		key = sum[:]
	}
	m := &MAC{
		secret:   key,
		lifetime: DefaultLifetime,
		now:      time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	return m, nil
}

// ForSubject returns a copy bound to another subject.
func (m *MAC) ForSubject(subject string) *MAC {
	clone := *m
	clone.subject = subject
	return &clone
}

// Mint returns the token for key in the current window.
func (m *MAC) Mint(key string) string {
	return m.token(m.tick(), key)
}

// Verify reports whether value was minted for key in the current or the
// previous window.
func (m *MAC) Verify(value, key string) bool {
	if value == "" {
		return false
	}
	tick := m.tick()
	for _, candidate := range []int64{tick, tick - 1} {
		expected := m.token(candidate, key)
		if subtle.ConstantTimeCompare([]byte(expected), []byte(value)) == 1 {
			return true
		}
	}
	return false
}

func (m *MAC) tick() int64 {
	half := int64(m.lifetime / 2)
	if half <= 0 {
		half = int64(DefaultLifetime / 2)
	}
	return m.now().UnixNano()/half + 1
}

func (m *MAC) token(tick int64, key string) string {
	h, err := blake2b.New256(m.secret)
	if err != nil {
		// Only reachable with an oversized key, which NewMAC prevents.
		panic(fmt.Sprintf("nonce: blake2b: %v", err))
	}
	h.Write([]byte(strconv.FormatInt(tick, 10)))
	h.Write([]byte{'|'})
	h.Write([]byte(key))
	h.Write([]byte{'|'})
	h.Write([]byte(m.subject))
	sum := h.Sum(nil)
	return hex.EncodeToString(sum)[:tokenLength]
}
