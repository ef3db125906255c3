package nonce

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts minted tokens and verification outcomes. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	minted        prometheus.Counter
	verifications *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg. Collectors
// already registered by an earlier call are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	minted := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "formtable",
		Name:      "tokens_minted_total",
		Help:      "Form tokens minted.",
	})
	verifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "formtable",
		Name:      "token_verifications_total",
		Help:      "Form token verifications by result.",
	}, []string{"result"})

	if reg == nil {
		return &Metrics{minted: minted, verifications: verifications}, nil
	}

	var err error
	if minted, err = registerCounter(reg, minted); err != nil {
		return nil, err
	}
	if err := reg.Register(verifications); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return nil, err
		}
		existing, ok := already.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, err
		}
		verifications = existing
	}
	return &Metrics{minted: minted, verifications: verifications}, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return nil, err
		}
		existing, ok := already.ExistingCollector.(prometheus.Counter)
		if !ok {
			return nil, err
		}
		return existing, nil
	}
	return counter, nil
}

func (m *Metrics) observeMint() {
	if m == nil {
		return
	}
	m.minted.Inc()
}

func (m *Metrics) observeVerify(ok bool) {
	if m == nil {
		return
	}
	result := "rejected"
	if ok {
		result = "accepted"
	}
	m.verifications.WithLabelValues(result).Inc()
}
