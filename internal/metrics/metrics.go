package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collectors counts what scanners produce. A nil *Collectors is valid and records nothing.
type Collectors struct {
	Tokens *prometheus.CounterVec
	Errors *prometheus.CounterVec
}

func New() *Collectors {
	return &Collectors{
		Tokens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minic_tokens_total",
				Help: "Tokens produced by the scanner, including error and end-of-input tokens",
			}, []string{"kind"},
		),
		Errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minic_lexical_errors_total",
				Help: "Lexical errors reported as error tokens",
			}, []string{"error"},
		),
	}
}

func (c *Collectors) Register(reg prometheus.Registerer) error {
	for _, col := range []prometheus.Collector{c.Tokens, c.Errors} {
		if err := reg.Register(col); err != nil {
			return err
		}
	}
	return nil
}

func (c *Collectors) ObserveToken(kind string) {
	if c == nil {
		return
	}
	c.Tokens.WithLabelValues(kind).Inc()
}

func (c *Collectors) ObserveError(kind string) {
	if c == nil {
		return
	}
	c.Errors.WithLabelValues(kind).Inc()
}
