package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

// Collector is safe to use as a nil pointer; every method is then a no-op.
type Collector struct {
	registry           *prometheus.Registry
	transactions       *prometheus.CounterVec
	commissionsCharged *prometheus.CounterVec
	cardChecks         *prometheus.CounterVec
	httpRequests       *prometheus.CounterVec
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,
		transactions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "msaccount_transactions_total",
			Help: "Deposits and withdrawals by outcome",
		}, []string{"type", "outcome"}),
		commissionsCharged: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "msaccount_commission_charged_total",
			Help: "Commission amount charged by account type",
		}, []string{"account_type"}),
		cardChecks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "msaccount_card_checks_total",
			Help: "Credit card eligibility checks by outcome",
		}, []string{"outcome"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "msaccount_http_requests_total",
			Help: "HTTP requests by route pattern and status",
		}, []string{"path", "status"}),
	}
}

func (c *Collector) RecordTransaction(transactionType string, outcome string) {
	if c == nil {
		return
	}
	c.transactions.WithLabelValues(transactionType, outcome).Inc()
}

func (c *Collector) RecordCommission(accountType string, amount decimal.Decimal) {
	if c == nil || !amount.IsPositive() {
		return
	}
	c.commissionsCharged.WithLabelValues(accountType).Add(amount.InexactFloat64())
}

func (c *Collector) RecordCardCheck(outcome string) {
	if c == nil {
		return
	}
	c.cardChecks.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordHTTPRequest(path string, status int) {
	if c == nil {
		return
	}
	c.httpRequests.WithLabelValues(path, strconv.Itoa(status)).Inc()
}

func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
