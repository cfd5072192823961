// Package creditcard calls the card service that decides whether any of a set of
// customers already holds an active credit card.
package creditcard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nttbank/msaccount/src/internal/domain"
	"github.com/nttbank/msaccount/src/internal/logger"
	"github.com/nttbank/msaccount/src/internal/metrics"
	"github.com/sony/gobreaker"
)

type Options struct {
	URL     string
	Timeout time.Duration
	// BreakerFailures consecutive remote failures open the breaker for BreakerCooldown.
	BreakerFailures uint32
	BreakerCooldown time.Duration
	HTTPClient      *http.Client
	Metrics         *metrics.Collector
}

type Client struct {
	url        string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	metrics    *metrics.Collector
}

type checkRequest struct {
	CustomerID []string `json:"customerId"`
}

type checkResponse struct {
	CreditCard *bool `json:"creditCard"`
}

func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	failures := opts.BreakerFailures
	if failures == 0 {
		failures = 5
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "credit-card-check",
		MaxRequests: 1,
		Timeout:     opts.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			// A rejected request is an answer from a healthy service.
			return err == nil || domain.KindOf(err) == domain.KindBusinessRule
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("credit card breaker state change", logger.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	})

	return &Client{
		url:        opts.URL,
		httpClient: httpClient,
		breaker:    breaker,
		metrics:    opts.Metrics,
	}
}

// HasCreditCard reports whether any of customerIDs holds a credit card. Errors are
// classified: unreachable or 5xx is ServiceUnavailable, 4xx is BusinessRule, an
// unreadable answer is Internal.
func (c *Client) HasCreditCard(ctx context.Context, customerIDs []string) (bool, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.check(ctx, customerIDs)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = domain.Unavailable("Card service not available", err)
		}
		c.metrics.RecordCardCheck(outcomeOf(err))
		return false, err
	}

	c.metrics.RecordCardCheck(metrics.OutcomeSuccess)
	return result.(bool), nil
}

func (c *Client) check(ctx context.Context, customerIDs []string) (bool, error) {
	if customerIDs == nil {
		customerIDs = []string{}
	}
	body, err := json.Marshal(checkRequest{CustomerID: customerIDs})
	if err != nil {
		return false, domain.Internal("Unable to encode card check request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return false, domain.Internal("Unable to build card check request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("credit card check transport failed", err, logger.Fields{"url": c.url})
		return false, domain.Unavailable("Card service unreachable", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		_, _ = io.Copy(io.Discard, resp.Body)
		return false, domain.Unavailable("Card service not available", fmt.Errorf("card service status %d", resp.StatusCode))
	case resp.StatusCode >= http.StatusBadRequest:
		_, _ = io.Copy(io.Discard, resp.Body)
		return false, domain.BusinessRule("Client error checking card")
	}

	var payload checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return false, domain.Internal("Invalid card service response", err)
	}
	if payload.CreditCard == nil {
		return false, domain.Internal("Invalid card service response", errors.New("creditCard field missing"))
	}

	return *payload.CreditCard, nil
}

func outcomeOf(err error) string {
	if domain.KindOf(err) == domain.KindBusinessRule {
		return metrics.OutcomeRejected
	}
	return metrics.OutcomeFailed
}
