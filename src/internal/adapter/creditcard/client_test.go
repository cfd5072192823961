package creditcard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nttbank/msaccount/src/internal/domain"
)

func newTestClient(url string) *Client {
	return NewClient(Options{
		URL:             url,
		Timeout:         time.Second,
		BreakerFailures: 2,
		BreakerCooldown: time.Minute,
	})
}

func TestHasCreditCardSendsCustomerIDs(t *testing.T) {
	var received checkRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		_ = json.NewDecoder(r.Body).Decode(&received)
		_, _ = w.Write([]byte(`{"creditCard": true}`))
	}))
	defer server.Close()

	ok, err := newTestClient(server.URL).HasCreditCard(context.Background(), []string{"c-1", "c-2"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !ok {
		t.Fatal("expected card to be found")
	}
	if len(received.CustomerID) != 2 || received.CustomerID[0] != "c-1" {
		t.Fatalf("unexpected request payload %v", received.CustomerID)
	}
}

func TestHasCreditCardFalse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"creditCard": false}`))
	}))
	defer server.Close()

	ok, err := newTestClient(server.URL).HasCreditCard(context.Background(), nil)
	if err != nil || ok {
		t.Fatalf("expected false without error, got %v, %v", ok, err)
	}
}

func TestHasCreditCardErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   domain.ErrorKind
	}{
		{name: "server error", status: http.StatusServiceUnavailable, body: `{}`, want: domain.KindServiceUnavailable},
		{name: "client error", status: http.StatusBadRequest, body: `{}`, want: domain.KindBusinessRule},
		{name: "missing field", status: http.StatusOK, body: `{"other": true}`, want: domain.KindInternal},
		{name: "malformed body", status: http.StatusOK, body: `not-json`, want: domain.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			ok, err := newTestClient(server.URL).HasCreditCard(context.Background(), []string{"c-1"})
			if ok {
				t.Fatal("expected no card on error")
			}
			if got := domain.KindOf(err); got != tt.want {
				t.Fatalf("expected kind %s, got %s (%v)", tt.want, got, err)
			}
		})
	}
}

func TestHasCreditCardUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestClient(url).HasCreditCard(context.Background(), []string{"c-1"})
	if domain.KindOf(err) != domain.KindServiceUnavailable {
		t.Fatalf("expected service unavailable, got %v", err)
	}
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	for i := 0; i < 3; i++ {
		_, err := client.HasCreditCard(context.Background(), []string{"c-1"})
		if domain.KindOf(err) != domain.KindServiceUnavailable {
			t.Fatalf("call %d: expected service unavailable, got %v", i, err)
		}
	}

	if got := calls.Load(); got != 2 {
		t.Fatalf("expected breaker to stop remote calls after 2 failures, got %d calls", got)
	}
}

func TestBreakerIgnoresClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	for i := 0; i < 4; i++ {
		_, _ = client.HasCreditCard(context.Background(), []string{"c-1"})
	}

	if got := calls.Load(); got != 4 {
		t.Fatalf("expected every call to reach the service, got %d", got)
	}
}
