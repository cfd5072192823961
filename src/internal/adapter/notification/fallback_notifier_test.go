package notification

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nttbank/msaccount/src/internal/config"
	"github.com/nttbank/msaccount/src/internal/domain"
	"github.com/wneessen/go-mail"
)

type mailerStub struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (m *mailerStub) Send(msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.err
}

func TestNotifyFallbackSendsAlert(t *testing.T) {
	mailer := &mailerStub{}
	n := NewFallbackNotifier(mailer, "msaccount@tubanco.com", "soporte@tubanco.com")
	n.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }

	n.NotifyFallback("AccountService", domain.Unavailable("Card service not available", errors.New("status 503")))
	n.Wait()

	if len(mailer.sent) != 1 {
		t.Fatalf("expected one alert, got %d", len(mailer.sent))
	}
	msg := mailer.sent[0]
	if msg.To != "soporte@tubanco.com" || msg.Subject != "Fallback activado desde AccountService" {
		t.Fatalf("unexpected message header %+v", msg)
	}
	for _, want := range []string{"SERVICE_UNAVAILABLE", "Card service not available", "2026-03-01T10:00:00Z"} {
		if !strings.Contains(msg.Body, want) {
			t.Fatalf("expected body to contain %q, got %q", want, msg.Body)
		}
	}
}

func TestNotifyFallbackSwallowsMailerErrors(t *testing.T) {
	mailer := &mailerStub{err: errors.New("smtp down")}
	n := NewFallbackNotifier(mailer, "a@b", "c@d")

	n.NotifyFallback("AccountService", errors.New("boom"))
	n.Wait()

	if len(mailer.sent) != 1 {
		t.Fatalf("expected send to be attempted once, got %d", len(mailer.sent))
	}
}

func TestBuildMessageSetsHeaders(t *testing.T) {
	out, err := buildMessage(Message{
		From:    "msaccount@tubanco.com",
		To:      "soporte@tubanco.com",
		Subject: "Fallback activado desde AccountService",
		Body:    "Origen: AccountService",
	})
	if err != nil {
		t.Fatalf("expected message to build, got %v", err)
	}

	rcpts, err := out.GetRecipients()
	if err != nil || len(rcpts) != 1 || rcpts[0] != "soporte@tubanco.com" {
		t.Fatalf("expected single recipient, got %v (%v)", rcpts, err)
	}
	if got := out.GetGenHeader(mail.HeaderSubject); len(got) != 1 || got[0] != "Fallback activado desde AccountService" {
		t.Fatalf("expected subject header, got %v", got)
	}
}

func TestBuildMessageRejectsInvalidAddress(t *testing.T) {
	if _, err := buildMessage(Message{From: "not an address", To: "soporte@tubanco.com"}); err == nil {
		t.Fatal("expected invalid sender to be rejected")
	}
}

func TestNewSMTPMailerRequiresHost(t *testing.T) {
	if _, err := NewSMTPMailer(config.SMTPConfig{Port: 25}); err == nil {
		t.Fatal("expected empty host to be rejected")
	}
	if _, err := NewSMTPMailer(config.SMTPConfig{Host: "smtp.tubanco.com", Port: 587, Username: "alerts", Password: "secret"}); err != nil {
		t.Fatalf("expected mailer to be created, got %v", err)
	}
}
