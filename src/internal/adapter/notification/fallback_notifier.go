// Package notification sends the operational alert raised when account creation
// falls back after an unexpected failure.
package notification

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nttbank/msaccount/src/internal/config"
	"github.com/nttbank/msaccount/src/internal/domain"
	"github.com/nttbank/msaccount/src/internal/logger"
	"github.com/wneessen/go-mail"
)

type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(msg Message) error
}

const smtpSendTimeout = 15 * time.Second

// SMTPMailer delivers alerts through go-mail, upgrading to TLS when the server
// offers it.
type SMTPMailer struct {
	client *mail.Client
}

func NewSMTPMailer(cfg config.SMTPConfig) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(smtpSendTimeout),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return &SMTPMailer{client: client}, nil
}

func (m *SMTPMailer) Send(msg Message) error {
	out, err := buildMessage(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), smtpSendTimeout)
	defer cancel()
	if err := m.client.DialAndSendWithContext(ctx, out); err != nil {
		return fmt.Errorf("send fallback mail: %w", err)
	}
	return nil
}

func buildMessage(msg Message) (*mail.Msg, error) {
	out := mail.NewMsg()
	if err := out.From(msg.From); err != nil {
		return nil, fmt.Errorf("fallback mail sender %q: %w", msg.From, err)
	}
	if err := out.To(msg.To); err != nil {
		return nil, fmt.Errorf("fallback mail recipient %q: %w", msg.To, err)
	}
	out.Subject(msg.Subject)
	out.SetDate()
	out.SetBodyString(mail.TypeTextPlain, msg.Body)
	return out, nil
}

// LogMailer only records the alert. Used when no SMTP host is configured.
type LogMailer struct{}

func (LogMailer) Send(msg Message) error {
	logger.Warn("fallback alert (mail disabled)", logger.Fields{
		"to":      msg.To,
		"subject": msg.Subject,
		"body":    msg.Body,
	})
	return nil
}

// FallbackNotifier mails alerts in the background. Delivery failures are logged and
// never reach the caller.
type FallbackNotifier struct {
	mailer Mailer
	from   string
	to     string
	now    func() time.Time
	wg     sync.WaitGroup
}

func NewFallbackNotifier(mailer Mailer, from string, to string) *FallbackNotifier {
	return &FallbackNotifier{
		mailer: mailer,
		from:   from,
		to:     to,
		now:    time.Now,
	}
}

func (n *FallbackNotifier) NotifyFallback(source string, cause error) {
	msg := Message{
		From:    n.from,
		To:      n.to,
		Subject: "Fallback activado desde " + source,
		Body:    n.body(source, cause),
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := n.mailer.Send(msg); err != nil {
			logger.Error("fallback notifier send failed", err, logger.Fields{"source": source})
			return
		}
		logger.Info("fallback notifier alert sent", logger.Fields{"source": source, "to": n.to})
	}()
}

// Wait blocks until every alert queued so far has been handled.
func (n *FallbackNotifier) Wait() {
	n.wg.Wait()
}

func (n *FallbackNotifier) body(source string, cause error) string {
	var b strings.Builder
	b.WriteString("Fallback activado en el microservicio de cuentas\n\n")
	fmt.Fprintf(&b, "Metodo afectado: CreateAccount\n")
	fmt.Fprintf(&b, "Origen: %s\n", source)
	fmt.Fprintf(&b, "Tipo: %s\n", domain.KindOf(cause))
	if cause != nil {
		fmt.Fprintf(&b, "Mensaje: %s\n", cause.Error())
	}
	fmt.Fprintf(&b, "Fecha: %s\n", n.now().UTC().Format(time.RFC3339))
	b.WriteString("Este mensaje fue generado automaticamente.\n")
	return b.String()
}
