package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/fitstore/storefront/internal/core/domain"
	"github.com/fitstore/storefront/internal/core/ports"
)

// SMTPMailer delivers mail over plain SMTP. It is built for a local relay
// (mailhog or similar in development) and does not authenticate.
type SMTPMailer struct {
	addr string
	from string
}

func NewSMTPMailer(host string, port int, from string) *SMTPMailer {
	return &SMTPMailer{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
	}
}

// Send delivers msg, honouring ctx cancellation before the dial.
func (m *SMTPMailer) Send(ctx context.Context, msg ports.MailMessage) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)

	if err := smtp.SendMail(m.addr, nil, m.from, []string{msg.To}, []byte(b.String())); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMailDelivery, err)
	}
	return nil
}
