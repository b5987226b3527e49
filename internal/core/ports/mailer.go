package ports

import "context"

// MailMessage is a single outbound mail.
type MailMessage struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers a single message synchronously.
type Mailer interface {
	Send(ctx context.Context, msg MailMessage) error
}

// MailEnqueuer hands a message to the async delivery pipeline. Enqueue never
// blocks on delivery; failures are logged by the worker, not surfaced to the
// caller.
type MailEnqueuer interface {
	Enqueue(msg MailMessage)
}
