package core

import (
	"context"
	"net/mail"
)

type (
	// Message is a rendered notification, ready for delivery.
	Message struct {
		To      []mail.Address
		Subject string
		Body    string // text/plain
	}

	// Transport is any service that can deliver a Message to its recipients.
	// Implementations return the delivery failure instead of logging it so
	// callers can record the outcome.
	Transport interface {
		Send(ctx context.Context, msg *Message) error
	}
)

func (m *Message) HasRecipients() bool { return len(m.To) > 0 }
func (m *Message) HasContent() bool    { return m.Body != "" }
