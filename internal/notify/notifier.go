package notify

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Notifier renders and sends customer messages. Delivery is best effort: failures are logged
// and never returned to the caller, because the booking they describe is already committed.
type Notifier struct {
	sender  Sender
	log     *zap.Logger
	timeout time.Duration
	// fallbackPhone is quoted when the message carries no business phone of its own.
	fallbackPhone string
}

func NewNotifier(sender Sender, log *zap.Logger) *Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	if sender == nil {
		sender = NewLogSender(log)
	}
	return &Notifier{sender: sender, log: log, timeout: 10 * time.Second}
}

// WithBusinessPhone sets the phone number quoted in messages when the shop settings have none.
func (n *Notifier) WithBusinessPhone(phone string) *Notifier {
	n.fallbackPhone = phone
	return n
}

// Notify sends m to the customer's phone. It returns whether the message was delivered.
// A nil Notifier does nothing.
func (n *Notifier) Notify(ctx context.Context, m Message) bool {
	if n == nil || m.CustomerPhone == "" {
		return false
	}

	fields := []zap.Field{
		zap.String("kind", string(m.Kind)),
		zap.String("provider", n.sender.ProviderID()),
	}

	if m.BusinessPhone == "" {
		m.BusinessPhone = n.fallbackPhone
	}

	body, err := m.Body()
	if err != nil {
		n.log.Error("render notification failed", append(fields, zap.Error(err))...)
		return false
	}

	// The request that triggered the message may already be finished.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()

	if err := n.sender.Send(ctx, FormatPhone(m.CustomerPhone), body); err != nil {
		n.log.Warn("send notification failed", append(fields, zap.Error(err))...)
		return false
	}
	n.log.Debug("notification sent", fields...)
	return true
}
