// internal/pkg/email/notifier.go
package email

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/store"
)

// sendTimeout bounds one background send
const sendTimeout = 30 * time.Second

// Sender delivers order emails
type Sender interface {
	SendOrderConfirmationEmail(ctx context.Context, order store.Order) error
	SendOrderStatusUpdateEmail(ctx context.Context, order store.Order) error
}

// Notifier emails customers about their orders. It implements store.Listener
// and sends in the background so checkout never waits on the mail server.
type Notifier struct {
	sender Sender
	log    logrus.FieldLogger
	wg     sync.WaitGroup
}

// NewNotifier creates a notifier backed by sender
func NewNotifier(sender Sender, log logrus.FieldLogger) *Notifier {
	return &Notifier{sender: sender, log: log}
}

// OnEvent sends the email matching the event type
func (n *Notifier) OnEvent(ctx context.Context, event store.Event) {
	var send func(context.Context, store.Order) error
	switch event.Type {
	case store.EventOrderPlaced:
		send = n.sender.SendOrderConfirmationEmail
	case store.EventOrderStatusChanged:
		send = n.sender.SendOrderStatusUpdateEmail
	default:
		return
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sendTimeout)
		defer cancel()

		if err := send(sendCtx, event.Order); err != nil {
			n.log.WithError(err).WithFields(logrus.Fields{
				"order_id":   event.OrderID,
				"event_type": event.Type,
			}).Warn("Failed to send order email")
		}
	}()
}

// Wait blocks until all in-flight emails have been handled
func (n *Notifier) Wait() {
	n.wg.Wait()
}
