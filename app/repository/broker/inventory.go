package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"inventory-service/app/domain"

	"github.com/nats-io/nats.go/jetstream"
)

type inventoryBroker struct {
	js      jetstream.JetStream
	subject string
}

func NewInventoryPublisher(stream jetstream.JetStream, subject string) domain.InventoryPublisher {
	return &inventoryBroker{
		js:      stream,
		subject: subject,
	}
}

// Send publishes the event and returns once the broker has accepted it.
// Consumer-side processing is not awaited; the pipeline past this point
// is fire-and-forget.
func (b *inventoryBroker) Send(ctx context.Context, event domain.InventoryEvent) error {
	msg, err := json.Marshal(event)
	if err != nil {
		slog.ErrorContext(ctx, "[inventoryBroker] Send", "json.Marshal", err)
		return err
	}

	if _, err = b.js.Publish(ctx, b.subject, msg); err != nil {
		slog.ErrorContext(ctx, "[inventoryBroker] Send", "Publish", err)
		return fmt.Errorf("%w: %v", domain.ErrPublish, err)
	}

	slog.InfoContext(ctx, "[inventoryBroker] Send", "subject", b.subject, "key", event.ProductKey())
	return nil
}
