package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"inventory-service/app/domain"
)

// InventoryProcessor applies consumed inventory events to the store.
// It satisfies the dispatcher's Processor contract.
type InventoryProcessor struct {
	productRepo domain.ProductRepository
}

func NewInventoryProcessor(productRepo domain.ProductRepository) *InventoryProcessor {
	return &InventoryProcessor{productRepo}
}

func (p *InventoryProcessor) Name() string {
	return "inventory-processor"
}

func (p *InventoryProcessor) Process(ctx context.Context, event any) error {
	inventoryEvent, ok := event.(domain.InventoryEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	key := inventoryEvent.ProductKey()

	var err error
	switch inventoryEvent.Action {
	case domain.ActionIncrement:
		_, err = p.productRepo.IncrementQuantity(ctx, key)
	case domain.ActionDecrement:
		_, err = p.productRepo.DecrementQuantity(ctx, key)
	default:
		return fmt.Errorf("%w: unknown inventory action %q", domain.ErrInvalidRequest, inventoryEvent.Action)
	}

	if errors.Is(err, domain.ErrNotFound) {
		// Nothing past the publisher reports back to the caller, so a
		// missing product drops the event. Logged as a named outcome so
		// operators can see it happening.
		slog.WarnContext(ctx, "[InventoryProcessor] Process", "productMissingEventDropped", key)
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "[InventoryProcessor] Process", "action:"+string(inventoryEvent.Action), err)
		return err
	}

	slog.InfoContext(ctx, "[InventoryProcessor] Process", "key", key, "action", inventoryEvent.Action)
	return nil
}
