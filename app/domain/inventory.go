package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// InventoryAction is the closed set of quantity mutations carried by an
// inventory event. The wire values match the original API contract.
type InventoryAction string

const (
	ActionIncrement InventoryAction = "a"
	ActionDecrement InventoryAction = "r"
)

func (a InventoryAction) Valid() bool {
	switch a {
	case ActionIncrement, ActionDecrement:
		return true
	}
	return false
}

// InventoryEvent is the payload published to the inventory subject and
// consumed by the dispatcher. Delivery is at-least-once: a redelivered
// increment genuinely adds again, there is no idempotency key.
type InventoryEvent struct {
	Code           string          `json:"code"`
	Supplier       string          `json:"supplier"`
	ExpirationDate time.Time       `json:"expiration_date"`
	Action         InventoryAction `json:"action"`
}

func (e InventoryEvent) ProductKey() string {
	return DeriveProductKey(e.Code, e.Supplier, e.ExpirationDate)
}

// ParseInventoryEvent decodes a broker payload. An unknown action is a
// parse failure, not a silent no-op.
func ParseInventoryEvent(data []byte) (InventoryEvent, error) {
	var event InventoryEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return InventoryEvent{}, fmt.Errorf("unmarshal inventory event: %w", err)
	}
	if !event.Action.Valid() {
		return InventoryEvent{}, fmt.Errorf("%w: unknown inventory action %q", ErrInvalidRequest, event.Action)
	}
	return event, nil
}

type SendInventoryRequest struct {
	Code           string          `json:"code" validate:"required,max=50"`
	Supplier       string          `json:"supplier" validate:"required,max=100"`
	ExpirationDate time.Time       `json:"expiration_date" validate:"required"`
	Action         InventoryAction `json:"action" validate:"required,oneof=a r"`
}

type SendInventoryResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type InventoryPublisher interface {
	Send(ctx context.Context, event InventoryEvent) error
}

type InventoryService interface {
	Send(ctx context.Context, req SendInventoryRequest) (SendInventoryResponse, error)
}
