package usecase

import (
	"context"
	"log/slog"

	"inventory-service/app/domain"
)

type inventoryUsecase struct {
	productRepo domain.ProductRepository
	publisher   domain.InventoryPublisher
}

func NewInventoryUsecase(productRepo domain.ProductRepository, publisher domain.InventoryPublisher) domain.InventoryService {
	return &inventoryUsecase{productRepo, publisher}
}

// Send verifies the product exists, then publishes the change event.
// Success means the broker accepted the event, not that it was applied.
func (u *inventoryUsecase) Send(ctx context.Context, req domain.SendInventoryRequest) (domain.SendInventoryResponse, error) {
	key := domain.DeriveProductKey(req.Code, req.Supplier, req.ExpirationDate)

	exists, err := u.productRepo.Exists(ctx, key)
	if err != nil {
		slog.ErrorContext(ctx, "[inventoryUsecase] Send", "exists", err)
		return domain.SendInventoryResponse{}, err
	}
	if !exists {
		slog.InfoContext(ctx, "[inventoryUsecase] Send", "productNotExists", key)
		return domain.SendInventoryResponse{
			Success: false,
			Message: "product not exists",
		}, nil
	}

	event := domain.InventoryEvent{
		Code:           req.Code,
		Supplier:       req.Supplier,
		ExpirationDate: req.ExpirationDate,
		Action:         req.Action,
	}
	if err := u.publisher.Send(ctx, event); err != nil {
		slog.ErrorContext(ctx, "[inventoryUsecase] Send", "publish", err)
		return domain.SendInventoryResponse{}, err
	}

	return domain.SendInventoryResponse{
		Success: true,
		Message: "sent event",
	}, nil
}
