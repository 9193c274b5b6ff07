package usecase

import (
	"context"
	"log/slog"

	"inventory-service/app/domain"
)

type healthUsecase struct {
	healthRepo domain.HealthRepository
}

func NewHealthUsecase(healthRepo domain.HealthRepository) domain.HealthService {
	return &healthUsecase{healthRepo}
}

func (u *healthUsecase) Check(ctx context.Context) error {
	if err := u.healthRepo.Ping(ctx); err != nil {
		slog.ErrorContext(ctx, "[healthUsecase] Check", "ping", err)
		return err
	}
	return nil
}
