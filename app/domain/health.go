package domain

import "context"

type HealthRepository interface {
	Ping(ctx context.Context) error
}

type HealthService interface {
	Check(ctx context.Context) error
}
