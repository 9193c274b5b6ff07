package domain

import (
	"context"
	"time"
)

// Product is identified by a key derived from its natural attributes
// (code, supplier, expiration date) rather than a surrogate id.
type Product struct {
	Key               string    `json:"key"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Code              string    `json:"code"`
	Supplier          string    `json:"supplier"`
	InventoryQuantity int64     `json:"inventory_quantity"`
	BuyPrice          float64   `json:"buy_price"`
	SellPrice         float64   `json:"sell_price"`
	WeightKg          float64   `json:"weight_in_kilograms"`
	ExpirationDate    time.Time `json:"expiration_date"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// DeriveProductKey builds the deterministic product identity:
// code ++ supplier ++ YYYYMMDD of the expiration date (UTC).
func DeriveProductKey(code, supplier string, expirationDate time.Time) string {
	return code + supplier + expirationDate.UTC().Format("20060102")
}

type ProductCreateRequest struct {
	Title          string    `json:"title" validate:"required,max=100"`
	Description    string    `json:"description" validate:"required,max=255"`
	Code           string    `json:"code" validate:"required,max=50"`
	Supplier       string    `json:"supplier" validate:"required,max=100"`
	BuyPrice       float64   `json:"buy_price" validate:"gte=0"`
	SellPrice      float64   `json:"sell_price" validate:"gte=0"`
	WeightKg       float64   `json:"weight_in_kilograms" validate:"gte=0"`
	ExpirationDate time.Time `json:"expiration_date" validate:"required"`
}

type ProductUpdateRequest struct {
	Title          string    `json:"title" validate:"required,max=100"`
	Description    string    `json:"description" validate:"required,max=255"`
	Code           string    `json:"code" validate:"required,max=50"`
	Supplier       string    `json:"supplier" validate:"required,max=100"`
	BuyPrice       float64   `json:"buy_price" validate:"gte=0"`
	SellPrice      float64   `json:"sell_price" validate:"gte=0"`
	WeightKg       float64   `json:"weight_in_kilograms" validate:"gte=0"`
	ExpirationDate time.Time `json:"expiration_date" validate:"required"`
}

type ProductRepository interface {
	Create(ctx context.Context, product *Product) (*Product, error)
	GetByKey(ctx context.Context, key string) (*Product, error)
	Exists(ctx context.Context, key string) (bool, error)
	Update(ctx context.Context, product *Product) (*Product, error)
	Remove(ctx context.Context, key string) (string, error)

	// IncrementQuantity atomically adds 1 to the product's inventory
	// quantity and returns the updated aggregate.
	IncrementQuantity(ctx context.Context, key string) (*Product, error)
	// DecrementQuantity atomically subtracts 1, flooring at zero: at
	// quantity 0 the unchanged aggregate is returned, not an error.
	DecrementQuantity(ctx context.Context, key string) (*Product, error)
}

type ProductService interface {
	Create(ctx context.Context, req ProductCreateRequest) (*Product, error)
	Get(ctx context.Context, code, supplier string, expirationDate time.Time) (*Product, error)
	Update(ctx context.Context, req ProductUpdateRequest) (*Product, error)
	Delete(ctx context.Context, code, supplier string, expirationDate time.Time) (string, error)
}
