package usecase

import (
	"context"
	"log/slog"
	"time"

	"inventory-service/app/domain"
)

type productUsecase struct {
	productRepo domain.ProductRepository
}

func NewProductUsecase(productRepo domain.ProductRepository) domain.ProductService {
	return &productUsecase{productRepo}
}

func (u *productUsecase) Create(ctx context.Context, req domain.ProductCreateRequest) (*domain.Product, error) {
	product := &domain.Product{
		Key:            domain.DeriveProductKey(req.Code, req.Supplier, req.ExpirationDate),
		Title:          req.Title,
		Description:    req.Description,
		Code:           req.Code,
		Supplier:       req.Supplier,
		BuyPrice:       req.BuyPrice,
		SellPrice:      req.SellPrice,
		WeightKg:       req.WeightKg,
		ExpirationDate: req.ExpirationDate,
	}

	created, err := u.productRepo.Create(ctx, product)
	if err != nil {
		slog.ErrorContext(ctx, "[productUsecase] Create", "createProduct", err)
		return nil, err
	}

	slog.InfoContext(ctx, "[productUsecase] Create", "key", created.Key)
	return created, nil
}

func (u *productUsecase) Get(ctx context.Context, code, supplier string, expirationDate time.Time) (*domain.Product, error) {
	key := domain.DeriveProductKey(code, supplier, expirationDate)

	product, err := u.productRepo.GetByKey(ctx, key)
	if err != nil {
		slog.ErrorContext(ctx, "[productUsecase] Get", "getByKey", err)
		return nil, err
	}

	return product, nil
}

func (u *productUsecase) Update(ctx context.Context, req domain.ProductUpdateRequest) (*domain.Product, error) {
	product := &domain.Product{
		Key:            domain.DeriveProductKey(req.Code, req.Supplier, req.ExpirationDate),
		Title:          req.Title,
		Description:    req.Description,
		Code:           req.Code,
		Supplier:       req.Supplier,
		BuyPrice:       req.BuyPrice,
		SellPrice:      req.SellPrice,
		WeightKg:       req.WeightKg,
		ExpirationDate: req.ExpirationDate,
	}

	updated, err := u.productRepo.Update(ctx, product)
	if err != nil {
		slog.ErrorContext(ctx, "[productUsecase] Update", "updateProduct", err)
		return nil, err
	}

	return updated, nil
}

func (u *productUsecase) Delete(ctx context.Context, code, supplier string, expirationDate time.Time) (string, error) {
	key := domain.DeriveProductKey(code, supplier, expirationDate)

	removed, err := u.productRepo.Remove(ctx, key)
	if err != nil {
		slog.ErrorContext(ctx, "[productUsecase] Delete", "removeProduct", err)
		return "", err
	}

	slog.InfoContext(ctx, "[productUsecase] Delete", "key", removed)
	return removed, nil
}
