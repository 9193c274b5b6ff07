package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"inventory-service/app/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

const productColumns = `id, title, description, code, supplier, inventory_quantity,
	buy_price, sell_price, weight_in_kilograms, expiration_date, created_at, updated_at`

const uniqueViolation = "23505"

type productRepository struct {
	conn *sql.DB
}

func NewProductRepository(db *sql.DB) domain.ProductRepository {
	return &productRepository{db}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `INSERT INTO products (id, title, description, code, supplier, inventory_quantity,
		buy_price, sell_price, weight_in_kilograms, expiration_date, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
	RETURNING ` + productColumns

	row := r.conn.QueryRowContext(ctx, query,
		product.Key, product.Title, product.Description, product.Code, product.Supplier,
		product.InventoryQuantity, product.BuyPrice, product.SellPrice, product.WeightKg,
		product.ExpirationDate)

	created, err := scanProduct(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			slog.ErrorContext(ctx, "[productRepository] Create", "duplicateKey", product.Key)
			return nil, fmt.Errorf("%w: product %s", domain.ErrAlreadyExists, product.Key)
		}
		slog.ErrorContext(ctx, "[productRepository] Create", "queryRowContext", err)
		return nil, err
	}

	slog.InfoContext(ctx, "[productRepository] Create", "key", created.Key)
	return created, nil
}

func (r *productRepository) GetByKey(ctx context.Context, key string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.conn.QueryRowContext(ctx, query, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		slog.ErrorContext(ctx, "[productRepository] GetByKey", "queryRowContext", err)
		return nil, err
	}

	return product, nil
}

func (r *productRepository) Exists(ctx context.Context, key string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`

	var exists bool
	if err := r.conn.QueryRowContext(ctx, query, key).Scan(&exists); err != nil {
		slog.ErrorContext(ctx, "[productRepository] Exists", "queryRowContext", err)
		return false, err
	}

	return exists, nil
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `UPDATE products
	SET title = $1, description = $2, buy_price = $3, sell_price = $4,
		weight_in_kilograms = $5, updated_at = now()
	WHERE id = $6
	RETURNING ` + productColumns

	row := r.conn.QueryRowContext(ctx, query,
		product.Title, product.Description, product.BuyPrice, product.SellPrice,
		product.WeightKg, product.Key)

	updated, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		slog.ErrorContext(ctx, "[productRepository] Update", "queryRowContext", err)
		return nil, err
	}

	return updated, nil
}

func (r *productRepository) Remove(ctx context.Context, key string) (string, error) {
	query := `DELETE FROM products WHERE id = $1`

	res, err := r.conn.ExecContext(ctx, query, key)
	if err != nil {
		slog.ErrorContext(ctx, "[productRepository] Remove", "execContext", err)
		return "", err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		slog.ErrorContext(ctx, "[productRepository] Remove", "rowsAffected", err)
		return "", err
	}
	if rowsAffected == 0 {
		return "", domain.ErrNotFound
	}

	slog.InfoContext(ctx, "[productRepository] Remove", "key", key)
	return key, nil
}

// IncrementQuantity bumps the quantity in a single UPDATE so concurrent
// mutations on the same key cannot lose each other's writes.
func (r *productRepository) IncrementQuantity(ctx context.Context, key string) (*domain.Product, error) {
	query := `UPDATE products
	SET inventory_quantity = inventory_quantity + 1, updated_at = now()
	WHERE id = $1
	RETURNING ` + productColumns

	product, err := scanProduct(r.conn.QueryRowContext(ctx, query, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		slog.ErrorContext(ctx, "[productRepository] IncrementQuantity", "queryRowContext", err)
		return nil, err
	}

	return product, nil
}

// DecrementQuantity floors at zero: the guarded UPDATE only fires while
// quantity > 0, and a product already at 0 comes back unchanged. On the
// guard-fail path the aggregate is re-selected in a separate statement,
// so it may reflect concurrent mutations that landed after the no-op;
// only the floor-at-zero invariant is guaranteed.
func (r *productRepository) DecrementQuantity(ctx context.Context, key string) (*domain.Product, error) {
	query := `UPDATE products
	SET inventory_quantity = inventory_quantity - 1, updated_at = now()
	WHERE id = $1 AND inventory_quantity > 0
	RETURNING ` + productColumns

	product, err := scanProduct(r.conn.QueryRowContext(ctx, query, key))
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		slog.ErrorContext(ctx, "[productRepository] DecrementQuantity", "queryRowContext", err)
		return nil, err
	}

	// Guard failed: either the row is missing or quantity is already 0.
	return r.GetByKey(ctx, key)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var product domain.Product
	err := row.Scan(&product.Key, &product.Title, &product.Description, &product.Code,
		&product.Supplier, &product.InventoryQuantity, &product.BuyPrice, &product.SellPrice,
		&product.WeightKg, &product.ExpirationDate, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &product, nil
}
