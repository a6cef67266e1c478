package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafaelleal24/aceitera/internal/core/domain"
	"github.com/rafaelleal24/aceitera/internal/core/port"
	"github.com/rafaelleal24/aceitera/internal/core/serviceerrors"
)

const productColumns = `id::text, name, description, barcode, sku, brand, supplier, invoice_number,
	cost_price, public_price, profit_per_unit, stock_quantity, created_at, updated_at`

type ProductRepository struct {
	baseRepository
}

func NewProductRepository(pool *pgxpool.Pool) port.ProductPort {
	return &ProductRepository{baseRepository{pool: pool}}
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		product              domain.Product
		id                   string
		cost, public, profit int64
	)
	err := row.Scan(
		&id, &product.Name, &product.Description, &product.Barcode, &product.SKU, &product.Brand,
		&product.Supplier, &product.InvoiceNumber, &cost, &public, &profit,
		&product.Stock, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	product.ID = domain.ID(id)
	product.CostPrice = domain.NewAmountFromCents(int(cost))
	product.PublicPrice = domain.NewAmountFromCents(int(public))
	product.ProfitPerUnit = domain.NewAmountFromCents(int(profit))
	return &product, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	id := uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO products (id, name, description, barcode, sku, brand, supplier, invoice_number,
			cost_price, public_price, profit_per_unit, stock_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		id.String(), product.Name, product.Description, product.Barcode, product.SKU, product.Brand,
		product.Supplier, product.InvoiceNumber, int64(product.CostPrice), int64(product.PublicPrice),
		int64(product.ProfitPerUnit), product.Stock, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return parseError(err)
	}

	product.ID = domain.ID(id.String())
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id domain.ID) (*domain.Product, error) {
	productID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	product, err := scanProduct(r.conn(ctx).QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, productID.String()))
	if err != nil {
		return nil, parseError(err)
	}
	return product, nil
}

func (r *ProductRepository) GetByIDs(ctx context.Context, ids []domain.ID) ([]*domain.Product, error) {
	productIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		parsed, err := parseID(id)
		if err != nil {
			continue
		}
		productIDs = append(productIDs, parsed.String())
	}
	if len(productIDs) == 0 {
		return []*domain.Product{}, nil
	}

	return r.query(ctx, `SELECT `+productColumns+` FROM products WHERE id = ANY($1::uuid[])`, productIDs)
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]*domain.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at, id`)
}

// DeductStock guards the decrement in the WHERE clause, so two concurrent
// sales can never both pass the check.
func (r *ProductRepository) DeductStock(ctx context.Context, id domain.ID, quantity int) (*domain.Product, error) {
	productID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	product, err := scanProduct(r.conn(ctx).QueryRow(ctx, `
		UPDATE products
		SET stock_quantity = stock_quantity - $2, updated_at = now()
		WHERE id = $1 AND stock_quantity >= $2
		RETURNING `+productColumns,
		productID.String(), quantity,
	))
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, parseError(err)
	}

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return nil, serviceerrors.NewInsufficientInventoryError(
		fmt.Sprintf("insufficient inventory for product %s: requested %d, available %d", id, quantity, current.Stock),
		map[string]any{
			"product_id": string(id),
			"requested":  quantity,
			"available":  current.Stock,
		},
	)
}

func (r *ProductRepository) Delete(ctx context.Context, id domain.ID) error {
	productID, err := parseID(id)
	if err != nil {
		return err
	}

	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM products WHERE id = $1`, productID.String())
	if err != nil {
		return parseError(err)
	}
	if tag.RowsAffected() == 0 {
		return serviceerrors.NewNotFoundError("entity not found")
	}
	return nil
}

func (r *ProductRepository) query(ctx context.Context, sql string, args ...any) ([]*domain.Product, error) {
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, parseError(err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, parseError(err)
	}
	return products, nil
}
