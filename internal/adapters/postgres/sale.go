package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rafaelleal24/aceitera/internal/core/domain"
	"github.com/rafaelleal24/aceitera/internal/core/port"
	"github.com/rafaelleal24/aceitera/internal/core/serviceerrors"
)

const saleColumns = `id::text, product_id::text, quantity_sold, unit_price, total_amount, total_profit, created_at`

type SaleRepository struct {
	baseRepository
}

func NewSaleRepository(pool *pgxpool.Pool) port.SalePort {
	return &SaleRepository{baseRepository{pool: pool}}
}

func scanSale(row pgx.Row) (*domain.Sale, error) {
	var (
		sale                     domain.Sale
		id, productID            string
		unitPrice, total, profit *int64
	)
	if err := row.Scan(&id, &productID, &sale.QuantitySold, &unitPrice, &total, &profit, &sale.CreatedAt); err != nil {
		return nil, err
	}
	sale.ID = domain.ID(id)
	sale.ProductID = domain.ID(productID)
	sale.UnitPrice = toAmount(unitPrice)
	sale.TotalAmount = toAmount(total)
	sale.TotalProfit = toAmount(profit)
	return &sale, nil
}

func toAmount(cents *int64) *domain.Amount {
	if cents == nil {
		return nil
	}
	return domain.NewAmountFromCents(int(*cents)).Ptr()
}

func fromAmount(amount *domain.Amount) *int64 {
	if amount == nil {
		return nil
	}
	cents := int64(*amount)
	return &cents
}

func (r *SaleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	if sale.ID != "" {
		return errors.New("cannot create sale with existing ID")
	}
	productID, err := parseID(sale.ProductID)
	if err != nil {
		return err
	}
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now().UTC()
	}

	id := uuid.New()
	_, err = r.conn(ctx).Exec(ctx, `
		INSERT INTO sales (id, product_id, quantity_sold, unit_price, total_amount, total_profit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id.String(), productID.String(), sale.QuantitySold,
		fromAmount(sale.UnitPrice), fromAmount(sale.TotalAmount), fromAmount(sale.TotalProfit), sale.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return serviceerrors.NewNotFoundError("entity not found")
		}
		return parseError(err)
	}

	sale.ID = domain.ID(id.String())
	return nil
}

func (r *SaleRepository) GetByID(ctx context.Context, id domain.ID) (*domain.Sale, error) {
	saleID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	sale, err := scanSale(r.conn(ctx).QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, saleID.String()))
	if err != nil {
		return nil, parseError(err)
	}
	return sale, nil
}

func (r *SaleRepository) GetAll(ctx context.Context) ([]*domain.Sale, error) {
	return r.query(ctx, `SELECT `+saleColumns+` FROM sales ORDER BY created_at, id`)
}

func (r *SaleRepository) GetByProductID(ctx context.Context, productID domain.ID) ([]*domain.Sale, error) {
	parsed, err := parseID(productID)
	if err != nil {
		return nil, err
	}
	return r.query(ctx, `SELECT `+saleColumns+` FROM sales WHERE product_id = $1 ORDER BY created_at, id`, parsed.String())
}

func (r *SaleRepository) CountByProductID(ctx context.Context, productID domain.ID) (int64, error) {
	parsed, err := parseID(productID)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.conn(ctx).QueryRow(ctx, `SELECT count(*) FROM sales WHERE product_id = $1`, parsed.String()).Scan(&count); err != nil {
		return 0, parseError(err)
	}
	return count, nil
}

func (r *SaleRepository) DeleteByProductID(ctx context.Context, productID domain.ID) (int64, error) {
	parsed, err := parseID(productID)
	if err != nil {
		return 0, err
	}

	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM sales WHERE product_id = $1`, parsed.String())
	if err != nil {
		return 0, parseError(err)
	}
	return tag.RowsAffected(), nil
}

func (r *SaleRepository) query(ctx context.Context, sql string, args ...any) ([]*domain.Sale, error) {
	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, parseError(err)
	}
	defer rows.Close()

	sales := make([]*domain.Sale, 0)
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, parseError(err)
	}
	return sales, nil
}
