package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/veloraid/velora/internal/domain"
)

// ProductRepository implements domain.ProductRepository using SQLite.
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new SQLite-backed ProductRepository.
func NewProductRepository(db *DB) *ProductRepository {
	return &ProductRepository{db: db.SqlDB}
}

// List returns products ordered by creation time descending, each with its
// denomination count. An empty typ matches all types; an empty status
// matches all statuses.
func (r *ProductRepository) List(ctx context.Context, typ domain.ProductType, status domain.ProductStatus) ([]domain.Product, error) {
	query := `SELECT p.id, p.name, p.slug, p.type, p.status, p.thumbnail, p.created_at, p.updated_at,
	                 (SELECT COUNT(*) FROM denominations d WHERE d.product_id = p.id) AS denomination_count
	          FROM products p WHERE 1=1`
	args := []any{}
	if typ != "" {
		query += " AND p.type = ?"
		args = append(args, string(typ))
	}
	if status != "" {
		query += " AND p.status = ?"
		args = append(args, string(status))
	}
	query += " ORDER BY p.created_at DESC, p.id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		var ptyp, pstatus string
		if err := rows.Scan(&p.ID, &p.Name, &p.Slug, &ptyp, &pstatus, &p.Thumbnail,
			&p.CreatedAt, &p.UpdatedAt, &p.DenominationCount); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.Type = domain.ProductType(ptyp)
		p.Status = domain.ProductStatus(pstatus)
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	p := &domain.Product{}
	var typ, status string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, slug, type, status, thumbnail, created_at, updated_at
		 FROM products WHERE slug = ?`, slug,
	).Scan(&p.ID, &p.Name, &p.Slug, &typ, &status, &p.Thumbnail, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query product by slug: %w", err)
	}
	p.Type = domain.ProductType(typ)
	p.Status = domain.ProductStatus(status)
	return p, nil
}

// DenominationsByProduct returns denominations ordered popular-first, then
// by sell price ascending.
func (r *ProductRepository) DenominationsByProduct(ctx context.Context, productID int64) ([]domain.Denomination, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, product_id, name, buy_price, sell_price, is_popular, created_at
		 FROM denominations WHERE product_id = ?
		 ORDER BY is_popular DESC, sell_price ASC`, productID,
	)
	if err != nil {
		return nil, fmt.Errorf("query denominations: %w", err)
	}
	defer rows.Close()

	var denoms []domain.Denomination
	for rows.Next() {
		var d domain.Denomination
		if err := rows.Scan(&d.ID, &d.ProductID, &d.Name, &d.BuyPrice, &d.SellPrice, &d.IsPopular, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan denomination: %w", err)
		}
		denoms = append(denoms, d)
	}
	return denoms, rows.Err()
}

func (r *ProductRepository) CreateProduct(ctx context.Context, p *domain.Product) error {
	if p.Status == "" {
		p.Status = domain.ProductStatusActive
	}
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO products (name, slug, type, status, thumbnail, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Slug, string(p.Type), string(p.Status), p.Thumbnail, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

func (r *ProductRepository) CreateDenomination(ctx context.Context, d *domain.Denomination) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO denominations (product_id, name, buy_price, sell_price, is_popular, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		d.ProductID, d.Name, d.BuyPrice, d.SellPrice, d.IsPopular, now,
	)
	if err != nil {
		return fmt.Errorf("insert denomination: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	d.ID = id
	d.CreatedAt = now
	return nil
}

func (r *ProductRepository) CountProducts(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}
