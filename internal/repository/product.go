package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brunodmn/storefront-api/internal/domain/catalog"
)

const productColumns = `p.sku, p.name, p.description, p.photo, p.price, p.offer_percent,
	p.stock, p.sales_count, COALESCE(p.category_id, ''), COALESCE(c.name, '')`

const (
	listProductsSQL = `SELECT ` + productColumns + `
		FROM products p LEFT JOIN categories c ON c.id = p.category_id
		ORDER BY p.name LIMIT $1 OFFSET $2`

	getProductBySKUSQL = `SELECT ` + productColumns + `
		FROM products p LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.sku = $1`

	getProductsBySKUsSQL = `SELECT ` + productColumns + `
		FROM products p LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.sku = ANY($1)`

	searchProductsSQL = `SELECT ` + productColumns + `
		FROM products p LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.name ILIKE '%' || $1 || '%'
		ORDER BY p.name LIMIT $2 OFFSET $3`

	listByCategorySQL = `SELECT ` + productColumns + `
		FROM products p LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.category_id = $1
		ORDER BY p.name LIMIT $2 OFFSET $3`

	listOffersSQL = `SELECT ` + productColumns + `
		FROM products p LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.offer_percent > 0
		ORDER BY p.offer_percent DESC, p.name LIMIT $1 OFFSET $2`

	listFeaturedSQL = `SELECT ` + productColumns + `
		FROM products p LEFT JOIN categories c ON c.id = p.category_id
		ORDER BY p.offer_percent DESC, p.sales_count DESC, p.name LIMIT $1 OFFSET $2`

	adjustStockAndSalesSQL = `UPDATE products
		SET stock = stock + $2, sales_count = sales_count + $3, updated_at = now()
		WHERE sku = $1 AND stock + $2 >= 0`

	productExistsSQL = `SELECT EXISTS(SELECT 1 FROM products WHERE sku = $1)`

	upsertProductSQL = `INSERT INTO products (sku, name, description, photo, price, offer_percent, stock, sales_count, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''))
		ON CONFLICT (sku) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			photo = EXCLUDED.photo,
			price = EXCLUDED.price,
			offer_percent = EXCLUDED.offer_percent,
			stock = EXCLUDED.stock,
			category_id = EXCLUDED.category_id,
			updated_at = now()`
)

var _ catalog.Repository = (*ProductRepository)(nil)

// ProductRepository implements catalog.Repository backed by PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a ProductRepository that uses the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// List returns a page of the catalog ordered by name.
func (r *ProductRepository) List(ctx context.Context, page catalog.Page) ([]catalog.Product, error) {
	rows, err := r.pool.Query(ctx, listProductsSQL, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return pgx.CollectRows(rows, scanProduct)
}

// GetBySKU returns a single product by its SKU.
func (r *ProductRepository) GetBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	rows, err := r.pool.Query(ctx, getProductBySKUSQL, sku)
	if err != nil {
		return nil, fmt.Errorf("getting product %q: %w", sku, err)
	}

	p, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("getting product %q: %w", sku, err)
	}
	return &p, nil
}

// GetBySKUs returns products matching any of the given SKUs. Missing SKUs
// are absent from the result.
func (r *ProductRepository) GetBySKUs(ctx context.Context, skus []string) ([]catalog.Product, error) {
	rows, err := r.pool.Query(ctx, getProductsBySKUsSQL, skus)
	if err != nil {
		return nil, fmt.Errorf("getting products by skus: %w", err)
	}
	return pgx.CollectRows(rows, scanProduct)
}

// SearchByName returns products whose name contains the term, case-insensitive.
func (r *ProductRepository) SearchByName(ctx context.Context, name string, page catalog.Page) ([]catalog.Product, error) {
	rows, err := r.pool.Query(ctx, searchProductsSQL, name, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("searching products %q: %w", name, err)
	}
	return pgx.CollectRows(rows, scanProduct)
}

// ListByCategory returns a page of products within a category.
func (r *ProductRepository) ListByCategory(ctx context.Context, categoryID string, page catalog.Page) ([]catalog.Product, error) {
	rows, err := r.pool.Query(ctx, listByCategorySQL, categoryID, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("listing products for category %q: %w", categoryID, err)
	}
	return pgx.CollectRows(rows, scanProduct)
}

// ListOffers returns discounted products, deepest discount first.
func (r *ProductRepository) ListOffers(ctx context.Context, page catalog.Page) ([]catalog.Product, error) {
	rows, err := r.pool.Query(ctx, listOffersSQL, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("listing offers: %w", err)
	}
	return pgx.CollectRows(rows, scanProduct)
}

// ListFeatured returns the featured shelf: best offers first, then best sellers.
func (r *ProductRepository) ListFeatured(ctx context.Context, page catalog.Page) ([]catalog.Product, error) {
	rows, err := r.pool.Query(ctx, listFeaturedSQL, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("listing featured products: %w", err)
	}
	return pgx.CollectRows(rows, scanProduct)
}

// AdjustStockAndSales applies the deltas in one conditional UPDATE. The
// WHERE clause refuses a decrement below zero, so concurrent orders can
// never oversell; the losing writer gets catalog.ErrInsufficientStock.
func (r *ProductRepository) AdjustStockAndSales(ctx context.Context, sku string, stockDelta, salesDelta int32) error {
	tag, err := r.pool.Exec(ctx, adjustStockAndSalesSQL, sku, stockDelta, salesDelta)
	if err != nil {
		return fmt.Errorf("adjusting stock for %q: %w", sku, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// Zero rows means either the SKU vanished or the guard rejected the
	// decrement. Distinguish with an existence probe.
	var exists bool
	if err := r.pool.QueryRow(ctx, productExistsSQL, sku).Scan(&exists); err != nil {
		return fmt.Errorf("probing product %q: %w", sku, err)
	}
	if !exists {
		return catalog.ErrNotFound
	}
	return catalog.ErrInsufficientStock
}

// Upsert inserts or refreshes a product. Used by the seed loader; the sales
// counter is preserved on conflict.
func (r *ProductRepository) Upsert(ctx context.Context, p catalog.Product) error {
	_, err := r.pool.Exec(ctx, upsertProductSQL,
		p.SKU, p.Name, p.Description, p.Photo, p.Price, p.OfferPercent,
		p.Stock, p.SalesCount, p.CategoryID,
	)
	if err != nil {
		return fmt.Errorf("upserting product %q: %w", p.SKU, err)
	}
	return nil
}

func scanProduct(row pgx.CollectableRow) (catalog.Product, error) {
	var p catalog.Product
	err := row.Scan(
		&p.SKU, &p.Name, &p.Description, &p.Photo, &p.Price, &p.OfferPercent,
		&p.Stock, &p.SalesCount, &p.CategoryID, &p.CategoryName,
	)
	return p, err
}
