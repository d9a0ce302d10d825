// Package catalog defines the product and category types plus the
// repository contracts for catalog reads and post-order stock adjustment.
package catalog

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when a requested product or category does not exist.
	ErrNotFound = errors.New("product not found")

	// ErrInsufficientStock is returned by AdjustStockAndSales when the
	// conditional decrement would drive stock negative.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Product is an authoritative catalog snapshot. Price and stock must be
// fetched fresh for every order; the pricing path never trusts client copies.
type Product struct {
	SKU          string
	Name         string
	Description  string
	Photo        string
	Price        decimal.Decimal
	OfferPercent decimal.Decimal
	Stock        int32
	SalesCount   int32
	CategoryID   string
	CategoryName string
}

// Category groups products for browsing.
type Category struct {
	ID   string
	Name string
}

// Page selects a window of a paginated listing. Number is 1-based.
type Page struct {
	Number int
	Size   int
}

// Offset returns the row offset for this page.
func (p Page) Offset() int {
	n := p.Number
	if n < 1 {
		n = 1
	}
	return (n - 1) * p.Limit()
}

// Limit returns the page size, defaulting to 10.
func (p Page) Limit() int {
	if p.Size < 1 {
		return 10
	}
	return p.Size
}

// Repository defines catalog reads and the stock/sales adjustment applied
// after an order is persisted.
type Repository interface {
	List(ctx context.Context, page Page) ([]Product, error)
	GetBySKU(ctx context.Context, sku string) (*Product, error)

	// GetBySKUs fetches all products matching the given SKUs in one query.
	// Missing SKUs are simply absent from the result; callers must detect
	// omissions by set difference.
	GetBySKUs(ctx context.Context, skus []string) ([]Product, error)

	SearchByName(ctx context.Context, name string, page Page) ([]Product, error)
	ListByCategory(ctx context.Context, categoryID string, page Page) ([]Product, error)

	// ListOffers returns products with a positive offer percentage, highest first.
	ListOffers(ctx context.Context, page Page) ([]Product, error)

	// ListFeatured returns products ordered by offer percentage, including
	// those without an active offer.
	ListFeatured(ctx context.Context, page Page) ([]Product, error)

	// AdjustStockAndSales applies stockDelta and salesDelta to a product.
	// The update is conditional: it fails with ErrInsufficientStock when the
	// resulting stock would be negative, and with ErrNotFound when the SKU
	// vanished between the pricing read and this write. It is not serialized
	// with the earlier read; concurrent orders against the same SKU race.
	AdjustStockAndSales(ctx context.Context, sku string, stockDelta, salesDelta int32) error
}

// CategoryRepository lists the browsing categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]Category, error)
}
