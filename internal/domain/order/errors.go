package order

import (
	"fmt"

	"github.com/go-faster/errors"
)

// ErrEmptyCart is returned when an order carries no lines.
var ErrEmptyCart = errors.New("no products in order")

// ProductNotFoundError indicates a cart SKU absent from the catalog.
type ProductNotFoundError struct {
	SKU string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product with SKU %q does not exist", e.SKU)
}

// InsufficientStockError indicates a cart line exceeding available stock.
type InsufficientStockError struct {
	SKU string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("product with SKU %q is out of stock", e.SKU)
}

// FreightUnavailableError indicates a shipping region missing from the
// freight table. A table miss is a hard error, never free shipping.
type FreightUnavailableError struct {
	RegionCode string
}

func (e *FreightUnavailableError) Error() string {
	return fmt.Sprintf("no freight available for region code %q", e.RegionCode)
}

// StockAdjustmentError reports a partially completed stock adjustment after
// the order was already committed. The order remains persisted in status
// StatusPending; the SKUs listed in Failed were not adjusted.
type StockAdjustmentError struct {
	OrderID string
	Failed  []string
}

func (e *StockAdjustmentError) Error() string {
	return fmt.Sprintf("order %s persisted but stock adjustment failed for %d line(s)", e.OrderID, len(e.Failed))
}
