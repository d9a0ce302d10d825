package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/brunodmn/storefront-api/internal/domain/catalog"
	"github.com/brunodmn/storefront-api/internal/domain/freight"
)

// Service orchestrates order placement: validation against live inventory,
// pricing, transactional persistence, and post-commit stock adjustment.
type Service struct {
	products catalog.Repository
	orders   Repository
	freight  freight.Table
	now      func() time.Time

	placedOrders     metric.Int64Counter
	stockAdjustFails metric.Int64Counter
}

// NewService builds an order Service. The freight table is fixed at
// construction; rate changes require a restart.
func NewService(products catalog.Repository, orders Repository, table freight.Table, meterProvider metric.MeterProvider) (*Service, error) {
	meter := meterProvider.Meter("storefront.order")

	placed, err := meter.Int64Counter("orders.placed",
		metric.WithDescription("Orders accepted and persisted"))
	if err != nil {
		return nil, errors.Wrap(err, "orders.placed counter")
	}
	adjustFails, err := meter.Int64Counter("orders.stock_adjust_failures",
		metric.WithDescription("Order lines whose post-commit stock adjustment failed"))
	if err != nil {
		return nil, errors.Wrap(err, "orders.stock_adjust_failures counter")
	}

	return &Service{
		products:         products,
		orders:           orders,
		freight:          table,
		now:              time.Now,
		placedOrders:     placed,
		stockAdjustFails: adjustFails,
	}, nil
}

// PlaceOrder runs the full placement pipeline. On success the returned order
// carries database-generated identifiers and is already committed.
//
// Persistence of the order graph is atomic, but the subsequent stock
// adjustment is applied per line outside that transaction. If any line
// adjustment fails the committed order is NOT rolled back: the order stays
// in StatusPending and a *StockAdjustmentError naming the unadjusted SKUs
// is returned alongside it.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	if len(req.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	products, err := s.fetchProducts(ctx, req.Lines)
	if err != nil {
		return nil, errors.Wrap(err, "fetch products")
	}

	ord, err := price(req, products, s.freight, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.orders.Create(ctx, ord); err != nil {
		return nil, errors.Wrap(err, "persist order")
	}
	s.placedOrders.Add(ctx, 1)

	if err := s.adjustStock(ctx, ord); err != nil {
		return ord, err
	}
	return ord, nil
}

// fetchProducts loads fresh catalog snapshots for the distinct cart SKUs,
// keyed by SKU. Duplicate cart lines resolve against the same snapshot.
func (s *Service) fetchProducts(ctx context.Context, lines []CartLine) (map[string]catalog.Product, error) {
	skus := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.SKU]; ok {
			continue
		}
		seen[line.SKU] = struct{}{}
		skus = append(skus, line.SKU)
	}

	products, err := s.products.GetBySKUs(ctx, skus)
	if err != nil {
		return nil, err
	}

	bySKU := make(map[string]catalog.Product, len(products))
	for _, p := range products {
		bySKU[p.SKU] = p
	}
	return bySKU, nil
}

// adjustStock decrements stock and bumps the sales counter for every line of
// a committed order. Each line is adjusted independently; a failure is
// recorded and the remaining lines still proceed.
func (s *Service) adjustStock(ctx context.Context, ord *Order) error {
	lg := zctx.From(ctx)

	var failed []string
	for _, line := range ord.Lines {
		err := s.products.AdjustStockAndSales(ctx, line.SKU, -line.Quantity, line.Quantity)
		if err != nil {
			failed = append(failed, line.SKU)
			lg.Error("stock adjustment failed after order commit",
				zap.String("order_id", ord.ID),
				zap.String("sku", line.SKU),
				zap.Int32("quantity", line.Quantity),
				zap.Error(err),
			)
		}
	}
	if len(failed) > 0 {
		s.stockAdjustFails.Add(ctx, int64(len(failed)))
		return &StockAdjustmentError{OrderID: ord.ID, Failed: failed}
	}
	return nil
}
