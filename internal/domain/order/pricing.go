package order

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/brunodmn/storefront-api/internal/domain/catalog"
	"github.com/brunodmn/storefront-api/internal/domain/freight"
	"github.com/brunodmn/storefront-api/internal/money"
)

// price turns a validated request plus fresh catalog snapshots into a fully
// priced, unpersisted Order: per-SKU presence and stock checks, per-line
// pricing with half-up rounding at line granularity, freight resolution and
// even split, aggregates, delivery date, and installments. Any failure here
// aborts before any write happens downstream.
func price(req PlaceOrderRequest, products map[string]catalog.Product, table freight.Table, now time.Time) (*Order, error) {
	// Presence is checked per SKU, not by count: duplicate SKUs in the cart
	// would otherwise mask a missing product.
	for _, line := range req.Lines {
		if _, ok := products[line.SKU]; !ok {
			return nil, &ProductNotFoundError{SKU: line.SKU}
		}
	}

	for _, line := range req.Lines {
		if quantityOrDefault(line.Quantity) > products[line.SKU].Stock {
			return nil, &InsufficientStockError{SKU: line.SKU}
		}
	}

	regionCode := normalizeCode(req.Address.RegionCode)
	freightAmount, ok := table.Lookup(regionCode)
	if !ok {
		return nil, &FreightUnavailableError{RegionCode: regionCode}
	}

	discountPercent := req.Payment.DiscountPercent
	if discountPercent.IsNegative() {
		discountPercent = decimal.Zero
	}

	lineCount := len(req.Lines)
	lines := make([]Line, lineCount)
	gross := decimal.Zero
	discount := decimal.Zero

	for i, cartLine := range req.Lines {
		snapshot := products[cartLine.SKU]
		qty := quantityOrDefault(cartLine.Quantity)

		// Unit price always comes from the snapshot, never the client.
		lineGross := snapshot.Price.Mul(decimal.NewFromInt(int64(qty)))

		// Rounded per line; errors accumulate at line granularity and are
		// not corrected at the aggregate.
		lineDiscount := decimal.Zero
		if discountPercent.IsPositive() {
			lineDiscount = money.Round2(lineGross.Mul(discountPercent))
		}

		lines[i] = Line{
			SKU:       cartLine.SKU,
			Quantity:  qty,
			UnitPrice: snapshot.Price,
			Gross:     lineGross,
			Discount:  lineDiscount,
			Net:       lineGross.Sub(lineDiscount),
			Freight:   money.SplitEven(freightAmount, lineCount),
		}

		gross = gross.Add(lineGross)
		discount = discount.Add(lineDiscount)
	}

	net := gross.Sub(discount).Add(freightAmount)

	installments := installmentsOrDefault(req.Payment.Installments)

	return &Order{
		CustomerID:   req.CustomerID,
		Status:       StatusPending,
		Gross:        gross,
		Discount:     discount,
		Freight:      freightAmount,
		Net:          net,
		DeliveryDate: now.AddDate(0, 0, deliveryLeadDays),
		Address: ShippingAddress{
			RecipientName: req.Address.RecipientName,
			PostalCode:    normalizeCode(req.Address.PostalCode),
			Street:        req.Address.Street,
			Number:        req.Address.Number,
			Complement:    req.Address.Complement,
			District:      req.Address.District,
			CityCode:      normalizeCode(req.Address.CityCode),
			RegionCode:    regionCode,
		},
		Payment: Payment{
			Method:       req.Payment.Method,
			Installments: installments,
			// The discount percentage is input, not stored state: it is
			// applied above and does not appear on the payment record.
			Total:             net,
			InstallmentAmount: money.SplitEven(net, int(installments)),
		},
		Lines: lines,
	}, nil
}

// quantityOrDefault normalizes a line quantity, defaulting anything below 1
// to a single unit.
func quantityOrDefault(q int32) int32 {
	if q < 1 {
		return 1
	}
	return q
}

// installmentsOrDefault normalizes the installment count to at least one.
func installmentsOrDefault(n int32) int32 {
	if n < 1 {
		return 1
	}
	return n
}

// normalizeCode brings address numeric codes to canonical string form.
func normalizeCode(code string) string {
	return strings.TrimSpace(code)
}
