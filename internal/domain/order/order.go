// Package order implements the order-placement pipeline: cart validation
// against live inventory, per-line and aggregate pricing, atomic
// persistence of the order graph, and post-commit stock adjustment.
package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StatusPending marks an order that is accepted and persisted but not yet
// fulfilled or paid.
const StatusPending = "P"

// deliveryLeadDays is added to the placement time to produce the delivery date.
const deliveryLeadDays = 3

// PaymentMethod enumerates the accepted payment forms.
type PaymentMethod string

const (
	MethodBoleto PaymentMethod = "boleto"
	MethodPix    PaymentMethod = "pix"
	MethodDebit  PaymentMethod = "debit"
	MethodCredit PaymentMethod = "credit"
)

// CartLine is a client-supplied order line: a SKU and a quantity. Prices
// are always resolved server-side from the catalog.
type CartLine struct {
	SKU      string
	Quantity int32
}

// AddressInput carries the shipping destination of a new order. CityCode
// and RegionCode are canonical digit strings (7 and 2 digits); RegionCode
// drives the freight lookup.
type AddressInput struct {
	RecipientName string
	PostalCode    string
	Street        string
	Number        string
	Complement    string
	District      string
	CityCode      string
	RegionCode    string
}

// PaymentInput carries the payment intent of a new order. DiscountPercent
// is a fraction in [0,1]; zero means no discount. It is consumed during
// pricing and never stored.
type PaymentInput struct {
	Method          PaymentMethod
	Installments    int32
	DiscountPercent decimal.Decimal
}

// PlaceOrderRequest is the validated input to the placement pipeline.
// CustomerID comes from the authenticated session, never from the body.
type PlaceOrderRequest struct {
	CustomerID string
	Lines      []CartLine
	Address    AddressInput
	Payment    PaymentInput
}

// Line is a fully priced order line. Freight is an informational even share
// of the order freight; the order-level figure is the value of record.
type Line struct {
	ID        string
	OrderID   string
	SKU       string
	Quantity  int32
	UnitPrice decimal.Decimal
	Gross     decimal.Decimal
	Discount  decimal.Decimal
	Net       decimal.Decimal
	Freight   decimal.Decimal
}

// ShippingAddress is the persisted destination of an order.
type ShippingAddress struct {
	ID            string
	OrderID       string
	RecipientName string
	PostalCode    string
	Street        string
	Number        string
	Complement    string
	District      string
	CityCode      string
	RegionCode    string
}

// Payment is the persisted payment record. Total equals the order net
// amount; InstallmentAmount is Total divided by Installments, rounded.
type Payment struct {
	ID                string
	OrderID           string
	Method            PaymentMethod
	Installments      int32
	Total             decimal.Decimal
	InstallmentAmount decimal.Decimal
}

// Order is the aggregate root. Invariant: Net = Gross - Discount + Freight
// at the order level, with Gross and Discount summed over lines and Freight
// taken from the freight table. It is never mutated after persistence.
type Order struct {
	ID           string
	CustomerID   string
	Status       string
	Gross        decimal.Decimal
	Discount     decimal.Decimal
	Freight      decimal.Decimal
	Net          decimal.Decimal
	DeliveryDate time.Time
	CreatedAt    time.Time

	Address ShippingAddress
	Payment Payment
	Lines   []Line
}

// Repository persists the order graph. Create writes the header, address,
// payment, and lines as one transaction and populates generated identifiers
// on every entity; if any sub-write fails, nothing persists.
type Repository interface {
	Create(ctx context.Context, o *Order) error
}
