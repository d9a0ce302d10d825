// Package handler exposes the storefront HTTP API: catalog browsing,
// customer accounts, the home page, and order placement.
package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/brunodmn/storefront-api/internal/domain/catalog"
	"github.com/brunodmn/storefront-api/internal/domain/customer"
	"github.com/brunodmn/storefront-api/internal/domain/home"
	"github.com/brunodmn/storefront-api/internal/domain/order"
)

// Handler wires the domain services to HTTP routes, translating between the
// Portuguese wire contract and the domain types.
type Handler struct {
	products   catalog.Repository
	categories catalog.CategoryRepository
	orders     *order.Service
	customers  *customer.Service
	home       *home.Service
	tokens     *customer.TokenSigner

	validate *validator.Validate
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(
	products catalog.Repository,
	categories catalog.CategoryRepository,
	orders *order.Service,
	customers *customer.Service,
	homeService *home.Service,
	tokens *customer.TokenSigner,
) *Handler {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// Monetary fractions on the wire carry at most two decimal places.
	_ = validate.RegisterValidation("decimal2", func(fl validator.FieldLevel) bool {
		d := decimal.NewFromFloat(fl.Field().Float())
		return d.Equal(d.Round(2))
	})

	return &Handler{
		products:   products,
		categories: categories,
		orders:     orders,
		customers:  customers,
		home:       homeService,
		tokens:     tokens,
		validate:   validate,
	}
}

// Routes registers every API route on the mux. Order placement requires a
// session token; everything else is public.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /produtos", h.ListProducts)
	mux.HandleFunc("GET /produtos/busca", h.SearchProducts)
	mux.HandleFunc("GET /produtos/{sku}", h.GetProduct)

	mux.HandleFunc("GET /categorias", h.ListCategories)
	mux.HandleFunc("GET /categorias/{id}/produtos", h.ListCategoryProducts)

	mux.HandleFunc("GET /ofertas", h.ListOffers)
	mux.HandleFunc("GET /home", h.Home)

	mux.HandleFunc("POST /clientes", h.RegisterCustomer)
	mux.HandleFunc("POST /clientes/login", h.Login)

	mux.Handle("POST /pedidos", h.RequireSession(http.HandlerFunc(h.PlaceOrder)))
}
