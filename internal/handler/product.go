package handler

import (
	"net/http"
	"strconv"

	"github.com/brunodmn/storefront-api/internal/domain/catalog"
)

// productResponse is the wire shape of a catalog product.
type productResponse struct {
	SKU         string            `json:"sku"`
	Nome        string            `json:"nome"`
	Descricao   string            `json:"descricao,omitempty"`
	Foto        string            `json:"foto,omitempty"`
	Preco       float64           `json:"preco"`
	PctOferta   float64           `json:"pctOferta"`
	Estoque     int32             `json:"estoque"`
	QtdVendas   int32             `json:"qtdVendas"`
	IdCategoria string            `json:"idCategoria,omitempty"`
	Categoria   *categoryResponse `json:"categoria,omitempty"`
}

type categoryResponse struct {
	ID   string `json:"id"`
	Nome string `json:"nome"`
}

func toProductResponse(p catalog.Product) productResponse {
	resp := productResponse{
		SKU:         p.SKU,
		Nome:        p.Name,
		Descricao:   p.Description,
		Foto:        p.Photo,
		Preco:       p.Price.InexactFloat64(),
		PctOferta:   p.OfferPercent.InexactFloat64(),
		Estoque:     p.Stock,
		QtdVendas:   p.SalesCount,
		IdCategoria: p.CategoryID,
	}
	if p.CategoryID != "" {
		resp.Categoria = &categoryResponse{ID: p.CategoryID, Nome: p.CategoryName}
	}
	return resp
}

func toProductResponses(products []catalog.Product) []productResponse {
	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	return out
}

// pageFromQuery reads page and pageSize query parameters, falling back to
// the first page of ten on anything unparseable.
func pageFromQuery(r *http.Request) catalog.Page {
	page := catalog.Page{Number: 1, Size: 10}
	if n, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && n > 0 {
		page.Number = n
	}
	if size, err := strconv.Atoi(r.URL.Query().Get("pageSize")); err == nil && size > 0 {
		page.Size = size
	}
	return page
}

// ListProducts handles GET /produtos.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context(), pageFromQuery(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Produtos obtidos com sucesso", toProductResponses(products))
}

// GetProduct handles GET /produtos/{sku}.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.GetBySKU(r.Context(), r.PathValue("sku"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Produto obtido com sucesso", toProductResponse(*p))
}

// SearchProducts handles GET /produtos/busca?name=.
func (h *Handler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "name deve ser enviado por query param")
		return
	}

	products, err := h.products.SearchByName(r.Context(), name, pageFromQuery(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Produtos obtidos com sucesso", toProductResponses(products))
}

// ListCategories handles GET /categorias.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	out := make([]categoryResponse, len(categories))
	for i, c := range categories {
		out[i] = categoryResponse{ID: c.ID, Nome: c.Name}
	}
	writeSuccess(w, http.StatusOK, "Categorias obtidas com sucesso", out)
}

// ListCategoryProducts handles GET /categorias/{id}/produtos.
func (h *Handler) ListCategoryProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListByCategory(r.Context(), r.PathValue("id"), pageFromQuery(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Produtos obtidos com sucesso", toProductResponses(products))
}

// ListOffers handles GET /ofertas.
func (h *Handler) ListOffers(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListOffers(r.Context(), pageFromQuery(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeSuccess(w, http.StatusOK, "Ofertas obtidas com sucesso", toProductResponses(products))
}
