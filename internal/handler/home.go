package handler

import (
	"net/http"
)

type homeResponse struct {
	Ofertas    []productResponse  `json:"ofertas"`
	Categorias []categoryResponse `json:"categorias"`
	Destaques  []productResponse  `json:"destaques"`
}

// Home handles GET /home: the landing page sections in one payload.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	content, err := h.home.Load(r.Context(), pageFromQuery(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	categories := make([]categoryResponse, len(content.Categories))
	for i, c := range content.Categories {
		categories[i] = categoryResponse{ID: c.ID, Nome: c.Name}
	}

	writeSuccess(w, http.StatusOK, "Home obtida com sucesso", homeResponse{
		Ofertas:    toProductResponses(content.Offers),
		Categorias: categories,
		Destaques:  toProductResponses(content.Featured),
	})
}
