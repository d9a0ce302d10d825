package handler

import (
	"net/http"
	"time"
)

type registerRequest struct {
	Nome           string `json:"nome" validate:"required,min=1,max=60"`
	Email          string `json:"email" validate:"required,email"`
	Senha          string `json:"senha" validate:"required,min=8"`
	ConfirmarSenha string `json:"confirmarSenha" validate:"required,eqfield=Senha"`
}

type loginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

type customerResponse struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type loginResponse struct {
	Cliente customerResponse `json:"cliente"`
	Token   string           `json:"token"`
}

// RegisterCustomer handles POST /clientes.
func (h *Handler) RegisterCustomer(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	c, err := h.customers.Register(r.Context(), req.Nome, req.Email, req.Senha)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Cliente criado com sucesso", customerResponse{
		ID:        c.ID,
		Nome:      c.Name,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
	})
}

// Login handles POST /clientes/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	c, token, err := h.customers.Login(r.Context(), req.Email, req.Senha)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Login realizado com sucesso", loginResponse{
		Cliente: customerResponse{
			ID:        c.ID,
			Nome:      c.Name,
			Email:     c.Email,
			CreatedAt: c.CreatedAt,
		},
		Token: token,
	})
}
