package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/brunodmn/storefront-api/internal/domain/catalog"
	"github.com/brunodmn/storefront-api/internal/domain/customer"
	"github.com/brunodmn/storefront-api/internal/domain/order"
)

// appMessage is the response envelope every endpoint returns, success or error.
type appMessage struct {
	StatusCode int    `json:"statusCode"`
	Status     string `json:"status"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
}

func writeMessage(w http.ResponseWriter, statusCode int, message string, data any) {
	status := "error"
	if statusCode >= 200 && statusCode <= 299 {
		status = "success"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(appMessage{
		StatusCode: statusCode,
		Status:     status,
		Message:    message,
		Data:       data,
	})
}

func writeSuccess(w http.ResponseWriter, statusCode int, message string, data any) {
	writeMessage(w, statusCode, message, data)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeMessage(w, statusCode, message, nil)
}

// decodeJSON decodes the request body into dst and runs struct validation.
// It reports success; on failure the error response is already written.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			writeError(w, http.StatusBadRequest, formatFieldErrors(fieldErrs))
			return false
		}
		writeError(w, http.StatusBadRequest, "Requisição inválida")
		return false
	}
	return true
}

func formatFieldErrors(fieldErrs validator.ValidationErrors) string {
	msgs := make([]string, len(fieldErrs))
	for i, fe := range fieldErrs {
		msgs[i] = fmt.Sprintf("campo %q falhou na validação %q", fe.Field(), fe.Tag())
	}
	return strings.Join(msgs, "; ")
}

// writeDomainError maps known domain errors to wire responses. Anything
// unrecognized is logged and becomes an opaque 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		notFound     *order.ProductNotFoundError
		insufficient *order.InsufficientStockError
		noFreight    *order.FreightUnavailableError
	)
	switch {
	case errors.Is(err, order.ErrEmptyCart):
		writeError(w, http.StatusBadRequest, "Nenhum produto informado")
	case errors.As(err, &notFound):
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Produto com SKU igual a %q não existe", notFound.SKU))
	case errors.As(err, &insufficient):
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Produto com SKU igual a %q está com estoque em falta", insufficient.SKU))
	case errors.As(err, &noFreight):
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Frete indisponível para a UF %q", noFreight.RegionCode))
	case errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, "Produto não encontrado")
	case errors.Is(err, customer.ErrEmailTaken):
		writeError(w, http.StatusConflict, "E-mail já cadastrado")
	case errors.Is(err, customer.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "E-mail ou senha inválidos")
	default:
		zctx.From(r.Context()).Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Erro interno")
	}
}
