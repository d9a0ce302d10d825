package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/brunodmn/storefront-api/internal/domain/order"
)

// jsonCode is a numeric code that clients send either as a JSON string or a
// bare number. Either way it normalizes to its digit string.
type jsonCode string

func (c *jsonCode) UnmarshalJSON(data []byte) error {
	var raw json.Number
	if err := json.Unmarshal(data, &raw); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errors.New("must be a string or a number")
		}
		*c = jsonCode(s)
		return nil
	}
	*c = jsonCode(raw.String())
	return nil
}

// Quantidade may be omitted (it defaults to a single unit downstream), but
// an explicit negative quantity is a structural error.
type orderLineRequest struct {
	SKUProduto string `json:"skuProduto" validate:"required"`
	Quantidade int32  `json:"quantidade" validate:"omitempty,gt=0"`
}

type addressRequest struct {
	NomeRemetente    string   `json:"nomeRemetente" validate:"required,max=120"`
	CEP              jsonCode `json:"cep" validate:"required,numeric,len=8"`
	Logradouro       string   `json:"logradouro" validate:"required,max=60"`
	Numero           string   `json:"numero" validate:"required,max=10"`
	Complemento      string   `json:"complemento" validate:"omitempty,max=60"`
	Bairro           string   `json:"bairro" validate:"required,max=60"`
	CodigoIbgeCidade jsonCode `json:"codigoIbgeCidade" validate:"required,numeric,len=7"`
	CodigoIbgeUF     jsonCode `json:"codigoIbgeUF" validate:"required,numeric,len=2"`
}

type paymentRequest struct {
	FormaPagamento      string  `json:"formaPagamento" validate:"required,oneof=B P D C"`
	NumeroParcelas      int32   `json:"numeroParcelas" validate:"omitempty,gte=1,lte=12"`
	PorcentagemDesconto float64 `json:"porcentagemDesconto" validate:"omitempty,gte=0,lte=1,decimal2"`
}

type placeOrderRequest struct {
	Produtos        []orderLineRequest `json:"produtos" validate:"required,min=1,dive"`
	EnderecoEntrega addressRequest     `json:"enderecoEntrega" validate:"required"`
	Pagamento       paymentRequest     `json:"pagamento" validate:"required"`
}

type orderLineResponse struct {
	ID            string  `json:"id"`
	SKUProduto    string  `json:"skuProduto"`
	Quantidade    int32   `json:"quantidade"`
	ValorUnitario float64 `json:"valorUnitario"`
	ValorBruto    float64 `json:"valorBruto"`
	ValorDesconto float64 `json:"valorDesconto"`
	ValorLiquido  float64 `json:"valorLiquido"`
	ValorFrete    float64 `json:"valorFrete"`
}

type addressResponse struct {
	ID               string `json:"id"`
	NomeRemetente    string `json:"nomeRemetente"`
	CEP              string `json:"cep"`
	Logradouro       string `json:"logradouro"`
	Numero           string `json:"numero"`
	Complemento      string `json:"complemento,omitempty"`
	Bairro           string `json:"bairro"`
	CodigoIbgeCidade string `json:"codigoIbgeCidade"`
	CodigoIbgeUF     string `json:"codigoIbgeUF"`
}

type paymentResponse struct {
	ID             string  `json:"id"`
	FormaPagamento string  `json:"formaPagamento"`
	NumeroParcelas int32   `json:"numeroParcelas"`
	ValorParcela   float64 `json:"valorParcela"`
	ValorTotal     float64 `json:"valorTotal"`
}

type orderResponse struct {
	ID              string              `json:"id"`
	IdCliente       string              `json:"idCliente"`
	Status          string              `json:"status"`
	ValorBruto      float64             `json:"valorBruto"`
	ValorDesconto   float64             `json:"valorDesconto"`
	ValorFrete      float64             `json:"valorFrete"`
	ValorLiquido    float64             `json:"valorLiquido"`
	DataEntrega     time.Time           `json:"dataEntrega"`
	CreatedAt       time.Time           `json:"createdAt"`
	Produtos        []orderLineResponse `json:"produtos"`
	EnderecoEntrega addressResponse     `json:"enderecoEntrega"`
	Pagamento       paymentResponse     `json:"pagamento"`
}

// paymentMethods maps the single-letter wire codes to domain methods.
var paymentMethods = map[string]order.PaymentMethod{
	"B": order.MethodBoleto,
	"P": order.MethodPix,
	"D": order.MethodDebit,
	"C": order.MethodCredit,
}

func paymentMethodCode(m order.PaymentMethod) string {
	for code, method := range paymentMethods {
		if method == m {
			return code
		}
	}
	return ""
}

// PlaceOrder handles POST /pedidos. The customer comes from the session
// token, never from the body.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	lines := make([]order.CartLine, len(req.Produtos))
	for i, p := range req.Produtos {
		lines[i] = order.CartLine{SKU: strings.TrimSpace(p.SKUProduto), Quantity: p.Quantidade}
	}

	ord, err := h.orders.PlaceOrder(r.Context(), order.PlaceOrderRequest{
		CustomerID: customerIDFrom(r.Context()),
		Lines:      lines,
		Address: order.AddressInput{
			RecipientName: req.EnderecoEntrega.NomeRemetente,
			PostalCode:    string(req.EnderecoEntrega.CEP),
			Street:        req.EnderecoEntrega.Logradouro,
			Number:        req.EnderecoEntrega.Numero,
			Complement:    req.EnderecoEntrega.Complemento,
			District:      req.EnderecoEntrega.Bairro,
			CityCode:      string(req.EnderecoEntrega.CodigoIbgeCidade),
			RegionCode:    string(req.EnderecoEntrega.CodigoIbgeUF),
		},
		Payment: order.PaymentInput{
			Method:          paymentMethods[req.Pagamento.FormaPagamento],
			Installments:    req.Pagamento.NumeroParcelas,
			DiscountPercent: decimal.NewFromFloat(req.Pagamento.PorcentagemDesconto),
		},
	})
	if err != nil {
		// A stock adjustment failure happens after the commit: the order
		// exists and is returned, with a message flagging the pending items.
		var adjustErr *order.StockAdjustmentError
		if errors.As(err, &adjustErr) {
			writeSuccess(w, http.StatusCreated,
				"Pedido criado com sucesso; baixa de estoque pendente para alguns itens",
				toOrderResponse(ord))
			return
		}
		writeDomainError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Pedido criado com sucesso", toOrderResponse(ord))
}

func toOrderResponse(o *order.Order) orderResponse {
	lines := make([]orderLineResponse, len(o.Lines))
	for i, line := range o.Lines {
		lines[i] = orderLineResponse{
			ID:            line.ID,
			SKUProduto:    line.SKU,
			Quantidade:    line.Quantity,
			ValorUnitario: line.UnitPrice.InexactFloat64(),
			ValorBruto:    line.Gross.InexactFloat64(),
			ValorDesconto: line.Discount.InexactFloat64(),
			ValorLiquido:  line.Net.InexactFloat64(),
			ValorFrete:    line.Freight.InexactFloat64(),
		}
	}

	return orderResponse{
		ID:            o.ID,
		IdCliente:     o.CustomerID,
		Status:        o.Status,
		ValorBruto:    o.Gross.InexactFloat64(),
		ValorDesconto: o.Discount.InexactFloat64(),
		ValorFrete:    o.Freight.InexactFloat64(),
		ValorLiquido:  o.Net.InexactFloat64(),
		DataEntrega:   o.DeliveryDate,
		CreatedAt:     o.CreatedAt,
		Produtos:      lines,
		EnderecoEntrega: addressResponse{
			ID:               o.Address.ID,
			NomeRemetente:    o.Address.RecipientName,
			CEP:              o.Address.PostalCode,
			Logradouro:       o.Address.Street,
			Numero:           o.Address.Number,
			Complemento:      o.Address.Complement,
			Bairro:           o.Address.District,
			CodigoIbgeCidade: o.Address.CityCode,
			CodigoIbgeUF:     o.Address.RegionCode,
		},
		Pagamento: paymentResponse{
			ID:             o.Payment.ID,
			FormaPagamento: paymentMethodCode(o.Payment.Method),
			NumeroParcelas: o.Payment.Installments,
			ValorParcela:   o.Payment.InstallmentAmount.InexactFloat64(),
			ValorTotal:     o.Payment.Total.InexactFloat64(),
		},
	}
}
