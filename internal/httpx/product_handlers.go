package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/ariefcatur/go-shop-backend/internal/catalog"
	"github.com/shopspring/decimal"
)

type AddProductReq struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	VAT      decimal.Decimal `json:"vat"`
	Quantity int             `json:"quantity"`
}

type ProductResp struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	VAT        decimal.Decimal `json:"vat"`
	PriceGross decimal.Decimal `json:"price_gross"`
	Quantity   int             `json:"quantity"`
}

func toProductResp(p *catalog.Product) ProductResp {
	return ProductResp{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		VAT:        p.VAT,
		PriceGross: p.PriceGross,
		Quantity:   p.Quantity,
	}
}

func (h *Handler) addProduct(w http.ResponseWriter, r *http.Request) {
	user := UserFrom(r.Context())
	if !user.IsAdmin() {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "admin role required"})
		return
	}

	var req AddProductReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	p, err := h.Catalog.Add(r.Context(), catalog.NewProduct{
		Name:     req.Name,
		Price:    req.Price,
		VAT:      req.VAT,
		Quantity: req.Quantity,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductResp(p))
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	ps, err := h.Catalog.List(r.Context())
	if err != nil {
		h.logger().Error("list products failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "an unexpected error occurred"})
		return
	}
	out := make([]ProductResp, 0, len(ps))
	for i := range ps {
		out = append(out, toProductResp(&ps[i]))
	}
	writeJSON(w, http.StatusOK, out)
}
