package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ariefcatur/go-shop-backend/internal/auth"
	"github.com/ariefcatur/go-shop-backend/internal/catalog"
	"github.com/ariefcatur/go-shop-backend/internal/orders"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func errBody(err error) map[string]string {
	return map[string]string{"error": err.Error()}
}

// writeError translates domain errors into responses. Anything unrecognized
// collapses into a generic 500; the cause was already logged where it
// happened.
func writeError(w http.ResponseWriter, err error) {
	var pnf *orders.ProductNotFoundError
	var ins *orders.InsufficientStockError
	var onf *orders.OrderNotFoundError

	switch {
	case errors.As(err, &pnf), errors.As(err, &onf):
		writeJSON(w, http.StatusNotFound, errBody(err))
	case errors.As(err, &ins):
		writeJSON(w, http.StatusConflict, errBody(err))
	case errors.Is(err, auth.ErrUserExists), errors.Is(err, catalog.ErrProductExists):
		writeJSON(w, http.StatusConflict, errBody(err))
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errBody(err))
	case errors.Is(err, orders.ErrInvalidQuantity), errors.Is(err, catalog.ErrInvalidProduct):
		writeJSON(w, http.StatusBadRequest, errBody(err))
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "an unexpected error occurred"})
	}
}
