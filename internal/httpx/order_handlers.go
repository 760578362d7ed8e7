package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/ariefcatur/go-shop-backend/internal/events"
	"github.com/ariefcatur/go-shop-backend/internal/orders"
	"github.com/go-chi/chi/v5"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

type PlaceOrderReq struct {
	Items []orders.ItemRequest `json:"items"`
}

type PlaceOrderResp struct {
	OrderID    string          `json:"order_id"`
	TotalNet   decimal.Decimal `json:"total_net"`
	TotalGross decimal.Decimal `json:"total_gross"`
	Summaries  []string        `json:"product_summaries"`
	Message    string          `json:"message"`
}

type OrderDetailsResp struct {
	OrderID    string          `json:"order_id"`
	Customer   CustomerResp    `json:"customer"`
	Items      []OrderItemResp `json:"items"`
	TotalNet   decimal.Decimal `json:"total_net"`
	TotalGross decimal.Decimal `json:"total_gross"`
}

type CustomerResp struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Street      string `json:"street"`
	PostalCode  string `json:"postal_code"`
}

type OrderItemResp struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	NetPrice    decimal.Decimal `json:"net_price"`
	GrossPrice  decimal.Decimal `json:"gross_price"`
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	user := UserFrom(r.Context())

	var req PlaceOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if len(req.Items) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "order must contain at least one item"})
		return
	}
	for _, it := range req.Items {
		if it.ProductID == "" || it.Qty < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "each item needs a product id and a positive quantity"})
			return
		}
	}

	placed, err := h.Orders.Place(r.Context(), user, req.Items)
	if err != nil {
		writeError(w, err)
		return
	}

	h.publishOrderPlaced(user.ID, placed)

	writeJSON(w, http.StatusCreated, PlaceOrderResp{
		OrderID:    placed.OrderID,
		TotalNet:   placed.TotalNet,
		TotalGross: placed.TotalGross,
		Summaries:  placed.Summaries,
		Message:    "Order placed successfully",
	})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")
	user := UserFrom(r.Context())

	// Ownership check before any order data is assembled or exposed.
	ownerID, err := h.Orders.Owner(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	if ownerID != user.ID && !user.IsAdmin() {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "you are not allowed to view this order"})
		return
	}

	d, err := h.Orders.Details(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}

	items := make([]OrderItemResp, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, OrderItemResp{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Qty,
			NetPrice:    it.NetPrice,
			GrossPrice:  it.GrossPrice,
		})
	}
	writeJSON(w, http.StatusOK, OrderDetailsResp{
		OrderID: d.OrderID,
		Customer: CustomerResp{
			ID:          d.Customer.ID,
			Username:    d.Customer.Username,
			Email:       d.Customer.Email,
			FirstName:   d.Customer.FirstName,
			LastName:    d.Customer.LastName,
			PhoneNumber: d.Customer.PhoneNumber,
			Country:     d.Customer.Country,
			City:        d.Customer.City,
			Street:      d.Customer.Street,
			PostalCode:  d.Customer.PostalCode,
		},
		Items:      items,
		TotalNet:   d.TotalNet,
		TotalGross: d.TotalGross,
	})
}

func (h *Handler) publishOrderPlaced(userID string, placed *orders.Placement) {
	if h.Producer == nil {
		return
	}
	payload := events.OrderPlacedPayload{
		OrderID:    placed.OrderID,
		UserID:     userID,
		TotalNet:   placed.TotalNet.String(),
		TotalGross: placed.TotalGross.String(),
	}
	for _, it := range placed.Items {
		payload.Items = append(payload.Items, events.OrderPlacedItem{
			ProductID:  it.ProductID,
			Qty:        it.Qty,
			NetPrice:   it.NetPrice.String(),
			GrossPrice: it.GrossPrice.String(),
		})
	}
	ev := events.NewOrderPlaced(h.Service, payload)
	h.Producer.Publish(events.PartitionKey(placed.OrderID), events.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(events.EventOrderPlaced)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
