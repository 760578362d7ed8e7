package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	TopicOrderPlaced = "shop.order.placed"

	EventOrderPlaced = "OrderPlaced"
)

type Envelope struct {
	EventID      string          `json:"event_id"`
	EventType    string          `json:"event_type"`
	EventVersion int             `json:"event_version"`
	OccurredAt   time.Time       `json:"occurred_at"`
	Producer     string          `json:"producer"`
	Payload      json.RawMessage `json:"payload"`
}

type OrderPlacedItem struct {
	ProductID  string `json:"product_id"`
	Qty        int    `json:"qty"`
	NetPrice   string `json:"net_price"`
	GrossPrice string `json:"gross_price"`
}

type OrderPlacedPayload struct {
	OrderID    string            `json:"order_id"`
	UserID     string            `json:"user_id"`
	Items      []OrderPlacedItem `json:"items"`
	TotalNet   string            `json:"total_net"`
	TotalGross string            `json:"total_gross"`
}

func NewOrderPlaced(producer string, p OrderPlacedPayload) Envelope {
	return Envelope{
		EventID:      uuid.NewString(),
		EventType:    EventOrderPlaced,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Producer:     producer,
		Payload:      MustMarshal(p),
	}
}

func MustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

// Partition key = order id, so all events of one order keep their order.
func PartitionKey(orderID string) []byte { return []byte(orderID) }
