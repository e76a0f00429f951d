package response

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angel343234/Isa-Crochet-shop-platform/internal/supabase"
)

type OrderItem struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int32           `json:"quantity"`
	ImageURL  string          `json:"image_url"`
	Variation string          `json:"variation,omitempty"`
}

type Order struct {
	ID         int64           `json:"id"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	Items      []OrderItem     `json:"items"`
}

// CheckoutComplete carries what the confirmation screen shows: the order id
// and the bank-transfer instructions for the pending payment.
type CheckoutComplete struct {
	OrderID      int64           `json:"order_id"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	Status       string          `json:"status"`
	Instructions string          `json:"instructions"`
}

func NewOrder(rec supabase.OrderRecord) Order {
	items := make([]OrderItem, len(rec.Items))
	for i, item := range rec.Items {
		items[i] = OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			ImageURL:  item.ImageURL,
			Variation: item.Variation,
		}
	}
	order := Order{
		ID:         rec.ID,
		TotalPrice: rec.TotalPrice,
		Status:     rec.Status,
		Items:      items,
	}
	if rec.CreatedAt != nil {
		order.CreatedAt = *rec.CreatedAt
	}
	return order
}

func NewOrders(recs []supabase.OrderRecord) []Order {
	out := make([]Order, len(recs))
	for i, rec := range recs {
		out[i] = NewOrder(rec)
	}
	return out
}
