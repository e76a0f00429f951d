package response

import (
	"github.com/shopspring/decimal"

	"github.com/angel343234/Isa-Crochet-shop-platform/internal/cart"
)

type CartLine struct {
	ProductID int64           `json:"product_id"`
	Variation string          `json:"variation,omitempty"`
	Quantity  int32           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"image_url"`
}

type Cart struct {
	Items      []CartLine      `json:"items"`
	TotalItems int32           `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

func NewCart(lines []cart.Line) Cart {
	items := make([]CartLine, len(lines))
	var totalItems int32
	totalPrice := decimal.Zero
	for i, line := range lines {
		lineTotal := line.UnitPrice.Mul(decimal.NewFromInt32(line.Quantity))
		items[i] = CartLine{
			ProductID: line.ProductID,
			Variation: line.Variation,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: lineTotal,
			Name:      line.Name,
			ImageURL:  line.ImageURL,
		}
		totalItems += line.Quantity
		totalPrice = totalPrice.Add(lineTotal)
	}
	return Cart{Items: items, TotalItems: totalItems, TotalPrice: totalPrice}
}
