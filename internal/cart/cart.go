package cart

import (
	"github.com/shopspring/decimal"

	"github.com/angel343234/Isa-Crochet-shop-platform/internal/supabase"
)

// Line is one distinct selection in the cart. Variation "" means the product
// was added without picking one. (ProductID, Variation) is the uniqueness key;
// everything else is snapshotted from the product at add time so the cart
// renders the same even if the catalog changes afterwards.
type Line struct {
	ProductID int64           `json:"product_id"`
	Variation string          `json:"variation,omitempty"`
	Quantity  int32           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Name      string          `json:"name"`
	ImageURL  string          `json:"image_url"`
}

// Cart owns an ordered sequence of lines. Insertion order is preserved for
// display; merging ignores it. Totals are derived on every read, never stored.
// A Cart is not safe for concurrent use on its own; the Store serializes
// access per session.
type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// Add merges into an existing line when the (productID, variation) pair is
// already present, otherwise appends a new line with quantity 1. Quantity is
// unbounded here; stock limits belong to the calling screen.
func (ct *Cart) Add(product supabase.Product, variation string) Line {
	for i, line := range ct.lines {
		if line.ProductID == product.ID && line.Variation == variation {
			ct.lines[i].Quantity++
			return ct.lines[i]
		}
	}
	line := Line{
		ProductID: product.ID,
		Variation: variation,
		Quantity:  1,
		UnitPrice: product.Price,
		Name:      product.Name,
		ImageURL:  product.ImageURL,
	}
	ct.lines = append(ct.lines, line)
	return line
}

// Remove deletes the whole line matching the pair. Removing a line that does
// not exist is a no-op, not an error. There is no decrement: removing and
// re-adding is the only way to reduce a line's quantity.
func (ct *Cart) Remove(productID int64, variation string) bool {
	for i, line := range ct.lines {
		if line.ProductID == productID && line.Variation == variation {
			ct.lines = append(ct.lines[:i], ct.lines[i+1:]...)
			return true
		}
	}
	return false
}

func (ct *Cart) Clear() {
	ct.lines = nil
}

// Lines returns a copy so callers cannot mutate the cart behind its back.
func (ct *Cart) Lines() []Line {
	out := make([]Line, len(ct.lines))
	copy(out, ct.lines)
	return out
}

func (ct *Cart) IsEmpty() bool {
	return len(ct.lines) == 0
}

func (ct *Cart) TotalItems() int32 {
	var total int32
	for _, line := range ct.lines {
		total += line.Quantity
	}
	return total
}

func (ct *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, line := range ct.lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt32(line.Quantity)))
	}
	return total
}
