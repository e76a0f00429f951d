package response

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angel343234/Isa-Crochet-shop-platform/internal/cart"
)

func TestNewCart(t *testing.T) {
	lines := []cart.Line{
		{
			ProductID: 1,
			Quantity:  2,
			UnitPrice: decimal.NewFromInt(100),
			Name:      "tulip bouquet",
		},
		{
			ProductID: 2,
			Variation: "red",
			Quantity:  1,
			UnitPrice: decimal.NewFromInt(50),
			Name:      "sunflower",
		},
	}

	body := NewCart(lines)

	require.Len(t, body.Items, 2)
	assert.True(t, body.Items[0].LineTotal.Equal(decimal.NewFromInt(200)))
	assert.True(t, body.Items[1].LineTotal.Equal(decimal.NewFromInt(50)))
	assert.EqualValues(t, 3, body.TotalItems)
	assert.True(t, body.TotalPrice.Equal(decimal.NewFromInt(250)))
}

func TestNewCartEmpty(t *testing.T) {
	body := NewCart(nil)

	assert.Empty(t, body.Items)
	assert.EqualValues(t, 0, body.TotalItems)
	assert.True(t, body.TotalPrice.Equal(decimal.Zero))
}
