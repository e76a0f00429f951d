package supabase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the typed view of a row in the products table. The backend's
// loose shapes (nullable columns, numeric price) are coerced here so nothing
// downstream has to deal with optional-field ambiguity.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Category    string          `json:"category"`
	Variations  []string        `json:"variations"`
	Published   bool            `json:"published"`
	Stock       int             `json:"stock"`
}

type rawProduct struct {
	ID          int64            `json:"id"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"image_url"`
	Category    *string          `json:"category"`
	Variations  []string         `json:"variations"`
	Published   *bool            `json:"published"`
	Stock       *int             `json:"stock"`
}

func (r rawProduct) coerce() Product {
	p := Product{ID: r.ID, Variations: r.Variations}
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.ImageURL != nil {
		p.ImageURL = *r.ImageURL
	}
	if r.Category != nil {
		p.Category = *r.Category
	}
	if r.Published != nil {
		p.Published = *r.Published
	}
	if r.Stock != nil {
		p.Stock = *r.Stock
	}
	return p
}

// OrderItem is one snapshot line inside an order's items column.
type OrderItem struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int32           `json:"quantity"`
	ImageURL  string          `json:"image_url"`
	Variation string          `json:"variation,omitempty"`
}

// OrderRecord is a row in the orders table. CreatedAt is set by the backend;
// UserID is nil for anonymous checkouts.
type OrderRecord struct {
	ID              int64           `json:"id"`
	CustomerName    string          `json:"customer_name"`
	CustomerAddress string          `json:"customer_address"`
	CustomerPhone   string          `json:"customer_phone"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	Items           []OrderItem     `json:"items"`
	UserID          *uuid.UUID      `json:"user_id"`
	Status          string          `json:"status,omitempty"`
	CreatedAt       *time.Time      `json:"created_at,omitempty"`
}
