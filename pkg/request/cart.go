package request

// AddCartItem only names the product and variation; price, name and image are
// snapshotted server-side from the catalog so clients cannot forge them.
type AddCartItem struct {
	ProductID int64  `json:"product_id" validate:"required"`
	Variation string `json:"variation"`
}

type RemoveCartItem struct {
	ProductID int64  `json:"product_id" validate:"required"`
	Variation string `json:"variation"`
}
