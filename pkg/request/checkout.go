package request

// ShippingForm is the checkout form. The phone10 rule accepts any formatting
// that strips down to exactly 10 digits.
type ShippingForm struct {
	Name    string `json:"name"    validate:"required"`
	Address string `json:"address" validate:"required"`
	Phone   string `json:"phone"   validate:"required,phone10"`
}
