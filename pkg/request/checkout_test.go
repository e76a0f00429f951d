package request

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/angel343234/Isa-Crochet-shop-platform/internal/common/validate"
)

func TestShippingFormValidation(t *testing.T) {
	validator := validate.New()

	tests := []struct {
		name      string
		form      ShippingForm
		expectErr bool
	}{
		{
			name: "Valid",
			form: ShippingForm{
				Name:    "Maria Lopez",
				Address: "Av. Universidad 101",
				Phone:   "4491234567",
			},
			expectErr: false,
		},
		{
			name: "FormattedPhone",
			form: ShippingForm{
				Name:    "Maria Lopez",
				Address: "Av. Universidad 101",
				Phone:   "449-123 4567",
			},
			expectErr: false,
		},
		{
			name: "PhoneTooShort",
			form: ShippingForm{
				Name:    "Maria Lopez",
				Address: "Av. Universidad 101",
				Phone:   "123",
			},
			expectErr: true,
		},
		{
			name: "PhoneTooLong",
			form: ShippingForm{
				Name:    "Maria Lopez",
				Address: "Av. Universidad 101",
				Phone:   "449 123 45678",
			},
			expectErr: true,
		},
		{
			name:      "MissingName",
			form:      ShippingForm{Address: "Av. Universidad 101", Phone: "4491234567"},
			expectErr: true,
		},
		{
			name:      "MissingAddress",
			form:      ShippingForm{Name: "Maria Lopez", Phone: "4491234567"},
			expectErr: true,
		},
		{
			name:      "MissingPhone",
			form:      ShippingForm{Name: "Maria Lopez", Address: "Av. Universidad 101"},
			expectErr: true,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := validator.Struct(test.form)
			if test.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
