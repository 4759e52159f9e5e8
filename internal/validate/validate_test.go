package validate

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/storefront/internal/errors"
)

type address struct {
	Phone      string `json:"phone"      validate:"required,il_phone"`
	PostalCode string `json:"postalCode" validate:"required,postal_code"`
	IDNumber   string `json:"idNumber"   validate:"omitempty,il_id"`
}

type form struct {
	Email   string          `json:"email"   validate:"required,email"`
	Amount  decimal.Decimal `json:"amount"  validate:"price"`
	Address address         `json:"address" validate:"required"`
}

func TestStruct(t *testing.T) {
	valid := form{
		Email:  "dana@example.com",
		Amount: decimal.NewFromInt(10),
		Address: address{
			Phone:      "050-1234567",
			PostalCode: "6100001",
			IDNumber:   "000000018",
		},
	}

	tests := []struct {
		name           string
		input          func() form
		expectedFields []string
	}{
		{
			name:  "given valid form should return nil",
			input: func() form { return valid },
		},
		{
			name: "given international phone should return nil",
			input: func() form {
				f := valid
				f.Address.Phone = "+972 50 123 4567"
				return f
			},
		},
		{
			name: "given bad phone and postal code should return nested field names",
			input: func() form {
				f := valid
				f.Address.Phone = "12345"
				f.Address.PostalCode = "123"
				return f
			},
			expectedFields: []string{"address.phone", "address.postalCode"},
		},
		{
			name: "given id with wrong check digit should return idNumber",
			input: func() form {
				f := valid
				f.Address.IDNumber = "000000019"
				return f
			},
			expectedFields: []string{"address.idNumber"},
		},
		{
			name: "given negative amount and missing email should return both",
			input: func() form {
				f := valid
				f.Email = ""
				f.Amount = decimal.NewFromInt(-1)
				return f
			},
			expectedFields: []string{"email", "amount"},
		},
		{
			name: "given trailing zero amount should return nil",
			input: func() form {
				f := valid
				f.Amount = decimal.RequireFromString("0.10")
				return f
			},
		},
		{
			name: "given sub cent amount should return amount",
			input: func() form {
				f := valid
				f.Amount = decimal.RequireFromString("0.125")
				return f
			},
			expectedFields: []string{"amount"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input())
			if len(tt.expectedFields) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, inErrors.ErrValidation))
			var validationErr *inErrors.ValidationError
			require.True(t, errors.As(err, &validationErr))
			actual := []string{}
			for _, f := range validationErr.Fields {
				actual = append(actual, f.Field)
				assert.NotEmpty(t, f.Message)
			}
			assert.ElementsMatch(t, tt.expectedFields, actual)
		})
	}
}

func TestIsValidIDNumber(t *testing.T) {
	tests := map[string]bool{
		"000000018": true,
		"18":        false,
		"12345":     false,
		"123456782": true,
		"123456789": false,
		"abcdefghi": false,
		"":          false,
	}

	for input, expected := range tests {
		assert.Equal(t, expected, IsValidIDNumber(input), input)
	}
}
