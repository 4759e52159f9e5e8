package request

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/validate"
)

func TestCartLineItemValidation(t *testing.T) {
	line := func(price string, quantity int) CartLineItem {
		return CartLineItem{
			ProductID: uuid.New(),
			UnitPrice: decimal.RequireFromString(price),
			Quantity:  quantity,
		}
	}

	tests := []struct {
		name           string
		input          CartLineItem
		expectedFields []string
	}{
		{name: "given valid line should return nil", input: line("19.99", 2)},
		{name: "given max quantity should return nil", input: line("1", 9999)},
		{name: "given zero quantity should return quantity", input: line("1", 0), expectedFields: []string{"quantity"}},
		{name: "given quantity above max should return quantity", input: line("1", 10000), expectedFields: []string{"quantity"}},
		{name: "given quantity past int32 should return quantity", input: line("1", 1<<32+1), expectedFields: []string{"quantity"}},
		{name: "given sub cent price should return unitPrice", input: line("0.125", 1), expectedFields: []string{"unitPrice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.input)
			if len(tt.expectedFields) == 0 {
				assert.NoError(t, err)
				return
			}

			require.True(t, errors.Is(err, inErrors.ErrValidation))
			var validationErr *inErrors.ValidationError
			require.True(t, errors.As(err, &validationErr))
			actual := []string{}
			for _, f := range validationErr.Fields {
				actual = append(actual, f.Field)
			}
			assert.ElementsMatch(t, tt.expectedFields, actual)
		})
	}
}
