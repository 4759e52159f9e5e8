package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Alturino/storefront/internal/localize"
	inRepository "github.com/Alturino/storefront/internal/repository"
)

func ptr(s string) *string {
	return &s
}

func TestResponseProduct(t *testing.T) {
	row := inRepository.FindProductByIdRow{
		ID:            uuid.New(),
		Name:          ptr("Ring (legacy)"),
		NameEn:        ptr("Ring"),
		NameHe:        ptr("טבעת"),
		DescriptionEn: ptr("Gold ring"),
		Price:         inRepository.NumericFromDecimal(decimal.RequireFromString("100.00")),
		CategoryName:  ptr("Jewelry"),
	}

	tests := []struct {
		name                 string
		lang                 localize.Language
		expectedName         string
		expectedDescription  string
		expectedCategoryName string
	}{
		{
			name:                 "given english should use primary fields",
			lang:                 localize.English,
			expectedName:         "Ring",
			expectedDescription:  "Gold ring",
			expectedCategoryName: "Jewelry",
		},
		{
			name:                 "given hebrew should use secondary then fall back",
			lang:                 localize.Hebrew,
			expectedName:         "טבעת",
			expectedDescription:  "Gold ring",
			expectedCategoryName: "Jewelry",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := ResponseProduct(row, tt.lang)

			assert.Equal(t, tt.expectedName, product.Name)
			assert.Equal(t, tt.expectedDescription, product.Description)
			assert.Equal(t, tt.expectedCategoryName, product.CategoryName)
			assert.Equal(t, tt.lang, product.Language)
			assert.True(t, decimal.NewFromInt(100).Equal(product.Price))
		})
	}
}
