package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inRepository "github.com/Alturino/storefront/internal/repository"
)

func TestResponseOrder(t *testing.T) {
	ownerID := uuid.New()
	now := time.Now()
	order := inRepository.Order{
		ID:              uuid.New(),
		UserID:          &ownerID,
		Status:          inRepository.OrderStatusPENDING,
		Subtotal:        inRepository.NumericFromDecimal(decimal.NewFromInt(250)),
		Tax:             inRepository.NumericFromDecimal(decimal.RequireFromString("42.50")),
		ShippingFee:     inRepository.NumericFromDecimal(decimal.NewFromInt(30)),
		TaxRatePercent:  inRepository.NumericFromDecimal(decimal.NewFromInt(17)),
		Total:           inRepository.NumericFromDecimal(decimal.RequireFromString("322.50")),
		ShippingAddress: []byte(`{"firstName":"Dana","lastName":"Levi","city":"Haifa"}`),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	actual, err := ResponseOrder(order)
	require.NoError(t, err)

	assert.Equal(t, order.ID, actual.ID)
	assert.Equal(t, &ownerID, actual.OwnerID)
	assert.Equal(t, "PENDING", actual.Status)
	assert.True(t, decimal.RequireFromString("322.50").Equal(actual.Total))
	assert.Equal(t, "Dana", actual.ShippingAddress.FirstName)
	assert.Equal(t, "Haifa", actual.ShippingAddress.City)
}

func TestResponseOrderRejectsBadAddress(t *testing.T) {
	_, err := ResponseOrder(inRepository.Order{ShippingAddress: []byte("{")})
	assert.Error(t, err)
}
