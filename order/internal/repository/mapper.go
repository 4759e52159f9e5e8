package repository

import (
	"encoding/json"
	"fmt"

	inRepository "github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/order/pkg/request"
	"github.com/Alturino/storefront/order/pkg/response"
	"github.com/Alturino/storefront/order/pkg/status"
)

func ResponseOrder(o inRepository.Order) (response.Order, error) {
	address := request.ShippingAddress{}
	if err := json.Unmarshal(o.ShippingAddress, &address); err != nil {
		return response.Order{}, fmt.Errorf("failed unmarshaling shipping address with error=%w", err)
	}
	return response.Order{
		ID:               o.ID,
		OwnerID:          o.UserID,
		Status:           string(o.Status),
		Subtotal:         inRepository.DecimalFromNumeric(o.Subtotal),
		Tax:              inRepository.DecimalFromNumeric(o.Tax),
		ShippingFee:      inRepository.DecimalFromNumeric(o.ShippingFee),
		TaxRatePercent:   inRepository.DecimalFromNumeric(o.TaxRatePercent),
		Total:            inRepository.DecimalFromNumeric(o.Total),
		ShippingAddress:  address,
		PaymentReference: o.PaymentReference,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}, nil
}

func ResponseOrderItems(items []inRepository.OrderItem) []response.OrderItem {
	res := make([]response.OrderItem, 0, len(items))
	for _, i := range items {
		res = append(res, response.OrderItem{
			ID:              i.ID,
			OrderID:         i.OrderID,
			ProductID:       i.ProductID,
			DisplayName:     i.DisplayName,
			Quantity:        i.Quantity,
			PriceAtPurchase: inRepository.DecimalFromNumeric(i.Price),
		})
	}
	return res
}

func RepositoryStatus(s status.Status) inRepository.OrderStatus {
	return inRepository.OrderStatus(s)
}
