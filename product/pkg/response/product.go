package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Alturino/storefront/internal/localize"
)

// Product is a catalog product with its localizable fields already resolved
// for Language.
type Product struct {
	ID           uuid.UUID         `json:"id"`
	CategoryID   *uuid.UUID        `json:"categoryId,omitempty"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	CategoryName string            `json:"categoryName,omitempty"`
	Price        decimal.Decimal   `json:"price"`
	ImageURL     string            `json:"imageUrl"`
	Quantity     int32             `json:"quantity"`
	Language     localize.Language `json:"language"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}
