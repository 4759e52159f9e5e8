package repository

import (
	"github.com/Alturino/storefront/internal/localize"
	inRepository "github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/product/pkg/response"
)

func ResponseProduct(row inRepository.FindProductByIdRow, lang localize.Language) response.Product {
	return response.Product{
		ID:           row.ID,
		CategoryID:   row.CategoryID,
		Name:         row.LocalizedName().Resolve(lang),
		Description:  row.LocalizedDescription().Resolve(lang),
		CategoryName: row.LocalizedCategoryName().Resolve(lang),
		Price:        inRepository.DecimalFromNumeric(row.Price),
		ImageURL:     row.ImageUrl,
		Quantity:     row.Quantity,
		Language:     lang,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
