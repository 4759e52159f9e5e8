package repository

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/Alturino/storefront/internal/localize"
)

func NumericFromDecimal(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{
		Int:              d.Coefficient(),
		Exp:              d.Exponent(),
		InfinityModifier: pgtype.Finite,
		NaN:              false,
		Valid:            true,
	}
}

func DecimalFromNumeric(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func (p Product) LocalizedName() localize.Text {
	return localize.FromNullable(p.NameEn, p.NameHe, p.Name)
}

func (p Product) LocalizedDescription() localize.Text {
	return localize.FromNullable(p.DescriptionEn, p.DescriptionHe, p.Description)
}

func (p FindProductByIdRow) LocalizedName() localize.Text {
	return localize.FromNullable(p.NameEn, p.NameHe, p.Name)
}

func (p FindProductByIdRow) LocalizedDescription() localize.Text {
	return localize.FromNullable(p.DescriptionEn, p.DescriptionHe, p.Description)
}

func (p FindProductByIdRow) LocalizedCategoryName() localize.Text {
	return localize.FromNullable(p.CategoryNameEn, p.CategoryNameHe, p.CategoryName)
}

func (c Category) LocalizedName() localize.Text {
	return localize.FromNullable(c.NameEn, c.NameHe, c.Name)
}

func (c Category) LocalizedDescription() localize.Text {
	return localize.FromNullable(c.DescriptionEn, c.DescriptionHe, c.Description)
}
