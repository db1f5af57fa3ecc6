package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenpharma/greenpharma-backend/internal/catalog"
	"github.com/greenpharma/greenpharma-backend/pkg/db/models"
	"github.com/greenpharma/greenpharma-backend/pkg/pricing"
)

// LineDTO is one cart entry with its derived line total.
type LineDTO struct {
	ID        uuid.UUID           `json:"id"`
	Product   *catalog.ProductDTO `json:"product"`
	Quantity  int                 `json:"quantity"`
	UnitPrice decimal.Decimal     `json:"unit_price"`
	LineTotal decimal.Decimal     `json:"line_total"`
}

// CartDTO is the whole cart with its derived grand total.
type CartDTO struct {
	Lines      []LineDTO       `json:"lines"`
	TotalItems int             `json:"total_items"`
	Total      decimal.Decimal `json:"total"`
}

// NewLineDTO maps a cart line plus its product to a DTO as of the given time.
func NewLineDTO(line *models.CartLine, asOf time.Time) LineDTO {
	dto := LineDTO{
		ID:       line.ID,
		Quantity: line.Quantity,
	}
	if line.Product != nil {
		dto.Product = catalog.NewProductDTO(line.Product, asOf)
		dto.UnitPrice = pricing.EffectivePrice(line.Product.Price, line.Product.OfferPercent)
		dto.LineTotal = dto.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
	}
	return dto
}

// NewCartDTO assembles the cart DTO from its lines.
func NewCartDTO(lines []models.CartLine, asOf time.Time) *CartDTO {
	dto := &CartDTO{
		Lines: make([]LineDTO, 0, len(lines)),
		Total: decimal.Zero,
	}
	for i := range lines {
		line := NewLineDTO(&lines[i], asOf)
		dto.Lines = append(dto.Lines, line)
		dto.TotalItems += line.Quantity
		dto.Total = dto.Total.Add(line.LineTotal)
	}
	return dto
}
