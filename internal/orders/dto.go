package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenpharma/greenpharma-backend/pkg/db/models"
	"github.com/greenpharma/greenpharma-backend/pkg/enums"
)

// ItemDTO is one purchased line snapshot.
type ItemDTO struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       *uuid.UUID      `json:"product_id,omitempty"`
	ProductName     string          `json:"product_name"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// OrderDTO is the external representation of an order.
type OrderDTO struct {
	ID                uuid.UUID         `json:"id"`
	CustomerProfileID uuid.UUID         `json:"customer_profile_id"`
	Status            enums.OrderStatus `json:"status"`
	Items             []ItemDTO         `json:"items"`
	Total             decimal.Decimal   `json:"total"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// NewOrderDTO maps the order model plus its items to a DTO. The total is
// derived from the immutable item snapshots.
func NewOrderDTO(order *models.Order) *OrderDTO {
	dto := &OrderDTO{
		ID:                order.ID,
		CustomerProfileID: order.CustomerProfileID,
		Status:            order.Status,
		Items:             make([]ItemDTO, 0, len(order.Items)),
		Total:             decimal.Zero,
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
	}
	for i := range order.Items {
		item := &order.Items[i]
		lineTotal := item.PriceAtPurchase.Mul(decimal.NewFromInt(int64(item.Quantity)))
		dto.Items = append(dto.Items, ItemDTO{
			ID:              item.ID,
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.PriceAtPurchase,
			LineTotal:       lineTotal,
		})
		dto.Total = dto.Total.Add(lineTotal)
	}
	return dto
}
