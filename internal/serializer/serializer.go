// Package serializer converts items between their stored and wire forms and
// enforces the write-time business rules.
package serializer

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/erazemk/storeapi/internal/model"
)

// ItemResponse is the wire representation of an item.
type ItemResponse struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	ItemNumber   int64      `json:"item_number"`
	Price        string     `json:"price"`
	Quantity     int        `json:"quantity"`
	DateAcquired model.Date `json:"date_acquired"`
	Description  string     `json:"description"`
}

// ItemInput is the accepted request body for create and update. Pointer
// fields tell a missing field apart from a zero value.
type ItemInput struct {
	Name         *string          `json:"name" validate:"required,max=100"`
	ItemNumber   *int64           `json:"item_number" validate:"required"`
	Price        *decimal.Decimal `json:"price" validate:"required"`
	Quantity     *int             `json:"quantity" validate:"required"`
	DateAcquired *model.Date      `json:"date_acquired" validate:"required"`
}

// Describe returns the derived description of an item.
func Describe(item model.Item) string {
	return fmt.Sprintf("This Item is called %s and there is %d available.", item.Name, item.Quantity)
}

// Serialize returns the wire representation of item.
func Serialize(item model.Item) ItemResponse {
	return ItemResponse{
		ID:           item.ID,
		Name:         item.Name,
		ItemNumber:   item.ItemNumber,
		Price:        item.Price.StringFixed(model.PriceDecimalPlace),
		Quantity:     item.Quantity,
		DateAcquired: item.DateAcquired,
		Description:  Describe(item),
	}
}

// SerializeAll serializes items in order. The result is never nil.
func SerializeAll(items []model.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, Serialize(item))
	}
	return out
}
