package model

import "github.com/shopspring/decimal"

// Item is a single inventory record.
type Item struct {
	ID           int64
	Name         string
	ItemNumber   int64
	Price        decimal.Decimal
	Quantity     int
	DateAcquired Date
}

// Item field limits.
const (
	MaxQuantity       = 5000
	PriceMaxDigits    = 10
	PriceDecimalPlace = 2
)

func (i Item) String() string {
	return i.Name
}
