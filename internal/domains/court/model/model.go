package model

import "courtbook/shared/model"

const (
	TableName  = "courts"
	EntityName = "court"

	FieldID           = "id"
	FieldName         = "name"
	FieldAddress      = "address"
	FieldArea         = "area"
	FieldPricePerHour = "price_per_hour"
	FieldOpenTime     = "open_time"
	FieldCloseTime    = "close_time"
	FieldImage        = "image"
	FieldDescription  = "description"
	FieldActive       = "active"
)

// Price brackets used by the catalog filter. Boundaries are inclusive
// on the mid range: [80000, 100000].
const (
	PriceBracketLow  = "low"
	PriceBracketMid  = "mid"
	PriceBracketHigh = "high"

	PriceBracketMidMin int64 = 80000
	PriceBracketMidMax int64 = 100000
)

type Court struct {
	ID           string `db:"id"`
	Name         string `db:"name"`
	Address      string `db:"address"`
	Area         string `db:"area"`
	PricePerHour int64  `db:"price_per_hour"`
	OpenTime     string `db:"open_time"`
	CloseTime    string `db:"close_time"`
	Image        string `db:"image"`
	Description  string `db:"description"`
	Active       bool   `db:"active"`
	model.Metadata
}

// BracketFor classifies an hourly price into a catalog price bracket.
func BracketFor(pricePerHour int64) string {
	switch {
	case pricePerHour < PriceBracketMidMin:
		return PriceBracketLow
	case pricePerHour <= PriceBracketMidMax:
		return PriceBracketMid
	default:
		return PriceBracketHigh
	}
}
