package model

import "github.com/shopspring/decimal"

// Monetary and quantity columns carry a fixed scale. Values are quantized in
// BeforeSave hooks so the stored value, not just its rendering, honors the
// declared decimal places.
const (
	scaleMoney    int32 = 2
	scalePrice    int32 = 4
	scaleQuantity int32 = 8
)

func roundPtr(d *decimal.Decimal, places int32) *decimal.Decimal {
	if d == nil {
		return nil
	}
	r := d.Round(places)
	return &r
}
