package domain

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// lenientDecimal reads a JSON number or numeric string. Anything else,
// including a missing field, reads as zero.
func lenientDecimal(raw json.RawMessage) decimal.Decimal {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return decimal.Zero
	}

	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return decimal.Zero
		}
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func lenientInt(raw json.RawMessage) int {
	return int(lenientDecimal(raw).IntPart())
}

func lenientFloat(raw json.RawMessage) float64 {
	return lenientDecimal(raw).InexactFloat64()
}

// UnmarshalJSON decodes a cart line, reading price, originalPrice and quantity
// leniently so one mistyped number does not reject the line.
func (c *CartItem) UnmarshalJSON(data []byte) error {
	type plain CartItem
	var aux struct {
		plain
		Price         json.RawMessage `json:"price"`
		OriginalPrice json.RawMessage `json:"originalPrice"`
		Quantity      json.RawMessage `json:"quantity"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*c = CartItem(aux.plain)
	c.Price = lenientDecimal(aux.Price)
	c.OriginalPrice = lenientDecimal(aux.OriginalPrice)
	c.Quantity = lenientInt(aux.Quantity)
	return nil
}

// UnmarshalJSON decodes a wishlist entry, reading price and rating leniently.
func (w *WishlistItem) UnmarshalJSON(data []byte) error {
	type plain WishlistItem
	var aux struct {
		plain
		Price  json.RawMessage `json:"price"`
		Rating json.RawMessage `json:"rating"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*w = WishlistItem(aux.plain)
	w.Price = lenientDecimal(aux.Price)
	w.Rating = lenientFloat(aux.Rating)
	return nil
}
