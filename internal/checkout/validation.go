package checkout

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	pkgerrors "github.com/lumafood/storefront-api/pkg/errors"
)

// pricePrefix is the literal prefix Stripe puts on every price identifier.
// Anything else is not a sellable price point.
const pricePrefix = "price_"

// CandidateItem is one client-submitted entry before validation. The price
// and quantity fields are of unspecified type: the storefront sends
// "quantity" while older payloads send "qty", and either may be a number or
// a numeric string.
type CandidateItem struct {
	Price    any `json:"price"`
	Qty      any `json:"qty"`
	Quantity any `json:"quantity"`
}

// LineItem is a validated entry: a prefixed price identifier and a positive
// integer quantity.
type LineItem struct {
	Price    string
	Quantity int64
}

// ValidateItems filters candidates down to well-formed line items, order
// preserved. Malformed entries among otherwise-valid ones are dropped
// silently rather than failing the whole request.
func ValidateItems(items []CandidateItem) ([]LineItem, error) {
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "no items provided")
	}

	valid := make([]LineItem, 0, len(items))
	for _, item := range items {
		price, ok := item.Price.(string)
		if !ok || !strings.HasPrefix(price, pricePrefix) {
			continue
		}

		qty, ok := coerceQuantity(firstPresent(item.Qty, item.Quantity))
		if !ok {
			continue
		}
		quantity := int64(math.Floor(qty))
		if quantity < 1 {
			continue
		}

		valid = append(valid, LineItem{Price: price, Quantity: quantity})
	}

	if len(valid) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNoValidItems, "no valid items provided")
	}
	return valid, nil
}

func firstPresent(values ...any) any {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

// coerceQuantity mirrors loose numeric coercion: JSON numbers pass through,
// numeric strings parse, everything else is rejected. Non-finite values are
// never accepted.
func coerceQuantity(raw any) (float64, bool) {
	var qty float64
	switch v := raw.(type) {
	case float64:
		qty = v
	case int:
		qty = float64(v)
	case int64:
		qty = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		qty = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		qty = parsed
	default:
		return 0, false
	}

	if math.IsNaN(qty) || math.IsInf(qty, 0) {
		return 0, false
	}
	return qty, true
}
