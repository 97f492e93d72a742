package cart

import (
	"github.com/shopspring/decimal"

	"github.com/lumafood/storefront-api/internal/prices"
	"github.com/lumafood/storefront-api/pkg/money"
)

// FallbackTotal is shown when no catalog is available: the provider still
// computes the real total on its hosted payment page.
const FallbackTotal = "Total calculated at checkout"

// Row is one rendered cart line. UnitPrice and LineTotal are empty when the
// catalog has no record for the line's price identifier.
type Row struct {
	Label     string
	Qty       int
	UnitPrice string
	LineTotal string
}

// View projects the cart plus best-effort pricing data into displayable
// state.
type View struct {
	Rows        []Row
	Subtotal    string
	HasUnpriced bool
	Empty       bool
}

// BuildView renders the given cart snapshot against the catalog. A nil
// catalog (not loaded, or the fetch failed) yields the checkout-time
// fallback instead of a computed subtotal. Lines missing from a loaded
// catalog are listed without prices and flagged via HasUnpriced.
func BuildView(lines []Line, catalog prices.Catalog) View {
	if len(lines) == 0 {
		return View{Empty: true, Subtotal: FallbackTotal}
	}

	view := View{Rows: make([]Row, 0, len(lines))}

	subtotal := decimal.Zero
	subtotalCurrency := ""
	anyPriced := false

	for _, line := range lines {
		row := Row{Label: line.Label, Qty: line.Qty}

		record, ok := catalog[line.PriceID]
		if ok {
			if unit, err := decimal.NewFromString(record.Amount); err == nil {
				total := unit.Mul(decimal.NewFromInt(int64(line.Qty)))
				row.UnitPrice = money.FormatDisplay(record.Amount, record.Currency)
				row.LineTotal = money.FormatDisplay(total.StringFixed(2), record.Currency)

				subtotal = subtotal.Add(total)
				if subtotalCurrency == "" {
					subtotalCurrency = record.Currency
				}
				anyPriced = true
			} else {
				ok = false
			}
		}
		if !ok {
			view.HasUnpriced = true
		}

		view.Rows = append(view.Rows, row)
	}

	if catalog == nil || !anyPriced {
		view.Subtotal = FallbackTotal
		return view
	}

	view.Subtotal = money.FormatDisplay(subtotal.StringFixed(2), subtotalCurrency)
	return view
}
