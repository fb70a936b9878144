package forms

import (
	"strings"

	"github.com/shopspring/decimal"
)

// InvoiceTotals carries the derived aggregates for an invoice. They are
// recomputed from content on every read and never persisted.
type InvoiceTotals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
	Total     decimal.Decimal `json:"total"`
}

var oneHundred = decimal.NewFromInt(100)

// ParseAmount parses a stored numeric string leniently: blank or unparsable
// values count as zero.
func ParseAmount(value string) decimal.Decimal {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return decimal.Zero
	}
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// LineTotal computes quantity times unit price for one item.
func LineTotal(item LineItem) decimal.Decimal {
	return ParseAmount(item.Quantity).Mul(ParseAmount(item.UnitPrice))
}

// ComputeInvoiceTotals derives subtotal, tax, and grand total from the
// current items and the terms.taxRate percentage.
func ComputeInvoiceTotals(content *Content) InvoiceTotals {
	subtotal := decimal.Zero
	for _, item := range content.Items() {
		subtotal = subtotal.Add(LineTotal(item))
	}

	taxRate := ParseAmount(content.Field("terms", "taxRate"))
	taxAmount := subtotal.Mul(taxRate).Div(oneHundred)

	return InvoiceTotals{
		Subtotal:  subtotal,
		TaxRate:   taxRate,
		TaxAmount: taxAmount,
		Total:     subtotal.Add(taxAmount),
	}
}
