// Package vat turns invoice line items, a discount and a VAT-type policy
// into a UAE-compliant tax breakdown. Pure computation, no I/O; callers
// supply the company's VAT settings snapshot.
package vat

import (
	"fmt"

	"github.com/qaydhq/qayd_backend/internal/apperrors"
	"github.com/qaydhq/qayd_backend/internal/core/domain"
	"github.com/qaydhq/qayd_backend/internal/utils/rounding"
	"github.com/shopspring/decimal"
)

// StandardRate is the UAE standard VAT rate (5%).
var StandardRate = decimal.New(5, -2)

// LineInput is one invoice line as supplied by the invoice flow.
type LineInput struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal // Line-level discount, absolute amount
	VatType     *domain.VatType // Nil -> invoice default applies
}

// InvoiceInput is the full input to a VAT computation.
type InvoiceInput struct {
	Lines         []LineInput
	VatType       domain.VatType  // Invoice-level default
	TotalDiscount decimal.Decimal // Subtracted from the taxable base only
	SupplierTRN   string
}

// LineBreakdown carries per-line amounts for receipt/PDF rendering.
type LineBreakdown struct {
	Description string
	VatType     domain.VatType
	Subtotal    decimal.Decimal
	VatAmount   decimal.Decimal
	LineTotal   decimal.Decimal
}

// Breakdown is the invoice-level result of a VAT computation.
type Breakdown struct {
	Lines             []LineBreakdown
	Subtotal          decimal.Decimal
	TaxableSubtotal   decimal.Decimal
	ZeroRatedSubtotal decimal.Decimal
	ExemptSubtotal    decimal.Decimal
	DiscountTotal     decimal.Decimal
	VatAmount         decimal.Decimal
	TotalWithVAT      decimal.Decimal
}

// ComputeInvoiceVat computes the compliant tax breakdown for an invoice.
//
// Per line: subtotal = quantity*unitPrice - discount, classified by the
// line's effective VAT type. The invoice-level discount is subtracted only
// from the taxable base, floored at zero, before the invoice-level VAT is
// computed. All rounding is half-to-even at two places.
//
// Returns apperrors.ErrValidation when VAT is enabled, a taxable amount is
// present and the supplier TRN is blank; this must block persistence.
func ComputeInvoiceVat(in InvoiceInput, settings domain.VatSettings) (*Breakdown, error) {
	if !domain.ValidVatType(in.VatType) {
		return nil, fmt.Errorf("%w: unknown vat type %q", apperrors.ErrValidation, in.VatType)
	}

	out := &Breakdown{
		Lines:             make([]LineBreakdown, 0, len(in.Lines)),
		TaxableSubtotal:   decimal.Zero,
		ZeroRatedSubtotal: decimal.Zero,
		ExemptSubtotal:    decimal.Zero,
		DiscountTotal:     in.TotalDiscount,
	}

	for i, line := range in.Lines {
		if line.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: quantity must be positive on line %d", apperrors.ErrValidation, i+1)
		}
		if line.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: unit price must not be negative on line %d", apperrors.ErrValidation, i+1)
		}
		if line.Discount.IsNegative() {
			return nil, fmt.Errorf("%w: discount must not be negative on line %d", apperrors.ErrValidation, i+1)
		}

		effType := in.VatType
		if line.VatType != nil {
			if !domain.ValidVatType(*line.VatType) {
				return nil, fmt.Errorf("%w: unknown vat type %q on line %d", apperrors.ErrValidation, *line.VatType, i+1)
			}
			effType = *line.VatType
		}

		lineSubtotal := line.Quantity.Mul(line.UnitPrice).Sub(line.Discount)
		lineVat := decimal.Zero

		switch effType {
		case domain.VatStandard:
			out.TaxableSubtotal = out.TaxableSubtotal.Add(lineSubtotal)
			lineVat = rounding.RoundAmount(lineSubtotal.Mul(StandardRate))
		case domain.VatZeroRated:
			out.ZeroRatedSubtotal = out.ZeroRatedSubtotal.Add(lineSubtotal)
		case domain.VatExempt:
			out.ExemptSubtotal = out.ExemptSubtotal.Add(lineSubtotal)
		}

		out.Lines = append(out.Lines, LineBreakdown{
			Description: line.Description,
			VatType:     effType,
			Subtotal:    lineSubtotal,
			VatAmount:   lineVat,
			LineTotal:   lineSubtotal.Add(lineVat),
		})
	}

	if settings.VatEnabled && out.TaxableSubtotal.IsPositive() && in.SupplierTRN == "" {
		return nil, fmt.Errorf("%w: supplier TRN required", apperrors.ErrValidation)
	}

	// The invoice-level VAT is computed on the discounted taxable base, not
	// by summing line VAT amounts; the per-line figures exist for rendering.
	taxableAfterDiscount := out.TaxableSubtotal.Sub(in.TotalDiscount)
	if taxableAfterDiscount.IsNegative() {
		taxableAfterDiscount = decimal.Zero
	}
	out.VatAmount = rounding.RoundAmount(taxableAfterDiscount.Mul(StandardRate))

	out.Subtotal = out.TaxableSubtotal.Add(out.ZeroRatedSubtotal).Add(out.ExemptSubtotal)
	out.TotalWithVAT = out.Subtotal.Sub(in.TotalDiscount).Add(out.VatAmount)

	return out, nil
}
