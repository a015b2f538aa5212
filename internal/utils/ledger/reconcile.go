// Package ledger holds the authoritative paid/outstanding recalculation and
// invoice status derivation rules. The helpers are used in both services and
// repositories to ensure the same arithmetic runs everywhere, including
// inside database transactions.
package ledger

import (
	"fmt"
	"time"

	"github.com/qaydhq/qayd_backend/internal/apperrors"
	"github.com/qaydhq/qayd_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Epsilon absorbs rounding drift when comparing monetary amounts.
var Epsilon = decimal.New(1, -2) // 0.01

// RecalculateAmounts derives an invoice's paid and outstanding amounts from
// the full allocation history. Allocations whose payment is failed,
// cancelled or refunded are excluded. Idempotent over its inputs.
func RecalculateAmounts(totalWithVAT decimal.Decimal, allocations []domain.PaymentAllocation, paymentStatus map[string]domain.PaymentStatus) (paid, outstanding decimal.Decimal) {
	paid = decimal.Zero
	for _, alloc := range allocations {
		status, ok := paymentStatus[alloc.PaymentID]
		if !ok {
			continue // orphaned allocation; contributes nothing
		}
		if status == domain.PaymentPending || status == domain.PaymentConfirmed {
			paid = paid.Add(alloc.AllocatedAmount)
		}
	}

	outstanding = totalWithVAT.Sub(paid)
	if outstanding.IsNegative() {
		outstanding = decimal.Zero
	}
	return paid, outstanding
}

// CheckBalanceInvariant verifies paid + outstanding == totalWithVAT within
// Epsilon. A violation means the recalculation itself is broken; callers
// must abort their transaction rather than persist the result.
func CheckBalanceInvariant(totalWithVAT, paid, outstanding decimal.Decimal) error {
	diff := paid.Add(outstanding).Sub(totalWithVAT).Abs()
	// An overpaid invoice legitimately carries paid > total with outstanding
	// clamped to zero, which the epsilon alone would reject.
	if outstanding.IsZero() && paid.GreaterThanOrEqual(totalWithVAT) {
		return nil
	}
	if diff.GreaterThan(Epsilon) {
		return fmt.Errorf("%w: paid %s + outstanding %s does not equal total %s",
			apperrors.ErrConsistency, paid, outstanding, totalWithVAT)
	}
	return nil
}

// IsSettled reports whether an outstanding amount counts as fully paid.
func IsSettled(outstanding decimal.Decimal) bool {
	return outstanding.LessThanOrEqual(Epsilon)
}

// DeriveStatusAfterRecalc returns the invoice status implied by a fresh
// recalculation. Paid and cancelled are terminal for automatic transitions;
// draft invoices keep their status even when prepaid.
func DeriveStatusAfterRecalc(current domain.InvoiceStatus, outstanding decimal.Decimal) domain.InvoiceStatus {
	switch current {
	case domain.InvoiceSent, domain.InvoiceViewed, domain.InvoiceOverdue:
		if IsSettled(outstanding) {
			return domain.InvoicePaid
		}
	case domain.InvoicePaid:
		// A refund or cancellation can reopen a paid invoice.
		if !IsSettled(outstanding) {
			return domain.InvoiceSent
		}
	}
	return current
}

// DeriveReadStatus applies the lazy overdue rule at read time: an unpaid,
// uncancelled invoice past its due date reads as overdue, and a stale
// overdue flag self-corrects when the due date moved or the balance
// settled since it was written.
func DeriveReadStatus(current domain.InvoiceStatus, outstanding decimal.Decimal, dueDate, now time.Time) domain.InvoiceStatus {
	switch current {
	case domain.InvoiceSent, domain.InvoiceViewed:
		if IsSettled(outstanding) {
			return domain.InvoicePaid
		}
		if now.After(dueDate) {
			return domain.InvoiceOverdue
		}
	case domain.InvoiceOverdue:
		if IsSettled(outstanding) {
			return domain.InvoicePaid
		}
		if !now.After(dueDate) {
			return domain.InvoiceSent
		}
	}
	return current
}

// ValidExplicitTransition reports whether a caller-driven invoice status
// change is allowed.
func ValidExplicitTransition(from, to domain.InvoiceStatus) bool {
	switch to {
	case domain.InvoiceSent:
		return from == domain.InvoiceDraft
	case domain.InvoiceViewed:
		return from == domain.InvoiceSent
	case domain.InvoiceCancelled:
		return from == domain.InvoiceDraft || from == domain.InvoiceSent
	}
	return false
}
