package ledger_test

import (
	"testing"
	"time"

	"github.com/qaydhq/qayd_backend/internal/apperrors"
	"github.com/qaydhq/qayd_backend/internal/core/domain"
	"github.com/qaydhq/qayd_backend/internal/utils/ledger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func alloc(paymentID, amount string) domain.PaymentAllocation {
	return domain.PaymentAllocation{
		AllocationID:    "alloc-" + paymentID,
		PaymentID:       paymentID,
		InvoiceID:       "inv-1",
		AllocatedAmount: dec(amount),
	}
}

func TestRecalculateAmountsCountsPendingAndConfirmed(t *testing.T) {
	allocations := []domain.PaymentAllocation{
		alloc("p1", "40"),
		alloc("p2", "30"),
		alloc("p3", "20"),
	}
	statuses := map[string]domain.PaymentStatus{
		"p1": domain.PaymentConfirmed,
		"p2": domain.PaymentPending,
		"p3": domain.PaymentRefunded,
	}

	paid, outstanding := ledger.RecalculateAmounts(dec("100"), allocations, statuses)
	assert.True(t, paid.Equal(dec("70")), "paid %s", paid)
	assert.True(t, outstanding.Equal(dec("30")), "outstanding %s", outstanding)
}

func TestRecalculateExcludesTerminalStatuses(t *testing.T) {
	for _, status := range []domain.PaymentStatus{
		domain.PaymentFailed, domain.PaymentCancelled, domain.PaymentRefunded,
	} {
		paid, outstanding := ledger.RecalculateAmounts(dec("100"),
			[]domain.PaymentAllocation{alloc("p1", "100")},
			map[string]domain.PaymentStatus{"p1": status})
		assert.True(t, paid.IsZero(), "status %s should not count", status)
		assert.True(t, outstanding.Equal(dec("100")))
	}
}

func TestRecalculateIsIdempotent(t *testing.T) {
	allocations := []domain.PaymentAllocation{alloc("p1", "60"), alloc("p2", "15.55")}
	statuses := map[string]domain.PaymentStatus{
		"p1": domain.PaymentConfirmed,
		"p2": domain.PaymentPending,
	}

	paid1, out1 := ledger.RecalculateAmounts(dec("100"), allocations, statuses)
	paid2, out2 := ledger.RecalculateAmounts(dec("100"), allocations, statuses)
	assert.True(t, paid1.Equal(paid2))
	assert.True(t, out1.Equal(out2))
}

func TestRecalculateClampsOutstandingAtZero(t *testing.T) {
	// Overshoot within epsilon tolerance still clamps to zero.
	paid, outstanding := ledger.RecalculateAmounts(dec("100"),
		[]domain.PaymentAllocation{alloc("p1", "100.01")},
		map[string]domain.PaymentStatus{"p1": domain.PaymentConfirmed})
	assert.True(t, paid.Equal(dec("100.01")))
	assert.True(t, outstanding.IsZero())
}

func TestRecalculateSkipsOrphanedAllocations(t *testing.T) {
	paid, _ := ledger.RecalculateAmounts(dec("100"),
		[]domain.PaymentAllocation{alloc("ghost", "50")},
		map[string]domain.PaymentStatus{})
	assert.True(t, paid.IsZero())
}

func TestBalanceInvariant(t *testing.T) {
	assert.NoError(t, ledger.CheckBalanceInvariant(dec("100"), dec("70"), dec("30")))
	assert.NoError(t, ledger.CheckBalanceInvariant(dec("100"), dec("70.004"), dec("30")))
	assert.NoError(t, ledger.CheckBalanceInvariant(dec("100"), dec("100.01"), decimal.Zero))

	err := ledger.CheckBalanceInvariant(dec("100"), dec("50"), dec("30"))
	assert.ErrorIs(t, err, apperrors.ErrConsistency)
}

func TestDeriveStatusAfterRecalc(t *testing.T) {
	cases := []struct {
		name        string
		current     domain.InvoiceStatus
		outstanding string
		want        domain.InvoiceStatus
	}{
		{"sent settles to paid", domain.InvoiceSent, "0", domain.InvoicePaid},
		{"viewed settles to paid", domain.InvoiceViewed, "0.01", domain.InvoicePaid},
		{"overdue settles to paid", domain.InvoiceOverdue, "0", domain.InvoicePaid},
		{"sent stays sent while owing", domain.InvoiceSent, "25", domain.InvoiceSent},
		{"draft never auto-paid", domain.InvoiceDraft, "0", domain.InvoiceDraft},
		{"cancelled is terminal", domain.InvoiceCancelled, "0", domain.InvoiceCancelled},
		{"paid reopens when balance returns", domain.InvoicePaid, "100", domain.InvoiceSent},
		{"paid stays paid when settled", domain.InvoicePaid, "0", domain.InvoicePaid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ledger.DeriveStatusAfterRecalc(tc.current, dec(tc.outstanding))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDeriveReadStatusLazyOverdue(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -5)
	future := now.AddDate(0, 0, 5)

	assert.Equal(t, domain.InvoiceOverdue,
		ledger.DeriveReadStatus(domain.InvoiceSent, dec("50"), past, now))
	assert.Equal(t, domain.InvoiceOverdue,
		ledger.DeriveReadStatus(domain.InvoiceViewed, dec("50"), past, now))
	assert.Equal(t, domain.InvoiceSent,
		ledger.DeriveReadStatus(domain.InvoiceSent, dec("50"), future, now))

	// Cancelled and paid invoices are never auto-marked overdue.
	assert.Equal(t, domain.InvoiceCancelled,
		ledger.DeriveReadStatus(domain.InvoiceCancelled, dec("50"), past, now))
	assert.Equal(t, domain.InvoicePaid,
		ledger.DeriveReadStatus(domain.InvoicePaid, decimal.Zero, past, now))
	assert.Equal(t, domain.InvoiceDraft,
		ledger.DeriveReadStatus(domain.InvoiceDraft, dec("50"), past, now))

	// Stale overdue flags self-correct on read.
	assert.Equal(t, domain.InvoicePaid,
		ledger.DeriveReadStatus(domain.InvoiceOverdue, decimal.Zero, past, now))
	assert.Equal(t, domain.InvoiceSent,
		ledger.DeriveReadStatus(domain.InvoiceOverdue, dec("50"), future, now))
}

func TestValidExplicitTransition(t *testing.T) {
	assert.True(t, ledger.ValidExplicitTransition(domain.InvoiceDraft, domain.InvoiceSent))
	assert.True(t, ledger.ValidExplicitTransition(domain.InvoiceSent, domain.InvoiceViewed))
	assert.True(t, ledger.ValidExplicitTransition(domain.InvoiceDraft, domain.InvoiceCancelled))
	assert.True(t, ledger.ValidExplicitTransition(domain.InvoiceSent, domain.InvoiceCancelled))

	assert.False(t, ledger.ValidExplicitTransition(domain.InvoicePaid, domain.InvoiceCancelled))
	assert.False(t, ledger.ValidExplicitTransition(domain.InvoiceViewed, domain.InvoiceCancelled))
	assert.False(t, ledger.ValidExplicitTransition(domain.InvoiceSent, domain.InvoiceSent))
	assert.False(t, ledger.ValidExplicitTransition(domain.InvoiceDraft, domain.InvoicePaid))
}
