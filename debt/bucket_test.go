package debt

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/cardops/backoffice/calendar"
	"github.com/cardops/backoffice/money"
)

func TestDebtBucket_HasDebt(t *testing.T) {
	b := DebtBucket{BucketID: "b1", Type: Purchase, CurrentBalance: money.DecimalAmountFromInt(100)}
	assert.True(t, b.HasDebt())

	zero := DebtBucket{BucketID: "b2", Type: Purchase, CurrentBalance: money.Zero}
	assert.True(t, !zero.HasDebt())
}

func TestDebtBucket_Validate(t *testing.T) {
	valid := DebtBucket{
		BucketID:       "b1",
		Type:           Overdue,
		CurrentBalance: money.DecimalAmountFromInt(200),
		MinimumPayment: money.DecimalAmountFromInt(200),
		AnnualRate:     money.MustParseDecimalAmount("0.1"),
		DueDate:        calendar.MustParseDate("2026-02-01"),
	}
	assert.NoError(t, valid.Validate())

	negative := valid
	negative.CurrentBalance = money.DecimalAmountFromInt(-1)
	assert.Error(t, negative.Validate())

	badType := valid
	badType.Type = BucketType(99)
	assert.Error(t, badType.Validate())
}

func TestBucketType_PriorityOrder(t *testing.T) {
	assert.True(t, Overdue.Priority() < FeesInterest.Priority())
	assert.True(t, FeesInterest.Priority() < CashAdvance.Priority())
	assert.True(t, CashAdvance.Priority() < Purchase.Priority())
	assert.True(t, Purchase.Priority() < Installment.Priority())
}

func TestBucketType_String(t *testing.T) {
	assert.Equal(t, Overdue.String(), "OVERDUE")
	assert.Equal(t, Installment.String(), "INSTALLMENT")
}
