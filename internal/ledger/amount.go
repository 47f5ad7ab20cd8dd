package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/pigeonworks-llc/gnucash-lite/internal/models"
)

// maxScale bounds the fraction denominator at 10^9.
const maxScale = 9

var (
	// maxAmount is the exclusive bound on the magnitude of a split amount.
	maxAmount = decimal.RequireFromString("99999999.99")

	// tolerance is the largest split sum still treated as balanced.
	tolerance = decimal.New(1, -9)
)

// storedAmount rounds amount to the precision splits are stored at.
func storedAmount(amount decimal.Decimal) decimal.Decimal {
	if -amount.Exponent() > maxScale {
		return amount.Round(maxScale)
	}
	return amount
}

// fraction returns amount as value_num / value_denom with
// value_denom = 10^scale.
func fraction(amount decimal.Decimal) (num, denom int64) {
	scale := -amount.Exponent()
	if scale < 0 {
		scale = 0
	}
	if scale > maxScale {
		scale = maxScale
		amount = amount.Round(maxScale)
	}
	denom = decimal.New(1, scale).IntPart()
	num = amount.Shift(scale).IntPart()
	return num, denom
}

// CheckBalance totals the debits (positive amounts) and credits (negative
// amounts) of a set of splits.
func CheckBalance(splits []models.CreateSplitRequest) models.BalanceCheck {
	debits, credits := decimal.Zero, decimal.Zero
	for _, sp := range splits {
		if sp.Amount.IsPositive() {
			debits = debits.Add(sp.Amount)
		} else {
			credits = credits.Add(sp.Amount.Neg())
		}
	}

	diff := debits.Sub(credits)
	return models.BalanceCheck{
		DebitTotal:  debits,
		CreditTotal: credits,
		Difference:  diff,
		IsBalanced:  diff.Abs().LessThanOrEqual(tolerance),
	}
}

// natural converts a raw debit-positive balance to the sign a statement
// shows for the account type.
func natural(t models.AccountType, raw decimal.Decimal) decimal.Decimal {
	if t.DebitNormal() {
		return raw
	}
	return raw.Neg()
}

// growthRate returns the change from prev to cur in percent, or zero when
// prev is zero.
func growthRate(cur, prev decimal.Decimal) decimal.Decimal {
	if prev.IsZero() {
		return decimal.Zero
	}
	return cur.Sub(prev).Div(prev.Abs()).Mul(decimal.NewFromInt(100)).Round(2)
}
