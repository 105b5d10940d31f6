// Package fees breaks processor charges out of gross receipts so they can be
// posted as their own journal lines.
package fees

import "github.com/shopspring/decimal"

// Stripe's standard European card pricing plus Irish VAT on the fee.
var (
	defaultPct   = decimal.RequireFromString("0.014")
	defaultFixed = decimal.RequireFromString("0.25")
	defaultVAT   = decimal.RequireFromString("0.23")
)

// Breakdown is a processor fee split into its net, VAT and total components.
// Each component is rounded to 2dp independently, matching how the processor
// itself reports them.
type Breakdown struct {
	FeeNoVAT decimal.Decimal
	FeeVAT   decimal.Decimal
	FeeTotal decimal.Decimal
}

// StripeBreakdown computes the fee taken from a gross Stripe receipt.
func StripeBreakdown(gross decimal.Decimal) Breakdown {
	feeNoVAT := gross.Mul(defaultPct).Add(defaultFixed).Round(2)
	feeVAT := feeNoVAT.Mul(defaultVAT).Round(2)
	return Breakdown{
		FeeNoVAT: feeNoVAT,
		FeeVAT:   feeVAT,
		FeeTotal: feeNoVAT.Add(feeVAT).Round(2),
	}
}
