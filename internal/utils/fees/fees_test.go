package fees_test

import (
	"testing"

	"github.com/clubworks/ledger_service/internal/utils/fees"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStripeBreakdown(t *testing.T) {
	// 100.00 gross: 1.4% + 0.25 = 1.65 net fee, 23% VAT = 0.38, total 2.03.
	b := fees.StripeBreakdown(decimal.NewFromInt(100))
	assert.Equal(t, "1.65", b.FeeNoVAT.StringFixed(2))
	assert.Equal(t, "0.38", b.FeeVAT.StringFixed(2))
	assert.Equal(t, "2.03", b.FeeTotal.StringFixed(2))
}

func TestStripeBreakdownComponentsSum(t *testing.T) {
	for _, gross := range []string{"10.00", "49.99", "250.00", "1234.56"} {
		b := fees.StripeBreakdown(decimal.RequireFromString(gross))
		assert.True(t, b.FeeTotal.Equal(b.FeeNoVAT.Add(b.FeeVAT)), "gross %s", gross)
	}
}
