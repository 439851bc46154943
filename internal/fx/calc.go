// Package fx implements the payout calculator: the deterministic breakdown of
// an inbound foreign-currency payment into fee, tax and net local payout.
package fx

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/remitbase/settlement/internal/entity"
)

// Policy holds the per-transaction pricing constants.
type Policy struct {
	FlatFee decimal.Decimal // Charged in the payment's source currency.
	TaxRate decimal.Decimal // Applied to the converted fee (GST on fee).
}

func DefaultPolicy() Policy {
	return Policy{
		FlatFee: decimal.RequireFromString("29.00"),
		TaxRate: decimal.RequireFromString("0.18"),
	}
}

// CalculatePayout converts a principal received in a foreign currency into the
// settlement-currency payout:
//
//	net_foreign     = principal - flat_fee
//	gross           = round2(net_foreign * rate)
//	fee_settlement  = round2(flat_fee * rate)
//	tax_on_fee      = round2(fee_settlement * tax_rate)
//	net_payout      = round2(gross - tax_on_fee)
//
// Rounding is half-up to 2 decimals after each monetary multiplication, not at
// the end. Pure given its inputs: the rate is locked by the caller.
func (p Policy) CalculatePayout(principal decimal.Decimal, currency string, rate decimal.Decimal) (entity.PayoutBreakdown, error) {
	if !principal.IsPositive() {
		return entity.PayoutBreakdown{}, fmt.Errorf("%w: principal %s must be positive", entity.ErrInvalidArgument, principal)
	}

	if !rate.IsPositive() {
		return entity.PayoutBreakdown{}, fmt.Errorf("%w: rate %s must be positive", entity.ErrInvalidArgument, rate)
	}

	netForeign := principal.Sub(p.FlatFee)

	gross := round2(netForeign.Mul(rate))
	feeInSettlement := round2(p.FlatFee.Mul(rate))
	taxOnFee := round2(feeInSettlement.Mul(p.TaxRate))
	netPayout := round2(gross.Sub(taxOnFee))

	return entity.PayoutBreakdown{
		PrincipalAmount: principal,
		Currency:        currency,
		FlatFee:         p.FlatFee,
		FXRate:          rate,
		GrossSettlement: gross,
		FeeInSettlement: feeInSettlement,
		TaxOnFee:        taxOnFee,
		NetPayout:       netPayout,
	}, nil
}

// round2 rounds half away from zero to 2 decimal places, which is half-up for
// the positive amounts handled here.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
