// Package rates provides the deterministic, table-backed rate source. It backs
// tests and local development; production wires the FX provider client instead.
package rates

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/remitbase/settlement/internal/entity"
)

type Static struct {
	table map[string]decimal.Decimal
}

// NewStatic returns a rate source backed by a fixed mid-market table.
func NewStatic() *Static {
	return &Static{
		table: map[string]decimal.Decimal{
			"USD_INR": decimal.RequireFromString("83.5000"),
			"EUR_INR": decimal.RequireFromString("90.2500"),
			"GBP_INR": decimal.RequireFromString("105.8000"),
			"CAD_INR": decimal.RequireFromString("61.5000"),
		},
	}
}

// NewStaticWithTable returns a rate source over the given table. Used by tests
// that need pairs or rates outside the default set.
func NewStaticWithTable(table map[string]decimal.Decimal) *Static {
	return &Static{table: table}
}

// Rate returns the mid-market rate for the pair. The timestamp is accepted for
// interface parity with the live provider and ignored: the table does not move.
func (s *Static) Rate(_ context.Context, pair entity.CurrencyPair, _ time.Time) (decimal.Decimal, error) {
	err := pair.Validate()
	if err != nil {
		return decimal.Decimal{}, err
	}

	rate, ok := s.table[pair.String()]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: no rate for pair %s", entity.ErrUnsupportedCurrency, pair)
	}

	return rate, nil
}
