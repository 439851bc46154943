package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SettlementCurrency is the local currency every payout lands in.
const SettlementCurrency = "INR"

type CurrencyPair struct {
	Base  string
	Quote string
}

func (p CurrencyPair) String() string {
	return p.Base + "_" + p.Quote
}

func (p CurrencyPair) Validate() error {
	const codeLen = 3

	if len(p.Base) != codeLen || len(p.Quote) != codeLen {
		return fmt.Errorf("%w: malformed currency pair %q", ErrInvalidArgument, p.String())
	}

	return nil
}

// PayoutBreakdown carries every figure of an FX deal. Each value later appears
// on a regulatory remittance document and is stored on the Transaction as is,
// never re-derived.
type PayoutBreakdown struct {
	PrincipalAmount decimal.Decimal
	Currency        string
	FlatFee         decimal.Decimal // Source currency.
	FXRate          decimal.Decimal
	GrossSettlement decimal.Decimal
	FeeInSettlement decimal.Decimal
	TaxOnFee        decimal.Decimal
	NetPayout       decimal.Decimal
}

// PaymentReceived mimics a bank webhook payload reporting funds arriving in a
// virtual account.
type PaymentReceived struct {
	SenderName string
	Amount     decimal.Decimal
	Currency   string
	Reference  string // Matches an invoice's payment link ID.
}

// ReconciliationResult is everything the webhook caller needs to acknowledge.
type ReconciliationResult struct {
	TransactionID    int64
	NetPayout        decimal.Decimal
	FXRate           decimal.Decimal
	SettlementStatus SettlementStatus
	Duplicate        bool // The invoice was already paid; nothing was written.
}
