package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TransactionStatusSucceeded TransactionStatus = "succeeded"
	TransactionStatusFailed    TransactionStatus = "failed"
)

func (t TransactionStatus) String() string {
	return string(t)
}

// SettlementStatus tracks local payout execution after FX conversion.
// It only ever moves forward: PENDING -> PROCESSING -> SETTLED.
type SettlementStatus string

const (
	SettlementStatusPending    SettlementStatus = "PENDING"
	SettlementStatusProcessing SettlementStatus = "PROCESSING"
	SettlementStatusSettled    SettlementStatus = "SETTLED"
)

func (s SettlementStatus) String() string {
	return string(s)
}

func (s SettlementStatus) IsValid() bool {
	switch s {
	case SettlementStatusPending, SettlementStatusProcessing, SettlementStatusSettled:
		return true
	}

	return false
}

// Transaction is the permanent audit record of a reconciled payment. Once
// created with status succeeded, every FX figure on it is immutable; only
// SettlementStatus advances, via the settlement sweep.
type Transaction struct {
	ID               int64
	InvoiceID        int64
	SenderName       string
	PrincipalAmount  decimal.Decimal // As received, in source currency.
	Currency         string
	FXRate           decimal.Decimal // Locked at reconciliation time, never recomputed.
	FlatFee          decimal.Decimal // Source currency.
	GrossSettlement  decimal.Decimal
	FeeInSettlement  decimal.Decimal
	TaxOnFee         decimal.Decimal
	NetPayout        decimal.Decimal
	Status           TransactionStatus
	SettlementStatus SettlementStatus
	CreatedAt        time.Time
	SettledAt        time.Time // Zero until the settlement sweep picks the row up.
}

type TransactionFilter struct {
	InvoiceID *int64
	Currency  *string
	CreatedAt *string
	Page      uint64
	Limit     uint64
	SortBy    TransactionSortCol
	OrderBy   OrderByCol
}

type TransactionSortCol string

func (t TransactionSortCol) String() string {
	return string(t)
}

const (
	SortByID        TransactionSortCol = "id"
	SortByNetPayout TransactionSortCol = "net_payout"
	SortByCreatedAt TransactionSortCol = "created_at"
)

func (t TransactionSortCol) IsValid() bool {
	switch t {
	case SortByID, SortByNetPayout, SortByCreatedAt:
		return true
	}

	return false
}

type OrderByCol string

func (o OrderByCol) String() string {
	return string(o)
}

const (
	DESC OrderByCol = "desc"
	ASC  OrderByCol = "asc"
)

func (o OrderByCol) IsValid() bool {
	switch o {
	case DESC, ASC:
		return true
	}

	return false
}
