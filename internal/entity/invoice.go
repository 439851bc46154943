package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft  InvoiceStatus = "draft"
	InvoiceStatusSent   InvoiceStatus = "sent"
	InvoiceStatusPaid   InvoiceStatus = "paid"
	InvoiceStatusFailed InvoiceStatus = "failed"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusFailed:
		return true
	}

	return false
}

// IsTerminal reports whether no transition is allowed out of the status.
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusFailed
}

// Transition validates the status change against the invoice lifecycle and
// returns the new status. Only draft|sent -> paid and draft|sent -> failed
// are allowed; paid and failed are terminal.
func (s InvoiceStatus) Transition(to InvoiceStatus) (InvoiceStatus, error) {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent:
		if to == InvoiceStatusPaid || to == InvoiceStatusFailed {
			return to, nil
		}
	}

	return s, fmt.Errorf("%w: %s -> %s", ErrInvalidStateTransition, s, to)
}

// Invoice is created by the invoicing workflow; this service only reads it and
// advances its status during reconciliation. TotalAmount is computed once at
// creation from line items and never recomputed.
type Invoice struct {
	ID            int64
	OwnerID       int64
	ClientID      int64
	Currency      string
	TotalAmount   decimal.Decimal
	Status        InvoiceStatus
	PaymentLinkID string // Unique reconciliation reference. Empty if no payment link was issued.
	DueDate       time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
