package entity

import (
	"time"
)

// VirtualAccount describes a receiving account provisioned with a
// Banking-as-a-Service provider. Read-only here; provisioning belongs to the
// onboarding workflow.
type VirtualAccount struct {
	ID            int64
	UserID        int64
	Currency      string
	BankName      string
	AccountNumber string
	RoutingCode   string
	Provider      string
	CreatedAt     time.Time
}
