package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/remitbase/settlement/internal/entity"
	"github.com/remitbase/settlement/internal/fx"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=service.go -destination=../mocks/service.go -package=mocks

type Repository interface {
	Invoice(ctx context.Context, id int64) (entity.Invoice, error)
	InvoiceByPaymentLink(ctx context.Context, reference string) (entity.Invoice, error)
	ConfirmInvoicePayment(ctx context.Context, invoiceID int64, tx entity.Transaction) (entity.Transaction, bool, error)
	MarkInvoiceFailed(ctx context.Context, invoiceID int64, updatedAt time.Time) error
	SettleProcessingTransactions(ctx context.Context, ownerID int64, settledAt time.Time) (int64, error)
	SettleAllProcessingTransactions(ctx context.Context, settledAt time.Time) (int64, error)
	Transactions(ctx context.Context, ownerID int64, filter entity.TransactionFilter) ([]entity.Transaction, int, error)
	VirtualAccounts(ctx context.Context, userID int64) ([]entity.VirtualAccount, error)
}

// RateSource supplies a mid-market rate for a currency pair at a point in
// time. The returned rate is locked: it is stored on the transaction verbatim
// and never recomputed, whatever the source quotes later.
type RateSource interface {
	Rate(ctx context.Context, pair entity.CurrencyPair, at time.Time) (decimal.Decimal, error)
}

type Producer interface {
	SendPaymentReconciled(ctx context.Context, txID, invoiceID int64, netPayout, fxRate decimal.Decimal)
	SendSettlementCompleted(ctx context.Context, ownerID, count int64)
}

// rateTimeout bounds the rate source call; a timed-out lookup fails the
// webhook the same way an unknown currency does, leaving the invoice
// untouched.
const rateTimeout = 5 * time.Second

type Service struct {
	repo     Repository
	rates    RateSource
	producer Producer
	policy   fx.Policy
}

func New(repo Repository, rates RateSource, producer Producer, policy fx.Policy) *Service {
	return &Service{
		repo:     repo,
		rates:    rates,
		producer: producer,
		policy:   policy,
	}
}

// HandlePaymentReceived reconciles an inbound bank webhook against its
// invoice. Replaying the same webhook, or racing two deliveries for one
// reference, yields exactly one succeeded transaction and one paid invoice;
// the losing delivery gets a duplicate result, not an error.
func (s *Service) HandlePaymentReceived(ctx context.Context, p entity.PaymentReceived) (entity.ReconciliationResult, error) {
	if !p.Amount.IsPositive() {
		return entity.ReconciliationResult{}, fmt.Errorf("%w: amount %s must be positive", entity.ErrInvalidArgument, p.Amount)
	}

	invoice, err := s.repo.InvoiceByPaymentLink(ctx, p.Reference)
	if err != nil {
		return entity.ReconciliationResult{}, fmt.Errorf("get invoice by reference %q: %w", p.Reference, err)
	}

	if invoice.Status == entity.InvoiceStatusPaid {
		slog.InfoContext(ctx, "duplicate webhook for paid invoice", "invoice_id", invoice.ID, "reference", p.Reference)

		return entity.ReconciliationResult{
			SettlementStatus: entity.SettlementStatusProcessing,
			Duplicate:        true,
		}, nil
	}

	now := time.Now()

	rate, err := s.lockRate(ctx, entity.CurrencyPair{Base: p.Currency, Quote: entity.SettlementCurrency}, now)
	if err != nil {
		return entity.ReconciliationResult{}, fmt.Errorf("lock rate for %s: %w", p.Currency, err)
	}

	breakdown, err := s.policy.CalculatePayout(p.Amount, p.Currency, rate)
	if err != nil {
		return entity.ReconciliationResult{}, fmt.Errorf("calculate payout: %w", err)
	}

	tx := entity.Transaction{
		InvoiceID:        invoice.ID,
		SenderName:       p.SenderName,
		PrincipalAmount:  breakdown.PrincipalAmount,
		Currency:         breakdown.Currency,
		FXRate:           breakdown.FXRate,
		FlatFee:          breakdown.FlatFee,
		GrossSettlement:  breakdown.GrossSettlement,
		FeeInSettlement:  breakdown.FeeInSettlement,
		TaxOnFee:         breakdown.TaxOnFee,
		NetPayout:        breakdown.NetPayout,
		Status:           entity.TransactionStatusSucceeded,
		SettlementStatus: entity.SettlementStatusProcessing,
		CreatedAt:        now,
	}

	created, ok, err := s.repo.ConfirmInvoicePayment(ctx, invoice.ID, tx)
	if err != nil {
		return entity.ReconciliationResult{}, fmt.Errorf("confirm payment for invoice %d: %w", invoice.ID, err)
	}

	if !ok {
		// Lost the race to a concurrent delivery; the winner already wrote
		// the transaction.
		slog.InfoContext(ctx, "concurrent webhook already reconciled invoice", "invoice_id", invoice.ID)

		return entity.ReconciliationResult{
			SettlementStatus: entity.SettlementStatusProcessing,
			Duplicate:        true,
		}, nil
	}

	s.producer.SendPaymentReconciled(ctx, created.ID, invoice.ID, created.NetPayout, created.FXRate)

	slog.InfoContext(ctx, "payment reconciled",
		"invoice_id", invoice.ID,
		"transaction_id", created.ID,
		"principal", created.PrincipalAmount.String(),
		"currency", created.Currency,
		"net_payout", created.NetPayout.String(),
	)

	return entity.ReconciliationResult{
		TransactionID:    created.ID,
		NetPayout:        created.NetPayout,
		FXRate:           created.FXRate,
		SettlementStatus: created.SettlementStatus,
	}, nil
}

func (s *Service) lockRate(ctx context.Context, pair entity.CurrencyPair, at time.Time) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, rateTimeout)
	defer cancel()

	rate, err := s.rates.Rate(ctx, pair, at)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return decimal.Decimal{}, fmt.Errorf("%w: rate source timed out for %s", entity.ErrUnsupportedCurrency, pair)
		}

		return decimal.Decimal{}, err
	}

	return rate, nil
}

// HandlePaymentFailed records a failed-payment signal for the invoice behind
// the reference. A paid invoice is never overwritten.
func (s *Service) HandlePaymentFailed(ctx context.Context, reference string) error {
	invoice, err := s.repo.InvoiceByPaymentLink(ctx, reference)
	if err != nil {
		return fmt.Errorf("get invoice by reference %q: %w", reference, err)
	}

	err = s.repo.MarkInvoiceFailed(ctx, invoice.ID, time.Now())
	if err != nil {
		return fmt.Errorf("mark invoice %d failed: %w", invoice.ID, err)
	}

	slog.InfoContext(ctx, "payment failed", "invoice_id", invoice.ID, "reference", reference)

	return nil
}

// TriggerMockPayment simulates the bank for local development: a success
// drives the normal reconciliation path with the invoice's own amount and
// currency, anything else records a failure.
func (s *Service) TriggerMockPayment(ctx context.Context, reference, status, senderName string) (entity.ReconciliationResult, error) {
	const defaultSender = "Mock Payer Inc."

	if status != "success" {
		return entity.ReconciliationResult{}, s.HandlePaymentFailed(ctx, reference)
	}

	invoice, err := s.repo.InvoiceByPaymentLink(ctx, reference)
	if err != nil {
		return entity.ReconciliationResult{}, fmt.Errorf("get invoice by reference %q: %w", reference, err)
	}

	if senderName == "" {
		senderName = defaultSender
	}

	return s.HandlePaymentReceived(ctx, entity.PaymentReceived{
		SenderName: senderName,
		Amount:     invoice.TotalAmount,
		Currency:   invoice.Currency,
		Reference:  reference,
	})
}

// SettleProcessingTransactions sweeps the caller's PROCESSING transactions to
// SETTLED and returns how many rows moved.
func (s *Service) SettleProcessingTransactions(ctx context.Context) (int64, error) {
	user, err := entity.UserFromCtx(ctx)
	if err != nil {
		return 0, err
	}

	count, err := s.repo.SettleProcessingTransactions(ctx, user.ID, time.Now())
	if err != nil {
		return 0, fmt.Errorf("settle processing transactions for owner %d: %w", user.ID, err)
	}

	if count > 0 {
		s.producer.SendSettlementCompleted(ctx, user.ID, count)
	}

	slog.InfoContext(ctx, "settlement sweep done", "owner_id", user.ID, "settled_count", count)

	return count, nil
}

// SettleAllProcessing is the unscoped sweep registered as a background job.
func (s *Service) SettleAllProcessing(ctx context.Context) error {
	count, err := s.repo.SettleAllProcessingTransactions(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("settle all processing transactions: %w", err)
	}

	if count > 0 {
		slog.InfoContext(ctx, "scheduled settlement sweep done", "settled_count", count)
	}

	return nil
}

// PublicInvoice is the payment-page read: the invoice behind a payment link.
func (s *Service) PublicInvoice(ctx context.Context, reference string) (entity.Invoice, error) {
	invoice, err := s.repo.InvoiceByPaymentLink(ctx, reference)
	if err != nil {
		return entity.Invoice{}, fmt.Errorf("get invoice by reference %q: %w", reference, err)
	}

	return invoice, nil
}

// Transactions lists the caller's ledger entries for the analytics and
// document read path.
func (s *Service) Transactions(ctx context.Context, filter entity.TransactionFilter) ([]entity.Transaction, int, error) {
	user, err := entity.UserFromCtx(ctx)
	if err != nil {
		return nil, 0, err
	}

	txs, count, err := s.repo.Transactions(ctx, user.ID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("get transactions: %w", err)
	}

	return txs, count, nil
}

// VirtualAccounts lists the caller's receiving accounts.
func (s *Service) VirtualAccounts(ctx context.Context) ([]entity.VirtualAccount, error) {
	user, err := entity.UserFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	accounts, err := s.repo.VirtualAccounts(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("get virtual accounts for user %d: %w", user.ID, err)
	}

	return accounts, nil
}
