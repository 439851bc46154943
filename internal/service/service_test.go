package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/remitbase/settlement/internal/entity"
	"github.com/remitbase/settlement/internal/fx"
	"github.com/remitbase/settlement/internal/mocks"
	"github.com/remitbase/settlement/internal/service"
)

type tester struct {
	s        *service.Service
	repo     *mocks.MockRepository
	rates    *mocks.MockRateSource
	producer *mocks.MockProducer
}

func newTester(t *testing.T) tester {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	rates := mocks.NewMockRateSource(ctrl)
	producer := mocks.NewMockProducer(ctrl)

	return tester{
		s:        service.New(repo, rates, producer, fx.DefaultPolicy()),
		repo:     repo,
		rates:    rates,
		producer: producer,
	}
}

func TestService_HandlePaymentReceived(t *testing.T) {
	t.Parallel()

	c := newTester(t)

	invoice := entity.Invoice{
		ID:            1,
		OwnerID:       7,
		Currency:      "USD",
		TotalAmount:   decimal.RequireFromString("1000.00"),
		Status:        entity.InvoiceStatusSent,
		PaymentLinkID: "pay-123",
	}

	c.repo.EXPECT().InvoiceByPaymentLink(gomock.Any(), "pay-123").Return(invoice, nil)
	c.rates.EXPECT().Rate(gomock.Any(), entity.CurrencyPair{Base: "USD", Quote: "INR"}, gomock.Any()).
		Return(decimal.RequireFromString("83.5000"), nil)

	c.repo.EXPECT().ConfirmInvoicePayment(gomock.Any(), invoice.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, tx entity.Transaction) (entity.Transaction, bool, error) {
			require.Equal(t, invoice.ID, tx.InvoiceID)
			require.Equal(t, "Acme GmbH", tx.SenderName)
			require.Equal(t, "1000", tx.PrincipalAmount.String())
			require.Equal(t, "USD", tx.Currency)
			require.Equal(t, "83.5", tx.FXRate.String())
			require.Equal(t, "29", tx.FlatFee.String())
			require.Equal(t, "81078.5", tx.GrossSettlement.String())
			require.Equal(t, "2421.5", tx.FeeInSettlement.String())
			require.Equal(t, "435.87", tx.TaxOnFee.String())
			require.Equal(t, "80642.63", tx.NetPayout.String())
			require.Equal(t, entity.TransactionStatusSucceeded, tx.Status)
			require.Equal(t, entity.SettlementStatusProcessing, tx.SettlementStatus)

			tx.ID = 42

			return tx, true, nil
		})

	c.producer.EXPECT().SendPaymentReconciled(gomock.Any(), int64(42), invoice.ID, gomock.Any(), gomock.Any())

	got, err := c.s.HandlePaymentReceived(context.Background(), entity.PaymentReceived{
		SenderName: "Acme GmbH",
		Amount:     decimal.RequireFromString("1000.00"),
		Currency:   "USD",
		Reference:  "pay-123",
	})
	require.NoError(t, err)
	require.False(t, got.Duplicate)
	require.Equal(t, int64(42), got.TransactionID)
	require.Equal(t, "80642.63", got.NetPayout.String())
	require.Equal(t, entity.SettlementStatusProcessing, got.SettlementStatus)
}

func TestService_HandlePaymentReceived_Duplicate(t *testing.T) {
	t.Parallel()

	c := newTester(t)

	invoice := entity.Invoice{
		ID:            1,
		Currency:      "USD",
		TotalAmount:   decimal.RequireFromString("1000.00"),
		Status:        entity.InvoiceStatusPaid,
		PaymentLinkID: "pay-123",
	}

	// No rate lookup, no write, no event for a replayed webhook.
	c.repo.EXPECT().InvoiceByPaymentLink(gomock.Any(), "pay-123").Return(invoice, nil)

	got, err := c.s.HandlePaymentReceived(context.Background(), entity.PaymentReceived{
		SenderName: "Acme GmbH",
		Amount:     decimal.RequireFromString("1000.00"),
		Currency:   "USD",
		Reference:  "pay-123",
	})
	require.NoError(t, err)
	require.True(t, got.Duplicate)
	require.Zero(t, got.TransactionID)
}

func TestService_HandlePaymentReceived_ConcurrentLoser(t *testing.T) {
	t.Parallel()

	c := newTester(t)

	invoice := entity.Invoice{
		ID:            1,
		Currency:      "USD",
		TotalAmount:   decimal.RequireFromString("1000.00"),
		Status:        entity.InvoiceStatusSent,
		PaymentLinkID: "pay-123",
	}

	c.repo.EXPECT().InvoiceByPaymentLink(gomock.Any(), "pay-123").Return(invoice, nil)
	c.rates.EXPECT().Rate(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(decimal.RequireFromString("83.5000"), nil)

	// The concurrent delivery won the row lock first.
	c.repo.EXPECT().ConfirmInvoicePayment(gomock.Any(), invoice.ID, gomock.Any()).
		Return(entity.Transaction{}, false, nil)

	got, err := c.s.HandlePaymentReceived(context.Background(), entity.PaymentReceived{
		SenderName: "Acme GmbH",
		Amount:     decimal.RequireFromString("1000.00"),
		Currency:   "USD",
		Reference:  "pay-123",
	})
	require.NoError(t, err)
	require.True(t, got.Duplicate)
}

func TestService_HandlePaymentReceived_UnsupportedCurrency(t *testing.T) {
	t.Parallel()

	c := newTester(t)

	invoice := entity.Invoice{
		ID:            1,
		Currency:      "XYZ",
		TotalAmount:   decimal.RequireFromString("1000.00"),
		Status:        entity.InvoiceStatusSent,
		PaymentLinkID: "pay-123",
	}

	c.repo.EXPECT().InvoiceByPaymentLink(gomock.Any(), "pay-123").Return(invoice, nil)
	c.rates.EXPECT().Rate(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(decimal.Decimal{}, entity.ErrUnsupportedCurrency)

	// No ConfirmInvoicePayment call: the invoice stays untouched.
	_, err := c.s.HandlePaymentReceived(context.Background(), entity.PaymentReceived{
		SenderName: "Acme GmbH",
		Amount:     decimal.RequireFromString("1000.00"),
		Currency:   "XYZ",
		Reference:  "pay-123",
	})
	require.ErrorIs(t, err, entity.ErrUnsupportedCurrency)
}

func TestService_HandlePaymentReceived_RateTimeout(t *testing.T) {
	t.Parallel()

	c := newTester(t)

	invoice := entity.Invoice{
		ID:            1,
		Currency:      "USD",
		TotalAmount:   decimal.RequireFromString("1000.00"),
		Status:        entity.InvoiceStatusSent,
		PaymentLinkID: "pay-123",
	}

	c.repo.EXPECT().InvoiceByPaymentLink(gomock.Any(), "pay-123").Return(invoice, nil)
	c.rates.EXPECT().Rate(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(decimal.Decimal{}, context.DeadlineExceeded)

	_, err := c.s.HandlePaymentReceived(context.Background(), entity.PaymentReceived{
		SenderName: "Acme GmbH",
		Amount:     decimal.RequireFromString("1000.00"),
		Currency:   "USD",
		Reference:  "pay-123",
	})
	require.ErrorIs(t, err, entity.ErrUnsupportedCurrency)
}

func TestService_HandlePaymentReceived_NonPositiveAmount(t *testing.T) {
	t.Parallel()

	c := newTester(t)

	_, err := c.s.HandlePaymentReceived(context.Background(), entity.PaymentReceived{
		SenderName: "Acme GmbH",
		Amount:     decimal.RequireFromString("-5.00"),
		Currency:   "USD",
		Reference:  "pay-123",
	})
	require.ErrorIs(t, err, entity.ErrInvalidArgument)
}

func TestService_HandlePaymentFailed(t *testing.T) {
	t.Parallel()

	c := newTester(t)

	invoice := entity.Invoice{
		ID:            1,
		Status:        entity.InvoiceStatusSent,
		PaymentLinkID: "pay-123",
	}

	c.repo.EXPECT().InvoiceByPaymentLink(gomock.Any(), "pay-123").Return(invoice, nil)
	c.repo.EXPECT().MarkInvoiceFailed(gomock.Any(), invoice.ID, gomock.Any()).Return(nil)

	err := c.s.HandlePaymentFailed(context.Background(), "pay-123")
	require.NoError(t, err)
}

func TestService_HandlePaymentFailed_AlreadyPaid(t *testing.T) {
	t.Parallel()

	c := newTester(t)

	invoice := entity.Invoice{
		ID:            1,
		Status:        entity.InvoiceStatusPaid,
		PaymentLinkID: "pay-123",
	}

	c.repo.EXPECT().InvoiceByPaymentLink(gomock.Any(), "pay-123").Return(invoice, nil)
	c.repo.EXPECT().MarkInvoiceFailed(gomock.Any(), invoice.ID, gomock.Any()).
		Return(entity.ErrInvalidStateTransition)

	err := c.s.HandlePaymentFailed(context.Background(), "pay-123")
	require.ErrorIs(t, err, entity.ErrInvalidStateTransition)
}

func TestService_TriggerMockPayment_Failure(t *testing.T) {
	t.Parallel()

	c := newTester(t)

	invoice := entity.Invoice{
		ID:            1,
		Status:        entity.InvoiceStatusSent,
		PaymentLinkID: "pay-123",
	}

	c.repo.EXPECT().InvoiceByPaymentLink(gomock.Any(), "pay-123").Return(invoice, nil)
	c.repo.EXPECT().MarkInvoiceFailed(gomock.Any(), invoice.ID, gomock.Any()).Return(nil)

	got, err := c.s.TriggerMockPayment(context.Background(), "pay-123", "failure", "")
	require.NoError(t, err)
	require.Zero(t, got.TransactionID)
}

func TestService_TriggerMockPayment_Success(t *testing.T) {
	t.Parallel()

	c := newTester(t)

	invoice := entity.Invoice{
		ID:            1,
		Currency:      "EUR",
		TotalAmount:   decimal.RequireFromString("500.00"),
		Status:        entity.InvoiceStatusSent,
		PaymentLinkID: "pay-123",
	}

	// Looked up once for the amount and once inside the reconciliation path.
	c.repo.EXPECT().InvoiceByPaymentLink(gomock.Any(), "pay-123").Return(invoice, nil).Times(2)
	c.rates.EXPECT().Rate(gomock.Any(), entity.CurrencyPair{Base: "EUR", Quote: "INR"}, gomock.Any()).
		Return(decimal.RequireFromString("90.2500"), nil)

	c.repo.EXPECT().ConfirmInvoicePayment(gomock.Any(), invoice.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, tx entity.Transaction) (entity.Transaction, bool, error) {
			require.Equal(t, "Mock Payer Inc.", tx.SenderName)
			require.Equal(t, "500", tx.PrincipalAmount.String())
			require.Equal(t, "42036.64", tx.NetPayout.String())

			tx.ID = 7

			return tx, true, nil
		})

	c.producer.EXPECT().SendPaymentReconciled(gomock.Any(), int64(7), invoice.ID, gomock.Any(), gomock.Any())

	got, err := c.s.TriggerMockPayment(context.Background(), "pay-123", "success", "")
	require.NoError(t, err)
	require.Equal(t, int64(7), got.TransactionID)
}

func TestService_SettleProcessingTransactions(t *testing.T) {
	t.Parallel()

	c := newTester(t)

	user := entity.User{ID: 7, Email: "owner@example.com"}
	ctx := entity.CtxWithUser(context.Background(), user)

	c.repo.EXPECT().SettleProcessingTransactions(ctx, user.ID, gomock.Any()).Return(int64(3), nil)
	c.producer.EXPECT().SendSettlementCompleted(ctx, user.ID, int64(3))

	count, err := c.s.SettleProcessingTransactions(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), count)
}

func TestService_SettleProcessingTransactions_Empty(t *testing.T) {
	t.Parallel()

	c := newTester(t)

	user := entity.User{ID: 7, Email: "owner@example.com"}
	ctx := entity.CtxWithUser(context.Background(), user)

	// No event when nothing moved.
	c.repo.EXPECT().SettleProcessingTransactions(ctx, user.ID, gomock.Any()).Return(int64(0), nil)

	count, err := c.s.SettleProcessingTransactions(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestService_SettleProcessingTransactions_NoUser(t *testing.T) {
	t.Parallel()

	c := newTester(t)

	_, err := c.s.SettleProcessingTransactions(context.Background())
	require.ErrorIs(t, err, entity.ErrUnauthenticated)
}
