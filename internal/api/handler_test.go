package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/remitbase/settlement/internal/api"
	"github.com/remitbase/settlement/internal/entity"
	"github.com/remitbase/settlement/internal/mocks"
)

type tester struct {
	server      *httptest.Server
	serviceMock *mocks.MockService
	authMock    *mocks.MockAuthService
}

func newTester(t *testing.T, apiKeyEnabled bool) tester {
	t.Helper()

	ctrl := gomock.NewController(t)
	serviceMock := mocks.NewMockService(ctrl)
	authMock := mocks.NewMockAuthService(ctrl)

	handler := api.NewHandler(serviceMock, false, nil)
	mw := api.NewMiddleware(authMock, apiKeyEnabled, "dev", []string{})

	server := httptest.NewServer(api.NewRouter(handler, mw))
	t.Cleanup(server.Close)

	return tester{
		server:      server,
		serviceMock: serviceMock,
		authMock:    authMock,
	}
}

func (c tester) doJSON(t *testing.T, method, path string, body any, headers map[string]string) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer

	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, c.server.URL+path, &buf)
	require.NoError(t, err)

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))

	return resp, decoded
}

func TestHandler_PaymentReceived(t *testing.T) {
	t.Parallel()

	c := newTester(t, false)

	c.serviceMock.EXPECT().HandlePaymentReceived(gomock.Any(), entity.PaymentReceived{
		SenderName: "Acme GmbH",
		Amount:     decimal.RequireFromString("1000.00"),
		Currency:   "USD",
		Reference:  "pay-123",
	}).Return(entity.ReconciliationResult{
		TransactionID:    42,
		NetPayout:        decimal.RequireFromString("80642.63"),
		FXRate:           decimal.RequireFromString("83.5000"),
		SettlementStatus: entity.SettlementStatusProcessing,
	}, nil)

	resp, got := c.doJSON(t, http.MethodPost, "/api/webhooks/payment-received", map[string]any{
		"sender_name": "Acme GmbH",
		"amount":      "1000.00",
		"currency":    "USD",
		"reference":   "pay-123",
	}, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, float64(42), got["transaction_id"])
	require.Equal(t, "80642.63", got["net_payout"])
	require.Equal(t, "83.5", got["fx_rate"])
	require.Equal(t, "PROCESSING", got["settlement_status"])
}

func TestHandler_PaymentReceived_Duplicate(t *testing.T) {
	t.Parallel()

	c := newTester(t, false)

	c.serviceMock.EXPECT().HandlePaymentReceived(gomock.Any(), gomock.Any()).
		Return(entity.ReconciliationResult{
			SettlementStatus: entity.SettlementStatusProcessing,
			Duplicate:        true,
		}, nil)

	resp, got := c.doJSON(t, http.MethodPost, "/api/webhooks/payment-received", map[string]any{
		"sender_name": "Acme GmbH",
		"amount":      "1000.00",
		"currency":    "USD",
		"reference":   "pay-123",
	}, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Invoice already paid. Ignoring duplicate webhook.", got["message"])
	require.NotContains(t, got, "transaction_id")
}

func TestHandler_PaymentReceived_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "unknown reference", err: entity.ErrNotFound, wantCode: http.StatusNotFound},
		{name: "unsupported currency", err: entity.ErrUnsupportedCurrency, wantCode: http.StatusUnprocessableEntity},
		{name: "invalid amount", err: entity.ErrInvalidArgument, wantCode: http.StatusUnprocessableEntity},
		{name: "terminal invoice", err: entity.ErrInvalidStateTransition, wantCode: http.StatusConflict},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTester(t, false)

			c.serviceMock.EXPECT().HandlePaymentReceived(gomock.Any(), gomock.Any()).
				Return(entity.ReconciliationResult{}, tt.err)

			resp, _ := c.doJSON(t, http.MethodPost, "/api/webhooks/payment-received", map[string]any{
				"sender_name": "Acme GmbH",
				"amount":      "1000.00",
				"currency":    "USD",
				"reference":   "pay-123",
			}, nil)

			require.Equal(t, tt.wantCode, resp.StatusCode)
		})
	}
}

func TestHandler_PaymentReceived_APIKey(t *testing.T) {
	t.Parallel()

	c := newTester(t, true)

	resp, _ := c.doJSON(t, http.MethodPost, "/api/webhooks/payment-received", map[string]any{
		"reference": "pay-123",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = c.doJSON(t, http.MethodPost, "/api/webhooks/payment-received", map[string]any{
		"reference": "pay-123",
	}, map[string]string{"X-Api-Key": "wrong"})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	c.serviceMock.EXPECT().HandlePaymentReceived(gomock.Any(), gomock.Any()).
		Return(entity.ReconciliationResult{SettlementStatus: entity.SettlementStatusProcessing, Duplicate: true}, nil)

	resp, _ = c.doJSON(t, http.MethodPost, "/api/webhooks/payment-received", map[string]any{
		"sender_name": "Acme GmbH",
		"amount":      "1000.00",
		"currency":    "USD",
		"reference":   "pay-123",
	}, map[string]string{"X-Api-Key": "dev"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandler_PaymentFailed(t *testing.T) {
	t.Parallel()

	c := newTester(t, false)

	c.serviceMock.EXPECT().HandlePaymentFailed(gomock.Any(), "pay-123").Return(nil)

	resp, got := c.doJSON(t, http.MethodPost, "/api/webhooks/payment-failed", map[string]any{
		"reference": "pay-123",
	}, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Payment failure recorded.", got["message"])
}

func TestHandler_PaymentFailed_AlreadyPaid(t *testing.T) {
	t.Parallel()

	c := newTester(t, false)

	c.serviceMock.EXPECT().HandlePaymentFailed(gomock.Any(), "pay-123").
		Return(entity.ErrInvalidStateTransition)

	resp, _ := c.doJSON(t, http.MethodPost, "/api/webhooks/payment-failed", map[string]any{
		"reference": "pay-123",
	}, nil)

	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestHandler_TriggerPayment(t *testing.T) {
	t.Parallel()

	c := newTester(t, false)

	c.serviceMock.EXPECT().TriggerMockPayment(gomock.Any(), "pay-123", "success", "").
		Return(entity.ReconciliationResult{
			TransactionID:    7,
			NetPayout:        decimal.RequireFromString("42036.64"),
			FXRate:           decimal.RequireFromString("90.2500"),
			SettlementStatus: entity.SettlementStatusProcessing,
		}, nil)

	resp, got := c.doJSON(t, http.MethodPost, "/api/payments/trigger", map[string]any{
		"payment_link_id": "pay-123",
		"status":          "success",
	}, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, float64(7), got["transaction_id"])
}

func TestHandler_ProcessSettlements(t *testing.T) {
	t.Parallel()

	c := newTester(t, false)

	user := entity.User{ID: 7, Email: "owner@example.com"}

	c.authMock.EXPECT().User(gomock.Any(), "dev").Return(user, nil)
	c.serviceMock.EXPECT().SettleProcessingTransactions(gomock.Any()).Return(int64(3), nil)

	resp, got := c.doJSON(t, http.MethodPost, "/api/settlements/process", nil,
		map[string]string{"Authorization": "Bearer dev"})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, float64(3), got["settled_count"])
}

func TestHandler_ProcessSettlements_NoToken(t *testing.T) {
	t.Parallel()

	c := newTester(t, false)

	resp, _ := c.doJSON(t, http.MethodPost, "/api/settlements/process", nil, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandler_Transactions(t *testing.T) {
	t.Parallel()

	c := newTester(t, false)

	user := entity.User{ID: 7, Email: "owner@example.com"}

	c.authMock.EXPECT().User(gomock.Any(), "dev").Return(user, nil)

	invoiceID := int64(11)

	c.serviceMock.EXPECT().Transactions(gomock.Any(), entity.TransactionFilter{
		InvoiceID: &invoiceID,
		Page:      2,
		Limit:     5,
		SortBy:    entity.SortByNetPayout,
		OrderBy:   entity.ASC,
	}).Return([]entity.Transaction{
		{
			ID:               42,
			InvoiceID:        invoiceID,
			SenderName:       "Acme GmbH",
			PrincipalAmount:  decimal.RequireFromString("1000.00"),
			Currency:         "USD",
			FXRate:           decimal.RequireFromString("83.5000"),
			NetPayout:        decimal.RequireFromString("80642.63"),
			Status:           entity.TransactionStatusSucceeded,
			SettlementStatus: entity.SettlementStatusSettled,
		},
	}, 21, nil)

	resp, got := c.doJSON(t, http.MethodGet,
		"/api/payments/transactions?invoiceId=11&limit=5&page=2&sortBy=net_payout&orderBy=asc", nil,
		map[string]string{"Authorization": "Bearer dev"})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, float64(21), got["totalCount"])

	txs, ok := got["transactions"].([]any)
	require.True(t, ok)
	require.Len(t, txs, 1)
}

func TestHandler_Transactions_DefaultFilter(t *testing.T) {
	t.Parallel()

	c := newTester(t, false)

	user := entity.User{ID: 7, Email: "owner@example.com"}

	c.authMock.EXPECT().User(gomock.Any(), "dev").Return(user, nil)

	c.serviceMock.EXPECT().Transactions(gomock.Any(), entity.TransactionFilter{
		Page:    1,
		Limit:   10,
		SortBy:  entity.SortByCreatedAt,
		OrderBy: entity.DESC,
	}).Return(nil, 0, nil)

	resp, _ := c.doJSON(t, http.MethodGet, "/api/payments/transactions", nil,
		map[string]string{"Authorization": "Bearer dev"})

	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandler_PublicInvoice(t *testing.T) {
	t.Parallel()

	c := newTester(t, false)

	c.serviceMock.EXPECT().PublicInvoice(gomock.Any(), "pay-123").Return(entity.Invoice{
		ID:            1,
		Currency:      "USD",
		TotalAmount:   decimal.RequireFromString("1000.00"),
		Status:        entity.InvoiceStatusSent,
		PaymentLinkID: "pay-123",
	}, nil)

	resp, got := c.doJSON(t, http.MethodGet, "/api/invoices/public/pay-123", nil, nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "1000", got["totalAmount"])
	require.Equal(t, "sent", got["status"])
	require.Equal(t, "pay-123", got["paymentLinkId"])
}

func TestHandler_PublicInvoice_NotFound(t *testing.T) {
	t.Parallel()

	c := newTester(t, false)

	c.serviceMock.EXPECT().PublicInvoice(gomock.Any(), "missing").
		Return(entity.Invoice{}, entity.ErrNotFound)

	resp, _ := c.doJSON(t, http.MethodGet, "/api/invoices/public/missing", nil, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandler_VirtualAccounts(t *testing.T) {
	t.Parallel()

	c := newTester(t, false)

	user := entity.User{ID: 7, Email: "owner@example.com"}

	c.authMock.EXPECT().User(gomock.Any(), "dev").Return(user, nil)
	c.serviceMock.EXPECT().VirtualAccounts(gomock.Any()).Return([]entity.VirtualAccount{
		{
			ID:            1,
			UserID:        user.ID,
			Currency:      "USD",
			BankName:      "Community Federal Savings Bank",
			AccountNumber: "8331123456",
			RoutingCode:   "026073150",
			Provider:      "mock-bank",
		},
	}, nil)

	resp, got := c.doJSON(t, http.MethodGet, "/api/accounts/virtual", nil,
		map[string]string{"Authorization": "Bearer dev"})

	require.Equal(t, http.StatusOK, resp.StatusCode)

	accounts, ok := got["accounts"].([]any)
	require.True(t, ok)
	require.Len(t, accounts, 1)
}

func TestHandler_HealthHandler(t *testing.T) {
	t.Parallel()

	c := newTester(t, false)

	resp, err := http.Get(c.server.URL + "/api/health")
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
}
