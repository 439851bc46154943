package api

import (
	"context"
	"crypto"
	"crypto/rsa"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/remitbase/settlement/internal/entity"
)

// @title Settlement API
// @version 1.0
// @description Webhook reconciliation and FX settlement for inbound foreign-currency payments
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-Api-Key

//go:generate go run go.uber.org/mock/mockgen@latest -source=handler.go -destination=../mocks/handler.go -package=mocks

type Service interface {
	HandlePaymentReceived(ctx context.Context, p entity.PaymentReceived) (entity.ReconciliationResult, error)
	HandlePaymentFailed(ctx context.Context, reference string) error
	TriggerMockPayment(ctx context.Context, reference, status, senderName string) (entity.ReconciliationResult, error)
	SettleProcessingTransactions(ctx context.Context) (int64, error)
	PublicInvoice(ctx context.Context, reference string) (entity.Invoice, error)
	Transactions(ctx context.Context, filter entity.TransactionFilter) ([]entity.Transaction, int, error)
	VirtualAccounts(ctx context.Context) ([]entity.VirtualAccount, error)
}

type Handler struct {
	s                       Service
	webhookSignCheckEnabled bool
	webhookPublicKey        *rsa.PublicKey
}

func NewHandler(s Service, webhookSignCheckEnabled bool, webhookPublicKey *rsa.PublicKey) *Handler {
	return &Handler{
		s:                       s,
		webhookSignCheckEnabled: webhookSignCheckEnabled,
		webhookPublicKey:        webhookPublicKey,
	}
}

type PaymentReceivedRequest struct {
	SenderName string          `json:"sender_name"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Reference  string          `json:"reference"`
}

type PaymentReceivedResponse struct {
	Message          string `json:"message"`
	TransactionID    int64  `json:"transaction_id,omitempty"`
	NetPayout        string `json:"net_payout,omitempty"`
	FXRate           string `json:"fx_rate,omitempty"`
	SettlementStatus string `json:"settlement_status"`
}

// PaymentReceived handles the bank webhook reporting funds arriving in a
// virtual account.
// @Summary Handle payment-received webhook
// @Description Matches the inbound payment to an invoice, locks an FX rate and records the payout
// @Tags webhooks
// @Accept json
// @Produce json
// @Param PaymentReceivedRequest body PaymentReceivedRequest true "Bank webhook payload"
// @Success 200 {object} PaymentReceivedResponse
// @Failure 400 {object} ErrorResponse "Invalid JSON"
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Failure 409 {object} ErrorResponse "Invoice is in a terminal state"
// @Failure 422 {object} ErrorResponse "Unsupported currency or invalid amount"
// @Failure 500 {object} ErrorResponse "Reconciliation failed, safe to retry"
// @Router /webhooks/payment-received [post]
// @Security ApiKeyAuth
func (h *Handler) PaymentReceived(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := h.readVerifiedBody(r)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusForbidden, err, "Signature check failed")
		return
	}

	var req PaymentReceivedRequest

	err = json.Unmarshal(body, &req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid JSON")
		return
	}

	result, err := h.s.HandlePaymentReceived(ctx, entity.PaymentReceived{
		SenderName: req.SenderName,
		Amount:     req.Amount,
		Currency:   req.Currency,
		Reference:  req.Reference,
	})
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrNotFound):
			SendJSONErr(ctx, w, http.StatusNotFound, err, fmt.Sprintf("Invoice not found for reference %q", req.Reference))
		case errors.Is(err, entity.ErrUnsupportedCurrency):
			SendJSONErr(ctx, w, http.StatusUnprocessableEntity, err, fmt.Sprintf("No rate available for currency %q", req.Currency))
		case errors.Is(err, entity.ErrInvalidArgument):
			SendJSONErr(ctx, w, http.StatusUnprocessableEntity, err, "Amount must be positive")
		case errors.Is(err, entity.ErrInvalidStateTransition):
			SendJSONErr(ctx, w, http.StatusConflict, err, "Invoice is in a terminal state")
		default:
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to process payment")
		}

		return
	}

	if result.Duplicate {
		SendJSON(ctx, w, http.StatusOK, PaymentReceivedResponse{
			Message:          "Invoice already paid. Ignoring duplicate webhook.",
			SettlementStatus: result.SettlementStatus.String(),
		})

		return
	}

	SendJSON(ctx, w, http.StatusOK, PaymentReceivedResponse{
		Message:          "Payment processed successfully.",
		TransactionID:    result.TransactionID,
		NetPayout:        result.NetPayout.String(),
		FXRate:           result.FXRate.String(),
		SettlementStatus: result.SettlementStatus.String(),
	})
}

type PaymentFailedRequest struct {
	Reference string `json:"reference"`
}

type PaymentFailedResponse struct {
	Message string `json:"message"`
}

// PaymentFailed handles the bank webhook reporting a failed payment.
// @Summary Handle payment-failed webhook
// @Tags webhooks
// @Accept json
// @Produce json
// @Param PaymentFailedRequest body PaymentFailedRequest true "Failed payment payload"
// @Success 200 {object} PaymentFailedResponse
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Failure 409 {object} ErrorResponse "Invoice already paid"
// @Router /webhooks/payment-failed [post]
// @Security ApiKeyAuth
func (h *Handler) PaymentFailed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req PaymentFailedRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid JSON")
		return
	}

	err = h.s.HandlePaymentFailed(ctx, req.Reference)

	switch {
	case err == nil:
		SendJSON(ctx, w, http.StatusOK, PaymentFailedResponse{Message: "Payment failure recorded."})
	case errors.Is(err, entity.ErrNotFound):
		SendJSONErr(ctx, w, http.StatusNotFound, err, fmt.Sprintf("Invoice not found for reference %q", req.Reference))
	case errors.Is(err, entity.ErrInvalidStateTransition):
		SendJSONErr(ctx, w, http.StatusConflict, err, "Invoice already paid")
	default:
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to record payment failure")
	}
}

type TriggerPaymentRequest struct {
	PaymentLinkID string `json:"payment_link_id"`
	Status        string `json:"status"`
	SenderName    string `json:"sender_name,omitempty"`
}

// TriggerPayment simulates a bank webhook for local development.
// @Summary Trigger a mock payment
// @Tags mock-payments
// @Accept json
// @Produce json
// @Param TriggerPaymentRequest body TriggerPaymentRequest true "Mock payment trigger"
// @Success 200 {object} PaymentReceivedResponse
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Router /payments/trigger [post]
func (h *Handler) TriggerPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req TriggerPaymentRequest

	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		SendJSONErr(ctx, w, http.StatusBadRequest, err, "Invalid JSON")
		return
	}

	result, err := h.s.TriggerMockPayment(ctx, req.PaymentLinkID, req.Status, req.SenderName)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrNotFound):
			SendJSONErr(ctx, w, http.StatusNotFound, err, "Invoice not found")
		case errors.Is(err, entity.ErrUnsupportedCurrency):
			SendJSONErr(ctx, w, http.StatusUnprocessableEntity, err, "No rate available for invoice currency")
		case errors.Is(err, entity.ErrInvalidStateTransition):
			SendJSONErr(ctx, w, http.StatusConflict, err, "Invoice is in a terminal state")
		default:
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to trigger payment")
		}

		return
	}

	if req.Status != "success" {
		SendJSON(ctx, w, http.StatusOK, PaymentFailedResponse{Message: "Payment failed"})
		return
	}

	if result.Duplicate {
		SendJSON(ctx, w, http.StatusOK, PaymentReceivedResponse{
			Message:          "Invoice already paid. Ignoring duplicate webhook.",
			SettlementStatus: result.SettlementStatus.String(),
		})

		return
	}

	SendJSON(ctx, w, http.StatusOK, PaymentReceivedResponse{
		Message:          "Payment processed successfully.",
		TransactionID:    result.TransactionID,
		NetPayout:        result.NetPayout.String(),
		FXRate:           result.FXRate.String(),
		SettlementStatus: result.SettlementStatus.String(),
	})
}

type ProcessSettlementsResponse struct {
	SettledCount int64 `json:"settled_count"`
}

// ProcessSettlements sweeps the caller's PROCESSING transactions to SETTLED.
// @Summary Process settlements
// @Description Advances every PROCESSING transaction of the caller to SETTLED
// @Tags settlements
// @Produce json
// @Success 200 {object} ProcessSettlementsResponse
// @Failure 500 {object} ErrorResponse "Sweep failed, safe to retry"
// @Router /settlements/process [post]
// @Security BearerAuth
func (h *Handler) ProcessSettlements(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	count, err := h.s.SettleProcessingTransactions(ctx)
	if err != nil {
		if errors.Is(err, entity.ErrUnauthenticated) {
			SendJSONErr(ctx, w, http.StatusUnauthorized, err, "Unauthenticated")
			return
		}

		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to process settlements")

		return
	}

	SendJSON(ctx, w, http.StatusOK, ProcessSettlementsResponse{SettledCount: count})
}

type PublicInvoiceResponse struct {
	ID            int64  `json:"id"`
	Currency      string `json:"currency"`
	TotalAmount   string `json:"totalAmount"`
	Status        string `json:"status"`
	PaymentLinkID string `json:"paymentLinkId"`
	DueDate       string `json:"dueDate,omitempty"`
}

// PublicInvoice returns the invoice behind a payment link for the payment page.
// @Summary Get public invoice
// @Tags invoices
// @Produce json
// @Param paymentLinkID path string true "Payment link ID"
// @Success 200 {object} PublicInvoiceResponse
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Router /invoices/public/{paymentLinkID} [get]
func (h *Handler) PublicInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reference := chi.URLParam(r, "paymentLinkID")
	if reference == "" {
		SendJSONErr(ctx, w, http.StatusBadRequest, nil, "paymentLinkID is required")
		return
	}

	invoice, err := h.s.PublicInvoice(ctx, reference)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			SendJSONErr(ctx, w, http.StatusNotFound, err, "Invoice not found")
		} else {
			SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to get invoice")
		}

		return
	}

	resp := PublicInvoiceResponse{
		ID:            invoice.ID,
		Currency:      invoice.Currency,
		TotalAmount:   invoice.TotalAmount.String(),
		Status:        invoice.Status.String(),
		PaymentLinkID: invoice.PaymentLinkID,
	}

	if !invoice.DueDate.IsZero() {
		resp.DueDate = invoice.DueDate.Format(time.RFC3339)
	}

	SendJSON(ctx, w, http.StatusOK, resp)
}

type TransactionsResponse struct {
	Transactions []TransactionEntity `json:"transactions"`
	TotalCount   int                 `json:"totalCount"`
}

type TransactionEntity struct {
	ID               int64     `json:"id"`
	InvoiceID        int64     `json:"invoiceId"`
	SenderName       string    `json:"senderName"`
	PrincipalAmount  string    `json:"principalAmount"`
	Currency         string    `json:"currency"`
	FXRate           string    `json:"fxRate"`
	FlatFee          string    `json:"flatFee"`
	GrossSettlement  string    `json:"grossSettlement"`
	FeeInSettlement  string    `json:"feeInSettlement"`
	TaxOnFee         string    `json:"taxOnFee"`
	NetPayout        string    `json:"netPayout"`
	Status           string    `json:"status"`
	SettlementStatus string    `json:"settlementStatus"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Transactions lists the caller's ledger entries with filtering and pagination.
// @Summary List transactions
// @Tags payments
// @Produce json
// @Param invoiceId query int false "Filter by invoice ID"
// @Param currency query string false "Filter by source currency"
// @Param createdAt query string false "Filter by creation date (YYYY-MM-DD)"
// @Param limit query int false "Page size (default 10)"
// @Param page query int false "Page number (default 1)"
// @Param sortBy query string false "Sort column: id, net_payout, created_at"
// @Param orderBy query string false "Sort order: asc, desc"
// @Success 200 {object} TransactionsResponse
// @Failure 500 {object} ErrorResponse "Failed to list transactions"
// @Router /payments/transactions [get]
// @Security BearerAuth
func (h *Handler) Transactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := parseTransactionFilter(r.URL.Query())

	transactions, totalCount, err := h.s.Transactions(ctx, filter)
	if err != nil {
		if errors.Is(err, entity.ErrUnauthenticated) {
			SendJSONErr(ctx, w, http.StatusUnauthorized, err, "Unauthenticated")
			return
		}

		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to get transactions")

		return
	}

	SendJSON(ctx, w, http.StatusOK, TransactionsResponse{
		Transactions: transactionsToAPI(transactions),
		TotalCount:   totalCount,
	})
}

func parseTransactionFilter(url url.Values) entity.TransactionFilter {
	const (
		defaultLimit uint64 = 10
		maxLimit     uint64 = 100
		defaultPage  uint64 = 1
	)

	invoiceID := url.Get("invoiceId")
	currency := url.Get("currency")
	createdAt := url.Get("createdAt")
	qLimit := url.Get("limit")
	qPage := url.Get("page")
	sortBy := entity.TransactionSortCol(url.Get("sortBy"))
	orderBy := entity.OrderByCol(url.Get("orderBy"))

	limit, err := strconv.ParseUint(qLimit, 10, 64)
	if err != nil {
		limit = defaultLimit
	}

	if limit > maxLimit {
		limit = maxLimit
	}

	page, err := strconv.ParseUint(qPage, 10, 64)
	if err != nil {
		page = defaultPage
	}

	if !sortBy.IsValid() {
		sortBy = entity.SortByCreatedAt
	}

	if !orderBy.IsValid() {
		orderBy = entity.DESC
	}

	filter := entity.TransactionFilter{
		Page:    page,
		Limit:   limit,
		SortBy:  sortBy,
		OrderBy: orderBy,
	}

	if id, err := strconv.ParseInt(invoiceID, 10, 64); err == nil {
		filter.InvoiceID = &id
	}

	if currency != "" {
		filter.Currency = &currency
	}

	if createdAt != "" {
		filter.CreatedAt = &createdAt
	}

	return filter
}

func transactionsToAPI(transactions []entity.Transaction) []TransactionEntity {
	res := make([]TransactionEntity, 0, len(transactions))
	for _, t := range transactions {
		res = append(res, TransactionEntity{
			ID:               t.ID,
			InvoiceID:        t.InvoiceID,
			SenderName:       t.SenderName,
			PrincipalAmount:  t.PrincipalAmount.String(),
			Currency:         t.Currency,
			FXRate:           t.FXRate.String(),
			FlatFee:          t.FlatFee.String(),
			GrossSettlement:  t.GrossSettlement.String(),
			FeeInSettlement:  t.FeeInSettlement.String(),
			TaxOnFee:         t.TaxOnFee.String(),
			NetPayout:        t.NetPayout.String(),
			Status:           t.Status.String(),
			SettlementStatus: t.SettlementStatus.String(),
			CreatedAt:        t.CreatedAt,
		})
	}

	return res
}

type VirtualAccountsResponse struct {
	Accounts []VirtualAccountEntity `json:"accounts"`
}

type VirtualAccountEntity struct {
	ID            int64  `json:"id"`
	Currency      string `json:"currency"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	RoutingCode   string `json:"routingCode"`
	Provider      string `json:"provider"`
}

// VirtualAccounts lists the caller's receiving accounts.
// @Summary List virtual accounts
// @Tags accounts
// @Produce json
// @Success 200 {object} VirtualAccountsResponse
// @Router /accounts/virtual [get]
// @Security BearerAuth
func (h *Handler) VirtualAccounts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accounts, err := h.s.VirtualAccounts(ctx)
	if err != nil {
		if errors.Is(err, entity.ErrUnauthenticated) {
			SendJSONErr(ctx, w, http.StatusUnauthorized, err, "Unauthenticated")
			return
		}

		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Failed to get virtual accounts")

		return
	}

	res := make([]VirtualAccountEntity, 0, len(accounts))
	for _, a := range accounts {
		res = append(res, VirtualAccountEntity{
			ID:            a.ID,
			Currency:      a.Currency,
			BankName:      a.BankName,
			AccountNumber: a.AccountNumber,
			RoutingCode:   a.RoutingCode,
			Provider:      a.Provider,
		})
	}

	SendJSON(ctx, w, http.StatusOK, VirtualAccountsResponse{Accounts: res})
}

// HealthHandler - returns service health status.
// @Summary Health check
// @Tags health
// @Produce plain
// @Success 200 {string} string "OK"
// @Router /health [get]
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	_, err := w.Write([]byte("OK\n"))
	if err != nil {
		SendJSONErr(ctx, w, http.StatusInternalServerError, err, "Service is not healthy")
		return
	}
}

// readVerifiedBody reads the request body and, when enabled, checks the
// provider's RSA signature over it (hex encoded SHA-512, X-Signature header).
func (h *Handler) readVerifiedBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if !h.webhookSignCheckEnabled {
		return body, nil
	}

	binarySignature, err := hex.DecodeString(r.Header.Get("X-Signature"))
	if err != nil {
		return nil, fmt.Errorf("decode hex signature: %w", err)
	}

	hashedBody := sha512.Sum512(body)

	err = rsa.VerifyPKCS1v15(h.webhookPublicKey, crypto.SHA512, hashedBody[:], binarySignature)
	if err != nil {
		return nil, fmt.Errorf("verify signature: %w", err)
	}

	return body, nil
}
