package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func NewRouter(h *Handler, mw *Middleware) http.Handler {
	mux := chi.NewRouter()
	mux.Use(mw.Log, mw.Recover, mw.Cors)

	mux.Route("/api", func(r chi.Router) {
		r.HandleFunc("/health", h.HealthHandler)

		r.Route("/webhooks", func(r chi.Router) {
			r.Use(mw.APIKeyAuth, mw.WebhookIPWL)
			r.Post("/payment-received", h.PaymentReceived)
			r.Post("/payment-failed", h.PaymentFailed)
		})

		r.Post("/payments/trigger", h.TriggerPayment)

		r.Get("/invoices/public/{paymentLinkID}", h.PublicInvoice)

		r.Group(func(r chi.Router) {
			r.Use(mw.BearerAuth)
			r.Get("/payments/transactions", h.Transactions)
			r.Post("/settlements/process", h.ProcessSettlements)
			r.Get("/accounts/virtual", h.VirtualAccounts)
		})
	})

	return mux
}
