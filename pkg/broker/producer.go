package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

// Producer publishes settlement lifecycle events for the analytics and
// document-generation consumers. Both are read-only downstreams: a lost event
// never affects the ledger, so writes are async and failures are only logged.
type Producer struct {
	l                *slog.Logger
	w                *kafka.Writer
	settlementsTopic string
}

func NewProducer(l *slog.Logger, brokers []string, topic string) *Producer {
	l = l.WithGroup("kafka").With("topic", topic)

	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "",
		Balancer:               &kafka.LeastBytes{},
		Async:                  true,
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		l:                l,
		w:                w,
		settlementsTopic: topic,
	}
}

type PaymentReconciledEvent struct {
	Type          string `json:"type"`
	TransactionID int64  `json:"transactionId"`
	InvoiceID     int64  `json:"invoiceId"`
	NetPayout     string `json:"netPayout"`
	FXRate        string `json:"fxRate"`
	OccurredAt    string `json:"occurredAt"`
}

func (p *Producer) SendPaymentReconciled(ctx context.Context, txID, invoiceID int64, netPayout, fxRate decimal.Decimal) {
	event := PaymentReconciledEvent{
		Type:          "payment.reconciled",
		TransactionID: txID,
		InvoiceID:     invoiceID,
		NetPayout:     netPayout.String(),
		FXRate:        fxRate.String(),
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}

	p.send(ctx, strconv.FormatInt(txID, 10), event)
}

type SettlementCompletedEvent struct {
	Type         string `json:"type"`
	OwnerID      int64  `json:"ownerId"`
	SettledCount int64  `json:"settledCount"`
	OccurredAt   string `json:"occurredAt"`
}

func (p *Producer) SendSettlementCompleted(ctx context.Context, ownerID, count int64) {
	event := SettlementCompletedEvent{
		Type:         "settlement.completed",
		OwnerID:      ownerID,
		SettledCount: count,
		OccurredAt:   time.Now().UTC().Format(time.RFC3339),
	}

	p.send(ctx, strconv.FormatInt(ownerID, 10), event)
}

func (p *Producer) send(ctx context.Context, key string, event any) {
	b, err := json.Marshal(event)
	if err != nil {
		p.l.Error(fmt.Sprintf("marshal event: %s", err))
		return
	}

	err = p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: b,
		Topic: p.settlementsTopic,
	})
	if err != nil {
		p.l.Error(fmt.Sprintf("write kafka message: %s", err))
		return
	}
}

func (p *Producer) Close() {
	err := p.w.Close()
	if err != nil {
		p.l.Error(fmt.Sprintf("close kafka writer: %s", err))
	}
}
