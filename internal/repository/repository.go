package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype/zeronull"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/remitbase/settlement/internal/entity"
)

type Repository struct {
	db *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{
		db: pool,
	}
}

func (r *Repository) Invoice(ctx context.Context, id int64) (entity.Invoice, error) {
	q := selectInvoice + " WHERE id = $1"
	return scanInvoice(r.db.QueryRow(ctx, q, id))
}

func (r *Repository) InvoiceByPaymentLink(ctx context.Context, reference string) (entity.Invoice, error) {
	q := selectInvoice + " WHERE payment_link_id = $1"
	return scanInvoice(r.db.QueryRow(ctx, q, reference))
}

// CreateInvoice belongs to the out-of-scope invoicing workflow; it exists here
// so fixtures and the local simulator can seed invoices.
func (r *Repository) CreateInvoice(ctx context.Context, inv entity.Invoice) (entity.Invoice, error) {
	const q = `
	INSERT INTO invoices (
		owner_id,
		client_id,
		currency,
		total_amount,
		status,
		payment_link_id,
		due_date,
		created_at,
		updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING id
	`

	err := r.db.QueryRow(
		ctx,
		q,
		inv.OwnerID,
		inv.ClientID,
		inv.Currency,
		inv.TotalAmount,
		inv.Status,
		zeronull.Text(inv.PaymentLinkID),
		zeronull.Timestamptz(inv.DueDate),
		inv.CreatedAt,
		inv.UpdatedAt,
	).Scan(&inv.ID)
	if err != nil {
		return entity.Invoice{}, err
	}

	return inv, nil
}

// ConfirmInvoicePayment commits a successful reconciliation as one atomic unit:
// it takes a row lock on the invoice, re-checks its status under the lock,
// inserts the ledger transaction and moves the invoice to paid. Either both
// writes land or neither does.
//
// The bool result is false when the invoice turned out to be already paid under
// the lock; nothing is written in that case and the caller treats the delivery
// as a duplicate.
func (r *Repository) ConfirmInvoicePayment(ctx context.Context, invoiceID int64, tx entity.Transaction) (entity.Transaction, bool, error) {
	dbTx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return entity.Transaction{}, false, fmt.Errorf("begin tx: %w", err)
	}

	defer dbTx.Rollback(ctx) //nolint:errcheck

	inv, err := scanInvoice(dbTx.QueryRow(ctx, selectInvoice+" WHERE id = $1 FOR UPDATE", invoiceID))
	if err != nil {
		return entity.Transaction{}, false, fmt.Errorf("lock invoice %d: %w", invoiceID, err)
	}

	if inv.Status == entity.InvoiceStatusPaid {
		return entity.Transaction{}, false, nil
	}

	next, err := inv.Status.Transition(entity.InvoiceStatusPaid)
	if err != nil {
		return entity.Transaction{}, false, err
	}

	const insertTx = `
	INSERT INTO transactions (
		invoice_id,
		sender_name,
		principal_amount,
		currency,
		fx_rate,
		flat_fee,
		gross_settlement,
		fee_in_settlement,
		tax_on_fee,
		net_payout,
		status,
		settlement_status,
		created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	RETURNING id
	`

	err = dbTx.QueryRow(
		ctx,
		insertTx,
		tx.InvoiceID,
		zeronull.Text(tx.SenderName),
		tx.PrincipalAmount,
		tx.Currency,
		tx.FXRate,
		tx.FlatFee,
		tx.GrossSettlement,
		tx.FeeInSettlement,
		tx.TaxOnFee,
		tx.NetPayout,
		tx.Status,
		tx.SettlementStatus,
		tx.CreatedAt,
	).Scan(&tx.ID)
	if err != nil {
		return entity.Transaction{}, false, fmt.Errorf("insert transaction: %w", err)
	}

	const updateInvoice = `UPDATE invoices SET status = $1, updated_at = $2 WHERE id = $3`

	_, err = dbTx.Exec(ctx, updateInvoice, next, tx.CreatedAt, invoiceID)
	if err != nil {
		return entity.Transaction{}, false, fmt.Errorf("update invoice %d status: %w", invoiceID, err)
	}

	err = dbTx.Commit(ctx)
	if err != nil {
		return entity.Transaction{}, false, fmt.Errorf("commit: %w", err)
	}

	return tx, true, nil
}

// MarkInvoiceFailed moves the invoice to failed under a row lock. Repeating
// the signal for an already failed invoice is a no-op; a paid invoice is never
// overwritten and yields ErrInvalidStateTransition.
func (r *Repository) MarkInvoiceFailed(ctx context.Context, invoiceID int64, updatedAt time.Time) error {
	dbTx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer dbTx.Rollback(ctx) //nolint:errcheck

	inv, err := scanInvoice(dbTx.QueryRow(ctx, selectInvoice+" WHERE id = $1 FOR UPDATE", invoiceID))
	if err != nil {
		return fmt.Errorf("lock invoice %d: %w", invoiceID, err)
	}

	if inv.Status == entity.InvoiceStatusFailed {
		return nil
	}

	next, err := inv.Status.Transition(entity.InvoiceStatusFailed)
	if err != nil {
		return err
	}

	const q = `UPDATE invoices SET status = $1, updated_at = $2 WHERE id = $3`

	_, err = dbTx.Exec(ctx, q, next, updatedAt, invoiceID)
	if err != nil {
		return fmt.Errorf("update invoice %d status: %w", invoiceID, err)
	}

	return dbTx.Commit(ctx)
}

// SettleProcessingTransactions advances every PROCESSING transaction belonging
// to the owner's invoices to SETTLED. One UPDATE, so the batch is atomic and
// re-running only ever touches rows still in PROCESSING.
func (r *Repository) SettleProcessingTransactions(ctx context.Context, ownerID int64, settledAt time.Time) (int64, error) {
	const q = `
	UPDATE transactions SET settlement_status = $1, settled_at = $2
	WHERE settlement_status = $3
	  AND invoice_id IN (SELECT id FROM invoices WHERE owner_id = $4)
	`

	result, err := r.db.Exec(ctx, q, entity.SettlementStatusSettled, settledAt, entity.SettlementStatusProcessing, ownerID)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected(), nil
}

// SettleAllProcessingTransactions is the unscoped sweep used by the background
// job.
func (r *Repository) SettleAllProcessingTransactions(ctx context.Context, settledAt time.Time) (int64, error) {
	const q = `
	UPDATE transactions SET settlement_status = $1, settled_at = $2
	WHERE settlement_status = $3
	`

	result, err := r.db.Exec(ctx, q, entity.SettlementStatusSettled, settledAt, entity.SettlementStatusProcessing)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected(), nil
}

func (r *Repository) Transaction(ctx context.Context, id int64) (entity.Transaction, error) {
	q := selectTx + " WHERE id = $1"
	return scanTx(r.db.QueryRow(ctx, q, id))
}

func (r *Repository) TransactionsByInvoice(ctx context.Context, invoiceID int64) (txs []entity.Transaction, err error) {
	q := selectTx + " WHERE invoice_id = $1 ORDER BY id"

	rows, err := r.db.Query(ctx, q, invoiceID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	for rows.Next() {
		tx, err := scanTx(rows)
		if err != nil {
			return nil, err
		}

		txs = append(txs, tx)
	}

	return txs, nil
}

func (r *Repository) Transactions(
	ctx context.Context,
	ownerID int64,
	f entity.TransactionFilter,
) ([]entity.Transaction, int, error) {
	stmt := sq.Select(
		"t.id",
		"t.invoice_id",
		"t.sender_name",
		"t.principal_amount",
		"t.currency",
		"t.fx_rate",
		"t.flat_fee",
		"t.gross_settlement",
		"t.fee_in_settlement",
		"t.tax_on_fee",
		"t.net_payout",
		"t.status",
		"t.settlement_status",
		"t.created_at",
		"t.settled_at",
		"COUNT(*) OVER() AS total_count",
	).From("transactions t").
		Join("invoices i ON i.id = t.invoice_id").
		Where(sq.Eq{"i.owner_id": ownerID}).
		PlaceholderFormat(sq.Dollar)

	stmt = applyTransactionFilter(stmt, f).
		Limit(f.Limit).
		Offset(f.Page*f.Limit - f.Limit).
		OrderBy(fmt.Sprintf("t.%s %s", f.SortBy, f.OrderBy))

	sql, args, err := stmt.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	transactions := make([]entity.Transaction, 0, f.Limit)

	var totalCount int

	for rows.Next() {
		var tx entity.Transaction

		var count int

		err = rows.Scan(
			&tx.ID,
			&tx.InvoiceID,
			(*zeronull.Text)(&tx.SenderName),
			&tx.PrincipalAmount,
			&tx.Currency,
			&tx.FXRate,
			&tx.FlatFee,
			&tx.GrossSettlement,
			&tx.FeeInSettlement,
			&tx.TaxOnFee,
			&tx.NetPayout,
			&tx.Status,
			&tx.SettlementStatus,
			&tx.CreatedAt,
			(*zeronull.Timestamptz)(&tx.SettledAt),
			&count,
		)
		if err != nil {
			return nil, 0, err
		}

		totalCount = count

		transactions = append(transactions, tx)
	}

	return transactions, totalCount, nil
}

func applyTransactionFilter(stmt sq.SelectBuilder, f entity.TransactionFilter) sq.SelectBuilder {
	if f.InvoiceID != nil {
		stmt = stmt.Where(sq.Eq{"t.invoice_id": *f.InvoiceID})
	}

	if f.Currency != nil {
		stmt = stmt.Where(sq.Eq{"t.currency": *f.Currency})
	}

	if f.CreatedAt != nil {
		stmt = stmt.Where(sq.GtOrEq{"t.created_at": *f.CreatedAt})
	}

	return stmt
}

func (r *Repository) VirtualAccounts(ctx context.Context, userID int64) (accounts []entity.VirtualAccount, err error) {
	const q = `SELECT
		id,
		user_id,
		currency,
		bank_name,
		account_number,
		routing_code,
		provider,
		created_at
	FROM virtual_accounts WHERE user_id = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	for rows.Next() {
		var a entity.VirtualAccount

		err = rows.Scan(
			&a.ID,
			&a.UserID,
			&a.Currency,
			&a.BankName,
			&a.AccountNumber,
			&a.RoutingCode,
			&a.Provider,
			&a.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, a)
	}

	return accounts, nil
}

// CreateVirtualAccount belongs to the out-of-scope onboarding workflow; kept
// for fixtures and the local simulator.
func (r *Repository) CreateVirtualAccount(ctx context.Context, a entity.VirtualAccount) (entity.VirtualAccount, error) {
	const q = `
	INSERT INTO virtual_accounts (user_id, currency, bank_name, account_number, routing_code, provider, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id
	`

	err := r.db.QueryRow(ctx, q, a.UserID, a.Currency, a.BankName, a.AccountNumber, a.RoutingCode, a.Provider, a.CreatedAt).Scan(&a.ID)
	if err != nil {
		return entity.VirtualAccount{}, err
	}

	return a, nil
}

func scanInvoice(row pgx.Row) (inv entity.Invoice, err error) {
	err = row.Scan(
		&inv.ID,
		&inv.OwnerID,
		&inv.ClientID,
		&inv.Currency,
		&inv.TotalAmount,
		&inv.Status,
		(*zeronull.Text)(&inv.PaymentLinkID),
		(*zeronull.Timestamptz)(&inv.DueDate),
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Invoice{}, entity.ErrNotFound
		}

		return entity.Invoice{}, err
	}

	return inv, nil
}

func scanTx(row pgx.Row) (tx entity.Transaction, err error) {
	err = row.Scan(
		&tx.ID,
		&tx.InvoiceID,
		(*zeronull.Text)(&tx.SenderName),
		&tx.PrincipalAmount,
		&tx.Currency,
		&tx.FXRate,
		&tx.FlatFee,
		&tx.GrossSettlement,
		&tx.FeeInSettlement,
		&tx.TaxOnFee,
		&tx.NetPayout,
		&tx.Status,
		&tx.SettlementStatus,
		&tx.CreatedAt,
		(*zeronull.Timestamptz)(&tx.SettledAt),
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Transaction{}, entity.ErrNotFound
		}

		return entity.Transaction{}, err
	}

	return tx, nil
}
