package repository

const (
	selectInvoice = `SELECT
		id,
		owner_id,
		client_id,
		currency,
		total_amount,
		status,
		payment_link_id,
		due_date,
		created_at,
		updated_at
	FROM invoices`

	selectTx = `SELECT
		id,
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
		created_at,
		settled_at
	FROM transactions`
)
