package bankx

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const pgUniqueViolation = "23505"

var (
	pgAccountColumns = `id, iban, currency, owner_id, balance, typ, status, interest_rate, version, created_at`

	pgInsertAcctSQL = `
		INSERT INTO accounts (id, iban, currency, owner_id, balance, typ, status, interest_rate, version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`

	pgUpdateAcctStatusSQL = `
		UPDATE accounts
		SET status = $1
		WHERE id = $2 AND status = $3;
	`

	pgSelectForUpdateAcctsSQL = `
		SELECT id, version
		FROM accounts
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE;
	`

	pgUpdateAcctBalanceSQL = `
		UPDATE accounts
		SET balance = $1, version = version + 1
		WHERE id = $2 AND version = $3;
	`

	pgCardColumns = `id, owner_id, typ, linked_account_id, credit_limit, interest_rate, status, created_at`

	pgInsertCardSQL = `
		INSERT INTO cards (id, owner_id, typ, linked_account_id, credit_limit, interest_rate, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	pgApproveCardSQL = `
		UPDATE cards
		SET linked_account_id = $1, credit_limit = $2, status = $3
		WHERE id = $4 AND status = $5;
	`

	pgTxnColumns = `t.id, t.correlation_id, t.account_id, t.counterparty_iban, t.amount, t.currency, t.kind, t.created_at`

	pgInsertTxnSQL = `
		INSERT INTO transactions (id, correlation_id, account_id, counterparty_iban, amount, currency, kind, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
)

type PostgresEndpoint struct {
	pool *pgxpool.Pool
	log  *zerolog.Logger
}

var (
	_ Repository = (*PostgresEndpoint)(nil)
)

func NewPostgresEndpoint(connStr string, log *zerolog.Logger) (*PostgresEndpoint, error) {
	cfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	if err = pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, err
	}

	endpt := &PostgresEndpoint{
		pool: pool,
		log:  log,
	}
	return endpt, err
}

func (pg *PostgresEndpoint) Close() {
	pg.pool.Close()
}

func (pg *PostgresEndpoint) GetAccount(ctx context.Context, id snowflake.ID) (*BankAccount, error) {
	sql := `SELECT ` + pgAccountColumns + ` FROM accounts WHERE id = $1;`
	acct, err := scanAccount(pg.pool.QueryRow(ctx, sql, id.Int64()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound{Resource: "account", ID: id.String()}
		}
		return nil, ErrStorage{Op: "get account", Err: err}
	}
	return acct, nil
}

func (pg *PostgresEndpoint) GetAccountByIBAN(ctx context.Context, iban string) (*BankAccount, error) {
	sql := `SELECT ` + pgAccountColumns + ` FROM accounts WHERE iban = $1;`
	acct, err := scanAccount(pg.pool.QueryRow(ctx, sql, iban))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound{Resource: "account", ID: iban}
		}
		return nil, ErrStorage{Op: "get account by iban", Err: err}
	}
	return acct, nil
}

func (pg *PostgresEndpoint) ListAccounts(ctx context.Context, filter AccountFilter) ([]BankAccount, error) {
	sql := `SELECT ` + pgAccountColumns + ` FROM accounts WHERE 1=1`
	args := []any{}
	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		sql += fmt.Sprintf(" AND owner_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		sql += fmt.Sprintf(" AND status = $%d", len(args))
	}
	sql += " ORDER BY id;"

	rows, err := pg.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, ErrStorage{Op: "list accounts", Err: err}
	}
	defer rows.Close()

	accts := make([]BankAccount, 0)
	for rows.Next() {
		acct, err := scanAccount(rows)
		if err != nil {
			return nil, ErrStorage{Op: "scan account", Err: err}
		}
		accts = append(accts, *acct)
	}
	if err = rows.Err(); err != nil {
		return nil, ErrStorage{Op: "list accounts", Err: err}
	}
	return accts, nil
}

func (pg *PostgresEndpoint) CreateAccount(ctx context.Context, acct *BankAccount) error {
	if _, err := pg.pool.Exec(ctx, pgInsertAcctSQL, acctArgs(acct)...); err != nil {
		return pgWriteErr("create account", err)
	}
	return nil
}

func (pg *PostgresEndpoint) UpdateAccountStatus(ctx context.Context, id snowflake.ID, from, to AccountStatus) error {
	tag, err := pg.pool.Exec(ctx, pgUpdateAcctStatusSQL, string(to), id.Int64(), string(from))
	if err != nil {
		return pgWriteErr("update account status", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err = pg.GetAccount(ctx, id); err != nil {
			return err
		}
		return ErrConflict{Reason: "account status changed concurrently"}
	}
	return nil
}

func (pg *PostgresEndpoint) GetCard(ctx context.Context, id snowflake.ID) (*Card, error) {
	sql := `SELECT ` + pgCardColumns + ` FROM cards WHERE id = $1;`
	card, err := scanCard(pg.pool.QueryRow(ctx, sql, id.Int64()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound{Resource: "card", ID: id.String()}
		}
		return nil, ErrStorage{Op: "get card", Err: err}
	}
	return card, nil
}

func (pg *PostgresEndpoint) GetCardByAccount(ctx context.Context, acctID snowflake.ID) (*Card, error) {
	sql := `SELECT ` + pgCardColumns + ` FROM cards WHERE linked_account_id = $1;`
	card, err := scanCard(pg.pool.QueryRow(ctx, sql, acctID.Int64()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound{Resource: "card for account", ID: acctID.String()}
		}
		return nil, ErrStorage{Op: "get card by account", Err: err}
	}
	return card, nil
}

func (pg *PostgresEndpoint) ListCards(ctx context.Context, filter CardFilter) ([]Card, error) {
	sql := `SELECT ` + pgCardColumns + ` FROM cards WHERE 1=1`
	args := []any{}
	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		sql += fmt.Sprintf(" AND owner_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		sql += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		sql += fmt.Sprintf(" AND typ = $%d", len(args))
	}
	sql += " ORDER BY id;"

	rows, err := pg.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, ErrStorage{Op: "list cards", Err: err}
	}
	defer rows.Close()

	cards := make([]Card, 0)
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, ErrStorage{Op: "scan card", Err: err}
		}
		cards = append(cards, *card)
	}
	if err = rows.Err(); err != nil {
		return nil, ErrStorage{Op: "list cards", Err: err}
	}
	return cards, nil
}

func (pg *PostgresEndpoint) CreateCard(ctx context.Context, card *Card) error {
	if _, err := pg.pool.Exec(ctx, pgInsertCardSQL, cardArgs(card)...); err != nil {
		return pgWriteErr("create card", err)
	}
	return nil
}

func (pg *PostgresEndpoint) ApproveCreditCard(ctx context.Context, card *Card, acct *BankAccount) error {
	return pg.inTx(ctx, "approve credit card", func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, pgInsertAcctSQL, acctArgs(acct)...); err != nil {
			return pgWriteErr("insert technical account", err)
		}
		tag, err := tx.Exec(ctx, pgApproveCardSQL,
			acct.ID.Int64(), card.CreditLimit, string(CardApproved), card.ID.Int64(), string(CardPending))
		if err != nil {
			return pgWriteErr("approve card", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrConflict{Reason: "card already approved"}
		}
		return nil
	})
}

func (pg *PostgresEndpoint) ListTransactions(ctx context.Context, filter TransactionFilter) ([]Transaction, error) {
	sql := `SELECT ` + pgTxnColumns + ` FROM transactions t`
	args := []any{}
	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		sql += fmt.Sprintf(" JOIN accounts a ON a.id = t.account_id AND a.owner_id = $%d", len(args))
	}
	sql += " WHERE 1=1"
	if filter.AccountID != nil {
		args = append(args, filter.AccountID.Int64())
		sql += fmt.Sprintf(" AND t.account_id = $%d", len(args))
	}
	sql += " ORDER BY t.id;"

	rows, err := pg.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, ErrStorage{Op: "list transactions", Err: err}
	}
	defer rows.Close()

	txns := make([]Transaction, 0)
	for rows.Next() {
		var (
			id, acctID int64
			kind       string
			t          Transaction
		)
		if err = rows.Scan(&id, &t.CorrelationID, &acctID, &t.CounterpartyIBAN, &t.Amount, &t.Currency, &kind, &t.Timestamp); err != nil {
			return nil, ErrStorage{Op: "scan transaction", Err: err}
		}
		t.ID = snowflake.ParseInt64(id)
		t.AccountID = snowflake.ParseInt64(acctID)
		t.Kind = TransactionKind(kind)
		txns = append(txns, t)
	}
	if err = rows.Err(); err != nil {
		return nil, ErrStorage{Op: "list transactions", Err: err}
	}
	return txns, nil
}

// CommitTransfer locks both rows in id order, applies the version-checked
// balance updates and appends the transaction pair in one database
// transaction.
func (pg *PostgresEndpoint) CommitTransfer(ctx context.Context, tc TransferCommit) error {
	return pg.inTx(ctx, "commit transfer", func(tx pgx.Tx) error {
		ids := []int64{tc.Sender.AccountID.Int64(), tc.Receiver.AccountID.Int64()}
		rows, err := tx.Query(ctx, pgSelectForUpdateAcctsSQL, ids)
		if err != nil {
			return ErrStorage{Op: "lock accounts", Err: err}
		}
		rows.Close()
		if err = rows.Err(); err != nil {
			return ErrStorage{Op: "lock accounts", Err: err}
		}

		for _, u := range []BalanceUpdate{tc.Sender, tc.Receiver} {
			tag, err := tx.Exec(ctx, pgUpdateAcctBalanceSQL, u.Balance, u.AccountID.Int64(), u.ExpectedVersion)
			if err != nil {
				return pgWriteErr("update balance", err)
			}
			if tag.RowsAffected() == 0 {
				return ErrContention{Resource: "account version"}
			}
		}

		batch := &pgx.Batch{}
		for _, t := range []Transaction{tc.Debit, tc.Credit} {
			batch.Queue(pgInsertTxnSQL, t.ID.Int64(), t.CorrelationID, t.AccountID.Int64(),
				t.CounterpartyIBAN, t.Amount, t.Currency, string(t.Kind), t.Timestamp)
		}
		btresults := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err = btresults.Exec(); err != nil {
				btresults.Close()
				return pgWriteErr("insert transaction", err)
			}
		}
		if err = btresults.Close(); err != nil {
			return pgWriteErr("insert transaction", err)
		}
		return nil
	})
}

func (pg *PostgresEndpoint) inTx(ctx context.Context, op string, fn func(pgx.Tx) error) error {
	tx, err := pg.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return ErrStorage{Op: op, Err: err}
	}
	if err = fn(tx); err != nil {
		if rerr := tx.Rollback(ctx); rerr != nil && !errors.Is(rerr, pgx.ErrTxClosed) {
			pg.log.Err(rerr).Str("op", op).Msg("transaction rollback fail")
		}
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return ErrStorage{Op: op, Err: err}
	}
	return nil
}

func pgWriteErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		switch pgErr.ConstraintName {
		case "cards_linked_account_id_key":
			return ErrConflict{Reason: "account already has a linked card"}
		case "cards_one_credit_per_owner":
			return ErrConflict{Reason: "user already has a credit card"}
		case "accounts_iban_key":
			return ErrConflict{Reason: "iban already in use"}
		}
		return ErrConflict{Reason: pgErr.ConstraintName}
	}
	return ErrStorage{Op: op, Err: err}
}

func acctArgs(a *BankAccount) []any {
	return []any{
		a.ID.Int64(), a.IBAN, a.Currency, a.OwnerID, a.Balance,
		string(a.Type), string(a.Status), a.InterestRate, a.Version, a.CreatedAt,
	}
}

func cardArgs(c *Card) []any {
	var linked *int64
	if c.LinkedAccountID != nil {
		id := c.LinkedAccountID.Int64()
		linked = &id
	}
	return []any{
		c.ID.Int64(), c.OwnerID, string(c.Type), linked,
		c.CreditLimit, c.InterestRate, string(c.Status), c.CreatedAt,
	}
}

func scanAccount(row pgx.Row) (*BankAccount, error) {
	var (
		id        int64
		typ, stat string
		a         BankAccount
	)
	err := row.Scan(&id, &a.IBAN, &a.Currency, &a.OwnerID, &a.Balance,
		&typ, &stat, &a.InterestRate, &a.Version, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	a.ID = snowflake.ParseInt64(id)
	a.Type = AccountType(typ)
	a.Status = AccountStatus(stat)
	return &a, nil
}

func scanCard(row pgx.Row) (*Card, error) {
	var (
		id        int64
		linked    *int64
		typ, stat string
		c         Card
	)
	err := row.Scan(&id, &c.OwnerID, &typ, &linked, &c.CreditLimit, &c.InterestRate, &stat, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.ID = snowflake.ParseInt64(id)
	c.Type = CardType(typ)
	c.Status = CardStatus(stat)
	if linked != nil {
		lid := snowflake.ParseInt64(*linked)
		c.LinkedAccountID = &lid
	}
	return &c, nil
}
