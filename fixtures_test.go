package bankx_test

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/arhyth/bankx"
)

// ledger wires a real service over a MemoryStore and lets tests place rows
// straight into the store.
type ledger struct {
	store *bankx.MemoryStore
	svc   bankx.Service
	node  *snowflake.Node
	ibans bankx.IBANGenerator
}

func testConfig() *bankx.Config {
	cfg := &bankx.Config{}
	cfg.Defaults()
	cfg.Transfer.LockTimeout = 5 * time.Second
	return cfg
}

func newLedger(t *testing.T, pub bankx.Publisher) *ledger {
	t.Helper()
	store := bankx.NewMemoryStore()
	return newLedgerOn(t, store, store, testConfig(), pub)
}

// newLedgerOn runs the service over repo, which must be backed by store.
func newLedgerOn(t *testing.T, repo bankx.Repository, store *bankx.MemoryStore, cfg *bankx.Config, pub bankx.Publisher) *ledger {
	t.Helper()
	log := zerolog.Nop()
	svc, err := bankx.NewService(repo, cfg, pub, &log)
	require.Nil(t, err)
	node, err := snowflake.NewNode(900)
	require.Nil(t, err)
	return &ledger{
		store: store,
		svc:   svc,
		node:  node,
		ibans: bankx.IBANGenerator{Country: cfg.Ledger.IBANCountry, BankCode: cfg.Ledger.IBANBankCode},
	}
}

func (l *ledger) account(t *testing.T, owner int64, typ bankx.AccountType, status bankx.AccountStatus, balance string) *bankx.BankAccount {
	t.Helper()
	id := l.node.Generate()
	acct := &bankx.BankAccount{
		ID:           id,
		IBAN:         l.ibans.Generate(id),
		Currency:     "EUR",
		OwnerID:      owner,
		Balance:      decimal.RequireFromString(balance),
		Type:         typ,
		Status:       status,
		InterestRate: decimal.Zero,
		CreatedAt:    time.Now().UTC(),
	}
	require.Nil(t, l.store.CreateAccount(context.Background(), acct))
	return acct
}

// funded is an approved CURRENT account with a debit card.
func (l *ledger) funded(t *testing.T, owner int64, balance string) *bankx.BankAccount {
	t.Helper()
	acct := l.account(t, owner, bankx.AccountCurrent, bankx.AccountApproved, balance)
	l.card(t, acct, bankx.CardDebit, decimal.NullDecimal{}, decimal.NullDecimal{})
	return acct
}

// credit is an approved TECHNICAL account backed by a credit card.
func (l *ledger) credit(t *testing.T, owner int64, balance, limit, rate string) *bankx.BankAccount {
	t.Helper()
	acct := l.account(t, owner, bankx.AccountTechnical, bankx.AccountApproved, balance)
	l.card(t, acct, bankx.CardCredit, nullDec(limit), nullDec(rate))
	return acct
}

func (l *ledger) card(t *testing.T, acct *bankx.BankAccount, typ bankx.CardType, limit, rate decimal.NullDecimal) *bankx.Card {
	t.Helper()
	linked := acct.ID
	card := &bankx.Card{
		ID:              l.node.Generate(),
		OwnerID:         acct.OwnerID,
		Type:            typ,
		LinkedAccountID: &linked,
		CreditLimit:     limit,
		InterestRate:    rate,
		Status:          bankx.CardApproved,
		CreatedAt:       time.Now().UTC(),
	}
	require.Nil(t, l.store.CreateCard(context.Background(), card))
	return card
}

func (l *ledger) balance(t *testing.T, id snowflake.ID) decimal.Decimal {
	t.Helper()
	acct, err := l.store.GetAccount(context.Background(), id)
	require.Nil(t, err)
	return acct.Balance
}

func nullDec(s string) decimal.NullDecimal {
	if s == "" {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// gatedStore parks every CommitTransfer until release is closed, holding the
// service's account locks for as long as the test wants.
type gatedStore struct {
	*bankx.MemoryStore
	entered chan struct{}
	release chan struct{}
}

func newGatedStore() *gatedStore {
	return &gatedStore{
		MemoryStore: bankx.NewMemoryStore(),
		entered:     make(chan struct{}, 16),
		release:     make(chan struct{}),
	}
}

func (g *gatedStore) CommitTransfer(ctx context.Context, tc bankx.TransferCommit) error {
	g.entered <- struct{}{}
	<-g.release
	return g.MemoryStore.CommitTransfer(ctx, tc)
}

var (
	client = bankx.Identity{UserID: 7, Role: bankx.RoleClient}
	banker = bankx.Identity{UserID: 1, Role: bankx.RoleBanker}
)
