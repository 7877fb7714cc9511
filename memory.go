package bankx

import (
	"context"
	"sort"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// MemoryStore is an in-process Repository. A single RWMutex makes every
// multi-row write atomic.
type MemoryStore struct {
	mu       sync.RWMutex
	accts    map[snowflake.ID]*BankAccount
	byIBAN   map[string]snowflake.ID
	cards    map[snowflake.ID]*Card
	byAcct   map[snowflake.ID]snowflake.ID
	credit   map[int64]snowflake.ID
	txns     []Transaction
	failNext error
}

var (
	_ Repository = (*MemoryStore)(nil)
)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accts:  make(map[snowflake.ID]*BankAccount),
		byIBAN: make(map[string]snowflake.ID),
		cards:  make(map[snowflake.ID]*Card),
		byAcct: make(map[snowflake.ID]snowflake.ID),
		credit: make(map[int64]snowflake.ID),
	}
}

// FailNextWrite makes the next write fail with err wrapped in ErrStorage,
// without applying any of its rows.
func (m *MemoryStore) FailNextWrite(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = err
}

func (m *MemoryStore) takeFailure(op string) error {
	if m.failNext == nil {
		return nil
	}
	err := m.failNext
	m.failNext = nil
	return ErrStorage{Op: op, Err: err}
}

func (m *MemoryStore) GetAccount(_ context.Context, id snowflake.ID) (*BankAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.accts[id]
	if !ok {
		return nil, ErrNotFound{Resource: "account", ID: id.String()}
	}
	cp := *a
	return &cp, nil
}

func (m *MemoryStore) GetAccountByIBAN(ctx context.Context, iban string) (*BankAccount, error) {
	m.mu.RLock()
	id, ok := m.byIBAN[iban]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound{Resource: "account", ID: iban}
	}
	return m.GetAccount(ctx, id)
}

func (m *MemoryStore) ListAccounts(_ context.Context, filter AccountFilter) ([]BankAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]BankAccount, 0)
	for _, a := range m.accts {
		if filter.OwnerID != nil && a.OwnerID != *filter.OwnerID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) CreateAccount(_ context.Context, acct *BankAccount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure("create account"); err != nil {
		return err
	}
	return m.insertAccount(acct)
}

func (m *MemoryStore) insertAccount(acct *BankAccount) error {
	if _, ok := m.byIBAN[acct.IBAN]; ok {
		return ErrConflict{Reason: "iban already in use"}
	}
	if _, ok := m.accts[acct.ID]; ok {
		return ErrConflict{Reason: "account id already in use"}
	}
	cp := *acct
	m.accts[acct.ID] = &cp
	m.byIBAN[acct.IBAN] = acct.ID
	return nil
}

func (m *MemoryStore) UpdateAccountStatus(_ context.Context, id snowflake.ID, from, to AccountStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure("update account status"); err != nil {
		return err
	}
	a, ok := m.accts[id]
	if !ok {
		return ErrNotFound{Resource: "account", ID: id.String()}
	}
	if a.Status != from {
		return ErrConflict{Reason: "account status changed concurrently"}
	}
	a.Status = to
	return nil
}

func (m *MemoryStore) GetCard(_ context.Context, id snowflake.ID) (*Card, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.cards[id]
	if !ok {
		return nil, ErrNotFound{Resource: "card", ID: id.String()}
	}
	return copyCard(c), nil
}

func (m *MemoryStore) GetCardByAccount(ctx context.Context, acctID snowflake.ID) (*Card, error) {
	m.mu.RLock()
	id, ok := m.byAcct[acctID]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound{Resource: "card for account", ID: acctID.String()}
	}
	return m.GetCard(ctx, id)
}

func (m *MemoryStore) ListCards(_ context.Context, filter CardFilter) ([]Card, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Card, 0)
	for _, c := range m.cards {
		if filter.OwnerID != nil && c.OwnerID != *filter.OwnerID {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.Type != "" && c.Type != filter.Type {
			continue
		}
		out = append(out, *copyCard(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) CreateCard(_ context.Context, card *Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure("create card"); err != nil {
		return err
	}
	if card.LinkedAccountID != nil {
		if _, ok := m.byAcct[*card.LinkedAccountID]; ok {
			return ErrConflict{Reason: "account already has a linked card"}
		}
	}
	if card.Type == CardCredit {
		if _, ok := m.credit[card.OwnerID]; ok {
			return ErrConflict{Reason: "user already has a credit card"}
		}
	}
	m.cards[card.ID] = copyCard(card)
	if card.LinkedAccountID != nil {
		m.byAcct[*card.LinkedAccountID] = card.ID
	}
	if card.Type == CardCredit {
		m.credit[card.OwnerID] = card.ID
	}
	return nil
}

func (m *MemoryStore) ApproveCreditCard(_ context.Context, card *Card, acct *BankAccount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure("approve credit card"); err != nil {
		return err
	}
	stored, ok := m.cards[card.ID]
	if !ok {
		return ErrNotFound{Resource: "card", ID: card.ID.String()}
	}
	if stored.Status != CardPending {
		return ErrConflict{Reason: "card already approved"}
	}
	if _, ok := m.byAcct[acct.ID]; ok {
		return ErrConflict{Reason: "account already has a linked card"}
	}
	if err := m.insertAccount(acct); err != nil {
		return err
	}
	m.cards[card.ID] = copyCard(card)
	m.byAcct[acct.ID] = card.ID
	return nil
}

func (m *MemoryStore) ListTransactions(_ context.Context, filter TransactionFilter) ([]Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Transaction, 0)
	for _, t := range m.txns {
		if filter.AccountID != nil && t.AccountID != *filter.AccountID {
			continue
		}
		if filter.OwnerID != nil {
			a, ok := m.accts[t.AccountID]
			if !ok || a.OwnerID != *filter.OwnerID {
				continue
			}
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *MemoryStore) CommitTransfer(_ context.Context, tc TransferCommit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure("commit transfer"); err != nil {
		return err
	}
	sender, ok := m.accts[tc.Sender.AccountID]
	if !ok {
		return ErrNotFound{Resource: "account", ID: tc.Sender.AccountID.String()}
	}
	receiver, ok := m.accts[tc.Receiver.AccountID]
	if !ok {
		return ErrNotFound{Resource: "account", ID: tc.Receiver.AccountID.String()}
	}
	if sender.Version != tc.Sender.ExpectedVersion || receiver.Version != tc.Receiver.ExpectedVersion {
		return ErrContention{Resource: "account version"}
	}
	sender.Balance = tc.Sender.Balance
	sender.Version++
	receiver.Balance = tc.Receiver.Balance
	receiver.Version++
	m.txns = append(m.txns, tc.Debit, tc.Credit)
	return nil
}

func copyCard(c *Card) *Card {
	cp := *c
	if c.LinkedAccountID != nil {
		id := *c.LinkedAccountID
		cp.LinkedAccountID = &id
	}
	return &cp
}
