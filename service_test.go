package bankx_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arhyth/bankx"
)

func TestNewService(t *testing.T) {
	t.Run("returns an error on an out of range snowflake node", func(tt *testing.T) {
		as := assert.New(tt)
		cfg := testConfig()
		cfg.Ledger.SnowflakeNode = 5000
		_, err := bankx.NewService(bankx.NewMemoryStore(), cfg, nil, nil)
		as.NotNil(err)
	})
}

func TestRequestCurrentAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending current account for a client", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		l := newLedger(tt, nil)

		acct, err := l.svc.RequestCurrentAccount(ctx, client)
		reqrd.Nil(err)
		as.Equal(bankx.AccountPending, acct.Status)
		as.Equal(bankx.AccountCurrent, acct.Type)
		as.Equal(client.UserID, acct.OwnerID)
		as.Equal("EUR", acct.Currency)
		as.True(acct.Balance.IsZero())
		as.True(bankx.ValidIBAN(acct.IBAN))

		stored, err := l.store.GetAccountByIBAN(ctx, acct.IBAN)
		reqrd.Nil(err)
		as.Equal(acct.ID, stored.ID)
	})

	t.Run("rejects a banker", func(tt *testing.T) {
		as := assert.New(tt)
		l := newLedger(tt, nil)

		acct, err := l.svc.RequestCurrentAccount(ctx, banker)
		as.Nil(acct)
		as.ErrorAs(err, &bankx.ErrAuthorization{})
	})

	t.Run("gives every account a distinct IBAN", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		l := newLedger(tt, nil)

		seen := map[string]bool{}
		for i := 0; i < 50; i++ {
			acct, err := l.svc.RequestCurrentAccount(ctx, client)
			reqrd.Nil(err)
			as.False(seen[acct.IBAN])
			seen[acct.IBAN] = true
		}
	})

	t.Run("surfaces storage failures as ErrStorage", func(tt *testing.T) {
		as := assert.New(tt)
		l := newLedger(tt, nil)
		l.store.FailNextWrite(errors.New("disk on fire"))

		_, err := l.svc.RequestCurrentAccount(ctx, client)
		as.True(bankx.IsStorage(err))
		accts, _ := l.svc.ListAllAccounts(ctx)
		as.Empty(accts)
	})
}

func TestApproveAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("approves a pending account", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		l := newLedger(tt, nil)
		acct := l.account(tt, 7, bankx.AccountCurrent, bankx.AccountPending, "0")

		got, err := l.svc.ApproveAccount(ctx, bankx.ApproveAccountReq{AcctID: acct.ID, Status: bankx.AccountApproved})
		reqrd.Nil(err)
		as.Equal(bankx.AccountApproved, got.Status)

		pending, err := l.svc.ListPendingAccounts(ctx)
		reqrd.Nil(err)
		as.Empty(pending)
	})

	t.Run("rejects a pending account", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		l := newLedger(tt, nil)
		acct := l.account(tt, 7, bankx.AccountCurrent, bankx.AccountPending, "0")

		got, err := l.svc.ApproveAccount(ctx, bankx.ApproveAccountReq{AcctID: acct.ID, Status: bankx.AccountRejected})
		reqrd.Nil(err)
		as.Equal(bankx.AccountRejected, got.Status)
	})

	t.Run("re-approval fails with conflict and changes nothing", func(tt *testing.T) {
		as := assert.New(tt)
		l := newLedger(tt, nil)
		acct := l.account(tt, 7, bankx.AccountCurrent, bankx.AccountApproved, "12.50")

		for _, st := range []bankx.AccountStatus{bankx.AccountApproved, bankx.AccountRejected} {
			_, err := l.svc.ApproveAccount(ctx, bankx.ApproveAccountReq{AcctID: acct.ID, Status: st})
			as.ErrorAs(err, &bankx.ErrConflict{})
		}
		stored, err := l.store.GetAccount(ctx, acct.ID)
		as.Nil(err)
		as.Equal(bankx.AccountApproved, stored.Status)
		as.True(stored.Balance.Equal(dec("12.50")))
	})

	t.Run("rejected accounts are terminal", func(tt *testing.T) {
		as := assert.New(tt)
		l := newLedger(tt, nil)
		acct := l.account(tt, 7, bankx.AccountCurrent, bankx.AccountRejected, "0")

		_, err := l.svc.ApproveAccount(ctx, bankx.ApproveAccountReq{AcctID: acct.ID, Status: bankx.AccountApproved})
		as.ErrorAs(err, &bankx.ErrInvalidState{})
	})

	t.Run("returns not found for an unknown account", func(tt *testing.T) {
		as := assert.New(tt)
		l := newLedger(tt, nil)

		_, err := l.svc.ApproveAccount(ctx, bankx.ApproveAccountReq{AcctID: l.node.Generate(), Status: bankx.AccountApproved})
		as.ErrorAs(err, &bankx.ErrNotFound{})
	})

	t.Run("returns validation error on an unknown status", func(tt *testing.T) {
		as := assert.New(tt)
		l := newLedger(tt, nil)
		acct := l.account(tt, 7, bankx.AccountCurrent, bankx.AccountPending, "0")

		_, err := l.svc.ApproveAccount(ctx, bankx.ApproveAccountReq{AcctID: acct.ID, Status: bankx.AccountPending})
		as.ErrorAs(err, &bankx.ErrValidation{})
	})
}

func TestListAccounts(t *testing.T) {
	as := assert.New(t)
	reqrd := require.New(t)
	ctx := context.Background()
	l := newLedger(t, nil)
	l.account(t, 7, bankx.AccountCurrent, bankx.AccountPending, "0")
	l.account(t, 7, bankx.AccountCurrent, bankx.AccountApproved, "0")
	l.account(t, 8, bankx.AccountCurrent, bankx.AccountPending, "0")

	mine, err := l.svc.ListAccountsByUser(ctx, 7)
	reqrd.Nil(err)
	as.Len(mine, 2)
	all, err := l.svc.ListAllAccounts(ctx)
	reqrd.Nil(err)
	as.Len(all, 3)
	pending, err := l.svc.ListPendingAccounts(ctx)
	reqrd.Nil(err)
	as.Len(pending, 2)
}

func TestRequestDebitCard(t *testing.T) {
	ctx := context.Background()

	t.Run("issues an approved card linked to the account", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		l := newLedger(tt, nil)
		acct := l.account(tt, client.UserID, bankx.AccountCurrent, bankx.AccountApproved, "0")

		card, err := l.svc.RequestDebitCard(ctx, bankx.DebitCardReq{Requester: client, AcctID: acct.ID})
		reqrd.Nil(err)
		as.Equal(bankx.CardDebit, card.Type)
		as.Equal(bankx.CardApproved, card.Status)
		reqrd.NotNil(card.LinkedAccountID)
		as.Equal(acct.ID, *card.LinkedAccountID)
		as.False(card.CreditLimit.Valid)
	})

	t.Run("banker-issued card belongs to the account owner", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		l := newLedger(tt, nil)
		acct := l.account(tt, client.UserID, bankx.AccountCurrent, bankx.AccountApproved, "0")

		card, err := l.svc.RequestDebitCard(ctx, bankx.DebitCardReq{Requester: banker, AcctID: acct.ID})
		reqrd.Nil(err)
		as.Equal(client.UserID, card.OwnerID)

		cards, err := l.svc.ListCardsByUser(ctx, client.UserID)
		reqrd.Nil(err)
		as.Len(cards, 1)
		cards, err = l.svc.ListCardsByUser(ctx, banker.UserID)
		reqrd.Nil(err)
		as.Empty(cards)
	})

	t.Run("fails with invalid state on a pending account", func(tt *testing.T) {
		as := assert.New(tt)
		l := newLedger(tt, nil)
		acct := l.account(tt, client.UserID, bankx.AccountCurrent, bankx.AccountPending, "0")

		card, err := l.svc.RequestDebitCard(ctx, bankx.DebitCardReq{Requester: client, AcctID: acct.ID})
		as.Nil(card)
		as.ErrorAs(err, &bankx.ErrInvalidState{})
	})

	t.Run("fails with invalid state on a technical account", func(tt *testing.T) {
		as := assert.New(tt)
		l := newLedger(tt, nil)
		acct := l.account(tt, client.UserID, bankx.AccountTechnical, bankx.AccountApproved, "0")

		_, err := l.svc.RequestDebitCard(ctx, bankx.DebitCardReq{Requester: client, AcctID: acct.ID})
		as.ErrorAs(err, &bankx.ErrInvalidState{})
	})

	t.Run("fails with conflict when the account already has a card", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		l := newLedger(tt, nil)
		acct := l.account(tt, client.UserID, bankx.AccountCurrent, bankx.AccountApproved, "0")

		_, err := l.svc.RequestDebitCard(ctx, bankx.DebitCardReq{Requester: client, AcctID: acct.ID})
		reqrd.Nil(err)
		_, err = l.svc.RequestDebitCard(ctx, bankx.DebitCardReq{Requester: client, AcctID: acct.ID})
		as.ErrorAs(err, &bankx.ErrConflict{})

		cards, err := l.svc.ListCardsByUser(ctx, client.UserID)
		reqrd.Nil(err)
		as.Len(cards, 1)
	})

	t.Run("fails with not found on an unknown account", func(tt *testing.T) {
		as := assert.New(tt)
		l := newLedger(tt, nil)

		_, err := l.svc.RequestDebitCard(ctx, bankx.DebitCardReq{Requester: client, AcctID: l.node.Generate()})
		as.ErrorAs(err, &bankx.ErrNotFound{})
	})

	t.Run("refuses a client linking someone else's account", func(tt *testing.T) {
		as := assert.New(tt)
		l := newLedger(tt, nil)
		acct := l.account(tt, 99, bankx.AccountCurrent, bankx.AccountApproved, "0")

		_, err := l.svc.RequestDebitCard(ctx, bankx.DebitCardReq{Requester: client, AcctID: acct.ID})
		as.ErrorAs(err, &bankx.ErrAuthorization{})
	})
}

func TestRequestCreditCard(t *testing.T) {
	ctx := context.Background()

	t.Run("fails with policy violation below 500", func(tt *testing.T) {
		as := assert.New(tt)
		l := newLedger(tt, nil)

		card, err := l.svc.RequestCreditCard(ctx, bankx.CreditCardReq{Requester: client, Salary: dec("400")})
		as.Nil(card)
		as.ErrorAs(err, &bankx.ErrPolicyViolation{})
	})

	tests := []struct {
		salary string
		rate   string
	}{
		{"500", "10"},
		{"1000", "10"},
		{"1000.01", "8"},
		{"1500", "8"},
	}
	for _, tc := range tests {
		t.Run("salary "+tc.salary+" gets rate "+tc.rate, func(tt *testing.T) {
			as := assert.New(tt)
			reqrd := require.New(tt)
			l := newLedger(tt, nil)

			card, err := l.svc.RequestCreditCard(ctx, bankx.CreditCardReq{Requester: client, Salary: dec(tc.salary)})
			reqrd.Nil(err)
			as.Equal(bankx.CardCredit, card.Type)
			as.Equal(bankx.CardPending, card.Status)
			as.Nil(card.LinkedAccountID)
			as.False(card.CreditLimit.Valid)
			reqrd.True(card.InterestRate.Valid)
			as.True(card.InterestRate.Decimal.Equal(dec(tc.rate)))
		})
	}

	t.Run("fails with conflict on a second credit card", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		l := newLedger(tt, nil)

		_, err := l.svc.RequestCreditCard(ctx, bankx.CreditCardReq{Requester: client, Salary: dec("1500")})
		reqrd.Nil(err)
		_, err = l.svc.RequestCreditCard(ctx, bankx.CreditCardReq{Requester: client, Salary: dec("2500")})
		as.ErrorAs(err, &bankx.ErrConflict{})
	})
}

func TestApproveCreditCard(t *testing.T) {
	ctx := context.Background()

	t.Run("opens and links a technical account", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		l := newLedger(tt, nil)
		req, err := l.svc.RequestCreditCard(ctx, bankx.CreditCardReq{Requester: client, Salary: dec("1500")})
		reqrd.Nil(err)

		pending, err := l.svc.ListPendingCreditCards(ctx)
		reqrd.Nil(err)
		as.Len(pending, 1)

		card, err := l.svc.ApproveCreditCard(ctx, bankx.ApproveCardReq{CardID: req.ID, Limit: dec("500")})
		reqrd.Nil(err)
		as.Equal(bankx.CardApproved, card.Status)
		as.True(card.CreditLimit.Decimal.Equal(dec("500")))
		reqrd.NotNil(card.LinkedAccountID)

		tech, err := l.store.GetAccount(ctx, *card.LinkedAccountID)
		reqrd.Nil(err)
		as.Equal(bankx.AccountTechnical, tech.Type)
		as.Equal(bankx.AccountApproved, tech.Status)
		as.Equal(client.UserID, tech.OwnerID)
		as.True(tech.Balance.IsZero())

		linked, err := l.store.GetCardByAccount(ctx, tech.ID)
		reqrd.Nil(err)
		as.Equal(card.ID, linked.ID)

		pending, err = l.svc.ListPendingCreditCards(ctx)
		reqrd.Nil(err)
		as.Empty(pending)
	})

	t.Run("re-approval fails with conflict and opens no second account", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		l := newLedger(tt, nil)
		req, err := l.svc.RequestCreditCard(ctx, bankx.CreditCardReq{Requester: client, Salary: dec("1500")})
		reqrd.Nil(err)
		_, err = l.svc.ApproveCreditCard(ctx, bankx.ApproveCardReq{CardID: req.ID, Limit: dec("500")})
		reqrd.Nil(err)

		_, err = l.svc.ApproveCreditCard(ctx, bankx.ApproveCardReq{CardID: req.ID, Limit: dec("900")})
		as.ErrorAs(err, &bankx.ErrConflict{})

		accts, err := l.svc.ListAccountsByUser(ctx, client.UserID)
		reqrd.Nil(err)
		as.Len(accts, 1)
		card, err := l.store.GetCard(ctx, req.ID)
		reqrd.Nil(err)
		as.True(card.CreditLimit.Decimal.Equal(dec("500")))
	})

	t.Run("fails with invalid state on a debit card", func(tt *testing.T) {
		as := assert.New(tt)
		l := newLedger(tt, nil)
		acct := l.funded(tt, client.UserID, "0")
		card, err := l.store.GetCardByAccount(ctx, acct.ID)
		as.Nil(err)

		_, err = l.svc.ApproveCreditCard(ctx, bankx.ApproveCardReq{CardID: card.ID, Limit: dec("500")})
		as.ErrorAs(err, &bankx.ErrInvalidState{})
	})

	t.Run("rejects a limit finer than a cent", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		l := newLedger(tt, nil)
		req, err := l.svc.RequestCreditCard(ctx, bankx.CreditCardReq{Requester: client, Salary: dec("1500")})
		reqrd.Nil(err)

		_, err = l.svc.ApproveCreditCard(ctx, bankx.ApproveCardReq{CardID: req.ID, Limit: dec("1.001")})
		as.ErrorAs(err, &bankx.ErrValidation{})

		card, err := l.store.GetCard(ctx, req.ID)
		reqrd.Nil(err)
		as.Equal(bankx.CardPending, card.Status)
	})

	t.Run("fails with not found on an unknown card", func(tt *testing.T) {
		as := assert.New(tt)
		l := newLedger(tt, nil)

		_, err := l.svc.ApproveCreditCard(ctx, bankx.ApproveCardReq{CardID: l.node.Generate(), Limit: dec("500")})
		as.ErrorAs(err, &bankx.ErrNotFound{})
	})

	t.Run("leaves neither account nor approval behind on storage failure", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		l := newLedger(tt, nil)
		req, err := l.svc.RequestCreditCard(ctx, bankx.CreditCardReq{Requester: client, Salary: dec("1500")})
		reqrd.Nil(err)

		l.store.FailNextWrite(errors.New("connection reset"))
		_, err = l.svc.ApproveCreditCard(ctx, bankx.ApproveCardReq{CardID: req.ID, Limit: dec("500")})
		as.True(bankx.IsStorage(err))

		accts, err := l.svc.ListAllAccounts(ctx)
		reqrd.Nil(err)
		as.Empty(accts)
		card, err := l.store.GetCard(ctx, req.ID)
		reqrd.Nil(err)
		as.Equal(bankx.CardPending, card.Status)
		as.Nil(card.LinkedAccountID)
	})
}
