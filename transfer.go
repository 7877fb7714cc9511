package bankx

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ledgerScale is the number of fractional digits balances and amounts are
// stored with.
const ledgerScale = 4

// Transfer moves req.Amount from the sender account to the account holding
// req.ReceiverIBAN. Debits from TECHNICAL accounts carry the card's interest
// surcharge; the receiver is credited with the same effective amount so the
// pair's balance sum is unchanged. The sender-side record is returned.
func (s *serviceImpl) Transfer(ctx context.Context, req TransferReq) (*Transaction, error) {
	if !req.Amount.IsPositive() {
		s.log.Warn().Str("amount", req.Amount.String()).Msg("transfer with non-positive amount")
		return nil, ErrValidation{Fields: map[string]string{"amount": "must be positive"}}
	}
	if !centScale(req.Amount) {
		return nil, ErrValidation{Fields: map[string]string{"amount": "at most two decimal places"}}
	}

	sender, err := s.repo.GetAccount(ctx, req.SenderAcctID)
	if err != nil {
		return nil, err
	}
	receiver, err := s.repo.GetAccountByIBAN(ctx, NormalizeIBAN(req.ReceiverIBAN))
	if err != nil {
		return nil, err
	}
	if sender.ID == receiver.ID {
		return nil, ErrValidation{Fields: map[string]string{"receiverIban": "same as sender account"}}
	}
	if req.Requester.Role == RoleClient && sender.OwnerID != req.Requester.UserID {
		s.log.Warn().
			Int64("userId", req.Requester.UserID).
			Stringer("acctID", sender.ID).
			Msg("transfer from foreign account")
		return nil, ErrAuthorization{Reason: "sender account belongs to another user"}
	}

	unlock, err := s.locker.Lock(ctx, sender.ID, receiver.ID)
	if err != nil {
		s.log.Warn().
			Stringer("sender", sender.ID).
			Stringer("receiver", receiver.ID).
			Msg("transfer lock timeout")
		return nil, err
	}
	defer unlock()

	// balances and versions read before the lock are stale
	if sender, err = s.repo.GetAccount(ctx, sender.ID); err != nil {
		return nil, err
	}
	if receiver, err = s.repo.GetAccount(ctx, receiver.ID); err != nil {
		return nil, err
	}

	card, err := s.repo.GetCardByAccount(ctx, sender.ID)
	if err != nil {
		if isNotFound(err) {
			s.log.Warn().Stringer("acctID", sender.ID).Msg("transfer from account without linked card")
			return nil, ErrPolicyViolation{Rule: "sender account must have a linked card"}
		}
		return nil, err
	}
	if receiver.Status != AccountApproved {
		return nil, ErrInvalidState{Reason: "receiver account is not approved"}
	}
	if sender.Currency != receiver.Currency {
		return nil, ErrPolicyViolation{Rule: "accounts hold different currencies"}
	}

	debit, err := s.debitAmount(sender, card, req.Amount)
	if err != nil {
		return nil, err
	}

	now := s.now()
	corr := uuid.New()
	tc := TransferCommit{
		Sender: BalanceUpdate{
			AccountID:       sender.ID,
			ExpectedVersion: sender.Version,
			Balance:         sender.Balance.Sub(debit),
		},
		Receiver: BalanceUpdate{
			AccountID:       receiver.ID,
			ExpectedVersion: receiver.Version,
			Balance:         receiver.Balance.Add(debit),
		},
		Debit: Transaction{
			ID:               s.node.Generate(),
			CorrelationID:    corr,
			AccountID:        sender.ID,
			CounterpartyIBAN: receiver.IBAN,
			Amount:           debit,
			Currency:         sender.Currency,
			Kind:             TxnDebit,
			Timestamp:        now,
		},
		Credit: Transaction{
			ID:               s.node.Generate(),
			CorrelationID:    corr,
			AccountID:        receiver.ID,
			CounterpartyIBAN: sender.IBAN,
			Amount:           debit,
			Currency:         receiver.Currency,
			Kind:             TxnCredit,
			Timestamp:        now,
		},
	}
	if err = s.repo.CommitTransfer(ctx, tc); err != nil {
		s.log.Err(err).
			Stringer("sender", sender.ID).
			Str("receiverIban", receiver.IBAN).
			Msg("transfer commit fail")
		return nil, err
	}

	s.log.Info().
		Stringer("sender", sender.ID).
		Str("receiverIban", receiver.IBAN).
		Str("amount", debit.String()).
		Stringer("correlationID", corr).
		Msg("transfer committed")

	evt := TransferEvent{
		CorrelationID: corr,
		SenderAcctID:  sender.ID,
		ReceiverAcct:  receiver.ID,
		ReceiverIBAN:  receiver.IBAN,
		Requested:     req.Amount,
		Amount:        debit,
		Currency:      sender.Currency,
		Timestamp:     now,
	}
	if err := s.pub.PublishTransfer(ctx, evt); err != nil {
		s.log.Err(err).Stringer("correlationID", corr).Msg("error publishing transfer event")
	}

	out := tc.Debit
	return &out, nil
}

// debitAmount applies the account-type policy and returns what leaves the
// sender account.
func (s *serviceImpl) debitAmount(sender *BankAccount, card *Card, amount decimal.Decimal) (decimal.Decimal, error) {
	switch sender.Type {
	case AccountCurrent:
		if sender.Balance.LessThan(amount) {
			s.log.Warn().Stringer("acctID", sender.ID).Msg("insufficient balance")
			return decimal.Zero, ErrInsufficientFunds{
				AccountID: sender.ID.String(),
				Available: sender.Balance.String(),
				Required:  amount.String(),
			}
		}
		return amount, nil
	case AccountTechnical:
		limit := card.CreditLimit.Decimal
		if !card.CreditLimit.Valid {
			limit = decimal.Zero
		}
		rate := card.InterestRate.Decimal
		if !card.InterestRate.Valid {
			rate = decimal.Zero
		}
		effective := amount.Add(amount.Mul(rate).Div(hundred)).Round(ledgerScale)
		if sender.Balance.Sub(effective).LessThan(limit.Neg()) {
			s.log.Warn().Stringer("acctID", sender.ID).Msg("credit limit exceeded")
			return decimal.Zero, ErrCreditLimitExceeded{
				AccountID: sender.ID.String(),
				Limit:     limit.String(),
				Required:  effective.String(),
			}
		}
		return effective, nil
	}
	return decimal.Zero, ErrInvalidState{Reason: "unknown account type " + string(sender.Type)}
}

func (s *serviceImpl) ListTransactionsByUser(ctx context.Context, userID int64) ([]Transaction, error) {
	return s.repo.ListTransactions(ctx, TransactionFilter{OwnerID: &userID})
}

func (s *serviceImpl) ListAllTransactions(ctx context.Context) ([]Transaction, error) {
	return s.repo.ListTransactions(ctx, TransactionFilter{})
}
