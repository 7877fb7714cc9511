package bankx

import (
	"context"

	"github.com/shopspring/decimal"
)

var (
	minCreditSalary  = decimal.NewFromInt(500)
	lowSalaryCeiling = decimal.NewFromInt(1000)
	lowSalaryRate    = decimal.NewFromInt(10)
	highSalaryRate   = decimal.NewFromInt(8)
)

// RequestDebitCard issues an already approved DEBIT card linked to an
// approved CURRENT account.
func (s *serviceImpl) RequestDebitCard(ctx context.Context, req DebitCardReq) (*Card, error) {
	acct, err := s.repo.GetAccount(ctx, req.AcctID)
	if err != nil {
		return nil, err
	}
	if req.Requester.Role == RoleClient && acct.OwnerID != req.Requester.UserID {
		s.log.Warn().
			Int64("userId", req.Requester.UserID).
			Stringer("acctID", acct.ID).
			Msg("debit card requested for foreign account")
		return nil, ErrAuthorization{Reason: "account belongs to another user"}
	}
	if acct.Status != AccountApproved {
		s.log.Warn().Stringer("acctID", acct.ID).Msg("debit card requested for unapproved account")
		return nil, ErrInvalidState{Reason: "account is not approved"}
	}
	if acct.Type != AccountCurrent {
		s.log.Warn().Stringer("acctID", acct.ID).Msg("debit card requested for non-current account")
		return nil, ErrInvalidState{Reason: "debit cards link only to current accounts"}
	}
	if _, err = s.repo.GetCardByAccount(ctx, acct.ID); err == nil {
		return nil, ErrConflict{Reason: "account already has a linked card"}
	} else if !isNotFound(err) {
		return nil, err
	}

	linked := acct.ID
	card := &Card{
		ID:              s.node.Generate(),
		OwnerID:         acct.OwnerID,
		Type:            CardDebit,
		LinkedAccountID: &linked,
		Status:          CardApproved,
		CreatedAt:       s.now(),
	}
	if err = s.repo.CreateCard(ctx, card); err != nil {
		return nil, err
	}
	s.log.Info().
		Int64("userId", card.OwnerID).
		Stringer("acctID", acct.ID).
		Stringer("cardID", card.ID).
		Msg("debit card issued")
	return card, nil
}

// RequestCreditCard files a PENDING credit card whose interest rate depends
// on the declared salary.
func (s *serviceImpl) RequestCreditCard(ctx context.Context, req CreditCardReq) (*Card, error) {
	if req.Salary.LessThan(minCreditSalary) {
		s.log.Warn().
			Int64("userId", req.Requester.UserID).
			Str("salary", req.Salary.String()).
			Msg("credit card denied for low salary")
		return nil, ErrPolicyViolation{Rule: "salary too low for a credit card"}
	}
	existing, err := s.repo.ListCards(ctx, CardFilter{OwnerID: &req.Requester.UserID, Type: CardCredit})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, ErrConflict{Reason: "user already has a credit card"}
	}

	rate := highSalaryRate
	if req.Salary.LessThanOrEqual(lowSalaryCeiling) {
		rate = lowSalaryRate
	}
	card := &Card{
		ID:           s.node.Generate(),
		OwnerID:      req.Requester.UserID,
		Type:         CardCredit,
		InterestRate: decimal.NewNullDecimal(rate),
		Status:       CardPending,
		CreatedAt:    s.now(),
	}
	if err = s.repo.CreateCard(ctx, card); err != nil {
		return nil, err
	}
	s.log.Info().
		Int64("userId", card.OwnerID).
		Stringer("cardID", card.ID).
		Msg("credit card requested")
	return card, nil
}

// ApproveCreditCard opens the backing TECHNICAL account and approves the card
// in a single storage unit.
func (s *serviceImpl) ApproveCreditCard(ctx context.Context, req ApproveCardReq) (*Card, error) {
	if req.Limit.IsNegative() {
		return nil, ErrValidation{Fields: map[string]string{"limit": "must not be negative"}}
	}
	if !centScale(req.Limit) {
		return nil, ErrValidation{Fields: map[string]string{"limit": "at most two decimal places"}}
	}
	card, err := s.repo.GetCard(ctx, req.CardID)
	if err != nil {
		return nil, err
	}
	if card.Type != CardCredit {
		return nil, ErrInvalidState{Reason: "only credit cards require approval"}
	}
	if card.Status == CardApproved {
		s.log.Warn().Stringer("cardID", card.ID).Msg("credit card already approved")
		return nil, ErrConflict{Reason: "credit card is already approved"}
	}

	tech := s.newAccount(card.OwnerID, AccountTechnical, AccountApproved)
	approved := *card
	approved.LinkedAccountID = &tech.ID
	approved.CreditLimit = decimal.NewNullDecimal(req.Limit)
	approved.Status = CardApproved
	if err = s.repo.ApproveCreditCard(ctx, &approved, tech); err != nil {
		return nil, err
	}
	s.log.Info().
		Stringer("cardID", card.ID).
		Str("limit", req.Limit.String()).
		Str("iban", tech.IBAN).
		Msg("credit card approved")
	return &approved, nil
}

func (s *serviceImpl) ListCardsByUser(ctx context.Context, userID int64) ([]Card, error) {
	return s.repo.ListCards(ctx, CardFilter{OwnerID: &userID})
}

func (s *serviceImpl) ListPendingCreditCards(ctx context.Context) ([]Card, error) {
	return s.repo.ListCards(ctx, CardFilter{Status: CardPending, Type: CardCredit})
}
