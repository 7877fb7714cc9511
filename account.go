package bankx

import (
	"context"
	"fmt"
)

func (s *serviceImpl) RequestCurrentAccount(ctx context.Context, who Identity) (*BankAccount, error) {
	if who.Role != RoleClient {
		s.log.Warn().
			Int64("userId", who.UserID).
			Str("role", string(who.Role)).
			Msg("account request by non-client")
		return nil, ErrAuthorization{Reason: "only clients can request accounts"}
	}

	acct := s.newAccount(who.UserID, AccountCurrent, AccountPending)
	if err := s.repo.CreateAccount(ctx, acct); err != nil {
		s.log.Err(err).Int64("userId", who.UserID).Msg("error creating current account")
		return nil, err
	}
	s.log.Info().
		Int64("userId", who.UserID).
		Str("iban", acct.IBAN).
		Msg("current account requested")
	return acct, nil
}

func (s *serviceImpl) ApproveAccount(ctx context.Context, req ApproveAccountReq) (*BankAccount, error) {
	if req.Status != AccountApproved && req.Status != AccountRejected {
		return nil, ErrValidation{Fields: map[string]string{
			"status": fmt.Sprintf("must be %s or %s", AccountApproved, AccountRejected),
		}}
	}
	acct, err := s.repo.GetAccount(ctx, req.AcctID)
	if err != nil {
		return nil, err
	}
	switch acct.Status {
	case AccountApproved:
		s.log.Warn().Stringer("acctID", acct.ID).Msg("attempt to re-approve account")
		return nil, ErrConflict{Reason: "account is already approved"}
	case AccountRejected:
		return nil, ErrInvalidState{Reason: "account was rejected"}
	}

	if err = s.repo.UpdateAccountStatus(ctx, acct.ID, acct.Status, req.Status); err != nil {
		return nil, err
	}
	acct.Status = req.Status
	s.log.Info().
		Stringer("acctID", acct.ID).
		Str("status", string(req.Status)).
		Msg("account status updated")
	return acct, nil
}

func (s *serviceImpl) ListAccountsByUser(ctx context.Context, userID int64) ([]BankAccount, error) {
	return s.repo.ListAccounts(ctx, AccountFilter{OwnerID: &userID})
}

func (s *serviceImpl) ListAllAccounts(ctx context.Context) ([]BankAccount, error) {
	return s.repo.ListAccounts(ctx, AccountFilter{})
}

func (s *serviceImpl) ListPendingAccounts(ctx context.Context) ([]BankAccount, error) {
	return s.repo.ListAccounts(ctx, AccountFilter{Status: AccountPending})
}
