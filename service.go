package bankx

import (
	"context"
	"io"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type ApproveAccountReq struct {
	AcctID snowflake.ID
	Status AccountStatus
}

type DebitCardReq struct {
	Requester Identity
	AcctID    snowflake.ID
}

type CreditCardReq struct {
	Requester Identity
	Salary    decimal.Decimal
}

type ApproveCardReq struct {
	CardID snowflake.ID
	Limit  decimal.Decimal
}

type TransferReq struct {
	Requester    Identity
	SenderAcctID snowflake.ID
	ReceiverIBAN string
	Amount       decimal.Decimal
}

type StatementReq struct {
	Requester Identity
	AcctID    snowflake.ID
}

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks github.com/arhyth/bankx Service

type Service interface {
	RequestCurrentAccount(ctx context.Context, who Identity) (*BankAccount, error)
	ApproveAccount(ctx context.Context, req ApproveAccountReq) (*BankAccount, error)
	ListAccountsByUser(ctx context.Context, userID int64) ([]BankAccount, error)
	ListAllAccounts(ctx context.Context) ([]BankAccount, error)
	ListPendingAccounts(ctx context.Context) ([]BankAccount, error)

	RequestDebitCard(ctx context.Context, req DebitCardReq) (*Card, error)
	RequestCreditCard(ctx context.Context, req CreditCardReq) (*Card, error)
	ApproveCreditCard(ctx context.Context, req ApproveCardReq) (*Card, error)
	ListCardsByUser(ctx context.Context, userID int64) ([]Card, error)
	ListPendingCreditCards(ctx context.Context) ([]Card, error)

	Transfer(ctx context.Context, req TransferReq) (*Transaction, error)
	ListTransactionsByUser(ctx context.Context, userID int64) ([]Transaction, error)
	ListAllTransactions(ctx context.Context) ([]Transaction, error)
	Statement(ctx context.Context, w io.Writer, req StatementReq) error
}

var (
	_ Service = (*serviceImpl)(nil)
)

// NewService builds the engine over repo. pub may be nil, in which case
// transfer events are dropped.
func NewService(repo Repository, cfg *Config, pub Publisher, log *zerolog.Logger) (*serviceImpl, error) {
	node, err := snowflake.NewNode(cfg.Ledger.SnowflakeNode)
	if err != nil {
		return nil, err
	}
	if pub == nil {
		pub = NopPublisher{}
	}
	return &serviceImpl{
		repo:   repo,
		locker: NewLocker(cfg.Transfer.LockTimeout),
		node:   node,
		ibans: IBANGenerator{
			Country:  cfg.Ledger.IBANCountry,
			BankCode: cfg.Ledger.IBANBankCode,
		},
		currency: cfg.Ledger.Currency,
		pub:      pub,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

type serviceImpl struct {
	repo     Repository
	locker   *Locker
	node     *snowflake.Node
	ibans    IBANGenerator
	currency string
	pub      Publisher
	log      *zerolog.Logger
	now      func() time.Time
}

// newAccount allocates id and IBAN for an account with zero balance.
func (s *serviceImpl) newAccount(owner int64, typ AccountType, status AccountStatus) *BankAccount {
	id := s.node.Generate()
	return &BankAccount{
		ID:           id,
		IBAN:         s.ibans.Generate(id),
		Currency:     s.currency,
		OwnerID:      owner,
		Balance:      decimal.Zero,
		Type:         typ,
		Status:       status,
		InterestRate: decimal.Zero,
		CreatedAt:    s.now(),
	}
}
