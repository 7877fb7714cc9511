package bankx

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/arhyth/bankx Repository

// Repository is the Account Store, Card Store and Transaction Log behind one
// interface. Implementations report missing rows as ErrNotFound and driver
// failures as ErrStorage.
type Repository interface {
	GetAccount(ctx context.Context, id snowflake.ID) (*BankAccount, error)
	GetAccountByIBAN(ctx context.Context, iban string) (*BankAccount, error)
	ListAccounts(ctx context.Context, filter AccountFilter) ([]BankAccount, error)
	CreateAccount(ctx context.Context, acct *BankAccount) error
	// UpdateAccountStatus returns ErrConflict if the stored status is no
	// longer from.
	UpdateAccountStatus(ctx context.Context, id snowflake.ID, from, to AccountStatus) error

	GetCard(ctx context.Context, id snowflake.ID) (*Card, error)
	GetCardByAccount(ctx context.Context, acctID snowflake.ID) (*Card, error)
	ListCards(ctx context.Context, filter CardFilter) ([]Card, error)
	// CreateCard returns ErrConflict if the linked account already has a card
	// or if a second CREDIT card would be created for the same owner.
	CreateCard(ctx context.Context, card *Card) error
	// ApproveCreditCard inserts acct and links it to the approved card in one
	// unit. It returns ErrConflict if the card is no longer PENDING.
	ApproveCreditCard(ctx context.Context, card *Card, acct *BankAccount) error

	ListTransactions(ctx context.Context, filter TransactionFilter) ([]Transaction, error)
	// CommitTransfer returns ErrContention if either account's version moved.
	CommitTransfer(ctx context.Context, tc TransferCommit) error
}
