package bankx

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleClient Role = "CLIENT"
	RoleBanker Role = "BANKER"
)

// ParseRole is meant to be called once, at the API boundary.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleClient, RoleBanker:
		return r, nil
	}
	return "", ErrAuthorization{Reason: fmt.Sprintf("unknown role %q", s)}
}

// Identity is the already-authenticated caller of an operation.
type Identity struct {
	UserID int64 `json:"userId"`
	Role   Role  `json:"role"`
}

type AccountType string

const (
	AccountCurrent   AccountType = "CURRENT"
	AccountTechnical AccountType = "TECHNICAL"
)

type AccountStatus string

const (
	AccountPending  AccountStatus = "PENDING"
	AccountApproved AccountStatus = "APPROVED"
	AccountRejected AccountStatus = "REJECTED"
)

type BankAccount struct {
	ID           snowflake.ID    `json:"id"`
	IBAN         string          `json:"iban"`
	Currency     string          `json:"currency"`
	OwnerID      int64           `json:"userId"`
	Balance      decimal.Decimal `json:"balance"`
	Type         AccountType     `json:"type"`
	Status       AccountStatus   `json:"status"`
	InterestRate decimal.Decimal `json:"interest"`
	Version      int64           `json:"-"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type CardType string

const (
	CardDebit  CardType = "DEBIT"
	CardCredit CardType = "CREDIT"
)

type CardStatus string

const (
	CardPending  CardStatus = "PENDING"
	CardApproved CardStatus = "APPROVED"
)

// Card authorizes spending from its linked account. CreditLimit and
// InterestRate are only ever set on CREDIT cards.
type Card struct {
	ID              snowflake.ID        `json:"id"`
	OwnerID         int64               `json:"userId"`
	Type            CardType            `json:"type"`
	LinkedAccountID *snowflake.ID       `json:"bankAccountId"`
	CreditLimit     decimal.NullDecimal `json:"creditLimit"`
	InterestRate    decimal.NullDecimal `json:"interestRate"`
	Status          CardStatus          `json:"status"`
	CreatedAt       time.Time           `json:"createdAt"`
}

type TransactionKind string

const (
	TxnDebit  TransactionKind = "DEBIT"
	TxnCredit TransactionKind = "CREDIT"
)

// Transaction is one side of a transfer. Both sides of a transfer share a
// CorrelationID.
type Transaction struct {
	ID               snowflake.ID    `json:"id"`
	CorrelationID    uuid.UUID       `json:"correlationId"`
	AccountID        snowflake.ID    `json:"bankAccountId"`
	CounterpartyIBAN string          `json:"iban"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	Kind             TransactionKind `json:"type"`
	Timestamp        time.Time       `json:"timestamp"`
}

type AccountFilter struct {
	OwnerID *int64
	Status  AccountStatus
}

type CardFilter struct {
	OwnerID *int64
	Status  CardStatus
	Type    CardType
}

type TransactionFilter struct {
	AccountID *snowflake.ID
	OwnerID   *int64
}

// BalanceUpdate is a version-checked balance write.
type BalanceUpdate struct {
	AccountID       snowflake.ID
	ExpectedVersion int64
	Balance         decimal.Decimal
}

// TransferCommit holds every write of one transfer; stores apply all of it
// or none of it.
type TransferCommit struct {
	Sender   BalanceUpdate
	Receiver BalanceUpdate
	Debit    Transaction
	Credit   Transaction
}
