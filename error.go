package bankx

import (
	"errors"
	"fmt"
)

var (
	ErrInternalServer = errors.New("internal server error")
)

// ErrValidation reports malformed input, keyed by field.
type ErrValidation struct {
	Fields map[string]string `json:"fields"`
}

func (e ErrValidation) Error() string {
	return fmt.Sprintf("missing/invalid params: %v", e.Fields)
}

type ErrNotFound struct {
	Resource string `json:"resource"`
	ID       string `json:"id"`
}

func (e ErrNotFound) Error() string {
	if e.Resource == "" {
		return "record not found"
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

type ErrAuthorization struct {
	Reason string `json:"reason"`
}

func (e ErrAuthorization) Error() string {
	return "forbidden: " + e.Reason
}

// ErrPolicyViolation is a business rule rejection, e.g. a salary too low for
// a credit card or a sender account without a card.
type ErrPolicyViolation struct {
	Rule string `json:"rule"`
}

func (e ErrPolicyViolation) Error() string {
	return "policy violation: " + e.Rule
}

type ErrConflict struct {
	Reason string `json:"reason"`
}

func (e ErrConflict) Error() string {
	return "conflict: " + e.Reason
}

type ErrInvalidState struct {
	Reason string `json:"reason"`
}

func (e ErrInvalidState) Error() string {
	return "invalid state: " + e.Reason
}

type ErrInsufficientFunds struct {
	AccountID string `json:"accountId"`
	Available string `json:"available"`
	Required  string `json:"required"`
}

func (e ErrInsufficientFunds) Error() string {
	return fmt.Sprintf("insufficient funds on %s: available=%s required=%s", e.AccountID, e.Available, e.Required)
}

type ErrCreditLimitExceeded struct {
	AccountID string `json:"accountId"`
	Limit     string `json:"limit"`
	Required  string `json:"required"`
}

func (e ErrCreditLimitExceeded) Error() string {
	return fmt.Sprintf("credit limit exceeded on %s: limit=%s required=%s", e.AccountID, e.Limit, e.Required)
}

// ErrContention means the attempt performed no writes and may be retried
// as-is.
type ErrContention struct {
	Resource string `json:"resource"`
}

func (e ErrContention) Error() string {
	return "contention on " + e.Resource
}

func (e ErrContention) Retryable() bool {
	return true
}

// ErrStorage wraps failures of the durable store. It is never a business
// rejection.
type ErrStorage struct {
	Op  string
	Err error
}

func (e ErrStorage) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e ErrStorage) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether err is safe to retry without changing input.
func IsRetryable(err error) bool {
	var r interface{ Retryable() bool }
	return errors.As(err, &r) && r.Retryable()
}

// IsStorage reports whether err originated in the durable store.
func IsStorage(err error) bool {
	return errors.As(err, &ErrStorage{})
}

func isNotFound(err error) bool {
	return errors.As(err, &ErrNotFound{})
}
