package bankx

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/semaphore"
)

type Middleware func(Service) Service

// Chain applies mws so that the first one is the outermost.
func Chain(svc Service, mws ...Middleware) Service {
	for i := len(mws) - 1; i >= 0; i-- {
		svc = mws[i](svc)
	}
	return svc
}

// validationMiddleware rejects malformed requests before they reach storage.
// Business rules stay in the service.
type validationMiddleware struct {
	Service
}

var (
	_ Service = (*validationMiddleware)(nil)
)

func NewValidationMiddleware() Middleware {
	return func(svc Service) Service {
		return &validationMiddleware{Service: svc}
	}
}

func (v *validationMiddleware) ApproveAccount(ctx context.Context, req ApproveAccountReq) (*BankAccount, error) {
	fields := map[string]string{}
	if req.AcctID == 0 {
		fields["accountId"] = "missing"
	}
	if req.Status != AccountApproved && req.Status != AccountRejected {
		fields["status"] = "must be APPROVED or REJECTED"
	}
	if len(fields) > 0 {
		return nil, ErrValidation{Fields: fields}
	}
	return v.Service.ApproveAccount(ctx, req)
}

func (v *validationMiddleware) RequestDebitCard(ctx context.Context, req DebitCardReq) (*Card, error) {
	fields := map[string]string{}
	if req.AcctID == 0 {
		fields["accountId"] = "missing"
	}
	validRequester(req.Requester, fields)
	if len(fields) > 0 {
		return nil, ErrValidation{Fields: fields}
	}
	return v.Service.RequestDebitCard(ctx, req)
}

func (v *validationMiddleware) RequestCreditCard(ctx context.Context, req CreditCardReq) (*Card, error) {
	fields := map[string]string{}
	if req.Salary.IsNegative() {
		fields["salary"] = "must not be negative"
	}
	validRequester(req.Requester, fields)
	if len(fields) > 0 {
		return nil, ErrValidation{Fields: fields}
	}
	return v.Service.RequestCreditCard(ctx, req)
}

func (v *validationMiddleware) ApproveCreditCard(ctx context.Context, req ApproveCardReq) (*Card, error) {
	fields := map[string]string{}
	if req.CardID == 0 {
		fields["cardId"] = "missing"
	}
	if req.Limit.IsNegative() {
		fields["limit"] = "must not be negative"
	} else if !centScale(req.Limit) {
		fields["limit"] = "at most two decimal places"
	}
	if len(fields) > 0 {
		return nil, ErrValidation{Fields: fields}
	}
	return v.Service.ApproveCreditCard(ctx, req)
}

func (v *validationMiddleware) Transfer(ctx context.Context, req TransferReq) (*Transaction, error) {
	fields := map[string]string{}
	if req.SenderAcctID == 0 {
		fields["senderAccountId"] = "missing"
	}
	if !ValidIBAN(req.ReceiverIBAN) {
		fields["receiverIban"] = "invalid format"
	}
	if !req.Amount.IsPositive() {
		fields["amount"] = "must be positive"
	} else if !centScale(req.Amount) {
		fields["amount"] = "at most two decimal places"
	}
	validRequester(req.Requester, fields)
	if len(fields) > 0 {
		return nil, ErrValidation{Fields: fields}
	}
	return v.Service.Transfer(ctx, req)
}

func validRequester(who Identity, fields map[string]string) {
	if who.Role != RoleClient && who.Role != RoleBanker {
		fields["role"] = "missing or invalid"
	}
	if who.UserID <= 0 {
		fields["userId"] = "missing or invalid"
	}
}

func centScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(2))
}

//
// Rate limiting middlewares
//

// limitMiddleware limits the number of in-flight mutating requests with
// weighted semaphores and an acquisition timeout. A request that cannot get a
// slot in time fails with ErrContention and may be retried.
type limitMiddleware struct {
	Service
	limits *ServiceLimits
}

var (
	_ Service = (*limitMiddleware)(nil)
)

type ServiceLimits struct {
	Transfer       *semaphore.Weighted
	Lifecycle      *semaphore.Weighted
	AcquireTimeout time.Duration
}

func NewServiceLimits(cfg *Config) *ServiceLimits {
	return &ServiceLimits{
		Transfer:       semaphore.NewWeighted(cfg.Limits.Transfer),
		Lifecycle:      semaphore.NewWeighted(cfg.Limits.Lifecycle),
		AcquireTimeout: cfg.Limits.AcquireTimeout,
	}
}

func NewLimitMiddleware(limits *ServiceLimits) Middleware {
	return func(next Service) Service {
		return &limitMiddleware{
			Service: next,
			limits:  limits,
		}
	}
}

func (l *limitMiddleware) acquire(ctx context.Context, sem *semaphore.Weighted, name string) (func(), error) {
	actx, cancel := context.WithTimeout(ctx, l.limits.AcquireTimeout)
	defer cancel()
	if err := sem.Acquire(actx, 1); err != nil {
		return nil, ErrContention{Resource: name + " slots"}
	}
	return func() { sem.Release(1) }, nil
}

func (l *limitMiddleware) RequestCurrentAccount(ctx context.Context, who Identity) (*BankAccount, error) {
	release, err := l.acquire(ctx, l.limits.Lifecycle, "lifecycle")
	if err != nil {
		return nil, err
	}
	defer release()
	return l.Service.RequestCurrentAccount(ctx, who)
}

func (l *limitMiddleware) ApproveAccount(ctx context.Context, req ApproveAccountReq) (*BankAccount, error) {
	release, err := l.acquire(ctx, l.limits.Lifecycle, "lifecycle")
	if err != nil {
		return nil, err
	}
	defer release()
	return l.Service.ApproveAccount(ctx, req)
}

func (l *limitMiddleware) RequestDebitCard(ctx context.Context, req DebitCardReq) (*Card, error) {
	release, err := l.acquire(ctx, l.limits.Lifecycle, "lifecycle")
	if err != nil {
		return nil, err
	}
	defer release()
	return l.Service.RequestDebitCard(ctx, req)
}

func (l *limitMiddleware) RequestCreditCard(ctx context.Context, req CreditCardReq) (*Card, error) {
	release, err := l.acquire(ctx, l.limits.Lifecycle, "lifecycle")
	if err != nil {
		return nil, err
	}
	defer release()
	return l.Service.RequestCreditCard(ctx, req)
}

func (l *limitMiddleware) ApproveCreditCard(ctx context.Context, req ApproveCardReq) (*Card, error) {
	release, err := l.acquire(ctx, l.limits.Lifecycle, "lifecycle")
	if err != nil {
		return nil, err
	}
	defer release()
	return l.Service.ApproveCreditCard(ctx, req)
}

func (l *limitMiddleware) Transfer(ctx context.Context, req TransferReq) (*Transaction, error) {
	release, err := l.acquire(ctx, l.limits.Transfer, "transfer")
	if err != nil {
		return nil, err
	}
	defer release()
	return l.Service.Transfer(ctx, req)
}

type ServiceBreaker struct {
	Accounts *gobreaker.CircuitBreaker[*BankAccount]
	Cards    *gobreaker.CircuitBreaker[*Card]
	Transfer *gobreaker.CircuitBreaker[*Transaction]
}

// NewServiceBreaker builds one breaker per aggregate. Only storage failures
// count against a breaker; business rejections are successes from its point
// of view.
func NewServiceBreaker(cfg *Config, log *zerolog.Logger) *ServiceBreaker {
	settings := func(name string) gobreaker.Settings {
		return gobreaker.Settings{
			Name:        name,
			MaxRequests: cfg.Breaker.MaxRequests,
			Interval:    cfg.Breaker.Interval,
			Timeout:     cfg.Breaker.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				if counts.Requests < cfg.Breaker.MinRequests {
					return false
				}
				ratio := float64(counts.TotalFailures) / float64(counts.Requests)
				return ratio >= cfg.Breaker.FailureRatio
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn().
					Str("breaker", name).
					Str("from", from.String()).
					Str("to", to.String()).
					Msg("circuit breaker state change")
			},
			IsSuccessful: func(err error) bool {
				return err == nil || !IsStorage(err)
			},
		}
	}
	return &ServiceBreaker{
		Accounts: gobreaker.NewCircuitBreaker[*BankAccount](settings("accounts")),
		Cards:    gobreaker.NewCircuitBreaker[*Card](settings("cards")),
		Transfer: gobreaker.NewCircuitBreaker[*Transaction](settings("transfer")),
	}
}

// circuitBreakMiddleware is a middleware that implements the circuit breaker pattern.
// It works in conjunction with limitMiddleware: while the store is failing,
// requests fail fast with ErrStorage instead of queueing for limit slots.
type circuitBreakMiddleware struct {
	Service
	brkrs *ServiceBreaker
}

var (
	_ Service = (*circuitBreakMiddleware)(nil)
)

func NewCircuitBreakMiddleware(brkrs *ServiceBreaker) Middleware {
	return func(next Service) Service {
		return &circuitBreakMiddleware{
			Service: next,
			brkrs:   brkrs,
		}
	}
}

func guarded[T any](cb *gobreaker.CircuitBreaker[T], fn func() (T, error)) (T, error) {
	out, err := cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return out, ErrStorage{Op: cb.Name(), Err: err}
	}
	return out, err
}

func (c *circuitBreakMiddleware) RequestCurrentAccount(ctx context.Context, who Identity) (*BankAccount, error) {
	return guarded(c.brkrs.Accounts, func() (*BankAccount, error) {
		return c.Service.RequestCurrentAccount(ctx, who)
	})
}

func (c *circuitBreakMiddleware) ApproveAccount(ctx context.Context, req ApproveAccountReq) (*BankAccount, error) {
	return guarded(c.brkrs.Accounts, func() (*BankAccount, error) {
		return c.Service.ApproveAccount(ctx, req)
	})
}

func (c *circuitBreakMiddleware) RequestDebitCard(ctx context.Context, req DebitCardReq) (*Card, error) {
	return guarded(c.brkrs.Cards, func() (*Card, error) {
		return c.Service.RequestDebitCard(ctx, req)
	})
}

func (c *circuitBreakMiddleware) RequestCreditCard(ctx context.Context, req CreditCardReq) (*Card, error) {
	return guarded(c.brkrs.Cards, func() (*Card, error) {
		return c.Service.RequestCreditCard(ctx, req)
	})
}

func (c *circuitBreakMiddleware) ApproveCreditCard(ctx context.Context, req ApproveCardReq) (*Card, error) {
	return guarded(c.brkrs.Cards, func() (*Card, error) {
		return c.Service.ApproveCreditCard(ctx, req)
	})
}

func (c *circuitBreakMiddleware) Transfer(ctx context.Context, req TransferReq) (*Transaction, error) {
	return guarded(c.brkrs.Transfer, func() (*Transaction, error) {
		return c.Service.Transfer(ctx, req)
	})
}
