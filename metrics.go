package bankx

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics owns a private registry so tests can build it more than once.
type Metrics struct {
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	outcomes        *prometheus.CounterVec
	transferred     *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bankx_request_duration_seconds",
				Help:    "Duration of service operations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		outcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankx_requests_total",
				Help: "Service operations by outcome.",
			},
			[]string{"method", "outcome"},
		),
		transferred: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bankx_transferred_amount_total",
				Help: "Sum of committed transfer amounts.",
			},
			[]string{"currency"},
		),
	}
}

func (m *Metrics) observe(method string, begin time.Time, err error) {
	m.requestDuration.WithLabelValues(method).Observe(time.Since(begin).Seconds())
	m.outcomes.WithLabelValues(method, outcome(err)).Inc()
}

// outcome buckets an error into a low-cardinality label.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &ErrValidation{}):
		return "validation"
	case errors.As(err, &ErrNotFound{}):
		return "not_found"
	case errors.As(err, &ErrAuthorization{}):
		return "forbidden"
	case errors.As(err, &ErrPolicyViolation{}):
		return "policy"
	case errors.As(err, &ErrConflict{}):
		return "conflict"
	case errors.As(err, &ErrInvalidState{}):
		return "invalid_state"
	case errors.As(err, &ErrInsufficientFunds{}):
		return "insufficient_funds"
	case errors.As(err, &ErrCreditLimitExceeded{}):
		return "credit_limit"
	case errors.As(err, &ErrContention{}):
		return "contention"
	case IsStorage(err):
		return "storage"
	}
	return "error"
}

type instrumentingMiddleware struct {
	Service
	m *Metrics
}

var (
	_ Service = (*instrumentingMiddleware)(nil)
)

func NewInstrumentingMiddleware(m *Metrics) Middleware {
	return func(next Service) Service {
		return &instrumentingMiddleware{Service: next, m: m}
	}
}

func (i *instrumentingMiddleware) RequestCurrentAccount(ctx context.Context, who Identity) (acct *BankAccount, err error) {
	defer func(begin time.Time) { i.m.observe("request_current_account", begin, err) }(time.Now())
	return i.Service.RequestCurrentAccount(ctx, who)
}

func (i *instrumentingMiddleware) ApproveAccount(ctx context.Context, req ApproveAccountReq) (acct *BankAccount, err error) {
	defer func(begin time.Time) { i.m.observe("approve_account", begin, err) }(time.Now())
	return i.Service.ApproveAccount(ctx, req)
}

func (i *instrumentingMiddleware) RequestDebitCard(ctx context.Context, req DebitCardReq) (card *Card, err error) {
	defer func(begin time.Time) { i.m.observe("request_debit_card", begin, err) }(time.Now())
	return i.Service.RequestDebitCard(ctx, req)
}

func (i *instrumentingMiddleware) RequestCreditCard(ctx context.Context, req CreditCardReq) (card *Card, err error) {
	defer func(begin time.Time) { i.m.observe("request_credit_card", begin, err) }(time.Now())
	return i.Service.RequestCreditCard(ctx, req)
}

func (i *instrumentingMiddleware) ApproveCreditCard(ctx context.Context, req ApproveCardReq) (card *Card, err error) {
	defer func(begin time.Time) { i.m.observe("approve_credit_card", begin, err) }(time.Now())
	return i.Service.ApproveCreditCard(ctx, req)
}

func (i *instrumentingMiddleware) Transfer(ctx context.Context, req TransferReq) (txn *Transaction, err error) {
	defer func(begin time.Time) {
		i.m.observe("transfer", begin, err)
		if err == nil {
			i.m.transferred.WithLabelValues(txn.Currency).Add(txn.Amount.InexactFloat64())
		}
	}(time.Now())
	return i.Service.Transfer(ctx, req)
}
