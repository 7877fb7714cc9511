package bankx

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var (
	statusOK = []byte(`{"status":"OK"}`)
)

type errJSONResp struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// NewHTTPHandler mounts the banking API under /banking. metrics may be nil.
func NewHTTPHandler(svc Service, auth Authenticator, metrics *Metrics, log *zerolog.Logger) http.Handler {
	hndlr := &httpHandler{
		Svc: svc,
		Log: log,
	}
	banker := requireRole(RoleBanker)

	mux := chi.NewMux()
	mux.NotFound(HTTPNotFound)
	mux.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(statusOK)
	})
	if metrics != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	}
	mux.Route("/banking", func(r chi.Router) {
		r.Use(authenticate(auth))
		r.Route("/accounts", func(rr chi.Router) {
			rr.Post("/request", hndlr.RequestAccount)
			rr.Get("/my", hndlr.MyAccounts)
			rr.With(banker).Get("/all", hndlr.AllAccounts)
			rr.With(banker).Get("/pending", hndlr.PendingAccounts)
			rr.With(banker).Put("/{acctID:[0-9]+}/approval", hndlr.ApproveAccount)
			rr.Get("/{acctID:[0-9]+}/statement", hndlr.Statement)
		})
		r.Route("/cards", func(rr chi.Router) {
			rr.Post("/debit", hndlr.RequestDebitCard)
			rr.Post("/credit", hndlr.RequestCreditCard)
			rr.Get("/my", hndlr.MyCards)
			rr.With(banker).Get("/pending", hndlr.PendingCards)
			rr.With(banker).Put("/{cardID:[0-9]+}/approve", hndlr.ApproveCard)
		})
		r.Route("/transactions", func(rr chi.Router) {
			rr.Post("/transfer", hndlr.Transfer)
			rr.Get("/my", hndlr.MyTransactions)
			rr.With(banker).Get("/all", hndlr.AllTransactions)
		})
	})

	return mux
}

type httpHandler struct {
	Svc Service
	Log *zerolog.Logger
}

func (h *httpHandler) RequestAccount(w http.ResponseWriter, r *http.Request) {
	who, _ := IdentityFrom(r.Context())
	acct, err := h.Svc.RequestCurrentAccount(r.Context(), who)
	if err != nil {
		WriteHTTPError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acct)
}

func (h *httpHandler) ApproveAccount(w http.ResponseWriter, r *http.Request) {
	acctID, err := snowflake.ParseString(chi.URLParam(r, "acctID"))
	if err != nil {
		h.Log.Err(err).Str("method", "approve_account").Msg("error parsing account ID")
		WriteHTTPError(w, ErrValidation{Fields: map[string]string{"accountId": "invalid format"}})
		return
	}
	status := r.URL.Query().Get("status")
	if status == "" {
		status = r.URL.Query().Get("accountStatus")
	}
	req := ApproveAccountReq{
		AcctID: acctID,
		Status: AccountStatus(status),
	}
	acct, err := h.Svc.ApproveAccount(r.Context(), req)
	if err != nil {
		WriteHTTPError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acct)
}

func (h *httpHandler) MyAccounts(w http.ResponseWriter, r *http.Request) {
	who, _ := IdentityFrom(r.Context())
	accts, err := h.Svc.ListAccountsByUser(r.Context(), who.UserID)
	if err != nil {
		WriteHTTPError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accts)
}

func (h *httpHandler) AllAccounts(w http.ResponseWriter, r *http.Request) {
	accts, err := h.Svc.ListAllAccounts(r.Context())
	if err != nil {
		WriteHTTPError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accts)
}

func (h *httpHandler) PendingAccounts(w http.ResponseWriter, r *http.Request) {
	accts, err := h.Svc.ListPendingAccounts(r.Context())
	if err != nil {
		WriteHTTPError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accts)
}

func (h *httpHandler) Statement(w http.ResponseWriter, r *http.Request) {
	who, _ := IdentityFrom(r.Context())
	acctID, err := snowflake.ParseString(chi.URLParam(r, "acctID"))
	if err != nil {
		h.Log.Err(err).Str("method", "statement").Msg("error parsing account ID")
		WriteHTTPError(w, ErrValidation{Fields: map[string]string{"accountId": "invalid format"}})
		return
	}
	req := StatementReq{
		Requester: who,
		AcctID:    acctID,
	}
	// render fully before writing so a failure can still produce a JSON error
	buf := new(bytes.Buffer)
	if err = h.Svc.Statement(r.Context(), buf, req); err != nil {
		WriteHTTPError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	if _, err = buf.WriteTo(w); err != nil {
		h.Log.Err(err).Str("method", "statement").Msg("error writing statement")
	}
}

func (h *httpHandler) RequestDebitCard(w http.ResponseWriter, r *http.Request) {
	who, _ := IdentityFrom(r.Context())
	acctID, err := snowflake.ParseString(r.URL.Query().Get("accountId"))
	if err != nil {
		h.Log.Err(err).Str("method", "request_debit_card").Msg("error parsing account ID")
		WriteHTTPError(w, ErrValidation{Fields: map[string]string{"accountId": "invalid format"}})
		return
	}
	card, err := h.Svc.RequestDebitCard(r.Context(), DebitCardReq{Requester: who, AcctID: acctID})
	if err != nil {
		WriteHTTPError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (h *httpHandler) RequestCreditCard(w http.ResponseWriter, r *http.Request) {
	who, _ := IdentityFrom(r.Context())
	salary, err := decimal.NewFromString(r.URL.Query().Get("salary"))
	if err != nil {
		h.Log.Err(err).Str("method", "request_credit_card").Msg("error parsing salary")
		WriteHTTPError(w, ErrValidation{Fields: map[string]string{"salary": "invalid format"}})
		return
	}
	card, err := h.Svc.RequestCreditCard(r.Context(), CreditCardReq{Requester: who, Salary: salary})
	if err != nil {
		WriteHTTPError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (h *httpHandler) ApproveCard(w http.ResponseWriter, r *http.Request) {
	cardID, err := snowflake.ParseString(chi.URLParam(r, "cardID"))
	if err != nil {
		h.Log.Err(err).Str("method", "approve_card").Msg("error parsing card ID")
		WriteHTTPError(w, ErrValidation{Fields: map[string]string{"cardId": "invalid format"}})
		return
	}
	limit, err := decimal.NewFromString(r.URL.Query().Get("limit"))
	if err != nil {
		h.Log.Err(err).Str("method", "approve_card").Msg("error parsing limit")
		WriteHTTPError(w, ErrValidation{Fields: map[string]string{"limit": "invalid format"}})
		return
	}
	card, err := h.Svc.ApproveCreditCard(r.Context(), ApproveCardReq{CardID: cardID, Limit: limit})
	if err != nil {
		WriteHTTPError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

func (h *httpHandler) MyCards(w http.ResponseWriter, r *http.Request) {
	who, _ := IdentityFrom(r.Context())
	cards, err := h.Svc.ListCardsByUser(r.Context(), who.UserID)
	if err != nil {
		WriteHTTPError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cards)
}

func (h *httpHandler) PendingCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.Svc.ListPendingCreditCards(r.Context())
	if err != nil {
		WriteHTTPError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cards)
}

func (h *httpHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	who, _ := IdentityFrom(r.Context())
	q := r.URL.Query()
	fields := map[string]string{}
	senderID, err := snowflake.ParseString(q.Get("senderAccountId"))
	if err != nil {
		fields["senderAccountId"] = "invalid format"
	}
	amount, err := decimal.NewFromString(q.Get("amount"))
	if err != nil {
		fields["amount"] = "invalid format"
	}
	if len(fields) > 0 {
		h.Log.Error().Str("method", "transfer").Interface("fields", fields).Msg("invalid transfer params")
		WriteHTTPError(w, ErrValidation{Fields: fields})
		return
	}
	req := TransferReq{
		Requester:    who,
		SenderAcctID: senderID,
		ReceiverIBAN: q.Get("receiverIban"),
		Amount:       amount,
	}
	txn, err := h.Svc.Transfer(r.Context(), req)
	if err != nil {
		WriteHTTPError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txn)
}

func (h *httpHandler) MyTransactions(w http.ResponseWriter, r *http.Request) {
	who, _ := IdentityFrom(r.Context())
	txns, err := h.Svc.ListTransactionsByUser(r.Context(), who.UserID)
	if err != nil {
		WriteHTTPError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txns)
}

func (h *httpHandler) AllTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := h.Svc.ListAllTransactions(r.Context())
	if err != nil {
		WriteHTTPError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txns)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().
			Err(err).
			Msg("response encoding failed")
	}
}

func WriteHTTPError(w http.ResponseWriter, err error) {
	var (
		verr  ErrValidation
		nferr ErrNotFound
		cerr  ErrContention
	)
	status, kind := http.StatusInternalServerError, "internal"
	resp := errJSONResp{Message: err.Error()}
	switch {
	case errors.As(err, &verr):
		status, kind = http.StatusBadRequest, "validation"
		resp.Fields = verr.Fields
	case errors.As(err, &nferr):
		status, kind = http.StatusNotFound, "not_found"
	case errors.As(err, &ErrAuthorization{}):
		status, kind = http.StatusForbidden, "forbidden"
	case errors.As(err, &ErrPolicyViolation{}):
		status, kind = http.StatusUnprocessableEntity, "policy_violation"
	case errors.As(err, &ErrConflict{}):
		status, kind = http.StatusConflict, "conflict"
	case errors.As(err, &ErrInvalidState{}):
		status, kind = http.StatusConflict, "invalid_state"
	case errors.As(err, &ErrInsufficientFunds{}):
		status, kind = http.StatusUnprocessableEntity, "insufficient_funds"
	case errors.As(err, &ErrCreditLimitExceeded{}):
		status, kind = http.StatusUnprocessableEntity, "credit_limit_exceeded"
	case errors.As(err, &cerr):
		status, kind = http.StatusServiceUnavailable, "contention"
		w.Header().Set("Retry-After", "1")
	case IsStorage(err):
		status, kind = http.StatusServiceUnavailable, "storage"
		resp.Message = "storage unavailable"
	default:
		resp.Message = "server error"
	}
	resp.Error = kind
	writeJSON(w, status, resp)
}

func HTTPNotFound(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{
		"path": r.URL.Path,
	}
	writeJSON(w, http.StatusNotFound, resp)
}
