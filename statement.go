package bankx

import (
	"context"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// Statement renders the account's transaction history as a PDF into w.
func (s *serviceImpl) Statement(ctx context.Context, w io.Writer, req StatementReq) error {
	acct, err := s.repo.GetAccount(ctx, req.AcctID)
	if err != nil {
		return err
	}
	if req.Requester.Role == RoleClient && acct.OwnerID != req.Requester.UserID {
		return ErrAuthorization{Reason: "account belongs to another user"}
	}
	txns, err := s.repo.ListTransactions(ctx, TransactionFilter{AccountID: &acct.ID})
	if err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Statement "+acct.IBAN, true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Account statement", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("IBAN: %s", acct.IBAN), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Type: %s  Status: %s", acct.Type, acct.Status), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Balance: %s %s", acct.Balance.StringFixed(2), acct.Currency), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	widths := []float64{42, 20, 78, 30, 20}
	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range []string{"Date", "Type", "Counterparty", "Amount", "Currency"} {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
	for _, t := range txns {
		pdf.CellFormat(widths[0], 6, t.Timestamp.Format("2006-01-02 15:04:05"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, string(t.Kind), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, t.CounterpartyIBAN, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, t.Amount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, t.Currency, "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}
