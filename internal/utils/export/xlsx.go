// Package export renders report view-models as XLSX workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of the workbooks produced here.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const defaultSheet = "Sheet1"

var sideHeaders = []string{"Category", "Head", "This Period", "Cumulative", "Entries"}

type workbook struct {
	f     *excelize.File
	first bool
}

func newWorkbook() *workbook {
	return &workbook{f: excelize.NewFile(), first: true}
}

// sheet creates a sheet with a header row. The default sheet is renamed for the first one.
func (w *workbook) sheet(name string, headers []string) error {
	if w.first {
		if err := w.f.SetSheetName(defaultSheet, name); err != nil {
			return err
		}
		w.first = false
	} else if _, err := w.f.NewSheet(name); err != nil {
		return err
	}
	return w.row(name, 1, toCells(headers)...)
}

func (w *workbook) row(sheet string, row int, values ...interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return w.f.SetSheetRow(sheet, cell, &values)
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

func money(d decimal.Decimal) float64 {
	f, _ := domain.RoundMoney(d).Float64()
	return f
}

func (w *workbook) side(side domain.ReportSide) error {
	if err := w.sheet(side.Title, sideHeaders); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", side.Title, err)
	}
	row := 2
	for _, r := range side.Rows {
		if err := w.row(side.Title, row, string(r.Kind), r.Label, money(r.MonthAmount), money(r.CumulativeAmount), r.TransactionCount); err != nil {
			return err
		}
		row++
	}
	if err := w.row(side.Title, row, "Total", "", money(side.MonthTotal), money(side.CumulativeTotal)); err != nil {
		return err
	}
	return w.f.SetColWidth(side.Title, "A", "B", 22)
}

func (w *workbook) unclassified(rows []domain.CategoryTotal) error {
	if len(rows) == 0 {
		return nil
	}
	return w.side(domain.ReportSide{Title: "Unclassified", Rows: rows})
}

func (w *workbook) writeTo(out io.Writer) error {
	defer w.f.Close()
	if err := w.f.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// BalanceSheet writes one sheet per side plus any unclassified rows.
func BalanceSheet(out io.Writer, r *domain.BalanceSheetReport) error {
	w := newWorkbook()
	for _, s := range []domain.ReportSide{r.FundAndLiabilities, r.PropertyAndAssets} {
		if err := w.side(s); err != nil {
			return err
		}
	}
	if err := w.unclassified(r.Unclassified); err != nil {
		return err
	}
	return w.writeTo(out)
}

// IncomeExpenditure writes the income and expenditure sides.
func IncomeExpenditure(out io.Writer, r *domain.IncomeExpenditureReport) error {
	w := newWorkbook()
	for _, s := range []domain.ReportSide{r.Income, r.Expenditure} {
		if err := w.side(s); err != nil {
			return err
		}
	}
	if err := w.unclassified(r.Unclassified); err != nil {
		return err
	}
	return w.writeTo(out)
}

// ReceiptPayment writes receipts and payments; the opening and closing balances
// go on a summary sheet.
func ReceiptPayment(out io.Writer, r *domain.ReceiptPaymentReport) error {
	w := newWorkbook()
	for _, s := range []domain.ReportSide{r.Receipts, r.Payments} {
		if err := w.side(s); err != nil {
			return err
		}
	}
	if err := w.unclassified(r.Unclassified); err != nil {
		return err
	}
	const summary = "Summary"
	if err := w.sheet(summary, []string{"Period", "Opening Balance", "Closing Balance"}); err != nil {
		return err
	}
	if err := w.row(summary, 2, r.Period.Label(), money(r.OpeningBalance), money(r.ClosingBalance)); err != nil {
		return err
	}
	return w.writeTo(out)
}

// BankReport writes the ledger lines of one bank account.
func BankReport(out io.Writer, r *domain.BankReport) error {
	const sheet = "Bank Ledger"
	w := newWorkbook()
	if err := w.sheet(sheet, []string{"Date", "Transaction", "Head", "Description", "Deposit", "Withdrawal", "Balance"}); err != nil {
		return err
	}
	if err := w.row(sheet, 2, "", "", "Opening Balance", r.Account.Name, "", "", money(r.OpeningBalance)); err != nil {
		return err
	}
	row := 3
	for _, l := range r.Lines {
		if err := w.row(sheet, row, l.Date.Format(domain.DateLayout), l.TransactionID, l.Label, l.Description,
			money(l.Deposit), money(l.Withdrawal), money(l.RunningBalance)); err != nil {
			return err
		}
		row++
	}
	if err := w.row(sheet, row, "", "", "Total", "", money(r.TotalDeposit), money(r.TotalWithdrawal), money(r.ClosingBalance)); err != nil {
		return err
	}
	if err := w.f.SetColWidth(sheet, "A", "D", 18); err != nil {
		return err
	}
	return w.writeTo(out)
}

// FeeDue writes one row per group followed by the grand total.
func FeeDue(out io.Writer, r *domain.FeeDueReport) error {
	const sheet = "Fee Due"
	w := newWorkbook()
	if err := w.sheet(sheet, []string{"Group", "Records", "Total", "Paid", "Due", "Pending", "Partial", "Paid Count"}); err != nil {
		return err
	}
	row := 2
	for _, g := range r.Groups {
		if err := w.row(sheet, row, g.Label, g.RecordCount, money(g.TotalAmount), money(g.PaidAmount), money(g.DueAmount),
			g.PendingCount, g.PartialCount, g.PaidCount); err != nil {
			return err
		}
		row++
	}
	if err := w.row(sheet, row, "Total", "", money(r.TotalAmount), money(r.PaidAmount), money(r.DueAmount)); err != nil {
		return err
	}
	if err := w.f.SetColWidth(sheet, "A", "A", 28); err != nil {
		return err
	}
	return w.writeTo(out)
}

// Filename builds the attachment name of an exported report.
func Filename(report string, period domain.ReportPeriod) string {
	return fmt.Sprintf("%s_%s_%s.xlsx", report, period.Start.Format("20060102"), period.End.Format("20060102"))
}
