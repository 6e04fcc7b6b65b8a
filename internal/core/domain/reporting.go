package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryTotal is one aggregated row of a report.
type CategoryTotal struct {
	Kind             TransactionKind `json:"kind"`
	Label            string          `json:"label"`
	MonthAmount      decimal.Decimal `json:"monthAmount"`
	CumulativeAmount decimal.Decimal `json:"cumulativeAmount"`
	TransactionCount int             `json:"transactionCount"`
}

// Baseline carries the figures accumulated before the report period starts.
// Cumulative rows hold the running totals from the fiscal-year start up to the
// day before the period; OpeningBalance is the cash/bank balance at that point.
type Baseline struct {
	OpeningBalance      decimal.Decimal  `json:"openingBalance"`
	PriorClosingBalance *decimal.Decimal `json:"priorClosingBalance,omitempty"`
	Cumulative          []CategoryTotal  `json:"cumulative"`
}

// Aggregation is the output of grouping a period's transactions.
type Aggregation struct {
	Period       ReportPeriod        `json:"period"`
	Rows         []CategoryTotal     `json:"rows"`
	Transactions []TransactionRecord `json:"-"` // in-period records, source order
	Baseline     Baseline            `json:"baseline"`
	OutOfPeriod  int                 `json:"outOfPeriod"`
}

// RowsOf returns the rows of the given kinds, preserving order.
func (a *Aggregation) RowsOf(kinds ...TransactionKind) []CategoryTotal {
	rows := make([]CategoryTotal, 0)
	for _, r := range a.Rows {
		for _, k := range kinds {
			if r.Kind == k {
				rows = append(rows, r)
				break
			}
		}
	}
	return rows
}

// ReportSide is one side of a two-sided statement.
type ReportSide struct {
	Title           string          `json:"title"`
	Rows            []CategoryTotal `json:"rows"`
	MonthTotal      decimal.Decimal `json:"monthTotal"`
	CumulativeTotal decimal.Decimal `json:"cumulativeTotal"`
}

// BalanceSheetReport holds Fund & Liabilities against Property & Assets.
type BalanceSheetReport struct {
	Period             ReportPeriod    `json:"period"`
	FundAndLiabilities ReportSide      `json:"fundAndLiabilities"`
	PropertyAndAssets  ReportSide      `json:"propertyAndAssets"`
	BalanceDifference  decimal.Decimal `json:"balanceDifference"`
	Unclassified       []CategoryTotal `json:"unclassified"`
	Warnings           []Warning       `json:"warnings"`
}

// IncomeExpenditureReport is the accrual-basis statement for the period.
type IncomeExpenditureReport struct {
	Period            ReportPeriod    `json:"period"`
	Income            ReportSide      `json:"income"`
	Expenditure       ReportSide      `json:"expenditure"`
	MonthSurplus      decimal.Decimal `json:"monthSurplus"`
	CumulativeSurplus decimal.Decimal `json:"cumulativeSurplus"`
	Unclassified      []CategoryTotal `json:"unclassified"`
	Warnings          []Warning       `json:"warnings"`
}

// ReceiptPaymentReport is the cash-basis statement for the period.
type ReceiptPaymentReport struct {
	Period         ReportPeriod    `json:"period"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Receipts       ReportSide      `json:"receipts"`
	Payments       ReportSide      `json:"payments"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	Unclassified   []CategoryTotal `json:"unclassified"`
	Warnings       []Warning       `json:"warnings"`
}

// BankLedgerLine is one movement on a bank account with the balance after it.
type BankLedgerLine struct {
	Date           time.Time       `json:"date"`
	TransactionID  string          `json:"transactionID"`
	Label          string          `json:"label"`
	Description    string          `json:"description"`
	Deposit        decimal.Decimal `json:"deposit"`
	Withdrawal     decimal.Decimal `json:"withdrawal"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// BankReport lists the period's movements on one bank account.
type BankReport struct {
	Period          ReportPeriod     `json:"period"`
	Account         Account          `json:"account"`
	OpeningBalance  decimal.Decimal  `json:"openingBalance"`
	Lines           []BankLedgerLine `json:"lines"`
	TotalDeposit    decimal.Decimal  `json:"totalDeposit"`
	TotalWithdrawal decimal.Decimal  `json:"totalWithdrawal"`
	ClosingBalance  decimal.Decimal  `json:"closingBalance"`
	Warnings        []Warning        `json:"warnings"`
}

// Closing scopes.
const (
	ScopeReceiptPayment = "receipt-payment"
	scopeBankPrefix     = "bank:"
)

// BankScope is the closing scope of a single bank account.
func BankScope(accountID string) string {
	return scopeBankPrefix + accountID
}

// BankAccountFromScope extracts the account ID from a bank scope.
func BankAccountFromScope(scope string) (string, bool) {
	if len(scope) <= len(scopeBankPrefix) || scope[:len(scopeBankPrefix)] != scopeBankPrefix {
		return "", false
	}
	return scope[len(scopeBankPrefix):], true
}

// PeriodClosing is a stored closing-balance checkpoint for a scope.
type PeriodClosing struct {
	ClosingID      string          `json:"closingID"`
	Scope          string          `json:"scope"`
	PeriodEnd      time.Time       `json:"periodEnd"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}
