// Package report renders calculation results for the terminal.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"mortcalc/domain"
)

const (
	columnWidth = 15
	ruleWidth   = 4 * columnWidth

	// "Monthly Payment" fills a 15-wide column exactly.
	comparisonWidth = columnWidth + 1
)

var hundred = decimal.NewFromInt(100)

// Currency formats an amount as euros with two decimals, e.g. €1062.53.
func Currency(amount decimal.Decimal) string { return "€" + amount.StringFixed(2) }

// GroupedCurrency formats an amount as euros with thousands separators, e.g. €161,000.00.
func GroupedCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.Round(2).IsNegative() {
		sign = "-"
	}
	rounded := amount.Abs().Round(2)
	fixed := rounded.StringFixed(2)
	return sign + "€" + humanize.Comma(rounded.IntPart()) + fixed[strings.IndexByte(fixed, '.'):]
}

// Percentage formats a fraction as a percentage with two decimals, e.g. 0.038 as 3.80%.
func Percentage(fraction decimal.Decimal) string {
	return fraction.Mul(hundred).StringFixed(2) + "%"
}

// WritePayment writes the summary line and the payment table for one calculation.
func WritePayment(w io.Writer, input domain.PaymentInput, p domain.MonthlyPayment) error {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("MortCalc: Calculating monthly payments...\n")
	fmt.Fprintf(&b, "Mortage: %s, Interest: %s, Number of Payments: %d, ASP Subsidy: %t\n",
		GroupedCurrency(input.Principal), Percentage(input.AnnualInterestRate), input.NumPayments, input.UseSubsidy)
	b.WriteString("***\n")
	writeRow(&b, columnWidth, "Monthly Payment", "Principal", "Interest", "ASP Savings")
	b.WriteString(strings.Repeat("-", ruleWidth) + "\n")
	writeRow(&b, columnWidth,
		Currency(p.AmountPerMonth),
		Currency(p.PrincipalPortion),
		Currency(p.InterestPortion),
		Currency(p.AspSavings),
	)
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteTermComparison writes one row per term.
func WriteTermComparison(w io.Writer, input domain.TermComparisonInput, rows []domain.TermComparison) error {
	var b strings.Builder

	b.WriteString("\n")
	fmt.Fprintf(&b, "MortCalc: Comparing %d to %d payments...\n", input.MinPayments, input.MaxPayments)
	fmt.Fprintf(&b, "Mortage: %s, Interest: %s, ASP Subsidy: %t\n",
		GroupedCurrency(input.Principal), Percentage(input.AnnualInterestRate), input.UseSubsidy)
	b.WriteString("***\n")
	writeRow(&b, comparisonWidth, "Payments", "Monthly Payment", "Principal", "Interest", "ASP Savings")
	b.WriteString(strings.Repeat("-", 5*comparisonWidth) + "\n")
	for _, row := range rows {
		writeRow(&b, comparisonWidth,
			strconv.Itoa(row.NumPayments),
			Currency(row.Payment.AmountPerMonth),
			Currency(row.Payment.PrincipalPortion),
			Currency(row.Payment.InterestPortion),
			Currency(row.Payment.AspSavings),
		)
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeRow(b *strings.Builder, width int, cols ...string) {
	for _, c := range cols {
		fmt.Fprintf(b, "%*s", width, c)
	}
	b.WriteString("\n")
}
