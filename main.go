package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli"

	"mortcalc/domain"
	"mortcalc/report"
	"mortcalc/repository"
	"mortcalc/service"
)

var hundred = decimal.NewFromInt(100)

var (
	interestFlag = cli.StringFlag{
		Name:  "interest, i",
		Value: "0.5",
		Usage: "annual interest rate, as a percentage from 0.0 to 100.0",
	}
	paymentsFlag = cli.IntFlag{
		Name:  "payments, p",
		Value: 240,
		Usage: "total number of monthly payments",
	}
	amountFlag = cli.StringFlag{
		Name:  "amount, a",
		Value: "161000",
		Usage: "amount borrowed, also known as the principal",
	}
	subsidyFlag = cli.BoolTFlag{
		Name:  "subsidy, s",
		Usage: "apply the ASP interest subsidy (use --subsidy=false to disable)",
	}
	softCapFlag = cli.StringFlag{
		Name:   "soft-cap",
		Value:  "3.8",
		Usage:  "annual rate, as a percentage, above which the ASP subsidy applies",
		EnvVar: "MORTCALC_SOFT_CAP",
	}
	subsidyFractionFlag = cli.StringFlag{
		Name:   "subsidy-fraction",
		Value:  "0.7",
		Usage:  "share of the interest above the soft cap paid by the subsidy",
		EnvVar: "MORTCALC_SUBSIDY_FRACTION",
	}
	minPaymentsFlag = cli.IntFlag{
		Name:  "min-payments",
		Value: 180,
		Usage: "shortest term to compare, in payments",
	}
	maxPaymentsFlag = cli.IntFlag{
		Name:  "max-payments",
		Value: 300,
		Usage: "longest term to compare, in payments",
	}
	addrFlag = cli.StringFlag{
		Name:   "addr",
		Value:  ":8080",
		Usage:  "address the HTTP API listens on",
		EnvVar: "MORTCALC_ADDR",
	}
	redisAddrFlag = cli.StringFlag{
		Name:   "redis-addr",
		Usage:  "Redis address for the result cache; empty keeps results in memory",
		EnvVar: "MORTCALC_REDIS_ADDR",
	}
	cacheTTLFlag = cli.DurationFlag{
		Name:   "cache-ttl",
		Value:  24 * time.Hour,
		Usage:  "how long cached results live in Redis",
		EnvVar: "MORTCALC_CACHE_TTL",
	}
	rateLimitFlag = cli.IntFlag{
		Name:  "rate-limit",
		Value: 5,
		Usage: "requests allowed per client per minute",
	}
)

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "mortcalc: %v\n", err)
		os.Exit(1)
	}
}

func newApp(out io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "mortcalc"
	app.Usage = "Calculate your monthly mortgage payment. With optional Finnish ASP subsidy calculations!"
	app.Writer = out
	app.Flags = []cli.Flag{
		interestFlag,
		paymentsFlag,
		amountFlag,
		subsidyFlag,
		softCapFlag,
		subsidyFractionFlag,
	}
	app.Action = func(cctx *cli.Context) error {
		return runCalculate(cctx, out)
	}
	app.Commands = []cli.Command{
		{
			Name:  "compare",
			Usage: "compare the monthly payment across a range of terms",
			Flags: []cli.Flag{
				interestFlag,
				amountFlag,
				subsidyFlag,
				softCapFlag,
				subsidyFractionFlag,
				minPaymentsFlag,
				maxPaymentsFlag,
			},
			Action: func(cctx *cli.Context) error {
				return runCompare(cctx, out)
			},
		},
		{
			Name:  "serve",
			Usage: "serve the calculator as a JSON HTTP API",
			Flags: []cli.Flag{
				addrFlag,
				redisAddrFlag,
				cacheTTLFlag,
				rateLimitFlag,
				softCapFlag,
				subsidyFractionFlag,
			},
			Action: runServe,
		},
	}
	return app
}

func runCalculate(cctx *cli.Context, out io.Writer) error {
	calc, err := calculatorFromFlags(cctx.String)
	if err != nil {
		return err
	}
	rate, err := parsePercentage(cctx.String("interest"), "interest")
	if err != nil {
		return err
	}
	principal, err := parseDecimal(cctx.String("amount"), "amount")
	if err != nil {
		return err
	}

	input := domain.PaymentInput{
		AnnualInterestRate: rate,
		NumPayments:        cctx.Int("payments"),
		Principal:          principal,
		UseSubsidy:         cctx.BoolT("subsidy"),
	}
	payment, err := calc.Calculate(input)
	if err != nil {
		return err
	}
	return report.WritePayment(out, input, payment)
}

func runCompare(cctx *cli.Context, out io.Writer) error {
	calc, err := calculatorFromFlags(policyLookup(cctx))
	if err != nil {
		return err
	}
	rate, err := parsePercentage(cctx.String("interest"), "interest")
	if err != nil {
		return err
	}
	principal, err := parseDecimal(cctx.String("amount"), "amount")
	if err != nil {
		return err
	}

	payments := service.NewPaymentService(calc, repository.NewPaymentRepositoryMemory(), repository.NewMockCache())
	comparer := service.NewTermComparisonService(payments)

	input := domain.TermComparisonInput{
		AnnualInterestRate: rate,
		Principal:          principal,
		MinPayments:        cctx.Int("min-payments"),
		MaxPayments:        cctx.Int("max-payments"),
		UseSubsidy:         cctx.BoolT("subsidy"),
	}
	rows, err := comparer.CompareTerms(context.Background(), input)
	if err != nil {
		return err
	}
	return report.WriteTermComparison(out, input, rows)
}

// policyLookup reads a policy flag from the subcommand when it was given
// there and from the root flag set otherwise.
func policyLookup(cctx *cli.Context) func(name string) string {
	return func(name string) string {
		if cctx.IsSet(name) {
			return cctx.String(name)
		}
		return cctx.GlobalString(name)
	}
}

// calculatorFromFlags builds a Calculator from the policy flags, read with
// lookup so subcommands can reach the root flag set.
func calculatorFromFlags(lookup func(name string) string) (*service.Calculator, error) {
	softCap, err := parsePercentage(lookup("soft-cap"), "soft-cap")
	if err != nil {
		return nil, err
	}
	fraction, err := parseDecimal(lookup("subsidy-fraction"), "subsidy-fraction")
	if err != nil {
		return nil, err
	}
	policy := domain.SubsidyPolicy{SoftCapRate: softCap, SubsidyFraction: fraction}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return service.NewCalculator(policy), nil
}

func parseDecimal(value, flag string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: --%s: %q is not a number", domain.ErrInvalidArgument, flag, value)
	}
	return d, nil
}

// parsePercentage parses a percentage and returns it as a fraction.
func parsePercentage(value, flag string) (decimal.Decimal, error) {
	d, err := parseDecimal(value, flag)
	if err != nil {
		return decimal.Zero, err
	}
	return d.Div(hundred), nil
}
