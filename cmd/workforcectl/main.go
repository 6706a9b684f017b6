/*
main.go - Operator CLI for the workforce engine

PURPOSE:
  Exposes the engine's function-call surface over a SQLite database:
  reconstructed periods, utilization, unpaid-leave deductions, and the
  payroll preview. Results print as JSON; anomalies log to stderr.

USAGE:
  workforcectl -db data.db -tenant acme seed
  workforcectl -db data.db -tenant acme periods -subject laptop-1
  workforcectl -db data.db -tenant acme utilization -subject laptop-1
  workforcectl -db data.db -tenant acme preview -year 2024 -month 3

FLAGS:
  -db      SQLite database path (default: workforce.db)
  -tenant  Tenant identifier; every query is scoped to it
*/
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/warp/workforce-engine/assets"
	"github.com/warp/workforce-engine/generic"
	"github.com/warp/workforce-engine/payroll"
	"github.com/warp/workforce-engine/store/sqlite"
)

func main() {
	dbPath := flag.String("db", "workforce.db", "SQLite database path")
	tenant := flag.String("tenant", "demo", "tenant identifier")
	flag.Parse()

	log := logrus.StandardLogger()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: workforcectl [flags] seed|periods|utilization|preview [args]")
		os.Exit(2)
	}

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.WithError(err).Fatal("open store")
	}
	defer store.Close()

	ctx := context.Background()
	switch cmd := flag.Arg(0); cmd {
	case "seed":
		err = seed(ctx, store, *tenant)
	case "periods":
		err = printPeriods(ctx, store, *tenant, log, flag.Args()[1:])
	case "utilization":
		err = printUtilization(ctx, store, *tenant, log, flag.Args()[1:])
	case "preview":
		err = printPreview(ctx, store, *tenant, log, flag.Args()[1:])
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		log.WithError(err).Fatal("command failed")
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printPeriods(ctx context.Context, store *sqlite.Store, tenant string, log logrus.FieldLogger, args []string) error {
	fs := flag.NewFlagSet("periods", flag.ExitOnError)
	subject := fs.String("subject", "", "asset identifier")
	fs.Parse(args)

	rec := assets.NewReconstructor(store, generic.SystemClock{}, log)
	periods, err := rec.Periods(ctx, tenant, *subject)
	if err != nil {
		return err
	}
	return printJSON(periods)
}

func printUtilization(ctx context.Context, store *sqlite.Store, tenant string, log logrus.FieldLogger, args []string) error {
	fs := flag.NewFlagSet("utilization", flag.ExitOnError)
	subject := fs.String("subject", "", "asset identifier")
	fs.Parse(args)

	rec := assets.NewReconstructor(store, generic.SystemClock{}, log)
	report, err := rec.Utilization(ctx, tenant, *subject)
	if err != nil {
		return err
	}
	return printJSON(report)
}

func printPreview(ctx context.Context, store *sqlite.Store, tenant string, log logrus.FieldLogger, args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	year := fs.Int("year", time.Now().Year(), "pay period year")
	month := fs.Int("month", int(time.Now().Month()), "pay period month (1-12)")
	fs.Parse(args)

	periodEnd := generic.EndOfMonth(*year, time.Month(*month))
	builder := payroll.NewPreviewBuilder(store, log)
	preview, err := builder.Build(ctx, tenant, *year, time.Month(*month), periodEnd)
	if err != nil {
		return err
	}
	return printJSON(preview)
}

// seed loads a small deterministic dataset so the read commands have
// something to report against.
func seed(ctx context.Context, store *sqlite.Store, tenant string) error {
	laptop := assets.Asset{
		ID:        "laptop-1",
		TenantID:  tenant,
		Name:      "MacBook Pro 14",
		CreatedAt: generic.NewTimePoint(2024, time.January, 1),
		HolderID:  "user-2",
	}
	if err := store.SaveAsset(ctx, laptop); err != nil {
		return err
	}

	events := []assets.LifecycleEvent{
		{
			SubjectID:      laptop.ID,
			Action:         assets.ActionAssigned,
			CounterpartyID: "user-1",
			EffectiveDate:  generic.NewTimePoint(2024, time.February, 1),
			RecordedAt:     time.Date(2024, time.February, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			SubjectID:     laptop.ID,
			Action:        assets.ActionUnassigned,
			EffectiveDate: generic.NewTimePoint(2024, time.June, 1),
			RecordedAt:    time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			SubjectID:      laptop.ID,
			Action:         assets.ActionAssigned,
			CounterpartyID: "user-2",
			EffectiveDate:  generic.NewTimePoint(2024, time.June, 15),
			RecordedAt:     time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC),
		},
	}
	for _, ev := range events {
		ev.TenantID = tenant
		if err := store.AppendEvent(ctx, ev); err != nil {
			return err
		}
	}

	salaries := []payroll.SalaryStructure{
		{
			MemberID: "user-1", MemberName: "Amira Hassan",
			Basic: decimal.NewFromInt(2400), Housing: decimal.NewFromInt(400),
			Transport: decimal.NewFromInt(150), Food: decimal.NewFromInt(50),
		},
		{
			MemberID: "user-2", MemberName: "Jonas Weber",
			Basic: decimal.NewFromInt(3000), Housing: decimal.NewFromInt(0),
			Transport: decimal.NewFromInt(0), Food: decimal.NewFromInt(0),
		},
	}
	for _, ss := range salaries {
		if err := store.SaveSalaryStructure(ctx, tenant, ss); err != nil {
			return err
		}
	}

	if err := store.SaveLoan(ctx, tenant, payroll.Loan{
		ID: "loan-1", MemberID: "user-1", Label: "relocation loan",
		Status: payroll.LoanActive,
		StartDate: generic.NewTimePoint(2024, time.January, 15),
		MonthlyDeduction: decimal.NewFromInt(500),
		RemainingAmount:  decimal.NewFromInt(300),
	}); err != nil {
		return err
	}

	return store.SaveLeaveRequest(ctx, tenant, payroll.LeaveRequest{
		ID: "leave-1", MemberID: "user-2",
		Status: payroll.LeaveApproved, IsPaid: false,
		Start: generic.NewTimePoint(2024, time.March, 10),
		End:   generic.NewTimePoint(2024, time.March, 10),
		TotalDays: decimal.NewFromFloat(0.5),
	})
}
