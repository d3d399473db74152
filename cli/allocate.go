package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/cardops/backoffice/allocation"
	"github.com/cardops/backoffice/calendar"
	"github.com/cardops/backoffice/config"
	"github.com/cardops/backoffice/debt"
	"github.com/cardops/backoffice/money"
	"github.com/cardops/backoffice/telemetry"
)

// allocationStrategyFor builds the strategy instance for kind, threading
// cfg.DP into the DP-optimal strategy instead of its package default
// (allocation.ForKind can't read config.Config directly: config imports
// allocation for DPConfig, so the reverse import would cycle).
func allocationStrategyFor(kind allocation.Kind, cfg *config.Config, manual []string) (allocation.Strategy, error) {
	if kind == allocation.DPOptimal {
		return allocation.NewDPOptimalStrategy(cfg.DP), nil
	}
	if kind == allocation.Manual {
		predefined, err := parseManualEntries(manual)
		if err != nil {
			return nil, err
		}
		return allocation.NewManualStrategy(predefined), nil
	}
	return allocation.ForKind(kind)
}

// dpConfirmBucketThreshold is the input bucket count above which the DP
// strategy is asked to confirm before running, since its state-space grows
// with bucket count times discretised payment units.
const dpConfirmBucketThreshold = 8

// AllocateCmd allocates a payment across debt buckets using a chosen
// strategy.
type AllocateCmd struct {
	File     FileOrStdin `help:"Debt bucket JSON file (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Strategy string      `help:"Allocation strategy: bank-rule, dp-optimal, greedy, or manual." enum:"bank-rule,dp-optimal,greedy,manual" default:"bank-rule"`
	Payment  string      `help:"Total payment amount to allocate." required:""`
	Manual   []string    `help:"Manual allocation entries as bucketId=amount, repeatable. Only used with --strategy=manual."`
	ID       string      `help:"Identifier recorded on the resulting allocation." default:"cli-allocation"`
}

type debtBucketFile struct {
	Buckets []struct {
		BucketID       string `json:"bucketId"`
		Type           string `json:"type"`
		CurrentBalance string `json:"currentBalance"`
		MinimumPayment string `json:"minimumPayment"`
		AnnualRate     string `json:"annualRate"`
		DueDate        string `json:"dueDate"`
	} `json:"buckets"`
}

func parseBucketType(name string) (debt.BucketType, bool) {
	for _, t := range []debt.BucketType{debt.Overdue, debt.FeesInterest, debt.CashAdvance, debt.Purchase, debt.Installment} {
		if t.String() == name {
			return t, true
		}
	}
	return 0, false
}

func kindFromFlag(s string) (allocation.Kind, error) {
	switch s {
	case "bank-rule":
		return allocation.BankRule, nil
	case "dp-optimal":
		return allocation.DPOptimal, nil
	case "greedy":
		return allocation.Greedy, nil
	case "manual":
		return allocation.Manual, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q", s)
	}
}

// Run executes the allocate command.
func (cmd *AllocateCmd) Run(ctx *kong.Context, globals *Globals) error {
	cfg, err := globals.Config()
	if err != nil {
		return err
	}

	var raw debtBucketFile
	if err := cmd.File.DecodeJSON(&raw); err != nil {
		return err
	}

	buckets := make([]debt.DebtBucket, 0, len(raw.Buckets))
	for _, b := range raw.Buckets {
		typ, ok := parseBucketType(b.Type)
		if !ok {
			return fmt.Errorf("unknown bucket type %q", b.Type)
		}
		balance, err := money.ParseDecimalAmount(b.CurrentBalance)
		if err != nil {
			return fmt.Errorf("invalid currentBalance for %q: %w", b.BucketID, err)
		}
		minimum, err := money.ParseDecimalAmount(b.MinimumPayment)
		if err != nil {
			return fmt.Errorf("invalid minimumPayment for %q: %w", b.BucketID, err)
		}
		rate, err := money.ParseDecimalAmount(b.AnnualRate)
		if err != nil {
			return fmt.Errorf("invalid annualRate for %q: %w", b.BucketID, err)
		}
		dueDate, err := calendar.ParseDate(b.DueDate)
		if err != nil {
			return fmt.Errorf("invalid dueDate for %q: %w", b.BucketID, err)
		}
		bucket := debt.DebtBucket{
			BucketID:       b.BucketID,
			Type:           typ,
			CurrentBalance: balance,
			MinimumPayment: minimum,
			AnnualRate:     rate,
			DueDate:        dueDate,
		}
		if err := bucket.Validate(); err != nil {
			return err
		}
		buckets = append(buckets, bucket)
	}

	payment, err := money.ParseDecimalAmount(cmd.Payment)
	if err != nil {
		return fmt.Errorf("invalid --payment %q: %w", cmd.Payment, err)
	}

	kind, err := kindFromFlag(cmd.Strategy)
	if err != nil {
		return err
	}

	strategy, err := allocationStrategyFor(kind, cfg, cmd.Manual)
	if err != nil {
		return err
	}

	if !strategy.IsApplicable(buckets, payment) {
		printError(ctx.Stderr, fmt.Sprintf("strategy %s is not applicable to this payment and bucket set", kind))
		return NewCommandError(1)
	}

	if kind == allocation.DPOptimal && len(buckets) > dpConfirmBucketThreshold {
		proceed, err := promptYesNo(fmt.Sprintf(
			"DP-optimal allocation over %d buckets may take a while to compute. Continue?", len(buckets)))
		if err != nil {
			return err
		}
		if !proceed {
			printInfof(ctx.Stdout, "allocation cancelled")
			return nil
		}
	}

	runCtx := cfg.WithContext(context.Background())
	var collector telemetry.Collector
	if globals.Telemetry {
		collector = telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)
		defer func() {
			_, _ = fmt.Fprintln(ctx.Stderr)
			collector.Report(ctx.Stderr)
		}()
	}

	result, err := strategy.Allocate(runCtx, buckets, payment, cmd.ID)
	if err != nil {
		printError(ctx.Stderr, NewErrorRenderer().Render(err))
		return NewCommandError(1)
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("allocated %s across %d bucket%s using %s", result.Total().String(), len(result.BucketIDs()), pluralS(len(result.BucketIDs())), result.Strategy))
	for _, id := range result.BucketIDs() {
		_, _ = fmt.Fprintf(ctx.Stdout, "  %-20s %s\n", id, result.Allocated(id).String())
	}
	return nil
}

func parseManualEntries(entries []string) (map[string]money.DecimalAmount, error) {
	predefined := make(map[string]money.DecimalAmount, len(entries))
	for _, entry := range entries {
		bucketID, amountStr, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --manual entry %q, expected bucketId=amount", entry)
		}
		amount, err := money.ParseDecimalAmount(amountStr)
		if err != nil {
			return nil, fmt.Errorf("invalid amount in --manual entry %q: %w", entry, err)
		}
		predefined[bucketID] = amount
	}
	return predefined, nil
}
