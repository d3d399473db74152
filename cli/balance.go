package cli

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"

	"github.com/cardops/backoffice/calendar"
	"github.com/cardops/backoffice/money"
	"github.com/cardops/backoffice/sweep"
)

// BalanceCmd computes sweep-line daily and average balances from a file of
// initial balances and dated changes.
type BalanceCmd struct {
	File  FileOrStdin `help:"Balance change JSON file (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	From  string      `help:"Start of the reporting range (YYYY-MM-DD)." required:""`
	To    string      `help:"End of the reporting range (YYYY-MM-DD)." required:""`
	Watch bool        `help:"Re-run the report whenever the input file changes. Requires a real file, not stdin."`
}

type balanceChangeFile struct {
	Initial map[string]string `json:"initial"`
	Changes []struct {
		Date   string `json:"date"`
		Bucket string `json:"bucket"`
		Amount string `json:"amount"`
	} `json:"changes"`
}

func parseBucket(name string) (sweep.BalanceBucket, bool) {
	for _, b := range sweep.AllBuckets {
		if b.String() == name {
			return b, true
		}
	}
	return 0, false
}

func buildCalculator(raw balanceChangeFile) (*sweep.Calculator, error) {
	initial := make(map[sweep.BalanceBucket]money.DecimalAmount, len(raw.Initial))
	for name, amountStr := range raw.Initial {
		bucket, ok := parseBucket(name)
		if !ok {
			return nil, fmt.Errorf("unknown balance bucket %q", name)
		}
		amount, err := money.ParseDecimalAmount(amountStr)
		if err != nil {
			return nil, fmt.Errorf("invalid initial amount for %q: %w", name, err)
		}
		initial[bucket] = amount
	}

	calc := sweep.NewCalculator(initial)
	for _, c := range raw.Changes {
		date, err := calendar.ParseDate(c.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid change date %q: %w", c.Date, err)
		}
		bucket, ok := parseBucket(c.Bucket)
		if !ok {
			return nil, fmt.Errorf("unknown balance bucket %q", c.Bucket)
		}
		amount, err := money.ParseDecimalAmount(c.Amount)
		if err != nil {
			return nil, fmt.Errorf("invalid change amount %q: %w", c.Amount, err)
		}
		if err := calc.AddChange(sweep.BalanceChange{Date: date, Bucket: bucket, Amount: amount}); err != nil {
			return nil, err
		}
	}
	return calc, nil
}

// Run executes the balance command, optionally watching the input file for
// changes and re-running the report on every write.
func (cmd *BalanceCmd) Run(ctx *kong.Context, globals *Globals) error {
	if cmd.Watch && (cmd.File.Filename == "" || cmd.File.Filename == "-" || cmd.File.Filename == "<stdin>") {
		return fmt.Errorf("--watch requires a real file path, not stdin")
	}

	if err := cmd.report(ctx); err != nil {
		return err
	}
	if !cmd.Watch {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(cmd.File.Filename); err != nil {
		return fmt.Errorf("failed to watch %s: %w", cmd.File.Filename, err)
	}

	printInfof(ctx.Stdout, "watching %s for changes (ctrl-c to stop)", cmd.File.Filename)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cmd.File.Contents = nil
			_, _ = fmt.Fprintln(ctx.Stdout)
			if err := cmd.report(ctx); err != nil {
				printError(ctx.Stderr, err.Error())
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printError(ctx.Stderr, watchErr.Error())
		}
	}
}

func (cmd *BalanceCmd) report(ctx *kong.Context) error {
	var raw balanceChangeFile
	if err := cmd.File.DecodeJSON(&raw); err != nil {
		return err
	}

	calc, err := buildCalculator(raw)
	if err != nil {
		return err
	}

	from, err := calendar.ParseDate(cmd.From)
	if err != nil {
		return fmt.Errorf("invalid --from date %q: %w", cmd.From, err)
	}
	to, err := calendar.ParseDate(cmd.To)
	if err != nil {
		return fmt.Errorf("invalid --to date %q: %w", cmd.To, err)
	}
	rng, err := calendar.NewDateRange(from, to)
	if err != nil {
		return err
	}

	daily := calc.DailyBalances(rng)
	averages := calc.AverageBalances(rng)

	daySuffix := "s"
	if len(daily) == 1 {
		daySuffix = ""
	}
	printSuccess(ctx.Stdout, fmt.Sprintf("%d day%s reported", len(daily), daySuffix))
	for _, d := range daily {
		_, _ = fmt.Fprintf(ctx.Stdout, "%s  total=%s\n", pathStyle.Render(d.Date.String()), d.Total().String())
	}

	_, _ = fmt.Fprintln(ctx.Stdout)
	_, _ = fmt.Fprintln(ctx.Stdout, headerStyle.Render("averages"))
	for _, bucket := range sweep.AllBuckets {
		_, _ = fmt.Fprintf(ctx.Stdout, "  %-14s %s\n", bucket.String(), averages[bucket].String())
	}
	return nil
}
