package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"

	"github.com/cardops/backoffice/arbitrage"
	"github.com/cardops/backoffice/config"
	"github.com/cardops/backoffice/fxgraph"
	"github.com/cardops/backoffice/money"
	"github.com/cardops/backoffice/telemetry"
)

// DetectCmd runs the arbitrage detector over a file of currency quotes.
type DetectCmd struct {
	File FileOrStdin `help:"Currency quote JSON file (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

type quoteRecord struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Rate      string `json:"rate"`
	Timestamp string `json:"timestamp"`
}

// Run executes the detect command.
func (cmd *DetectCmd) Run(ctx *kong.Context, globals *Globals) error {
	cfg, err := globals.Config()
	if err != nil {
		return err
	}

	var quotes []quoteRecord
	if err := cmd.File.DecodeJSON(&quotes); err != nil {
		return err
	}

	now := time.Now()
	graph := fxgraph.NewGraph()
	for _, q := range quotes {
		from, ok := money.ParseCurrency(q.From)
		if !ok || !currencyAllowed(cfg, q.From) {
			return fmt.Errorf("unsupported currency %q", q.From)
		}
		to, ok := money.ParseCurrency(q.To)
		if !ok || !currencyAllowed(cfg, q.To) {
			return fmt.Errorf("unsupported currency %q", q.To)
		}
		rate, err := decimal.NewFromString(q.Rate)
		if err != nil {
			return fmt.Errorf("invalid rate %q: %w", q.Rate, err)
		}
		ts := now
		if q.Timestamp != "" {
			parsed, err := time.Parse(time.RFC3339, q.Timestamp)
			if err != nil {
				return fmt.Errorf("invalid timestamp %q: %w", q.Timestamp, err)
			}
			ts = parsed
		}

		pair, err := fxgraph.NewCurrencyPair(from, to, rate, ts)
		if err != nil {
			printError(ctx.Stderr, NewErrorRenderer().Render(err))
			return NewCommandError(1)
		}
		if pair.IsStale(now, cfg.StalenessThreshold) {
			printInfof(ctx.Stdout, "quote %s->%s is stale (older than %s)", from, to, cfg.StalenessThreshold)
		}
		if _, err := graph.AddPair(pair); err != nil {
			printError(ctx.Stderr, NewErrorRenderer().Render(err))
			return NewCommandError(1)
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

	opportunities, err := arbitrage.Detect(runCtx, graph)
	if err != nil {
		printError(ctx.Stderr, NewErrorRenderer().Render(err))
		return NewCommandError(1)
	}

	if len(opportunities) == 0 {
		printInfof(ctx.Stdout, "No arbitrage opportunities found across %d quotes", len(quotes))
		return nil
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("%d arbitrage opportunit%s found", len(opportunities), pluralY(len(opportunities))))
	printOpportunityTable(ctx, opportunities)
	return nil
}

// pluralY returns "y" for n == 1 and "ies" otherwise, for nouns ending in
// "-y" (e.g. "opportunity").
func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}

// pluralS returns "" for n == 1 and "s" otherwise.
func pluralS(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func printOpportunityTable(ctx *kong.Context, opportunities []arbitrage.Opportunity) {
	headers := []string{"Path", "Profit %"}
	rows := make([][]string, len(opportunities))
	for i, opp := range opportunities {
		rows[i] = []string{pathString(opp), opp.ProfitPercent.String() + "%"}
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	printRow(ctx, headers, widths, headerStyle.Render)
	for _, row := range rows {
		printRow(ctx, row, widths, func(s string) string { return s })
	}
}

func printRow(ctx *kong.Context, cells []string, widths []int, style func(string) string) {
	for i, cell := range cells {
		pad := widths[i] - runewidth.StringWidth(cell)
		if pad < 0 {
			pad = 0
		}
		_, _ = fmt.Fprintf(ctx.Stdout, "%s%*s  ", style(cell), pad, "")
	}
	_, _ = fmt.Fprintln(ctx.Stdout)
}

// currencyAllowed reports whether code is in the configured currency
// roster (config.Config.Currencies), letting --option currencies=... narrow
// the fixed five-currency enum down for a given run.
func currencyAllowed(cfg *config.Config, code string) bool {
	for _, allowed := range cfg.Currencies {
		if allowed == code {
			return true
		}
	}
	return false
}

func pathString(opp arbitrage.Opportunity) string {
	s := ""
	for i, c := range opp.Path {
		if i > 0 {
			s += " -> "
		}
		s += c.String()
	}
	if len(opp.Path) > 0 {
		s += " -> " + opp.Path[0].String()
	}
	return s
}
