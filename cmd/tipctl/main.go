// Command tipctl is a terminal client for the budget app API: it shows the
// tip of the day, requests AI expansions, and prints a small demo ledger.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"budgetapp/internal/cli"
	"budgetapp/internal/client"
	"budgetapp/internal/core"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	flag.Usage = usage
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	store := cli.InitClientStore(logger, cfg.ClientDBPath)
	defer store.Close()

	requestor := client.NewRequestor(cfg.APIBase, store)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	var err error
	switch args[0] {
	case "today":
		err = runToday(ctx, requestor)
	case "another":
		err = runAnother(ctx, requestor, args[1:])
	case "expand":
		err = runExpand(ctx, requestor, args[1:])
	case "status":
		err = runStatus(ctx, requestor)
	case "ledger":
		runLedger()
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: tipctl <command>

Commands:
  today            show the tip of the day
  another [id...]  show a random tip, excluding the given ids
  expand <id>      fetch the AI expansion for a tip
  status           show server credential status
  ledger           print a demo monthly summary
`)
}

func runToday(ctx context.Context, r *client.Requestor) error {
	tip, err := r.CurrentTip(ctx, time.Now())
	if err != nil {
		return err
	}
	printTip(tip)
	return nil
}

func runAnother(ctx context.Context, r *client.Requestor, excludeIDs []string) error {
	printTip(r.AnotherTip(excludeIDs))
	return nil
}

func runExpand(ctx context.Context, r *client.Requestor, args []string) error {
	var tipID string
	if len(args) > 0 {
		tipID = args[0]
	} else {
		tip, err := r.CurrentTip(ctx, time.Now())
		if err != nil {
			return err
		}
		tipID = tip.ID
	}

	exp, cached, err := r.Expand(ctx, tipID)
	if err != nil {
		return err
	}

	origin := "cached"
	if !cached {
		origin = "fetched"
	}
	fmt.Printf("Expansion for %s (%s, model %s, source %s)\n\n", exp.TipID, origin, exp.Model, exp.Origin)
	fmt.Println("Summary:", exp.Summary)
	fmt.Println()
	fmt.Println(exp.DeeperDive)
	if len(exp.KeyPoints) > 0 {
		fmt.Println("\nKey points:")
		for _, p := range exp.KeyPoints {
			fmt.Println("  -", p)
		}
	}
	if len(exp.ActionPlan) > 0 {
		fmt.Println("\nAction plan:")
		for i, step := range exp.ActionPlan {
			fmt.Printf("  %d. %s\n", i+1, step)
		}
	}
	if len(exp.Sources) > 0 {
		fmt.Println("\nSources:")
		for _, s := range exp.Sources {
			if s.URL != "" {
				fmt.Printf("  - %s (%s)\n", s.Title, s.URL)
			} else {
				fmt.Println("  -", s.Title)
			}
		}
	}
	if exp.Reason != "" && exp.Reason != core.ReasonSuccess {
		fmt.Println("\nNote:", exp.Reason)
	}
	return nil
}

func runStatus(ctx context.Context, r *client.Requestor) error {
	keyPresent, model, err := r.Status(ctx)
	if err != nil {
		return err
	}
	fmt.Println("key present:", keyPresent)
	fmt.Println("model:      ", model)
	return nil
}

// runLedger prints the summary arithmetic over a fixed sample month.
func runLedger() {
	transactions := []core.Transaction{
		{ID: "t1", Type: core.Income, Date: "2026-08-01", Amount: core.Money{Cents: 320000}, Description: "Paycheck", Category: "Salary"},
		{ID: "t2", Type: core.Expense, Date: "2026-08-03", Amount: core.Money{Cents: 120000}, Description: "Rent", Category: "Housing"},
		{ID: "t3", Type: core.Expense, Date: "2026-08-09", Amount: core.Money{Cents: 8450}, Description: "Groceries", Category: "Food"},
		{ID: "t4", Type: core.Expense, Date: "2026-08-16", Amount: core.Money{Cents: 4599}, Description: "Streaming", Category: "Entertainment"},
		{ID: "t5", Type: core.Expense, Date: "2026-08-23", Amount: core.Money{Cents: 10125}, Description: "Groceries", Category: "Food"},
	}
	for i := range transactions {
		transactions[i].PeriodTag = core.NormalizePeriod(transactions[i].Date)
	}

	totals := core.ComputeTotals(transactions)
	balance := core.ComputeEndingBalance(core.Money{Cents: 50000}, totals)

	fmt.Println("Demo ledger, August 2026")
	fmt.Println(strings.Repeat("-", 32))
	fmt.Println("Income:  ", core.FormatUSD(totals.Income.Cents))
	fmt.Println("Expenses:", core.FormatUSD(totals.Expense.Cents))
	fmt.Println("Balance: ", core.FormatUSD(balance.Cents))
	fmt.Println("\nBy category:")
	for _, c := range core.GroupByCategory(transactions, core.Expense) {
		fmt.Printf("  %-14s %s\n", c.Name, core.FormatUSD(c.Amount.Cents))
	}
}

func printTip(tip core.Tip) {
	fmt.Printf("[%s] %s (%s, %s)\n", tip.ID, tip.Title, tip.Category, tip.Difficulty)
	fmt.Println()
	fmt.Println(tip.Description)
	if tip.Actionable != "" {
		fmt.Println("\nTry this:", tip.Actionable)
	}
}
