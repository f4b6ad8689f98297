// Command ynab-mcp serves the budget-analysis tool catalog over stdio.
// Requests arrive Content-Length framed on stdin; responses leave the same
// way on stdout. All logging goes to stderr.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/finlabs/ynab-mcp/pkg/domain"
	"github.com/finlabs/ynab-mcp/pkg/logging"
	"github.com/finlabs/ynab-mcp/pkg/server"
	"github.com/finlabs/ynab-mcp/pkg/tools"
	"github.com/finlabs/ynab-mcp/pkg/transport"
	"github.com/finlabs/ynab-mcp/pkg/ynab"
)

const (
	serverName    = "ynab-mcp"
	serverVersion = "0.1.0"
)

type config struct {
	Token    string        `env:"YNAB_API_TOKEN"`
	BudgetID string        `env:"YNAB_BUDGET_ID" envDefault:"last-used"`
	CacheTTL time.Duration `env:"YNAB_CACHE_TTL" envDefault:"5m"`
	LogLevel string        `env:"LOG_LEVEL" envDefault:"info"`
}

func main() {
	local := pflag.Bool("local", false, "serve a built-in demo data set instead of the YNAB API")
	logLevel := pflag.String("log-level", "", "log level: debug, info, warn, error (overrides LOG_LEVEL)")
	pflag.Parse()

	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := env.ParseAs[config]()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	logger := logging.NewStdLogger(logging.ParseLevel(cfg.LogLevel))

	source, err := buildSource(cfg, *local, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	registry := tools.NewRegistry(logger)
	if err := tools.NewAnalyzer(source, logger).RegisterAll(registry); err != nil {
		fmt.Fprintf(os.Stderr, "register tools: %v\n", err)
		os.Exit(1)
	}

	framer := transport.NewFramer(os.Stdin, os.Stdout)
	srv := server.NewServer(serverName, serverVersion, registry, framer, logger)

	if err := srv.Serve(context.Background()); err != nil {
		logger.Error("session failed", "error", err)
		os.Exit(1)
	}
}

func buildSource(cfg config, local bool, logger logging.Logger) (tools.DataSource, error) {
	if local {
		logger.Info("serving demo data set")
		return demoSource(), nil
	}

	if cfg.Token == "" {
		return nil, fmt.Errorf("YNAB_API_TOKEN is required (or pass --local for the demo data set)")
	}

	client, err := ynab.NewClient(cfg.Token,
		ynab.WithCache(ynab.NewResponseCache(cfg.CacheTTL)),
		ynab.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("ynab client: %w", err)
	}
	return tools.NewRemoteSource(client), nil
}

// demoSource is a small fixed data set for trying the tools without an API
// token.
func demoSource() *tools.LocalSource {
	budget := domain.NewBudget("demo", "Demo Budget")
	categories := []domain.Category{
		domain.NewCategory("groceries", "Groceries"),
		domain.NewCategory("rent", "Rent"),
		domain.NewCategory("dining", "Dining Out"),
		domain.NewCategory("transport", "Transport"),
	}
	transactions := []domain.Transaction{
		demoTxn("t1", "salary", 3500000, "2024-01-01", "January paycheck"),
		demoTxn("t2", "rent", -1200000, "2024-01-02", "January rent"),
		demoTxn("t3", "groceries", -84500, "2024-01-06", "Weekly groceries"),
		demoTxn("t4", "dining", -42000, "2024-01-12", "Dinner out"),
		demoTxn("t5", "groceries", -91200, "2024-01-20", "Weekly groceries"),
		demoTxn("t6", "transport", -65000, "2024-01-25", "Monthly transit pass"),
		demoTxn("t7", "salary", 3500000, "2024-02-01", "February paycheck"),
		demoTxn("t8", "rent", -1200000, "2024-02-02", "February rent"),
		demoTxn("t9", "groceries", -78300, "2024-02-08", "Weekly groceries"),
		demoTxn("t10", "dining", -55400, "2024-02-14", "Valentine's dinner"),
	}
	return tools.NewLocalSource(budget, categories, transactions)
}

func demoTxn(id, categoryID string, amount int64, date, description string) domain.Transaction {
	return domain.NewTransactionBuilder().
		ID(id).
		AccountID("checking").
		CategoryID(categoryID).
		Amount(domain.FromMilliunits(amount)).
		Date(date).
		Description(description).
		Build()
}
