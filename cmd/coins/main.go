package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/vitos/coingecko_coins/internal/config"
	"github.com/vitos/coingecko_coins/internal/domain"
	"github.com/vitos/coingecko_coins/internal/infrastructure/coingecko"
	"github.com/vitos/coingecko_coins/internal/infrastructure/logger"
	"github.com/vitos/coingecko_coins/internal/infrastructure/storage"
	"github.com/vitos/coingecko_coins/internal/render"
	"github.com/vitos/coingecko_coins/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	cmd := &cli.Command{
		Name:   "coins",
		Usage:  "list CoinGecko coins filtered to an allow-list",
		Flags:  append(commonFlags(), listFlags()...),
		Action: runList,
		Commands: []*cli.Command{
			{
				Name:   "history",
				Usage:  "show runs stored with --db",
				Flags:  append(commonFlags(), historyFlags()...),
				Action: runHistory,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to a yaml config file"},
		&cli.StringFlag{Name: "env-file", Value: ".env", Usage: "dotenv file holding the API key"},
		&cli.StringFlag{Name: "db", Usage: "sqlite file for run history (disabled when empty)"},
		&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "table or json"},
	}
}

func listFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "include-platform", Usage: "request platform contract addresses"},
		&cli.StringFlag{Name: "status", Usage: "active or inactive"},
		&cli.DurationFlag{Name: "timeout", Usage: "deadline for the request, 0 for none"},
	}
}

func historyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "limit", Value: 10, Usage: "number of runs to show"},
		&cli.StringFlag{Name: "run", Usage: "print the coins stored for this run id"},
	}
}

// setup loads the config, applies flag overrides and builds the logger.
func setup(cmd *cli.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cmd.String("config"), cmd.String("env-file"))
	if err != nil {
		return nil, nil, err
	}

	if cmd.IsSet("db") {
		cfg.Storage.SQLitePath = cmd.String("db")
	}
	if cmd.IsSet("log-level") {
		cfg.Logging.Level = cmd.String("log-level")
	}
	if cmd.IsSet("output") {
		cfg.Output = cmd.String("output")
	}
	if cmd.IsSet("include-platform") {
		v := cmd.Bool("include-platform")
		cfg.CoinGecko.IncludePlatform = &v
	}
	if cmd.IsSet("status") {
		v := cmd.String("status")
		cfg.CoinGecko.Status = &v
	}
	if cmd.IsSet("timeout") {
		cfg.CoinGecko.Timeout = cmd.Duration("timeout")
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	log, err := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Encoding)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init logger: %w", err)
	}
	return cfg, log, nil
}

func openStore(cfg *config.Config) (domain.SnapshotRepository, func(), error) {
	if cfg.Storage.SQLitePath == "" {
		return nil, func() {}, nil
	}
	store, err := storage.NewSQLiteStore(cfg.Storage.SQLitePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init sqlite: %w", err)
	}
	return store, func() { store.Close() }, nil
}

func runList(ctx context.Context, cmd *cli.Command) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	clientCfg, err := cfg.ClientConfig()
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	client := coingecko.NewClient(cfg.CoinGecko.APIKey,
		coingecko.WithLogger(log),
		coingecko.WithAPIKeyHeader(cfg.CoinGecko.APIKeyHeader))
	svc := usecase.NewCoinService(client, store, log)

	if cfg.CoinGecko.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.CoinGecko.Timeout)
		defer cancel()
	}

	snap, err := svc.ListAllowed(ctx, clientCfg, cfg.AllowList)
	if err != nil {
		return err
	}

	withPlatforms := clientCfg.IncludePlatform != nil && *clientCfg.IncludePlatform
	return render.Coins(os.Stdout, cfg.Output, snap.Rows, withPlatforms)
}

func runHistory(ctx context.Context, cmd *cli.Command) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	svc := usecase.NewCoinService(nil, store, log)

	if runID := cmd.String("run"); runID != "" {
		snap, err := svc.Snapshot(ctx, runID)
		if err != nil {
			return err
		}
		fmt.Printf("Run %s fetched %s (%d coins in response)\n",
			snap.RunID, snap.FetchedAt.UTC().Format(time.RFC3339), snap.Total)
		return render.Coins(os.Stdout, cfg.Output, snap.Rows, hasPlatforms(snap.Rows))
	}

	snaps, err := svc.History(ctx, int(cmd.Int("limit")))
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Println("No runs stored yet.")
		return nil
	}
	return render.Snapshots(os.Stdout, snaps)
}

func hasPlatforms(rows []domain.CoinRow) bool {
	for _, r := range rows {
		if r.Coin.Platforms != nil {
			return true
		}
	}
	return false
}
