package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/iudanet/pubsub/internal/client/api"
	"github.com/iudanet/pubsub/internal/client/cli"
	"github.com/iudanet/pubsub/internal/client/iocli"
	"github.com/iudanet/pubsub/internal/client/storage/boltdb"
	"github.com/iudanet/pubsub/internal/config"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	fs := config.NewFlagSet("pubsub")
	// Справку печатает printHelp
	fs.Usage = func() {}
	cfg, args, err := config.Load(fs, os.Args[1:], os.LookupEnv)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(fs)
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	if len(args) == 0 {
		printHelp(fs)
		return 1
	}
	command := args[0]
	if command == "version" {
		printVersion()
		return 0
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// Ctrl-C прерывает long-poll и завершает подписку штатно
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	boltStorage, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		return 1
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	client := cli.New(cli.Deps{
		IO:      iocli.NewStdio(),
		Config:  cfg,
		API:     api.NewClient(cfg.APIConfig(logger)),
		Cursors: boltStorage,
		Tokens:  boltStorage,
		Logger:  logger,
	})

	if err := client.Run(ctx, command, args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, cli.ErrUnknownCommand) {
			client.PrintUsage()
		}
		return 1
	}
	return 0
}

func printHelp(fs *pflag.FlagSet) {
	client := cli.New(cli.Deps{IO: iocli.NewStdio(), Config: config.Default()})
	client.PrintUsage()
	fmt.Println()
	fmt.Println("Global flags:")
	fmt.Print(fs.FlagUsages())
}

func printVersion() {
	fmt.Printf("pubsub client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
