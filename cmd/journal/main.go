package main

import (
	"fmt"
	"liftotron/repositories"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:          "journal",
		Short:        "Inspect the daily GM attendance recorded by liftotron",
		Version:      Version,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("db", "", "Path to badger DB (defaults to BADGER_FILEPATH)")

	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(statsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recent closed days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return withJournal(cmd, func(journal repositories.AttendanceRepository, cfg Config) error {
				records, err := journal.List(limit)
				if err != nil {
					return err
				}
				RenderRecords(cmd.OutOrStdout(), records, cfg.Colours)
				return nil
			})
		},
	}
	cmd.Flags().IntP("limit", "n", 7, "Maximum days")
	return cmd
}

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show how often each participant greeted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return withJournal(cmd, func(journal repositories.AttendanceRepository, cfg Config) error {
				records, err := journal.List(limit)
				if err != nil {
					return err
				}
				RenderStats(cmd.OutOrStdout(), Summarize(records), len(records))
				return nil
			})
		},
	}
	cmd.Flags().IntP("limit", "n", 30, "Number of days to aggregate")
	return cmd
}

func withJournal(cmd *cobra.Command, fn func(repositories.AttendanceRepository, Config) error) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if path, _ := cmd.Flags().GetString("db"); path != "" {
		cfg.BadgerFilepath = path
	}

	db, err := openDB(cfg.BadgerFilepath)
	if err != nil {
		return fmt.Errorf("error while opening Badger: %w", err)
	}
	defer db.Close()

	return fn(repositories.NewAttendanceRepository(db, slog.Default()), cfg)
}

// openDB opens the journal read-only so it can be inspected while the bot runs.
func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)
	return badger.Open(opts)
}
