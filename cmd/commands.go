package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/guttosm/tradedesk/config"
	"github.com/guttosm/tradedesk/internal/app"
	"github.com/guttosm/tradedesk/internal/domain/dto"
	"github.com/guttosm/tradedesk/internal/ingestion"
	"github.com/guttosm/tradedesk/internal/logger"
)

var migrateCommands = map[string]bool{
	"up":      true,
	"down":    true,
	"status":  true,
	"version": true,
	"redo":    true,
	"reset":   true,
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tradedesk",
		Short:         "Trade import and account reconciliation service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load configuration from environment or .env file
			config.LoadConfig()
			logger.Init()
		},
	}

	root.AddCommand(newServeCmd(), newImportCmd(), newMigrateCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = config.AppConfig.Server.Port
			}
			logger.L().Info().Msg("starting API server")

			router, cleanup, err := app.InitializeApp()
			if err != nil {
				return fmt.Errorf("app init: %w", err)
			}

			server := startServer(router, port)
			gracefulShutdown(cmd.Context(), server, cleanup)
			return nil
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "Port for the API server (defaults to SERVER_PORT)")
	return cmd
}

func newImportCmd() *cobra.Command {
	var (
		dir       string
		file      string
		accountID string
		parallel  int
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import broker CSVs into their accounts",
		Long: "With --dir, every *.csv in the directory is imported and matched to an account by the\n" +
			"account number in its filename. With --file and --account, one file is imported into the given account.",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return validateImportFlags(dir, file, accountID)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			db, err := app.InitPostgres(config.AppConfig)
			if err != nil {
				return fmt.Errorf("db connect: %w", err)
			}
			defer func() { _ = db.Close() }()

			svcs := app.NewServices(db, config.AppConfig)
			if file != "" {
				return importFile(ctx, svcs.Imports, accountID, file)
			}
			return importDirectory(ctx, svcs.Imports, dir, parallel)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Directory with .csv files")
	cmd.Flags().StringVar(&file, "file", "", "Single .csv file to import (requires --account)")
	cmd.Flags().StringVar(&accountID, "account", "", "Target account id for --file")
	cmd.Flags().IntVar(&parallel, "parallel", 0, "How many files to read concurrently (0=auto, max 8)")
	return cmd
}

func validateImportFlags(dir, file, accountID string) error {
	switch {
	case dir == "" && file == "":
		return fmt.Errorf("one of --dir or --file is required")
	case dir != "" && file != "":
		return fmt.Errorf("--dir and --file are mutually exclusive")
	case file != "" && accountID == "":
		return fmt.Errorf("--file requires --account")
	}
	if accountID != "" {
		if _, err := uuid.Parse(accountID); err != nil {
			return fmt.Errorf("--account must be a UUID: %w", err)
		}
	}
	return nil
}

func importFile(ctx context.Context, svc ingestion.Service, accountID, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	resp, err := svc.ImportSingle(ctx, accountID, &ingestion.Upload{Filename: path, Content: b})
	if err != nil {
		return err
	}
	logger.L().Info().
		Str("file", path).
		Bool("success", resp.Success).
		Int("imported", resp.ImportedCount).
		Int("skipped", resp.SkippedCount).
		Int("rows", resp.TotalRows).
		Strs("errors", resp.Errors).
		Msg("import completed")
	return nil
}

func importDirectory(ctx context.Context, svc ingestion.Service, dir string, parallel int) error {
	files, err := ingestion.LoadDirectory(ctx, dir, parallel)
	if err != nil {
		return err
	}
	resp, err := svc.ImportMany(ctx, files)
	if err != nil {
		return err
	}
	logImportSummary(resp)
	return nil
}

func logImportSummary(resp *dto.MultiImportResponse) {
	for _, r := range resp.Results {
		ev := logger.L().Info()
		if r.Status != dto.StatusSuccess {
			ev = logger.L().Warn()
		}
		ev.Str("file", r.Filename).
			Str("account_number", r.AccountNumber).
			Str("status", r.Status).
			Int("imported", r.ImportedCount).
			Int("skipped", r.SkippedCount).
			Strs("errors", r.Errors).
			Msg("file result")
	}
	logger.L().Info().
		Int("files", resp.Summary.TotalFiles).
		Int("processed", resp.Summary.FilesProcessed).
		Int("failed", resp.Summary.FilesFailed).
		Int("imported", resp.Summary.TotalImported).
		Int("skipped", resp.Summary.TotalSkipped).
		Msg("import completed")
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status|version|redo|reset] [args...]",
		Short:     "Run database migrations",
		ValidArgs: []string{"up", "down", "status", "version", "redo", "reset"},
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("migrate requires a command")
			}
			if !migrateCommands[args[0]] {
				return fmt.Errorf("unknown migrate command %q", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := app.InitPostgres(config.AppConfig)
			if err != nil {
				return fmt.Errorf("db connect: %w", err)
			}
			defer func() { _ = db.Close() }()

			return app.Migrate(cmd.Context(), db, args[0], args[1:]...)
		},
	}
}
