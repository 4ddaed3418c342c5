package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/capitolclips/legislink/internal/contextual"
	"github.com/capitolclips/legislink/internal/database"
	"github.com/capitolclips/legislink/internal/models"
	"github.com/capitolclips/legislink/internal/resolver"
)

var (
	dbType     string
	dbPath     string
	dbHost     string
	dbPort     int
	dbUser     string
	dbPassword string
	dbName     string

	flagDryRun      bool
	flagForce       bool
	flagVerbose     bool
	flagJSON        bool
	flagType        string
	flagLimit       int
	flagBillThresh  float64
	flagLegisThresh float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "resolver",
		Short: "Resolve OCR chyron text against bill and legislator records",
		Long: `resolver reconciles raw OCR text captured from legislative video chyrons
against canonical bill and legislator records, committing a link only when
its confidence clears the per-type threshold. A wrong link is worse than no
link, so unresolved entries are left for a later run.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch flagType {
			case "", "bill", "legislator":
				return nil
			}
			return fmt.Errorf("invalid --type %q (expected bill or legislator)", flagType)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dbType, "db", envOr("DB_TYPE", "sqlite"), "Database type (sqlite or postgres)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db-path", envOr("DB_PATH", "./legislink.db"), "SQLite database path")
	rootCmd.PersistentFlags().StringVar(&dbHost, "db-host", envOr("DB_HOST", "localhost"), "Database host")
	rootCmd.PersistentFlags().IntVar(&dbPort, "db-port", 5432, "Database port")
	rootCmd.PersistentFlags().StringVar(&dbUser, "db-user", envOr("DB_USER", "legislink"), "Database user")
	rootCmd.PersistentFlags().StringVar(&dbPassword, "db-password", envOr("DB_PASSWORD", ""), "Database password")
	rootCmd.PersistentFlags().StringVar(&dbName, "db-name", envOr("DB_NAME", "legislink"), "Database name")

	rootCmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "Compute matches without persisting links")
	rootCmd.PersistentFlags().BoolVar(&flagForce, "force", false, "Re-evaluate already-linked entries")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log per-entry resolution decisions")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Emit the report as JSON")
	rootCmd.PersistentFlags().StringVar(&flagType, "type", "", "Restrict to one entry type (bill or legislator)")
	rootCmd.PersistentFlags().Float64Var(&flagBillThresh, "bill-threshold", 0, "Minimum confidence for bill links (default 90)")
	rootCmd.PersistentFlags().Float64Var(&flagLegisThresh, "legislator-threshold", 0, "Minimum confidence for legislator links (default 75)")

	rootCmd.AddCommand(fileCmd())
	rootCmd.AddCommand(allCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func fileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "file <file-id>",
		Short: "Resolve a single video file's entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, db, err := buildEngine()
			if err != nil {
				return err
			}
			defer db.Close()

			report, err := engine.ResolveFile(context.Background(), args[0], buildOptions())
			if err != nil {
				return err
			}

			if flagJSON {
				return printJSON(report)
			}
			printFileReport(report)
			return nil
		},
	}
}

func allCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "all",
		Short: "Resolve every file with outstanding unresolved entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, db, err := buildEngine()
			if err != nil {
				return err
			}
			defer db.Close()

			report, err := engine.ResolveAll(context.Background(), buildOptions())
			if err != nil {
				return err
			}

			if flagJSON {
				return printJSON(report)
			}
			printBatchReport(report)
			return nil
		},
	}
	cmd.Flags().IntVar(&flagLimit, "limit", 0, "Maximum number of files to process (0 = all)")
	return cmd
}

func buildEngine() (*resolver.RawTextResolver, *database.DB, error) {
	db, err := database.NewDB(database.Config{
		Type:       dbType,
		Host:       dbHost,
		Port:       dbPort,
		User:       dbUser,
		Password:   dbPassword,
		Name:       dbName,
		SQLitePath: dbPath,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	entries := database.NewVideoIndexRepo(db)
	analyzer := contextual.NewAnalyzer(entries)
	engine := resolver.NewRawTextResolver(
		database.NewFileRepo(db),
		database.NewSessionRepo(db),
		entries,
		resolver.NewBillResolver(database.NewBillRepo(db), analyzer),
		resolver.NewLegislatorResolver(database.NewLegislatorRepo(db), analyzer),
	)
	return engine, db, nil
}

func buildOptions() resolver.Options {
	return resolver.Options{
		Type:                models.EntryType(flagType),
		Force:               flagForce,
		DryRun:              flagDryRun,
		Limit:               flagLimit,
		Verbose:             flagVerbose,
		BillThreshold:       flagBillThresh,
		LegislatorThreshold: flagLegisThresh,
	}
}

func printFileReport(report *resolver.FileReport) {
	fmt.Printf("File %s (session %d)\n", report.FileID, report.SessionID)
	fmt.Printf("  total:       %d\n", report.Total)
	fmt.Printf("  resolved:    %d (bills %d, legislators %d)\n",
		report.Resolved(), report.ResolvedBills, report.ResolvedLegislators)
	fmt.Printf("  unresolved:  %d (bills %d, legislators %d)\n",
		report.Unresolved(), report.UnresolvedBills, report.UnresolvedLegislators)
}

func printBatchReport(report *resolver.BatchReport) {
	fmt.Printf("Run %s\n", report.RunID)
	fmt.Printf("  files processed: %d\n", report.FilesProcessed)
	fmt.Printf("  files failed:    %d\n", report.FilesFailed)
	fmt.Printf("  entries:         %d total, %d resolved, %d unresolved\n",
		report.Total,
		report.ResolvedBills+report.ResolvedLegislators,
		report.UnresolvedBills+report.UnresolvedLegislators)
	fmt.Printf("  bills:           %d resolved, %d unresolved\n", report.ResolvedBills, report.UnresolvedBills)
	fmt.Printf("  legislators:     %d resolved, %d unresolved\n", report.ResolvedLegislators, report.UnresolvedLegislators)
	for _, fe := range report.Errors {
		fmt.Printf("  error: file %s: %s\n", fe.FileID, fe.Message)
	}
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
