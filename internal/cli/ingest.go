package cli

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"

	_ "github.com/duckdb/duckdb-go/v2"

	"arete/internal/duckdb"
	"arete/internal/reconcile"
	"arete/internal/runner"
)

func runIngest(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		runDir := fs.String("dir", "", "Run directory containing report.json")
		dbPath := fs.String("db", "", "DuckDB database path (default: <dir>/arete.duckdb)")
		if err := fs.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			return ExitUsage
		}
		if *runDir == "" {
			fmt.Fprintln(stderr, "--dir is required")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		paths := runner.PathsForRunDir(*runDir)
		reconciled, err := reconcile.LoadReport(paths.ReportPath())
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load report: %v\n", err)
			return ExitError
		}

		target := *dbPath
		if target == "" {
			target = paths.DatabasePath()
		}
		db, err := sql.Open("duckdb", target)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open database: %v\n", err)
			return ExitError
		}
		defer db.Close()

		ctx := context.Background()
		if err := duckdb.EnsureSchema(db); err != nil {
			fmt.Fprintf(stderr, "Failed to apply schema: %v\n", err)
			return ExitError
		}
		if err := duckdb.IngestReport(ctx, db, reconciled); err != nil {
			fmt.Fprintf(stderr, "Ingest failed: %v\n", err)
			return ExitError
		}

		count, err := duckdb.CountTrials(ctx, db, reconciled.RunID)
		if err != nil {
			fmt.Fprintf(stderr, "Ingest verification failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Ingested run %s: %d trials in %s\n", reconciled.RunID, count, target)
		return ExitOK
	}
}
