package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/openparcel/parcelkit/internal/cli"
	"github.com/openparcel/parcelkit/internal/db"
	"github.com/openparcel/parcelkit/internal/repository"
	"github.com/openparcel/parcelkit/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.parcelkit/parcelkit.db
	dbPath := os.Getenv("PARCELKIT_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".parcelkit", "parcelkit.db")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	sourceRepo := repository.NewSQLiteSourceRepo(database)
	taxonomyRepo := repository.NewSQLiteTaxonomyRepo(database)

	// Wire unit of work for transactional imports
	uow := db.NewSQLiteUnitOfWork(database)

	// Wire services
	planSvc := service.NewPlanService(projectRepo, sourceRepo, uow)

	app := &cli.App{
		Projects: service.NewProjectService(projectRepo),
		Plans:    planSvc,
		Parcels:  service.NewParcelService(planSvc, sourceRepo),
		Taxonomy: service.NewTaxonomyService(taxonomyRepo),
	}

	// Detect interactive terminal for the browser-only entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
