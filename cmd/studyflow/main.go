package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/studyflow/internal/cli"
	"github.com/alexanderramin/studyflow/internal/cli/formatter"
	"github.com/alexanderramin/studyflow/internal/config"
	"github.com/alexanderramin/studyflow/internal/db"
	"github.com/alexanderramin/studyflow/internal/repository"
	"github.com/alexanderramin/studyflow/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.studyflow/studyflow.db
	dbPath := os.Getenv("STUDYFLOW_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".studyflow", "studyflow.db")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	studentRepo := repository.NewSQLiteStudentRepo(database)
	subjectRepo := repository.NewSQLiteSubjectRepo(database)
	peerRepo := repository.NewSQLitePeerOutcomeRepo(database)
	modelRepo := repository.NewSQLiteModelRepo(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if os.Getenv("STUDYFLOW_VERBOSE") != "" {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	app := &cli.App{
		Plan:   service.NewPlanService(studentRepo, subjectRepo, peerRepo, modelRepo, cfg, observer),
		Train:  service.NewTrainService(peerRepo, modelRepo, cfg, observer),
		Roster: service.NewRosterService(studentRepo, subjectRepo, peerRepo, observer),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	formatter.AutoDetectColor()

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
