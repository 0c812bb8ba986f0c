package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bburn/internal/config"
	"github.com/theirongolddev/bburn/internal/log"
	"github.com/theirongolddev/bburn/internal/model"
	"github.com/theirongolddev/bburn/internal/pipeline"
	"github.com/theirongolddev/bburn/internal/store"
)

var (
	flagYear       int
	flagDB         string
	flagCategories string
	flagQuiet      bool
	flagVerbose    bool
)

var rootCmd = &cobra.Command{
	Use:          "bburn",
	Short:        "Budget burn tracking and forecasting",
	Long:         "Track monthly budget, actuals and reforecasts by category; roll them up into YTD, quarterly and full-year forecasts.",
	RunE:         runSummary,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&flagYear, "year", "y", 0, "Budget year (default: config default_year or the current year)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database path (default: $BBURN_DB or the XDG data dir)")
	rootCmd.PersistentFlags().StringVar(&flagCategories, "categories", "", "Categories YAML file")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress and log output")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Debug logging")
}

// env is the resolved configuration shared by every command.
type env struct {
	cfg        config.Config
	categories []model.Category
	year       int
	dbPath     string
	logger     *log.Logger
}

func newLogger() *log.Logger {
	if flagQuiet {
		return log.Discard()
	}
	lc := log.DefaultConfig()
	lc.Level = slog.LevelWarn
	if flagVerbose {
		lc.Level = slog.LevelDebug
	}
	logger := log.New(lc)
	log.SetDefault(logger)
	return logger
}

func loadEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	categories, err := config.ResolveCategories(cfg, flagCategories)
	if err != nil {
		return nil, err
	}

	e := &env{
		cfg:        cfg,
		categories: categories,
		year:       cfg.Year(time.Now()),
		dbPath:     config.DBPath(cfg),
		logger:     newLogger(),
	}
	if flagYear > 0 {
		e.year = flagYear
	}
	if flagDB != "" {
		e.dbPath = flagDB
	}
	return e, nil
}

func (e *env) openStore() (*store.Store, error) {
	st, err := store.Open(e.dbPath, e.logger.WithComponent(log.ComponentStore))
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", e.dbPath, err)
	}
	return st, nil
}

// loadSnapshot is the shared read path: one consistent load, one engine pass.
func loadSnapshot() (*env, pipeline.Snapshot, error) {
	e, err := loadEnv()
	if err != nil {
		return nil, pipeline.Snapshot{}, err
	}
	st, err := e.openStore()
	if err != nil {
		return nil, pipeline.Snapshot{}, err
	}
	defer st.Close()

	data, err := st.LoadData(context.Background(), e.year)
	if err != nil {
		return nil, pipeline.Snapshot{}, err
	}
	snap := pipeline.Compute(pipeline.Input{
		Entries:         data.Entries,
		Categories:      e.categories,
		Modes:           data.Modes,
		Targets:         data.Targets,
		CompensationIDs: e.cfg.Compensation.CategoryIDs,
		Year:            e.year,
	})
	if snap.UnknownCount > 0 && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  %d entries reference categories that are not configured and were skipped\n", snap.UnknownCount)
	}
	return e, snap, nil
}

// withStore opens the store for a write command and closes it afterwards.
func withStore(fn func(ctx context.Context, e *env, st *store.Store) error) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	st, err := e.openStore()
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(context.Background(), e, st)
}

func printNoData(year int) {
	fmt.Printf("\n  No entries for %d.\n", year)
	fmt.Println("  Add some with `bburn entry set` or `bburn import <file.csv>`.")
}
