package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/shopgrid/internal/config"
	"github.com/jask/shopgrid/internal/database"
	"github.com/jask/shopgrid/internal/database/repository"
	"github.com/jask/shopgrid/internal/logging"
	"github.com/jask/shopgrid/internal/prefs"
	"github.com/jask/shopgrid/internal/service"
	"github.com/jask/shopgrid/internal/tui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// runtime is the state shared by every subcommand.
type runtime struct {
	verbose bool
	cfg     config.Config
	log     *zap.Logger
}

func newRootCmd() *cobra.Command {
	rt := &runtime{}
	var manualOnly bool

	root := &cobra.Command{
		Use:   "shopgrid",
		Short: "Browse a product catalog in the terminal",
		Long: `shopgrid shows a filtered, sorted product grid that loads more
products as you scroll or on request.

Run without arguments to start the interactive browser.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			rt.cfg = cfg
			logger, err := logging.New(cfg.Log.Path, cfg.Log.Level, rt.verbose)
			if err != nil {
				return err
			}
			rt.log = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if rt.log != nil {
				_ = rt.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.browse(cmd.Context(), manualOnly)
		},
	}
	root.PersistentFlags().BoolVarP(&rt.verbose, "verbose", "v", false, "debug logging")
	root.Flags().BoolVar(&manualOnly, "manual", false, "only load more on request")

	root.AddCommand(newListCmd(rt), newSeedCmd(rt))
	return root
}

// openStore migrates, opens and seeds the catalog database.
func (rt *runtime) openStore(ctx context.Context) (*sql.DB, error) {
	path := rt.cfg.Database.Path
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := database.RunMigrations(path); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(path)
	if err != nil {
		return nil, err
	}
	if err := database.SeedDefaults(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed defaults: %w", err)
	}
	return db, nil
}

func (rt *runtime) catalogService(db *sql.DB) *service.CatalogService {
	return &service.CatalogService{
		Products:   repository.NewProductRepo(db),
		Categories: repository.NewCategoryRepo(db),
		Log:        rt.log,
	}
}

func (rt *runtime) browse(ctx context.Context, manualOnly bool) error {
	db, err := rt.openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	services := tui.Services{Catalog: rt.catalogService(db)}
	if rt.cfg.Prefs.Watch && rt.cfg.Prefs.Path != "" {
		w, err := prefs.NewWatcher(rt.cfg.Prefs.Path, rt.log)
		if err != nil {
			rt.log.Warn("preferences watcher unavailable", zap.Error(err))
		} else if err := w.Start(ctx); err != nil {
			rt.log.Warn("preferences watcher unavailable", zap.Error(err))
			w.Stop()
		} else {
			defer w.Stop()
			services.Prefs = w
		}
	}

	app := tui.New(ctx, rt.cfg, services, rt.log, tui.Options{DisableAmbient: manualOnly})
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
