package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/hagios/internal/catalog"
	"github.com/abhisek/hagios/internal/config"
	"github.com/abhisek/hagios/internal/journal"
	"github.com/abhisek/hagios/internal/progress"
	"github.com/abhisek/hagios/internal/remote"
	"github.com/abhisek/hagios/internal/screen"
	"github.com/abhisek/hagios/internal/store"
	"github.com/abhisek/hagios/internal/ui/theme"
)

var rootCmd = &cobra.Command{
	Use:   "hagios",
	Short: "Terminal course viewer for Bible study modules",
	Long: `Hagios walks a learner through an ordered course of study modules.
Each module unlocks once the previous one is completed: read its sections,
pass its quiz, finish the challenge and answer the journal questions.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/hagios/config.yaml)")
	pf.String("db", "", "Path to SQLite database file (overrides HAGIOS_DB env var)")
	pf.String("content", "", "Content directory or http(s) URL (overrides HAGIOS_CONTENT)")
	pf.Bool("ephemeral", false, "Keep progress in memory only")
	pf.BoolP("verbose", "v", false, "Log at debug level")

	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(modulesCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// annotationAutoSync set to "off" stops setup from signing in to the
// remote before the command runs.
const annotationAutoSync = "autosync"

// deps holds everything a command needs, built from flags and config.
type deps struct {
	ctx      context.Context
	cfg      config.Config
	logger   *slog.Logger
	kv       store.KV
	source   catalog.Source
	catalog  catalog.Catalog
	tracker  *progress.Tracker
	journals *journal.Store
	syncer   *remote.Syncer

	closers []func() error
}

// setup resolves configuration and opens storage, content and, when
// configured, remote sync. With tui set, logs go to a file instead of
// stderr.
func setup(cmd *cobra.Command, tui bool) (*deps, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	d := &deps{ctx: ctx}

	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := cmd.Flags().GetString("content"); v != "" {
		cfg.Content = v
	}
	d.cfg = cfg

	if err := d.openLogger(cmd, tui); err != nil {
		return nil, err
	}

	if err := d.openStore(cmd); err != nil {
		d.close()
		return nil, err
	}

	d.source, err = catalog.OpenSource(cfg.Content)
	if err != nil {
		d.close()
		return nil, err
	}
	d.catalog, err = catalog.Load(ctx, d.source)
	if err != nil {
		d.close()
		return nil, err
	}
	d.logger.DebugContext(ctx, "catalog loaded", "source", fmt.Sprint(d.source), "modules", d.catalog.Len())

	d.tracker = progress.NewTracker(ctx, d.kv, d.logger)
	d.journals = journal.NewStore(d.kv, d.logger)
	theme.Load(ctx, d.kv)

	if cfg.SyncEnabled() && cmd.Annotations[annotationAutoSync] != "off" {
		d.startSync()
	}
	return d, nil
}

func (d *deps) openLogger(cmd *cobra.Command, tui bool) error {
	level := d.cfg.SlogLevel()
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}

	var w io.Writer = cmd.ErrOrStderr()
	if tui {
		path := d.cfg.LogFile
		if path == "" {
			dir, err := store.DataDir()
			if err != nil {
				return err
			}
			path = filepath.Join(dir, "hagios.log")
		}
		if err := store.EnsureDir(path); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		d.closers = append(d.closers, f.Close)
		w = f
	}

	d.logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return nil
}

func (d *deps) openStore(cmd *cobra.Command) error {
	if eph, _ := cmd.Flags().GetBool("ephemeral"); eph {
		d.kv = store.NewMemory()
		return nil
	}

	path := d.cfg.DBPath
	if path != "" {
		if err := store.EnsureDir(path); err != nil {
			return fmt.Errorf("create db dir: %w", err)
		}
	} else {
		var err error
		if path, err = store.DefaultDBPath(); err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
	}

	st, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	d.closers = append(d.closers, st.Close)
	d.kv = st.WithLogger(d.logger)
	return nil
}

// startSync signs in to the remote. A failure leaves the app working
// offline.
func (d *deps) startSync() {
	r := d.cfg.Redis
	rr := remote.NewRedisRemote(r.Addr, r.Password, r.DB, d.logger)
	d.closers = append(d.closers, rr.Close)

	s := remote.NewSyncer(rr, d.tracker, d.journals, d.logger)
	res, err := s.SignIn(d.ctx, d.cfg.UserID)
	if err != nil {
		d.logger.WarnContext(d.ctx, "remote sync unavailable", "error", err)
		return
	}
	d.logger.InfoContext(d.ctx, "signed in",
		"user", d.cfg.UserID,
		"remote_completed", res.RemoteCompleted,
		"imported_journals", len(res.ImportedJournals))
	d.syncer = s
	d.closers = append(d.closers, func() error { s.SignOut(); return nil })
}

func (d *deps) env() *screen.Env {
	return &screen.Env{
		Ctx:      d.ctx,
		Catalog:  d.catalog,
		Source:   d.source,
		Tracker:  d.tracker,
		Journals: d.journals,
		KV:       d.kv,
		Logger:   d.logger,
	}
}

// close releases resources in reverse order of acquisition.
func (d *deps) close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	d.closers = nil
	return errors.Join(errs...)
}

// withDeps runs fn with CLI dependencies and closes them afterwards.
func withDeps(cmd *cobra.Command, fn func(d *deps) error) error {
	d, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer d.close()
	return fn(d)
}
