package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/hagios/internal/remote"
)

// ErrSyncDisabled is returned by the sync command when no Redis server or
// user is configured.
var ErrSyncDisabled = errors.New("sync is not configured: set redis.addr and user in the config file or HAGIOS_REDIS_ADDR and HAGIOS_USER")

var syncCmd = &cobra.Command{
	Use:         "sync",
	Short:       "Merge progress and journals with the remote copy",
	Annotations: map[string]string{annotationAutoSync: "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(cmd, func(d *deps) error {
			cfg := d.cfg
			if !cfg.SyncEnabled() {
				return ErrSyncDisabled
			}

			rr := remote.NewRedisRemote(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, d.logger)
			defer rr.Close()
			if err := rr.Ping(d.ctx); err != nil {
				return err
			}

			s := remote.NewSyncer(rr, d.tracker, d.journals, d.logger)
			defer s.SignOut()
			res, err := s.SignIn(d.ctx, cfg.UserID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Signed in as %s\n", cfg.UserID)
			fmt.Fprintf(out, "Remote completed modules: %d\n", res.RemoteCompleted)
			fmt.Fprintf(out, "Journals imported:        %d\n", len(res.ImportedJournals))
			fmt.Fprintf(out, "Completed now:            %d of %d\n", len(res.Completed), d.catalog.Len())
			return nil
		})
	},
}
