package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/hagios/internal/app"
	"github.com/abhisek/hagios/internal/catalog"
	"github.com/abhisek/hagios/internal/progress"
	"github.com/abhisek/hagios/internal/screen"
	modulescreen "github.com/abhisek/hagios/internal/screens/module"
	"github.com/abhisek/hagios/internal/session"
)

// runApp builds dependencies and launches the TUI, optionally opening
// moduleID on top of the module list.
func runApp(cmd *cobra.Command, moduleID string) error {
	d, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer d.close()

	env := d.env()
	opts := app.Options{Env: env}
	if moduleID != "" {
		initial, err := openModule(env, moduleID)
		if err != nil {
			return err
		}
		opts.Initial = initial
	}
	return app.Run(opts)
}

func openModule(env *screen.Env, id string) (screen.Screen, error) {
	if err := requireUnlocked(env.Tracker, env.Catalog, id); err != nil {
		return nil, err
	}

	sess, err := session.Open(env.Ctx, env.Source, env.Catalog, id)
	if err != nil {
		return nil, err
	}
	if err := session.SaveSelection(env.Ctx, env.KV, sess.Module); err != nil {
		env.Logger.WarnContext(env.Ctx, "selection not saved", "module", id, "error", err)
	}
	return modulescreen.New(env, sess), nil
}

// requireUnlocked fails for ids missing from the catalog and for modules
// whose predecessor is not completed.
func requireUnlocked(tr *progress.Tracker, c catalog.Catalog, id string) error {
	st, err := tr.StatusOf(c, id)
	if err != nil {
		return err
	}
	if st == progress.StatusLocked {
		return fmt.Errorf("%w: %s: complete the previous module first", progress.ErrModuleLocked, id)
	}
	return nil
}

var openCmd = &cobra.Command{
	Use:   "open <id>",
	Short: "Open a module in the viewer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, args[0])
	},
}
