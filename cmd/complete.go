package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/hagios/internal/catalog"
	"github.com/abhisek/hagios/internal/gate"
	"github.com/abhisek/hagios/internal/store"
)

// ErrRequirementsUnmet is returned when a module's journal does not satisfy
// the completion gate.
var ErrRequirementsUnmet = errors.New("completion requirements not met")

var completeCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark a module complete once its quiz, challenge and journal are done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		return withDeps(cmd, func(d *deps) error {
			if err := requireUnlocked(d.tracker, d.catalog, id); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if d.tracker.IsCompleted(id) {
				fmt.Fprintf(out, "Module %s is already completed.\n", id)
				return nil
			}

			content, err := catalog.LoadContent(d.ctx, d.source, id)
			if err != nil {
				return err
			}
			req := gate.Evaluate(d.journals.Load(d.ctx, id), content.PassThreshold())
			if !req.Met() {
				return fmt.Errorf("module %s: %w: %s", id, ErrRequirementsUnmet, strings.Join(req.Missing(), ", "))
			}

			err = d.tracker.MarkCompleted(d.ctx, d.catalog, id)
			if err != nil && !store.IsStorageError(err) {
				return err
			}
			fmt.Fprintln(out, "Module completed! Next unlocked.")
			if err != nil {
				warnNotSaved(cmd, "progress", err)
			}
			return nil
		})
	},
}
