package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/hagios/internal/session"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase completed modules and journals",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return errors.New("this erases all progress and journals; rerun with --yes to confirm")
		}
		return withDeps(cmd, func(d *deps) error {
			if err := d.tracker.Reset(d.ctx); err != nil {
				return fmt.Errorf("reset progress: %w", err)
			}
			ids, err := d.journals.IDs(d.ctx)
			if err != nil {
				return fmt.Errorf("list journals: %w", err)
			}
			for _, id := range ids {
				if err := d.journals.Clear(d.ctx, id); err != nil {
					return fmt.Errorf("clear journal %s: %w", id, err)
				}
			}
			if err := d.kv.Remove(d.ctx, session.SelectionKey); err != nil {
				return fmt.Errorf("clear selection: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Progress reset. %d journals removed.\n", len(ids))
			return nil
		})
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
