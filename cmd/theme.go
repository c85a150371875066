package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/hagios/internal/ui/theme"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark]",
	Short:     "Show or set the color theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{theme.Light.Name, theme.Dark.Name},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(cmd, func(d *deps) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprintln(out, theme.Current().Name)
				return nil
			}
			if !theme.Apply(args[0]) {
				return fmt.Errorf("unknown theme %q: use %s or %s", args[0], theme.Light.Name, theme.Dark.Name)
			}
			p, err := theme.Set(d.ctx, d.kv, args[0])
			if err != nil {
				return fmt.Errorf("save theme: %w", err)
			}
			fmt.Fprintf(out, "Theme: %s\n", p.Name)
			return nil
		})
	},
}
