package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List the course modules and their status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(cmd, func(d *deps) error {
			out := cmd.OutOrStdout()
			statuses := d.tracker.Statuses(d.catalog)

			fmt.Fprintf(out, "%-4s  %-2s  %-36s  %-10s  %s\n",
				"ID", "", "Title", "Duration", "Status")
			fmt.Fprintln(out, strings.Repeat("─", 72))

			for i, m := range d.catalog.Modules() {
				title := m.Title
				if len([]rune(title)) > 36 {
					title = string([]rune(title)[:33]) + "..."
				}
				fmt.Fprintf(out, "%-4s  %-2s  %-36s  %-10s  %s\n",
					m.ID, statuses[i].Icon(), title, m.Duration, statuses[i].Label())
			}

			fmt.Fprintf(out, "\n%d modules\n", d.catalog.Len())
			return nil
		})
	},
}
