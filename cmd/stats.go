package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/hagios/internal/catalog"
	"github.com/abhisek/hagios/internal/gate"
	"github.com/abhisek/hagios/internal/ui/layout"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show course progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDeps(cmd, func(d *deps) error {
			out := cmd.OutOrStdout()
			pct := d.tracker.PercentComplete(d.catalog)
			statuses := d.tracker.Statuses(d.catalog)
			fmt.Fprintf(out, "Completed: %d of %d modules (%d%%)\n\n",
				d.tracker.CompletedCount(d.catalog), d.catalog.Len(), layout.RoundPercent(pct))

			for i, m := range d.catalog.Modules() {
				line := fmt.Sprintf("%s %-4s %s", statuses[i].Icon(), m.ID, m.Title)
				if d.journals.Has(d.ctx, m.ID) {
					line += "  " + journalSummary(d, m.ID)
				}
				fmt.Fprintln(out, line)
			}
			return nil
		})
	},
}

// journalSummary describes a stored journal's quiz score and what is still
// missing for completion. The pass mark falls back to the default when the
// module content cannot be loaded.
func journalSummary(d *deps, id string) string {
	rec := d.journals.Load(d.ctx, id)
	threshold := catalog.Content{}.PassThreshold()
	if content, err := catalog.LoadContent(d.ctx, d.source, id); err == nil {
		threshold = content.PassThreshold()
	}

	s := "quiz -"
	if rec.HasScore() {
		s = fmt.Sprintf("quiz %d%%", *rec.QuizScorePercent)
	}
	if d.tracker.IsCompleted(id) {
		return s
	}
	if req := gate.Evaluate(rec, threshold); req.Met() {
		s += ", ready to complete"
	} else {
		s += fmt.Sprintf(", %d to do", len(req.Missing()))
	}
	return s
}
