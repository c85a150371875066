package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/hagios/internal/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show or edit module journals",
}

var journalShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a module's journal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		return withDeps(cmd, func(d *deps) error {
			m, err := d.catalog.Get(id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !d.journals.Has(d.ctx, id) {
				fmt.Fprintf(out, "No journal for module %s.\n", id)
				return nil
			}
			rec := d.journals.Load(d.ctx, id)

			sep := strings.Repeat("─", 60)
			fmt.Fprintf(out, "Module %s: %s\n%s\n", m.ID, m.Title, sep)
			for i, a := range rec.Answers {
				fmt.Fprintf(out, "%d. %s\n   %s\n\n", i+1, journal.Prompts[i], orDash(a))
			}
			score := "-"
			if rec.HasScore() {
				score = fmt.Sprintf("%d%%", *rec.QuizScorePercent)
			}
			fmt.Fprintf(out, "Quiz:       %s\n", score)
			fmt.Fprintf(out, "Challenge:  %v\n", rec.ChallengeCompleted)
			fmt.Fprintf(out, "Reflection: %s\n", orDash(rec.ChallengeReflection))
			return nil
		})
	},
}

var journalSetCmd = &cobra.Command{
	Use:   "set <id>",
	Short: "Update fields of a module's journal",
	Long: `Update fields of a module's journal. Fields not given keep their
stored value.

  hagios journal set 1 --answer 1="God made everything" --challenge`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		return withDeps(cmd, func(d *deps) error {
			if _, err := d.catalog.Get(id); err != nil {
				return err
			}
			rec := d.journals.Load(d.ctx, id)

			answers, _ := cmd.Flags().GetStringArray("answer")
			for _, a := range answers {
				n, text, err := parseAnswer(a)
				if err != nil {
					return err
				}
				rec.Answers[n-1] = text
			}
			if cmd.Flags().Changed("challenge") {
				rec.ChallengeCompleted, _ = cmd.Flags().GetBool("challenge")
			}
			if cmd.Flags().Changed("reflection") {
				rec.ChallengeReflection, _ = cmd.Flags().GetString("reflection")
			}

			if err := d.journals.Save(d.ctx, id, rec); err != nil {
				return fmt.Errorf("save journal: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Journal saved!")
			return nil
		})
	},
}

var journalClearCmd = &cobra.Command{
	Use:   "clear <id>",
	Short: "Delete a module's journal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		return withDeps(cmd, func(d *deps) error {
			if _, err := d.catalog.Get(id); err != nil {
				return err
			}
			if err := d.journals.Clear(d.ctx, id); err != nil {
				return fmt.Errorf("clear journal: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Journal cleared.")
			return nil
		})
	},
}

func init() {
	journalSetCmd.Flags().StringArray("answer", nil, "Answer as N=text, N from 1 to 4 (repeatable)")
	journalSetCmd.Flags().Bool("challenge", false, "Mark the challenge as completed")
	journalSetCmd.Flags().String("reflection", "", "Challenge reflection")

	journalCmd.AddCommand(journalShowCmd)
	journalCmd.AddCommand(journalSetCmd)
	journalCmd.AddCommand(journalClearCmd)
}

// parseAnswer splits "N=text" into a 1-based question number and text.
func parseAnswer(s string) (int, string, error) {
	num, text, ok := strings.Cut(s, "=")
	if !ok {
		return 0, "", fmt.Errorf("invalid answer %q: want N=text", s)
	}
	n, err := strconv.Atoi(strings.TrimSpace(num))
	if err != nil || n < 1 || n > journal.QuestionCount {
		return 0, "", fmt.Errorf("invalid question number %q: must be 1 to %d", num, journal.QuestionCount)
	}
	return n, text, nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
