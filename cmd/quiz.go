package cmd

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/hagios/internal/catalog"
	"github.com/abhisek/hagios/internal/quiz"
	"github.com/abhisek/hagios/internal/store"
)

var quizCmd = &cobra.Command{
	Use:   "quiz <id>",
	Short: "Take a module's quiz in the terminal",
	Long: `Ask each quiz question on stdin and record the score in the module's
journal. Answer with the option letter or number.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		return withDeps(cmd, func(d *deps) error {
			if err := requireUnlocked(d.tracker, d.catalog, id); err != nil {
				return err
			}
			content, err := catalog.LoadContent(d.ctx, d.source, id)
			if err != nil {
				return err
			}
			key := content.AnswerKey()
			if len(key.Questions) == 0 {
				return fmt.Errorf("module %s has no quiz", id)
			}

			out := cmd.OutOrStdout()
			scanner := bufio.NewScanner(cmd.InOrStdin())
			sub := quiz.Submission{}

			for i, q := range key.Questions {
				fmt.Fprintf(out, "── Question %d/%d ──\n%s\n", i+1, len(key.Questions), q.Prompt)
				for j, o := range q.Options {
					fmt.Fprintf(out, "  %c) %s\n", 'A'+rune(j%26), o.Text)
				}

				fmt.Fprint(out, "\nYour answer: ")
				if !scanner.Scan() {
					fmt.Fprintln(out, "\n(input closed)")
					break
				}
				if opt, ok := pickOption(q, scanner.Text()); ok {
					sub[q.ID] = opt
				} else {
					fmt.Fprintln(out, "(skipped)")
				}
				fmt.Fprintln(out)
			}

			r := quiz.Grade(key, sub)
			if r.Passed {
				fmt.Fprintf(out, "Well done! %d%% correct.\n", r.Percent)
			} else {
				fmt.Fprintf(out, "%d%%. Try again (pass mark %d%%).\n", r.Percent, r.Threshold)
			}

			rec := d.journals.Load(d.ctx, id)
			rec.QuizScorePercent = &r.Percent
			if err := d.journals.Save(d.ctx, id, rec); err != nil {
				if !store.IsStorageError(err) {
					return fmt.Errorf("save quiz score: %w", err)
				}
				warnNotSaved(cmd, "quiz score", err)
			}
			return nil
		})
	},
}

// warnNotSaved reports a storage failure on stderr. The command still
// succeeds.
func warnNotSaved(cmd *cobra.Command, what string, err error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s not saved: %v\n", what, err)
}

// pickOption maps a typed letter (A, b) or 1-based number to an option ID.
func pickOption(q quiz.Question, answer string) (string, bool) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", false
	}

	idx := -1
	if n, err := strconv.Atoi(answer); err == nil {
		idx = n - 1
	} else if len(answer) == 1 {
		c := strings.ToUpper(answer)[0]
		if c >= 'A' && c <= 'Z' {
			idx = int(c - 'A')
		}
	}
	if idx < 0 || idx >= len(q.Options) {
		return "", false
	}
	return q.Options[idx].ID, true
}
