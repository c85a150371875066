// Package quiz runs a module's quiz one question at a time and records the
// score in the module's journal.
package quiz

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	qz "github.com/abhisek/hagios/internal/quiz"
	"github.com/abhisek/hagios/internal/screen"
	"github.com/abhisek/hagios/internal/ui/components"
	"github.com/abhisek/hagios/internal/ui/layout"
	"github.com/abhisek/hagios/internal/ui/theme"
)

// GradedMsg is emitted once the quiz has been scored.
type GradedMsg struct {
	ModuleID string
	Result   qz.Result
}

// QuizScreen asks each question of an answer key in order.
type QuizScreen struct {
	env      *screen.Env
	moduleID string
	key      qz.AnswerKey

	index  int
	mc     components.MultiChoice
	sub    qz.Submission
	result *qz.Result
}

var (
	_ screen.Screen          = (*QuizScreen)(nil)
	_ screen.KeyHintProvider = (*QuizScreen)(nil)
)

// New creates a quiz over key for moduleID.
func New(env *screen.Env, moduleID string, key qz.AnswerKey) *QuizScreen {
	q := &QuizScreen{env: env, moduleID: moduleID, key: key}
	q.restart()
	return q
}

func (q *QuizScreen) restart() {
	q.index = 0
	q.sub = qz.Submission{}
	q.result = nil
	if len(q.key.Questions) > 0 {
		q.mc = q.question(0)
	}
}

func (q *QuizScreen) question(i int) components.MultiChoice {
	return components.NewMultiChoice(q.key.Questions[i],
		fmt.Sprintf("%d/%d", i+1, len(q.key.Questions)))
}

// Result returns the graded result once every question has been answered.
func (q *QuizScreen) Result() (qz.Result, bool) {
	if q.result == nil {
		return qz.Result{}, false
	}
	return *q.result, true
}

func (q *QuizScreen) Init() tea.Cmd {
	return nil
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return q, nil
	}

	if q.result != nil {
		if kmsg.String() == "r" {
			q.restart()
		}
		return q, nil
	}
	if len(q.key.Questions) == 0 {
		return q, nil
	}

	var cmd tea.Cmd
	q.mc, cmd = q.mc.Update(msg)
	id, answered := q.mc.Chosen()
	if !answered {
		return q, cmd
	}

	q.sub[q.mc.Question.ID] = id
	q.index++
	if q.index < len(q.key.Questions) {
		q.mc = q.question(q.index)
		return q, cmd
	}
	return q, tea.Batch(cmd, q.grade())
}

// grade scores the submission and stores the percentage in the journal,
// keeping the rest of the journal as it was.
func (q *QuizScreen) grade() tea.Cmd {
	r := qz.Grade(q.key, q.sub)
	q.result = &r

	ctx := q.env.Ctx
	rec := q.env.Journals.Load(ctx, q.moduleID)
	rec.QuizScorePercent = &r.Percent
	done := func() tea.Msg { return GradedMsg{ModuleID: q.moduleID, Result: r} }
	if err := q.env.Journals.Save(ctx, q.moduleID, rec); err != nil {
		return tea.Batch(screen.Warn("Quiz score not saved", err), done)
	}
	q.env.Logger.InfoContext(ctx, "quiz graded",
		"module", q.moduleID, "percent", r.Percent, "passed", r.Passed)
	return done
}

func (q *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	title := q.key.Title
	if title == "" {
		title = "Quiz"
	}

	var body string
	switch {
	case len(q.key.Questions) == 0:
		body = theme.Hint.Render("This module has no quiz.")
	case q.result != nil:
		body = q.viewResult(cw)
	default:
		bar := components.NewProgressBar("",
			float64(q.index)/float64(len(q.key.Questions))*100, false, cw-4)
		body = bar.View() + "\n\n" + q.mc.View()
	}

	return components.Page(components.Heading(title, "")+"\n\n"+components.Card(body, cw), width, height)
}

func (q *QuizScreen) viewResult(cw int) string {
	r := *q.result

	var b strings.Builder
	summary := fmt.Sprintf("%d%% correct (%d of %d)", r.Percent, r.Correct, r.Total)
	if r.Passed {
		b.WriteString(theme.Correct.Render("Well done! " + summary))
	} else {
		b.WriteString(theme.Incorrect.Render(fmt.Sprintf("%s. Try again (pass mark %d%%).", summary, r.Threshold)))
	}
	b.WriteString("\n\n")
	b.WriteString(components.NewProgressBar("Score", float64(r.Percent), true, cw-4).View())

	if len(r.Missed) > 0 {
		missed := make(map[string]bool, len(r.Missed))
		for _, id := range r.Missed {
			missed[id] = true
		}
		b.WriteString("\n\n")
		b.WriteString(theme.Subtitle.Render("Review"))
		for _, question := range q.key.Questions {
			if !missed[question.ID] {
				continue
			}
			b.WriteString("\n" + theme.Body.Render("• "+question.Prompt))
			for _, opt := range question.Options {
				if opt.ID == question.CorrectOptionID {
					b.WriteString("\n  " + theme.Correct.Render(opt.Text))
				}
			}
		}
	}
	return b.String()
}

func (q *QuizScreen) Title() string {
	return "Quiz"
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	if q.result != nil {
		return []layout.KeyHint{
			{Key: "r", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Answer"},
		{Key: "Esc", Description: "Back"},
	}
}
