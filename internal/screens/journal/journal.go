// Package journal is the reflection journal form for a module, including
// the challenge checkbox and the completion button.
package journal

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hagios/internal/gate"
	jnl "github.com/abhisek/hagios/internal/journal"
	"github.com/abhisek/hagios/internal/progress"
	"github.com/abhisek/hagios/internal/quiz"
	"github.com/abhisek/hagios/internal/screen"
	"github.com/abhisek/hagios/internal/session"
	"github.com/abhisek/hagios/internal/ui/components"
	"github.com/abhisek/hagios/internal/ui/layout"
	"github.com/abhisek/hagios/internal/ui/theme"
)

// Focus targets in tab order after the four answers.
const (
	focusChallenge = jnl.QuestionCount + iota
	focusReflection
	focusComplete
	focusCount
)

// CompletedMsg is emitted after the module has been marked complete.
type CompletedMsg struct {
	ModuleID string
}

// JournalScreen edits one module's journal.
type JournalScreen struct {
	env  *screen.Env
	sess *session.Session

	answers    [jnl.QuestionCount]components.TextInput
	challenge  bool
	reflection textarea.Model
	score      *int
	focus      int

	confirmClear bool
}

var (
	_ screen.Screen          = (*JournalScreen)(nil)
	_ screen.KeyHintProvider = (*JournalScreen)(nil)
)

// New loads the stored journal for the session's module into a form.
func New(env *screen.Env, sess *session.Session) *JournalScreen {
	j := &JournalScreen{env: env, sess: sess}
	for i := range j.answers {
		j.answers[i] = components.NewTextInput(
			fmt.Sprintf("%d. %s", i+1, jnl.Prompts[i]),
			"Write your answer…",
			gate.MinAnswerLength,
			60,
		)
	}
	j.reflection = textarea.New()
	j.reflection.Placeholder = "How did the challenge go?"
	j.reflection.ShowLineNumbers = false
	j.reflection.SetWidth(60)
	j.reflection.SetHeight(3)

	j.fill(env.Journals.Load(env.Ctx, sess.Module.ID))
	return j
}

func (j *JournalScreen) fill(rec jnl.Record) {
	for i := range j.answers {
		j.answers[i].SetValue(rec.Answers[i])
	}
	j.challenge = rec.ChallengeCompleted
	j.reflection.SetValue(rec.ChallengeReflection)
	j.score = rec.QuizScorePercent
}

// Record returns the form contents as a journal record.
func (j *JournalScreen) Record() jnl.Record {
	var rec jnl.Record
	for i := range j.answers {
		rec.Answers[i] = j.answers[i].Value()
	}
	rec.QuizScorePercent = j.score
	rec.ChallengeCompleted = j.challenge
	rec.ChallengeReflection = j.reflection.Value()
	return rec
}

func (j *JournalScreen) threshold() int {
	return j.sess.Content.PassThreshold()
}

func (j *JournalScreen) completed() bool {
	return j.env.Tracker.IsCompleted(j.sess.Module.ID)
}

func (j *JournalScreen) Init() tea.Cmd {
	return j.setFocus(0)
}

// setFocus moves keyboard focus to target and returns the blink command
// of the newly focused field, if any.
func (j *JournalScreen) setFocus(target int) tea.Cmd {
	j.focus = (target%focusCount + focusCount) % focusCount
	for i := range j.answers {
		j.answers[i].Blur()
	}
	j.reflection.Blur()

	switch {
	case j.focus < jnl.QuestionCount:
		return j.answers[j.focus].Focus()
	case j.focus == focusReflection:
		return j.reflection.Focus()
	}
	return nil
}

func (j *JournalScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return j, nil
	}

	key := kmsg.String()
	if key != "ctrl+x" {
		j.confirmClear = false
	}

	switch key {
	case "tab":
		return j, j.setFocus(j.focus + 1)
	case "shift+tab":
		return j, j.setFocus(j.focus - 1)
	case "ctrl+s":
		return j, j.save()
	case "ctrl+x":
		return j, j.clear()
	}

	switch {
	case j.focus < jnl.QuestionCount:
		if key == "enter" {
			return j, j.setFocus(j.focus + 1)
		}
		var cmd tea.Cmd
		j.answers[j.focus], cmd = j.answers[j.focus].Update(msg)
		return j, cmd
	case j.focus == focusChallenge:
		if key == "space" || key == "enter" || key == "x" {
			j.challenge = !j.challenge
		}
	case j.focus == focusReflection:
		var cmd tea.Cmd
		j.reflection, cmd = j.reflection.Update(msg)
		return j, cmd
	case j.focus == focusComplete:
		if key == "enter" {
			return j, j.complete()
		}
	}
	return j, nil
}

func (j *JournalScreen) save() tea.Cmd {
	err := j.env.Journals.Save(j.env.Ctx, j.sess.Module.ID, j.Record())
	if err != nil {
		return screen.Warn("Journal not saved", err)
	}
	return screen.Status("Journal saved!")
}

// clear needs two consecutive presses.
func (j *JournalScreen) clear() tea.Cmd {
	if !j.confirmClear {
		j.confirmClear = true
		return screen.Status("Press Ctrl+X again to clear the journal.")
	}
	j.confirmClear = false

	// Clearing wipes the answers only; the quiz score and the challenge
	// state stay in the form until the next save.
	for i := range j.answers {
		j.answers[i].SetValue("")
	}
	if err := j.env.Journals.Clear(j.env.Ctx, j.sess.Module.ID); err != nil {
		return screen.Warn("Journal not cleared", err)
	}
	return screen.Status("Journal cleared.")
}

// complete saves the form, re-checks the journal against the gate and
// marks the module as completed. A journal that could not be persisted is
// still held for this session, so completion goes ahead with a warning.
func (j *JournalScreen) complete() tea.Cmd {
	id := j.sess.Module.ID
	if j.completed() {
		return screen.Status("Module already completed.")
	}

	saveErr := j.env.Journals.Save(j.env.Ctx, id, j.Record())
	req := gate.Evaluate(j.env.Journals.Load(j.env.Ctx, id), j.threshold())
	if !req.Met() {
		if saveErr != nil {
			return screen.Warn("Journal not saved", saveErr)
		}
		return screen.Status("Still to do: " + strings.Join(req.Missing(), ", "))
	}

	err := j.env.Tracker.MarkCompleted(j.env.Ctx, j.env.Catalog, id)
	if err != nil && !j.env.Tracker.IsCompleted(id) {
		return screen.Warn("Module not completed", err)
	}
	done := func() tea.Msg { return CompletedMsg{ModuleID: id} }
	switch {
	case err != nil:
		return tea.Batch(screen.Warn("Progress not saved", err), done)
	case saveErr != nil:
		return tea.Batch(screen.Warn("Module completed, journal not saved", saveErr), done)
	}
	return tea.Batch(screen.Status("Module completed! Next unlocked."), done)
}

func (j *JournalScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(components.Heading("Journal", j.sess.Module.Title))
	b.WriteString("\n\n")

	for i := range j.answers {
		b.WriteString(j.answers[i].View())
		b.WriteString("\n\n")
	}

	box := "[ ]"
	if j.challenge {
		box = "[x]"
	}
	challenge := box + " I completed this module's challenge"
	if j.focus == focusChallenge {
		b.WriteString(theme.Selected.Render("▸ " + challenge))
	} else {
		b.WriteString(theme.Unselected.Render("  " + challenge))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render("Challenge reflection"))
	b.WriteString("\n")
	b.WriteString(j.reflection.View())
	b.WriteString("\n\n")

	b.WriteString(j.scoreLine())
	b.WriteString("\n\n")
	b.WriteString(j.completeButton().View())

	if !j.completed() {
		if missing := gate.Evaluate(j.Record(), j.threshold()).Missing(); len(missing) > 0 {
			b.WriteString("\n")
			b.WriteString(theme.Hint.Render("To finish: " + strings.Join(missing, ", ")))
		}
	}

	return components.Page(components.Card(b.String(), cw), width, height)
}

func (j *JournalScreen) scoreLine() string {
	if j.score == nil {
		return theme.Hint.Render("Quiz: not taken yet")
	}
	line := fmt.Sprintf("Quiz: last result %d%% (pass mark %d%%)", *j.score, j.threshold())
	if quiz.Passed(*j.score, j.threshold()) {
		return theme.Correct.Render(line)
	}
	return theme.Incorrect.Render(line)
}

func (j *JournalScreen) completeButton() components.Button {
	if j.completed() {
		b := components.NewButton(progress.StatusCompleted.Icon()+" Module completed", true, nil)
		b.Focused = j.focus == focusComplete
		return b
	}
	label := "Complete module"
	active := gate.CanComplete(j.Record(), j.threshold())
	if !active {
		label = "Finish everything to complete"
	}
	b := components.NewButton(label, active, nil)
	b.Focused = j.focus == focusComplete
	return b
}

func (j *JournalScreen) Title() string {
	return "Journal"
}

func (j *JournalScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Ctrl+S", Description: "Save"},
		{Key: "Ctrl+X", Description: "Clear"},
		{Key: "Esc", Description: "Back"},
	}
}
