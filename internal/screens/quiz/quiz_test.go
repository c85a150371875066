package quiz

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hagios/internal/catalog"
	"github.com/abhisek/hagios/internal/journal"
	"github.com/abhisek/hagios/internal/screen"
	"github.com/abhisek/hagios/internal/screen/screentest"
)

var (
	enter = screentest.Press(tea.KeyEnter)
	down  = screentest.Press(tea.KeyDown)
)

func newQuiz(t *testing.T) (*QuizScreen, *screen.Env) {
	t.Helper()
	env, _ := screentest.Env(t)
	content, err := catalog.LoadContent(env.Ctx, env.Source, "1")
	if err != nil {
		t.Fatal(err)
	}
	return New(env, "1", content.AnswerKey()), env
}

func TestAllCorrect(t *testing.T) {
	q, env := newQuiz(t)

	q.Update(enter)
	if _, done := q.Result(); done {
		t.Fatal("graded after one of two questions")
	}
	q.Update(down)
	_, cmd := q.Update(enter)

	r, done := q.Result()
	if !done {
		t.Fatal("expected a result")
	}
	if r.Percent != 100 || !r.Passed || len(r.Missed) != 0 {
		t.Errorf("result = %+v", r)
	}

	rec := env.Journals.Load(env.Ctx, "1")
	if !rec.HasScore() || *rec.QuizScorePercent != 100 {
		t.Errorf("stored score = %v", rec.QuizScorePercent)
	}

	var graded bool
	for _, msg := range screentest.Run(cmd) {
		if g, ok := msg.(GradedMsg); ok && g.ModuleID == "1" {
			graded = true
		}
	}
	if !graded {
		t.Error("expected GradedMsg")
	}
}

func TestMissedQuestionsReviewed(t *testing.T) {
	q, _ := newQuiz(t)
	q.Update(enter)
	q.Update(enter)

	r, _ := q.Result()
	if r.Percent != 50 || r.Correct != 1 {
		t.Errorf("result = %+v", r)
	}
	if !r.Passed {
		t.Error("50% should meet a 50% pass mark")
	}
	if len(r.Missed) != 1 || r.Missed[0] != "2" {
		t.Errorf("Missed = %v, want [2]", r.Missed)
	}

	view := q.View(100, 40)
	if !strings.Contains(view, "Sixth day?") || !strings.Contains(view, "Man") {
		t.Error("review should show the missed question and its answer")
	}
}

func TestScoreKeepsJournalAnswers(t *testing.T) {
	q, env := newQuiz(t)
	old := journal.Record{Answers: [journal.QuestionCount]string{"first answer"}, ChallengeCompleted: true}
	if err := env.Journals.Save(env.Ctx, "1", old); err != nil {
		t.Fatal(err)
	}

	q.Update(enter)
	q.Update(enter)

	rec := env.Journals.Load(env.Ctx, "1")
	if rec.Answers[0] != "first answer" || !rec.ChallengeCompleted {
		t.Errorf("journal fields lost: %+v", rec)
	}
	if *rec.QuizScorePercent != 50 {
		t.Errorf("score = %d, want 50", *rec.QuizScorePercent)
	}
}

func TestRetry(t *testing.T) {
	q, _ := newQuiz(t)
	q.Update(enter)
	q.Update(enter)

	q.Update(screentest.Rune('r'))
	if _, done := q.Result(); done {
		t.Error("retry should clear the result")
	}
	if q.index != 0 || len(q.sub) != 0 {
		t.Errorf("index = %d, answers = %v", q.index, q.sub)
	}
}

func TestScoreNotSaved(t *testing.T) {
	q, env := newQuiz(t)
	mem := env.KV.(interface{ FailWrites(string) })
	mem.FailWrites(journal.Key("1"))

	q.Update(enter)
	_, cmd := q.Update(enter)

	if _, done := q.Result(); !done {
		t.Fatal("result should still be shown")
	}
	var warned bool
	for _, msg := range screentest.Run(cmd) {
		if s, ok := msg.(screen.StatusMsg); ok && s.Error {
			warned = true
		}
	}
	if !warned {
		t.Error("expected an error status")
	}
}

func TestEmptyQuiz(t *testing.T) {
	env, _ := screentest.Env(t)
	q := New(env, "2", catalog.Content{}.AnswerKey())

	q.Update(enter)
	if _, done := q.Result(); done {
		t.Error("an empty quiz should not grade")
	}
	if !strings.Contains(q.View(100, 40), "no quiz") {
		t.Error("view should say there is no quiz")
	}
}
