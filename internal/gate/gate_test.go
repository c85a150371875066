package gate

import (
	"testing"

	"github.com/abhisek/hagios/internal/journal"
)

func passingRecord() journal.Record {
	return journal.Record{
		Answers: [journal.QuestionCount]string{
			"primeira resposta",
			"segunda resposta",
			"terceira resposta",
			"quarta resposta",
		},
		QuizScorePercent:   journal.Score(80),
		ChallengeCompleted: true,
	}
}

func TestCanComplete_AllClausesHold(t *testing.T) {
	if !CanComplete(passingRecord(), 70) {
		t.Fatal("expected gate to pass")
	}
}

func TestCanComplete_NoScore(t *testing.T) {
	rec := passingRecord()
	rec.QuizScorePercent = nil

	if CanComplete(rec, 70) {
		t.Error("expected gate to fail without a quiz score")
	}
	req := Evaluate(rec, 70)
	if req.ScoreRecorded || req.QuizPassed {
		t.Errorf("requirements = %+v, want score clauses false", req)
	}
}

func TestCanComplete_ScoreBelowThreshold(t *testing.T) {
	rec := passingRecord()
	rec.QuizScorePercent = journal.Score(69)

	if CanComplete(rec, 70) {
		t.Error("expected gate to fail below threshold")
	}
	req := Evaluate(rec, 70)
	if !req.ScoreRecorded {
		t.Error("ScoreRecorded should be true")
	}
	if req.QuizPassed {
		t.Error("QuizPassed should be false")
	}
}

func TestCanComplete_ScoreAtThreshold(t *testing.T) {
	rec := passingRecord()
	rec.QuizScorePercent = journal.Score(70)

	if !CanComplete(rec, 70) {
		t.Error("score equal to threshold should pass")
	}
}

func TestCanComplete_ChallengeNotDone(t *testing.T) {
	rec := passingRecord()
	rec.ChallengeCompleted = false

	if CanComplete(rec, 70) {
		t.Error("expected gate to fail with challenge incomplete")
	}
	if Evaluate(rec, 70).ChallengeDone {
		t.Error("ChallengeDone should be false")
	}
}

func TestCanComplete_ShortAnswer(t *testing.T) {
	for i := 0; i < journal.QuestionCount; i++ {
		rec := passingRecord()
		rec.Answers[i] = "curta" // exactly 5 characters

		if CanComplete(rec, 70) {
			t.Errorf("answer %d: expected gate to fail with a 5-character answer", i)
		}
		req := Evaluate(rec, 70)
		if req.AnswersComplete {
			t.Errorf("answer %d: AnswersComplete should be false", i)
		}
		if len(req.ShortAnswers) != 1 || req.ShortAnswers[0] != i {
			t.Errorf("answer %d: ShortAnswers = %v", i, req.ShortAnswers)
		}
	}
}

func TestAnswerLongEnough_CountsCharactersNotBytes(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"abcde", false},
		{"abcdef", true},
		{"ação!", false}, // 5 runes, 7 bytes
		{"oração", true}, // 6 runes
		{"çççççç", true},
	}
	for _, tt := range tests {
		if got := AnswerLongEnough(tt.in); got != tt.want {
			t.Errorf("AnswerLongEnough(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMissing(t *testing.T) {
	rec := journal.Record{}
	got := Evaluate(rec, 70).Missing()
	want := []string{"take the quiz", "complete the challenge", "answer every journal question"}
	if len(got) != len(want) {
		t.Fatalf("Missing() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Missing()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if m := Evaluate(passingRecord(), 70).Missing(); len(m) != 0 {
		t.Errorf("Missing() for passing record = %v", m)
	}
}
