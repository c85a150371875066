// Package gate decides whether a module may be marked complete.
package gate

import (
	"unicode/utf8"

	"github.com/abhisek/hagios/internal/journal"
)

// MinAnswerLength is the number of characters an answer must exceed.
const MinAnswerLength = 5

// Requirements reports each completion clause separately.
type Requirements struct {
	ScoreRecorded   bool
	QuizPassed      bool
	ChallengeDone   bool
	AnswersComplete bool
	// ShortAnswers lists the zero-based indexes of answers that are too short.
	ShortAnswers []int
}

// Met reports whether every clause holds.
func (r Requirements) Met() bool {
	return r.ScoreRecorded && r.QuizPassed && r.ChallengeDone && r.AnswersComplete
}

// Missing returns human-readable descriptions of the unmet clauses.
func (r Requirements) Missing() []string {
	var out []string
	switch {
	case !r.ScoreRecorded:
		out = append(out, "take the quiz")
	case !r.QuizPassed:
		out = append(out, "pass the quiz")
	}
	if !r.ChallengeDone {
		out = append(out, "complete the challenge")
	}
	if !r.AnswersComplete {
		out = append(out, "answer every journal question")
	}
	return out
}

// Evaluate checks rec against threshold without side effects.
func Evaluate(rec journal.Record, threshold int) Requirements {
	r := Requirements{
		ScoreRecorded: rec.QuizScorePercent != nil,
		ChallengeDone: rec.ChallengeCompleted,
	}
	r.QuizPassed = r.ScoreRecorded && *rec.QuizScorePercent >= threshold

	for i, a := range rec.Answers {
		if !AnswerLongEnough(a) {
			r.ShortAnswers = append(r.ShortAnswers, i)
		}
	}
	r.AnswersComplete = len(r.ShortAnswers) == 0
	return r
}

// CanComplete reports whether rec satisfies every completion clause.
func CanComplete(rec journal.Record, threshold int) bool {
	return Evaluate(rec, threshold).Met()
}

// AnswerLongEnough reports whether a journal answer exceeds MinAnswerLength
// characters.
func AnswerLongEnough(a string) bool {
	return utf8.RuneCountInString(a) > MinAnswerLength
}
