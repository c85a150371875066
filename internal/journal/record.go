package journal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// QuestionCount is the number of reflection questions per module.
const QuestionCount = 4

// Prompts are the reflection questions shown for every module.
var Prompts = [QuestionCount]string{
	"What did this module teach you about God?",
	"What did it teach you about yourself?",
	"Which verse or idea stood out, and why?",
	"What will you put into practice this week?",
}

// Record is a learner's journal for one module.
type Record struct {
	Answers             [QuestionCount]string
	QuizScorePercent    *int // nil until the quiz has been scored
	ChallengeCompleted  bool
	ChallengeReflection string
}

// Score returns a pointer suitable for Record.QuizScorePercent.
func Score(percent int) *int {
	return &percent
}

// HasScore reports whether a quiz score has been recorded.
func (r Record) HasScore() bool {
	return r.QuizScorePercent != nil
}

// IsZero reports whether r carries no learner input at all.
func (r Record) IsZero() bool {
	for _, a := range r.Answers {
		if a != "" {
			return false
		}
	}
	return r.QuizScorePercent == nil && !r.ChallengeCompleted && r.ChallengeReflection == ""
}

// Equal reports whether two records hold the same values.
func (r Record) Equal(o Record) bool {
	if r.Answers != o.Answers ||
		r.ChallengeCompleted != o.ChallengeCompleted ||
		r.ChallengeReflection != o.ChallengeReflection {
		return false
	}
	switch {
	case r.QuizScorePercent == nil && o.QuizScorePercent == nil:
		return true
	case r.QuizScorePercent == nil || o.QuizScorePercent == nil:
		return false
	}
	return *r.QuizScorePercent == *o.QuizScorePercent
}

// wireRecord is the persisted layout, shared with the web client.
type wireRecord struct {
	P1                string          `json:"p1"`
	P2                string          `json:"p2"`
	P3                string          `json:"p3"`
	P4                string          `json:"p4"`
	QuizPorcentagem   json.RawMessage `json:"quizPorcentagem,omitempty"`
	DesafioCompletado bool            `json:"desafioCompletado"`
	ReflexaoDesafio   string          `json:"reflexaoDesafio"`
}

// MarshalJSON writes the record with the web client's keys.
func (r Record) MarshalJSON() ([]byte, error) {
	w := wireRecord{
		P1:                r.Answers[0],
		P2:                r.Answers[1],
		P3:                r.Answers[2],
		P4:                r.Answers[3],
		DesafioCompletado: r.ChallengeCompleted,
		ReflexaoDesafio:   r.ChallengeReflection,
	}
	if r.QuizScorePercent != nil {
		w.QuizPorcentagem = json.RawMessage(strconv.Itoa(*r.QuizScorePercent))
	}
	return json.Marshal(w)
}

// UnmarshalJSON accepts the score as a number or a numeric string, since
// older clients stored it as text.
func (r *Record) UnmarshalJSON(data []byte) error {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	score, err := parseScore(w.QuizPorcentagem)
	if err != nil {
		return err
	}
	*r = Record{
		Answers:             [QuestionCount]string{w.P1, w.P2, w.P3, w.P4},
		QuizScorePercent:    score,
		ChallengeCompleted:  w.DesafioCompletado,
		ChallengeReflection: w.ReflexaoDesafio,
	}
	return nil
}

func parseScore(raw json.RawMessage) (*int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var text string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil, fmt.Errorf("quizPorcentagem: %w", err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, nil
		}
	} else {
		text = string(raw)
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, fmt.Errorf("quizPorcentagem %q: %w", text, err)
	}
	n := int(f)
	return &n, nil
}
