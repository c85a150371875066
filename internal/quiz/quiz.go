// Package quiz scores module quizzes against their answer keys.
package quiz

import "math"

// DefaultPassThreshold is the pass mark used when a quiz does not set one.
const DefaultPassThreshold = 70

// Option is one selectable answer to a question.
type Option struct {
	ID   string
	Text string
}

// Question is a single multiple-choice question.
type Question struct {
	ID              string
	Prompt          string
	Options         []Option
	CorrectOptionID string
}

// AnswerKey holds a module's questions and its pass threshold.
type AnswerKey struct {
	Title                string
	Questions            []Question
	PassThresholdPercent int // 0 means DefaultPassThreshold
}

// Threshold returns the effective pass threshold.
func (k AnswerKey) Threshold() int {
	if k.PassThresholdPercent <= 0 {
		return DefaultPassThreshold
	}
	return k.PassThresholdPercent
}

// Submission maps question ID to the selected option ID.
type Submission map[string]string

// Score returns the percentage of questions answered correctly, rounded
// half-up. Unanswered questions count as wrong. A key with no questions
// scores 0.
func Score(key AnswerKey, sub Submission) int {
	total := len(key.Questions)
	if total == 0 {
		return 0
	}
	return Percent(countCorrect(key, sub), total)
}

// Passed reports whether percent meets threshold.
func Passed(percent, threshold int) bool {
	return percent >= threshold
}

// Percent returns round(k/n*100) with halves rounded up, 0 when n is 0.
func Percent(k, n int) int {
	if n <= 0 {
		return 0
	}
	return int(math.Floor(float64(k)/float64(n)*100 + 0.5))
}

// Result is a graded submission.
type Result struct {
	Percent   int
	Correct   int
	Total     int
	Threshold int
	Passed    bool
	Missed    []string // question IDs answered wrong or left blank
}

// Grade scores sub and reports which questions were missed.
func Grade(key AnswerKey, sub Submission) Result {
	r := Result{
		Total:     len(key.Questions),
		Threshold: key.Threshold(),
	}
	for _, q := range key.Questions {
		if chosen, ok := sub[q.ID]; ok && chosen == q.CorrectOptionID {
			r.Correct++
			continue
		}
		r.Missed = append(r.Missed, q.ID)
	}
	r.Percent = Score(key, sub)
	r.Passed = Passed(r.Percent, r.Threshold)
	return r
}

func countCorrect(key AnswerKey, sub Submission) int {
	n := 0
	for _, q := range key.Questions {
		if chosen, ok := sub[q.ID]; ok && chosen == q.CorrectOptionID {
			n++
		}
	}
	return n
}
