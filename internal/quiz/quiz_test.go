package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func threeQuestionKey() AnswerKey {
	return AnswerKey{
		Title: "Quiz",
		Questions: []Question{
			{ID: "q1", CorrectOptionID: "a"},
			{ID: "q2", CorrectOptionID: "b"},
			{ID: "q3", CorrectOptionID: "c"},
		},
	}
}

func TestScore_NoQuestions(t *testing.T) {
	assert.Equal(t, 0, Score(AnswerKey{}, Submission{}))
	assert.Equal(t, 0, Score(AnswerKey{}, nil))
}

func TestScore_AllCorrect(t *testing.T) {
	sub := Submission{"q1": "a", "q2": "b", "q3": "c"}
	assert.Equal(t, 100, Score(threeQuestionKey(), sub))
}

func TestScore_NoneCorrect(t *testing.T) {
	sub := Submission{"q1": "b", "q2": "c", "q3": "a"}
	assert.Equal(t, 0, Score(threeQuestionKey(), sub))
}

func TestScore_OneOfThree(t *testing.T) {
	sub := Submission{"q1": "a"}
	assert.Equal(t, 33, Score(threeQuestionKey(), sub))
}

func TestScore_UnansweredCountsAsWrong(t *testing.T) {
	assert.Equal(t, 0, Score(threeQuestionKey(), Submission{}))
	assert.Equal(t, 67, Score(threeQuestionKey(), Submission{"q1": "a", "q3": "c"}))
}

func TestScore_IgnoresUnknownQuestions(t *testing.T) {
	sub := Submission{"q1": "a", "q2": "b", "q3": "c", "q99": "z"}
	assert.Equal(t, 100, Score(threeQuestionKey(), sub))
}

func TestPercent_RoundsHalfUp(t *testing.T) {
	tests := []struct {
		k, n, want int
	}{
		{1, 8, 13}, // 12.5
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{7, 10, 70},
		{0, 0, 0},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, Percent(tt.k, tt.n), "Percent(%d, %d)", tt.k, tt.n)
	}
}

func TestPassed(t *testing.T) {
	assert.True(t, Passed(70, 70))
	assert.True(t, Passed(100, 70))
	assert.False(t, Passed(69, 70))
	assert.True(t, Passed(0, 0))
}

func TestThresholdDefault(t *testing.T) {
	assert.Equal(t, DefaultPassThreshold, AnswerKey{}.Threshold())
	assert.Equal(t, 80, AnswerKey{PassThresholdPercent: 80}.Threshold())
}

func TestGrade(t *testing.T) {
	r := Grade(threeQuestionKey(), Submission{"q1": "a", "q2": "x"})

	assert.Equal(t, 33, r.Percent)
	assert.Equal(t, 1, r.Correct)
	assert.Equal(t, 3, r.Total)
	assert.Equal(t, 70, r.Threshold)
	assert.False(t, r.Passed)
	assert.Equal(t, []string{"q2", "q3"}, r.Missed)
}

func TestGrade_Pass(t *testing.T) {
	key := threeQuestionKey()
	key.PassThresholdPercent = 60

	r := Grade(key, Submission{"q1": "a", "q2": "b"})
	assert.Equal(t, 67, r.Percent)
	assert.True(t, r.Passed)
	assert.Equal(t, []string{"q3"}, r.Missed)
}
