package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var phq9Options = []Option{
	{Label: "Not at all", Value: 0},
	{Label: "Several days", Value: 1},
	{Label: "More than half the days", Value: 2},
	{Label: "Nearly every day", Value: 3},
}

func phq9Template() Template {
	qs := make([]Question, 9)
	for i := range qs {
		qs[i] = Question{ID: uint(i + 1), Content: "q", Required: true, Options: phq9Options}
	}
	return Template{
		InstrumentCode: "PHQ-9",
		Questions:      qs,
		Thresholds: []Threshold{
			{Band: "Low", Min: 0, Max: 9},
			{Band: "Moderate", Min: 10, Max: 14},
			{Band: "High", Min: 15, Max: 27},
		},
	}
}

func TestScoreAnswer(t *testing.T) {
	q := Question{ID: 1, Options: phq9Options}

	for _, c := range []struct {
		label string
		want  int
	}{
		{"Not at all", 0},
		{"Several days", 1},
		{"More than half the days", 2},
		{"Nearly every day", 3},
	} {
		got, err := ScoreAnswer(q, c.label)
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}
}

func TestScoreAnswerUnknownLabel(t *testing.T) {
	q := Question{ID: 7, Options: phq9Options}

	_, err := ScoreAnswer(q, "Sometimes")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestTemplateMaxScore(t *testing.T) {
	assert.Equal(t, 27, phq9Template().MaxScore())
}

func TestAggregate(t *testing.T) {
	tpl := phq9Template()
	answers := make([]Answer, 9)
	for i := range answers {
		answers[i] = Answer{QuestionID: uint(i + 1), Label: "Several days", Value: 1}
	}

	total, max, err := Aggregate(tpl, answers)
	require.NoError(t, err)
	assert.Equal(t, 9, total)
	assert.Equal(t, 27, max)
	assert.LessOrEqual(t, total, max)
}

func TestAggregateRejectsIncomplete(t *testing.T) {
	tpl := phq9Template()
	answers := []Answer{{QuestionID: 1, Label: "Not at all", Value: 0}}

	_, _, err := Aggregate(tpl, answers)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncompleteSubmission)
}

func TestAggregateOptionalQuestionMaySkip(t *testing.T) {
	tpl := phq9Template()
	tpl.Questions[8].Required = false

	answers := make([]Answer, 8)
	for i := range answers {
		answers[i] = Answer{QuestionID: uint(i + 1), Label: "Nearly every day", Value: 3}
	}

	total, max, err := Aggregate(tpl, answers)
	require.NoError(t, err)
	assert.Equal(t, 24, total)
	// 满分始终按模板全部题目计算，与是否作答无关
	assert.Equal(t, 27, max)
}

func TestAggregateRejectsDuplicateAnswer(t *testing.T) {
	tpl := phq9Template()
	answers := make([]Answer, 0, 10)
	for i := 0; i < 9; i++ {
		answers = append(answers, Answer{QuestionID: uint(i + 1), Label: "Not at all", Value: 0})
	}
	answers = append(answers, Answer{QuestionID: 1, Label: "Several days", Value: 1})

	_, _, err := Aggregate(tpl, answers)
	assert.ErrorIs(t, err, ErrIntegrity)
}

func TestAggregateRejectsUnknownQuestion(t *testing.T) {
	tpl := phq9Template()
	answers := []Answer{{QuestionID: 99, Label: "Not at all", Value: 0}}

	_, _, err := Aggregate(tpl, answers)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestAggregateRejectsScoreAboveMax(t *testing.T) {
	tpl := phq9Template()
	answers := make([]Answer, 9)
	for i := range answers {
		// 伪造超出选项上限的分值，模拟计分器 bug
		answers[i] = Answer{QuestionID: uint(i + 1), Label: "Nearly every day", Value: 10}
	}

	_, _, err := Aggregate(tpl, answers)
	assert.ErrorIs(t, err, ErrIntegrity)
}

func TestScoreSubmissionEndToEnd(t *testing.T) {
	tpl := phq9Template()

	// 6 题 1 分 + 3 题 2 分 = 12 分（maxScore 27），应落在 Moderate
	picks := map[uint]string{}
	for i := 1; i <= 6; i++ {
		picks[uint(i)] = "Several days"
	}
	for i := 7; i <= 9; i++ {
		picks[uint(i)] = "More than half the days"
	}

	res, err := ScoreSubmission(tpl, picks)
	require.NoError(t, err)
	assert.Equal(t, 12, res.TotalScore)
	assert.Equal(t, 27, res.MaxScore)
	assert.Equal(t, "Moderate", res.RiskBand)
	assert.Len(t, res.Answers, 9)
}

func TestScoreSubmissionUnknownPick(t *testing.T) {
	tpl := phq9Template()
	picks := map[uint]string{}
	for i := 1; i <= 9; i++ {
		picks[uint(i)] = "Not at all"
	}
	picks[42] = "Not at all"

	_, err := ScoreSubmission(tpl, picks)
	assert.ErrorIs(t, err, ErrConfiguration)
}
