package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	phq9Thresholds = []Threshold{
		{Band: "Low", Min: 0, Max: 9},
		{Band: "Moderate", Min: 10, Max: 14},
		{Band: "High", Min: 15, Max: 27},
	}
	gad7Thresholds = []Threshold{
		{Band: "Minimal", Min: 0, Max: 4},
		{Band: "Mild", Min: 5, Max: 9},
		{Band: "Moderate", Min: 10, Max: 14},
		{Band: "Severe", Min: 15, Max: 21},
	}
	stressThresholds = []Threshold{
		{Band: "Low", Min: 0, Max: 5},
		{Band: "Moderate", Min: 6, Max: 10},
		{Band: "High", Min: 11, Max: 30},
	}
)

func TestClassifyPHQ9(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{0, "Low"},
		{5, "Low"},
		{9, "Low"}, // 边界分值属于更低档位
		{10, "Moderate"},
		{12, "Moderate"},
		{14, "Moderate"},
		{15, "High"},
		{27, "High"},
	}
	for _, c := range cases {
		got, err := Classify(c.score, 27, phq9Thresholds)
		require.NoError(t, err, "score %d", c.score)
		assert.Equal(t, c.want, got, "score %d", c.score)
	}
}

func TestClassifyGAD7(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{0, "Minimal"},
		{4, "Minimal"},
		{5, "Mild"},
		{9, "Mild"},
		{10, "Moderate"},
		{14, "Moderate"},
		{15, "Severe"},
		{21, "Severe"},
	}
	for _, c := range cases {
		got, err := Classify(c.score, 21, gad7Thresholds)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "score %d", c.score)
	}
}

func TestClassifyStressInventory(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{5, "Low"},
		{6, "Moderate"},
		{10, "Moderate"},
		{11, "High"},
	}
	for _, c := range cases {
		got, err := Classify(c.score, 30, stressThresholds)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "score %d", c.score)
	}
}

// 阈值表必须无缝隙无重叠地划分 [0, maxScore]：区间内每个整数分值恰好命中一档
func TestClassifyPartitionsFullRange(t *testing.T) {
	for score := 0; score <= 27; score++ {
		matches := 0
		for _, th := range phq9Thresholds {
			if score >= th.Min && score <= th.Max {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "score %d", score)

		_, err := Classify(score, 27, phq9Thresholds)
		assert.NoError(t, err, "score %d", score)
	}
}

// 末档上限开放到满分：模板加题后旧阈值表的末档仍覆盖到新满分
func TestClassifyLastBandOpenEnded(t *testing.T) {
	short := []Threshold{
		{Band: "Low", Min: 0, Max: 5},
		{Band: "High", Min: 6, Max: 30},
	}
	got, err := Classify(25, 30, short)
	require.NoError(t, err)
	assert.Equal(t, "High", got)
}

func TestClassifyOutOfRange(t *testing.T) {
	_, err := Classify(-1, 27, phq9Thresholds)
	assert.ErrorIs(t, err, ErrIntegrity)

	_, err = Classify(28, 27, phq9Thresholds)
	assert.ErrorIs(t, err, ErrIntegrity)
}

func TestValidateThresholds(t *testing.T) {
	cases := []struct {
		name       string
		thresholds []Threshold
		max        int
		ok         bool
	}{
		{"phq9", phq9Thresholds, 27, true},
		{"gad7", gad7Thresholds, 21, true},
		{"empty", nil, 27, false},
		{"not starting at zero", []Threshold{{Band: "Low", Min: 1, Max: 27}}, 27, false},
		{"gap", []Threshold{
			{Band: "Low", Min: 0, Max: 9},
			{Band: "High", Min: 11, Max: 27},
		}, 27, false},
		{"overlap", []Threshold{
			{Band: "Low", Min: 0, Max: 10},
			{Band: "High", Min: 10, Max: 27},
		}, 27, false},
		{"inverted band", []Threshold{{Band: "Low", Min: 0, Max: -1}}, 27, false},
		{"short coverage", []Threshold{{Band: "Low", Min: 0, Max: 20}}, 27, false},
		{"unnamed band", []Threshold{{Band: "", Min: 0, Max: 27}}, 27, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := ValidateThresholds(c.thresholds, c.max)
			if c.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrConfiguration)
			}
		})
	}
}
