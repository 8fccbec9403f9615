package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var trendEnd = time.Date(2025, 3, 9, 18, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return trendEnd.AddDate(0, 0, offset)
}

func TestAggregateTrendEmptyHistory(t *testing.T) {
	// 整周无信号 → 7 个 50 分（首日中性默认值一路沿用）
	out := AggregateTrend(nil, nil, trendEnd, 7)
	require.Len(t, out, 7)
	for _, d := range out {
		assert.Equal(t, 50, d.Score)
	}
}

func TestAggregateTrendMoodOnly(t *testing.T) {
	moods := []MoodSignal{{At: trendEnd, Mood: "Great"}}

	out := AggregateTrend(moods, nil, trendEnd, 7)
	require.Len(t, out, 7)
	assert.Equal(t, 100, out[6].Score)
	assert.Equal(t, 50, out[5].Score)
}

func TestAggregateTrendAssessmentOnly(t *testing.T) {
	scores := []ScoreSignal{{At: trendEnd, Score: 6, MaxScore: 24}}

	out := AggregateTrend(nil, scores, trendEnd, 7)
	// 100 - 6/24×100 = 75
	assert.Equal(t, 75, out[6].Score)
}

func TestAggregateTrendBlendsBothSignals(t *testing.T) {
	// Awful(0) 与 20/24 的测评（归一化 16.7）同日 → (0+16.7)/2 ≈ 8
	moods := []MoodSignal{{At: trendEnd, Mood: "Awful"}}
	scores := []ScoreSignal{{At: trendEnd, Score: 20, MaxScore: 24}}

	out := AggregateTrend(moods, scores, trendEnd, 7)
	assert.Equal(t, 8, out[6].Score)
}

func TestAggregateTrendCarryForward(t *testing.T) {
	// 第 3 天 Good(75)，之后无信号的日子逐日沿用 75
	moods := []MoodSignal{{At: day(-4), Mood: "Good"}}

	out := AggregateTrend(moods, nil, trendEnd, 7)
	assert.Equal(t, 50, out[0].Score)
	assert.Equal(t, 50, out[1].Score)
	assert.Equal(t, 75, out[2].Score)
	for i := 3; i < 7; i++ {
		assert.Equal(t, out[2].Score, out[i].Score, "day %d", i)
	}
}

func TestAggregateTrendAveragesSameDayMoods(t *testing.T) {
	moods := []MoodSignal{
		{At: day(0), Mood: "Great"},
		{At: day(0).Add(-2 * time.Hour), Mood: "Okay"},
	}

	out := AggregateTrend(moods, nil, trendEnd, 7)
	assert.Equal(t, 75, out[6].Score)
}

func TestAggregateTrendUnknownMoodIsNeutral(t *testing.T) {
	moods := []MoodSignal{{At: trendEnd, Mood: "Meh"}}

	out := AggregateTrend(moods, nil, trendEnd, 7)
	assert.Equal(t, 50, out[6].Score)
}

func TestAggregateTrendIgnoresZeroMaxScore(t *testing.T) {
	scores := []ScoreSignal{{At: trendEnd, Score: 5, MaxScore: 0}}

	out := AggregateTrend(nil, scores, trendEnd, 7)
	assert.Equal(t, 50, out[6].Score)
}

func TestAggregateTrendOrderedOldestFirst(t *testing.T) {
	out := AggregateTrend(nil, nil, trendEnd, 7)
	require.Len(t, out, 7)
	for i := 1; i < len(out); i++ {
		assert.Less(t, out[i-1].Date, out[i].Date)
	}
	assert.Equal(t, trendEnd.Format("2006-01-02"), out[6].Date)
}

func TestAggregateTrendIdempotent(t *testing.T) {
	moods := []MoodSignal{
		{At: day(-6), Mood: "Okay"},
		{At: day(-3), Mood: "Awful"},
		{At: day(0), Mood: "Great"},
	}
	scores := []ScoreSignal{
		{At: day(-5), Score: 12, MaxScore: 27},
		{At: day(0), Score: 3, MaxScore: 21},
	}

	first := AggregateTrend(moods, scores, trendEnd, 7)
	second := AggregateTrend(moods, scores, trendEnd, 7)
	assert.Equal(t, first, second)
}

func TestAggregateTrendWindowSizes(t *testing.T) {
	assert.Nil(t, AggregateTrend(nil, nil, trendEnd, 0))
	assert.Len(t, AggregateTrend(nil, nil, trendEnd, 30), 30)
}
