package util

import (
	"testing"

	"campus_wellness_backend/internal/scoring"

	"github.com/stretchr/testify/assert"
)

// 三张表必须围绕同一套心情标签：打卡界面(MoodLabels)、风险映射
// (MoodRiskLevels)、趋势打分(scoring.MoodScores)任何一处漏标签都会
// 在打卡或趋势计算时静默出错。
func TestMoodTablesConsistent(t *testing.T) {
	assert.Len(t, MoodRiskLevels, len(MoodLabels))
	assert.Len(t, scoring.MoodScores, len(MoodLabels))

	for _, label := range MoodLabels {
		risk, ok := MoodRiskLevels[label]
		assert.True(t, ok, "mood %q missing from MoodRiskLevels", label)
		assert.Contains(t, []string{"Low", "Medium", "High"}, risk)

		_, ok = scoring.MoodScores[label]
		assert.True(t, ok, "mood %q missing from scoring.MoodScores", label)
	}
}

func TestMoodRiskOrdering(t *testing.T) {
	assert.Equal(t, "High", MoodRiskLevels["Awful"])
	assert.Equal(t, "Low", MoodRiskLevels["Great"])
}
