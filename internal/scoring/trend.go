package scoring

import (
	"math"
	"time"
)

// MoodScores 心情标签到 0-100 健康分的固定映射
var MoodScores = map[string]int{
	"Great":    100,
	"Good":     75,
	"Okay":     50,
	"Not Good": 25,
	"Awful":    0,
}

// NeutralScore 序列首日无数据时的中性起点
const NeutralScore = 50

// MoodSignal 某天的一条心情信号（来自 journals 表）
type MoodSignal struct {
	At   time.Time
	Mood string
}

// ScoreSignal 某天的一条测评信号（来自 assessment_submissions 表）
type ScoreSignal struct {
	At       time.Time
	Score    int
	MaxScore int
}

// DailyWellness 一天的健康指数，0-100
type DailyWellness struct {
	Date  string `json:"date"`
	Score int    `json:"score"`
}

const dayKeyFormat = "2006-01-02"

// AggregateTrend 把滚动窗口内的异构日信号合成每日健康分序列。
// 同一天既有心情又有测评时取两者归一化均值；只有一种就直接用；
// 都没有则沿用前一天的值，首日缺数据默认 50。
// 输出恰好 windowDays 个点，最旧的在前，可直接用于图表。
// 纯函数：相同输入必然产生相同输出。
func AggregateTrend(moods []MoodSignal, scores []ScoreSignal, end time.Time, windowDays int) []DailyWellness {
	if windowDays <= 0 {
		return nil
	}

	moodsByDay := make(map[string][]int)
	for _, m := range moods {
		day := m.At.Format(dayKeyFormat)
		v, ok := MoodScores[m.Mood]
		if !ok {
			v = NeutralScore
		}
		moodsByDay[day] = append(moodsByDay[day], v)
	}

	scoresByDay := make(map[string][]float64)
	for _, s := range scores {
		if s.MaxScore <= 0 {
			continue
		}
		day := s.At.Format(dayKeyFormat)
		// 原始分越高风险越大，健康分反转
		wellness := 100 - (float64(s.Score)/float64(s.MaxScore))*100
		scoresByDay[day] = append(scoresByDay[day], wellness)
	}

	out := make([]DailyWellness, 0, windowDays)
	last := float64(NeutralScore)
	for i := windowDays - 1; i >= 0; i-- {
		day := end.AddDate(0, 0, -i).Format(dayKeyFormat)

		var parts []float64
		if vs := moodsByDay[day]; len(vs) > 0 {
			sum := 0
			for _, v := range vs {
				sum += v
			}
			parts = append(parts, float64(sum)/float64(len(vs)))
		}
		if vs := scoresByDay[day]; len(vs) > 0 {
			sum := 0.0
			for _, v := range vs {
				sum += v
			}
			parts = append(parts, sum/float64(len(vs)))
		}

		switch len(parts) {
		case 2:
			last = (parts[0] + parts[1]) / 2
		case 1:
			last = parts[0]
		}
		// 无信号时沿用 last（前一天的值或首日默认值）

		out = append(out, DailyWellness{Date: day, Score: int(math.Round(last))})
	}
	return out
}
