package scoring

import "math"

// Trajectory 对同一量表历史得分的走势分析
type Trajectory struct {
	Direction   string  `json:"direction"` // improving, worsening, stable
	Slope       float64 `json:"slope"`
	Significant bool    `json:"significant"`
	FirstScore  int     `json:"firstScore"`
	LatestScore int     `json:"latestScore"`
	Change      int     `json:"change"`
	ChangePct   float64 `json:"changePercentage"`
}

// ComputeTrajectory 用最小二乘回归判断得分是在改善还是恶化。
// scores 按提交时间升序。斜率 < -0.5 视为改善（分数下降 = 症状减轻），
// > 0.5 视为恶化，其余为平稳。少于两个点无法分析，返回 nil。
func ComputeTrajectory(scores []int) *Trajectory {
	n := len(scores)
	if n < 2 {
		return nil
	}

	var sumX, sumY, sumXY, sumXX, sumYY float64
	for i, s := range scores {
		x, y := float64(i), float64(s)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
		sumYY += y * y
	}
	fn := float64(n)
	slope := (fn*sumXY - sumX*sumY) / (fn*sumXX - sumX*sumX)

	direction := "stable"
	if slope < -0.5 {
		direction = "improving"
	} else if slope > 0.5 {
		direction = "worsening"
	}

	// 相关系数衡量线性程度，|r| >= 0.6 且至少三个点才认为趋势可信
	significant := false
	denom := math.Sqrt(fn*sumXX-sumX*sumX) * math.Sqrt(fn*sumYY-sumY*sumY)
	if denom > 0 && n >= 3 {
		r := (fn*sumXY - sumX*sumY) / denom
		significant = math.Abs(r) >= 0.6
	}

	first, latest := scores[0], scores[n-1]
	changePct := 0.0
	if first != 0 {
		changePct = math.Round(float64(latest-first)/float64(first)*1000) / 10
	}

	return &Trajectory{
		Direction:   direction,
		Slope:       math.Round(slope*1000) / 1000,
		Significant: significant,
		FirstScore:  first,
		LatestScore: latest,
		Change:      latest - first,
		ChangePct:   changePct,
	}
}
