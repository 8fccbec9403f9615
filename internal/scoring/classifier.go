package scoring

// Threshold 风险分级阈值：闭区间 [Min, Max]，末档上限开放到满分。
// 边界值归属下标更靠前的档位，阈值表的归属关系必须显式且被测试覆盖，
// 这里差一分就会改变临床解读。
type Threshold struct {
	Band string `json:"band"`
	Min  int    `json:"min"`
	Max  int    `json:"max"`
}

// ValidateThresholds 校验阈值表：升序、连续、不重叠、完整覆盖 [0, maxScore]。
// 不满足即为模板配置错误。
func ValidateThresholds(thresholds []Threshold, maxScore int) error {
	if len(thresholds) == 0 {
		return configErrorf("threshold table is empty")
	}
	if thresholds[0].Min != 0 {
		return configErrorf("threshold table starts at %d, want 0", thresholds[0].Min)
	}
	for i, th := range thresholds {
		if th.Band == "" {
			return configErrorf("threshold %d has empty band label", i)
		}
		if th.Max < th.Min {
			return configErrorf("band %q has max %d below min %d", th.Band, th.Max, th.Min)
		}
		if i > 0 && th.Min != thresholds[i-1].Max+1 {
			return configErrorf("band %q starts at %d, want %d (contiguous with %q)",
				th.Band, th.Min, thresholds[i-1].Max+1, thresholds[i-1].Band)
		}
	}
	if last := thresholds[len(thresholds)-1]; last.Max < maxScore {
		return configErrorf("threshold table covers up to %d, instrument max is %d", last.Max, maxScore)
	}
	return nil
}

// Classify 按序线性扫描阈值表，返回第一个覆盖 totalScore 的档位。
// totalScore 超出 [0, maxScore] 是非法参数，报错而不是强行收敛。
func Classify(totalScore, maxScore int, thresholds []Threshold) (string, error) {
	if totalScore < 0 || totalScore > maxScore {
		return "", integrityErrorf("score %d outside valid range [0, %d]", totalScore, maxScore)
	}
	if err := ValidateThresholds(thresholds, maxScore); err != nil {
		return "", err
	}
	for i, th := range thresholds {
		// 末档上限开放到满分
		if i == len(thresholds)-1 {
			return th.Band, nil
		}
		if totalScore >= th.Min && totalScore <= th.Max {
			return th.Band, nil
		}
	}
	return "", integrityErrorf("no band matched score %d", totalScore)
}
