package scoring

// Option 量表题目的一个选项，分值在模板中固定
type Option struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Question 量表题目定义，由管理员在模板中维护，对学生只读
type Question struct {
	ID       uint     `json:"id"`
	Content  string   `json:"content"`
	Required bool     `json:"required"`
	Options  []Option `json:"options"`
}

// Template 完整的量表定义：题目 + 风险分级阈值表
type Template struct {
	InstrumentCode string
	Questions      []Question
	Thresholds     []Threshold
}

// Answer 单题作答记录，提交后不可变
type Answer struct {
	QuestionID uint   `json:"questionId"`
	Label      string `json:"label"`
	Value      int    `json:"value"`
}

// ScoreAnswer 按选项标签查找固定分值。
// 标签不在选项表中属于模板配置/数据完整性问题，必须报错拒绝提交，
// 静默按 0 分处理会污染下游的风险分级。
func ScoreAnswer(q Question, label string) (int, error) {
	for _, opt := range q.Options {
		if opt.Label == label {
			return opt.Value, nil
		}
	}
	return 0, configErrorf("question %d has no option labeled %q", q.ID, label)
}

// MaxScore 模板满分：每题最高选项分值之和。
// 与实际作答无关，只由模板决定，部分提交也能算出有意义的百分比。
func (t Template) MaxScore() int {
	max := 0
	for _, q := range t.Questions {
		best := 0
		for _, opt := range q.Options {
			if opt.Value > best {
				best = opt.Value
			}
		}
		max += best
	}
	return max
}

// Aggregate 汇总全部作答得出总分和满分。
// 聚合之前先做完整性检查：必答题缺答直接拒绝，不进入计分。
// totalScore > maxScore 说明计分器有 bug，报完整性错误而不是悄悄截断。
func Aggregate(t Template, answers []Answer) (totalScore, maxScore int, err error) {
	answered := make(map[uint]bool, len(answers))
	byID := make(map[uint]Question, len(t.Questions))
	for _, q := range t.Questions {
		byID[q.ID] = q
	}

	for _, a := range answers {
		if _, ok := byID[a.QuestionID]; !ok {
			return 0, 0, configErrorf("answer references unknown question %d", a.QuestionID)
		}
		if answered[a.QuestionID] {
			return 0, 0, integrityErrorf("duplicate answer for question %d", a.QuestionID)
		}
		answered[a.QuestionID] = true
		totalScore += a.Value
	}

	for _, q := range t.Questions {
		if q.Required && !answered[q.ID] {
			return 0, 0, incompleteErrorf("question %d is unanswered", q.ID)
		}
	}

	maxScore = t.MaxScore()
	if totalScore > maxScore {
		return 0, 0, integrityErrorf("total score %d exceeds max %d", totalScore, maxScore)
	}
	if totalScore < 0 {
		return 0, 0, integrityErrorf("total score %d is negative", totalScore)
	}
	return totalScore, maxScore, nil
}

// Result 一次完整的计分结果，由调用方持久化
type Result struct {
	Answers    []Answer
	TotalScore int
	MaxScore   int
	RiskBand   string
}

// ScoreSubmission 题目答案流的完整管线：逐题计分 → 聚合 → 风险分级。
// picks 为 questionID → 所选选项标签。
func ScoreSubmission(t Template, picks map[uint]string) (*Result, error) {
	answers := make([]Answer, 0, len(picks))
	for _, q := range t.Questions {
		label, ok := picks[q.ID]
		if !ok {
			continue
		}
		value, err := ScoreAnswer(q, label)
		if err != nil {
			return nil, err
		}
		answers = append(answers, Answer{QuestionID: q.ID, Label: label, Value: value})
	}
	// picks 中出现模板之外的题目同样是配置错误
	if len(answers) != len(picks) {
		for id := range picks {
			if _, err := questionByID(t, id); err != nil {
				return nil, err
			}
		}
	}

	total, max, err := Aggregate(t, answers)
	if err != nil {
		return nil, err
	}

	band, err := Classify(total, max, t.Thresholds)
	if err != nil {
		return nil, err
	}

	return &Result{
		Answers:    answers,
		TotalScore: total,
		MaxScore:   max,
		RiskBand:   band,
	}, nil
}

func questionByID(t Template, id uint) (Question, error) {
	for _, q := range t.Questions {
		if q.ID == id {
			return q, nil
		}
	}
	return Question{}, configErrorf("answer references unknown question %d", id)
}
