package database

import (
	"campus_wellness_backend/internal/config"
	"campus_wellness_backend/internal/model"
	"campus_wellness_backend/internal/scoring"
	"encoding/json"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Instrument{},
		&model.InstrumentQuestion{},
		&model.InstrumentThreshold{},
		&model.AssessmentSubmission{},
		&model.Journal{},
		&model.Alert{},
		&model.CounselingSession{},
		&model.Resource{},
		&model.WellnessTask{},
		&model.ChatMessage{},
		&model.ActivityLog{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := seedInstruments(db); err != nil {
		return nil, err
	}

	return db, nil
}

type seedQuestion struct {
	content string
	options []scoring.Option
}

type seedInstrument struct {
	code        string
	title       string
	description string
	questions   []seedQuestion
	thresholds  []scoring.Threshold
}

var phq9SeedOptions = []scoring.Option{
	{Label: "Not at all", Value: 0},
	{Label: "Several days", Value: 1},
	{Label: "More than half the days", Value: 2},
	{Label: "Nearly every day", Value: 3},
}

var stressSeedOptions = []scoring.Option{
	{Label: "Never", Value: 0},
	{Label: "Sometimes", Value: 1},
	{Label: "Often", Value: 2},
	{Label: "Always", Value: 3},
}

// seedInstruments 内置三套标准量表。阈值表在写入前先过一遍引擎校验，
// 避免把配置错误埋进种子数据。
func seedInstruments(db *gorm.DB) error {
	var count int64
	db.Model(&model.Instrument{}).Count(&count)
	if count > 0 {
		return nil
	}

	phq9Items := []string{
		"Little interest or pleasure in doing things",
		"Feeling down, depressed, or hopeless",
		"Trouble falling or staying asleep, or sleeping too much",
		"Feeling tired or having little energy",
		"Poor appetite or overeating",
		"Feeling bad about yourself — or that you are a failure",
		"Trouble concentrating on things, such as reading or studying",
		"Moving or speaking slowly, or being fidgety or restless",
		"Thoughts that you would be better off dead or of hurting yourself",
	}
	gad7Items := []string{
		"Feeling nervous, anxious, or on edge",
		"Not being able to stop or control worrying",
		"Worrying too much about different things",
		"Trouble relaxing",
		"Being so restless that it is hard to sit still",
		"Becoming easily annoyed or irritable",
		"Feeling afraid as if something awful might happen",
	}
	stressItems := []string{
		"I feel overwhelmed by my academic workload",
		"I have trouble sleeping because of worry",
		"I find it hard to relax even in my free time",
		"I feel irritable or short-tempered with people around me",
		"I struggle to concentrate during lectures or study sessions",
		"I feel physical tension such as headaches or a tight chest",
		"I avoid social activities because I feel drained",
		"I worry that I cannot keep up with my peers",
		"I feel that small problems are harder to handle than usual",
		"I feel pressure from family expectations",
	}

	seeds := []seedInstrument{
		{
			code:        "PHQ-9",
			title:       "Patient Health Questionnaire (PHQ-9)",
			description: "Over the last 2 weeks, how often have you been bothered by any of the following problems?",
			questions:   withOptions(phq9Items, phq9SeedOptions),
			thresholds: []scoring.Threshold{
				{Band: "Low", Min: 0, Max: 9},
				{Band: "Moderate", Min: 10, Max: 14},
				{Band: "High", Min: 15, Max: 27},
			},
		},
		{
			code:        "GAD-7",
			title:       "Generalized Anxiety Disorder Scale (GAD-7)",
			description: "Over the last 2 weeks, how often have you been bothered by the following problems?",
			questions:   withOptions(gad7Items, phq9SeedOptions),
			thresholds: []scoring.Threshold{
				{Band: "Minimal", Min: 0, Max: 4},
				{Band: "Mild", Min: 5, Max: 9},
				{Band: "Moderate", Min: 10, Max: 14},
				{Band: "Severe", Min: 15, Max: 21},
			},
		},
		{
			code:        "STRESS",
			title:       "Campus Stress Inventory",
			description: "How often have the following applied to you during the past two weeks?",
			questions:   withOptions(stressItems, stressSeedOptions),
			thresholds: []scoring.Threshold{
				{Band: "Low", Min: 0, Max: 5},
				{Band: "Moderate", Min: 6, Max: 10},
				{Band: "High", Min: 11, Max: 30},
			},
		},
	}

	for _, seed := range seeds {
		maxScore := 0
		for _, q := range seed.questions {
			best := 0
			for _, opt := range q.options {
				if opt.Value > best {
					best = opt.Value
				}
			}
			maxScore += best
		}
		if err := scoring.ValidateThresholds(seed.thresholds, maxScore); err != nil {
			return fmt.Errorf("seed instrument %s: %w", seed.code, err)
		}

		inst := &model.Instrument{
			Code:        seed.code,
			Title:       seed.title,
			Description: seed.description,
			IsPublished: true,
		}
		if err := db.Create(inst).Error; err != nil {
			return err
		}

		for i, q := range seed.questions {
			optionsJSON, err := json.Marshal(q.options)
			if err != nil {
				return err
			}
			question := &model.InstrumentQuestion{
				InstrumentID: inst.ID,
				Content:      q.content,
				Options:      optionsJSON,
				Required:     true,
				Order:        i + 1,
			}
			if err := db.Create(question).Error; err != nil {
				return err
			}
		}

		for i, th := range seed.thresholds {
			threshold := &model.InstrumentThreshold{
				InstrumentID: inst.ID,
				Band:         th.Band,
				MinScore:     th.Min,
				MaxScore:     th.Max,
				Order:        i + 1,
			}
			if err := db.Create(threshold).Error; err != nil {
				return err
			}
		}
	}

	log.Println("Seeded default instruments")
	return nil
}

func withOptions(items []string, options []scoring.Option) []seedQuestion {
	qs := make([]seedQuestion, len(items))
	for i, content := range items {
		qs[i] = seedQuestion{content: content, options: options}
	}
	return qs
}
