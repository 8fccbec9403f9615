package service

import (
	"encoding/json"
	"testing"

	"campus_wellness_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInstrument() *model.Instrument {
	options, _ := json.Marshal([]map[string]interface{}{
		{"label": "完全没有", "value": 0},
		{"label": "有几天", "value": 1},
		{"label": "超过一半天数", "value": 2},
		{"label": "几乎每天", "value": 3},
	})
	inst := &model.Instrument{
		Code:        "PHQ-9",
		Title:       "抑郁自评量表",
		IsPublished: true,
	}
	for i := 0; i < 3; i++ {
		inst.Questions = append(inst.Questions, model.InstrumentQuestion{
			BaseModel: model.BaseModel{ID: uint(i + 1)},
			Content:   "q",
			Options:   options,
			Required:  true,
			Order:     i,
		})
	}
	inst.Thresholds = []model.InstrumentThreshold{
		{Band: "Low", MinScore: 0, MaxScore: 4},
		{Band: "Moderate", MinScore: 5, MaxScore: 7},
		{Band: "High", MinScore: 8, MaxScore: 9},
	}
	return inst
}

func TestBuildTemplate(t *testing.T) {
	inst := sampleInstrument()

	tmpl, err := BuildTemplate(inst)
	require.NoError(t, err)

	assert.Equal(t, "PHQ-9", tmpl.InstrumentCode)
	require.Len(t, tmpl.Questions, 3)
	assert.Equal(t, uint(1), tmpl.Questions[0].ID)
	assert.True(t, tmpl.Questions[0].Required)
	require.Len(t, tmpl.Questions[0].Options, 4)
	assert.Equal(t, 3, tmpl.Questions[0].Options[3].Value)
	assert.Equal(t, 9, tmpl.MaxScore())

	require.Len(t, tmpl.Thresholds, 3)
	assert.Equal(t, "Moderate", tmpl.Thresholds[1].Band)
	assert.Equal(t, 5, tmpl.Thresholds[1].Min)
}

func TestBuildTemplateMalformedOptions(t *testing.T) {
	inst := sampleInstrument()
	inst.Questions[1].Options = json.RawMessage(`{"label": "broken"`)

	_, err := BuildTemplate(inst)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed options")
}

func TestBuildTemplateEmptyThresholds(t *testing.T) {
	inst := sampleInstrument()
	inst.Thresholds = nil

	tmpl, err := BuildTemplate(inst)
	require.NoError(t, err)
	assert.Empty(t, tmpl.Thresholds)
}
