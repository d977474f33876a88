package sickday

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func TestGlucoseRiskBands(t *testing.T) {
	cases := []struct {
		mgdl     int
		category string
		level    RiskLevel
	}{
		{40, "severe_hypoglycemia", LevelEmergency},
		{53, "severe_hypoglycemia", LevelEmergency},
		{54, "hypoglycemia", LevelDanger},
		{69, "hypoglycemia", LevelDanger},
		{70, "low_normal", LevelCaution},
		{89, "low_normal", LevelCaution},
		{90, "target_range", LevelNormal},
		{120, "target_range", LevelNormal},
		{179, "target_range", LevelNormal},
		{180, "elevated", LevelCaution},
		{249, "elevated", LevelCaution},
		{250, "high", LevelWarning},
		{299, "high", LevelWarning},
		{300, "dka_risk", LevelDanger},
		{450, "dka_risk", LevelDanger},
	}
	for _, tc := range cases {
		band := GlucoseRisk(tc.mgdl)
		assert.Equal(t, tc.category, band.Category, "glucose %d", tc.mgdl)
		assert.Equal(t, tc.level, band.Level, "glucose %d", tc.mgdl)
		assert.NotEmpty(t, band.Actions)
		assert.NotEmpty(t, band.Source)
	}
}

func TestKetoneRiskBands(t *testing.T) {
	assert.Equal(t, "normal", KetoneRisk(0.2).Category)
	assert.Equal(t, "mild", KetoneRisk(0.6).Category)
	assert.Equal(t, "mild", KetoneRisk(1.4).Category)
	assert.Equal(t, "moderate", KetoneRisk(1.5).Category)
	assert.Equal(t, "severe", KetoneRisk(3.0).Category)
	assert.Equal(t, LevelEmergency, KetoneRisk(4.5).Level)
}

func TestParseSymptomsDirectNames(t *testing.T) {
	assert.Equal(t, []string{"fever", "vomiting"}, ParseSymptoms("발열, 구토"))
	assert.Equal(t, []string{"fever"}, ParseSymptoms("fever"))
	assert.Equal(t, []string{"cold_flu"}, ParseSymptoms("감기"))
}

func TestParseSymptomsKoreanExpressions(t *testing.T) {
	keys := ParseSymptoms("열나고 토해요")
	assert.Contains(t, keys, "fever")
	assert.Contains(t, keys, "vomiting")

	assert.Equal(t, []string{"diarrhea"}, ParseSymptoms("배탈이 났어요"))
}

func TestParseSymptomsDefaultsToColdFlu(t *testing.T) {
	assert.Equal(t, []string{"cold_flu"}, ParseSymptoms("모르겠어요"))
	assert.Equal(t, []string{"cold_flu"}, ParseSymptoms(""))
}

func TestParseSymptomsNoDuplicates(t *testing.T) {
	assert.Equal(t, []string{"fever"}, ParseSymptoms("발열, 열, 고열이 나요"))
}

func TestHydrationAdvice(t *testing.T) {
	assert.Contains(t, HydrationAdvice(nil), "시간당 100ml")

	high := HydrationAdvice(intp(280))
	assert.Contains(t, high, "무설탕")

	low := HydrationAdvice(intp(100))
	assert.Contains(t, low, "당분 포함 가능")

	mid := HydrationAdvice(intp(200))
	assert.NotContains(t, mid, "권장 음료")
}

func TestEmergencyWarnings(t *testing.T) {
	assert.Empty(t, EmergencyWarnings(intp(120), floatp(0.3), []string{"cold_flu"}))

	assert.Len(t, EmergencyWarnings(intp(50), nil, nil), 1)
	assert.Len(t, EmergencyWarnings(intp(320), nil, nil), 1)
	assert.Len(t, EmergencyWarnings(nil, floatp(3.2), nil), 1)
	assert.Len(t, EmergencyWarnings(nil, floatp(1.8), nil), 1)
	assert.Len(t, EmergencyWarnings(nil, nil, []string{"vomiting"}), 1)

	combined := EmergencyWarnings(intp(320), floatp(3.2), []string{"vomiting"})
	assert.Len(t, combined, 3)
}

func TestAnalyzeStableCase(t *testing.T) {
	a := Analyze("감기 기운", intp(120), nil)

	assert.Equal(t, LevelNormal, a.OverallLevel)
	assert.Equal(t, "안정적", a.OverallDescription)
	require.NotNil(t, a.GlucoseStatus)
	assert.Equal(t, "target_range", a.GlucoseStatus.Category)
	assert.False(t, a.NeedsMedicalAttention)
	assert.Empty(t, a.EmergencyWarnings)
	assert.Len(t, a.EssentialRules, 3)
	assert.Equal(t, "인슐린 절대 중단 금지", a.EssentialRules[0])
}

func TestAnalyzeVomitingEscalates(t *testing.T) {
	a := Analyze("구토", intp(150), nil)

	assert.Equal(t, LevelWarning, a.OverallLevel)
	assert.True(t, a.NeedsMedicalAttention, "vomiting triggers an emergency warning")
	assert.NotEmpty(t, a.EmergencyWarnings)
}

func TestAnalyzeSevereKetonesAreEmergency(t *testing.T) {
	a := Analyze("감기", intp(320), floatp(3.5))

	assert.Equal(t, LevelEmergency, a.OverallLevel)
	assert.Equal(t, "🚨", a.OverallEmoji)
	assert.True(t, a.NeedsMedicalAttention)
}

func TestAnalyzeWithoutReadings(t *testing.T) {
	a := Analyze("열나요", nil, nil)

	assert.Nil(t, a.GlucoseStatus)
	assert.NotEmpty(t, a.SymptomAdvice)
	assert.Equal(t, "fever", a.SymptomAdvice[0].Key)
	assert.NotEmpty(t, a.PriorityActions)
}

func TestAnalyzePriorityActionsDeduplicated(t *testing.T) {
	a := Analyze("발열, 구토", intp(260), nil)

	seen := make(map[string]bool)
	for _, action := range a.PriorityActions {
		assert.False(t, seen[action], "duplicate action %q", action)
		seen[action] = true
	}
}

func TestBuildReport(t *testing.T) {
	a := Analyze("발열", intp(200), nil)
	r := BuildReport(a, "발열")

	assert.Equal(t, a.OverallLevel, r.Summary.OverallRiskLevel)
	assert.Equal(t, "발열", r.Summary.InputSymptoms)
	assert.Equal(t, a.SymptomAdvice, r.Analysis.Symptoms)
	assert.Len(t, r.Sources, 2)
	assert.Contains(t, r.Sources[0], "ISPAD")
}
