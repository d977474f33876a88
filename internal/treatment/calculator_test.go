package treatment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateBolusCorrectionOnly(t *testing.T) {
	// (200 - 100) / 50 = 2.0 units
	result, err := CalculateBolus(BolusInput{CurrentBG: 200, TargetBG: 100, ISF: 50, Carbs: 0, ICR: 10})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, result.Units, 1e-9)
	assert.Contains(t, result.Explanation, "교정 인슐린")
}

func TestCalculateBolusCarbOnly(t *testing.T) {
	// 50 / 10 = 5.0 units
	result, err := CalculateBolus(BolusInput{CurrentBG: 100, TargetBG: 100, ISF: 50, Carbs: 50, ICR: 10})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, result.Units, 1e-9)
	assert.Contains(t, result.Explanation, "식사 인슐린")
}

func TestCalculateBolusTotal(t *testing.T) {
	// correction 2u + meal 5u = 7u
	result, err := CalculateBolus(BolusInput{CurrentBG: 200, TargetBG: 100, ISF: 50, Carbs: 50, ICR: 10})
	require.NoError(t, err)
	assert.InDelta(t, 7.0, result.Units, 1e-9)
	assert.InDelta(t, 2.0, result.CorrectionUnits, 1e-9)
	assert.InDelta(t, 5.0, result.MealUnits, 1e-9)
}

func TestCalculateBolusNegativeCorrection(t *testing.T) {
	// (80 - 100) / 50 = -0.4; meal 5.0; total 4.6
	result, err := CalculateBolus(BolusInput{CurrentBG: 80, TargetBG: 100, ISF: 50, Carbs: 50, ICR: 10})
	require.NoError(t, err)
	assert.InDelta(t, 4.6, result.Units, 1e-9)
}

func TestCalculateBolusEducationalContent(t *testing.T) {
	result, err := CalculateBolus(BolusInput{CurrentBG: 200, TargetBG: 100, ISF: 50, Carbs: 50, ICR: 10})
	require.NoError(t, err)
	assert.Contains(t, result.MarkdownTable, "| 구분 |")
	assert.Contains(t, result.MarkdownTable, "기저 인슐린")
	assert.Contains(t, result.EducationalContent, "기초")
	assert.Contains(t, result.MermaidDiagram, "graph LR")
}

func TestCalculateBolusValidation(t *testing.T) {
	_, err := CalculateBolus(BolusInput{CurrentBG: 200, TargetBG: 100, ISF: 0, Carbs: 50, ICR: 10})
	assert.Error(t, err)

	_, err = CalculateBolus(BolusInput{CurrentBG: 200, TargetBG: 100, ISF: 50, Carbs: 50, ICR: 0})
	assert.Error(t, err)

	_, err = CalculateBolus(BolusInput{CurrentBG: 200, TargetBG: 100, ISF: 50, Carbs: -5, ICR: 10})
	assert.Error(t, err)
}
