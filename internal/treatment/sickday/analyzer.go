package sickday

import (
	"fmt"
	"strings"
)

// GlucoseRisk classifies a glucose reading into its band. Readings outside
// every band (negative input) fall back to the highest-risk band.
func GlucoseRisk(mgdl int) GlucoseBand {
	for _, band := range glucoseBands {
		if mgdl >= band.MinMgdl && mgdl < band.MaxMgdl {
			return band
		}
	}
	return glucoseBands[len(glucoseBands)-1] // dka_risk
}

// KetoneRisk classifies a blood ketone reading into its band.
func KetoneRisk(mmol float64) KetoneBand {
	for _, band := range ketoneBands {
		if mmol >= band.MinMmol && mmol < band.MaxMmol {
			return band
		}
	}
	return ketoneBands[len(ketoneBands)-1] // severe
}

// symptomAliases maps Korean symptom names to guideline keys for direct
// matches.
var symptomAliases = map[string]string{
	"발열":     "fever",
	"열":      "fever",
	"구토":     "vomiting",
	"토함":     "vomiting",
	"설사":     "diarrhea",
	"메스꺼움":   "nausea",
	"속이 안좋음": "nausea",
	"감기":     "cold_flu",
	"독감":     "cold_flu",
	"감염":     "infection",
}

// expressionPatterns match free-form Korean descriptions ("열나고 토해요") by
// substring. Order matters only for readability; all patterns are applied.
var expressionPatterns = []struct {
	expr string
	key  string
}{
	{"열나", "fever"},
	{"열이", "fever"},
	{"고열", "fever"},
	{"토", "vomiting"},
	{"구역", "nausea"},
	{"메스꺼", "nausea"},
	{"속이 안", "nausea"},
	{"설사", "diarrhea"},
	{"배탈", "diarrhea"},
	{"감기", "cold_flu"},
	{"콧물", "cold_flu"},
	{"기침", "cold_flu"},
	{"몸살", "cold_flu"},
	{"독감", "cold_flu"},
	{"감염", "infection"},
}

// SymptomAdvice resolves a symptom name (Korean alias or English key) to its
// guideline.
func SymptomAdvice(name string) (SymptomGuideline, bool) {
	key := strings.TrimSpace(name)
	if mapped, ok := symptomAliases[key]; ok {
		key = mapped
	} else {
		key = strings.ToLower(key)
	}
	g, ok := symptomGuidelines[key]
	return g, ok
}

// ParseSymptoms extracts symptom keys from free-form input. It accepts
// comma-separated names ("발열, 구토"), Korean descriptions ("열나고 토해요")
// and English keys. Unrecognized input defaults to cold_flu. The result
// preserves first-seen order and contains no duplicates.
func ParseSymptoms(input string) []string {
	seen := make(map[string]bool)
	var found []string
	add := func(key string) {
		if !seen[key] {
			seen[key] = true
			found = append(found, key)
		}
	}

	parts := strings.Split(strings.ReplaceAll(input, "、", ","), ",")
	for _, part := range parts {
		part = strings.TrimSpace(part)

		if g, ok := SymptomAdvice(part); ok {
			add(g.Key)
			continue
		}

		for _, p := range expressionPatterns {
			if strings.Contains(part, p.expr) {
				add(p.key)
			}
		}
	}

	if len(found) == 0 {
		return []string{"cold_flu"}
	}
	return found
}

// HydrationAdvice returns fluid intake guidance, adjusted by glucose level
// when one is known.
func HydrationAdvice(glucoseMgdl *int) string {
	if glucoseMgdl == nil {
		return "수분 섭취: " + hydrationTarget
	}
	if *glucoseMgdl > hydrationHighThreshold {
		return fmt.Sprintf("수분 섭취: %s\n권장 음료: %s (무설탕)",
			hydrationTarget, strings.Join(sugarFreeDrinks, ", "))
	}
	if *glucoseMgdl < hydrationLowThreshold {
		return fmt.Sprintf("수분 섭취: %s\n권장 음료: %s (당분 포함 가능)",
			hydrationTarget, strings.Join(sugaryDrinks, ", "))
	}
	return "수분 섭취: " + hydrationTarget
}

// EmergencyWarnings lists the warnings triggered by the given readings and
// symptoms. Empty when no emergency criterion is met.
func EmergencyWarnings(glucoseMgdl *int, ketoneMmol *float64, symptomKeys []string) []string {
	var warnings []string

	if glucoseMgdl != nil {
		if *glucoseMgdl < 54 {
			warnings = append(warnings, "⚠️ 심각한 저혈당: 즉시 15-20g 탄수화물 섭취 필요")
		} else if *glucoseMgdl > 300 {
			warnings = append(warnings, "⚠️ DKA 위험 혈당: 케톤 측정 필수, 의료팀 연락")
		}
	}

	if ketoneMmol != nil {
		if *ketoneMmol >= 3.0 {
			warnings = append(warnings, "🚨 혈중 케톤 >3.0 mmol/L: 즉시 응급실 방문 필요")
		} else if *ketoneMmol >= 1.5 {
			warnings = append(warnings, "⚠️ 중등도 케톤: 즉시 의료팀에 연락하세요")
		}
	}

	for _, key := range symptomKeys {
		if key == "vomiting" {
			warnings = append(warnings, "⚠️ 구토: 2시간 이상 지속 시 응급실 방문 필요")
		}
	}

	return warnings
}

// Analysis is the combined sick day risk assessment.
type Analysis struct {
	OverallLevel          RiskLevel          `json:"overall_level"`
	OverallEmoji          string             `json:"overall_emoji"`
	OverallDescription    string             `json:"overall_description"`
	GlucoseStatus         *GlucoseBand       `json:"glucose_status,omitempty"`
	SymptomAdvice         []SymptomGuideline `json:"symptom_advice"`
	PriorityActions       []string           `json:"priority_actions"`
	HydrationAdvice       string             `json:"hydration_advice"`
	EssentialRules        []string           `json:"essential_rules"`
	EmergencyWarnings     []string           `json:"emergency_warnings"`
	NeedsMedicalAttention bool               `json:"needs_medical_attention"`
}

// Analyze combines glucose, ketone and symptom input into one assessment.
// Glucose and ketone readings are optional.
func Analyze(symptomsInput string, glucoseMgdl *int, ketoneMmol *float64) Analysis {
	symptomKeys := ParseSymptoms(symptomsInput)
	var symptoms []SymptomGuideline
	for _, key := range symptomKeys {
		if g, ok := SymptomAdvice(key); ok {
			symptoms = append(symptoms, g)
		}
	}

	var glucoseStatus *GlucoseBand
	if glucoseMgdl != nil {
		band := GlucoseRisk(*glucoseMgdl)
		glucoseStatus = &band
	}

	maxLevel := LevelNormal
	if glucoseStatus != nil && glucoseStatus.Level.rank() >= LevelDanger.rank() {
		maxLevel = glucoseStatus.Level
	}
	for _, s := range symptoms {
		if s.RiskMultiplier >= 2.0 && maxLevel == LevelNormal {
			maxLevel = LevelWarning
		}
	}
	if ketoneMmol != nil {
		switch {
		case *ketoneMmol >= 3.0:
			maxLevel = LevelEmergency
		case *ketoneMmol >= 1.5:
			if maxLevel == LevelNormal || maxLevel == LevelCaution {
				maxLevel = LevelWarning
			}
		}
	}

	warnings := EmergencyWarnings(glucoseMgdl, ketoneMmol, symptomKeys)
	needsMedical := len(warnings) > 0 || maxLevel == LevelEmergency

	// Priority actions: top glucose actions, then top advice of the two
	// leading symptoms, de-duplicated in order.
	var priority []string
	if glucoseStatus != nil {
		priority = append(priority, firstN(glucoseStatus.Actions, 2)...)
	}
	for _, s := range firstNSymptoms(symptoms, 2) {
		priority = append(priority, firstN(s.Advice, 2)...)
	}
	priority = dedup(priority)

	rules := make([]string, 0, 3)
	for _, r := range essentialRules[:3] {
		rules = append(rules, r.Rule)
	}

	emoji, desc := levelDisplay(maxLevel)

	return Analysis{
		OverallLevel:          maxLevel,
		OverallEmoji:          emoji,
		OverallDescription:    desc,
		GlucoseStatus:         glucoseStatus,
		SymptomAdvice:         symptoms,
		PriorityActions:       priority,
		HydrationAdvice:       HydrationAdvice(glucoseMgdl),
		EssentialRules:        rules,
		EmergencyWarnings:     warnings,
		NeedsMedicalAttention: needsMedical,
	}
}

func levelDisplay(level RiskLevel) (emoji, description string) {
	switch level {
	case LevelNormal:
		return "🟢", "안정적"
	case LevelWarning:
		return "🟠", "경고"
	case LevelDanger:
		return "🔴", "위험"
	case LevelEmergency:
		return "🚨", "응급"
	default:
		return "🟡", "주의 필요"
	}
}

func firstN(items []string, n int) []string {
	if len(items) < n {
		n = len(items)
	}
	return items[:n]
}

func firstNSymptoms(items []SymptomGuideline, n int) []SymptomGuideline {
	if len(items) < n {
		n = len(items)
	}
	return items[:n]
}

func dedup(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}

// Report is the tool-facing serialization of an Analysis, grouped for LLM
// consumption.
type Report struct {
	Summary    ReportSummary   `json:"summary"`
	Analysis   ReportAnalysis  `json:"analysis"`
	Guidelines ReportGuideline `json:"guidelines"`
	Sources    []string        `json:"sources"`
}

type ReportSummary struct {
	OverallRiskLevel       RiskLevel `json:"overall_risk_level"`
	Description            string    `json:"description"`
	Emoji                  string    `json:"emoji"`
	InputSymptoms          string    `json:"input_symptoms"`
	MedicalAttentionNeeded bool      `json:"medical_attention_needed"`
}

type ReportAnalysis struct {
	Symptoms          []SymptomGuideline `json:"symptoms"`
	GlucoseStatus     *GlucoseBand       `json:"glucose_status,omitempty"`
	EmergencyWarnings []string           `json:"emergency_warnings"`
	PriorityActions   []string           `json:"priority_actions"`
}

type ReportGuideline struct {
	HydrationAdvice string   `json:"hydration_advice"`
	EssentialRules  []string `json:"essential_rules"`
}

// BuildReport packages an Analysis with the original symptom input.
func BuildReport(a Analysis, symptomsInput string) Report {
	return Report{
		Summary: ReportSummary{
			OverallRiskLevel:       a.OverallLevel,
			Description:            a.OverallDescription,
			Emoji:                  a.OverallEmoji,
			InputSymptoms:          symptomsInput,
			MedicalAttentionNeeded: a.NeedsMedicalAttention,
		},
		Analysis: ReportAnalysis{
			Symptoms:          a.SymptomAdvice,
			GlucoseStatus:     a.GlucoseStatus,
			EmergencyWarnings: a.EmergencyWarnings,
			PriorityActions:   a.PriorityActions,
		},
		Guidelines: ReportGuideline{
			HydrationAdvice: a.HydrationAdvice,
			EssentialRules:  a.EssentialRules,
		},
		Sources: []string{guidelineSourcesPrimary, guidelineSourcesSecond},
	}
}
