// Package sickday provides evidence-based risk analysis for managing Type 1
// Diabetes during illness. All thresholds and recommendations come from
// the ISPAD Clinical Practice Consensus Guidelines 2024 and the ADA
// Standards of Care in Diabetes.
//
// This information is educational and does not replace professional
// medical advice.
package sickday

// RiskLevel classifies patient risk per ISPAD/ADA guidelines.
type RiskLevel string

const (
	LevelNormal    RiskLevel = "normal"
	LevelCaution   RiskLevel = "caution"
	LevelWarning   RiskLevel = "warning"
	LevelDanger    RiskLevel = "danger"
	LevelEmergency RiskLevel = "emergency"
)

// rank orders risk levels for escalation comparisons.
func (l RiskLevel) rank() int {
	switch l {
	case LevelCaution:
		return 1
	case LevelWarning:
		return 2
	case LevelDanger:
		return 3
	case LevelEmergency:
		return 4
	default:
		return 0
	}
}

// GlucoseBand describes one glucose range and its recommended response.
// Ranges are half-open: [MinMgdl, MaxMgdl).
type GlucoseBand struct {
	Category string    `json:"category"`
	MinMgdl  int       `json:"-"`
	MaxMgdl  int       `json:"-"`
	Level    RiskLevel `json:"level"`
	Emoji    string    `json:"emoji"`
	NameKo   string    `json:"name_ko"`
	NameEn   string    `json:"name_en"`
	Actions  []string  `json:"actions"`
	FollowUp string    `json:"follow_up"`
	Source   string    `json:"source"`
}

// glucoseBands are ordered from lowest to highest range; lookup walks the
// slice, so order is part of the contract.
var glucoseBands = []GlucoseBand{
	{
		Category: "severe_hypoglycemia",
		MinMgdl:  0, MaxMgdl: 54,
		Level: LevelEmergency, Emoji: "🔴",
		NameKo: "심각한 저혈당", NameEn: "Severe Hypoglycemia",
		Actions: []string{
			"의식이 있으면: 즉시 15-20g 속효성 탄수화물 섭취 (포도당, 주스, 사탕)",
			"15분 후 재측정, 여전히 낮으면 반복",
			"의식 저하 시: 글루카곤 투여 또는 119 호출",
		},
		FollowUp: "회복 후 복합 탄수화물 섭취, 의료팀에 보고",
		Source:   "ISPAD 2024 - Level 2 Hypoglycemia (<54 mg/dL)",
	},
	{
		Category: "hypoglycemia",
		MinMgdl:  54, MaxMgdl: 70,
		Level: LevelDanger, Emoji: "🟠",
		NameKo: "저혈당", NameEn: "Hypoglycemia",
		Actions: []string{
			"15g 속효성 탄수화물 섭취 (포도당 정제, 주스 120ml)",
			"15분 후 재측정",
			"70 mg/dL 이상 될 때까지 반복",
		},
		FollowUp: "원인 파악 (인슐린 과다, 식사 지연, 운동 등)",
		Source:   "ADA Standards of Care - Hypoglycemia Alert Value",
	},
	{
		Category: "low_normal",
		MinMgdl:  70, MaxMgdl: 90,
		Level: LevelCaution, Emoji: "🟡",
		NameKo: "낮은 정상", NameEn: "Low Normal",
		Actions: []string{
			"아픈 날에는 간식 준비",
			"30분 후 재측정 권장",
			"활동 전 탄수화물 섭취 고려",
		},
		FollowUp: "정상 범위 유지 모니터링",
		Source:   "ISPAD 2024 - Sick Day Target Range (70-180 mg/dL)",
	},
	{
		Category: "target_range",
		MinMgdl:  90, MaxMgdl: 180,
		Level: LevelNormal, Emoji: "🟢",
		NameKo: "목표 범위", NameEn: "Target Range",
		Actions: []string{
			"현재 관리 유지",
			"아픈 날: 2-4시간 간격 모니터링 지속",
			"수분 섭취 유지",
		},
		FollowUp: "증상 호전까지 모니터링 지속",
		Source:   "ISPAD 2024 - Sick Day Target Range (70-180 mg/dL)",
	},
	{
		Category: "elevated",
		MinMgdl:  180, MaxMgdl: 250,
		Level: LevelCaution, Emoji: "🟡",
		NameKo: "높음", NameEn: "Elevated",
		Actions: []string{
			"수분 섭취 증가 (무설탕 음료)",
			"2시간 간격 모니터링",
			"케톤 측정 고려 (특히 240 mg/dL 이상 시)",
		},
		FollowUp: "교정 인슐린 고려 (의료팀 지시에 따라)",
		Source:   "ADA Standards of Care - Increased Monitoring Threshold",
	},
	{
		Category: "high",
		MinMgdl:  250, MaxMgdl: 300,
		Level: LevelWarning, Emoji: "🟠",
		NameKo: "매우 높음", NameEn: "High",
		Actions: []string{
			"케톤 측정 필수",
			"수분 섭취 증가 (시간당 120-180ml)",
			"의료팀에 연락하여 인슐린 조절 상담",
		},
		FollowUp: "케톤이 양성이면 즉시 의료팀 연락",
		Source:   "ADA - Check ketones if glucose >240 mg/dL",
	},
	{
		Category: "dka_risk",
		MinMgdl:  300, MaxMgdl: 9999,
		Level: LevelDanger, Emoji: "🔴",
		NameKo: "DKA 위험", NameEn: "DKA Risk Zone",
		Actions: []string{
			"즉시 케톤 측정",
			"의료팀 또는 응급실 연락",
			"수분 섭취 지속 (구토 없는 경우)",
			"추가 인슐린 용량은 의료팀 지시에 따라 투여",
		},
		FollowUp: "케톤 >3.0 mmol/L 또는 증상 악화 시 응급실 방문",
		Source:   "ISPAD 2024 - DKA Prevention, ADA Sick Day Rules",
	},
}

// KetoneBand describes one blood ketone (beta-hydroxybutyrate) range.
// Ranges are half-open: [MinMmol, MaxMmol).
type KetoneBand struct {
	Category string    `json:"category"`
	MinMmol  float64   `json:"-"`
	MaxMmol  float64   `json:"-"`
	Level    RiskLevel `json:"level"`
	Emoji    string    `json:"emoji"`
	NameKo   string    `json:"name_ko"`
	NameEn   string    `json:"name_en"`
	Actions  []string  `json:"actions"`
	Source   string    `json:"source"`
}

var ketoneBands = []KetoneBand{
	{
		Category: "normal",
		MinMmol:  0, MaxMmol: 0.6,
		Level: LevelNormal, Emoji: "🟢",
		NameKo: "정상", NameEn: "Normal",
		Actions: []string{
			"모니터링 지속",
			"혈당이 높으면 수분 섭취 증가",
		},
		Source: "ISPAD 2024 - Target ketone level <0.6 mmol/L",
	},
	{
		Category: "mild",
		MinMmol:  0.6, MaxMmol: 1.5,
		Level: LevelCaution, Emoji: "🟡",
		NameKo: "경미한 케톤혈증", NameEn: "Mild Ketonemia",
		Actions: []string{
			"의료팀에 연락",
			"수분 섭취 증가",
			"추가 인슐린 투여 고려 (의료팀 지시)",
			"2시간마다 케톤 재측정",
		},
		Source: "ISPAD 2024 - Contact diabetes team if >0.6 mmol/L",
	},
	{
		Category: "moderate",
		MinMmol:  1.5, MaxMmol: 3.0,
		Level: LevelWarning, Emoji: "🟠",
		NameKo: "중등도 케톤혈증", NameEn: "Moderate Ketonemia",
		Actions: []string{
			"즉시 의료팀에 연락",
			"추가 인슐린 필요 (총 일일량의 10-20%)",
			"수분 섭취 지속",
			"1-2시간마다 혈당 및 케톤 모니터링",
		},
		Source: "ISPAD 2024 - Moderate ketones require medical guidance",
	},
	{
		Category: "severe",
		MinMmol:  3.0, MaxMmol: 999,
		Level: LevelEmergency, Emoji: "🔴",
		NameKo: "심각한 케톤혈증 (DKA 위험)", NameEn: "Severe Ketonemia (DKA Risk)",
		Actions: []string{
			"즉시 응급실 방문",
			"IV 수액 및 인슐린 치료 필요",
			"구토, 복통, 빠른 호흡 등 DKA 증상 확인",
		},
		Source: "ISPAD 2024 - Blood ketones >3.0 mmol/L require hospital treatment",
	},
}

// SymptomGuideline describes one illness symptom and its management advice.
type SymptomGuideline struct {
	Key                string   `json:"symptom_key"`
	NameKo             string   `json:"name_ko"`
	NameEn             string   `json:"name_en"`
	GlucoseImpact      string   `json:"glucose_impact"`
	RiskMultiplier     float64  `json:"risk_multiplier"`
	Advice             []string `json:"advice"`
	WarningSigns       []string `json:"warning_signs"`
	EmergencyThreshold string   `json:"emergency_threshold,omitempty"`
	Source             string   `json:"source"`
}

var symptomGuidelines = map[string]SymptomGuideline{
	"fever": {
		Key: "fever", NameKo: "발열", NameEn: "Fever",
		GlucoseImpact:  "상승 가능성 높음 (스트레스 호르몬 분비 증가)",
		RiskMultiplier: 1.3,
		Advice: []string{
			"혈당 모니터링 빈도 증가 (2-4시간 간격)",
			"수분 섭취 증가 (시간당 100ml 이상)",
			"해열제 복용 가능 (파라세타몰/이부프로펜, 당분 미포함 제품)",
		},
		WarningSigns: []string{
			"38.5°C 이상 24시간 지속",
			"오한 동반",
			"해열제에 반응 없음",
		},
		Source: "ISPAD 2024 - Treat fever as in children without diabetes",
	},
	"vomiting": {
		Key: "vomiting", NameKo: "구토", NameEn: "Vomiting",
		GlucoseImpact:  "불안정 (탈수 + 음식 흡수 저하)",
		RiskMultiplier: 2.0,
		Advice: []string{
			"탈수 방지: 15분마다 한 모금씩 물 섭취",
			"전해질 음료 권장 (이온음료 희석)",
			"케톤 측정 필수",
			"인슐린은 중단하지 않되, 용량 조절 필요할 수 있음",
		},
		WarningSigns: []string{
			"2시간 이상 지속",
			"수분 섭취 불가",
			"혈액 섞임",
		},
		EmergencyThreshold: "2시간 이상 구토 지속 시 응급실 방문",
		Source:             "ISPAD 2024 - Vomiting >2 hours requires medical attention",
	},
	"diarrhea": {
		Key: "diarrhea", NameKo: "설사", NameEn: "Diarrhea",
		GlucoseImpact:  "저혈당 위험 증가 (흡수 장애)",
		RiskMultiplier: 1.5,
		Advice: []string{
			"탈수 방지가 최우선",
			"전해질 보충 필요 (ORS 또는 희석 이온음료)",
			"혈당이 낮아지면 당분 포함 음료 섭취",
			"BRAT 식이 권장 (바나나, 쌀, 사과소스, 토스트)",
		},
		WarningSigns: []string{
			"24시간 이상 지속",
			"혈변 또는 점액 섞임",
			"심한 복통 동반",
		},
		Source: "ADA Sick Day Rules - Fluid replacement priority",
	},
	"nausea": {
		Key: "nausea", NameKo: "메스꺼움", NameEn: "Nausea",
		GlucoseImpact:  "식사량 감소로 저혈당 가능",
		RiskMultiplier: 1.3,
		Advice: []string{
			"적은 양 자주 섭취",
			"무탄산, 무카페인 음료 권장",
			"혈당 180 mg/dL 이하면 당분 포함 음료 가능",
			"쿠키, 크래커 등 담백한 음식 시도",
		},
		WarningSigns: []string{
			"24시간 이상 지속",
			"구토로 진행",
		},
		Source: "ISPAD 2024 - If appetite decreased, consider sugary fluids",
	},
	"cold_flu": {
		Key: "cold_flu", NameKo: "감기/독감", NameEn: "Cold/Flu",
		GlucoseImpact:  "상승 가능성 (면역 반응)",
		RiskMultiplier: 1.2,
		Advice: []string{
			"충분한 휴식",
			"수분 섭취 증가",
			"무설탕 기침약 선택",
			"증상 완화제 복용 가능 (당분 미포함 확인)",
		},
		WarningSigns: []string{
			"호흡 곤란",
			"고열 동반 (38.5°C 이상)",
			"증상 악화",
		},
		Source: "ADA - Treat underlying illness appropriately",
	},
	"infection": {
		Key: "infection", NameKo: "감염", NameEn: "Infection",
		GlucoseImpact:  "상승 가능성 높음",
		RiskMultiplier: 1.5,
		Advice: []string{
			"의료진 진찰 필요",
			"처방된 항생제 복용 (필요시)",
			"혈당 모니터링 강화",
			"인슐린 용량 증가 필요할 수 있음",
		},
		WarningSigns: []string{
			"발열 지속",
			"국소 증상 악화",
			"전신 쇠약감",
		},
		Source: "ISPAD 2024 - Treat bacterial infections with antibiotics",
	},
}

// essentialRules are the always-applicable sick day principles, in priority
// order.
var essentialRules = []struct {
	Rule        string
	Explanation string
	Source      string
}{
	{
		Rule:        "인슐린 절대 중단 금지",
		Explanation: "아프면 혈당이 올라가는 경우가 많아 오히려 인슐린이 더 필요합니다. 식사를 못 해도 기저 인슐린은 유지해야 DKA를 예방합니다.",
		Source:      "ISPAD 2024 - Never stop insulin",
	},
	{
		Rule:        "혈당 자주 측정 (2-4시간 간격)",
		Explanation: "아픈 날에는 혈당 변동이 심합니다. 평소보다 자주 측정해야 위험을 조기에 발견할 수 있습니다.",
		Source:      "ADA - Monitor blood glucose every 2-4 hours",
	},
	{
		Rule:        "수분 섭취 증가",
		Explanation: "탈수는 혈당 상승과 케톤 증가의 위험을 높입니다. 시간당 100ml 이상 마시세요.",
		Source:      "ISPAD 2024 - 100ml/hour fluid intake",
	},
	{
		Rule:        "케톤 모니터링",
		Explanation: "특히 혈당이 240 mg/dL 이상이거나 구토가 있을 때 케톤을 측정하세요. 조기 발견이 DKA를 예방합니다.",
		Source:      "ADA - Check ketones if glucose >240 mg/dL",
	},
	{
		Rule:        "의료팀 연락 기준 숙지",
		Explanation: "구토 2시간 이상, 케톤 양성, 혈당 조절 불가, 증상 악화 시 즉시 의료팀에 연락하세요.",
		Source:      "ISPAD 2024 - When to contact diabetes team",
	},
}

// Hydration guidance thresholds and drink suggestions.
const (
	hydrationTarget          = "시간당 100ml 이상 (5-10분마다 소량씩)"
	hydrationHighThreshold   = 250 // mg/dL: above this, sugar-free drinks only
	hydrationLowThreshold    = 180 // mg/dL: below this, sugar is allowed
	guidelineSourcesPrimary  = "ISPAD Clinical Practice Consensus Guidelines 2024"
	guidelineSourcesSecond   = "ADA Standards of Care in Diabetes"
)

var (
	sugarFreeDrinks = []string{"물", "무설탕 차", "무설탕 이온음료", "국물 (저나트륨)"}
	sugaryDrinks    = []string{"희석 과일주스 (50%)", "이온음료", "스포츠드링크"}
)
