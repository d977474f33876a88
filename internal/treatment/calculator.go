package treatment

import "fmt"

// BolusInput holds the parameters for an insulin bolus calculation.
type BolusInput struct {
	CurrentBG int `json:"current_bg"` // current blood glucose, mg/dL
	TargetBG  int `json:"target_bg"`  // target blood glucose, mg/dL
	ISF       int `json:"isf"`        // insulin sensitivity factor, mg/dL per unit
	Carbs     int `json:"carbs"`      // carbohydrates to be consumed, grams
	ICR       int `json:"icr"`        // insulin-to-carb ratio, grams per unit
}

// Validate checks that the divisor parameters are usable.
func (in BolusInput) Validate() error {
	if in.ISF <= 0 {
		return fmt.Errorf("isf must be positive, got %d", in.ISF)
	}
	if in.ICR <= 0 {
		return fmt.Errorf("icr must be positive, got %d", in.ICR)
	}
	if in.Carbs < 0 {
		return fmt.Errorf("carbs must not be negative, got %d", in.Carbs)
	}
	return nil
}

// BolusResult is the calculation breakdown plus educational content.
type BolusResult struct {
	Units              float64 `json:"units"`
	CorrectionUnits    float64 `json:"correction_units"`
	MealUnits          float64 `json:"meal_units"`
	Explanation        string  `json:"explanation"`
	EducationalContent string  `json:"educational_content"`
	MarkdownTable      string  `json:"markdown_table"`
	MermaidDiagram     string  `json:"mermaid_diagram"`
}

// CalculateBolus computes the suggested insulin bolus from the standard
// formulas: correction dose (current minus target over ISF) plus meal dose
// (carbs over ICR). A below-target glucose yields a negative correction that
// reduces the total.
func CalculateBolus(in BolusInput) (BolusResult, error) {
	if err := in.Validate(); err != nil {
		return BolusResult{}, err
	}

	correction := float64(in.CurrentBG-in.TargetBG) / float64(in.ISF)
	meal := float64(in.Carbs) / float64(in.ICR)
	total := correction + meal

	edu := InsulinEducation()

	explanation := fmt.Sprintf(
		"### 🧮 인슐린 계산 상세\n"+
			"- **교정 인슐린** (높은 혈당 잡기): `(%d - %d) ÷ %d = %.2f단위`\n"+
			"- **식사 인슐린** (밥 먹는 것 커버): `%dg ÷ %d = %.2f단위`\n"+
			"- **총 필요량**: `%.2f 단위`\n\n"+
			"_(※ 실제 주입 시에는 펜/펌프 단위에 맞춰 반올림하세요)_",
		in.CurrentBG, in.TargetBG, in.ISF, correction,
		in.Carbs, in.ICR, meal,
		total,
	)

	return BolusResult{
		Units:              total,
		CorrectionUnits:    correction,
		MealUnits:          meal,
		Explanation:        explanation,
		EducationalContent: edu.SimpleLogic,
		MarkdownTable:      edu.MarkdownTable,
		MermaidDiagram:     edu.MermaidDiagram,
	}, nil
}
