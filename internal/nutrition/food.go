// Package nutrition provides carbohydrate lookups for common Korean foods.
// The built-in table covers staples relevant to insulin dosing; a public
// food API (e.g. FoodSafetyKorea) could replace it behind the same
// Repository interface.
package nutrition

// Food is one entry in the carbohydrate table. Carbs are grams per the
// stated serving.
type Food struct {
	Name        string `json:"name"`
	CarbsGrams  int    `json:"carbs"`
	ServingUnit string `json:"unit"`
	Description string `json:"desc"`
}

// builtinFoods seeds every repository. Order matters: Search returns the
// first match, so staples come before composite dishes.
var builtinFoods = []Food{
	{Name: "현미밥", CarbsGrams: 23, ServingUnit: "100g", Description: "식이섬유가 풍부해 혈당 스파이크가 적음"},
	{Name: "백미밥", CarbsGrams: 28, ServingUnit: "100g", Description: "흡수가 빨라 혈당이 급격히 오를 수 있음"},
	{Name: "사과", CarbsGrams: 14, ServingUnit: "100g (반 쪽)", Description: "껍질째 먹으면 좋음"},
	{Name: "바나나", CarbsGrams: 23, ServingUnit: "100g (중간 크기 1개)", Description: "숙성될수록 당도가 높음"},
	{Name: "우유", CarbsGrams: 5, ServingUnit: "100ml", Description: "유당이 있어 혈당을 완만히 올림"},
	{Name: "피자", CarbsGrams: 30, ServingUnit: "1조각 (약 100g)", Description: "지방이 많아 식사 후반 혈당 상승 주의"},
	{Name: "짜장면", CarbsGrams: 70, ServingUnit: "1그릇", Description: "고탄수화물 + 고지방으로 '피자 효과' 주의"},
	{Name: "김치찌개", CarbsGrams: 5, ServingUnit: "1그릇 (건더기 위주)", Description: "국물에는 나트륨이 많음"},
}

// BuiltinFoods returns a copy of the seed table.
func BuiltinFoods() []Food {
	out := make([]Food, len(builtinFoods))
	copy(out, builtinFoods)
	return out
}
