package cgm

import (
	"fmt"
	"strings"
	"time"
)

// trendDisplay maps Dexcom trend identifiers to Korean display labels.
var trendDisplay = map[string]string{
	"doubleUp":       "⬆️⬆️ 급상승",
	"singleUp":       "⬆️ 상승",
	"fortyFiveUp":    "↗️ 완만한 상승",
	"flat":           "➡️ 안정",
	"fortyFiveDown":  "↘️ 완만한 하강",
	"singleDown":     "⬇️ 하강",
	"doubleDown":     "⬇️⬇️ 급하강",
	"notComputable":  "❓ 계산 불가",
	"rateOutOfRange": "⚠️ 범위 초과",
}

// FormatEGVs renders EGV data as a Korean markdown table, newest records
// first as returned by the API, showing at most limit rows.
func FormatEGVs(egvs *EGVResponse, limit int) string {
	if egvs == nil || len(egvs.Records) == 0 {
		return "📊 데이터가 없습니다."
	}
	if limit <= 0 {
		limit = 5
	}

	var b strings.Builder
	b.WriteString("### 🩸 Dexcom CGM 데이터 (Developer API)\n\n")
	b.WriteString("| 시간 | 혈당 (mg/dL) | 추세 |\n")
	b.WriteString("|------|-------------|------|\n")

	shown := egvs.Records
	if len(shown) > limit {
		shown = shown[:limit]
	}
	for _, r := range shown {
		value := "N/A"
		if r.Value != nil {
			value = fmt.Sprintf("%d", *r.Value)
		}
		trend := r.Trend
		if display, ok := trendDisplay[trend]; ok {
			trend = display
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", shortTime(r.SystemTime), value, trend)
	}

	if len(egvs.Records) > limit {
		fmt.Fprintf(&b, "\n_총 %d개의 기록 중 %d개만 표시_\n", len(egvs.Records), limit)
	}
	return b.String()
}

// shortTime reduces an ISO timestamp to HH:MM, falling back to a prefix of
// the raw string when it does not parse.
func shortTime(iso string) string {
	if iso == "" {
		return "N/A"
	}
	for _, layout := range []string{time.RFC3339, dexcomTimeLayout} {
		if t, err := time.Parse(layout, iso); err == nil {
			return t.Format("15:04")
		}
	}
	if len(iso) > 16 {
		return iso[:16]
	}
	return iso
}
