package cache

import (
	"regexp"
	"strings"
)

// koreanParticles lists the grammatical particles stripped during query
// normalization. Order matters: compound particles must come before the
// single-character ones so the alternation matches them first.
// Note: "서" is excluded on purpose - it ends common nouns ("센서", "선서").
var koreanParticles = []string{
	// compound particles
	"에서는", "에서도", "으로는", "으로도", "에로", "으로",
	"에서", "하기", "처럼", "보다", "까지", "부터", "마저", "조차",
	// single particles (ones overlapping common word endings excluded)
	"을", "를", "이", "가", "은", "는", "의", "에", "로", "와", "과",
	"도", "만",
}

// particlePattern matches a particle only when it sits at a token boundary.
// RE2 has no lookahead, so the boundary (whitespace or end of string) is
// captured and restored in the replacement.
var particlePattern = regexp.MustCompile(
	"(?:" + strings.Join(koreanParticles, "|") + ")(\\s|$)",
)

// nonWordPattern matches characters outside word characters, whitespace and
// the Hangul syllable block. Each match is replaced with a space so that
// word boundaries are preserved rather than collapsed.
var nonWordPattern = regexp.MustCompile(`[^0-9A-Za-z_\s가-힣]`)

var multiSpacePattern = regexp.MustCompile(`\s+`)

// NormalizeQuery canonicalizes a search query so that linguistically similar
// queries produce the same cache key.
//
// Steps, in order:
//  1. lower-case
//  2. replace special characters with spaces
//  3. strip Korean particles at token boundaries
//  4. collapse whitespace runs
//  5. trim
//
// The function is pure: the same input always yields the same output.
//
//	NormalizeQuery("저혈당을 간식")  => "저혈당 간식"
//	NormalizeQuery("Type 1 Diabetes") => "type 1 diabetes"
//	NormalizeQuery("인슐린 계산하기")  => "인슐린 계산"
func NormalizeQuery(query string) string {
	if query == "" {
		return ""
	}

	result := strings.ToLower(query)
	result = nonWordPattern.ReplaceAllString(result, " ")
	result = particlePattern.ReplaceAllString(result, "$1")
	result = multiSpacePattern.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}
