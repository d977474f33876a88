package cgm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// NightscoutClient fetches glucose entries from a self-hosted Nightscout
// instance.
type NightscoutClient struct {
	baseURL string
	secret  string
	http    *http.Client
}

// NewNightscoutClient creates a Nightscout client. secret may be empty for
// open instances; when set it is sent in the api-secret header.
func NewNightscoutClient(baseURL, secret string) *NightscoutClient {
	return &NightscoutClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  secret,
		http:    &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// Configured reports whether a Nightscout URL is present.
func (c *NightscoutClient) Configured() bool {
	return c.baseURL != ""
}

// SGVEntry is one sensor glucose value from /api/v1/entries.json. Entries
// without an sgv field (calibrations, device events) are filtered out.
type SGVEntry struct {
	SGV        int     `json:"sgv"`
	Direction  string  `json:"direction"`
	DateString string  `json:"dateString"`
	Delta      float64 `json:"delta"`
}

// SGV fetches the most recent sensor glucose values, newest first.
func (c *NightscoutClient) SGV(ctx context.Context, count int) ([]SGVEntry, error) {
	if count <= 0 {
		count = 1
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/v1/entries.json?count="+strconv.Itoa(count), nil)
	if err != nil {
		return nil, err
	}
	if c.secret != "" {
		req.Header.Set("api-secret", c.secret)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data from Nightscout: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read Nightscout response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("nightscout returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var raw []struct {
		SGV        *int    `json:"sgv"`
		Direction  *string `json:"direction"`
		DateString string  `json:"dateString"`
		Delta      float64 `json:"delta"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode Nightscout response: %w", err)
	}

	entries := make([]SGVEntry, 0, len(raw))
	for _, item := range raw {
		if item.SGV == nil {
			continue
		}
		entry := SGVEntry{
			SGV:        *item.SGV,
			Direction:  "NONE",
			DateString: item.DateString,
			Delta:      item.Delta,
		}
		if item.Direction != nil {
			entry.Direction = *item.Direction
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// FormatSGV renders Nightscout entries as a Korean markdown table.
func FormatSGV(entries []SGVEntry) string {
	if len(entries) == 0 {
		return "📊 데이터가 없습니다."
	}

	var b strings.Builder
	b.WriteString("### 🩸 Nightscout CGM 데이터\n\n")
	b.WriteString("| 시간 | 혈당 (mg/dL) | 방향 | 변화량 |\n")
	b.WriteString("|------|-------------|------|--------|\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "| %s | %d | %s | %+.1f |\n",
			shortTime(e.DateString), e.SGV, e.Direction, e.Delta)
	}
	return b.String()
}
