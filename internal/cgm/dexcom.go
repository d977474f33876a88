// Package cgm provides clients for continuous glucose monitor data sources:
// the official Dexcom Developer API (OAuth 2.0, retrospective data, sandbox
// support) and self-hosted Nightscout instances.
package cgm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	dexcomSandboxBaseURL    = "https://sandbox-api.dexcom.com"
	dexcomProductionBaseURL = "https://api.dexcom.com"

	// Dexcom date parameters use ISO 8601 without a zone suffix.
	dexcomTimeLayout = "2006-01-02T15:04:05"

	defaultHTTPTimeout = 10 * time.Second
)

// SandboxUsers lists the test accounts available in the Dexcom sandbox.
// SandboxUser1-6 carry G6 data, SandboxUser7 carries G7 data.
var SandboxUsers = []string{
	"SandboxUser1", "SandboxUser2", "SandboxUser3", "SandboxUser4",
	"SandboxUser5", "SandboxUser6", "SandboxUser7",
}

// DexcomClient talks to the Dexcom Developer API. Unlike the Share API it
// requires OAuth 2.0 and returns retrospective (not real-time) data.
//
// BaseURL is set from the sandbox flag at construction and may be
// overridden before first use.
type DexcomClient struct {
	BaseURL string

	clientID     string
	clientSecret string
	redirectURI  string
	http         *http.Client
}

// NewDexcomClient creates a Dexcom Developer API client. When sandbox is
// true, requests go to the sandbox environment where test users are
// selected from a dropdown instead of logging in.
func NewDexcomClient(clientID, clientSecret, redirectURI string, sandbox bool) *DexcomClient {
	base := dexcomProductionBaseURL
	if sandbox {
		base = dexcomSandboxBaseURL
	}
	return &DexcomClient{
		BaseURL:      base,
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		http:         &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// Configured reports whether OAuth credentials are present.
func (c *DexcomClient) Configured() bool {
	return c.clientID != "" && c.clientSecret != ""
}

// AuthorizationURL builds the OAuth login URL to redirect the user to.
// state is the CSRF protection parameter echoed back on the callback.
func (c *DexcomClient) AuthorizationURL(state string) string {
	q := url.Values{}
	q.Set("client_id", c.clientID)
	q.Set("redirect_uri", c.redirectURI)
	q.Set("response_type", "code")
	q.Set("scope", "offline_access")
	q.Set("state", state)
	return c.BaseURL + "/v2/oauth2/login?" + q.Encode()
}

// TokenResponse is the OAuth token endpoint response.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// ExchangeCode trades an authorization code from the OAuth callback for
// access and refresh tokens.
func (c *DexcomClient) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("code", code)
	form.Set("grant_type", "authorization_code")
	form.Set("redirect_uri", c.redirectURI)
	return c.postToken(ctx, form)
}

// RefreshToken trades a refresh token for a new token pair.
func (c *DexcomClient) RefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("refresh_token", refreshToken)
	form.Set("grant_type", "refresh_token")
	return c.postToken(ctx, form)
}

func (c *DexcomClient) postToken(ctx context.Context, form url.Values) (*TokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/v2/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var token TokenResponse
	if err := c.do(req, &token); err != nil {
		return nil, fmt.Errorf("dexcom token request failed: %w", err)
	}
	return &token, nil
}

// EGVRecord is one Estimated Glucose Value.
type EGVRecord struct {
	SystemTime  string   `json:"systemTime"`
	DisplayTime string   `json:"displayTime"`
	Value       *int     `json:"value"`
	Trend       string   `json:"trend"`
	TrendRate   *float64 `json:"trendRate"`
	Unit        string   `json:"unit"`
}

// EGVResponse is the /v3/users/self/egvs payload.
type EGVResponse struct {
	RecordType string      `json:"recordType"`
	UserID     string      `json:"userId"`
	Records    []EGVRecord `json:"records"`
}

// EGVs fetches Estimated Glucose Values for the token's user. Zero start
// and end default to the last 24 hours.
func (c *DexcomClient) EGVs(ctx context.Context, accessToken string, start, end time.Time) (*EGVResponse, error) {
	var out EGVResponse
	if err := c.getRange(ctx, "/v3/users/self/egvs", accessToken, start, end, &out); err != nil {
		return nil, fmt.Errorf("dexcom egvs request failed: %w", err)
	}
	return &out, nil
}

// EventRecord is one logged event (insulin, carbs, exercise).
type EventRecord struct {
	SystemTime   string `json:"systemTime"`
	DisplayTime  string `json:"displayTime"`
	EventType    string `json:"eventType"`
	EventSubType string `json:"eventSubType"`
	Value        string `json:"value"`
	Unit         string `json:"unit"`
}

// EventsResponse is the /v3/users/self/events payload.
type EventsResponse struct {
	RecordType string        `json:"recordType"`
	UserID     string        `json:"userId"`
	Records    []EventRecord `json:"records"`
}

// Events fetches logged events for the token's user. Zero start and end
// default to the last 24 hours.
func (c *DexcomClient) Events(ctx context.Context, accessToken string, start, end time.Time) (*EventsResponse, error) {
	var out EventsResponse
	if err := c.getRange(ctx, "/v3/users/self/events", accessToken, start, end, &out); err != nil {
		return nil, fmt.Errorf("dexcom events request failed: %w", err)
	}
	return &out, nil
}

// DataRange describes the span of data available for a user.
type DataRange struct {
	Calibrations *DataRangeSpan `json:"calibrations,omitempty"`
	EGVs         *DataRangeSpan `json:"egvs,omitempty"`
	Events       *DataRangeSpan `json:"events,omitempty"`
}

type DataRangeSpan struct {
	Start DataRangeTime `json:"start"`
	End   DataRangeTime `json:"end"`
}

type DataRangeTime struct {
	SystemTime  string `json:"systemTime"`
	DisplayTime string `json:"displayTime"`
}

// DataRangeFor fetches the available data range for the token's user.
func (c *DexcomClient) DataRangeFor(ctx context.Context, accessToken string) (*DataRange, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.BaseURL+"/v3/users/self/dataRange", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	var out DataRange
	if err := c.do(req, &out); err != nil {
		return nil, fmt.Errorf("dexcom dataRange request failed: %w", err)
	}
	return &out, nil
}

func (c *DexcomClient) getRange(ctx context.Context, path, accessToken string, start, end time.Time, out any) error {
	if end.IsZero() {
		end = time.Now().UTC()
	}
	if start.IsZero() {
		start = end.Add(-24 * time.Hour)
	}

	q := url.Values{}
	q.Set("startDate", start.Format(dexcomTimeLayout))
	q.Set("endDate", end.Format(dexcomTimeLayout))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.BaseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	return c.do(req, out)
}

func (c *DexcomClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
