// Package community searches Korean community content (blogs, web pages)
// for diabetes management experience. Results come from the Naver blog
// search and Kakao web search APIs and are merged into one list.
package community

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	naverBlogSearchURL = "https://openapi.naver.com/v1/search/blog.json"
	kakaoWebSearchURL  = "https://dapi.kakao.com/v2/search/web"

	defaultResultCount = 3
	searchHTTPTimeout  = 10 * time.Second
)

// Result is one community search hit.
type Result struct {
	Title  string `json:"title"`
	Link   string `json:"link"`
	Source string `json:"source"`
}

// Client queries the Naver and Kakao search APIs. Providers whose
// credentials are absent contribute no results; provider faults are logged
// and likewise contribute no results, so a search never fails outright.
//
// NaverURL and KakaoURL default to the public endpoints and may be
// overridden before first use.
type Client struct {
	NaverURL string
	KakaoURL string

	naverClientID     string
	naverClientSecret string
	kakaoAPIKey       string
	resultCount       int
	http              *http.Client
}

// NewClient creates a search client. resultCount is the per-provider result
// limit; zero selects the default of 3.
func NewClient(naverClientID, naverClientSecret, kakaoAPIKey string, resultCount int) *Client {
	if resultCount <= 0 {
		resultCount = defaultResultCount
	}
	return &Client{
		NaverURL:          naverBlogSearchURL,
		KakaoURL:          kakaoWebSearchURL,
		naverClientID:     naverClientID,
		naverClientSecret: naverClientSecret,
		kakaoAPIKey:       kakaoAPIKey,
		resultCount:       resultCount,
		http:              &http.Client{Timeout: searchHTTPTimeout},
	}
}

// SearchNaverBlog queries the Naver blog search API, relevance-sorted.
// Returns nil without error when credentials are missing.
func (c *Client) SearchNaverBlog(ctx context.Context, query string) ([]Result, error) {
	if c.naverClientID == "" || c.naverClientSecret == "" {
		return nil, nil
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("display", strconv.Itoa(c.resultCount))
	q.Set("sort", "sim")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.NaverURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Naver-Client-Id", c.naverClientID)
	req.Header.Set("X-Naver-Client-Secret", c.naverClientSecret)

	var payload struct {
		Items []struct {
			Title string `json:"title"`
			Link  string `json:"link"`
		} `json:"items"`
	}
	if err := c.get(req, &payload); err != nil {
		return nil, fmt.Errorf("naver blog search failed: %w", err)
	}

	results := make([]Result, 0, len(payload.Items))
	for _, item := range payload.Items {
		results = append(results, Result{Title: item.Title, Link: item.Link, Source: "Naver Blog"})
	}
	return results, nil
}

// SearchKakaoWeb queries the Kakao web search API. Returns nil without
// error when the API key is missing.
func (c *Client) SearchKakaoWeb(ctx context.Context, query string) ([]Result, error) {
	if c.kakaoAPIKey == "" {
		return nil, nil
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("size", strconv.Itoa(c.resultCount))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.KakaoURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "KakaoAK "+c.kakaoAPIKey)

	var payload struct {
		Documents []struct {
			Title string `json:"title"`
			URL   string `json:"url"`
		} `json:"documents"`
	}
	if err := c.get(req, &payload); err != nil {
		return nil, fmt.Errorf("kakao web search failed: %w", err)
	}

	results := make([]Result, 0, len(payload.Documents))
	for _, doc := range payload.Documents {
		results = append(results, Result{Title: doc.Title, Link: doc.URL, Source: "Kakao Web"})
	}
	return results, nil
}

// SearchHybrid queries both providers concurrently and concatenates their
// results, Naver first. A failing provider is logged and contributes no
// results; the error is never surfaced to the caller.
func (c *Client) SearchHybrid(ctx context.Context, query string) ([]Result, error) {
	var naver, kakao []Result

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		results, err := c.SearchNaverBlog(ctx, query)
		if err != nil {
			log.Printf("[CommunitySearch] Naver error: %v", err)
			return nil
		}
		naver = results
		return nil
	})
	g.Go(func() error {
		results, err := c.SearchKakaoWeb(ctx, query)
		if err != nil {
			log.Printf("[CommunitySearch] Kakao error: %v", err)
			return nil
		}
		kakao = results
		return nil
	})
	_ = g.Wait() // provider errors are swallowed above

	return append(naver, kakao...), nil
}

func (c *Client) get(req *http.Request, out any) error {
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
