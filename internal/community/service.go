package community

import (
	"context"
	"fmt"
	"strings"
	"time"

	"t1d-manager-api/internal/cache"
)

// SearchNamespace prefixes every cached community search key, so the whole
// result set can be evicted at once with ClearNamespace.
const SearchNamespace = "t1d:search"

// DefaultSearchTTL keeps community results for 30 days. Experience posts
// age slowly; the admin cache-clear endpoint handles anything stale.
const DefaultSearchTTL = 30 * 24 * time.Hour

// Service answers community search queries through a query-normalizing
// result cache: variants like "저혈당을 간식" and "저혈당 간식" share one
// cached entry.
type Service struct {
	client *Client
	search func(ctx context.Context, query string) ([]Result, error)
}

// NewService creates a community search service backed by store. A zero ttl
// selects DefaultSearchTTL.
func NewService(client *Client, store cache.Store, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultSearchTTL
	}
	return &Service{
		client: client,
		search: cache.Wrap1(store, cache.Options{
			Namespace:        SearchNamespace,
			TTL:              ttl,
			NormalizeStrings: true,
		}, client.SearchHybrid),
	}
}

// Search returns merged community results for the query, served from cache
// when an equivalent query was answered before.
func (s *Service) Search(ctx context.Context, query string) ([]Result, error) {
	return s.search(ctx, query)
}

// SearchMarkdown renders search results as a Korean markdown list.
func (s *Service) SearchMarkdown(ctx context.Context, query string) (string, error) {
	results, err := s.search(ctx, query)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return fmt.Sprintf("'%s'에 대한 커뮤니티 검색 결과가 없습니다.", query), nil
	}

	var b strings.Builder
	b.WriteString("### 🔍 커뮤니티 검색 결과\n\n")
	for _, r := range results {
		fmt.Fprintf(&b, "- [%s](%s) _(%s)_\n", r.Title, r.Link, r.Source)
	}
	return b.String(), nil
}
