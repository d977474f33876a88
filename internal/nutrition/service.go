package nutrition

import (
	"context"
	"fmt"
)

// Service answers food carbohydrate questions on top of a Repository.
type Service struct {
	repo Repository
}

// NewService creates a nutrition service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Search looks up a food by free-form query.
func (s *Service) Search(ctx context.Context, query string) (*Food, bool, error) {
	return s.repo.Search(ctx, query)
}

// SearchMarkdown looks up a food and renders the answer as Korean markdown
// for LLM consumption. Unknown foods produce a not-found message rather
// than an error.
func (s *Service) SearchMarkdown(ctx context.Context, query string) (string, error) {
	food, ok, err := s.repo.Search(ctx, query)
	if err != nil {
		return "", err
	}
	if !ok {
		return fmt.Sprintf("'%s'에 대한 영양 정보를 찾을 수 없습니다.", query), nil
	}
	return fmt.Sprintf("### 🍎 %s\n- **탄수화물**: %dg (%s)\n- **참고**: %s",
		food.Name, food.CarbsGrams, food.ServingUnit, food.Description), nil
}

// List returns the full food table.
func (s *Service) List(ctx context.Context) ([]Food, error) {
	return s.repo.List(ctx)
}
