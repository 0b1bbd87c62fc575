package service

import (
	"context"

	"propfinder/internal/model"
	"propfinder/internal/store"
)

// SearchService answers property search queries over the merged record set.
type SearchService struct {
	loader *store.Loader
}

// NewSearchService creates a new search service
func NewSearchService(loader *store.Loader) *SearchService {
	return &SearchService{loader: loader}
}

// Search filters, sorts and paginates the merged records per the query.
func (s *SearchService) Search(ctx context.Context, query *model.QuerySpec) (*model.SearchResponse, error) {
	records, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	filtered := ApplyFilters(records, query)
	paged := Paginate(filtered, query.Page, query.PageSize)

	return &model.SearchResponse{
		Total:    len(filtered),
		Page:     query.Page,
		PageSize: query.PageSize,
		Results:  paged,
	}, nil
}

// GetProperty retrieves a single merged record by id.
func (s *SearchService) GetProperty(ctx context.Context, id string) (*model.PropertyRecord, error) {
	return s.loader.GetByID(ctx, id)
}

// GetByIDs returns the records for the given ids, skipping unknown ones and
// preserving the requested order.
func (s *SearchService) GetByIDs(ctx context.Context, ids []string) ([]model.PropertyRecord, error) {
	records, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]model.PropertyRecord, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}

	results := make([]model.PropertyRecord, 0, len(ids))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			results = append(results, r)
		}
	}
	return results, nil
}

// Records exposes the full merged record set.
func (s *SearchService) Records(ctx context.Context) ([]model.PropertyRecord, error) {
	return s.loader.Load(ctx)
}

// Reload forces a recompute of the merged records.
func (s *SearchService) Reload(ctx context.Context) (int, error) {
	records, err := s.loader.Reload(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}
