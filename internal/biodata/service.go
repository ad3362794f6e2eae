// AngelaMos | 2026
// service.go

package biodata

import (
	"context"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Biodata, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id string) (*Biodata, error) {
	return s.repo.GetByID(ctx, id)
}

// Save creates or overwrites the caller's biodata. inserted reports which
// of the two happened.
func (s *Service) Save(
	ctx context.Context,
	req UpsertBiodataRequest,
) (b *Biodata, inserted bool, err error) {
	b = req.toEntity()

	inserted, err = s.repo.Upsert(ctx, b)
	if err != nil {
		return nil, false, err
	}

	return b, inserted, nil
}

func (s *Service) LastBiodataID(ctx context.Context) (int64, error) {
	return s.repo.LastBiodataID(ctx)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *Service) CountByType(ctx context.Context) (TypeCounts, error) {
	return s.repo.CountByType(ctx)
}
