// AngelaMos | 2026
// stats.go

package admin

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/carterperez-dev/metro-bond/internal/biodata"
	"github.com/carterperez-dev/metro-bond/internal/core"
)

type Counter interface {
	Count(ctx context.Context) (int64, error)
}

type BiodataCounter interface {
	Counter
	CountByType(ctx context.Context) (biodata.TypeCounts, error)
}

type PaymentCounter interface {
	Counter
	Revenue(ctx context.Context) (int64, error)
}

// DashboardStats feeds the admin dashboard. Revenue is in minor units.
type DashboardStats struct {
	Users       int64 `json:"users"`
	Biodatas    int64 `json:"biodatas"`
	PremiumPay  int64 `json:"premiumPay"`
	Revenue     int64 `json:"revenue"`
	MaleCount   int64 `json:"maleCount"`
	FemaleCount int64 `json:"femaleCount"`
}

type StatsService struct {
	users    Counter
	biodata  BiodataCounter
	payments PaymentCounter
}

func NewStatsService(
	users Counter,
	biodata BiodataCounter,
	payments PaymentCounter,
) *StatsService {
	return &StatsService{
		users:    users,
		biodata:  biodata,
		payments: payments,
	}
}

// Dashboard runs the aggregate queries concurrently; the first failure
// cancels the rest.
func (s *StatsService) Dashboard(ctx context.Context) (_ *DashboardStats, err error) {
	ctx, span := core.StartSpan(ctx, "admin.dashboard_stats")
	defer func() { core.EndSpan(span, err) }()

	var stats DashboardStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.users.Count(gctx)
		stats.Users = n
		return err
	})

	g.Go(func() error {
		n, err := s.biodata.Count(gctx)
		stats.Biodatas = n
		return err
	})

	g.Go(func() error {
		counts, err := s.biodata.CountByType(gctx)
		stats.MaleCount = counts.Male
		stats.FemaleCount = counts.Female
		return err
	})

	g.Go(func() error {
		n, err := s.payments.Count(gctx)
		stats.PremiumPay = n
		return err
	})

	g.Go(func() error {
		n, err := s.payments.Revenue(gctx)
		stats.Revenue = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}

	span.SetAttributes(
		attribute.Int64("stats.users", stats.Users),
		attribute.Int64("stats.revenue", stats.Revenue),
	)

	return &stats, nil
}
