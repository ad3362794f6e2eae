// AngelaMos | 2026
// stats_test.go

package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/metro-bond/internal/biodata"
)

type staticCounter struct {
	n   int64
	err error
}

func (c staticCounter) Count(context.Context) (int64, error) { return c.n, c.err }

type fakeBiodata struct {
	staticCounter
	types biodata.TypeCounts
}

func (f fakeBiodata) CountByType(context.Context) (biodata.TypeCounts, error) {
	return f.types, nil
}

type fakePayments struct {
	amounts []int64
}

func (f fakePayments) Count(context.Context) (int64, error) {
	return int64(len(f.amounts)), nil
}

func (f fakePayments) Revenue(context.Context) (int64, error) {
	var total int64
	for _, a := range f.amounts {
		total += a
	}
	return total, nil
}

func TestDashboardStats(t *testing.T) {
	tests := []struct {
		name        string
		amounts     []int64
		wantRevenue int64
	}{
		{name: "no payments", amounts: nil, wantRevenue: 0},
		{name: "sums amounts", amounts: []int64{500, 1500, 2500}, wantRevenue: 4500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewStatsService(
				staticCounter{n: 12},
				fakeBiodata{
					staticCounter: staticCounter{n: 9},
					types:         biodata.TypeCounts{Male: 5, Female: 3},
				},
				fakePayments{amounts: tt.amounts},
			)

			stats, err := svc.Dashboard(context.Background())
			if err != nil {
				t.Fatalf("dashboard: %v", err)
			}

			want := DashboardStats{
				Users:       12,
				Biodatas:    9,
				PremiumPay:  int64(len(tt.amounts)),
				Revenue:     tt.wantRevenue,
				MaleCount:   5,
				FemaleCount: 3,
			}
			if *stats != want {
				t.Errorf("stats = %+v, want %+v", *stats, want)
			}
		})
	}
}

func TestDashboardStatsFailure(t *testing.T) {
	boom := errors.New("db down")
	svc := NewStatsService(
		staticCounter{err: boom},
		fakeBiodata{},
		fakePayments{},
	)

	if _, err := svc.Dashboard(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("error = %v, want %v", err, boom)
	}
}

func TestDashboardStatsRoute(t *testing.T) {
	h := NewHandler(HandlerConfig{
		Stats: NewStatsService(
			staticCounter{n: 1},
			fakeBiodata{},
			fakePayments{},
		),
	})

	pass := func(next http.Handler) http.Handler { return next }
	r := chi.NewRouter()
	h.RegisterRoutes(r, pass, pass)

	req := httptest.NewRequest(http.MethodGet, "/admin-stats", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body map[string]int64
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"users", "biodatas", "premiumPay", "revenue", "maleCount", "femaleCount"} {
		if _, ok := body[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
	if body["revenue"] != 0 {
		t.Errorf("revenue = %d, want 0", body["revenue"])
	}
}
