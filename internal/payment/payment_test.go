// AngelaMos | 2026
// payment_test.go

package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/metro-bond/internal/core"
	"github.com/carterperez-dev/metro-bond/internal/middleware"
)

const testMinAmount = 500

type fakeGateway struct {
	calls  int
	amount int64
	err    error
}

func (g *fakeGateway) CreateIntent(_ context.Context, amount int64) (string, error) {
	g.calls++
	g.amount = amount
	if g.err != nil {
		return "", g.err
	}
	return fmt.Sprintf("pi_test_secret_%d", amount), nil
}

type fakeRepo struct {
	payments  map[string]*Payment
	updateErr error
	updated   map[string]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		payments: map[string]*Payment{},
		updated:  map[string]string{},
	}
}

func (f *fakeRepo) Create(_ context.Context, p *Payment) error {
	p.ID = fmt.Sprintf("00000000-0000-0000-0000-%012d", len(f.payments)+1)
	cp := *p
	f.payments[p.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, fmt.Errorf("get payment: %w", core.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) ListByEmail(_ context.Context, email string) ([]Payment, error) {
	out := []Payment{}
	for _, p := range f.payments {
		if p.Email == email {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeRepo) List(context.Context) ([]Payment, error) {
	out := []Payment{}
	for _, p := range f.payments {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeRepo) UpdateStatusAndPromote(_ context.Context, id, status string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated[id] = status
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.payments[id]; !ok {
		return core.ErrNotFound
	}
	delete(f.payments, id)
	return nil
}

func (f *fakeRepo) DeleteOwned(_ context.Context, id, email string) error {
	p, ok := f.payments[id]
	if !ok || p.Email != email {
		return core.ErrNotFound
	}
	delete(f.payments, id)
	return nil
}

func (f *fakeRepo) Count(context.Context) (int64, error) {
	return int64(len(f.payments)), nil
}

func (f *fakeRepo) SumAmounts(context.Context) (int64, error) {
	var total int64
	for _, p := range f.payments {
		total += p.Amount
	}
	return total, nil
}

func passThrough(next http.Handler) http.Handler { return next }

// asUser stands in for the token verifier.
func asUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email := r.Header.Get("X-Test-Email")
		if email == "" {
			core.Unauthorized(w, "")
			return
		}
		ctx := middleware.WithClaims(r.Context(), &middleware.AccessTokenClaims{Email: email})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func newTestRouter(repo Repository, gw Gateway) http.Handler {
	r := chi.NewRouter()
	NewHandler(NewService(repo, gw, testMinAmount)).RegisterRoutes(r, Guards{
		Authenticator: asUser,
		AdminOnly:     passThrough,
	})
	return r
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{raw: "500", want: 500},
		{raw: "1200", want: 1200},
		{raw: "1e3", want: 1000},
		{raw: "499", wantErr: true},
		{raw: "-1", wantErr: true},
		{raw: "500.5", wantErr: true},
		{raw: "abc", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseAmount(json.Number(tt.raw), testMinAmount)
			if tt.wantErr {
				if !errors.Is(err, core.ErrInvalidInput) {
					t.Fatalf("error = %v, want ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("amount = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCreateIntent(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCalls  int
	}{
		{name: "below minimum", body: `{"amount":499}`, wantStatus: http.StatusBadRequest},
		{name: "at minimum", body: `{"amount":500}`, wantStatus: http.StatusOK, wantCalls: 1},
		{name: "numeric string", body: `{"amount":"750"}`, wantStatus: http.StatusOK, wantCalls: 1},
		{name: "not a number", body: `{"amount":"five"}`, wantStatus: http.StatusBadRequest},
		{name: "missing", body: `{}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{}
			router := newTestRouter(newFakeRepo(), gw)

			req := httptest.NewRequest(
				http.MethodPost,
				"/create-payment-intent",
				strings.NewReader(tt.body),
			)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if gw.calls != tt.wantCalls {
				t.Errorf("gateway calls = %d, want %d", gw.calls, tt.wantCalls)
			}

			if tt.wantStatus == http.StatusOK {
				var resp IntentResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if resp.ClientSecret == "" {
					t.Error("empty client secret")
				}
			}
		})
	}
}

func TestCreateIntentProviderFailure(t *testing.T) {
	gw := &fakeGateway{err: fmt.Errorf("stripe request: %w", core.ErrProviderError)}
	router := newTestRouter(newFakeRepo(), gw)

	req := httptest.NewRequest(
		http.MethodPost,
		"/create-payment-intent",
		strings.NewReader(`{"amount":900}`),
	)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestRecordDefaultsToPending(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeGateway{}, testMinAmount)

	p, err := svc.Record(context.Background(), CreatePaymentRequest{
		Email:         "Buyer@Example.com",
		Amount:        1500,
		TransactionID: "pi_123",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if p.Status != StatusPending {
		t.Errorf("status = %q, want %q", p.Status, StatusPending)
	}
	if p.Email != "buyer@example.com" {
		t.Errorf("email = %q", p.Email)
	}
}

func TestUpdateStatusErrors(t *testing.T) {
	const id = "00000000-0000-0000-0000-000000000001"

	tests := []struct {
		name       string
		repoErr    error
		wantStatus int
	}{
		{name: "updated", wantStatus: http.StatusOK},
		{name: "payment missing", repoErr: fmt.Errorf("update payment status: %w", core.ErrNotFound), wantStatus: http.StatusNotFound},
		{name: "biodata missing", repoErr: fmt.Errorf("update payment status: %w", ErrBiodataMissing), wantStatus: http.StatusNotFound},
		{name: "store failure", repoErr: errors.New("connection reset"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			repo.updateErr = tt.repoErr
			router := newTestRouter(repo, &fakeGateway{})

			req := httptest.NewRequest(
				http.MethodPatch,
				"/payment-data/"+id,
				strings.NewReader(`{"status":"approved"}`),
			)
			req.Header.Set("X-Test-Email", "admin@example.com")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.repoErr == nil && repo.updated[id] != "approved" {
				t.Errorf("status not stored: %v", repo.updated)
			}
		})
	}
}

func TestPaymentsSelfOnly(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, &fakeGateway{}, testMinAmount)
	p, err := svc.Record(context.Background(), CreatePaymentRequest{
		Email:         "owner@example.com",
		Amount:        700,
		TransactionID: "pi_1",
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	router := newTestRouter(repo, &fakeGateway{})

	tests := []struct {
		name       string
		method     string
		path       string
		caller     string
		wantStatus int
	}{
		{name: "own history", method: http.MethodGet, path: "/payments/owner@example.com", caller: "owner@example.com", wantStatus: http.StatusOK},
		{name: "foreign history", method: http.MethodGet, path: "/payments/owner@example.com", caller: "other@example.com", wantStatus: http.StatusForbidden},
		{name: "own contact list", method: http.MethodGet, path: "/contact/owner@example.com", caller: "owner@example.com", wantStatus: http.StatusOK},
		{name: "foreign payment", method: http.MethodGet, path: "/payment/" + p.ID, caller: "other@example.com", wantStatus: http.StatusForbidden},
		{name: "own payment", method: http.MethodGet, path: "/payment/" + p.ID, caller: "owner@example.com", wantStatus: http.StatusOK},
		{name: "foreign contact delete", method: http.MethodDelete, path: "/contact/" + p.ID, caller: "other@example.com", wantStatus: http.StatusNotFound},
		{name: "own contact delete", method: http.MethodDelete, path: "/contact/" + p.ID, caller: "owner@example.com", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("X-Test-Email", tt.caller)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}
