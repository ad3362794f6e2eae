// AngelaMos | 2026
// handler_test.go

package premium

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/metro-bond/internal/biodata"
	"github.com/carterperez-dev/metro-bond/internal/core"
	"github.com/carterperez-dev/metro-bond/internal/middleware"
)

// orphanBiodataID names a biodata that no longer exists.
const orphanBiodataID = 404

type memRepo struct {
	byBiodata map[int64]*Request
	revoked   []string
}

func newMemRepo() *memRepo {
	return &memRepo{byBiodata: map[int64]*Request{}}
}

func (m *memRepo) Create(_ context.Context, req *Request) error {
	if _, ok := m.byBiodata[req.BiodataID]; ok {
		return fmt.Errorf("create premium request: %w", core.ErrDuplicateKey)
	}
	req.ID = fmt.Sprintf("00000000-0000-0000-0000-%012d", req.BiodataID)
	cp := *req
	m.byBiodata[req.BiodataID] = &cp
	return nil
}

func (m *memRepo) List(context.Context) ([]Request, error) {
	out := []Request{}
	for _, req := range m.byBiodata {
		out = append(out, *req)
	}
	return out, nil
}

func (m *memRepo) find(id string) *Request {
	for _, req := range m.byBiodata {
		if req.ID == id {
			return req
		}
	}
	return nil
}

func (m *memRepo) UpdateStatus(_ context.Context, id, status string) error {
	req := m.find(id)
	if req == nil {
		return fmt.Errorf("update premium request: %w", core.ErrNotFound)
	}
	if strings.EqualFold(status, StatusApproved) && req.BiodataID == orphanBiodataID {
		return fmt.Errorf("update premium request: %w",
			fmt.Errorf("set biodata premium: %w", biodata.ErrBiodataNotFound))
	}
	req.Status = status
	return nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	req := m.find(id)
	if req == nil {
		return fmt.Errorf("delete premium request: %w", core.ErrNotFound)
	}
	delete(m.byBiodata, req.BiodataID)
	return nil
}

func (m *memRepo) RevokeBiodata(_ context.Context, id string) error {
	m.revoked = append(m.revoked, id)
	return nil
}

func asUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := middleware.WithClaims(r.Context(), &middleware.AccessTokenClaims{
			Email: "Member@Example.com",
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func passThrough(next http.Handler) http.Handler { return next }

func TestCreatePremiumRequest(t *testing.T) {
	repo := newMemRepo()
	r := chi.NewRouter()
	NewHandler(repo).RegisterRoutes(r, asUser, passThrough)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/premiumRequest", strings.NewReader(body))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	first := post(`{"biodataId":7,"name":"Tania"}`)
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d, body = %s", first.Code, first.Body.String())
	}

	stored := repo.byBiodata[7]
	if stored == nil {
		t.Fatal("request not stored")
	}
	if stored.Status != StatusPending {
		t.Errorf("status = %q, want pending", stored.Status)
	}
	if stored.Email != "member@example.com" {
		t.Errorf("email = %q, want caller email", stored.Email)
	}

	dup := post(`{"biodataId":7,"name":"Tania"}`)
	if dup.Code != http.StatusBadRequest {
		t.Fatalf("duplicate status = %d, want 400", dup.Code)
	}

	var body core.ErrorResponse
	if err := json.Unmarshal(dup.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "DUPLICATE_REQUEST" {
		t.Errorf("code = %q, want DUPLICATE_REQUEST", body.Error.Code)
	}

	other := post(`{"biodataId":8}`)
	if other.Code != http.StatusOK {
		t.Errorf("new biodata status = %d, want 200", other.Code)
	}
}

func TestPremiumAdminRoutes(t *testing.T) {
	repo := newMemRepo()
	if err := repo.Create(context.Background(), &Request{BiodataID: 3, Status: StatusPending}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	id := repo.byBiodata[3].ID

	r := chi.NewRouter()
	NewHandler(repo).RegisterRoutes(r, asUser, passThrough)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{name: "approve", method: http.MethodPatch, path: "/premiumRequest/" + id, body: `{"status":"approved"}`, wantStatus: http.StatusOK},
		{name: "approve missing", method: http.MethodPatch, path: "/premiumRequest/00000000-0000-0000-0000-000000000404", body: `{"status":"approved"}`, wantStatus: http.StatusNotFound},
		{name: "empty status", method: http.MethodPatch, path: "/premiumRequest/" + id, body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "list", method: http.MethodGet, path: "/premiumRequest", wantStatus: http.StatusOK},
		{name: "revoke", method: http.MethodDelete, path: "/premium/00000000-0000-0000-0000-0000000000aa", wantStatus: http.StatusOK},
		{name: "delete", method: http.MethodDelete, path: "/premiumRequest/" + id, wantStatus: http.StatusOK},
		{name: "delete again", method: http.MethodDelete, path: "/premiumRequest/" + id, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}

	if len(repo.revoked) != 1 {
		t.Errorf("revocations = %d, want 1", len(repo.revoked))
	}
}

func TestApproveRequestWithMissingBiodata(t *testing.T) {
	repo := newMemRepo()
	if err := repo.Create(context.Background(), &Request{BiodataID: orphanBiodataID, Status: StatusPending}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	r := chi.NewRouter()
	NewHandler(repo).RegisterRoutes(r, asUser, passThrough)

	req := httptest.NewRequest(http.MethodPatch,
		"/premiumRequest/"+repo.byBiodata[orphanBiodataID].ID,
		strings.NewReader(`{"status":"Approved"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var body core.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Message != "biodata not found" {
		t.Errorf("message = %q, want biodata not found", body.Error.Message)
	}
}
