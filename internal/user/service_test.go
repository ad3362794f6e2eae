// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/carterperez-dev/metro-bond/internal/core"
)

type fakeRepo struct {
	mu        sync.Mutex
	byEmail   map[string]*User
	raceEmail string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byEmail: map[string]*User{}}
}

func (f *fakeRepo) Create(_ context.Context, u *User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if u.Email == f.raceEmail {
		f.byEmail[u.Email] = &User{ID: "winner", Email: u.Email, Role: RoleUser}
		return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
	}
	cp := *u
	f.byEmail[u.Email] = &cp
	return nil
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) List(context.Context) ([]User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]User, 0, len(f.byEmail))
	for _, u := range f.byEmail {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeRepo) findByID(id string) *User {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (f *fakeRepo) SetRole(_ context.Context, id, role string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u := f.findByID(id)
	if u == nil {
		return core.ErrNotFound
	}
	u.Role = role
	return nil
}

func (f *fakeRepo) SetPremium(_ context.Context, id string, premium bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u := f.findByID(id)
	if u == nil {
		return core.ErrNotFound
	}
	u.IsPremium = premium
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u := f.findByID(id)
	if u == nil {
		return core.ErrNotFound
	}
	delete(f.byEmail, u.Email)
	return nil
}

func (f *fakeRepo) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.byEmail)), nil
}

func TestRegisterIsIdempotent(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	first, created, err := svc.Register(ctx, CreateUserRequest{
		Email: "Karim@Example.com",
		Name:  "Karim",
	})
	if err != nil {
		t.Fatalf("first register: %v", err)
	}
	if !created {
		t.Fatal("first register reported existing user")
	}
	if first.Email != "karim@example.com" {
		t.Errorf("email = %q, want lowercased", first.Email)
	}
	if first.Role != RoleUser {
		t.Errorf("role = %q, want %q", first.Role, RoleUser)
	}

	second, created, err := svc.Register(ctx, CreateUserRequest{
		Email: "karim@example.com",
	})
	if err != nil {
		t.Fatalf("second register: %v", err)
	}
	if created {
		t.Fatal("second register created a duplicate")
	}
	if second.ID != first.ID {
		t.Errorf("id = %q, want %q", second.ID, first.ID)
	}

	total, _ := svc.Count(ctx)
	if total != 1 {
		t.Errorf("count = %d, want 1", total)
	}
}

func TestRegisterLosesInsertRace(t *testing.T) {
	repo := newFakeRepo()
	repo.raceEmail = "race@example.com"
	svc := NewService(repo)

	u, created, err := svc.Register(context.Background(), CreateUserRequest{
		Email: "race@example.com",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created {
		t.Fatal("race loser reported created")
	}
	if u.ID != "winner" {
		t.Errorf("id = %q, want winner", u.ID)
	}
}

func TestRoleLookup(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	admin, _, err := svc.Register(ctx, CreateUserRequest{Email: "boss@example.com"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.MakeAdmin(ctx, admin.ID); err != nil {
		t.Fatalf("make admin: %v", err)
	}

	role, err := svc.GetRoleByEmail(ctx, "BOSS@example.com")
	if err != nil {
		t.Fatalf("get role: %v", err)
	}
	if role != RoleAdmin {
		t.Errorf("role = %q, want admin", role)
	}

	if _, err := svc.GetRoleByEmail(ctx, "ghost@example.com"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("unknown email error = %v, want ErrNotFound", err)
	}

	isAdmin, err := svc.IsAdmin(ctx, "ghost@example.com")
	if err != nil || isAdmin {
		t.Errorf("IsAdmin(unknown) = %v, %v; want false, nil", isAdmin, err)
	}

	if err := svc.MakeAdmin(ctx, "missing-id"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("make admin missing = %v, want ErrNotFound", err)
	}
}

func TestCreateUserHandlerDuplicate(t *testing.T) {
	h := NewHandler(NewService(newFakeRepo()))

	post := func() map[string]any {
		req := httptest.NewRequest(
			http.MethodPost,
			"/users",
			strings.NewReader(`{"email":"nadia@example.com","name":"Nadia"}`),
		)
		rec := httptest.NewRecorder()
		h.CreateUser(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}

		var body map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		return body
	}

	first := post()
	if id, _ := first["insertedId"].(string); id == "" {
		t.Fatalf("first insert has no id: %v", first)
	}

	second := post()
	if v, ok := second["insertedId"]; !ok || v != nil {
		t.Errorf("insertedId = %v, want null", v)
	}
	if second["message"] != msgUserExists {
		t.Errorf("message = %v", second["message"])
	}
}

func TestCreateUserHandlerValidation(t *testing.T) {
	h := NewHandler(NewService(newFakeRepo()))

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"email":`},
		{name: "missing email", body: `{"name":"x"}`},
		{name: "bad email", body: `{"email":"not-an-email"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.CreateUser(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}
