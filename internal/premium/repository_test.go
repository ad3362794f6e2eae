// AngelaMos | 2026
// repository_test.go

package premium

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carterperez-dev/metro-bond/internal/biodata"
	"github.com/carterperez-dev/metro-bond/internal/core"
	"github.com/carterperez-dev/metro-bond/internal/dbtest"
)

const (
	requestID       = "7a0e2c4b-1d3f-4e5a-9b6c-8d7e6f5a4b3c"
	biodataRecordID = "2f4e6a8c-0b1d-4c3e-8f5a-7b9c1d3e5f70"
)

func TestCreateDuplicateMapsToDuplicateRequest(t *testing.T) {
	db, mock := dbtest.Mock(t)

	mock.ExpectQuery(`INSERT INTO premium_requests`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	r := chi.NewRouter()
	NewHandler(NewRepository(db)).RegisterRoutes(r, asUser, passThrough)

	req := httptest.NewRequest(http.MethodPost, "/premiumRequest",
		strings.NewReader(`{"biodataId":7}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var body core.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "DUPLICATE_REQUEST" {
		t.Errorf("code = %q, want DUPLICATE_REQUEST", body.Error.Code)
	}
}

func TestUpdateStatusTransaction(t *testing.T) {
	tests := []struct {
		name    string
		status  string
		flipped int64
		promote bool
		wantErr error
	}{
		{name: "pending leaves biodata alone", status: "pending"},
		{name: "approval promotes", status: "Approved", promote: true, flipped: 1},
		{name: "approval of missing biodata rolls back", status: "approved", promote: true, flipped: 0, wantErr: biodata.ErrBiodataNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := dbtest.Mock(t)
			repo := NewRepository(db)

			mock.ExpectBegin()
			mock.ExpectQuery(`UPDATE premium_requests SET status`).
				WithArgs(requestID, tt.status).
				WillReturnRows(sqlmock.NewRows([]string{"biodata_id"}).AddRow(int64(9)))
			if tt.promote {
				mock.ExpectExec(`UPDATE biodata SET is_premium`).
					WithArgs(int64(9), true).
					WillReturnResult(sqlmock.NewResult(0, tt.flipped))
			}
			if tt.wantErr == nil {
				mock.ExpectCommit()
			} else {
				mock.ExpectRollback()
			}

			err := repo.UpdateStatus(context.Background(), requestID, tt.status)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRevokeBiodata(t *testing.T) {
	t.Run("clears request", func(t *testing.T) {
		db, mock := dbtest.Mock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE biodata SET is_premium = FALSE`).
			WithArgs(biodataRecordID).
			WillReturnRows(sqlmock.NewRows([]string{"biodata_id"}).AddRow(int64(5)))
		mock.ExpectExec(`DELETE FROM premium_requests WHERE biodata_id`).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		if err := NewRepository(db).RevokeBiodata(context.Background(), biodataRecordID); err != nil {
			t.Fatalf("revoke: %v", err)
		}
	})

	t.Run("missing biodata rolls back", func(t *testing.T) {
		db, mock := dbtest.Mock(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE biodata SET is_premium = FALSE`).
			WithArgs(biodataRecordID).
			WillReturnRows(sqlmock.NewRows([]string{"biodata_id"}))
		mock.ExpectRollback()

		err := NewRepository(db).RevokeBiodata(context.Background(), biodataRecordID)
		if !errors.Is(err, biodata.ErrBiodataNotFound) {
			t.Fatalf("err = %v, want biodata not found", err)
		}
	})
}

func TestPremiumRepositoryAgainstPostgres(t *testing.T) {
	db := dbtest.Postgres(t)
	repo := NewRepository(db)
	ctx := context.Background()

	first := &Request{BiodataID: 7, Email: "a@example.com", Status: StatusPending}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}

	dup := &Request{BiodataID: 7, Email: "b@example.com", Status: StatusPending}
	if err := repo.Create(ctx, dup); !errors.Is(err, core.ErrDuplicateKey) {
		t.Fatalf("duplicate err = %v, want duplicate key", err)
	}

	err := repo.UpdateStatus(ctx, first.ID, StatusApproved)
	if !errors.Is(err, biodata.ErrBiodataNotFound) {
		t.Fatalf("approve without biodata = %v, want biodata not found", err)
	}

	requests, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(requests) != 1 || requests[0].Status != StatusPending {
		t.Errorf("requests = %+v, want one pending after rollback", requests)
	}
}
