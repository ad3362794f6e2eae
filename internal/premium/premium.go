// AngelaMos | 2026
// premium.go

package premium

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/metro-bond/internal/biodata"
	"github.com/carterperez-dev/metro-bond/internal/core"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

// Request asks an admin to promote a biodata. At most one exists per
// biodata id.
type Request struct {
	ID        string    `db:"id"`
	BiodataID int64     `db:"biodata_id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type CreateRequest struct {
	BiodataID int64  `json:"biodataId" validate:"required,min=1"`
	Name      string `json:"name"      validate:"omitempty,max=100"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,max=50"`
}

type RequestResponse struct {
	ID        string    `json:"_id"`
	BiodataID int64     `json:"biodataId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ToRequestResponse(r *Request) RequestResponse {
	return RequestResponse{
		ID:        r.ID,
		BiodataID: r.BiodataID,
		Name:      r.Name,
		Email:     r.Email,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type Repository interface {
	Create(ctx context.Context, req *Request) error
	List(ctx context.Context) ([]Request, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	RevokeBiodata(ctx context.Context, biodataRecordID string) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, req *Request) error {
	req.ID = uuid.New().String()

	query := `
		INSERT INTO premium_requests (id, biodata_id, name, email, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		req.ID,
		req.BiodataID,
		req.Name,
		req.Email,
		req.Status,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create premium request: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create premium request: %w", err)
	}

	return nil
}

func (r *repository) List(ctx context.Context) ([]Request, error) {
	query := `
		SELECT id, biodata_id, name, email, status, created_at, updated_at
		FROM premium_requests
		ORDER BY created_at DESC`

	requests := []Request{}
	if err := r.db.SelectContext(ctx, &requests, query); err != nil {
		return nil, fmt.Errorf("list premium requests: %w", err)
	}

	return requests, nil
}

// UpdateStatus overwrites the status; an approval also promotes the
// biodata inside the same transaction.
func (r *repository) UpdateStatus(ctx context.Context, id, status string) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var biodataID int64
		err := tx.GetContext(ctx, &biodataID, `
			UPDATE premium_requests
			SET status = $2, updated_at = NOW()
			WHERE id = $1
			RETURNING biodata_id`, id, status)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("update premium request: %w", core.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("update premium request: %w", err)
		}

		if !strings.EqualFold(status, StatusApproved) {
			return nil
		}

		return biodata.SetPremiumByBiodataID(ctx, tx, biodataID, true)
	})
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM premium_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete premium request: %w", err)
	}

	rows, err := core.RowsAffected(result, "delete premium request")
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("delete premium request: %w", core.ErrNotFound)
	}

	return nil
}

// RevokeBiodata drops premium from a biodata and clears its request so
// the owner may apply again.
func (r *repository) RevokeBiodata(ctx context.Context, biodataRecordID string) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		biodataID, err := biodata.RevokePremium(ctx, tx, biodataRecordID)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`DELETE FROM premium_requests WHERE biodata_id = $1`, biodataID)
		if err != nil {
			return fmt.Errorf("clear premium request: %w", err)
		}
		return nil
	})
}
