// AngelaMos | 2026
// repository.go

package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/metro-bond/internal/biodata"
	"github.com/carterperez-dev/metro-bond/internal/core"
)

// ErrBiodataMissing marks a status update whose linked biodata does not
// exist. It still matches core.ErrNotFound.
var ErrBiodataMissing = biodata.ErrBiodataNotFound

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, id string) (*Payment, error)
	ListByEmail(ctx context.Context, email string) ([]Payment, error)
	List(ctx context.Context) ([]Payment, error)
	UpdateStatusAndPromote(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	DeleteOwned(ctx context.Context, id, email string) error
	Count(ctx context.Context) (int64, error)
	SumAmounts(ctx context.Context) (int64, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const paymentColumns = `
	id, email, name, biodata_id, amount, transaction_id, status,
	created_at, updated_at`

func (r *repository) Create(ctx context.Context, p *Payment) error {
	p.ID = uuid.New().String()

	query := `
		INSERT INTO payments (
			id, email, name, biodata_id, amount, transaction_id, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		p.ID,
		p.Email,
		p.Name,
		p.BiodataID,
		p.Amount,
		p.TransactionID,
		p.Status,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	var p Payment
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get payment: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}

	return &p, nil
}

func (r *repository) ListByEmail(
	ctx context.Context,
	email string,
) ([]Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE email = $1
		ORDER BY created_at DESC`

	payments := []Payment{}
	if err := r.db.SelectContext(ctx, &payments, query, email); err != nil {
		return nil, fmt.Errorf("list payments by email: %w", err)
	}

	return payments, nil
}

func (r *repository) List(ctx context.Context) ([]Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments ORDER BY created_at DESC`

	payments := []Payment{}
	if err := r.db.SelectContext(ctx, &payments, query); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	return payments, nil
}

// UpdateStatusAndPromote sets the payment status and marks the linked
// biodata premium in one transaction. Either both land or neither does.
// A payment without a linked biodata only has its status changed.
func (r *repository) UpdateStatusAndPromote(
	ctx context.Context,
	id, status string,
) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var linked sql.NullInt64
		err := tx.GetContext(ctx, &linked, `
			UPDATE payments
			SET status = $2, updated_at = NOW()
			WHERE id = $1
			RETURNING biodata_id`, id, status)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("update payment status: %w", core.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("update payment status: %w", err)
		}

		if !linked.Valid {
			return nil
		}

		if err := biodata.SetPremiumByBiodataID(ctx, tx, linked.Int64, true); err != nil {
			return fmt.Errorf("update payment status: %w", err)
		}
		return nil
	})
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	return expectOne(result, "delete payment")
}

func (r *repository) DeleteOwned(ctx context.Context, id, email string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM payments WHERE id = $1 AND email = $2`, id, email)
	if err != nil {
		return fmt.Errorf("delete contact request: %w", err)
	}
	return expectOne(result, "delete contact request")
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM payments`); err != nil {
		return 0, fmt.Errorf("count payments: %w", err)
	}
	return total, nil
}

func (r *repository) SumAmounts(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.GetContext(ctx, &total,
		`SELECT COALESCE(SUM(amount), 0)::BIGINT FROM payments`)
	if err != nil {
		return 0, fmt.Errorf("sum payment amounts: %w", err)
	}
	return total, nil
}

func expectOne(result sql.Result, op string) error {
	rows, err := core.RowsAffected(result, op)
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}
	return nil
}
