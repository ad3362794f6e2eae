// AngelaMos | 2026
// favorite.go

package favorite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/metro-bond/internal/core"
)

type Favorite struct {
	ID                string    `db:"id"`
	Email             string    `db:"email"`
	BiodataID         int64     `db:"biodata_id"`
	Name              string    `db:"name"`
	PermanentDivision string    `db:"permanent_division"`
	Occupation        string    `db:"occupation"`
	CreatedAt         time.Time `db:"created_at"`
}

type CreateFavoriteRequest struct {
	Email             string `json:"email"             validate:"required,email,max=255"`
	BiodataID         int64  `json:"biodataId"         validate:"required,min=1"`
	Name              string `json:"name"              validate:"omitempty,max=100"`
	PermanentDivision string `json:"permanentDivision" validate:"omitempty,max=50"`
	Occupation        string `json:"occupation"        validate:"omitempty,max=100"`
}

type FavoriteResponse struct {
	ID                string    `json:"_id"`
	Email             string    `json:"email"`
	BiodataID         int64     `json:"biodataId"`
	Name              string    `json:"name"`
	PermanentDivision string    `json:"permanentDivision"`
	Occupation        string    `json:"occupation"`
	CreatedAt         time.Time `json:"createdAt"`
}

func ToFavoriteResponse(f *Favorite) FavoriteResponse {
	return FavoriteResponse{
		ID:                f.ID,
		Email:             f.Email,
		BiodataID:         f.BiodataID,
		Name:              f.Name,
		PermanentDivision: f.PermanentDivision,
		Occupation:        f.Occupation,
		CreatedAt:         f.CreatedAt,
	}
}

type Repository interface {
	Create(ctx context.Context, f *Favorite) error
	ListByEmail(ctx context.Context, email string) ([]Favorite, error)
	DeleteOwned(ctx context.Context, id, email string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, f *Favorite) error {
	f.ID = uuid.New().String()
	f.Email = strings.ToLower(f.Email)

	query := `
		INSERT INTO favorites (
			id, email, biodata_id, name, permanent_division, occupation
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	err := r.db.QueryRowxContext(ctx, query,
		f.ID,
		f.Email,
		f.BiodataID,
		f.Name,
		f.PermanentDivision,
		f.Occupation,
	).Scan(&f.CreatedAt)
	if err != nil {
		return fmt.Errorf("create favorite: %w", err)
	}

	return nil
}

func (r *repository) ListByEmail(
	ctx context.Context,
	email string,
) ([]Favorite, error) {
	query := `
		SELECT id, email, biodata_id, name, permanent_division, occupation,
			created_at
		FROM favorites
		WHERE email = $1
		ORDER BY created_at DESC`

	favorites := []Favorite{}
	err := r.db.SelectContext(ctx, &favorites, query, strings.ToLower(email))
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	return favorites, nil
}

// DeleteOwned removes a favorite only when it belongs to email, so one
// account cannot prune another's list.
func (r *repository) DeleteOwned(ctx context.Context, id, email string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE id = $1 AND email = $2`,
		id, strings.ToLower(email),
	)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}

	rows, err := core.RowsAffected(result, "delete favorite")
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("delete favorite: %w", core.ErrNotFound)
	}

	return nil
}
