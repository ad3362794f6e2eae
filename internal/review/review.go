// AngelaMos | 2026
// review.go

package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/metro-bond/internal/core"
)

// Review is a success story posted by a matched couple. Reviews are
// append-only.
type Review struct {
	ID               string    `db:"id"`
	SelfBiodataID    int64     `db:"self_biodata_id"`
	PartnerBiodataID int64     `db:"partner_biodata_id"`
	CoupleImage      string    `db:"couple_image"`
	MarriageDate     string    `db:"marriage_date"`
	Rating           int       `db:"rating"`
	Story            string    `db:"story"`
	CreatedAt        time.Time `db:"created_at"`
}

type CreateReviewRequest struct {
	SelfBiodataID    int64  `json:"selfBiodataId"    validate:"required,min=1"`
	PartnerBiodataID int64  `json:"partnerBiodataId" validate:"required,min=1"`
	CoupleImage      string `json:"coupleImage"      validate:"omitempty,max=2048"`
	MarriageDate     string `json:"marriageDate"     validate:"omitempty,max=32"`
	Rating           int    `json:"rating"           validate:"omitempty,min=1,max=5"`
	Story            string `json:"story"            validate:"required,max=5000"`
}

type ReviewResponse struct {
	ID               string    `json:"_id"`
	SelfBiodataID    int64     `json:"selfBiodataId"`
	PartnerBiodataID int64     `json:"partnerBiodataId"`
	CoupleImage      string    `json:"coupleImage"`
	MarriageDate     string    `json:"marriageDate"`
	Rating           int       `json:"rating"`
	Story            string    `json:"story"`
	CreatedAt        time.Time `json:"createdAt"`
}

func ToReviewResponse(r *Review) ReviewResponse {
	return ReviewResponse{
		ID:               r.ID,
		SelfBiodataID:    r.SelfBiodataID,
		PartnerBiodataID: r.PartnerBiodataID,
		CoupleImage:      r.CoupleImage,
		MarriageDate:     r.MarriageDate,
		Rating:           r.Rating,
		Story:            r.Story,
		CreatedAt:        r.CreatedAt,
	}
}

type Repository interface {
	Create(ctx context.Context, r *Review) error
	GetByID(ctx context.Context, id string) (*Review, error)
	List(ctx context.Context) ([]Review, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rv *Review) error {
	if rv.ID == "" {
		rv.ID = uuid.New().String()
	}

	query := `
		INSERT INTO reviews (
			id, self_biodata_id, partner_biodata_id, couple_image,
			marriage_date, rating, story
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	err := r.db.QueryRowxContext(ctx, query,
		rv.ID,
		rv.SelfBiodataID,
		rv.PartnerBiodataID,
		rv.CoupleImage,
		rv.MarriageDate,
		rv.Rating,
		rv.Story,
	).Scan(&rv.CreatedAt)
	if err != nil {
		return fmt.Errorf("create review: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Review, error) {
	query := `
		SELECT id, self_biodata_id, partner_biodata_id, couple_image,
			marriage_date, rating, story, created_at
		FROM reviews
		WHERE id = $1`

	var rv Review
	err := r.db.GetContext(ctx, &rv, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get review: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}

	return &rv, nil
}

func (r *repository) List(ctx context.Context) ([]Review, error) {
	query := `
		SELECT id, self_biodata_id, partner_biodata_id, couple_image,
			marriage_date, rating, story, created_at
		FROM reviews
		ORDER BY created_at DESC`

	reviews := []Review{}
	if err := r.db.SelectContext(ctx, &reviews, query); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	return reviews, nil
}
