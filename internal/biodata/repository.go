// AngelaMos | 2026
// repository.go

package biodata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/metro-bond/internal/core"
)

// ErrBiodataNotFound marks a premium change aimed at a biodata that does
// not exist. It still matches core.ErrNotFound.
var ErrBiodataNotFound = fmt.Errorf("biodata: %w", core.ErrNotFound)

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Biodata, error)
	GetByID(ctx context.Context, id string) (*Biodata, error)
	Upsert(ctx context.Context, b *Biodata) (inserted bool, err error)
	LastBiodataID(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountByType(ctx context.Context) (TypeCounts, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const biodataColumns = `
	id, biodata_id, email, name, biodata_type, profile_image, birth_date,
	age, height, weight, occupation, race, father_name, mother_name,
	permanent_division, present_division, expected_partner_age,
	expected_partner_height, expected_partner_weight, mobile, is_premium,
	created_at, updated_at`

const counterName = "biodata"

func (r *repository) List(
	ctx context.Context,
	filter ListFilter,
) ([]Biodata, error) {
	query, args := buildListQuery(filter)

	items := []Biodata{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("list biodata: %w", err)
	}

	return items, nil
}

// buildListQuery joins the active filters with AND, numbering placeholders
// in the order they are appended.
func buildListQuery(filter ListFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)

	next := func() string {
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Email != "" {
		args = append(args, filter.Email)
		conditions = append(conditions, "email = "+next())
	}

	if filter.hasAgeRange() {
		args = append(args, *filter.MinAge)
		lower := next()
		args = append(args, *filter.MaxAge)
		conditions = append(conditions, "age BETWEEN "+lower+" AND "+next())
	}

	if filter.BiodataType != "" {
		args = append(args, filter.BiodataType)
		conditions = append(conditions, "biodata_type = "+next())
	}

	if filter.PermanentDivision != "" {
		args = append(args, filter.PermanentDivision)
		conditions = append(conditions, "permanent_division = "+next())
	}

	query := `SELECT ` + biodataColumns + ` FROM biodata`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY biodata_id ASC"

	return query, args
}

func (r *repository) GetByID(ctx context.Context, id string) (*Biodata, error) {
	query := `SELECT ` + biodataColumns + ` FROM biodata WHERE id = $1`

	var b Biodata
	err := r.db.GetContext(ctx, &b, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get biodata: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get biodata: %w", err)
	}

	return &b, nil
}

// Upsert writes b keyed by owner email. A new record draws the next
// biodata id from the counter; an existing one keeps its id and premium
// flag. An insert that loses a race on the email constraint is retried
// once, which then takes the update path.
func (r *repository) Upsert(ctx context.Context, b *Biodata) (bool, error) {
	inserted, err := r.upsertOnce(ctx, b)
	if errors.Is(err, core.ErrDuplicateKey) {
		inserted, err = r.upsertOnce(ctx, b)
	}
	if err != nil {
		return false, fmt.Errorf("upsert biodata: %w", err)
	}
	return inserted, nil
}

func (r *repository) upsertOnce(ctx context.Context, b *Biodata) (bool, error) {
	var inserted bool

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var existing struct {
			ID        string `db:"id"`
			BiodataID int64  `db:"biodata_id"`
			IsPremium bool   `db:"is_premium"`
		}

		err := tx.GetContext(ctx, &existing, `
			SELECT id, biodata_id, is_premium
			FROM biodata
			WHERE email = $1
			FOR UPDATE`, b.Email)

		switch {
		case err == nil:
			b.ID = existing.ID
			b.BiodataID = existing.BiodataID
			b.IsPremium = existing.IsPremium
			return updateFields(ctx, tx, b)
		case errors.Is(err, sql.ErrNoRows):
			inserted = true
			return insert(ctx, tx, b)
		default:
			return fmt.Errorf("lock biodata: %w", err)
		}
	})

	return inserted, err
}

func insert(ctx context.Context, tx *sqlx.Tx, b *Biodata) error {
	next, err := nextBiodataID(ctx, tx)
	if err != nil {
		return err
	}
	b.BiodataID = next
	if b.ID == "" {
		b.ID = uuid.New().String()
	}

	query := `
		INSERT INTO biodata (
			id, biodata_id, email, name, biodata_type, profile_image,
			birth_date, age, height, weight, occupation, race, father_name,
			mother_name, permanent_division, present_division,
			expected_partner_age, expected_partner_height,
			expected_partner_weight, mobile, is_premium
		) VALUES (
			:id, :biodata_id, :email, :name, :biodata_type, :profile_image,
			:birth_date, :age, :height, :weight, :occupation, :race,
			:father_name, :mother_name, :permanent_division,
			:present_division, :expected_partner_age,
			:expected_partner_height, :expected_partner_weight, :mobile,
			:is_premium
		)`

	if _, err := tx.NamedExecContext(ctx, query, b); err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert biodata: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("insert biodata: %w", err)
	}

	return nil
}

func updateFields(ctx context.Context, tx *sqlx.Tx, b *Biodata) error {
	query := `
		UPDATE biodata SET
			name = :name,
			biodata_type = :biodata_type,
			profile_image = :profile_image,
			birth_date = :birth_date,
			age = :age,
			height = :height,
			weight = :weight,
			occupation = :occupation,
			race = :race,
			father_name = :father_name,
			mother_name = :mother_name,
			permanent_division = :permanent_division,
			present_division = :present_division,
			expected_partner_age = :expected_partner_age,
			expected_partner_height = :expected_partner_height,
			expected_partner_weight = :expected_partner_weight,
			mobile = :mobile,
			updated_at = NOW()
		WHERE id = :id`

	if _, err := tx.NamedExecContext(ctx, query, b); err != nil {
		return fmt.Errorf("update biodata: %w", err)
	}

	return nil
}

// nextBiodataID bumps the shared counter, seeding it from the current
// maximum the first time it is used.
func nextBiodataID(ctx context.Context, tx *sqlx.Tx) (int64, error) {
	query := `
		INSERT INTO counters (name, value)
		VALUES ($1, (SELECT COALESCE(MAX(biodata_id), 0) + 1 FROM biodata))
		ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
		RETURNING value`

	var next int64
	if err := tx.GetContext(ctx, &next, query, counterName); err != nil {
		return 0, fmt.Errorf("next biodata id: %w", err)
	}

	return next, nil
}

func (r *repository) LastBiodataID(ctx context.Context) (int64, error) {
	var last int64
	err := r.db.GetContext(ctx, &last,
		`SELECT COALESCE(MAX(biodata_id), 0) FROM biodata`)
	if err != nil {
		return 0, fmt.Errorf("last biodata id: %w", err)
	}
	return last, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM biodata`); err != nil {
		return 0, fmt.Errorf("count biodata: %w", err)
	}
	return total, nil
}

func (r *repository) CountByType(ctx context.Context) (TypeCounts, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE LOWER(biodata_type) = 'male')   AS male,
			COUNT(*) FILTER (WHERE LOWER(biodata_type) = 'female') AS female
		FROM biodata`

	var counts TypeCounts
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return TypeCounts{}, fmt.Errorf("count biodata by type: %w", err)
	}
	return counts, nil
}

// SetPremiumByBiodataID flips the premium flag through q, which may be a
// transaction owned by the caller.
func SetPremiumByBiodataID(
	ctx context.Context,
	q core.DBTX,
	biodataID int64,
	premium bool,
) error {
	result, err := q.ExecContext(ctx, `
		UPDATE biodata
		SET is_premium = $2, updated_at = NOW()
		WHERE biodata_id = $1`, biodataID, premium)
	if err != nil {
		return fmt.Errorf("set biodata premium: %w", err)
	}

	rows, err := core.RowsAffected(result, "set biodata premium")
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("set biodata premium: %w", ErrBiodataNotFound)
	}

	return nil
}

// RevokePremium clears the premium flag of the biodata with the given
// record id and returns its sequential biodata id.
func RevokePremium(ctx context.Context, q core.DBTX, id string) (int64, error) {
	var biodataID int64
	err := q.GetContext(ctx, &biodataID, `
		UPDATE biodata
		SET is_premium = FALSE, updated_at = NOW()
		WHERE id = $1
		RETURNING biodata_id`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("revoke premium: %w", ErrBiodataNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("revoke premium: %w", err)
	}
	return biodataID, nil
}
