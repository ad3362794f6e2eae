// AngelaMos | 2026
// entity.go

package biodata

import (
	"time"
)

type Biodata struct {
	ID                    string    `db:"id"`
	BiodataID             int64     `db:"biodata_id"`
	Email                 string    `db:"email"`
	Name                  string    `db:"name"`
	BiodataType           string    `db:"biodata_type"`
	ProfileImage          string    `db:"profile_image"`
	BirthDate             string    `db:"birth_date"`
	Age                   int       `db:"age"`
	Height                string    `db:"height"`
	Weight                string    `db:"weight"`
	Occupation            string    `db:"occupation"`
	Race                  string    `db:"race"`
	FatherName            string    `db:"father_name"`
	MotherName            string    `db:"mother_name"`
	PermanentDivision     string    `db:"permanent_division"`
	PresentDivision       string    `db:"present_division"`
	ExpectedPartnerAge    string    `db:"expected_partner_age"`
	ExpectedPartnerHeight string    `db:"expected_partner_height"`
	ExpectedPartnerWeight string    `db:"expected_partner_weight"`
	Mobile                string    `db:"mobile"`
	IsPremium             bool      `db:"is_premium"`
	CreatedAt             time.Time `db:"created_at"`
	UpdatedAt             time.Time `db:"updated_at"`
}

// ListFilter narrows a listing. Zero values mean "no constraint"; the age
// range only applies when both bounds are set.
type ListFilter struct {
	Email             string
	MinAge            *int
	MaxAge            *int
	BiodataType       string
	PermanentDivision string
}

func (f ListFilter) hasAgeRange() bool {
	return f.MinAge != nil && f.MaxAge != nil
}

// TypeCounts splits biodata totals by gender, matched case-insensitively.
type TypeCounts struct {
	Male   int64 `db:"male"`
	Female int64 `db:"female"`
}
