// AngelaMos | 2026
// dto.go

package biodata

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type UpsertBiodataRequest struct {
	Email                 string `json:"email"                 validate:"required,email,max=255"`
	Name                  string `json:"name"                  validate:"required,min=1,max=100"`
	BiodataType           string `json:"biodataType"           validate:"required,max=20"`
	ProfileImage          string `json:"profileImage"          validate:"omitempty,max=2048"`
	BirthDate             string `json:"birthDate"             validate:"omitempty,max=32"`
	Age                   int    `json:"age"                   validate:"required,min=18,max=100"`
	Height                string `json:"height"                validate:"omitempty,max=32"`
	Weight                string `json:"weight"                validate:"omitempty,max=32"`
	Occupation            string `json:"occupation"            validate:"omitempty,max=100"`
	Race                  string `json:"race"                  validate:"omitempty,max=50"`
	FatherName            string `json:"fathersName"           validate:"omitempty,max=100"`
	MotherName            string `json:"mothersName"           validate:"omitempty,max=100"`
	PermanentDivision     string `json:"permanentDivision"     validate:"omitempty,max=50"`
	PresentDivision       string `json:"presentDivision"       validate:"omitempty,max=50"`
	ExpectedPartnerAge    string `json:"expectedPartnerAge"    validate:"omitempty,max=32"`
	ExpectedPartnerHeight string `json:"expectedPartnerHeight" validate:"omitempty,max=32"`
	ExpectedPartnerWeight string `json:"expectedPartnerWeight" validate:"omitempty,max=32"`
	Mobile                string `json:"mobile"                validate:"omitempty,max=32"`
}

func (req UpsertBiodataRequest) toEntity() *Biodata {
	return &Biodata{
		Email:                 strings.ToLower(strings.TrimSpace(req.Email)),
		Name:                  strings.TrimSpace(req.Name),
		BiodataType:           req.BiodataType,
		ProfileImage:          req.ProfileImage,
		BirthDate:             req.BirthDate,
		Age:                   req.Age,
		Height:                req.Height,
		Weight:                req.Weight,
		Occupation:            req.Occupation,
		Race:                  req.Race,
		FatherName:            req.FatherName,
		MotherName:            req.MotherName,
		PermanentDivision:     req.PermanentDivision,
		PresentDivision:       req.PresentDivision,
		ExpectedPartnerAge:    req.ExpectedPartnerAge,
		ExpectedPartnerHeight: req.ExpectedPartnerHeight,
		ExpectedPartnerWeight: req.ExpectedPartnerWeight,
		Mobile:                req.Mobile,
	}
}

type BiodataResponse struct {
	ID                    string    `json:"_id"`
	BiodataID             int64     `json:"biodataId"`
	Email                 string    `json:"email"`
	Name                  string    `json:"name"`
	BiodataType           string    `json:"biodataType"`
	ProfileImage          string    `json:"profileImage"`
	BirthDate             string    `json:"birthDate"`
	Age                   int       `json:"age"`
	Height                string    `json:"height"`
	Weight                string    `json:"weight"`
	Occupation            string    `json:"occupation"`
	Race                  string    `json:"race"`
	FatherName            string    `json:"fathersName"`
	MotherName            string    `json:"mothersName"`
	PermanentDivision     string    `json:"permanentDivision"`
	PresentDivision       string    `json:"presentDivision"`
	ExpectedPartnerAge    string    `json:"expectedPartnerAge"`
	ExpectedPartnerHeight string    `json:"expectedPartnerHeight"`
	ExpectedPartnerWeight string    `json:"expectedPartnerWeight"`
	Mobile                string    `json:"mobile"`
	IsPremium             bool      `json:"isPremium"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

type LastIDResponse struct {
	LastID int64 `json:"lastId"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

func ToBiodataResponse(b *Biodata) BiodataResponse {
	return BiodataResponse{
		ID:                    b.ID,
		BiodataID:             b.BiodataID,
		Email:                 b.Email,
		Name:                  b.Name,
		BiodataType:           b.BiodataType,
		ProfileImage:          b.ProfileImage,
		BirthDate:             b.BirthDate,
		Age:                   b.Age,
		Height:                b.Height,
		Weight:                b.Weight,
		Occupation:            b.Occupation,
		Race:                  b.Race,
		FatherName:            b.FatherName,
		MotherName:            b.MotherName,
		PermanentDivision:     b.PermanentDivision,
		PresentDivision:       b.PresentDivision,
		ExpectedPartnerAge:    b.ExpectedPartnerAge,
		ExpectedPartnerHeight: b.ExpectedPartnerHeight,
		ExpectedPartnerWeight: b.ExpectedPartnerWeight,
		Mobile:                b.Mobile,
		IsPremium:             b.IsPremium,
		CreatedAt:             b.CreatedAt,
		UpdatedAt:             b.UpdatedAt,
	}
}

func ToBiodataResponseList(items []Biodata) []BiodataResponse {
	responses := make([]BiodataResponse, 0, len(items))
	for _, b := range items {
		responses = append(responses, ToBiodataResponse(&b))
	}
	return responses
}

// ParseListFilter reads listing filters from a query string. A lone age
// bound is dropped, a non-numeric one is rejected.
func ParseListFilter(q url.Values) (ListFilter, error) {
	f := ListFilter{
		Email:             strings.ToLower(strings.TrimSpace(q.Get("email"))),
		BiodataType:       q.Get("biodataType"),
		PermanentDivision: q.Get("permanentDivision"),
	}

	minRaw, maxRaw := q.Get("minAge"), q.Get("maxAge")
	if minRaw == "" || maxRaw == "" {
		return f, nil
	}

	minAge, err := strconv.Atoi(minRaw)
	if err != nil {
		return ListFilter{}, errors.New("minAge must be a number")
	}
	maxAge, err := strconv.Atoi(maxRaw)
	if err != nil {
		return ListFilter{}, errors.New("maxAge must be a number")
	}

	f.MinAge = &minAge
	f.MaxAge = &maxAge
	return f, nil
}
