package handler

import (
	"time"

	"github.com/google/uuid"

	"registru/internal/person/models"
	"registru/internal/person/service"
)

// PersonResponse is one registry record on the wire, enriched with the
// document expiry evaluation for the request's "today".
type PersonResponse struct {
	ID            uuid.UUID    `json:"id"`
	FirstName     string       `json:"first_name"`
	LastName      string       `json:"last_name"`
	BirthDate     *models.Date `json:"birth_date,omitempty"`
	CINSeries     string       `json:"cin_series,omitempty"`
	CINNumber     string       `json:"cin_number,omitempty"`
	IDIssueDate   *models.Date `json:"id_issue_date,omitempty"`
	IDExpiryDate  *models.Date `json:"id_expiry_date,omitempty"`
	Address       string       `json:"address,omitempty"`
	City          string       `json:"city,omitempty"`
	County        string       `json:"county,omitempty"`
	NationalID    string       `json:"national_id,omitempty"`
	Email         string       `json:"email,omitempty"`
	Phone         string       `json:"phone,omitempty"`
	HasPhoto      bool         `json:"has_photo"`
	Notes         string       `json:"notes,omitempty"`
	ExpiryStatus  string       `json:"expiry_status"`
	DaysRemaining *int         `json:"days_remaining,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// NewPersonResponse evaluates expiry against today and shapes the record.
func NewPersonResponse(p *models.Person, today time.Time) PersonResponse {
	info := models.EvaluateExpiry(p.IDExpiryDate, today)
	return PersonResponse{
		ID:            p.ID,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		BirthDate:     p.BirthDate,
		CINSeries:     p.CINSeries,
		CINNumber:     p.CINNumber,
		IDIssueDate:   p.IDIssueDate,
		IDExpiryDate:  p.IDExpiryDate,
		Address:       p.Address,
		City:          p.City,
		County:        p.County,
		NationalID:    p.NationalID,
		Email:         p.Email,
		Phone:         p.Phone,
		HasPhoto:      p.IDPhotoPath != "",
		Notes:         p.Notes,
		ExpiryStatus:  string(info.Status),
		DaysRemaining: info.DaysRemaining,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ListPeopleResponse is the paginated listing envelope.
type ListPeopleResponse struct {
	Data        []PersonResponse `json:"data"`
	CurrentPage int              `json:"current_page"`
	PerPage     int              `json:"per_page"`
	Total       int              `json:"total"`
	LastPage    int              `json:"last_page"`
}

// NewListPeopleResponse shapes one page of results.
func NewListPeopleResponse(res *service.ListResult, today time.Time) ListPeopleResponse {
	data := make([]PersonResponse, 0, len(res.Items))
	for _, p := range res.Items {
		data = append(data, NewPersonResponse(p, today))
	}

	lastPage := 1
	if res.PageSize > 0 && res.Total > 0 {
		lastPage = (res.Total + res.PageSize - 1) / res.PageSize
	}

	return ListPeopleResponse{
		Data:        data,
		CurrentPage: res.Page,
		PerPage:     res.PageSize,
		Total:       res.Total,
		LastPage:    lastPage,
	}
}

// DeleteResponse acknowledges a successful delete.
type DeleteResponse struct {
	OK bool `json:"ok"`
}
