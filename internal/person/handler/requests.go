package handler

import (
	"registru/internal/person/models"
	"registru/internal/person/service"
)

// CreatePersonRequest is the JSON body for POST /api/people. Field rules are
// enforced once, in the domain validation layer, so the DTO only shapes the
// wire format; a malformed date string fails JSON decoding with a 400.
type CreatePersonRequest struct {
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	BirthDate    *models.Date `json:"birth_date"`
	CINSeries    string       `json:"cin_series"`
	CINNumber    string       `json:"cin_number"`
	IDIssueDate  *models.Date `json:"id_issue_date"`
	IDExpiryDate *models.Date `json:"id_expiry_date"`
	Address      string       `json:"address"`
	City         string       `json:"city"`
	County       string       `json:"county"`
	NationalID   string       `json:"national_id"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	Notes        string       `json:"notes"`
}

// ToCommand converts the request into a service command.
func (r *CreatePersonRequest) ToCommand() service.CreatePersonCommand {
	return service.CreatePersonCommand{
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		BirthDate:    r.BirthDate,
		CINSeries:    r.CINSeries,
		CINNumber:    r.CINNumber,
		IDIssueDate:  r.IDIssueDate,
		IDExpiryDate: r.IDExpiryDate,
		Address:      r.Address,
		City:         r.City,
		County:       r.County,
		NationalID:   r.NationalID,
		Email:        r.Email,
		Phone:        r.Phone,
		Notes:        r.Notes,
	}
}

// UpdatePersonRequest is the JSON body for PUT /api/people/{id}. Omitted
// fields leave the stored value untouched; strings are cleared by sending "".
type UpdatePersonRequest struct {
	FirstName    *string      `json:"first_name"`
	LastName     *string      `json:"last_name"`
	BirthDate    *models.Date `json:"birth_date"`
	CINSeries    *string      `json:"cin_series"`
	CINNumber    *string      `json:"cin_number"`
	IDIssueDate  *models.Date `json:"id_issue_date"`
	IDExpiryDate *models.Date `json:"id_expiry_date"`
	Address      *string      `json:"address"`
	City         *string      `json:"city"`
	County       *string      `json:"county"`
	NationalID   *string      `json:"national_id"`
	Email        *string      `json:"email"`
	Phone        *string      `json:"phone"`
	Notes        *string      `json:"notes"`
}

// ToCommand converts the request into a partial-merge command.
func (r *UpdatePersonRequest) ToCommand() service.UpdatePersonCommand {
	cmd := service.UpdatePersonCommand{
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		CINSeries:  r.CINSeries,
		CINNumber:  r.CINNumber,
		Address:    r.Address,
		City:       r.City,
		County:     r.County,
		NationalID: r.NationalID,
		Email:      r.Email,
		Phone:      r.Phone,
		Notes:      r.Notes,
	}
	if r.BirthDate != nil {
		cmd.BirthDate = &r.BirthDate
	}
	if r.IDIssueDate != nil {
		cmd.IDIssueDate = &r.IDIssueDate
	}
	if r.IDExpiryDate != nil {
		cmd.IDExpiryDate = &r.IDExpiryDate
	}
	return cmd
}
