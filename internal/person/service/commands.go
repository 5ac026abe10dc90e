package service

import (
	"registru/internal/person/models"
)

// CreatePersonCommand carries a full record for creation. String fields left
// empty and nil dates stay absent on the stored record.
type CreatePersonCommand struct {
	FirstName    string
	LastName     string
	BirthDate    *models.Date
	CINSeries    string
	CINNumber    string
	IDIssueDate  *models.Date
	IDExpiryDate *models.Date
	Address      string
	City         string
	County       string
	NationalID   string
	Email        string
	Phone        string
	Notes        string
}

func (c CreatePersonCommand) toPerson() *models.Person {
	return &models.Person{
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		BirthDate:    c.BirthDate,
		CINSeries:    c.CINSeries,
		CINNumber:    c.CINNumber,
		IDIssueDate:  c.IDIssueDate,
		IDExpiryDate: c.IDExpiryDate,
		Address:      c.Address,
		City:         c.City,
		County:       c.County,
		NationalID:   c.NationalID,
		Email:        c.Email,
		Phone:        c.Phone,
		Notes:        c.Notes,
	}
}

// UpdatePersonCommand is a partial merge: nil fields are left untouched on
// the stored record, non-nil fields replace the stored value. Clearing a
// field is done by sending its empty value explicitly.
type UpdatePersonCommand struct {
	FirstName    *string
	LastName     *string
	BirthDate    **models.Date
	CINSeries    *string
	CINNumber    *string
	IDIssueDate  **models.Date
	IDExpiryDate **models.Date
	Address      *string
	City         *string
	County       *string
	NationalID   *string
	Email        *string
	Phone        *string
	Notes        *string
}

// applyTo merges the provided fields onto the record.
func (c UpdatePersonCommand) applyTo(p *models.Person) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setDate := func(dst **models.Date, src **models.Date) {
		if src != nil {
			*dst = *src
		}
	}

	setString(&p.FirstName, c.FirstName)
	setString(&p.LastName, c.LastName)
	setDate(&p.BirthDate, c.BirthDate)
	setString(&p.CINSeries, c.CINSeries)
	setString(&p.CINNumber, c.CINNumber)
	setDate(&p.IDIssueDate, c.IDIssueDate)
	setDate(&p.IDExpiryDate, c.IDExpiryDate)
	setString(&p.Address, c.Address)
	setString(&p.City, c.City)
	setString(&p.County, c.County)
	setString(&p.NationalID, c.NationalID)
	setString(&p.Email, c.Email)
	setString(&p.Phone, c.Phone)
	setString(&p.Notes, c.Notes)
}
