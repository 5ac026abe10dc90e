package models

import (
	"time"

	"github.com/google/uuid"
)

// Person is a registry record for one identity document holder.
// Optional string fields use "" for absent; optional dates use nil.
// Validate tags mirror the stored-record invariants; they are evaluated
// through internal/person/validation so every caller shares one rule set.
type Person struct {
	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"first_name" validate:"required,notblank,max=100"`
	LastName     string    `json:"last_name" validate:"required,notblank,max=100"`
	BirthDate    *Date     `json:"birth_date,omitempty"`
	CINSeries    string    `json:"cin_series,omitempty" validate:"cin_series"`
	CINNumber    string    `json:"cin_number,omitempty" validate:"cin_number"`
	IDIssueDate  *Date     `json:"id_issue_date,omitempty"`
	IDExpiryDate *Date     `json:"id_expiry_date,omitempty"`
	Address      string    `json:"address,omitempty" validate:"max=255"`
	City         string    `json:"city,omitempty" validate:"max=100"`
	County       string    `json:"county,omitempty" validate:"max=100"`
	NationalID   string    `json:"national_id,omitempty" validate:"cnp"`
	Email        string    `json:"email,omitempty" validate:"omitempty,email,max=150"`
	Phone        string    `json:"phone,omitempty" validate:"max=30"`
	IDPhotoPath  string    `json:"id_photo_path,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Clone returns a deep copy so stores can hand out snapshots without
// exposing their internal record to callers.
func (p *Person) Clone() *Person {
	if p == nil {
		return nil
	}
	cp := *p
	if p.BirthDate != nil {
		d := *p.BirthDate
		cp.BirthDate = &d
	}
	if p.IDIssueDate != nil {
		d := *p.IDIssueDate
		cp.IDIssueDate = &d
	}
	if p.IDExpiryDate != nil {
		d := *p.IDExpiryDate
		cp.IDExpiryDate = &d
	}
	return &cp
}
