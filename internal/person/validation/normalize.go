package validation

import (
	"strings"

	"registru/internal/person/models"
)

// NormalizeCINSeries canonicalizes an identity-card series to upper case.
func NormalizeCINSeries(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizePerson canonicalizes a record in place: text fields are trimmed
// and the CIN series is upper-cased. Dates are left untouched. Runs before
// validation and before persistence on both create and update; it never
// fabricates values, so absent fields stay absent.
func NormalizePerson(p *models.Person) {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.CINSeries = NormalizeCINSeries(p.CINSeries)
	p.CINNumber = strings.TrimSpace(p.CINNumber)
	p.Address = strings.TrimSpace(p.Address)
	p.City = strings.TrimSpace(p.City)
	p.County = strings.TrimSpace(p.County)
	p.NationalID = strings.TrimSpace(p.NationalID)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Notes = strings.TrimSpace(p.Notes)
}
