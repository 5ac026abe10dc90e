// Package query implements the listing contract for the people registry:
// case-insensitive substring filtering, whitelisted sorting, and 1-indexed
// pagination. The memory store applies these functions directly; the postgres
// store mirrors them in SQL, so this package is the contract both must honor.
package query

import (
	"sort"
	"strings"

	"registru/internal/person/models"
)

// Sortable field tokens accepted from the listing endpoint. Anything else
// falls back to the default ordering.
const (
	SortFirstName = "first_name"
	SortLastName  = "last_name"
	SortBirthDate = "birth_date"
)

// DefaultPageSize is used when no page size is configured.
const DefaultPageSize = 20

// Params are the raw listing parameters after HTTP parsing.
type Params struct {
	Q        string
	Sort     string
	Dir      string
	Page     int
	PageSize int
}

// Normalized clamps pagination to sane values. Page numbering is 1-indexed;
// a non-positive or missing page means the first page.
func (p Params) Normalized(defaultPageSize int) Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	return p
}

// SortExplicit reports whether the sort token names a sortable field.
func (p Params) SortExplicit() bool {
	switch p.Sort {
	case SortFirstName, SortLastName, SortBirthDate:
		return true
	default:
		return false
	}
}

// Desc reports whether descending order was requested. Only the literal
// "desc" token selects it; anything else means ascending.
func (p Params) Desc() bool {
	return p.Dir == "desc"
}

// Offset returns the number of records skipped before this page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Matches reports whether a record matches the search term: a
// case-insensitive substring of first name, last name, CNP, or CIN number.
// An empty term matches everything.
func Matches(p *models.Person, q string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	for _, field := range []string{p.FirstName, p.LastName, p.NationalID, p.CINNumber} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Apply produces one page of the filtered, sorted view plus the total match
// count. Pages past the end return an empty slice with the correct total.
// The input slice is not modified.
func Apply(records []*models.Person, p Params) ([]*models.Person, int) {
	matched := make([]*models.Person, 0, len(records))
	for _, rec := range records {
		if Matches(rec, p.Q) {
			matched = append(matched, rec)
		}
	}

	sortRecords(matched, p)

	total := len(matched)
	offset := p.Offset()
	if offset >= total {
		return []*models.Person{}, total
	}
	end := offset + p.PageSize
	if end > total {
		end = total
	}
	return matched[offset:end], total
}

// sortRecords orders records per the listing contract. When an explicit sort
// field is given, only that single key applies and ties keep their storage
// order (stable sort). Otherwise the default is last name ascending with
// first name as tie-break. Name comparisons are case-insensitive to match
// the postgres lower() ordering.
func sortRecords(records []*models.Person, p Params) {
	if !p.SortExplicit() {
		sort.SliceStable(records, func(i, j int) bool {
			li, lj := strings.ToLower(records[i].LastName), strings.ToLower(records[j].LastName)
			if li != lj {
				return li < lj
			}
			return strings.ToLower(records[i].FirstName) < strings.ToLower(records[j].FirstName)
		})
		return
	}

	desc := p.Desc()
	sort.SliceStable(records, func(i, j int) bool {
		less, equal := compare(records[i], records[j], p.Sort, desc)
		if equal {
			return false
		}
		return less
	})
}

// compare orders two records on a single field. Records missing a birth date
// sort after present ones ascending and before them descending, matching
// postgres NULLS LAST / NULLS FIRST defaults.
func compare(a, b *models.Person, field string, desc bool) (less, equal bool) {
	switch field {
	case SortBirthDate:
		switch {
		case a.BirthDate == nil && b.BirthDate == nil:
			return false, true
		case a.BirthDate == nil:
			return desc, false
		case b.BirthDate == nil:
			return !desc, false
		case a.BirthDate.Time().Equal(b.BirthDate.Time()):
			return false, true
		default:
			less = a.BirthDate.Before(*b.BirthDate)
		}
	case SortFirstName:
		av, bv := strings.ToLower(a.FirstName), strings.ToLower(b.FirstName)
		if av == bv {
			return false, true
		}
		less = av < bv
	default: // SortLastName
		av, bv := strings.ToLower(a.LastName), strings.ToLower(b.LastName)
		if av == bv {
			return false, true
		}
		less = av < bv
	}
	if desc {
		less = !less
	}
	return less, false
}
