package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"registru/internal/person/models"
)

func datePtr(year int, month time.Month, day int) *models.Date {
	d := models.NewDate(year, month, day)
	return &d
}

// SeedDemoData inserts a handful of demo records for local development.
// Expiry dates are spread so the dashboard shows every status at once.
func SeedDemoData(ctx context.Context, s PersonStore, now time.Time) error {
	people := []*models.Person{
		{
			FirstName:    "Mihai",
			LastName:     "Popescu",
			BirthDate:    datePtr(1985, time.March, 14),
			CINSeries:    "SB",
			CINNumber:    "500343",
			IDIssueDate:  datePtr(2016, time.June, 1),
			IDExpiryDate: models.DateOfPtr(now.AddDate(-1, 0, 0)),
			Address:      "Str. Mitropoliei 12",
			City:         "Sibiu",
			County:       "Sibiu",
			NationalID:   "1850314324567",
			Email:        "mihai.popescu@example.ro",
			Phone:        "0740123456",
		},
		{
			FirstName:    "Ana",
			LastName:     "Ionescu",
			BirthDate:    datePtr(1992, time.November, 2),
			CINSeries:    "B",
			CINNumber:    "123456",
			IDIssueDate:  datePtr(2020, time.February, 10),
			IDExpiryDate: models.DateOfPtr(now.AddDate(0, 0, 14)),
			Address:      "Bd. Unirii 45",
			City:         "Bucuresti",
			County:       "Bucuresti",
			NationalID:   "2921102410023",
			Email:        "ana.ionescu@example.ro",
			Phone:        "0722987654",
		},
		{
			FirstName:    "Dan",
			LastName:     "Marinescu",
			BirthDate:    datePtr(1978, time.July, 23),
			CINSeries:    "CJ",
			CINNumber:    "98765",
			IDIssueDate:  datePtr(2022, time.September, 5),
			IDExpiryDate: models.DateOfPtr(now.AddDate(5, 0, 0)),
			Address:      "Str. Horea 8",
			City:         "Cluj-Napoca",
			County:       "Cluj",
			NationalID:   "1780723120034",
			Phone:        "0751222333",
		},
		{
			FirstName: "Ioana",
			LastName:  "Radu",
			BirthDate: datePtr(2001, time.April, 30),
			City:      "Timisoara",
			County:    "Timis",
			Notes:     "Documents pending, no CI on file yet.",
		},
	}

	for _, p := range people {
		p.ID = uuid.New()
		p.CreatedAt = now
		p.UpdatedAt = now
		if err := s.Create(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
