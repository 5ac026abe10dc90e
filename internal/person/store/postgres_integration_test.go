//go:build integration

package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"registru/internal/person/models"
	"registru/internal/person/query"
	"registru/internal/person/store"
	"registru/pkg/platform/sentinel"
	"registru/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "people"))
}

func newStoredPerson(first, last string) *models.Person {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &models.Person{
		ID:        uuid.New(),
		FirstName: first,
		LastName:  last,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *PostgresStoreSuite) TestCreateAndFindByID() {
	ctx := context.Background()

	p := newStoredPerson("Mihai", "Popescu")
	p.NationalID = "1960101223344"
	p.CINSeries = "SB"
	p.CINNumber = "500343"
	birth := models.NewDate(1996, time.January, 1)
	p.BirthDate = &birth

	s.Require().NoError(s.store.Create(ctx, p))

	found, err := s.store.FindByID(ctx, p.ID)
	s.Require().NoError(err)
	s.Equal("Popescu", found.LastName)
	s.Equal("1960101223344", found.NationalID)
	s.Equal("SB", found.CINSeries)
	s.Require().NotNil(found.BirthDate)
	s.Equal("1996-01-01", found.BirthDate.String())
	s.Nil(found.IDExpiryDate)
}

func (s *PostgresStoreSuite) TestFindByIDNotFound() {
	_, err := s.store.FindByID(context.Background(), uuid.New())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestUpdateMergesUnderRowLock() {
	ctx := context.Background()

	p := newStoredPerson("Ana", "Ionescu")
	p.NationalID = "2960101223355"
	s.Require().NoError(s.store.Create(ctx, p))

	const goroutines = 20
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, err := s.store.Update(ctx, p.ID, func(rec *models.Person) error {
				if idx%2 == 0 {
					rec.Phone = "0711111111"
				} else {
					rec.City = "Sibiu"
				}
				return nil
			})
			s.NoError(err)
		}(i)
	}
	wg.Wait()

	found, err := s.store.FindByID(ctx, p.ID)
	s.Require().NoError(err)
	s.Equal("0711111111", found.Phone)
	s.Equal("Sibiu", found.City)
	s.Equal("2960101223355", found.NationalID, "untouched field must survive concurrent merges")
}

func (s *PostgresStoreSuite) TestUpdateApplyErrorRollsBack() {
	ctx := context.Background()

	p := newStoredPerson("Ana", "Ionescu")
	s.Require().NoError(s.store.Create(ctx, p))

	_, err := s.store.Update(ctx, p.ID, func(rec *models.Person) error {
		rec.FirstName = "corrupted"
		return context.Canceled
	})
	s.Require().Error(err)

	found, err := s.store.FindByID(ctx, p.ID)
	s.Require().NoError(err)
	s.Equal("Ana", found.FirstName)
}

func (s *PostgresStoreSuite) TestDelete() {
	ctx := context.Background()

	p := newStoredPerson("Ana", "Ionescu")
	s.Require().NoError(s.store.Create(ctx, p))

	s.Require().NoError(s.store.Delete(ctx, p.ID))
	_, err := s.store.FindByID(ctx, p.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	s.ErrorIs(s.store.Delete(ctx, p.ID), sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestListDefaultOrderAndTotal() {
	ctx := context.Background()

	s.Require().NoError(s.store.Create(ctx, newStoredPerson("Mihai", "Popescu")))
	s.Require().NoError(s.store.Create(ctx, newStoredPerson("Dan", "Ionescu")))
	s.Require().NoError(s.store.Create(ctx, newStoredPerson("Ana", "Ionescu")))

	items, total, err := s.store.List(ctx, query.Params{Page: 1, PageSize: 20}.Normalized(20))
	s.Require().NoError(err)

	s.Equal(3, total)
	s.Require().Len(items, 3)
	s.Equal("Ana", items[0].FirstName)
	s.Equal("Dan", items[1].FirstName)
	s.Equal("Popescu", items[2].LastName)
}

func (s *PostgresStoreSuite) TestListFilterMatchesSubstringCaseInsensitively() {
	ctx := context.Background()

	target := newStoredPerson("Mihai", "Popescu")
	target.CINNumber = "500343"
	s.Require().NoError(s.store.Create(ctx, target))
	s.Require().NoError(s.store.Create(ctx, newStoredPerson("Ana", "Ionescu")))

	items, total, err := s.store.List(ctx, query.Params{Q: "POPE", Page: 1, PageSize: 20}.Normalized(20))
	s.Require().NoError(err)
	s.Equal(1, total)
	s.Require().Len(items, 1)
	s.Equal("Popescu", items[0].LastName)

	items, total, err = s.store.List(ctx, query.Params{Q: "500343", Page: 1, PageSize: 20}.Normalized(20))
	s.Require().NoError(err)
	s.Equal(1, total)
	s.Require().Len(items, 1)
	s.Equal("Popescu", items[0].LastName)
}

func (s *PostgresStoreSuite) TestListEscapesLikeMetacharacters() {
	ctx := context.Background()

	s.Require().NoError(s.store.Create(ctx, newStoredPerson("Ana", "Ionescu")))

	// "%" matches nothing literally; unescaped it would match everything.
	_, total, err := s.store.List(ctx, query.Params{Q: "%", Page: 1, PageSize: 20}.Normalized(20))
	s.Require().NoError(err)
	s.Equal(0, total)
}

func (s *PostgresStoreSuite) TestListBirthDateSortPlacesMissingDatesLast() {
	ctx := context.Background()

	noDate := newStoredPerson("Ana", "FaraData")
	s.Require().NoError(s.store.Create(ctx, noDate))

	young := newStoredPerson("Dan", "Tanar")
	d1 := models.NewDate(2000, time.January, 1)
	young.BirthDate = &d1
	s.Require().NoError(s.store.Create(ctx, young))

	old := newStoredPerson("Ioana", "Batran")
	d2 := models.NewDate(1950, time.January, 1)
	old.BirthDate = &d2
	s.Require().NoError(s.store.Create(ctx, old))

	items, _, err := s.store.List(ctx, query.Params{Sort: query.SortBirthDate, Page: 1, PageSize: 20}.Normalized(20))
	s.Require().NoError(err)
	s.Require().Len(items, 3)
	s.Equal("Batran", items[0].LastName)
	s.Equal("Tanar", items[1].LastName)
	s.Equal("FaraData", items[2].LastName)

	items, _, err = s.store.List(ctx, query.Params{Sort: query.SortBirthDate, Dir: "desc", Page: 1, PageSize: 20}.Normalized(20))
	s.Require().NoError(err)
	s.Require().Len(items, 3)
	s.Equal("FaraData", items[0].LastName)
	s.Equal("Batran", items[2].LastName)
}

func (s *PostgresStoreSuite) TestListOutOfRangePageReturnsEmptyWithTotal() {
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		s.Require().NoError(s.store.Create(ctx, newStoredPerson("Ion", "Popa")))
	}

	items, total, err := s.store.List(ctx, query.Params{Page: 3, PageSize: 5}.Normalized(5))
	s.Require().NoError(err)
	s.Equal(5, total)
	s.Empty(items)
}
