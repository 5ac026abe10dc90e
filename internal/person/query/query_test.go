package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registru/internal/person/models"
)

func person(first, last string) *models.Person {
	return &models.Person{FirstName: first, LastName: last}
}

func born(first, last string, year int) *models.Person {
	p := person(first, last)
	d := models.NewDate(year, time.January, 1)
	p.BirthDate = &d
	return p
}

func names(records []*models.Person) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.LastName
	}
	return out
}

func TestApply_DefaultOrderIsLastNameThenFirstName(t *testing.T) {
	records := []*models.Person{
		person("Mihai", "Popescu"),
		person("Ana", "Ionescu"),
		person("Dan", "Ionescu"),
	}

	items, total := Apply(records, Params{Page: 1, PageSize: 20})

	assert.Equal(t, 3, total)
	require.Len(t, items, 3)
	assert.Equal(t, "Ana", items[0].FirstName)
	assert.Equal(t, "Dan", items[1].FirstName)
	assert.Equal(t, "Popescu", items[2].LastName)
}

func TestApply_UnknownSortFallsBackToDefault(t *testing.T) {
	records := []*models.Person{
		person("Mihai", "Popescu"),
		person("Ana", "Ionescu"),
	}

	items, _ := Apply(records, Params{Sort: "email", Page: 1, PageSize: 20})

	assert.Equal(t, []string{"Ionescu", "Popescu"}, names(items))
}

func TestApply_ExplicitSortSingleKeyKeepsStorageOrderOnTies(t *testing.T) {
	records := []*models.Person{
		person("Zoe", "Marin"),
		person("Zoe", "Albu"),
	}

	// first_name ties; storage order (Marin before Albu) must survive.
	items, _ := Apply(records, Params{Sort: SortFirstName, Page: 1, PageSize: 20})

	assert.Equal(t, []string{"Marin", "Albu"}, names(items))
}

func TestApply_DescOnlyOnExactToken(t *testing.T) {
	records := []*models.Person{
		person("Ana", "Ionescu"),
		person("Mihai", "Popescu"),
	}

	items, _ := Apply(records, Params{Sort: SortLastName, Dir: "desc", Page: 1, PageSize: 20})
	assert.Equal(t, []string{"Popescu", "Ionescu"}, names(items))

	for _, dir := range []string{"DESC", "descending", "asc", "", "1"} {
		items, _ = Apply(records, Params{Sort: SortLastName, Dir: dir, Page: 1, PageSize: 20})
		assert.Equal(t, []string{"Ionescu", "Popescu"}, names(items), "dir %q", dir)
	}
}

func TestApply_BirthDateSortPlacesMissingDatesLast(t *testing.T) {
	records := []*models.Person{
		person("Ana", "FaraData"),
		born("Dan", "Tanar", 2000),
		born("Ioana", "Batran", 1950),
	}

	items, _ := Apply(records, Params{Sort: SortBirthDate, Page: 1, PageSize: 20})
	assert.Equal(t, []string{"Batran", "Tanar", "FaraData"}, names(items))

	items, _ = Apply(records, Params{Sort: SortBirthDate, Dir: "desc", Page: 1, PageSize: 20})
	assert.Equal(t, []string{"FaraData", "Tanar", "Batran"}, names(items))
}

func TestMatches_SearchesFourFieldsCaseInsensitively(t *testing.T) {
	p := &models.Person{
		FirstName:  "Mihai",
		LastName:   "Popescu",
		NationalID: "1960101223344",
		CINNumber:  "500343",
		City:       "Sibiu",
	}

	assert.True(t, Matches(p, "mihai"))
	assert.True(t, Matches(p, "POPE"))
	assert.True(t, Matches(p, "500343"))
	assert.True(t, Matches(p, "96010"))
	assert.False(t, Matches(p, "Sibiu"), "city is not a searched field")
	assert.True(t, Matches(p, ""))
}

func TestApply_FilterByCINNumber(t *testing.T) {
	records := []*models.Person{
		{FirstName: "Mihai", LastName: "Popescu", CINNumber: "500343"},
		{FirstName: "Ana", LastName: "Ionescu", CINNumber: "123456"},
	}

	items, total := Apply(records, Params{Q: "500343", Page: 1, PageSize: 20})

	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Popescu", items[0].LastName)
}

func TestApply_OutOfRangePageReturnsEmptyWithTotal(t *testing.T) {
	records := make([]*models.Person, 0, 20)
	for i := 0; i < 20; i++ {
		records = append(records, person("Ion", "Popa"))
	}

	items, total := Apply(records, Params{Page: 2, PageSize: 20})

	assert.Equal(t, 20, total)
	assert.Empty(t, items)
}

func TestApply_SecondPageContents(t *testing.T) {
	records := []*models.Person{
		person("A", "Alfa"),
		person("B", "Beta"),
		person("C", "Gamma"),
	}

	items, total := Apply(records, Params{Page: 2, PageSize: 2})

	assert.Equal(t, 3, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Gamma", items[0].LastName)
}

func TestNormalized_ClampsPageAndSize(t *testing.T) {
	p := Params{Page: 0, PageSize: 0}.Normalized(20)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PageSize)

	p = Params{Page: -3, PageSize: 0}.Normalized(0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPageSize, p.PageSize)
}
