package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registru/internal/person/models"
	dErrors "registru/pkg/domain-errors"
)

func datePtr(year int, month time.Month, day int) *models.Date {
	d := models.NewDate(year, month, day)
	return &d
}

func TestValidNationalID(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"1960101223344", true},
		{"196010122334", false},   // 12 digits
		{"19601012233445", false}, // 14 digits
		{"196010122334a", false},
		{" 1960101223344", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidNationalID(tc.input), "input %q", tc.input)
	}
}

func TestValidCINSeries(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"S", true},
		{"SB", true},
		{"sb", true},
		{"SBX", false},
		{"S1", false},
		{"1", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidCINSeries(tc.input), "input %q", tc.input)
	}
}

func TestValidCINNumber(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"5", true},
		{"500343", true},
		{"5003431", false},
		{"50034a", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidCINNumber(tc.input), "input %q", tc.input)
	}
}

func TestValidDateOrder(t *testing.T) {
	issue := datePtr(2020, time.June, 1)

	assert.True(t, ValidDateOrder(nil, nil))
	assert.True(t, ValidDateOrder(issue, nil))
	assert.True(t, ValidDateOrder(nil, datePtr(2020, time.June, 1)))
	assert.True(t, ValidDateOrder(issue, datePtr(2020, time.June, 1)), "same day is allowed")
	assert.True(t, ValidDateOrder(issue, datePtr(2030, time.June, 1)))
	assert.False(t, ValidDateOrder(issue, datePtr(2020, time.May, 31)))
}

func TestNormalizeCINSeries(t *testing.T) {
	assert.Equal(t, "SB", NormalizeCINSeries(" sb "))
	assert.Equal(t, "", NormalizeCINSeries(""))
}

func validPerson() *models.Person {
	return &models.Person{
		FirstName:    "Mihai",
		LastName:     "Popescu",
		NationalID:   "1960101223344",
		CINSeries:    "SB",
		CINNumber:    "500343",
		IDIssueDate:  datePtr(2020, time.June, 1),
		IDExpiryDate: datePtr(2030, time.June, 1),
		Email:        "mihai.popescu@example.ro",
	}
}

func TestValidatePerson_AcceptsValidRecord(t *testing.T) {
	assert.NoError(t, ValidatePerson(validPerson()))
}

func TestValidatePerson_NormalizedFixtureNeverRejects(t *testing.T) {
	p := validPerson()
	p.CINSeries = " sb "
	p.FirstName = "  Mihai "

	NormalizePerson(p)
	require.NoError(t, ValidatePerson(p))
	assert.Equal(t, "SB", p.CINSeries)
	assert.Equal(t, "Mihai", p.FirstName)
}

func TestValidatePerson_ReportsAllViolationsAtOnce(t *testing.T) {
	p := validPerson()
	p.FirstName = ""
	p.NationalID = "12345"
	p.CINSeries = "SBX"
	p.IDIssueDate = datePtr(2030, time.June, 1)
	p.IDExpiryDate = datePtr(2020, time.June, 1)

	err := ValidatePerson(p)
	require.Error(t, err)

	violations := dErrors.ViolationsOf(err)
	fields := make(map[string]string, len(violations))
	for _, v := range violations {
		fields[v.Field] = v.Rule
	}
	assert.Equal(t, "required", fields["first_name"])
	assert.Equal(t, "cnp", fields["national_id"])
	assert.Equal(t, "cin_series", fields["cin_series"])
	assert.Equal(t, "date_order", fields["id_expiry_date"])
}

func TestValidatePerson_OptionalFieldsMayBeEmpty(t *testing.T) {
	p := &models.Person{FirstName: "Ana", LastName: "Ionescu"}
	assert.NoError(t, ValidatePerson(p))
}

func TestValidatePerson_LengthCaps(t *testing.T) {
	p := validPerson()
	p.Address = strings.Repeat("a", 256)
	p.Phone = strings.Repeat("0", 31)

	err := ValidatePerson(p)
	require.Error(t, err)

	violations := dErrors.ViolationsOf(err)
	require.Len(t, violations, 2)
	assert.Equal(t, "address", violations[0].Field)
	assert.Equal(t, "phone", violations[1].Field)
}

func TestValidatePerson_BlankNameRejected(t *testing.T) {
	p := validPerson()
	p.LastName = "   "

	err := ValidatePerson(p)
	require.Error(t, err)
	violations := dErrors.ViolationsOf(err)
	require.Len(t, violations, 1)
	assert.Equal(t, "last_name", violations[0].Field)
}
