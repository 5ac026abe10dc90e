package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_PreservesOriginalCode(t *testing.T) {
	inner := New(CodeNotFound, "person missing")
	wrapped := Wrap(inner, CodeInternal, "lookup failed")

	assert.True(t, HasCode(wrapped, CodeNotFound))
	assert.False(t, HasCode(wrapped, CodeInternal))
}

func TestWrap_NonDomainErrorGetsNewCode(t *testing.T) {
	wrapped := Wrap(fmt.Errorf("disk on fire"), CodeInternal, "store failed")

	assert.True(t, HasCode(wrapped, CodeInternal))
	assert.ErrorContains(t, wrapped, "store failed")
}

func TestIs_MatchesByCode(t *testing.T) {
	err := New(CodeValidation, "bad cnp")

	assert.ErrorIs(t, err, &Error{Code: CodeValidation})
	assert.NotErrorIs(t, err, &Error{Code: CodeNotFound})
}

func TestNewValidation_CarriesAllViolations(t *testing.T) {
	violations := []Violation{
		{Field: "national_id", Rule: "cnp", Message: "national_id must be exactly 13 digits"},
		{Field: "cin_series", Rule: "cin_series", Message: "cin_series must be 1-2 letters"},
	}
	err := NewValidation(violations)

	require.True(t, HasCode(err, CodeValidation))
	assert.Equal(t, violations, ViolationsOf(err))
}

func TestNewValidation_SingleViolationMessage(t *testing.T) {
	err := NewValidation([]Violation{
		{Field: "first_name", Rule: "required", Message: "first_name is required"},
	})

	assert.EqualError(t, err, "first_name is required")
}

func TestViolationsOf_NonValidationError(t *testing.T) {
	assert.Nil(t, ViolationsOf(errors.New("plain")))
	assert.Nil(t, ViolationsOf(New(CodeNotFound, "gone")))
}
