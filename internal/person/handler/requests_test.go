package handler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateRequestDistinguishesOmittedFromEmpty(t *testing.T) {
	var req UpdatePersonRequest
	require.NoError(t, json.Unmarshal([]byte(`{"phone":"","city":"Sibiu"}`), &req))

	cmd := req.ToCommand()

	require.NotNil(t, cmd.Phone)
	assert.Empty(t, *cmd.Phone, "explicit empty string clears the field")
	require.NotNil(t, cmd.City)
	assert.Equal(t, "Sibiu", *cmd.City)
	assert.Nil(t, cmd.FirstName, "omitted fields stay nil")
	assert.Nil(t, cmd.BirthDate)
}

func TestUpdateRequestParsesDates(t *testing.T) {
	var req UpdatePersonRequest
	require.NoError(t, json.Unmarshal([]byte(`{"id_expiry_date":"2030-06-15"}`), &req))

	cmd := req.ToCommand()
	require.NotNil(t, cmd.IDExpiryDate)
	require.NotNil(t, *cmd.IDExpiryDate)
	assert.Equal(t, "2030-06-15", (*cmd.IDExpiryDate).String())
	assert.Nil(t, cmd.IDIssueDate)
}

func TestUpdateRequestRejectsMalformedDate(t *testing.T) {
	var req UpdatePersonRequest
	err := json.Unmarshal([]byte(`{"birth_date":"15-06-2030"}`), &req)
	require.Error(t, err)
}

func TestCreateRequestToCommandCarriesAllFields(t *testing.T) {
	var req CreatePersonRequest
	require.NoError(t, json.Unmarshal([]byte(`{
		"first_name": "Mihai",
		"last_name": "Popescu",
		"birth_date": "1985-03-14",
		"cin_series": "SB",
		"cin_number": "500343",
		"national_id": "1850314324567",
		"email": "mihai@example.ro"
	}`), &req))

	cmd := req.ToCommand()
	assert.Equal(t, "Mihai", cmd.FirstName)
	assert.Equal(t, "500343", cmd.CINNumber)
	assert.Equal(t, "1850314324567", cmd.NationalID)
	require.NotNil(t, cmd.BirthDate)
	assert.Equal(t, "1985-03-14", cmd.BirthDate.String())
}
