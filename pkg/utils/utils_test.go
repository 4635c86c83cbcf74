package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2023-01-31")
	require.NoError(t, err)
	assert.Equal(t, 2023, date.Year())
	assert.Equal(t, 31, date.Day())

	date, err = ParseDate("")
	require.NoError(t, err)
	assert.True(t, date.IsZero())

	_, err = ParseDate("2023-02-30")
	assert.Error(t, err)
}

func TestGenerateID(t *testing.T) {
	id, err := GenerateID()
	require.NoError(t, err)
	assert.Len(t, id, idLength)
	assert.Regexp(t, "^[A-Za-z0-9]+$", id)
}

func TestPrettyJson(t *testing.T) {
	out := PrettyJson(map[string]int{"2023-01": 40})
	assert.JSONEq(t, `{"2023-01": 40}`, out)
	assert.Contains(t, out, "\n")

	out = PrettyJson([]byte(`{"a":1}`))
	assert.JSONEq(t, `{"a": 1}`, out)
}
