package experience

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeHistory(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadWorkHistory_BareArray(t *testing.T) {
	path := writeHistory(t, `[
		{"start_date": "01/2020", "end_date": "12/2021"},
		{"start_date": "06/2021", "end_date": "Present"}
	]`)

	records, err := LoadWorkHistory(path)
	require.NoError(t, err)
	assert.Equal(t, []RawInterval{
		{Start: "01/2020", End: "12/2021"},
		{Start: "06/2021", End: "Present"},
	}, records)
}

func TestLoadWorkHistory_WrappedShapes(t *testing.T) {
	lower := writeHistory(t, `{"work_experience": [{"company_name": "Acme", "start_date": "Jan 2020", "end_date": null}]}`)
	records, err := LoadWorkHistory(lower)
	require.NoError(t, err)
	assert.Equal(t, []RawInterval{{Start: "Jan 2020", End: ""}}, records)

	extraction := writeHistory(t, `{"Work_Experience": [{"Company_Name": "Acme", "Job_Title": "Engineer", "start_date": "2020-01", "end_date": "current"}]}`)
	records, err = LoadWorkHistory(extraction)
	require.NoError(t, err)
	assert.Equal(t, []RawInterval{{Start: "2020-01", End: "current"}}, records)
}

func TestLoadWorkHistory_FileNotFound(t *testing.T) {
	_, err := LoadWorkHistory(filepath.Join(t.TempDir(), "nonexistent_file.json"))
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr), "error should be LoadError type")
	assert.Contains(t, loadErr.Error(), "failed to read file")
}

func TestLoadWorkHistory_InvalidJSON(t *testing.T) {
	_, err := LoadWorkHistory(writeHistory(t, "{ invalid json }"))
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr), "error should be LoadError type")
	assert.Contains(t, loadErr.Error(), "schema validation failed")
}

func TestLoadWorkHistory_SchemaValidationFailure(t *testing.T) {
	_, err := LoadWorkHistory(writeHistory(t, `[{"start_date": 2020, "end_date": "Present"}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
}

func TestDecodeWorkHistory_Empty(t *testing.T) {
	records, err := DecodeWorkHistory([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 0.0, TotalExperience(records, asOf))
}
