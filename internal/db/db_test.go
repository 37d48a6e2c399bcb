package db

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/resume-parser/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListResumesOptions_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   ListResumesOptions
		want ListResumesOptions
	}{
		{"defaults", ListResumesOptions{}, ListResumesOptions{Limit: 50}},
		{"limit capped", ListResumesOptions{Limit: 500, Offset: 10}, ListResumesOptions{Limit: 100, Offset: 10}},
		{"negative offset", ListResumesOptions{Limit: 5, Offset: -3}, ListResumesOptions{Limit: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.normalize())
		})
	}
}

func TestResume_JSON(t *testing.T) {
	resume := Resume{
		ID:                   uuid.MustParse("6f1c1f8e-6a53-4c35-9c58-1a4d5e3b2c10"),
		Filename:             "jane.pdf",
		FullName:             "Jane Doe",
		TotalExperienceYears: 4,
		TotalExperience:      "4 years",
		Registration: types.Registration{
			PersonalInfo:    types.PersonalInfo{FullName: "Jane Doe"},
			TotalExperience: "4 years",
		},
	}

	data, err := json.Marshal(resume)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "6f1c1f8e-6a53-4c35-9c58-1a4d5e3b2c10", decoded["id"])
	assert.Equal(t, "4 years", decoded["total_experience"])
	assert.Contains(t, decoded, "registration")
}
