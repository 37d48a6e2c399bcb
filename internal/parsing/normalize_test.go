package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSkillName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Golang to Go", "Golang", "Go"},
		{"golang to Go", "golang", "Go"},
		{"GOLANG to Go", "GOLANG", "Go"},
		{"go lang to Go", "go  lang", "Go"},
		{"JS to JavaScript", "js", "JavaScript"},
		{"JS to JavaScript uppercase", "JS", "JavaScript"},
		{"TS to TypeScript", "ts", "TypeScript"},
		{"K8s to Kubernetes", "k8s", "Kubernetes"},
		{"reactjs to React", "reactjs", "React"},
		{"nodejs to Node.js", "nodejs", "Node.js"},
		{"postgres to PostgreSQL", "Postgres", "PostgreSQL"},
		{"python to Python", "python", "Python"},
		{"PYTHON to Python", "PYTHON", "Python"},
		{"SQL stays an acronym", "SQL", "SQL"},
		{"AWS stays an acronym", "AWS", "AWS"},
		{"Empty string", "", ""},
		{"Whitespace only", "   ", ""},
		{"Multi-word stays as-is", "Distributed  Systems ", "Distributed Systems"},
		{"Mixed case single word", "FastAPI", "FastAPI"},
		{"Non-ASCII lowercase", "élixir", "Élixir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeSkillName(tt.input))
		})
	}
}

func TestNormalizeSkills(t *testing.T) {
	input := []string{"golang", "Go", " ", "python", "Python ", "k8s", "Docker"}
	assert.Equal(t, []string{"Go", "Python", "Kubernetes", "Docker"}, NormalizeSkills(input))
}

func TestNormalizeSkills_Empty(t *testing.T) {
	assert.Equal(t, []string{}, NormalizeSkills(nil))
}

func TestCleanList(t *testing.T) {
	assert.Equal(t, []string{"English", "Hindi"}, cleanList([]string{" English", "", "Hindi", "English"}))
}
