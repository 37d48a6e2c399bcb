package parsing

import (
	"strings"
	"unicode/utf8"
)

// skillNormalizations maps common skill name variants to canonical names
var skillNormalizations = map[string]string{
	"golang":     "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"kubernetes": "Kubernetes",
	"react.js":   "React",
	"reactjs":    "React",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"node.js":    "Node.js",
	"nodejs":     "Node.js",
	"node":       "Node.js",
	"postgres":   "PostgreSQL",
	"postgresql": "PostgreSQL",
	"mongodb":    "MongoDB",
	"mongo":      "MongoDB",
	"mysql":      "MySQL",
	"github":     "GitHub",
	"gitlab":     "GitLab",
	"c#":         "C#",
	"c++":        "C++",
	"ms excel":   "Microsoft Excel",
	"excel":      "Microsoft Excel",
}

// maxAcronymLen is the longest all-caps word kept as an acronym (SQL, AWS, HTML).
const maxAcronymLen = 4

// NormalizeSkillName normalizes a skill name to its canonical form
func NormalizeSkillName(skillName string) string {
	normalized := strings.Join(strings.Fields(skillName), " ")
	if normalized == "" {
		return ""
	}

	lower := strings.ToLower(normalized)
	if canonical, ok := skillNormalizations[lower]; ok {
		return canonical
	}

	// Multi-word names are kept as written
	if strings.Contains(normalized, " ") {
		return normalized
	}

	upper := strings.ToUpper(normalized)
	switch {
	case normalized == upper && normalized != lower:
		// All caps: short words are acronyms, longer ones were shouted
		if utf8.RuneCountInString(normalized) <= maxAcronymLen {
			return normalized
		}
		return capitalize(lower)
	case normalized == lower:
		return capitalize(normalized)
	default:
		// Mixed case is taken as intentional
		return normalized
	}
}

// NormalizeSkills normalizes every skill and drops empties and duplicates, keeping first-seen order
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		name := NormalizeSkillName(s)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	return out
}

// cleanList trims items and drops empties and exact duplicates
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return strings.ToUpper(string(r)) + s[size:]
}
