// Package resume extracts skills, categories and role hints from resume text
// with a fixed keyword vocabulary.
package resume

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

const (
	ModeKeyword  = "keyword"
	ModeFallback = "fallback"

	previewLimit = 1000
)

// SkillCategory groups the skills found for one category
type SkillCategory struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

// Analysis is the outcome of analyzing one resume
type Analysis struct {
	FileName        string          `json:"fileName"`
	ExtractedText   string          `json:"extractedText"`
	Skills          []string        `json:"skills"`
	SoftSkills      []string        `json:"softSkills"`
	SkillCategories []SkillCategory `json:"skillCategories"`
	Competencies    []string        `json:"competencies"`
	Roles           []string        `json:"roles"`
	Summary         string          `json:"summary"`
	Feedback        string          `json:"feedback"`
	Suggestions     []string        `json:"suggestions"`
	Confidence      float64         `json:"confidence"`
	TotalSkills     int             `json:"totalSkills"`
	Mode            string          `json:"mode"`
	ExtractedChars  int             `json:"extractedChars"`
}

// Analyzer matches resume text against the keyword vocabulary
type Analyzer struct {
	technical []string
	soft      []string
}

// NewAnalyzer returns an analyzer over the built-in vocabulary
func NewAnalyzer() *Analyzer {
	return &Analyzer{technical: technicalKeywords, soft: softKeywords}
}

// Analyze extracts skills from text and derives the rest of the report
func (a *Analyzer) Analyze(text, fileName string) Analysis {
	skills := matchKeywords(text, a.technical)
	categories := Categorize(skills)

	competencies := make([]string, 0, len(categories))
	for _, c := range categories {
		competencies = append(competencies, c.Name)
	}

	return Analysis{
		FileName:        fileName,
		ExtractedText:   Preview(text),
		Skills:          skills,
		SoftSkills:      matchKeywords(text, a.soft),
		SkillCategories: categories,
		Competencies:    competencies,
		Roles:           InferRoles(skills),
		Summary:         summarize(skills),
		Feedback:        feedback(len(skills)),
		Suggestions:     suggestions(skills),
		Confidence:      confidence(len(skills)),
		TotalSkills:     len(skills),
		Mode:            ModeKeyword,
		ExtractedChars:  len([]rune(text)),
	}
}

// Fallback is stored when a file could not be read at all
func Fallback(fileName, reason string) Analysis {
	return Analysis{
		FileName:        fileName,
		Skills:          []string{},
		SoftSkills:      []string{},
		SkillCategories: []SkillCategory{},
		Competencies:    []string{},
		Roles:           []string{"Software Developer"},
		Summary:         "Resume uploaded but could not be analyzed",
		Feedback:        reason,
		Suggestions:     []string{"Upload a text-based PDF so skills can be extracted"},
		Mode:            ModeFallback,
	}
}

// matchKeywords returns the keywords present in text, sorted. A keyword
// matches case-insensitively when it is not glued to surrounding letters or
// digits, so "Go" does not fire on "Google".
func matchKeywords(text string, keywords []string) []string {
	lower := strings.ToLower(text)
	found := []string{}
	for _, kw := range keywords {
		if containsWord(lower, strings.ToLower(kw)) {
			found = append(found, kw)
		}
	}
	sort.Strings(found)
	return found
}

func containsWord(haystack, needle string) bool {
	for start := 0; ; {
		idx := strings.Index(haystack[start:], needle)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(needle)
		if boundary(haystack, idx-1, needle[0]) && boundary(haystack, end, needle[len(needle)-1]) {
			return true
		}
		start = idx + 1
	}
}

// boundary reports whether the byte at pos may sit next to a keyword edge.
// Edges that are themselves punctuation ("C++", ".NET") need no boundary.
func boundary(s string, pos int, edge byte) bool {
	if pos < 0 || pos >= len(s) {
		return true
	}
	if !isWordByte(edge) {
		return true
	}
	return !isWordByte(s[pos])
}

func isWordByte(b byte) bool {
	r := rune(b)
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Categorize buckets skills into the display categories, dropping empty ones
func Categorize(skills []string) []SkillCategory {
	buckets := make(map[string][]string)
	for _, skill := range skills {
		lower := strings.ToLower(skill)
		cat := CategoryOther
		for _, name := range categoryOrder[:len(categoryOrder)-1] {
			if contains(categoryMembers[name], lower) {
				cat = name
				break
			}
		}
		buckets[cat] = append(buckets[cat], skill)
	}

	out := []SkillCategory{}
	for _, name := range categoryOrder {
		if len(buckets[name]) > 0 {
			out = append(out, SkillCategory{Name: name, Skills: buckets[name]})
		}
	}
	return out
}

// InferRoles suggests roles from a skill list
func InferRoles(skills []string) []string {
	lower := make([]string, len(skills))
	for i, s := range skills {
		lower[i] = strings.ToLower(s)
	}

	var roles []string
	if anyOf(lower, frontendSignals) {
		roles = append(roles, "Frontend Developer")
	}
	if anyOf(lower, backendSignals) {
		roles = append(roles, "Backend Developer")
	}
	if anyOf(lower, fullStackUI) && anyOf(lower, fullStackServer) {
		roles = append(roles, "Full Stack Developer")
	}
	if anyOf(lower, devopsSignals) {
		roles = append(roles, "DevOps Engineer")
	}
	if anyOf(lower, dataSciSignals) {
		roles = append(roles, "Data Scientist")
	}
	if len(roles) == 0 {
		return []string{"Software Developer"}
	}
	return roles
}

// Preview truncates text to the stored preview length
func Preview(text string) string {
	runes := []rune(text)
	if len(runes) <= previewLimit {
		return text
	}
	return string(runes[:previewLimit]) + "..."
}

func summarize(skills []string) string {
	main := skills
	if len(main) > 5 {
		main = main[:5]
	}
	if len(main) == 0 {
		main = []string{"general skills"}
	}
	return fmt.Sprintf("Professional with %d identified technical skills including %s. "+
		"Strong background in technology with diverse skill set suitable for multiple roles.",
		len(skills), strings.Join(main, ", "))
}

func feedback(n int) string {
	switch {
	case n >= 10:
		return "Excellent technical skill coverage. Resume demonstrates strong technical competency across multiple domains."
	case n >= 5:
		return "Good technical skill foundation. Consider adding more specific project examples and certifications."
	default:
		return "Limited technical skills shown. Recommend highlighting more technologies and adding project details."
	}
}

func suggestions(skills []string) []string {
	lower := make([]string, len(skills))
	hasCloudWord, hasAIWord := false, false
	for i, s := range skills {
		lower[i] = strings.ToLower(s)
		if strings.Contains(lower[i], "cloud") {
			hasCloudWord = true
		}
		if strings.Contains(lower[i], "ai") || strings.Contains(lower[i], "ml") {
			hasAIWord = true
		}
	}

	out := []string{}
	if !hasCloudWord && !anyOf(lower, cloudPlatforms) {
		out = append(out, "Consider adding cloud platform experience (AWS, Azure, GCP)")
	}
	if !anyOf(lower, containerSignals) {
		out = append(out, "Container technologies (Docker, Kubernetes) are highly valued")
	}
	if !hasAIWord {
		out = append(out, "AI/ML skills are increasingly important in the job market")
	}
	if len(out) == 0 {
		out = append(out, "Strong skill set. Continue building expertise in emerging technologies.")
	}
	return out
}

func confidence(n int) float64 {
	c := float64(n) / 15
	if c > 0.7 {
		return 0.7
	}
	return c
}

func anyOf(have, want []string) bool {
	for _, w := range want {
		if contains(have, w) {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
