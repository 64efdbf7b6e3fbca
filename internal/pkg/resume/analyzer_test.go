package resume

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Jordan Lee - Senior Engineer
Built microservices in Go and Python on AWS with Docker and Kubernetes.
Frontend work in React and TypeScript. Data stored in PostgreSQL and Redis.
Strong communication and mentoring; led Agile teams. Worked at Google.`

func TestAnalyze_ExtractsAndCategorizes(t *testing.T) {
	a := NewAnalyzer().Analyze(sampleResume, "jordan.pdf")

	assert.Equal(t, []string{
		"AWS", "Agile", "Docker", "Go", "Kubernetes", "Microservices",
		"PostgreSQL", "Python", "React", "Redis", "TypeScript",
	}, a.Skills)
	assert.Equal(t, []string{"Communication", "Mentoring"}, a.SoftSkills)
	assert.Equal(t, 11, a.TotalSkills)
	assert.Equal(t, ModeKeyword, a.Mode)
	assert.Equal(t, "jordan.pdf", a.FileName)

	require.Len(t, a.SkillCategories, 5)
	assert.Equal(t, SkillCategory{Name: CategoryLanguages, Skills: []string{"Go", "Python", "TypeScript"}}, a.SkillCategories[0])
	assert.Equal(t, SkillCategory{Name: CategoryFrameworks, Skills: []string{"React"}}, a.SkillCategories[1])
	assert.Equal(t, SkillCategory{Name: CategoryDatabases, Skills: []string{"PostgreSQL", "Redis"}}, a.SkillCategories[2])
	assert.Equal(t, SkillCategory{Name: CategoryCloud, Skills: []string{"AWS", "Docker", "Kubernetes"}}, a.SkillCategories[3])
	assert.Equal(t, SkillCategory{Name: CategoryOther, Skills: []string{"Agile", "Microservices"}}, a.SkillCategories[4])
	assert.Equal(t, []string{CategoryLanguages, CategoryFrameworks, CategoryDatabases, CategoryCloud, CategoryOther}, a.Competencies)

	assert.Equal(t, []string{"Frontend Developer", "Backend Developer", "Full Stack Developer", "DevOps Engineer"}, a.Roles)
	assert.Equal(t, 0.7, a.Confidence)
	assert.True(t, strings.HasPrefix(a.Summary, "Professional with 11 identified technical skills including AWS, Agile, Docker, Go, Kubernetes."))
	assert.Contains(t, a.Feedback, "Excellent technical skill coverage")
	assert.Equal(t, []string{"AI/ML skills are increasingly important in the job market"}, a.Suggestions)
}

func TestAnalyze_WordBoundaries(t *testing.T) {
	a := NewAnalyzer().Analyze("JavaScript on GitHub, C++ and C# with ASP.NET, CI/CD pipelines", "x.pdf")

	assert.Equal(t, []string{".NET", "C#", "C++", "CI/CD", "JavaScript"}, a.Skills)
	assert.NotContains(t, a.Skills, "Java")
	assert.NotContains(t, a.Skills, "Git")
}

func TestAnalyze_EmptyText(t *testing.T) {
	a := NewAnalyzer().Analyze("", "empty.pdf")

	assert.Empty(t, a.Skills)
	assert.Equal(t, []string{"Software Developer"}, a.Roles)
	assert.Equal(t, 0.0, a.Confidence)
	assert.Contains(t, a.Summary, "including general skills")
	assert.Contains(t, a.Feedback, "Limited technical skills")
	assert.Len(t, a.Suggestions, 3)
}

func TestConfidenceScale(t *testing.T) {
	assert.InDelta(t, 0.2, confidence(3), 1e-9)
	assert.Equal(t, 0.7, confidence(15))
}

func TestFeedbackTiers(t *testing.T) {
	assert.Contains(t, feedback(10), "Excellent")
	assert.Contains(t, feedback(5), "Good technical skill foundation")
	assert.Contains(t, feedback(4), "Limited")
}

func TestInferRoles(t *testing.T) {
	assert.Equal(t, []string{"Data Scientist"}, InferRoles([]string{"TensorFlow"}))
	assert.Equal(t, []string{"Frontend Developer"}, InferRoles([]string{"CSS"}))
	assert.Equal(t, []string{"Software Developer"}, InferRoles([]string{"Scrum"}))
}

func TestPreview(t *testing.T) {
	short := "short text"
	assert.Equal(t, short, Preview(short))

	long := strings.Repeat("é", 1200)
	p := Preview(long)
	assert.True(t, strings.HasSuffix(p, "..."))
	assert.Equal(t, 1003, len([]rune(p)))
}

func TestFallback(t *testing.T) {
	a := Fallback("scan.pdf", "no text layer")

	assert.Equal(t, ModeFallback, a.Mode)
	assert.Equal(t, "Resume uploaded but could not be analyzed", a.Summary)
	assert.Equal(t, "no text layer", a.Feedback)
	assert.Empty(t, a.Skills)
}
