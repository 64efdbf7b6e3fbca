// Package attendancebot answers free-text attendance questions by mapping
// them to a fixed set of intents.
package attendancebot

import (
	"regexp"
	"strings"
)

// Intent is a recognized question type
type Intent string

const (
	IntentPerson      Intent = "person_stats"
	IntentPersonal    Intent = "personal_stats"
	IntentToday       Intent = "today_summary"
	IntentWeekly      Intent = "weekly_attendance"
	IntentMonthly     Intent = "monthly_attendance"
	IntentBest        Intent = "best_performer"
	IntentWorst       Intent = "worst_performer"
	IntentTeam        Intent = "team_average"
	IntentAbsent      Intent = "absent_today"
	IntentLate        Intent = "late_arrivals"
	IntentDaysPresent Intent = "days_present"
	IntentHelp        Intent = "help"
)

type rule struct {
	intent  Intent
	phrases []string
}

// Order matters: narrower phrases ("absent today") must win over broader
// ones ("today").
var rules = []rule{
	{IntentPersonal, []string{"my attendance", "my rate", "how am i", "my record"}},
	{IntentAbsent, []string{"absent today", "who is absent", "missing today"}},
	{IntentLate, []string{"late arrivals", "who came late", "late today"}},
	{IntentToday, []string{"today", "who is here"}},
	{IntentWeekly, []string{"this week", "weekly", "week attendance"}},
	{IntentMonthly, []string{"this month", "monthly", "month attendance"}},
	{IntentBest, []string{"best attendance", "highest", "top performer"}},
	{IntentWorst, []string{"worst attendance", "lowest", "poor attendance"}},
	{IntentTeam, []string{"team average", "overall", "company average"}},
	{IntentDaysPresent, []string{"days present", "how many days"}},
}

var personPatterns = []*regexp.Regexp{
	regexp.MustCompile(`what is (\w+(?:\s+\w+)*)'s attendance`),
	regexp.MustCompile(`how is (\w+(?:\s+\w+)*)'s attendance`),
	regexp.MustCompile(`(\w+(?:\s+\w+)*)'s attendance`),
	regexp.MustCompile(`attendance of (\w+(?:\s+\w+)*)`),
	regexp.MustCompile(`show (\w+(?:\s+\w+)*) attendance`),
	regexp.MustCompile(`get (\w+(?:\s+\w+)*) attendance`),
	regexp.MustCompile(`what is (\w+(?:\s+\w+)*) attendance (?:percentage|like)`),
	regexp.MustCompile(`(\w+(?:\s+\w+)*) attendance (?:percentage|like)`),
}

// words that never form part of a person's name in a question
var notNames = map[string]bool{
	"my": true, "team": true, "overall": true, "company": true, "today": true,
	"this": true, "the": true, "best": true, "worst": true, "poor": true,
	"week": true, "weekly": true, "month": true, "monthly": true, "who": true,
	"has": true, "what": true, "is": true, "our": true, "me": true, "i": true,
}

// Classify maps a question onto an intent. For IntentPerson the returned
// name is the person asked about.
func Classify(question string) (Intent, string) {
	q := strings.ToLower(strings.TrimSpace(question))

	if name := extractPerson(q); name != "" {
		return IntentPerson, name
	}

	for _, r := range rules {
		for _, p := range r.phrases {
			if strings.Contains(q, p) {
				return r.intent, ""
			}
		}
	}
	return IntentHelp, ""
}

func extractPerson(q string) string {
	for _, re := range personPatterns {
		m := re.FindStringSubmatch(q)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if isName(name) {
			return name
		}
	}
	return ""
}

func isName(candidate string) bool {
	words := strings.Fields(candidate)
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if notNames[w] {
			return false
		}
	}
	return true
}
