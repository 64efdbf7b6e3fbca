package attendancebot

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/yigit/benchtrack/internal/app/models"
)

const (
	dateLayout = "2006-01-02"
	// check-ins after this time count as late
	lateAfter     = "09:30"
	personalDays  = 30
	recentRecords = 5
)

// Person is someone whose attendance is tracked
type Person struct {
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// Store provides the data the bot reads. Records returns the records of
// every person in the inclusive date range.
type Store interface {
	FindPersonByName(ctx context.Context, name string) (*Person, error)
	ListPeople(ctx context.Context) ([]Person, error)
	Records(ctx context.Context, from, to string) ([]models.AttendanceRecord, error)
}

// Answer is the bot reply
type Answer struct {
	Type    string      `json:"type"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Stats summarizes a set of attendance records
type Stats struct {
	Name           string                    `json:"name,omitempty"`
	TotalDays      int                       `json:"totalDays"`
	PresentDays    int                       `json:"presentDays"`
	AbsentDays     int                       `json:"absentDays"`
	LeaveDays      int                       `json:"leaveDays"`
	AttendanceRate float64                   `json:"attendanceRate"`
	RecentRecords  []models.AttendanceRecord `json:"recentRecords,omitempty"`
}

// TodaySummary describes attendance on a single day
type TodaySummary struct {
	Date             string   `json:"date"`
	TotalConsultants int      `json:"totalConsultants"`
	PresentCount     int      `json:"presentCount"`
	AbsentCount      int      `json:"absentCount"`
	LateCount        int      `json:"lateCount"`
	AttendanceRate   float64  `json:"attendanceRate"`
	PresentUsers     []Person `json:"presentUsers"`
	AbsentUsers      []Person `json:"absentUsers"`
	LateUsers        []Person `json:"lateUsers"`
}

// WeekDay is one row of the weekly view
type WeekDay struct {
	Date    string  `json:"date"`
	Day     string  `json:"day"`
	Status  string  `json:"status"`
	CheckIn *string `json:"checkIn,omitempty"`
}

// Ranking is one consultant's rate over a period
type Ranking struct {
	UserID         int64   `json:"userId"`
	Name           string  `json:"name"`
	TotalDays      int     `json:"totalDays"`
	PresentDays    int     `json:"presentDays"`
	AttendanceRate float64 `json:"attendanceRate"`
}

// Bot answers attendance questions
type Bot struct {
	store Store
	now   func() time.Time
}

// New creates a Bot reading from store
func New(store Store) *Bot {
	return &Bot{store: store, now: time.Now}
}

// WithClock overrides the clock used for "today"
func (b *Bot) WithClock(now func() time.Time) *Bot {
	b.now = now
	return b
}

// Ask answers question on behalf of asker. Personal intents need asker;
// without one they fall back to the help answer.
func (b *Bot) Ask(ctx context.Context, question string, asker *Person) (*Answer, error) {
	intent, name := Classify(question)

	switch intent {
	case IntentPerson:
		return b.personStats(ctx, name)
	case IntentPersonal, IntentDaysPresent:
		if asker == nil {
			return help(), nil
		}
		return b.personalStats(ctx, *asker, intent)
	case IntentMonthly:
		if asker == nil {
			return help(), nil
		}
		return b.monthlyStats(ctx, *asker)
	case IntentWeekly:
		if asker == nil {
			return help(), nil
		}
		return b.weekly(ctx, *asker)
	case IntentToday:
		summary, err := b.today(ctx)
		if err != nil {
			return nil, err
		}
		return &Answer{
			Type:    string(IntentToday),
			Message: fmt.Sprintf("Today's attendance summary (%s):", summary.Date),
			Data:    summary,
		}, nil
	case IntentAbsent:
		summary, err := b.today(ctx)
		if err != nil {
			return nil, err
		}
		return &Answer{
			Type:    string(IntentAbsent),
			Message: fmt.Sprintf("Employees absent today (%s):", summary.Date),
			Data: map[string]interface{}{
				"absentUsers": summary.AbsentUsers,
				"absentCount": summary.AbsentCount,
			},
		}, nil
	case IntentLate:
		summary, err := b.today(ctx)
		if err != nil {
			return nil, err
		}
		return &Answer{
			Type:    string(IntentLate),
			Message: fmt.Sprintf("Late arrivals today (%s), after %s:", summary.Date, lateAfter),
			Data: map[string]interface{}{
				"lateUsers": summary.LateUsers,
				"lateCount": summary.LateCount,
			},
		}, nil
	case IntentBest, IntentWorst:
		return b.extreme(ctx, intent)
	case IntentTeam:
		return b.teamAverage(ctx)
	default:
		return help(), nil
	}
}

func (b *Bot) personStats(ctx context.Context, name string) (*Answer, error) {
	person, err := b.store.FindPersonByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return &Answer{
			Type:    "error",
			Message: fmt.Sprintf("Could not find consultant '%s'. Please check the name and try again.", name),
		}, nil
	}

	stats, err := b.recentStats(ctx, *person)
	if err != nil {
		return nil, err
	}
	return &Answer{
		Type:    string(IntentPerson),
		Message: fmt.Sprintf("Attendance summary for %s:", person.Name),
		Data:    stats,
	}, nil
}

func (b *Bot) personalStats(ctx context.Context, asker Person, intent Intent) (*Answer, error) {
	stats, err := b.recentStats(ctx, asker)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Your attendance over the last %d days:", personalDays)
	if intent == IntentDaysPresent {
		message = fmt.Sprintf("You were present %d of %d recorded days in the last %d days.",
			stats.PresentDays, stats.TotalDays, personalDays)
	}
	return &Answer{Type: string(intent), Message: message, Data: stats}, nil
}

func (b *Bot) recentStats(ctx context.Context, person Person) (Stats, error) {
	today := b.now()
	records, err := b.store.Records(ctx, today.AddDate(0, 0, -personalDays).Format(dateLayout), today.Format(dateLayout))
	if err != nil {
		return Stats{}, err
	}
	stats := Summarize(forUser(records, person.UserID))
	stats.Name = person.Name
	return stats, nil
}

func (b *Bot) monthlyStats(ctx context.Context, asker Person) (*Answer, error) {
	from, to := monthRange(b.now())
	records, err := b.store.Records(ctx, from, to)
	if err != nil {
		return nil, err
	}
	stats := Summarize(forUser(records, asker.UserID))
	stats.Name = asker.Name
	return &Answer{
		Type:    string(IntentMonthly),
		Message: fmt.Sprintf("Your attendance for %s:", b.now().Format("January 2006")),
		Data:    stats,
	}, nil
}

func (b *Bot) weekly(ctx context.Context, asker Person) (*Answer, error) {
	start := WeekStart(b.now())
	end := start.AddDate(0, 0, 6)

	records, err := b.store.Records(ctx, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]models.AttendanceRecord)
	for _, r := range forUser(records, asker.UserID) {
		byDate[r.Date] = r
	}

	days := make([]WeekDay, 0, 7)
	present := 0
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		day := WeekDay{Date: d.Format(dateLayout), Day: d.Weekday().String(), Status: "No record"}
		if r, ok := byDate[day.Date]; ok {
			day.Status = string(r.Status)
			day.CheckIn = r.CheckIn
			if r.Status.CountsAsPresent() {
				present++
			}
		}
		days = append(days, day)
	}

	return &Answer{
		Type:    string(IntentWeekly),
		Message: fmt.Sprintf("Your attendance for the week of %s:", start.Format(dateLayout)),
		Data: map[string]interface{}{
			"weekStart":   start.Format(dateLayout),
			"weekEnd":     end.Format(dateLayout),
			"days":        days,
			"presentDays": present,
			"totalDays":   7,
		},
	}, nil
}

func (b *Bot) today(ctx context.Context) (*TodaySummary, error) {
	date := b.now().Format(dateLayout)
	people, err := b.store.ListPeople(ctx)
	if err != nil {
		return nil, err
	}
	records, err := b.store.Records(ctx, date, date)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]Person, len(people))
	for _, p := range people {
		byID[p.UserID] = p
	}

	summary := &TodaySummary{
		Date:             date,
		TotalConsultants: len(people),
		PresentUsers:     []Person{},
		AbsentUsers:      []Person{},
		LateUsers:        []Person{},
	}
	for _, r := range records {
		p, ok := byID[r.UserID]
		if !ok {
			p = Person{UserID: r.UserID, Name: r.UserName}
		}
		switch r.Status {
		case models.AttendancePresent:
			summary.PresentUsers = append(summary.PresentUsers, p)
			if IsLate(r) {
				summary.LateUsers = append(summary.LateUsers, p)
			}
		case models.AttendanceAbsent:
			summary.AbsentUsers = append(summary.AbsentUsers, p)
		}
	}
	summary.PresentCount = len(summary.PresentUsers)
	summary.AbsentCount = len(summary.AbsentUsers)
	summary.LateCount = len(summary.LateUsers)
	summary.AttendanceRate = Rate(summary.PresentCount, summary.TotalConsultants)
	return summary, nil
}

// rankings returns per person stats for the current month, best first
func (b *Bot) rankings(ctx context.Context) ([]Ranking, error) {
	people, err := b.store.ListPeople(ctx)
	if err != nil {
		return nil, err
	}
	from, to := monthRange(b.now())
	records, err := b.store.Records(ctx, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]Ranking, 0, len(people))
	for _, p := range people {
		stats := Summarize(forUser(records, p.UserID))
		out = append(out, Ranking{
			UserID:         p.UserID,
			Name:           p.Name,
			TotalDays:      stats.TotalDays,
			PresentDays:    stats.PresentDays,
			AttendanceRate: stats.AttendanceRate,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AttendanceRate > out[j].AttendanceRate
	})
	return out, nil
}

func (b *Bot) extreme(ctx context.Context, intent Intent) (*Answer, error) {
	ranked, err := b.rankings(ctx)
	if err != nil {
		return nil, err
	}

	var pick *Ranking
	if intent == IntentBest {
		if len(ranked) > 0 && ranked[0].AttendanceRate > 0 {
			pick = &ranked[0]
		}
	} else {
		for i := len(ranked) - 1; i >= 0; i-- {
			if ranked[i].TotalDays > 0 {
				pick = &ranked[i]
				break
			}
		}
	}

	if pick == nil {
		return &Answer{Type: string(intent), Message: "No attendance data recorded this month."}, nil
	}
	label := "Best"
	if intent == IntentWorst {
		label = "Lowest"
	}
	return &Answer{
		Type:    string(intent),
		Message: fmt.Sprintf("%s attendance this month: %s with %.1f%%", label, pick.Name, pick.AttendanceRate),
		Data:    pick,
	}, nil
}

func (b *Bot) teamAverage(ctx context.Context) (*Answer, error) {
	ranked, err := b.rankings(ctx)
	if err != nil {
		return nil, err
	}

	avg := 0.0
	if len(ranked) > 0 {
		sum := 0.0
		for _, r := range ranked {
			sum += r.AttendanceRate
		}
		avg = round1(sum / float64(len(ranked)))
	}
	return &Answer{
		Type:    string(IntentTeam),
		Message: fmt.Sprintf("Team average attendance this month: %.1f%%", avg),
		Data: map[string]interface{}{
			"teamAverage":      avg,
			"totalConsultants": len(ranked),
			"consultants":      ranked,
		},
	}, nil
}

func help() *Answer {
	return &Answer{
		Type:    string(IntentHelp),
		Message: "I can answer questions about attendance. Try one of these:",
		Data: map[string]interface{}{
			"suggestions": []string{
				"What is my attendance?",
				"Who is present today?",
				"Show my weekly attendance",
				"What is my attendance this month?",
				"Who has the best attendance?",
				"Who has the lowest attendance?",
				"What is the team average?",
				"Show me absent employees today",
				"Who came late today?",
				"How many days present?",
				"What is John's attendance?",
			},
		},
	}
}

// Summarize counts statuses. Present includes half days; the most recent
// records come first in RecentRecords.
func Summarize(records []models.AttendanceRecord) Stats {
	stats := Stats{TotalDays: len(records)}
	for _, r := range records {
		switch {
		case r.Status.CountsAsPresent():
			stats.PresentDays++
		case r.Status == models.AttendanceAbsent:
			stats.AbsentDays++
		case r.Status == models.AttendanceLeave:
			stats.LeaveDays++
		}
	}
	stats.AttendanceRate = Rate(stats.PresentDays, stats.TotalDays)

	sorted := make([]models.AttendanceRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date > sorted[j].Date })
	if len(sorted) > recentRecords {
		sorted = sorted[:recentRecords]
	}
	stats.RecentRecords = sorted
	return stats
}

// Rate is present/total as a percentage with one decimal
func Rate(present, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(present) / float64(total) * 100)
}

// IsLate reports a present record checked in after 09:30
func IsLate(r models.AttendanceRecord) bool {
	return r.Status == models.AttendancePresent && r.CheckIn != nil && *r.CheckIn > lateAfter
}

// WeekStart returns the Monday of t's week at midnight
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	d := t.AddDate(0, 0, -offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

func monthRange(t time.Time) (string, string) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first.Format(dateLayout), first.AddDate(0, 1, -1).Format(dateLayout)
}

func forUser(records []models.AttendanceRecord, userID int64) []models.AttendanceRecord {
	out := make([]models.AttendanceRecord, 0)
	for _, r := range records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
