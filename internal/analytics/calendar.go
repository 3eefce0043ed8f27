package analytics

import (
	"time"

	"github.com/clinicops/pt-followup/internal/holidays"
	"github.com/clinicops/pt-followup/internal/visits"
)

// DaySummary describes one calendar day of a month view. Count is the number
// of distinct patients with a pending follow-up scheduled on the day.
type DaySummary struct {
	Date     time.Time            `json:"date"`
	Day      int                  `json:"day"`
	Weekday  string               `json:"weekday"`
	Count    int                  `json:"count"`
	Records  []visits.VisitRecord `json:"records"`
	Holiday  *holidays.Holiday    `json:"holiday,omitempty"`
	IsToday  bool                 `json:"isToday"`
	IsSunday bool                 `json:"isSunday"`
}

// MonthDates builds one DaySummary per calendar day of the given month.
// Computed only when a month view is opened, so the cost stays bounded to the
// days of a single month rather than the whole year.
func MonthDates(records []visits.VisitRecord, year int, month time.Month, today time.Time) []DaySummary {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	days := make([]DaySummary, 0, lastDay)
	for day := 1; day <= lastDay; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

		var pending []visits.VisitRecord
		unique := make(map[string]struct{})
		for _, rec := range records {
			if rec.Completed || !visits.SameDay(rec.NextVisitDate, date) {
				continue
			}
			pending = append(pending, rec)
			unique[visits.CanonicalReg(rec.RegNumber)] = struct{}{}
		}

		days = append(days, DaySummary{
			Date:     date,
			Day:      day,
			Weekday:  date.Format("Mon"),
			Count:    len(unique),
			Records:  pending,
			Holiday:  holidays.ForDate(month, day),
			IsToday:  visits.SameDay(date, today),
			IsSunday: date.Weekday() == time.Sunday,
		})
	}
	return days
}

// RecordsForDate returns every record, completed or not, whose follow-up
// falls on the given calendar day. The day drill-down shows both states.
func RecordsForDate(records []visits.VisitRecord, date time.Time) []visits.VisitRecord {
	var out []visits.VisitRecord
	for _, rec := range records {
		if visits.SameDay(rec.NextVisitDate, date) {
			out = append(out, rec)
		}
	}
	return out
}

// PendingCountForDate counts distinct patients still pending on a day.
func PendingCountForDate(records []visits.VisitRecord, date time.Time) int {
	unique := make(map[string]struct{})
	for _, rec := range records {
		if !rec.Completed && visits.SameDay(rec.NextVisitDate, date) {
			unique[visits.CanonicalReg(rec.RegNumber)] = struct{}{}
		}
	}
	return len(unique)
}

// UpcomingDay is one tile of the short-range lookahead strip.
type UpcomingDay struct {
	Date  time.Time `json:"date"`
	Day   int       `json:"day"`
	Month string    `json:"month"`
	Count int       `json:"count"`
}

// UpcomingDays summarizes the n days after today: for each, the pending
// unique-patient count scheduled on that day.
func UpcomingDays(records []visits.VisitRecord, today time.Time, n int) []UpcomingDay {
	counts := ComputeUniquePatientCounts(records)

	out := make([]UpcomingDay, 0, n)
	for i := 1; i <= n; i++ {
		date := today.AddDate(0, 0, i)
		out = append(out, UpcomingDay{
			Date:  date,
			Day:   date.Day(),
			Month: date.Format("Jan 2006"),
			Count: counts.ForDate(date),
		})
	}
	return out
}
