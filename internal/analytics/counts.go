// Package analytics derives per-date, per-month and per-patient views from a
// flat list of visit records. Everything here is pure: recomputed from a
// snapshot on demand, no state of its own.
package analytics

import (
	"time"

	"github.com/clinicops/pt-followup/internal/visits"
)

// UniquePatientCounts holds distinct-patient tallies keyed by the calendar
// placement of the scheduled follow-up.
//
// Total counts every record's patient, completed or not. ByMonth and ByDate
// count only patients with a pending follow-up in that bucket. The asymmetry
// is deliberate: "how many patients have I ever seen" versus "how many are
// still waiting on a given day".
type UniquePatientCounts struct {
	ByMonth map[time.Month]int `json:"byMonth"`
	ByDate  map[string]int     `json:"byDate"`
	Total   int                `json:"total"`
}

// ComputeUniquePatientCounts groups records by canonical registration number.
// Date buckets are keyed by the calendar day of the next visit, time of day
// stripped. Buckets are created for every record's month and date, so a
// bucket whose follow-ups are all completed reports an explicit zero.
func ComputeUniquePatientCounts(records []visits.VisitRecord) UniquePatientCounts {
	total := make(map[string]struct{})
	byMonth := make(map[time.Month]map[string]struct{})
	byDate := make(map[string]map[string]struct{})

	for _, rec := range records {
		reg := visits.CanonicalReg(rec.RegNumber)
		month := rec.NextVisitDate.Month()
		dateKey := visits.DateKey(rec.NextVisitDate)

		total[reg] = struct{}{}

		if byMonth[month] == nil {
			byMonth[month] = make(map[string]struct{})
		}
		if byDate[dateKey] == nil {
			byDate[dateKey] = make(map[string]struct{})
		}
		if !rec.Completed {
			byMonth[month][reg] = struct{}{}
			byDate[dateKey][reg] = struct{}{}
		}
	}

	counts := UniquePatientCounts{
		ByMonth: make(map[time.Month]int, len(byMonth)),
		ByDate:  make(map[string]int, len(byDate)),
		Total:   len(total),
	}
	for month, regs := range byMonth {
		counts.ByMonth[month] = len(regs)
	}
	for dateKey, regs := range byDate {
		counts.ByDate[dateKey] = len(regs)
	}
	return counts
}

// ForMonth returns the pending unique-patient count for a month, zero when
// the month has no bucket.
func (c UniquePatientCounts) ForMonth(m time.Month) int {
	return c.ByMonth[m]
}

// ForDate returns the pending unique-patient count for a calendar day.
func (c UniquePatientCounts) ForDate(t time.Time) int {
	return c.ByDate[visits.DateKey(t)]
}

// LookupStats summarizes the whole record list for the lookup view.
type LookupStats struct {
	TotalEntries   int `json:"totalEntries"`
	UniquePatients int `json:"uniquePatients"`
}

// ComputeLookupStats counts entries and distinct canonical patients.
func ComputeLookupStats(records []visits.VisitRecord) LookupStats {
	unique := make(map[string]struct{})
	for _, rec := range records {
		unique[visits.CanonicalReg(rec.RegNumber)] = struct{}{}
	}
	return LookupStats{
		TotalEntries:   len(records),
		UniquePatients: len(unique),
	}
}
