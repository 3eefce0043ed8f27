package analytics

import (
	"sort"
	"time"

	"github.com/clinicops/pt-followup/internal/visits"
)

// PatientRollup aggregates all of one patient's records. Derived only, never
// persisted.
type PatientRollup struct {
	// RegNumber keeps the first-seen casing and spacing for display.
	RegNumber         string               `json:"regNumber"`
	TotalTabletDays   int                  `json:"totalTabletDays"`
	Visits            []visits.VisitRecord `json:"visits"`
	FirstVisitDate    time.Time            `json:"firstVisitDate"`
	LastVisitDate     time.Time            `json:"lastVisitDate"`
	LastNextVisitDate time.Time            `json:"lastNextVisitDate"`
}

// PendingVisits counts this patient's records awaiting follow-up.
func (p *PatientRollup) PendingVisits() int {
	n := 0
	for _, v := range p.Visits {
		if !v.Completed {
			n++
		}
	}
	return n
}

// Rollups is a per-patient aggregate map that preserves first-appearance
// order of the canonical keys. The suggestion matcher depends on that order.
type Rollups struct {
	byReg map[string]*PatientRollup
	order []string
}

// Get looks up a rollup by registration number in any casing.
func (r *Rollups) Get(regNumber string) (*PatientRollup, bool) {
	rollup, ok := r.byReg[visits.CanonicalReg(regNumber)]
	return rollup, ok
}

// Keys returns the canonical registration numbers in first-appearance order.
func (r *Rollups) Keys() []string {
	return r.order
}

// All returns the rollups in first-appearance order.
func (r *Rollups) All() []*PatientRollup {
	out := make([]*PatientRollup, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.byReg[key])
	}
	return out
}

// Len returns the number of distinct patients.
func (r *Rollups) Len() int {
	return len(r.order)
}

// TotalTabletDaysFor returns a patient's cumulative tablet-days, zero for an
// unknown patient. Used for the live form preview.
func (r *Rollups) TotalTabletDaysFor(regNumber string) int {
	if rollup, ok := r.Get(regNumber); ok {
		return rollup.TotalTabletDays
	}
	return 0
}

// ComputePatientRollups builds per-patient rollups in two passes: one to
// accumulate sums and min/max dates, one to sort each patient's visits
// ascending by visit date. Date comparisons are strict, so on equal dates the
// first-seen record wins.
func ComputePatientRollups(records []visits.VisitRecord) *Rollups {
	rollups := &Rollups{byReg: make(map[string]*PatientRollup)}

	for _, rec := range records {
		key := visits.CanonicalReg(rec.RegNumber)
		rollup, ok := rollups.byReg[key]
		if !ok {
			rollup = &PatientRollup{
				RegNumber:         rec.RegNumber,
				FirstVisitDate:    rec.VisitDate,
				LastVisitDate:     rec.VisitDate,
				LastNextVisitDate: rec.NextVisitDate,
			}
			rollups.byReg[key] = rollup
			rollups.order = append(rollups.order, key)
		}

		rollup.TotalTabletDays += rec.TabletDays
		rollup.Visits = append(rollup.Visits, rec)

		if rec.VisitDate.Before(rollup.FirstVisitDate) {
			rollup.FirstVisitDate = rec.VisitDate
		}
		if rec.VisitDate.After(rollup.LastVisitDate) {
			rollup.LastVisitDate = rec.VisitDate
		}
		if rec.NextVisitDate.After(rollup.LastNextVisitDate) {
			rollup.LastNextVisitDate = rec.NextVisitDate
		}
	}

	for _, rollup := range rollups.byReg {
		sort.SliceStable(rollup.Visits, func(i, j int) bool {
			return rollup.Visits[i].VisitDate.Before(rollup.Visits[j].VisitDate)
		})
	}

	return rollups
}
