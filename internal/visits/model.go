package visits

import (
	"math"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the wire format for visit and next-visit dates.
const DateLayout = "2006-01-02"

var regNumberPattern = regexp.MustCompile(`^\d{4}/[A-Z]{3}/\d{4}$`)

// VisitRecord is one tablet-dispensing event. JSON field names follow the
// spreadsheet web-app columns, so records round-trip through the remote
// endpoint unchanged.
type VisitRecord struct {
	ID            string     `json:"id"`
	RegNumber     string     `json:"regNumber"`
	VisitDate     time.Time  `json:"visitDate"`
	NextVisitDate time.Time  `json:"nextVisitDate"`
	TabletDays    int        `json:"tabletDays"`
	Completed     bool       `json:"completed"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	RecordedAt    time.Time  `json:"recordedAt"`
}

// CreateVisitRequest represents the request body for recording a visit
type CreateVisitRequest struct {
	RegNumber     string `json:"regNumber"`
	VisitDate     string `json:"visitDate"`
	NextVisitDate string `json:"nextVisitDate"`
}

// Validate checks required fields, the registration number pattern and the
// strict date ordering. The store is never touched when Validate fails.
func (r *CreateVisitRequest) Validate() error {
	_, _, err := r.parseDates()
	return err
}

func (r *CreateVisitRequest) parseDates() (visit, next time.Time, err error) {
	if strings.TrimSpace(r.RegNumber) == "" || r.VisitDate == "" || r.NextVisitDate == "" {
		return time.Time{}, time.Time{}, ErrMissingFields
	}
	if !regNumberPattern.MatchString(CanonicalReg(r.RegNumber)) {
		return time.Time{}, time.Time{}, ErrInvalidRegNumber
	}
	visit, err = time.Parse(DateLayout, r.VisitDate)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	next, err = time.Parse(DateLayout, r.NextVisitDate)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	if !next.After(visit) {
		return time.Time{}, time.Time{}, ErrNextVisitNotAfter
	}
	return visit, next, nil
}

// CanonicalReg returns the grouping/matching key for a registration number:
// whitespace trimmed, letters uppercased. Display always keeps the
// first-seen original string.
func CanonicalReg(regNumber string) string {
	return strings.ToUpper(strings.TrimSpace(regNumber))
}

// TabletDays is the number of tablet-days dispensed for one visit:
// ceil(nextVisit - visit) in days, clamped at zero. The stored value is
// always recomputed from the two dates, never carried independently.
func TabletDays(visit, next time.Time) int {
	days := int(math.Ceil(next.Sub(visit).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// FormatRegNumber progressively shapes raw form input into YYYY/AAA/NNNN:
// non-alphanumerics are stripped, the first four characters form the year,
// the next three the uppercased letter code, the last four the number.
func FormatRegNumber(raw string) string {
	var cleaned strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			cleaned.WriteRune(r)
		}
	}
	s := cleaned.String()

	formatted := s
	if len(s) > 4 {
		formatted = s[:4] + "/" + strings.ToUpper(s[4:min(7, len(s))])
	}
	if len(s) > 7 {
		formatted += "/" + s[7:min(11, len(s))]
	}
	return formatted
}

// DateKey is the calendar-day grouping key for a timestamp, time of day
// stripped.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
