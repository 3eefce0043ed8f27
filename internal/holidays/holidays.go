// Package holidays provides the static Sri Lankan holiday and poya day
// calendar used by the month views. The table is read-only and year-specific.
package holidays

import "time"

// Type classifies a calendar entry.
type Type string

const (
	TypePublic Type = "public"
	TypePoya   Type = "poya"
)

// Holiday is a single calendar entry, keyed within its month by day-of-month.
type Holiday struct {
	Day  int    `json:"day"`
	Name string `json:"name"`
	Type Type   `json:"type"`
}

// Year is the calendar year the table below covers.
const Year = 2026

var calendar = map[time.Month][]Holiday{
	time.January: {
		{Day: 1, Name: "New Year's Day", Type: TypePublic},
		{Day: 13, Name: "Duruthu Poya", Type: TypePoya},
		{Day: 14, Name: "Thai Pongal", Type: TypePublic},
		{Day: 15, Name: "Duruthu Poya", Type: TypePoya},
	},
	time.February: {
		{Day: 4, Name: "Independence Day", Type: TypePublic},
		{Day: 11, Name: "Navam Poya", Type: TypePoya},
		{Day: 26, Name: "Maha Sivarathri", Type: TypePublic},
	},
	time.March: {
		{Day: 13, Name: "Medin Poya", Type: TypePoya},
		{Day: 14, Name: "Holi", Type: TypePublic},
	},
	time.April: {
		{Day: 2, Name: "Idul Fitr", Type: TypePublic},
		{Day: 11, Name: "Bak Poya", Type: TypePoya},
		{Day: 13, Name: "Sinhala & Tamil New Year Eve", Type: TypePublic},
		{Day: 14, Name: "Sinhala & Tamil New Year", Type: TypePublic},
		{Day: 18, Name: "Good Friday", Type: TypePublic},
	},
	time.May: {
		{Day: 1, Name: "May Day", Type: TypePublic},
		{Day: 11, Name: "Vesak Poya", Type: TypePoya},
		{Day: 12, Name: "Day after Vesak", Type: TypePublic},
	},
	time.June: {
		{Day: 9, Name: "Poson Poya", Type: TypePoya},
		{Day: 10, Name: "Idul Alha", Type: TypePublic},
	},
	time.July: {
		{Day: 9, Name: "Esala Poya", Type: TypePoya},
	},
	time.August: {
		{Day: 7, Name: "Nikini Poya", Type: TypePoya},
	},
	time.September: {
		{Day: 6, Name: "Binara Poya", Type: TypePoya},
		{Day: 10, Name: "Milad-un-Nabi", Type: TypePublic},
	},
	time.October: {
		{Day: 5, Name: "Vap Poya", Type: TypePoya},
		{Day: 21, Name: "Deepavali", Type: TypePublic},
	},
	time.November: {
		{Day: 4, Name: "Il Poya", Type: TypePoya},
	},
	time.December: {
		{Day: 3, Name: "Unduvap Poya", Type: TypePoya},
		{Day: 25, Name: "Christmas Day", Type: TypePublic},
	},
}

// ForMonth returns all entries for a month, in day order. Never nil-panics;
// months without entries return an empty slice.
func ForMonth(m time.Month) []Holiday {
	return calendar[m]
}

// ForDate returns the entry for an exact month/day match, or nil.
func ForDate(m time.Month, day int) *Holiday {
	for i := range calendar[m] {
		if calendar[m][i].Day == day {
			return &calendar[m][i]
		}
	}
	return nil
}
