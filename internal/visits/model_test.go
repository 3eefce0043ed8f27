package visits

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func TestCreateVisitRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateVisitRequest
		wantErr error
	}{
		{
			name:    "valid",
			req:     CreateVisitRequest{RegNumber: "2026/PHY/0042", VisitDate: "2026-01-01", NextVisitDate: "2026-03-01"},
			wantErr: nil,
		},
		{
			name:    "lowercase letters accepted",
			req:     CreateVisitRequest{RegNumber: "2026/phy/0042", VisitDate: "2026-01-01", NextVisitDate: "2026-03-01"},
			wantErr: nil,
		},
		{
			name:    "surrounding whitespace accepted",
			req:     CreateVisitRequest{RegNumber: "  2026/PHY/0042 ", VisitDate: "2026-01-01", NextVisitDate: "2026-03-01"},
			wantErr: nil,
		},
		{
			name:    "missing reg number",
			req:     CreateVisitRequest{VisitDate: "2026-01-01", NextVisitDate: "2026-03-01"},
			wantErr: ErrMissingFields,
		},
		{
			name:    "blank reg number",
			req:     CreateVisitRequest{RegNumber: "   ", VisitDate: "2026-01-01", NextVisitDate: "2026-03-01"},
			wantErr: ErrMissingFields,
		},
		{
			name:    "missing dates",
			req:     CreateVisitRequest{RegNumber: "2026/PHY/0042"},
			wantErr: ErrMissingFields,
		},
		{
			name:    "malformed reg number",
			req:     CreateVisitRequest{RegNumber: "26/PH/42", VisitDate: "2026-01-01", NextVisitDate: "2026-03-01"},
			wantErr: ErrInvalidRegNumber,
		},
		{
			name:    "unparseable date",
			req:     CreateVisitRequest{RegNumber: "2026/PHY/0042", VisitDate: "01/01/2026", NextVisitDate: "2026-03-01"},
			wantErr: ErrInvalidDate,
		},
		{
			name:    "next visit before visit",
			req:     CreateVisitRequest{RegNumber: "2026/PHY/0042", VisitDate: "2026-03-01", NextVisitDate: "2026-01-01"},
			wantErr: ErrNextVisitNotAfter,
		},
		{
			name:    "next visit equal to visit",
			req:     CreateVisitRequest{RegNumber: "2026/PHY/0042", VisitDate: "2026-01-01", NextVisitDate: "2026-01-01"},
			wantErr: ErrNextVisitNotAfter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCanonicalReg(t *testing.T) {
	assert.Equal(t, "2026/PHY/0042", CanonicalReg(" 2026/phy/0042 "))
	assert.Equal(t, CanonicalReg("2026/PHY/0042"), CanonicalReg("2026/phy/0042"))
}

func TestTabletDays(t *testing.T) {
	tests := []struct {
		name  string
		visit string
		next  string
		want  int
	}{
		{"two months", "2026-01-01", "2026-03-01", 59},
		{"march to may", "2026-03-01", "2026-05-01", 61},
		{"single day", "2026-01-01", "2026-01-02", 1},
		{"same day clamps to zero", "2026-01-01", "2026-01-01", 0},
		{"reversed clamps to zero", "2026-03-01", "2026-01-01", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TabletDays(date(t, tt.visit), date(t, tt.next))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatRegNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"20", "20"},
		{"2026", "2026"},
		{"2026p", "2026/P"},
		{"2026phy", "2026/PHY"},
		{"2026phy0", "2026/PHY/0"},
		{"2026phy0042", "2026/PHY/0042"},
		{"2026-phy-0042", "2026/PHY/0042"},
		{"2026/PHY/0042", "2026/PHY/0042"},
		{"2026phy0042extra", "2026/PHY/0042"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRegNumber(tt.raw), "raw=%q", tt.raw)
	}
}

func TestDateKeyAndSameDay(t *testing.T) {
	morning := time.Date(2026, time.February, 15, 8, 30, 0, 0, time.UTC)
	evening := time.Date(2026, time.February, 15, 22, 0, 0, 0, time.UTC)
	nextDay := time.Date(2026, time.February, 16, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-02-15", DateKey(morning))
	assert.True(t, SameDay(morning, evening))
	assert.False(t, SameDay(evening, nextDay))
}
