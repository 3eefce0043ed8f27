//go:build ignore

// Seeds a running API instance with sample visit records for manual testing.
//
// Usage:
//
//	API_BASE_URL=http://localhost:8080 go run scripts/seed-visits.go
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

type seedVisit struct {
	RegNumber string
	Offset    int // visit date, days relative to today
	Span      int // days until follow-up
}

func main() {
	apiBase := os.Getenv("API_BASE_URL")
	if apiBase == "" {
		apiBase = "http://localhost:8080"
	}

	seeds := []seedVisit{
		{"2026/PHY/0001", -30, 30},
		{"2026/PHY/0001", 0, 30},
		{"2026/PHY/0002", -14, 28},
		{"2026/PHY/0003", -7, 60},
		{"2026/ORT/0104", -3, 14},
		{"2026/ORT/0105", 0, 7},
	}

	now := time.Now()
	for _, s := range seeds {
		visit := now.AddDate(0, 0, s.Offset)
		payload, _ := json.Marshal(map[string]string{
			"regNumber":     s.RegNumber,
			"visitDate":     visit.Format("2006-01-02"),
			"nextVisitDate": visit.AddDate(0, 0, s.Span).Format("2006-01-02"),
		})
		resp, err := http.Post(apiBase+"/visits", "application/json", bytes.NewReader(payload))
		if err != nil {
			fmt.Fprintf(os.Stderr, "seed %s: %v\n", s.RegNumber, err)
			os.Exit(1)
		}
		resp.Body.Close()
		fmt.Printf("seeded %s -> %d\n", s.RegNumber, resp.StatusCode)
	}
}
