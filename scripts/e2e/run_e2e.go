// Package main runs an end-to-end smoke pass against a live API instance.
//
// Scenarios cover the full visit lifecycle:
//   - Record a visit and read back the tablet-day total
//   - Autocomplete suggestions after a record exists
//   - Dashboard stats (unique patients, pending counts)
//   - Calendar month view and upcoming strip
//   - Toggle a follow-up to completed and back
//   - Delete and confirmed clear-all
//
// Usage:
//
//	API_BASE_URL=http://localhost:8080 go run scripts/e2e/run_e2e.go            # runs all
//	API_BASE_URL=http://localhost:8080 go run scripts/e2e/run_e2e.go lifecycle  # runs one
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const testReg = "2026/PHY/9001"

var apiBase string

type scenario struct {
	Name string
	Fn   func(t *T)
}

// T is a lightweight test context for a single scenario.
type T struct {
	passed int
	failed int
	name   string
}

func (t *T) check(name string, ok bool) {
	if ok {
		fmt.Printf("    PASS: %s\n", name)
		t.passed++
	} else {
		fmt.Printf("    FAIL: %s\n", name)
		t.failed++
	}
}

func (t *T) fatalf(format string, args ...interface{}) {
	fmt.Printf("    FATAL: "+format+"\n", args...)
	t.failed++
}

func doRequest(method, path string, payload interface{}) (int, map[string]interface{}, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, apiBase+path, body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	var decoded map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp.StatusCode, decoded, nil
}

func clearAll() {
	_, _, _ = doRequest("DELETE", "/visits?confirm=delete-everything", nil)
}

// ---------------------------------------------------------------------------
// Scenarios
// ---------------------------------------------------------------------------

func scenarioLifecycle(t *T) {
	clearAll()

	visit := time.Now().Format("2006-01-02")
	next := time.Now().AddDate(0, 1, 0).Format("2006-01-02")
	status, body, err := doRequest("POST", "/visits", map[string]string{
		"regNumber":     testReg,
		"visitDate":     visit,
		"nextVisitDate": next,
	})
	if err != nil {
		t.fatalf("create: %v", err)
		return
	}
	t.check("create returns 201", status == 201)

	record, _ := body["record"].(map[string]interface{})
	id, _ := record["id"].(string)
	t.check("create returns record id", id != "")
	days, _ := record["tabletDays"].(float64)
	t.check("tablet days computed", days > 0)

	status, body, _ = doRequest("GET", "/visits", nil)
	t.check("list returns 200", status == 200)
	t.check("list holds one record", body["count"] == float64(1))

	status, body, _ = doRequest("POST", "/visits/"+id+"/toggle", nil)
	t.check("toggle returns 200", status == 200)
	t.check("toggle reports updated", body["updated"] == true)

	status, _, _ = doRequest("DELETE", "/visits/"+id, nil)
	t.check("delete returns 204", status == 204)
}

func scenarioSuggest(t *T) {
	clearAll()

	visit := time.Now().Format("2006-01-02")
	next := time.Now().AddDate(0, 1, 0).Format("2006-01-02")
	_, _, _ = doRequest("POST", "/visits", map[string]string{
		"regNumber":     testReg,
		"visitDate":     visit,
		"nextVisitDate": next,
	})

	status, body, _ := doRequest("GET", "/suggest?q=9001", nil)
	t.check("suggest returns 200", status == 200)
	suggestions, _ := body["suggestions"].([]interface{})
	t.check("trailing digits match", len(suggestions) == 1)

	status, body, _ = doRequest("GET", "/suggest?q=ZZZZ", nil)
	t.check("no match returns 200", status == 200)
	suggestions, _ = body["suggestions"].([]interface{})
	t.check("no match is empty", len(suggestions) == 0)
}

func scenarioStats(t *T) {
	clearAll()

	visit := time.Now().Format("2006-01-02")
	next := time.Now().AddDate(0, 1, 0).Format("2006-01-02")
	_, _, _ = doRequest("POST", "/visits", map[string]string{
		"regNumber":     testReg,
		"visitDate":     visit,
		"nextVisitDate": next,
	})

	status, body, _ := doRequest("GET", "/stats", nil)
	t.check("stats returns 200", status == 200)
	counts, _ := body["counts"].(map[string]interface{})
	t.check("one unique patient", counts["total"] == float64(1))

	status, _, _ = doRequest("GET", "/calendar/"+fmt.Sprint(int(time.Now().Month())), nil)
	t.check("calendar returns 200", status == 200)

	status, _, _ = doRequest("GET", "/schedule/upcoming", nil)
	t.check("upcoming returns 200", status == 200)
}

func scenarioClearAll(t *T) {
	visit := time.Now().Format("2006-01-02")
	next := time.Now().AddDate(0, 1, 0).Format("2006-01-02")
	_, _, _ = doRequest("POST", "/visits", map[string]string{
		"regNumber":     testReg,
		"visitDate":     visit,
		"nextVisitDate": next,
	})

	status, _, _ := doRequest("DELETE", "/visits", nil)
	t.check("unconfirmed wipe rejected", status == 400)

	status, _, _ = doRequest("DELETE", "/visits?confirm=delete-everything", nil)
	t.check("confirmed wipe returns 204", status == 204)

	status, body, _ := doRequest("GET", "/visits", nil)
	t.check("list empty after wipe", status == 200 && body["count"] == float64(0))
}

func main() {
	apiBase = os.Getenv("API_BASE_URL")
	if apiBase == "" {
		apiBase = "http://localhost:8080"
	}

	scenarios := []scenario{
		{"lifecycle", scenarioLifecycle},
		{"suggest", scenarioSuggest},
		{"stats", scenarioStats},
		{"clear-all", scenarioClearAll},
	}

	only := ""
	if len(os.Args) > 1 {
		only = os.Args[1]
	}

	totalPassed, totalFailed := 0, 0
	for _, s := range scenarios {
		if only != "" && s.Name != only {
			continue
		}
		fmt.Printf("=== %s\n", s.Name)
		t := &T{name: s.Name}
		s.Fn(t)
		totalPassed += t.passed
		totalFailed += t.failed
	}

	fmt.Printf("\n%d passed, %d failed\n", totalPassed, totalFailed)
	if totalFailed > 0 {
		os.Exit(1)
	}
}
