package store

import "time"

// Run statuses
const (
	StatusPassed = "passed"
	StatusFailed = "failed"
)

// Run represents one execution of the search flow on one device
type Run struct {
	ID            int64     `json:"id"`
	Test          string    `json:"test"`
	Device        string    `json:"device"`
	Query         string    `json:"query"`
	Status        string    `json:"status"`
	FailureReason string    `json:"failure_reason"`
	ReportPath    string    `json:"report_path"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	Steps         []Step    `json:"steps"`
}

// Step represents one step within a run
type Step struct {
	ID             int64         `json:"id"`
	RunID          int64         `json:"run_id"`
	Name           string        `json:"name"`
	Status         string        `json:"status"`
	Duration       time.Duration `json:"duration"`
	ScreenshotPath string        `json:"screenshot_path"`
	Detail         string        `json:"detail"`
}
