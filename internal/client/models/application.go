package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/common"
)

// Status is the recruitment stage of an application.
type Status string

const (
	StatusApplied         Status = "applied"
	StatusRecruitmentTask Status = "recruitment_task"
	StatusInterview       Status = "interview"
	StatusGotJob          Status = "got_job"
	StatusRejected        Status = "rejected"
	StatusNoResponse      Status = "no_response"
)

// Statuses lists every status in pipeline order.
var Statuses = []Status{
	StatusApplied,
	StatusRecruitmentTask,
	StatusInterview,
	StatusGotJob,
	StatusRejected,
	StatusNoResponse,
}

var statusLabels = map[Status]string{
	StatusApplied:         "Applied",
	StatusRecruitmentTask: "Recruitment task",
	StatusInterview:       "Interview",
	StatusGotJob:          "Got the job",
	StatusRejected:        "Rejected",
	StatusNoResponse:      "No response",
}

func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label is the human readable name; unknown statuses are shown verbatim.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Final reports whether the application has reached an outcome.
func (s Status) Final() bool {
	return s == StatusGotJob || s == StatusRejected || s == StatusNoResponse
}

// ParseStatus accepts the wire value in any case, with '-' or ' ' for '_'.
func ParseStatus(s string) (Status, error) {
	norm := strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToLower(strings.TrimSpace(s)))
	st := Status(norm)
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidStatus, s)
	}
	return st, nil
}

type StatusHistory struct {
	OldStatus Status `json:"oldStatus"`
	NewStatus Status `json:"newStatus"`
	ChangedAt string `json:"changedAt"`
}

type Application struct {
	ID            int64           `json:"id"`
	CompanyName   string          `json:"companyName"`
	Position      string          `json:"position,omitempty"`
	Platform      string          `json:"platform,omitempty"`
	Status        Status          `json:"status"`
	AppliedAt     string          `json:"appliedAt"`
	CreatedAt     string          `json:"createdAt"`
	StatusHistory []StatusHistory `json:"statusHistory"`
}

// ApplicationInput is the create/update payload. Zero fields are omitted so
// an update only touches what was given.
type ApplicationInput struct {
	CompanyName string `json:"companyName,omitempty"`
	Position    string `json:"position,omitempty"`
	Platform    string `json:"platform,omitempty"`
	Status      Status `json:"status,omitempty"`
	AppliedAt   string `json:"appliedAt,omitempty"`
}

type ApplicationStats struct {
	Weekly  int           `json:"weekly"`
	Monthly int           `json:"monthly"`
	Latest  []Application `json:"latest"`
}

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", time.DateOnly}

// ParseDate reads the API's timestamps, full ISO-8601 or a bare date.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Filter selects applications the way the list screen does: query matches
// company, position or platform case-insensitively, status "" or "all"
// matches everything.
func Filter(apps []Application, query string, status Status) []Application {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []Application
	for _, a := range apps {
		if status != "" && status != "all" && a.Status != status {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(a.CompanyName), q) &&
			!strings.Contains(strings.ToLower(a.Position), q) &&
			!strings.Contains(strings.ToLower(a.Platform), q) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// MonthCount is the number of applications sent in one calendar month.
type MonthCount struct {
	Month time.Time
	Count int
}

// MonthlyCounts counts applications per month for the n months ending with
// the month of now, oldest first.
func MonthlyCounts(apps []Application, now time.Time, n int) []MonthCount {
	if n <= 0 {
		return nil
	}
	out := make([]MonthCount, n)
	first := time.Date(now.Year(), now.Month()-time.Month(n-1), 1, 0, 0, 0, 0, now.Location())
	for i := range out {
		out[i].Month = first.AddDate(0, i, 0)
	}
	for _, a := range apps {
		t, ok := ParseDate(a.AppliedAt)
		if !ok {
			continue
		}
		t = t.In(now.Location())
		for i := range out {
			if t.Year() == out[i].Month.Year() && t.Month() == out[i].Month.Month() {
				out[i].Count++
				break
			}
		}
	}
	return out
}
