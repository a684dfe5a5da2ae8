package dto

import "time"

// DashboardSchedule is a schedule flattened for the checker home screen.
type DashboardSchedule struct {
	ID          int64  `json:"id"`
	Time        string `json:"time"`
	SubjectCode string `json:"subject_code"`
	Subject     string `json:"subject"`
	Room        string `json:"room"`
	Block       string `json:"block"`
	Day         string `json:"day"`
	Instructor  string `json:"instructor"`
}

// CheckerDashboard is the checker home screen.
type CheckerDashboard struct {
	Checker     string              `json:"checker"`
	Today       string              `json:"today"`
	GeneratedAt time.Time           `json:"generated_at"`
	TodayCount  int                 `json:"today_count"`
	Upcoming    []DashboardSchedule `json:"upcoming"`
}
