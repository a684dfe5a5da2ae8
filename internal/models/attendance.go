package models

// AttendanceStatus represents the status for attendance records.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceLate    AttendanceStatus = "Late"
	AttendanceAbsent  AttendanceStatus = "Absent"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceLate, AttendanceAbsent:
		return true
	default:
		return false
	}
}

// AttendanceStatusNames lists statuses in picker order.
func AttendanceStatusNames() []string {
	return []string{string(AttendancePresent), string(AttendanceLate), string(AttendanceAbsent)}
}

// AttendanceRecord is one attendance entry captured by a checker.
type AttendanceRecord struct {
	ID         int64            `json:"id"`
	Time       string           `json:"time"`
	Subject    string           `json:"subject"`
	Room       string           `json:"room"`
	Block      string           `json:"block"`
	Date       string           `json:"date"`
	Status     AttendanceStatus `json:"status"`
	Instructor string           `json:"instructor"`
	Checker    *string          `json:"checker,omitempty"`
	Day        *string          `json:"day,omitempty"`
}
