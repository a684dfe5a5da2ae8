package models

import "encoding/json"

// Department is the institutional school an instructor belongs to.
type Department string

const (
	DepartmentSITE Department = "SITE"
	DepartmentSOE  Department = "SOE"
	DepartmentSOHS Department = "SOHS"
	DepartmentSOC  Department = "SOC"
	DepartmentSBA  Department = "SBA"
)

// Departments lists every department in picker order.
func Departments() []string {
	return []string{
		string(DepartmentSITE),
		string(DepartmentSOE),
		string(DepartmentSOHS),
		string(DepartmentSOC),
		string(DepartmentSBA),
	}
}

// Instructor represents an instructor record.
type Instructor struct {
	ID           int64      `json:"id"`
	FullName     string     `json:"full_name"`
	InstructorID string     `json:"instructor_id"`
	Department   Department `json:"department"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Photo        *string    `json:"photo,omitempty"`
}

// UnmarshalJSON accepts the department under either "department" or the older "course" key.
func (i *Instructor) UnmarshalJSON(data []byte) error {
	type alias Instructor
	aux := struct {
		*alias
		Course Department `json:"course"`
	}{alias: (*alias)(i)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if i.Department == "" {
		i.Department = aux.Course
	}
	return nil
}
