package dto

// ScheduleRequest creates or replaces a schedule. Times accept "08:00" or "8:00 AM".
type ScheduleRequest struct {
	SubjectCode       string `json:"subject_code" validate:"required,max=32"`
	Subject           string `json:"subject" validate:"required,max=255"`
	Block             string `json:"block" validate:"required,max=64"`
	StartTime         string `json:"start_time" validate:"required,clock"`
	EndTime           string `json:"end_time" validate:"required,clock"`
	Day               string `json:"day" validate:"required,weekday"`
	Room              string `json:"room" validate:"required,max=64"`
	InstructorID      int64  `json:"instructor_id" validate:"required,gt=0"`
	AssignedCheckerID int64  `json:"assigned_checker_id" validate:"required,gt=0"`
}

// InstructorRequest creates or replaces an instructor.
type InstructorRequest struct {
	FullName     string `json:"full_name" validate:"required,max=255"`
	InstructorID string `json:"instructor_id" validate:"required,max=64"`
	Department   string `json:"department" validate:"required,oneof=SITE SOE SOHS SOC SBA"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required,max=32"`
}

// UserRequest creates a user. Sent as JSON or multipart form with an optional photo file.
type UserRequest struct {
	FullName string `json:"full_name" form:"full_name" validate:"required,max=255"`
	SchoolID string `json:"school_id" form:"school_id" validate:"required,max=64"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Phone    string `json:"phone" form:"phone" validate:"omitempty,max=32"`
	Role     string `json:"role" form:"role" validate:"required,oneof=Checker Admin"`
	Password string `json:"password" form:"password" validate:"required"`
}

// UserUpdateRequest changes a user. Empty fields keep their current value.
type UserUpdateRequest struct {
	FullName string `json:"full_name" form:"full_name" validate:"omitempty,max=255"`
	SchoolID string `json:"school_id" form:"school_id" validate:"omitempty,max=64"`
	Email    string `json:"email" form:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" form:"phone" validate:"omitempty,max=32"`
	Role     string `json:"role" form:"role" validate:"omitempty,oneof=Checker Admin"`
	Password string `json:"password" form:"password" validate:"omitempty"`
}

// AssignCheckerRequest sets a room's checker; null clears the assignment.
type AssignCheckerRequest struct {
	CheckerID *int64 `json:"checker_id" validate:"omitempty,gt=0"`
}

// FeedbackRequest is a checker's message.
type FeedbackRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// FeedbackReviewRequest is an admin's decision on feedback.
type FeedbackReviewRequest struct {
	Status        string `json:"status" validate:"required,oneof=Pending Accepted Declined"`
	AdminResponse string `json:"admin_response" validate:"omitempty,max=2000"`
}
