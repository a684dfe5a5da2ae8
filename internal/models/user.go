package models

// UserRole represents the roles the mobile client routes on.
type UserRole string

const (
	RoleChecker UserRole = "Checker"
	RoleAdmin   UserRole = "Admin"
)

// Valid returns true when the role is one the gateway can route.
func (r UserRole) Valid() bool {
	return r == RoleChecker || r == RoleAdmin
}

// RoleNames lists roles in picker order.
func RoleNames() []string {
	return []string{string(RoleChecker), string(RoleAdmin)}
}

// User represents an application user managed by admins.
type User struct {
	ID       int64    `json:"id"`
	FullName string   `json:"full_name"`
	SchoolID string   `json:"school_id"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone,omitempty"`
	Role     UserRole `json:"role"`
	Photo    *string  `json:"photo,omitempty"`
}
