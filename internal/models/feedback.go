package models

// FeedbackStatus tracks admin review of checker feedback.
type FeedbackStatus string

const (
	FeedbackPending  FeedbackStatus = "Pending"
	FeedbackAccepted FeedbackStatus = "Accepted"
	FeedbackDeclined FeedbackStatus = "Declined"
)

// FeedbackStatusNames lists statuses in picker order.
func FeedbackStatusNames() []string {
	return []string{string(FeedbackPending), string(FeedbackAccepted), string(FeedbackDeclined)}
}

// Feedback is a message submitted by a checker and answered by an admin.
type Feedback struct {
	ID            int64          `json:"id"`
	Message       string         `json:"message"`
	Status        FeedbackStatus `json:"status"`
	AdminResponse *string        `json:"admin_response,omitempty"`
}
