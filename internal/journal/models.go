package journal

import "time"

type Entry struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	Title             string     `json:"title"`
	Content           string     `json:"content"`
	Date              time.Time  `json:"date"`
	CoachFeedback     string     `json:"coach_feedback,omitempty"`
	CoachID           string     `json:"coach_id,omitempty"`
	CoachFeedbackDate *time.Time `json:"coach_feedback_date,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type EntryInput struct {
	Title   string     `json:"title"`
	Content string     `json:"content"`
	Date    *time.Time `json:"date"`
}

type FeedbackInput struct {
	Feedback string `json:"feedback"`
}
