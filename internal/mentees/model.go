package mentees

import "time"

// Mentee is the person submitting resumes, deduplicated by email.
type Mentee struct {
	ID         int       `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name,omitempty"`
	TargetRole string    `json:"targetRole,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
