package analyses

import (
	"encoding/json"
	"time"
)

// Analysis is one AI assessment of one resume. Result is stored verbatim as
// the loose JSON payload the normalizer produced.
type Analysis struct {
	ID        int             `json:"id"`
	ResumeID  int             `json:"resumeId"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"createdAt"`
}

// View is the denormalized analysis record returned to clients.
type View struct {
	ID        int             `json:"id"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"createdAt"`
	Resume    ResumeView      `json:"resume"`
	Mentee    MenteeView      `json:"mentee"`
}

// ResumeView is the resume slice of the denormalized view.
type ResumeView struct {
	ID       int    `json:"id"`
	FileURL  string `json:"fileUrl"`
	FileType string `json:"fileType"`
}

// MenteeView is the mentee slice of the denormalized view.
type MenteeView struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	TargetRole string `json:"targetRole"`
}
