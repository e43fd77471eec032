package resumes

import "time"

// Resume is one uploaded document, immutable once written.
type Resume struct {
	ID          int       `json:"id"`
	MenteeID    int       `json:"menteeId"`
	FileURL     string    `json:"fileUrl"`
	FileType    string    `json:"fileType"`
	TextContent string    `json:"-"`
	CreatedAt   time.Time `json:"createdAt"`
}
