package reports

import "time"

// Report is the editable report text of a project. One per project.
type Report struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"projectId"`
	Content   string    `json:"content"`
	PDFURL    string    `json:"pdfUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
