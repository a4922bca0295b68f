package inspections

import "time"

// Status enum for findings and checklist rows.
type Status string

const (
	StatusConform    Status = "conform"
	StatusNonConform Status = "niet-conform"
	StatusUnknown    Status = "onbekend"
	StatusWarning    Status = "waarschuwing"
	StatusInfo       Status = "info"
)

func (s Status) Valid() bool {
	switch s {
	case StatusConform, StatusNonConform, StatusUnknown, StatusWarning, StatusInfo:
		return true
	}
	return false
}

// Priority enum, also used as risk severity.
type Priority string

const (
	PriorityHigh   Priority = "hoog"
	PriorityMedium Priority = "midden"
	PriorityLow    Priority = "laag"
)

func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Rank orders priorities hoog < midden < laag.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

type Finding struct {
	Category    string   `json:"category"`
	Status      Status   `json:"status"`
	Description string   `json:"description"`
	Evidence    string   `json:"evidence"`
	Priority    Priority `json:"priority"`
	Source      string   `json:"source"`
	URL         string   `json:"url,omitempty"`
}

type Risk struct {
	Type        string   `json:"type"`
	Severity    Priority `json:"severity"`
	Description string   `json:"description"`
	Mitigation  string   `json:"mitigation"`
}

type Action struct {
	Action      string   `json:"action"`
	Responsible string   `json:"responsible"`
	Deadline    string   `json:"deadline,omitempty"`
	Priority    Priority `json:"priority"`
}

type Citation struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Date      string `json:"date"`
	Relevance string `json:"relevance"`
}

// Analysis holds the four aggregated lists.
type Analysis struct {
	Findings  []Finding  `json:"findings"`
	Risks     []Risk     `json:"risks"`
	Actions   []Action   `json:"actions"`
	Citations []Citation `json:"citations"`
}

// Normalize replaces nil lists with empty ones so they encode as [].
func (a *Analysis) Normalize() {
	if a.Findings == nil {
		a.Findings = []Finding{}
	}
	if a.Risks == nil {
		a.Risks = []Risk{}
	}
	if a.Actions == nil {
		a.Actions = []Action{}
	}
	if a.Citations == nil {
		a.Citations = []Citation{}
	}
}

// Source records which strategy produced an inspection.
type Source string

const (
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

// Aggregate Root: Inspection
type Inspection struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"projectId"`
	Source    Source    `json:"source"`
	Model     string    `json:"model,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Analysis
}
