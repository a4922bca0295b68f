package prompt

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"github.com/bryanwahyu/schouw/internal/domain/ai"
	"github.com/bryanwahyu/schouw/internal/domain/inspections"
)

// ParseAnalysis decodes model output into an Analysis. All four lists must
// be present and every enum value must be known.
func ParseAnalysis(raw string) (inspections.Analysis, error) {
	var out inspections.Analysis

	body := stripFences(raw)
	if body == "" {
		return out, ai.ErrEmptyResponse
	}

	var doc struct {
		Findings  *[]inspections.Finding  `json:"findings"`
		Risks     *[]inspections.Risk     `json:"risks"`
		Actions   *[]inspections.Action   `json:"actions"`
		Citations *[]inspections.Citation `json:"citations"`
	}
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return out, errors.Wrap(ai.ErrInvalidOutput, err.Error())
	}
	if doc.Findings == nil || doc.Risks == nil || doc.Actions == nil || doc.Citations == nil {
		return out, errors.Wrap(ai.ErrInvalidOutput, "missing list")
	}

	for i, f := range *doc.Findings {
		if !f.Status.Valid() || !f.Priority.Valid() || strings.TrimSpace(f.Description) == "" {
			return out, errors.Wrapf(ai.ErrInvalidOutput, "finding %d", i)
		}
	}
	for i, r := range *doc.Risks {
		if !r.Severity.Valid() {
			return out, errors.Wrapf(ai.ErrInvalidOutput, "risk %d", i)
		}
	}
	for i, a := range *doc.Actions {
		if !a.Priority.Valid() || strings.TrimSpace(a.Action) == "" {
			return out, errors.Wrapf(ai.ErrInvalidOutput, "action %d", i)
		}
	}

	out.Findings = *doc.Findings
	out.Risks = *doc.Risks
	out.Actions = *doc.Actions
	out.Citations = *doc.Citations
	out.Normalize()
	return out, nil
}

// stripFences removes a surrounding ``` or ```json block.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
