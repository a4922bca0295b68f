package prompt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/schouw/internal/domain/ai"
	"github.com/bryanwahyu/schouw/internal/domain/inspections"
)

const validOutput = `{
  "findings": [{"category":"meterkast","status":"niet-conform","description":"Geen hoofdschakelaar","evidence":"Foto","priority":"hoog","source":"Liander"}],
  "risks": [{"type":"Veiligheid","severity":"hoog","description":"Elektrocutie","mitigation":"Spanningsvrij werken"}],
  "actions": [{"action":"Hoofdschakelaar plaatsen","responsible":"Installateur","priority":"hoog"}],
  "citations": []
}`

func TestParseAnalysis(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{"plain", validOutput, nil},
		{"fenced", "```json\n" + validOutput + "\n```", nil},
		{"bare fence", "```\n" + validOutput + "```", nil},
		{"empty", "  ", ai.ErrEmptyResponse},
		{"not json", "Hier is mijn analyse", ai.ErrInvalidOutput},
		{"missing lists", `{"findings": []}`, ai.ErrInvalidOutput},
		{"bad status", `{"findings":[{"category":"x","status":"ok","description":"d","priority":"hoog"}],"risks":[],"actions":[],"citations":[]}`, ai.ErrInvalidOutput},
		{"bad severity", `{"findings":[],"risks":[{"type":"x","severity":"extreem"}],"actions":[],"citations":[]}`, ai.ErrInvalidOutput},
		{"bad action", `{"findings":[],"risks":[],"actions":[{"action":"","priority":"laag"}],"citations":[]}`, ai.ErrInvalidOutput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, err := ParseAnalysis(tc.raw)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tc.wantErr), err.Error())
				return
			}
			require.NoError(t, err)
			require.Len(t, a.Findings, 1)
			assert.Equal(t, inspections.StatusNonConform, a.Findings[0].Status)
			assert.NotNil(t, a.Citations)
		})
	}
}
