package fixtures

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appprojects "github.com/bryanwahyu/schouw/internal/application/projects"
	"github.com/bryanwahyu/schouw/internal/infra/db/memory"
	"github.com/bryanwahyu/schouw/internal/validation"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func TestSamplesAreValid(t *testing.T) {
	for _, s := range (Static{}).Samples() {
		_, err := validation.ValidateProject(s.Project)
		assert.NoError(t, err, s.Project.Code)
	}
}

func TestSeed(t *testing.T) {
	mem := memory.NewStore()
	svc := &appprojects.Service{
		Projects:    mem.Projects(),
		Photos:      mem.Photos(),
		Inspections: mem.Inspections(),
		Reports:     mem.Reports(),
		Clock:       fixedClock{time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	ctx := context.Background()

	n, err := Seed(ctx, Static{}, svc, mem.Photos())
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	list, err := svc.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 5)
	counts := map[string]int{}
	for _, s := range list {
		counts[s.Code] = s.PhotoCount
	}
	assert.Equal(t, 2, counts["AMN-2024-001"])
	assert.Equal(t, 1, counts["UTC-2024-002"])
	assert.Equal(t, 2, counts["RZ-2024-003"])

	// tweede keer niets
	n, err = Seed(ctx, Static{}, svc, mem.Photos())
	require.NoError(t, err)
	assert.Zero(t, n)
}
