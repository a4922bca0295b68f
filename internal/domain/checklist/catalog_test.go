package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bryanwahyu/schouw/internal/domain/inspections"
)

func TestAll_Catalog(t *testing.T) {
	items := All()
	assert.Len(t, items, 16)

	ids := map[string]bool{}
	for _, it := range items {
		assert.False(t, ids[it.ID], "duplicate id %s", it.ID)
		ids[it.ID] = true
		assert.True(t, it.Priority.Valid(), it.ID)
		assert.NotEmpty(t, it.URL, it.ID)
		assert.Equal(t, ConsultedOn, it.Date)
	}

	items[0].Title = "changed"
	assert.Equal(t, "Meterkast afmetingen", All()[0].Title)
}

func TestByCategory(t *testing.T) {
	assert.Len(t, ByCategory(CategoryMeterCabinet), 5)
	assert.Len(t, ByCategory(CategoryTrench), 5)
	assert.Len(t, ByCategory(CategoryWaterMeter), 4)
	assert.Len(t, ByCategory(CategoryWaterPipe), 2)
	assert.Empty(t, ByCategory("kelder"))
}

func TestByPriority(t *testing.T) {
	medium := ByPriority(inspections.PriorityMedium)
	var ids []string
	for _, it := range medium {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"ventilatie", "sleuf-breedte", "terugstroombeveiliging"}, ids)
	assert.Empty(t, ByPriority(inspections.PriorityLow))
}

func TestQuery(t *testing.T) {
	assert.Len(t, Query("", ""), 16)
	assert.Len(t, Query(CategoryTrench, inspections.PriorityHigh), 4)
}

func TestForUtilities(t *testing.T) {
	assert.Len(t, ForUtilities([]string{"gas"}), 5)
	assert.Len(t, ForUtilities([]string{"water"}), 6)
	assert.Len(t, ForUtilities([]string{"elektra", "gas", "water"}), 16)
	assert.Empty(t, ForUtilities(nil))
}
