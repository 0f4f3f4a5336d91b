package date_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/inventory-engine/date"
)

func TestParse_AcceptsCanonicalAndLenientForms(t *testing.T) {
	canonical, err := date.Parse("2025-07-01")
	require.NoError(t, err)

	lenient, err := date.Parse("2025-7-1")
	require.NoError(t, err)

	assert.Equal(t, canonical, lenient)
	assert.Equal(t, "2025-07-01", lenient.String())
}

func TestParse_RejectsGarbage(t *testing.T) {
	_, err := date.Parse("not-a-date")
	assert.Error(t, err)

	_, err = date.Parse("2025/07/01")
	assert.Error(t, err)
}

func TestNew_NormalizesOverflow(t *testing.T) {
	// Day 32 of January rolls into February.
	d := date.New(2025, time.January, 32)
	assert.Equal(t, "2025-02-01", d.String())
}

func TestAdd_CrossesMonthBoundary(t *testing.T) {
	d := date.MustParse("2025-01-31")
	assert.Equal(t, "2025-02-02", d.Add(2).String())
	assert.Equal(t, "2025-01-29", d.Add(-2).String())
}

func TestSub_CountsWholeDays(t *testing.T) {
	a := date.MustParse("2025-03-10")
	b := date.MustParse("2025-03-01")
	assert.Equal(t, 9, a.Sub(b))
	assert.Equal(t, -9, b.Sub(a))
	assert.Equal(t, 0, a.Sub(a))
}

func TestRange_ContainsIsInclusive(t *testing.T) {
	r := date.NewRange(date.MustParse("2025-03-01"), date.MustParse("2025-03-31"))

	assert.True(t, r.Contains(date.MustParse("2025-03-01")), "start boundary included")
	assert.True(t, r.Contains(date.MustParse("2025-03-31")), "end boundary included")
	assert.True(t, r.Contains(date.MustParse("2025-03-15")))
	assert.False(t, r.Contains(date.MustParse("2025-02-28")))
	assert.False(t, r.Contains(date.MustParse("2025-04-01")))
}

func TestRange_DaysIsInclusiveCount(t *testing.T) {
	r := date.NewRange(date.MustParse("2025-03-01"), date.MustParse("2025-03-31"))
	assert.Equal(t, 31, r.Days())

	single := date.NewRange(date.MustParse("2025-03-01"), date.MustParse("2025-03-01"))
	assert.Equal(t, 1, single.Days())
}

func TestLastDays_EndsAtGivenDate(t *testing.T) {
	end := date.MustParse("2025-03-30")
	r := date.LastDays(end, 7)

	assert.Equal(t, "2025-03-24", r.From.String())
	assert.Equal(t, end, r.To)
	assert.Equal(t, 7, r.Days())
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := date.MustParse("2025-12-24")

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-12-24"`, string(data))

	var back date.Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)
}

func TestDate_IsZero(t *testing.T) {
	var zero date.Date
	assert.True(t, zero.IsZero())
	assert.False(t, date.Today().IsZero())
}
