package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnnycuongn/sp-app/internal/bill"
	"github.com/johnnycuongn/sp-app/internal/report"
)

func TestWindowFor_Quarter(t *testing.T) {
	w, err := report.WindowFor(2024, report.RangeQuarter, 0)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC), w.End)

	w, err = report.WindowFor(2024, report.RangeQuarter, 3)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC), w.End)

	_, err = report.WindowFor(2024, report.RangeQuarter, 4)
	assert.Error(t, err)
}

func TestWindowFor_Month(t *testing.T) {
	// February of a leap year lands on the 29th via the day-zero trick.
	w, err := report.WindowFor(2024, report.RangeMonth, 1)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC), w.End)

	_, err = report.WindowFor(2024, report.RangeMonth, 12)
	assert.Error(t, err)
}

func TestWindowFor_Year(t *testing.T) {
	w, err := report.WindowFor(2024, report.RangeYear, 0)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC), w.End)
}

func TestWindow_ContainsExcludesBounds(t *testing.T) {
	w, err := report.WindowFor(2024, report.RangeQuarter, 0)
	require.NoError(t, err)

	assert.False(t, w.Contains(w.Start))
	assert.False(t, w.Contains(w.End))
	assert.True(t, w.Contains(w.Start.Add(time.Second)))
	assert.True(t, w.Contains(w.End.Add(-time.Second)))
	assert.False(t, w.Contains(w.End.Add(time.Second)))
}

func TestSelect(t *testing.T) {
	w, err := report.WindowFor(2024, report.RangeQuarter, 0)
	require.NoError(t, err)

	vms := []bill.ViewModel{
		{Bill: bill.Bill{PaymentDate: time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC)}},
		{Bill: bill.Bill{PaymentDate: w.Start}}, // boundary, excluded
		{Bill: bill.Bill{PaymentDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)}},
		{Bill: bill.Bill{PaymentDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)}},
	}

	got := report.Select(vms, w)
	require.Len(t, got, 2)
	assert.Equal(t, vms[0].PaymentDate, got[0].PaymentDate)
	assert.Equal(t, vms[3].PaymentDate, got[1].PaymentDate)
}

func TestAvailableMonths(t *testing.T) {
	now := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, []int{0, 1, 2, 3, 4}, report.AvailableMonths(2024, now))
	assert.Len(t, report.AvailableMonths(2023, now), 12)
}

func TestAvailableQuarters(t *testing.T) {
	now := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, []int{0, 1}, report.AvailableQuarters(2024, now))
	assert.Equal(t, []int{0, 1, 2, 3}, report.AvailableQuarters(2023, now))
}

func TestQuarterOf(t *testing.T) {
	assert.Equal(t, 0, report.QuarterOf(time.January))
	assert.Equal(t, 0, report.QuarterOf(time.March))
	assert.Equal(t, 1, report.QuarterOf(time.April))
	assert.Equal(t, 3, report.QuarterOf(time.December))
}
