// Package report buckets bills into month/quarter/year windows and sums their
// totals per payment method.
package report

import (
	"fmt"
	"time"

	"github.com/johnnycuongn/sp-app/internal/bill"
)

// Range is the granularity a reporting window is cut at.
type Range string

const (
	RangeMonth   Range = "month"
	RangeQuarter Range = "quarter"
	RangeYear    Range = "year"
)

// Window is the pair of instants bounding one reporting period.
type Window struct {
	Start time.Time
	End   time.Time
}

// WindowFor computes the window of the index-th period of a year. Month
// indices run 0..11, quarter indices 0..3; the index is ignored for
// RangeYear. Ends land on the last second of the period, the last day being
// day zero of the following month.
func WindowFor(year int, r Range, index int) (Window, error) {
	switch r {
	case RangeYear:
		return Window{
			Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC),
		}, nil

	case RangeQuarter:
		if index < 0 || index > 3 {
			return Window{}, fmt.Errorf("quarter index %d out of range", index)
		}

		first := time.Month(index*3 + 1)

		return Window{
			Start: time.Date(year, first, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, first+3, 0, 23, 59, 59, 0, time.UTC),
		}, nil

	case RangeMonth:
		if index < 0 || index > 11 {
			return Window{}, fmt.Errorf("month index %d out of range", index)
		}

		first := time.Month(index + 1)

		return Window{
			Start: time.Date(year, first, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, first+1, 0, 23, 59, 59, 0, time.UTC),
		}, nil
	}

	return Window{}, fmt.Errorf("unknown range %q", r)
}

// Contains reports whether t falls inside the window. Both bounds are
// exclusive: a bill dated exactly at a window edge belongs to no window.
// That matches the behaviour reports have always had, so keep it.
func (w Window) Contains(t time.Time) bool {
	return t.After(w.Start) && t.Before(w.End)
}

// Select returns the view-models whose payment date falls inside the window,
// preserving input order.
func Select(bills []bill.ViewModel, w Window) []bill.ViewModel {
	var in []bill.ViewModel

	for _, b := range bills {
		if w.Contains(b.PaymentDate) {
			in = append(in, b)
		}
	}

	return in
}

// AvailableMonths lists the selectable month indices of a year: every month
// up to and including the current one when year is the current year, all
// twelve otherwise. Future periods are never offered.
func AvailableMonths(year int, now time.Time) []int {
	last := 11
	if now.Year() == year {
		last = int(now.Month()) - 1
	}

	return indices(last)
}

// AvailableQuarters lists the selectable quarter indices of a year, capped at
// the current quarter for the current year.
func AvailableQuarters(year int, now time.Time) []int {
	last := 3
	if now.Year() == year {
		last = QuarterOf(now.Month())
	}

	return indices(last)
}

// QuarterOf maps a month to its quarter index 0..3.
func QuarterOf(m time.Month) int {
	return (int(m) - 1) / 3
}

func indices(last int) []int {
	out := make([]int, 0, last+1)
	for i := 0; i <= last; i++ {
		out = append(out, i)
	}

	return out
}
