package calendar

import (
	"fmt"
	"time"
)

// Range is an inclusive span of calendar days in Gregorian form. Both
// endpoints are normalized to midnight UTC.
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange builds an inclusive range. End must not precede start.
func NewRange(start, end time.Time) (Range, error) {
	s := truncateDay(start)
	e := truncateDay(end)
	if e.Before(s) {
		return Range{}, fmt.Errorf("range end %s precedes start %s", e.Format("2006-01-02"), s.Format("2006-01-02"))
	}
	return Range{Start: s, End: e}, nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Days returns the inclusive length of the range in calendar days.
func (r Range) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// Shadow returns the immediately preceding range of identical length.
// It never overlaps the receiver.
func (r Range) Shadow() Range {
	l := r.Days()
	return Range{
		Start: r.Start.AddDate(0, 0, -l),
		End:   r.End.AddDate(0, 0, -l),
	}
}

// Series returns the receiver plus n consecutive shadow ranges stepping
// backward, ordered oldest to newest. Adjacent ranges tile without gaps
// or overlaps.
func (r Range) Series(n int) []Range {
	if n < 0 {
		n = 0
	}
	out := make([]Range, n+1)
	cur := r
	for i := n; i >= 0; i-- {
		out[i] = cur
		cur = cur.Shadow()
	}
	return out
}

// Dates enumerates every calendar day in the range, in order.
func (r Range) Dates() []time.Time {
	out := make([]time.Time, 0, r.Days())
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// Persian returns the range endpoints as Persian date strings.
func (r Range) Persian() (start, end string) {
	return FromGregorian(r.Start).String(), FromGregorian(r.End).String()
}

// Contains reports whether the given day falls inside the range.
func (r Range) Contains(t time.Time) bool {
	d := truncateDay(t)
	return !d.Before(r.Start) && !d.After(r.End)
}
