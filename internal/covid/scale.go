package covid

import (
	"math"
	"time"
)

// LinearScale maps the value domain [D0, D1] onto the range [R0, R1].
type LinearScale struct {
	D0, D1 float64
	R0, R1 float64
}

// Map projects v into the range. A zero-width domain maps to R0.
func (s LinearScale) Map(v float64) float64 {
	if s.D1 == s.D0 {
		return s.R0
	}
	return s.R0 + (v-s.D0)/(s.D1-s.D0)*(s.R1-s.R0)
}

// Invert maps a range position back into the domain.
func (s LinearScale) Invert(r float64) float64 {
	if s.R1 == s.R0 {
		return s.D0
	}
	return s.D0 + (r-s.R0)/(s.R1-s.R0)*(s.D1-s.D0)
}

// Ticks returns about n evenly spaced round values inside the domain,
// using steps of 1, 2 or 5 times a power of ten.
func (s LinearScale) Ticks(n int) []float64 {
	lo, hi := s.D0, s.D1
	if lo > hi {
		lo, hi = hi, lo
	}
	if n <= 0 || lo == hi {
		return []float64{lo}
	}
	step := niceStep((hi - lo) / float64(n))
	var out []float64
	if step >= 1 {
		for k := math.Ceil(lo / step); k <= math.Floor(hi/step); k++ {
			out = append(out, k*step)
		}
		return out
	}
	// divide by the inverse step so fractional ticks land on exact decimals
	inv := math.Round(1 / step)
	for k := math.Ceil(lo * inv); k <= math.Floor(hi*inv); k++ {
		out = append(out, k/inv)
	}
	return out
}

func niceStep(raw float64) float64 {
	power := math.Pow(10, math.Floor(math.Log10(raw)))
	e := raw / power
	switch {
	case e >= math.Sqrt(50):
		return 10 * power
	case e >= math.Sqrt(10):
		return 5 * power
	case e >= math.Sqrt(2):
		return 2 * power
	default:
		return power
	}
}

// TimeScale maps the date domain [Start, End] onto [R0, R1].
type TimeScale struct {
	Start, End time.Time
	R0, R1     float64
}

func (s TimeScale) Map(t time.Time) float64 {
	span := s.End.Sub(s.Start)
	if span == 0 {
		return s.R0
	}
	return s.R0 + float64(t.Sub(s.Start))/float64(span)*(s.R1-s.R0)
}

// Invert returns the date at range position r, truncated to the day.
func (s TimeScale) Invert(r float64) time.Time {
	if s.R1 == s.R0 {
		return s.Start
	}
	f := (r - s.R0) / (s.R1 - s.R0)
	return Truncate(s.Start.Add(time.Duration(f * float64(s.End.Sub(s.Start)))))
}

// Ticks returns calendar aligned dates inside the domain, about n of them.
// The interval is one of day, week, month, quarter or year.
func (s TimeScale) Ticks(n int) []time.Time {
	if n <= 0 || s.End.Before(s.Start) {
		return nil
	}
	days := DaysBetween(s.Start, s.End)
	target := float64(days) / float64(n)
	var next func(time.Time) time.Time
	var first time.Time
	y, m, d := s.Start.Date()
	loc := s.Start.Location()
	switch {
	case target <= 1:
		first = time.Date(y, m, d, 0, 0, 0, 0, loc)
		next = func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }
	case target <= 7:
		first = time.Date(y, m, d, 0, 0, 0, 0, loc)
		for first.Weekday() != time.Monday {
			first = first.AddDate(0, 0, 1)
		}
		next = func(t time.Time) time.Time { return t.AddDate(0, 0, 7) }
	case target <= 31:
		first = time.Date(y, m, 1, 0, 0, 0, 0, loc)
		next = func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }
	case target <= 92:
		first = time.Date(y, m-(m-1)%3, 1, 0, 0, 0, 0, loc)
		next = func(t time.Time) time.Time { return t.AddDate(0, 3, 0) }
	default:
		first = time.Date(y, 1, 1, 0, 0, 0, 0, loc)
		next = func(t time.Time) time.Time { return t.AddDate(1, 0, 0) }
	}
	for first.Before(s.Start) {
		first = next(first)
	}
	var out []time.Time
	for t := first; !t.After(s.End); t = next(t) {
		out = append(out, t)
	}
	return out
}

// Scales bundles the three scales a chart of a ViewModel needs.
type Scales struct {
	X       TimeScale
	YCases  LinearScale
	YDeaths LinearScale
}

// ScalesFor builds the x scale over [vm.Start, vm.End] onto [0, width] and
// the two y scales over [0, max] onto [height, 0]. ok is false for an empty
// view model, whose domains are undefined.
func ScalesFor(vm ViewModel, width, height float64) (Scales, bool) {
	if vm.Empty {
		return Scales{}, false
	}
	return Scales{
		X:       TimeScale{Start: vm.Start, End: vm.End, R0: 0, R1: width},
		YCases:  LinearScale{D0: 0, D1: float64(vm.CasesDomainMax), R0: height, R1: 0},
		YDeaths: LinearScale{D0: 0, D1: float64(vm.DeathsDomainMax), R0: height, R1: 0},
	}, true
}

// Y returns the value scale for mt.
func (s Scales) Y(mt Metric) LinearScale {
	if mt == Deaths {
		return s.YDeaths
	}
	return s.YCases
}
