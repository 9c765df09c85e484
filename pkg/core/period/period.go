// Package period classifies reporting durations and canonicalizes period-end
// dates into sortable labels ("2024" for annual, "2024Q3" for quarterly).
//
// Duration classification is the mechanism that keeps year-to-date aggregates
// out of the discrete quarterly series: a 270-day YTD span is neither an
// annual period nor a discrete quarter, so its rows are dropped before merge.
package period

import (
	"fmt"
	"regexp"
	"sort"
	"time"

	"go.uber.org/zap"
)

// Duration windows in days, inclusive. Fiscal calendars drift, so an annual
// period is anything close to 365 days and a discrete quarter anything close
// to 91 days.
const (
	annualMinDays  = 350
	annualMaxDays  = 375
	quarterMinDays = 80
	quarterMaxDays = 105
)

// Kind is the classification of a reporting duration.
type Kind int

const (
	Invalid Kind = iota
	AnnualPeriod
	DiscreteQuarter
)

var logger = zap.NewNop()

// SetLogger installs the package logger. Defaults to a no-op logger.
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

// IsAnnual reports whether the span from start to end covers a fiscal year.
func IsAnnual(start, end time.Time) bool {
	days := int(end.Sub(start).Hours() / 24)
	return days >= annualMinDays && days <= annualMaxDays
}

// IsDiscreteQuarter reports whether the span covers exactly one fiscal
// quarter. Year-to-date spans (6 or 9 months) fail this check.
func IsDiscreteQuarter(start, end time.Time) bool {
	days := int(end.Sub(start).Hours() / 24)
	return days >= quarterMinDays && days <= quarterMaxDays
}

// Classify buckets a reporting duration.
func Classify(start, end time.Time) Kind {
	switch {
	case IsAnnual(start, end):
		return AnnualPeriod
	case IsDiscreteQuarter(start, end):
		return DiscreteQuarter
	default:
		return Invalid
	}
}

// Label converts a period-end date to its canonical label.
//
// 52/53-week fiscal calendars let a period end drift a few days into the next
// month (e.g. Oct 2 for a September quarter). If the day-of-month is 7 or
// less, snap back a week before deriving year and quarter so the label lands
// in the period the filing actually covers.
func Label(end time.Time, annual bool) string {
	if end.Day() <= 7 {
		end = end.AddDate(0, 0, -7)
	}
	if annual {
		return fmt.Sprintf("%d", end.Year())
	}
	quarter := (int(end.Month())-1)/3 + 1
	return fmt.Sprintf("%dQ%d", end.Year(), quarter)
}

// LabelFromString parses a "2006-01-02" date string and labels it. A bare
// year passes through unchanged. An unparsable date yields the original
// string and a warning; this function never fails.
func LabelFromString(s string, annual bool) string {
	if yearRe.MatchString(s) {
		return s
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		logger.Warn("unparsable period end date, keeping raw label", zap.String("date", s))
		return s
	}
	return Label(t, annual)
}

var (
	yearRe    = regexp.MustCompile(`^\d{4}$`)
	quarterRe = regexp.MustCompile(`^(\d{4})Q(\d)$`)
)

// SortKey parses a canonical label back into a sortable (year, quarter) pair.
// Annual labels sort as quarter 4 so "2024" orders after "2024Q3"; anything
// unparsable sorts first as (0, 0).
func SortKey(label string) (year, quarter int) {
	if m := quarterRe.FindStringSubmatch(label); m != nil {
		fmt.Sscanf(m[1], "%d", &year)
		fmt.Sscanf(m[2], "%d", &quarter)
		return year, quarter
	}
	if yearRe.MatchString(label) {
		fmt.Sscanf(label, "%d", &year)
		return year, 4
	}
	return 0, 0
}

// SortDesc orders period labels most recent first, in place.
func SortDesc(labels []string) {
	sort.Slice(labels, func(i, j int) bool {
		yi, qi := SortKey(labels[i])
		yj, qj := SortKey(labels[j])
		if yi != yj {
			return yi > yj
		}
		return qi > qj
	})
}
