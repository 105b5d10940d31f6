// Package prorata computes day-weighted fractions of annual fees within a
// single calendar year. All functions are pure; dates are normalized to
// calendar days so the time-of-day component of inputs never matters.
package prorata

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidRange is returned when the end of a period precedes its start.
var ErrInvalidRange = errors.New("prorata: period end precedes start")

// ErrCrossYearPeriod is returned when a period spans two calendar years,
// which would make the day-count denominator ambiguous.
var ErrCrossYearPeriod = errors.New("prorata: period must fall within one calendar year")

// DaysInYear returns 366 for Gregorian leap years, 365 otherwise.
func DaysInYear(year int) int {
	if (year%4 == 0 && year%100 != 0) || year%400 == 0 {
		return 366
	}
	return 365
}

// InclusiveDayCount returns the number of calendar days spanning both
// endpoints inclusively, so InclusiveDayCount(d, d) == 1.
func InclusiveDayCount(from, to time.Time) (int, error) {
	f := startOfDay(from)
	t := startOfDay(to)
	if t.Before(f) {
		return 0, ErrInvalidRange
	}
	return int(t.Sub(f).Hours()/24) + 1, nil
}

// ForPeriod pro-rates an annual amount over an inclusive period within one
// calendar year. Rounding to 2dp happens once, at the final step, so that a
// full-year period returns the annual amount exactly.
func ForPeriod(annual decimal.Decimal, from, to time.Time) (decimal.Decimal, error) {
	if from.Year() != to.Year() {
		return decimal.Zero, ErrCrossYearPeriod
	}
	numDays, err := InclusiveDayCount(from, to)
	if err != nil {
		return decimal.Zero, err
	}
	denomDays := DaysInYear(from.Year())
	amount := annual.Mul(decimal.NewFromInt(int64(numDays))).Div(decimal.NewFromInt(int64(denomDays)))
	return amount.Round(2), nil
}

// FromDateToYearEnd pro-rates an annual amount from the given date
// (inclusive) to December 31 of the same year (inclusive).
func FromDateToYearEnd(annual decimal.Decimal, from time.Time) (decimal.Decimal, error) {
	return ForPeriod(annual, from, YearEnd(from))
}

// YearStart returns January 1 of the date's year, UTC midnight.
func YearStart(d time.Time) time.Time {
	return time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}

// YearEnd returns December 31 of the date's year, UTC midnight.
func YearEnd(d time.Time) time.Time {
	return time.Date(d.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
}

func startOfDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
