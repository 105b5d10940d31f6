// Package period derives the date ranges and labels for month-end and
// year-end reporting periods.
package period

import (
	"fmt"
	"time"

	"github.com/clubworks/ledger_service/internal/apperrors"
)

// Range is an inclusive calendar date range with its period label.
type Range struct {
	Start time.Time
	End   time.Time
	Label string
}

// Month parses a "YYYY-MM" period into its inclusive month range.
func Month(yyyymm string) (Range, error) {
	start, err := time.Parse("2006-01", yyyymm)
	if err != nil {
		return Range{}, fmt.Errorf("%w: period must be YYYY-MM: %q", apperrors.ErrValidation, yyyymm)
	}
	return Range{
		Start: start,
		End:   start.AddDate(0, 1, -1),
		Label: start.Format("2006-01"),
	}, nil
}

// Year returns the inclusive range for a calendar year.
func Year(year int) (Range, error) {
	if year < 2000 || year > 2100 {
		return Range{}, fmt.Errorf("%w: year out of range: %d", apperrors.ErrValidation, year)
	}
	return Range{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
		Label: fmt.Sprintf("%d", year),
	}, nil
}
