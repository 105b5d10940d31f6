package dto

import "time"

// DateRangeParams binds the [from, to] range common to period reports.
type DateRangeParams struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
}

// AsOfParams binds point-in-time report queries.
type AsOfParams struct {
	AsOf time.Time `form:"asOf" binding:"required" time_format:"2006-01-02"`
}

// MonthEndParams binds the month-end snapshot request.
type MonthEndParams struct {
	Period   string `form:"period" json:"period" binding:"required,period_label"`
	LockedBy string `form:"lockedBy" json:"lockedBy"`
	Notes    string `form:"notes" json:"notes"`
}

// YearEndParams binds the year-end snapshot request.
type YearEndParams struct {
	Year     int    `form:"year" json:"year" binding:"required"`
	LockedBy string `form:"lockedBy" json:"lockedBy"`
	Notes    string `form:"notes" json:"notes"`
}
