package domain

import (
	"encoding/json"
	"time"
)

// SnapshotType identifies the reporting period granularity of a snapshot.
type SnapshotType string

const (
	SnapshotMonthEnd SnapshotType = "month-end"
	SnapshotYearEnd  SnapshotType = "year-end"
)

// ReportSnapshot is an immutable, cached period report. A snapshot is created
// exactly once per (Type, Label); later requests for the same period return
// the stored payload verbatim even if the underlying ledger has since
// received backdated postings.
type ReportSnapshot struct {
	SnapshotID  string          `json:"snapshotID"`
	Type        SnapshotType    `json:"type"`
	Label       string          `json:"label"` // "2025-08" or "2025"
	RangeStart  time.Time       `json:"rangeStart"`
	RangeEnd    time.Time       `json:"rangeEnd"`
	Data        json.RawMessage `json:"data"`
	LockedBy    string          `json:"lockedBy,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	GeneratedAt time.Time       `json:"generatedAt"`
}
