package models

import "time"

// QCRun records one archived quality-control run: which station and year
// were processed, the grid geometry, and the finding totals. The cleaned
// observations and the findings themselves are stored row-by-row against
// the run.
type QCRun struct {
	ID              int64     `json:"id" db:"id"`
	StationID       string    `json:"station_id" db:"station_id"`
	Label           string    `json:"label" db:"label"`
	SourceFile      string    `json:"source_file" db:"source_file"`
	StepSeconds     int       `json:"step_seconds" db:"step_seconds"`
	TotalRows       int       `json:"total_rows" db:"total_rows"`
	MissingCount    int       `json:"missing_count" db:"missing_count"`
	OutOfRangeCount int       `json:"out_of_range_count" db:"out_of_range_count"`
	GradientCount   int       `json:"gradient_count" db:"gradient_count"`
	StartedAt       time.Time `json:"started_at" db:"started_at"`
	CompletedAt     time.Time `json:"completed_at" db:"completed_at"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
