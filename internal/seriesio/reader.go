// Package seriesio reads and writes observation series as delimited text
// with a header row. The reader preserves the per-row continuity of the
// series: a malformed numeric field degrades to a missing value, while a
// malformed timestamp or header fails the read with the offending location,
// since the time index is structural.
package seriesio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"meteo-qc/internal/models"
)

// DefaultTimeLayout matches the logger's timestamp format.
const DefaultTimeLayout = "2006-01-02 15:04:05"

// ReadOptions configures the tabular reader.
type ReadOptions struct {
	// TimeColumn is the header name of the timestamp index column.
	TimeColumn string
	// TimeLayout is the time.Parse layout of the index column.
	TimeLayout string
	// Comma is the field delimiter; zero means ','.
	Comma rune
}

func (o ReadOptions) withDefaults() ReadOptions {
	if o.TimeColumn == "" {
		o.TimeColumn = "time"
	}
	if o.TimeLayout == "" {
		o.TimeLayout = DefaultTimeLayout
	}
	if o.Comma == 0 {
		o.Comma = ','
	}
	return o
}

// ReadSeries parses raw observations from delimited text. The header row
// maps columns to channels by symbolic name; unknown columns are ignored.
// Rows come back in file order, unregularized.
func ReadSeries(r io.Reader, opts ReadOptions) ([]models.Observation, error) {
	opts = opts.withDefaults()

	cr := csv.NewReader(r)
	cr.Comma = opts.Comma
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	timeCol := -1
	channelCols := make(map[int]models.Channel)
	for i, name := range header {
		name = strings.TrimSpace(name)
		if strings.EqualFold(name, opts.TimeColumn) {
			timeCol = i
			continue
		}
		for _, ch := range models.Channels {
			if name == string(ch) {
				channelCols[i] = ch
				break
			}
		}
	}
	if timeCol < 0 {
		return nil, fmt.Errorf("header has no %q column", opts.TimeColumn)
	}

	var observations []models.Observation
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("malformed row at line %d: %w", line, err)
		}

		ts, err := time.Parse(opts.TimeLayout, strings.TrimSpace(record[timeCol]))
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp at line %d: %w", line, err)
		}

		obs := models.Observation{Timestamp: ts}
		for col, ch := range channelCols {
			if col >= len(record) {
				continue
			}
			obs.SetValue(ch, parseValue(record[col]))
		}
		observations = append(observations, obs)
	}

	return observations, nil
}

// ReadFile reads raw observations from a file, identifying the file in
// any error.
func ReadFile(path string, opts ReadOptions) ([]models.Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	observations, err := ReadSeries(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return observations, nil
}

// parseValue converts one numeric field. Empty or malformed fields are
// treated as missing rather than fatal, so one bad sensor field never
// drops a whole row.
func parseValue(field string) *float64 {
	field = strings.TrimSpace(field)
	if field == "" || strings.EqualFold(field, "nan") {
		return nil
	}
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return nil
	}
	return &v
}
