package seriesio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"meteo-qc/internal/models"
)

// WriteOptions configures the tabular writer.
type WriteOptions struct {
	// TimeColumn is the header name written for the timestamp index.
	TimeColumn string
	// TimeLayout formats the timestamp index.
	TimeLayout string
	// Precision is the number of decimal places for channel values.
	Precision int
	// Channels selects and orders the written columns; nil writes all
	// channels in logger order.
	Channels []models.Channel
	// Comma is the field delimiter; zero means ','.
	Comma rune
}

func (o WriteOptions) withDefaults() WriteOptions {
	if o.TimeColumn == "" {
		o.TimeColumn = "Time"
	}
	if o.TimeLayout == "" {
		o.TimeLayout = DefaultTimeLayout
	}
	if o.Precision <= 0 {
		o.Precision = 1
	}
	if o.Channels == nil {
		o.Channels = models.Channels
	}
	if o.Comma == 0 {
		o.Comma = ','
	}
	return o
}

// WriteSeries serializes the series as delimited text with a header row.
// Missing values become empty fields; present values are written at fixed
// precision.
func WriteSeries(w io.Writer, series *models.Series, opts WriteOptions) error {
	opts = opts.withDefaults()

	cw := csv.NewWriter(w)
	cw.Comma = opts.Comma

	header := make([]string, 0, len(opts.Channels)+1)
	header = append(header, opts.TimeColumn)
	for _, ch := range opts.Channels {
		header = append(header, string(ch))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, len(header))
	for i := range series.Observations {
		obs := &series.Observations[i]
		record[0] = obs.Timestamp.Format(opts.TimeLayout)
		for j, ch := range opts.Channels {
			if v := obs.Value(ch); v != nil {
				record[j+1] = strconv.FormatFloat(*v, 'f', opts.Precision, 64)
			} else {
				record[j+1] = ""
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile serializes the series to a file, identifying the file in any
// error.
func WriteFile(path string, series *models.Series, opts WriteOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := WriteSeries(f, series, opts); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
