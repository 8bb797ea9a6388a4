// Package render writes quality-control results as human-readable text
// artifacts. Rendering is read-only over the report and may run repeatedly.
package render

import (
	"fmt"
	"io"

	"meteo-qc/internal/models"
	"meteo-qc/internal/qc"
)

const timestampLayout = "2006-01-02 15:04:05"

// LogInput bundles everything the QC log needs: the regularized series, the
// accumulated report, the channel specs for display aliases, and the
// monthly/annual aggregates appended as summaries.
type LogInput struct {
	Label      string
	Series     *models.Series
	Report     *qc.Report
	Specs      []models.ChannelSpec
	Monthly    *models.Series
	Annual     *models.Series
	Thresholds map[models.Channel]float64
}

// WriteLog renders the QC log in fixed order: missing values, per-channel
// out-of-range events, per-channel gradient events, then aggregate
// summaries.
func WriteLog(w io.Writer, in LogInput) error {
	if err := writeMissing(w, in); err != nil {
		return err
	}
	if err := writeOutOfRange(w, in); err != nil {
		return err
	}
	if err := writeGradients(w, in); err != nil {
		return err
	}
	return writeAggregates(w, in)
}

func writeMissing(w io.Writer, in LogInput) error {
	if _, err := fmt.Fprintf(w, "Year %s\n", in.Label); err != nil {
		return err
	}
	fmt.Fprintln(w, "Missing values")

	missing := in.Report.MissingTimestamps()
	for _, ts := range missing {
		fmt.Fprintln(w, ts.Format(timestampLayout))
	}

	total := in.Series.Len()
	percent := 0.0
	if total > 0 {
		percent = float64(len(missing)) * 100.0 / float64(total)
	}
	_, err := fmt.Fprintf(w, "%6d missing values over a total of %6d, or %4.2f %%\n\n", len(missing), total, percent)
	return err
}

func writeOutOfRange(w io.Writer, in LogInput) error {
	for _, spec := range in.Specs {
		if _, err := fmt.Fprintf(w, "\nPlausible out-of-range %s values\n", spec.Alias); err != nil {
			return err
		}
		for _, f := range in.Report.OutOfRange(spec.Name) {
			fmt.Fprintf(w, "%s  %.1f\n", f.Timestamp.Format(timestampLayout), f.Value)
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

func writeAggregates(w io.Writer, in LogInput) error {
	if in.Monthly == nil || in.Annual == nil {
		return nil
	}

	for _, ch := range []models.Channel{models.ChannelTemperature, models.ChannelHumidity, models.ChannelPressure} {
		fmt.Fprintf(w, "%s averages\n", ch)
		fmt.Fprintln(w, "Monthly averages")
		writeChannelRows(w, in.Monthly, ch)
		fmt.Fprintln(w, "Annual averages")
		writeChannelRows(w, in.Annual, ch)
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Wind speed and direction averages")
	fmt.Fprintln(w, "Monthly averages")
	writeWindRows(w, in.Monthly)
	fmt.Fprintln(w, "Annual averages")
	writeWindRows(w, in.Annual)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Precipitation sums")
	fmt.Fprintln(w, "Monthly sums")
	writeChannelRows(w, in.Monthly, models.ChannelPrecipitation)
	fmt.Fprintln(w, "Annual sums")
	writeChannelRows(w, in.Annual, models.ChannelPrecipitation)
	_, err := fmt.Fprintln(w)
	return err
}

func writeGradients(w io.Writer, in LogInput) error {
	for _, ch := range []models.Channel{models.ChannelTemperature, models.ChannelHumidity, models.ChannelWindSpeed} {
		limit, ok := in.Thresholds[ch]
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(w, "Steep %s gradients (threshold %.0f)\n", ch, limit); err != nil {
			return err
		}
		for _, f := range in.Report.SteepGradients(ch) {
			fmt.Fprintf(w, "%s  %.1f\n", f.Timestamp.Format(timestampLayout), f.Value)
		}
	}
	return nil
}

func writeChannelRows(w io.Writer, series *models.Series, ch models.Channel) {
	for i := range series.Observations {
		obs := &series.Observations[i]
		if v := obs.Value(ch); v != nil {
			fmt.Fprintf(w, "%s  %.2f\n", obs.Timestamp.Format("2006-01-02"), *v)
		} else {
			fmt.Fprintf(w, "%s  missing\n", obs.Timestamp.Format("2006-01-02"))
		}
	}
}

func writeWindRows(w io.Writer, series *models.Series) {
	for i := range series.Observations {
		obs := &series.Observations[i]
		date := obs.Timestamp.Format("2006-01-02")
		if obs.WindSpeed != nil && obs.WindDirection != nil {
			fmt.Fprintf(w, "%s  %.2f m/s  %.1f deg\n", date, *obs.WindSpeed, *obs.WindDirection)
		} else {
			fmt.Fprintf(w, "%s  missing\n", date)
		}
	}
}
