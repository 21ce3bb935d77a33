package run

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

// WriteCSV renders runs as CSV, one row per run, newest first as given.
func WriteCSV(w io.Writer, runs []Run) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "date", "distance_m", "duration_min", "pace_kmh", "location"}); err != nil {
		return err
	}

	for _, r := range runs {
		pace := ""
		if r.PaceKmh != nil {
			pace = strconv.FormatFloat(*r.PaceKmh, 'f', -1, 64)
		}
		record := []string{
			r.ID,
			r.Date.Format(time.RFC3339),
			strconv.FormatFloat(r.DistanceM, 'f', -1, 64),
			strconv.FormatFloat(r.DurationMin, 'f', -1, 64),
			pace,
			r.Location,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
