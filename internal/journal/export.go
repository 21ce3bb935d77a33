package journal

import (
	"encoding/csv"
	"io"
	"time"
)

// WriteCSV renders journal entries as CSV, one row per entry, in the
// order given.
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "date", "title", "content", "coach_feedback", "coach_feedback_date"}); err != nil {
		return err
	}

	for _, e := range entries {
		feedbackDate := ""
		if e.CoachFeedbackDate != nil {
			feedbackDate = e.CoachFeedbackDate.Format(time.RFC3339)
		}
		record := []string{
			e.ID,
			e.Date.Format(time.RFC3339),
			e.Title,
			e.Content,
			e.CoachFeedback,
			feedbackDate,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
