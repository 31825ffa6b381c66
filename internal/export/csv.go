package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jonathan/applicant-selector/internal/types"
)

// WriteCSV writes a header row followed by one row per applicant
func WriteCSV(w io.Writer, applicants []types.ScoredApplicant) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Headers); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, a := range applicants {
		if err := cw.Write(Row(a)); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", a.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
