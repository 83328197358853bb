package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"earnscan/pkg/daterange"
	"earnscan/pkg/screen"
)

// CSVFileName is earnings_analysis_<start>_<HHMMSS>.csv.
func CSVFileName(r daterange.Range, now time.Time) string {
	return fmt.Sprintf("earnings_analysis_%s_%s.csv", r.Start.Format("2006-01-02"), now.Format("150405"))
}

// WriteCSV writes the opportunity table, symbol column as quote URLs, in
// upside order.
func WriteCSV(w io.Writer, opps []screen.Opportunity) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(OpportunityHeaders); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, o := range opps {
		if err := writer.Write(OpportunityRow(o, true)); err != nil {
			return fmt.Errorf("failed to write record for %s: %w", o.Symbol, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// SaveCSV writes the CSV export into dir and returns its path.
func SaveCSV(dir string, r daterange.Range, now time.Time, opps []screen.Opportunity) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, CSVFileName(r, now))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := WriteCSV(file, opps); err != nil {
		return "", err
	}
	return path, nil
}
