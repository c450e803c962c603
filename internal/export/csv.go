package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"fixtures-app/internal/models"
)

// WriteCSV replaces path with a header row followed by one row per match.
func WriteCSV(matches []models.Match, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := writeCSV(f, matches); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func writeCSV(w io.Writer, matches []models.Match) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(models.Header); err != nil {
		return err
	}
	for _, m := range matches {
		if err := cw.Write(m.Row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
