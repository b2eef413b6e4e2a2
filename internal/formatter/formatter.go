// package formatter renders track summaries for CLI output (plain text, CSV)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/desertthunder/spotistats/internal/models"
)

// TracksToCSV converts track summaries to CSV with columns: Name, Artists, URL, Image.
//
// Artist names are joined with "; " so multi-artist tracks stay in one cell.
func TracksToCSV(items []models.TrackSummary) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Name", "Artists", "URL", "Image"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, item := range items {
		record := []string{
			item.Name,
			strings.Join(item.Artists, "; "),
			item.URL,
			item.Image,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// TracksToText converts track summaries to a numbered plain-text listing.
func TracksToText(items []models.TrackSummary) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Top Tracks (%d)\n\n", len(items)))

	for i, item := range items {
		artists := strings.Join(item.Artists, ", ")
		if artists == "" {
			artists = "Unknown artist"
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s", i+1, artists, item.Name))
		if item.URL != "" {
			buf.WriteString(fmt.Sprintf(" (%s)", item.URL))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes()
}
