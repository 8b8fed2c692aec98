// package formatter provides functions to export review history to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/duskthistle/swipereel/internal/repositories"
)

// ExportToCSV converts review history to CSV format with columns: VideoID, Title, Decision, Category, PublishedURL, DecidedAt
func ExportToCSV(entries []repositories.HistoryEntry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"VideoID", "Title", "Decision", "Category", "PublishedURL", "DecidedAt"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, entry := range entries {
		record := []string{
			entry.VideoID,
			entry.Title,
			entry.Decision,
			entry.CategoryID,
			entry.PublishedURL,
			entry.DecidedAt.Format(time.RFC3339),
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

// ExportToMarkdown converts review history to a Markdown report with kept and
// discarded sections.
func ExportToMarkdown(entries []repositories.HistoryEntry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Review History\n\n")

	var kept, discarded []repositories.HistoryEntry
	for _, entry := range entries {
		if entry.Decision == repositories.DecisionKept {
			kept = append(kept, entry)
		} else {
			discarded = append(discarded, entry)
		}
	}

	buf.WriteString(fmt.Sprintf("**Decisions**: %d (%d kept, %d discarded)\n\n", len(entries), len(kept), len(discarded)))

	buf.WriteString("## Kept\n\n")
	for i, entry := range kept {
		line := fmt.Sprintf("%d. %s", i+1, entryTitle(entry))
		if entry.CategoryID != "" {
			line = fmt.Sprintf("%s [%s]", line, entry.CategoryID)
		}
		if entry.PublishedURL != "" {
			line = fmt.Sprintf("%s (%s)", line, entry.PublishedURL)
		}
		buf.WriteString(line + "\n")
	}

	buf.WriteString("\n## Discarded\n\n")
	for i, entry := range discarded {
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, entryTitle(entry)))
	}

	return buf.Bytes(), nil
}

// ExportToText converts review history to plain text format
func ExportToText(entries []repositories.HistoryEntry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Decisions: %d\n\n", len(entries)))

	for i, entry := range entries {
		buf.WriteString(fmt.Sprintf("%d. [%s] %s\n", i+1, entry.Decision, entryTitle(entry)))
	}

	return buf.Bytes(), nil
}

func entryTitle(entry repositories.HistoryEntry) string {
	if entry.Title != "" {
		return entry.Title
	}
	return entry.VideoID
}

// WriteExport writes review history to a file in the requested format.
// Supported formats are "csv", "md", and "txt"; the filename defaults to
// review_history.{format}.
func WriteExport(entries []repositories.HistoryEntry, format, filepath string) (string, error) {
	var data []byte
	var err error

	switch format {
	case "csv":
		data, err = ExportToCSV(entries)
	case "md", "markdown":
		data, err = ExportToMarkdown(entries)
		format = "md"
	case "txt", "text", "":
		data, err = ExportToText(entries)
		format = "txt"
	default:
		return "", fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if filepath == "" {
		filepath = fmt.Sprintf("review_history.%s", format)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return filepath, nil
}
