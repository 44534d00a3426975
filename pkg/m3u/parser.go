package m3u

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

const (
	// Header is the first line of every written playlist.
	Header = "#EXTM3U"
	// MarkerPrefix starts the metadata line of an entry.
	MarkerPrefix = "#EXTINF"
)

// SkippedLine records a candidate URL that followed a marker line but
// was not an http(s) URL. Line is 1-based among the non-empty lines.
type SkippedLine struct {
	Line int
	Text string
}

// Extraction is the result of parsing one playlist body.
type Extraction struct {
	Entries EntrySet
	Lines   int
	Skipped []SkippedLine
}

// Extract parses playlist text into entries. A marker line is paired
// with the next line only if that line is not a directive and is an
// http(s) URL; otherwise the marker is dropped and scanning resumes at
// the following line.
func Extract(content string) Extraction {
	lines := splitLines(content)
	result := Extraction{
		Entries: make(EntrySet),
		Lines:   len(lines),
	}

	for i := 0; i < len(lines); {
		line := lines[i]
		if !strings.HasPrefix(line, MarkerPrefix) {
			i++
			continue
		}

		if i+1 < len(lines) && !strings.HasPrefix(lines[i+1], "#") {
			candidate := lines[i+1]
			if isStreamURL(candidate) {
				result.Entries.Add(Entry{Meta: line, URL: candidate})
				i += 2
				continue
			}
			result.Skipped = append(result.Skipped, SkippedLine{Line: i + 2, Text: candidate})
		}
		i++
	}

	return result
}

// splitLines returns the trimmed, non-empty lines of content.
func splitLines(content string) []string {
	raw := strings.Split(content, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func isStreamURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// LoadHeaders loads custom HTTP headers from a JSON object file
func LoadHeaders(headersFile string) (map[string]string, error) {
	if headersFile == "" {
		return nil, nil
	}

	data, err := os.ReadFile(headersFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read headers file: %w", err)
	}

	var headers map[string]string
	if err := json.Unmarshal(data, &headers); err != nil {
		return nil, fmt.Errorf("failed to parse headers file: %w", err)
	}

	return headers, nil
}
