package m3u

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// headLines is how many lines VerifyPlaylist keeps for diagnostics.
const headLines = 4

// Verification describes a written playlist as read back from disk.
type Verification struct {
	LineCount int
	Head      []string
}

// WritePlaylist writes the header followed by each entry's meta and URL
// lines, sorted case-insensitively by meta. An existing file is truncated.
func WritePlaylist(path string, set EntrySet) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%s\n", Header)
	for _, e := range set.Sorted() {
		fmt.Fprintf(w, "%s\n%s\n", e.Meta, e.URL)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return nil
}

// VerifyPlaylist reopens path and counts its lines, keeping the first few.
func VerifyPlaylist(path string) (Verification, error) {
	var v Verification

	f, err := os.Open(path)
	if err != nil {
		return v, fmt.Errorf("failed to open output file: %w", err)
	}
	defer f.Close()

	// ReadString has no line length cap, so any entry Extract accepts
	// can be read back
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			if v.LineCount < headLines {
				v.Head = append(v.Head, strings.TrimRight(line, "\r\n"))
			}
			v.LineCount++
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return v, fmt.Errorf("failed to read back output file: %w", err)
		}
	}

	return v, nil
}
