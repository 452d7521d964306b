package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/foldersize/internal/foldersize"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2

	// MiB is the divisor used for the plain output.
	MiB = 1024 * 1024

	// Header is printed above the plain output.
	Header = "=== File and folder sizes ==="
)

// Report is the rendered result of a scan.
type Report struct {
	// Path is the scanned directory.
	Path string `json:"path"`
	// TotalBytes is the cumulative size of all entries.
	TotalBytes int64 `json:"total_bytes"`
	// Entries are the immediate children, largest first.
	Entries []foldersize.Entry `json:"entries"`
}

// NewReport builds a Report for entries that are already sorted.
func NewReport(path string, entries []foldersize.Entry) Report {
	return Report{
		Path:       path,
		TotalBytes: foldersize.TotalSize(entries),
		Entries:    entries,
	}
}

// PrintPlain outputs one "<name> <<< <size> MB" line per entry.
// Sizes are truncated to whole mebibytes, or humanized if human is set.
func PrintPlain(report Report, writer io.Writer, human bool) error {
	if _, err := fmt.Fprintf(writer, "\n%s\n", Header); err != nil {
		return err
	}

	for _, e := range report.Entries {
		var err error

		if human {
			_, err = fmt.Fprintf(writer, "%s <<< %s\n", e.Name, humanize.IBytes(uint64(e.Size))) //nolint:gosec // Size is never negative
		} else {
			_, err = fmt.Fprintf(writer, "%s <<< %d MB\n", e.Name, e.Size/MiB)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// PrintJSON outputs the report in JSON format.
func PrintJSON(report Report, writer io.Writer) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintTable outputs the report as an aligned table with percentages.
//
//nolint:forbidigo // This function prints output to the console.
func PrintTable(report Report, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintf(w, "\nSizes of '%s':\t\t\n", report.Path)

	for i, e := range report.Entries {
		pct := 0.0
		if report.TotalBytes > 0 {
			pct = 100.0 * float64(e.Size) / float64(report.TotalBytes)
		}

		fmt.Fprintf(w, "  %d) '%s'\t%s\t(%.1f%%)\n",
			i+1, e.Name, humanize.IBytes(uint64(e.Size)), pct) //nolint:gosec // Size is never negative
	}

	fmt.Fprintf(w, "\nTotal:\t%s (%d bytes)\t\n",
		humanize.IBytes(uint64(report.TotalBytes)), report.TotalBytes) //nolint:gosec // Size is never negative

	return w.Flush()
}
