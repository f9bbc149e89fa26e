package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/idelchi/duim/internal/report"
)

// PrintJSON outputs the report in JSON format.
func PrintJSON(rep *report.Report, writer io.Writer) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintTable outputs one bar chart row per entry followed by the total:
//
//	 61% [============        ] 160M	/path
//	Total: 262M	/
func PrintTable(rep *report.Report, writer io.Writer) error {
	for _, e := range rep.Entries {
		if _, err := fmt.Fprintf(writer, "%3.0f%% [%s] %s\t%s\n", e.Percent, e.Bar, e.Label, e.Path); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(writer, "Total: %s\t%s\n", rep.TotalLabel, rep.Target)

	return err
}
