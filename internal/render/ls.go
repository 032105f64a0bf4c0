package render

import (
	"fmt"
	"io"
)

// ProjectHumanRow holds the fields for a single human-output row.
type ProjectHumanRow struct {
	Project string
	Binary  string
	Status  string
	Dir     string
}

// WriteLSHuman writes the ls output as aligned columns. Nothing is written
// for an empty list.
func WriteLSHuman(w io.Writer, rows []ProjectHumanRow) error {
	if len(rows) == 0 {
		return nil
	}

	widths := columnWidths(rows)

	header := formatRow("PROJECT", "BINARY", "STATUS", "DIR", widths)
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, formatRow(row.Project, row.Binary, row.Status, row.Dir, widths)); err != nil {
			return err
		}
	}
	return nil
}

type colWidths struct {
	project int
	binary  int
	status  int
}

func columnWidths(rows []ProjectHumanRow) colWidths {
	widths := colWidths{
		project: len("PROJECT"),
		binary:  len("BINARY"),
		status:  len("STATUS"),
	}
	for _, row := range rows {
		widths.project = max(widths.project, len(row.Project))
		widths.binary = max(widths.binary, len(row.Binary))
		widths.status = max(widths.status, len(row.Status))
	}
	return widths
}

// formatRow pads every column but the last.
func formatRow(project, binary, status, dir string, w colWidths) string {
	return fmt.Sprintf("%-*s  %-*s  %-*s  %s",
		w.project, project,
		w.binary, binary,
		w.status, status,
		dir,
	)
}

// FormatHumanRows converts summaries to display rows.
func FormatHumanRows(summaries []ProjectSummary) []ProjectHumanRow {
	rows := make([]ProjectHumanRow, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, ProjectHumanRow{
			Project: fmt.Sprintf("%d/%d", s.Period, s.Day),
			Binary:  s.Binary,
			Status:  s.Status,
			Dir:     s.Dir,
		})
	}
	return rows
}
