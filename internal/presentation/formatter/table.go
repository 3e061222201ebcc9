package formatter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/scripta-tools/linehistory/internal/core/model"
	"github.com/scripta-tools/linehistory/internal/util"
)

const (
	timeLayout   = "2006-01-02 15:04:05"
	maxTextWidth = 48
)

// TableRenderer prints the version history as a fixed-header table,
// newest version first.
type TableRenderer struct {
	writer  io.Writer
	headers []string
}

func NewTableRenderer() *TableRenderer {
	return NewTableRendererTo(os.Stdout)
}

// NewTableRendererTo writes to the given writer instead of stdout.
func NewTableRendererTo(w io.Writer) *TableRenderer {
	return &TableRenderer{
		writer:  w,
		headers: []string{"Version", "Modified", "Region", "Changed", "Text"},
	}
}

func (r *TableRenderer) Render(view model.ViewModel) error {
	if view.Empty {
		_, err := fmt.Fprintln(r.writer, "No line selected.")
		return err
	}

	if view.CurrentLineID != "" {
		fmt.Fprintf(r.writer, "Line: %s\n", view.CurrentLineID)
	}
	if view.CanPreview && view.ImageSource != "" {
		fmt.Fprintf(r.writer, "Image: %s\n", view.ImageSource)
	}

	rows := r.buildRows(view.Versions)
	widths := r.calculateColumnWidths(rows)

	r.printBorder(widths)
	r.printRow(r.headers, widths)
	r.printBorder(widths)
	for _, row := range rows {
		r.printRow(row, widths)
	}
	r.printBorder(widths)

	return nil
}

func (r *TableRenderer) buildRows(versions []model.AnnotatedVersion) [][]string {
	tp := util.GetTimeProvider()

	rows := make([][]string, 0, len(versions))
	for _, v := range versions {
		changed := ""
		if v.BoundingChanged {
			changed = "*"
		}
		rows = append(rows, []string{
			v.DisplayID,
			tp.FormatMillis(v.TimestampMillis, timeLayout),
			regionLabel(v.Bounding),
			changed,
			runewidth.Truncate(v.Text, maxTextWidth, "..."),
		})
	}
	return rows
}

func regionLabel(rect *model.Rectangle) string {
	if rect == nil {
		return "-"
	}
	return fmt.Sprintf("%d,%d %dx%d", rect.X, rect.Y, rect.Width, rect.Height)
}

// calculateColumnWidths sizes each column to its widest cell, header
// included. Widths are display widths, not byte counts.
func (r *TableRenderer) calculateColumnWidths(rows [][]string) []int {
	widths := make([]int, len(r.headers))
	for i, h := range r.headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func (r *TableRenderer) printBorder(widths []int) {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w+2)
	}
	fmt.Fprintf(r.writer, "+%s+\n", strings.Join(parts, "+"))
}

func (r *TableRenderer) printRow(cells []string, widths []int) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = " " + cell + strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell)) + " "
	}
	fmt.Fprintf(r.writer, "|%s|\n", strings.Join(parts, "|"))
}
