package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// Column widths for the aggregated table.
const (
	sumColW  = 14
	uniqColW = 6
)

func renderDashboard(a *App, width, height int) string {
	var lines []string
	lines = append(lines, renderTabStrip(a, width))
	lines = append(lines, borderStyle(&a.theme).Render(strings.Repeat("─", max(width, 1))))

	detail := renderDetail(a, width)

	// One line is reserved for the footer.
	tableH := height - len(lines) - len(detail) - 1
	lines = append(lines, renderTable(a, width, tableH)...)
	lines = append(lines, detail...)

	for len(lines) < height-1 {
		lines = append(lines, "")
	}
	if len(lines) > height-1 {
		lines = lines[:height-1]
	}
	lines = append(lines, renderFooter(a, width))
	return strings.Join(lines, "\n")
}

// renderTabStrip renders the tab names in configuration order with the
// active tab highlighted.
func renderTabStrip(a *App, width int) string {
	accent := accentStyle(&a.theme)
	muted := mutedStyle(&a.theme)

	parts := make([]string, 0, len(a.tabs))
	for i, t := range a.tabs {
		if i == a.tabIndex {
			parts = append(parts, accent.Bold(true).Render("["+t.Name+"]"))
		} else {
			parts = append(parts, muted.Render(" "+t.Name+" "))
		}
	}
	strip := accent.Render(" connwatch ") + muted.Render("·") + " " + strings.Join(parts, " ")
	return TruncateStyled(strip, width)
}

// renderTable renders the aggregated stats table: one row per key, with
// either a sum (all values numeric) or a distinct count. An empty window
// renders an empty table, never an error.
func renderTable(a *App, width, maxH int) []string {
	if maxH < 1 {
		return nil
	}

	headerStyle := lipgloss.NewStyle().Foreground(a.theme.Header)
	keyW := width - sumColW - uniqColW - 3
	if keyW < 8 {
		keyW = 8
	}

	lines := []string{headerStyle.Render(
		" " + padRight("Key", keyW) + rightAlign("Sum", sumColW) + rightAlign("Uniq", uniqColW),
	)}

	if len(a.rows) == 0 {
		msg := "no matching connections"
		if a.window.Len() == 0 {
			msg = "waiting for first snapshot"
		}
		lines = append(lines, mutedStyle(&a.theme).Render("  "+msg))
		return lines
	}

	// Scroll so the cursor stays visible.
	visible := maxH - 1
	if visible < 1 {
		visible = 1
	}
	offset := 0
	if a.cursor >= visible {
		offset = a.cursor - visible + 1
	}

	sumStyle := lipgloss.NewStyle().Foreground(a.theme.Sum)
	uniqStyle := lipgloss.NewStyle().Foreground(a.theme.Uniq)

	for i := offset; i < len(a.rows) && i-offset < visible; i++ {
		row := a.rows[i]
		sum, uniq, numeric := row.Aggregate()

		var sumCell, uniqCell string
		if numeric {
			sumCell = sumStyle.Render(rightAlign(formatSum(sum), sumColW))
			uniqCell = rightAlign("", uniqColW)
		} else {
			sumCell = rightAlign("", sumColW)
			uniqCell = uniqStyle.Render(rightAlign(fmt.Sprintf("%d", uniq), uniqColW))
		}

		line := " " + padRight(row.Key, keyW) + sumCell + uniqCell
		if i == a.cursor {
			line = cursorRow(line, width)
		}
		lines = append(lines, line)
	}
	return lines
}

// renderDetail renders the distinct values behind the selected row, with
// occurrence counts across matching connections.
func renderDetail(a *App, width int) []string {
	row := a.selectedRow()
	if row == nil {
		return nil
	}

	const maxValues = 6
	lines := []string{renderLabeledDivider(row.Key, width, &a.theme)}

	counts := row.ValueCounts()
	shown := counts
	if len(shown) > maxValues {
		shown = shown[:maxValues]
	}
	muted := mutedStyle(&a.theme)
	for _, vc := range shown {
		line := fmt.Sprintf("  %s %s", vc.Value, muted.Render(fmt.Sprintf("×%d", vc.Count)))
		lines = append(lines, TruncateStyled(line, width))
	}
	if rest := len(counts) - len(shown); rest > 0 {
		lines = append(lines, muted.Render(fmt.Sprintf("  … %d more", rest)))
	}
	return lines
}

// renderLabeledDivider centers a label inside a horizontal rule.
func renderLabeledDivider(label string, w int, theme *Theme) string {
	div := borderStyle(theme)
	lbl := " " + Truncate(label, max(w-6, 1)) + " "
	lblLen := len([]rune(lbl))
	side := (w - lblLen) / 2
	if side < 1 {
		return div.Render(strings.Repeat("─", max(w, 1)))
	}
	right := w - side - lblLen
	return div.Render(strings.Repeat("─", side)) + mutedStyle(theme).Render(lbl) + div.Render(strings.Repeat("─", right))
}

// renderFooter shows snapshot status on the left and key hints on the right.
func renderFooter(a *App, width int) string {
	muted := mutedStyle(&a.theme)

	status := "no data yet"
	if latest, ok := a.window.Latest(); ok {
		status = fmt.Sprintf("%d connections · updated %s · %d snapshots retained",
			len(latest.Connections), humanize.Time(latest.Time), a.window.Len())
	}

	hints := "←/h →/l tabs  ↑/k ↓/j rows  q quit"

	return TruncateStyled(" "+status+muted.Render("  "+hints), width)
}
