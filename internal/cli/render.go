package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmynk/producttracker/internal/models"
)

// palette holds the colors for one theme.
type palette struct {
	title  lipgloss.Color
	accent lipgloss.Color
	muted  lipgloss.Color
	danger lipgloss.Color
}

var palettes = map[string]palette{
	models.ThemeLight: {
		title:  lipgloss.Color("#101F38"),
		accent: lipgloss.Color("#2E7D32"),
		muted:  lipgloss.Color("#6B7280"),
		danger: lipgloss.Color("#C62828"),
	},
	models.ThemeDark: {
		title:  lipgloss.Color("#E5E7EB"),
		accent: lipgloss.Color("#8BC34A"),
		muted:  lipgloss.Color("#9CA3AF"),
		danger: lipgloss.Color("#EF5350"),
	},
}

// styles renders report output for the user's theme.
type styles struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Cell   lipgloss.Style
	Muted  lipgloss.Style
	Good   lipgloss.Style
	Bad    lipgloss.Style
}

// newStyles binds styles to w, so colors are dropped when w is not a terminal.
func newStyles(w io.Writer, theme string) styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[models.ThemeLight]
	}
	r := lipgloss.NewRenderer(w)
	return styles{
		Title:  r.NewStyle().Bold(true).Foreground(p.title),
		Header: r.NewStyle().Bold(true).Padding(0, 1),
		Cell:   r.NewStyle().Padding(0, 1),
		Muted:  r.NewStyle().Foreground(p.muted),
		Good:   r.NewStyle().Foreground(p.accent),
		Bad:    r.NewStyle().Foreground(p.danger),
	}
}

// table is a plain text table with a title and aligned columns.
type table struct {
	title   string
	headers []string
	rows    [][]string
}

func newTable(title string, headers ...string) *table {
	return &table{title: title, headers: headers}
}

func (t *table) addRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) render(s styles) string {
	var sb strings.Builder
	if t.title != "" {
		sb.WriteString(s.Title.Render(t.title))
		sb.WriteString("\n")
	}
	if len(t.rows) == 0 {
		sb.WriteString(s.Muted.Render("(none)"))
		sb.WriteString("\n")
		return sb.String()
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}
	// Width includes the horizontal padding.
	total := len(widths) - 1
	for i := range widths {
		widths[i] += 2
		total += widths[i]
	}

	sep := s.Muted.Render("|")
	writeRow := func(cells []string, style lipgloss.Style) {
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			sb.WriteString(style.Width(widths[i]).Render(cell))
			if i < len(widths)-1 {
				sb.WriteString(sep)
			}
		}
		sb.WriteString("\n")
	}

	writeRow(t.headers, s.Header)
	sb.WriteString(s.Muted.Render(strings.Repeat("-", total)))
	sb.WriteString("\n")
	for _, row := range t.rows {
		writeRow(row, s.Cell)
	}
	return sb.String()
}
