package cli

import (
	"context"
	"fmt"
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/MKhiriev/go-client-desk/models"
)

// theme holds the styles for one output stream. Styles come from a renderer
// bound to that stream, so colors are dropped when it is not a terminal.
type theme struct {
	title     lipgloss.Style
	success   lipgloss.Style
	errorText lipgloss.Style
	dim       lipgloss.Style
	header    lipgloss.Style
	cell      lipgloss.Style
	border    lipgloss.Style
}

func newTheme(w io.Writer) theme {
	r := lipgloss.NewRenderer(w)

	return theme{
		title:     r.NewStyle().Bold(true),
		success:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981")),
		errorText: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444")),
		dim:       r.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		header:    r.NewStyle().Bold(true).Padding(0, 1),
		cell:      r.NewStyle().Padding(0, 1),
		border:    r.NewStyle().Foreground(lipgloss.Color("#6B7280")),
	}
}

// printer is the session notifier of one-shot commands: successes go to
// out, failures to errOut.
type printer struct {
	out, errOut        io.Writer
	outTheme, errTheme theme
}

func newPrinter(out, errOut io.Writer) *printer {
	return &printer{
		out:      out,
		errOut:   errOut,
		outTheme: newTheme(out),
		errTheme: newTheme(errOut),
	}
}

// Notify implements session.Notifier.
func (p *printer) Notify(_ context.Context, n models.Notification) {
	w, style := p.out, p.outTheme.success
	if n.Variant == models.NotificationDestructive {
		w, style = p.errOut, p.errTheme.errorText
	}

	if n.Description == "" {
		fmt.Fprintln(w, style.Render(n.Title))
		return
	}
	fmt.Fprintf(w, "%s: %s\n", style.Render(n.Title), n.Description)
}

func (t theme) clientTable(clients []models.Client) string {
	rows := make([][]string, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, []string{c.ID, c.Name, c.Email, c.Company, string(c.Status)})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(t.border).
		Headers("ID", "NAME", "EMAIL", "COMPANY", "STATUS").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return t.header
			}
			return t.cell
		}).
		Render()
}

// fields renders label/value pairs aligned on the labels.
func (t theme) fields(pairs ...[2]string) string {
	width := 0
	for _, p := range pairs {
		width = max(width, utf8.RuneCountInString(p[0]))
	}

	var out string
	for i, p := range pairs {
		if i > 0 {
			out += "\n"
		}
		out += t.dim.Render(fmt.Sprintf("%-*s", width+1, p[0]+":")) + " " + p[1]
	}
	return out
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
