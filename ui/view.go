package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"note-app/models"
	"note-app/pkg/imagecodec"
	"note-app/services"
)

func (m Model) View() string {
	var (
		title string
		body  string
		keys  help.KeyMap
	)

	switch m.screen {
	case screenSearch:
		title, body, keys = "Search Notes", m.searchView(), searchKeyMap{m.keys}
	case screenResults:
		title, body, keys = m.resultsTitle(), m.resultsView(), resultsKeyMap{m.keys}
	case screenNote:
		title, body, keys = "Note", m.noteScreen(), noteKeyMap{m.keys}
	case screenEdit:
		title, body, keys = fmt.Sprintf("Edit Note %d", m.editID), m.editView(), editKeyMap{m.keys}
	default:
		title, body, keys = "New Note", m.form.view(), mainKeyMap{m.keys}
	}

	parts := []string{titleStyle.Render(title), "", body, ""}
	if s := m.statusView(); s != "" {
		parts = append(parts, s, "")
	}
	parts = append(parts, m.help.View(keys))

	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) statusView() string {
	var lines []string
	if m.status != "" {
		lines = append(lines, statusStyle.Render(m.status))
	}
	if m.err != "" {
		lines = append(lines, errorStyle.Render(m.err))
	}
	return strings.Join(lines, "\n")
}

func (m Model) searchView() string {
	var kinds []string
	for i, k := range models.SearchKinds {
		if i == m.searchKind {
			kinds = append(kinds, focusStyle.Render("["+string(k)+"]"))
		} else {
			kinds = append(kinds, dimStyle.Render(" "+string(k)+" "))
		}
	}

	return strings.Join([]string{
		labelStyle.Render("Search by:"),
		strings.Join(kinds, " "),
		"",
		labelStyle.Render("Value:"),
		m.searchInput.View(),
	}, "\n")
}

func (m Model) resultsTitle() string {
	return fmt.Sprintf("Results  Page %d of %d (%d notes)", m.results.Number, m.results.TotalPages, m.results.Total)
}

func (m Model) resultsView() string {
	if len(m.results.Notes) == 0 {
		return dimStyle.Render("No notes found!")
	}

	cards := make([]string, 0, len(m.results.Notes))
	for i, n := range m.results.Notes {
		style := cardStyle
		if i == m.cursor {
			style = selectedCardStyle
		}
		if m.width > 0 {
			style = style.Width(m.width - 8)
		}
		cards = append(cards, style.Render(renderCard(n)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func renderCard(n models.Note) string {
	head := fmt.Sprintf("%s  %s", focusStyle.Render(n.Title), dimStyle.Render(fmt.Sprintf("#%d", n.ID)))
	if n.HasImage() {
		head += dimStyle.Render("  [image]")
	}

	return strings.Join([]string{
		head,
		services.Excerpt(n.Content),
		dimStyle.Render(fmt.Sprintf("Created At: %s  Updated At: %s", formatTime(n.CreatedAt), formatTime(n.UpdatedAt))),
	}, "\n")
}

// noteScreen renders the full note with the download prompt when active.
func (m Model) noteScreen() string {
	if m.note == nil {
		return ""
	}

	body := m.viewer.View()
	if m.downloading {
		body += "\n\n" + labelStyle.Render("Save image to:") + "\n" + m.pathInput.View()
	}
	return body
}

func renderNote(n models.Note, width int) string {
	lines := []string{
		focusStyle.Render(n.Title),
		dimStyle.Render(fmt.Sprintf("ID: %d  Created At: %s  Updated At: %s", n.ID, formatTime(n.CreatedAt), formatTime(n.UpdatedAt))),
		"",
		lipgloss.NewStyle().Width(width).Render(n.Content),
		"",
	}

	switch {
	case !n.HasImage():
		lines = append(lines, dimStyle.Render("No image"))
	default:
		info, err := imagecodec.Describe(n.Image)
		if err != nil {
			lines = append(lines, errorStyle.Render("Image: unreadable ("+err.Error()+")"))
		} else {
			lines = append(lines, labelStyle.Render("Image: ")+info.String())
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) editView() string {
	toggle := "[ ]"
	if m.appendClipboard {
		toggle = "[x]"
	}
	return m.edit.view() + "\n\n" + labelStyle.Render(toggle+" Append clipboard text to content")
}

func formatTime(t time.Time) string {
	return t.Local().Format(timeLayout)
}
