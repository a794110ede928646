package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldTitle = iota
	fieldContent
	fieldImage
	fieldCount
)

// noteForm is the title/content/image form shared by the add and edit screens.
type noteForm struct {
	title   textinput.Model
	content textarea.Model
	image   textinput.Model
	focus   int
}

func newNoteForm() noteForm {
	ti := textinput.New()
	ti.Placeholder = "Title"
	ti.Prompt = ""
	ti.CharLimit = 255

	ta := textarea.New()
	ta.Placeholder = "Write your note..."
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.SetHeight(5)

	img := textinput.New()
	img.Placeholder = "/path/to/image.png (optional)"
	img.Prompt = ""

	f := noteForm{title: ti, content: ta, image: img}
	f.focusField(fieldTitle)
	return f
}

func (f *noteForm) focusField(i int) tea.Cmd {
	f.focus = (i + fieldCount) % fieldCount
	f.title.Blur()
	f.content.Blur()
	f.image.Blur()

	switch f.focus {
	case fieldContent:
		return f.content.Focus()
	case fieldImage:
		return f.image.Focus()
	default:
		return f.title.Focus()
	}
}

func (f *noteForm) next() tea.Cmd { return f.focusField(f.focus + 1) }
func (f *noteForm) prev() tea.Cmd { return f.focusField(f.focus - 1) }

func (f *noteForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case fieldContent:
		f.content, cmd = f.content.Update(msg)
	case fieldImage:
		f.image, cmd = f.image.Update(msg)
	default:
		f.title, cmd = f.title.Update(msg)
	}
	return cmd
}

func (f *noteForm) fill(title, content, imagePath string) {
	f.title.SetValue(title)
	f.content.SetValue(content)
	f.image.SetValue(imagePath)
	f.focusField(fieldTitle)
}

func (f *noteForm) reset() {
	f.fill("", "", "")
}

func (f *noteForm) setWidth(w int) {
	f.title.Width = w
	f.content.SetWidth(w)
	f.image.Width = w
}

func (f noteForm) values() (title, content, imagePath string) {
	return f.title.Value(), f.content.Value(), strings.TrimSpace(f.image.Value())
}

func (f noteForm) view() string {
	label := func(i int, name string) string {
		if f.focus == i {
			return focusStyle.Render(name)
		}
		return labelStyle.Render(name)
	}

	return strings.Join([]string{
		label(fieldTitle, "Title:"),
		f.title.View(),
		"",
		label(fieldContent, "Content:"),
		f.content.View(),
		"",
		label(fieldImage, "Image:"),
		f.image.View(),
	}, "\n")
}
