package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"note-app/app"
	"note-app/models"
	"note-app/pkg/imagecodec"
	"note-app/services"
	"note-app/validator"
)

type screen int

const (
	screenMain screen = iota
	screenSearch
	screenResults
	screenNote
	screenEdit
)

const timeLayout = "2006-01-02 15:04:05"

// query is the last search that produced the results screen, re-run after edits and deletes.
type query struct {
	all   bool
	kind  models.SearchKind
	value string
}

type Model struct {
	app  *app.App
	keys KeyMap
	help help.Model

	width  int
	height int

	screen screen

	form noteForm

	searchKind  int
	searchInput textinput.Model

	query   query
	notes   []models.Note
	results services.Page
	cursor  int

	note        *models.Note
	viewer      viewport.Model
	downloading bool
	pathInput   textinput.Model

	edit            noteForm
	editID          int64
	appendClipboard bool
	tempImage       string

	status string
	err    string
}

func New(a *app.App) Model {
	si := textinput.New()
	si.Prompt = ""
	si.Placeholder = validator.DateLayout

	pi := textinput.New()
	pi.Prompt = ""

	h := help.New()
	h.ShowAll = false

	m := Model{
		app:         a,
		keys:        DefaultKeyMap(),
		help:        h,
		screen:      screenMain,
		form:        newNoteForm(),
		searchInput: si,
		viewer:      viewport.New(0, 0),
		pathInput:   pi,
		edit:        newNoteForm(),
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.removeTempImage()
			return m, tea.Quit
		}

		switch m.screen {
		case screenSearch:
			return m.updateSearch(msg)
		case screenResults:
			return m.updateResults(msg)
		case screenNote:
			return m.updateNote(msg)
		case screenEdit:
			return m.updateEdit(msg)
		default:
			return m.updateMain(msg)
		}
	}

	return m, m.updateFocused(msg)
}

// updateFocused forwards non-key messages such as cursor blinks.
func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.screen {
	case screenMain:
		cmd = m.form.update(msg)
	case screenEdit:
		cmd = m.edit.update(msg)
	case screenSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case screenNote:
		if m.downloading {
			m.pathInput, cmd = m.pathInput.Update(msg)
		}
	}
	return cmd
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Add):
		m.addNote()
		return m, nil
	case key.Matches(msg, m.keys.Search):
		m.clearStatus()
		m.screen = screenSearch
		return m, m.searchInput.Focus()
	case key.Matches(msg, m.keys.ViewAll):
		m.runQuery(query{all: true})
		return m, nil
	case key.Matches(msg, m.keys.Next):
		return m, m.form.next()
	case key.Matches(msg, m.keys.Prev):
		return m, m.form.prev()
	}
	return m, m.form.update(msg)
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.searchInput.Blur()
		m.screen = screenMain
		return m, m.form.focusField(m.form.focus)
	case key.Matches(msg, m.keys.Kind):
		m.searchKind = (m.searchKind + 1) % len(models.SearchKinds)
		m.searchInput.Placeholder = searchPlaceholder(models.SearchKinds[m.searchKind])
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		m.runQuery(query{
			kind:  models.SearchKinds[m.searchKind],
			value: m.searchInput.Value(),
		})
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.clearStatus()
		if m.query.all {
			m.screen = screenMain
			return m, m.form.focusField(m.form.focus)
		}
		m.screen = screenSearch
		return m, m.searchInput.Focus()
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.results.Notes)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.PrevPage):
		if m.results.HasPrev() {
			m.showPage(m.results.Number - 1)
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.NextPage):
		if m.results.HasNext() {
			m.showPage(m.results.Number + 1)
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.ReadMore):
		if n := m.selected(); n != nil {
			m.openNote(*n)
		}
	case key.Matches(msg, m.keys.Edit):
		if n := m.selected(); n != nil {
			return m, m.openEdit(n.ID)
		}
	case key.Matches(msg, m.keys.Delete):
		if n := m.selected(); n != nil {
			m.deleteNote(n.ID)
		}
	}
	return m, nil
}

func (m Model) updateNote(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.downloading {
		switch {
		case key.Matches(msg, m.keys.Back):
			m.downloading = false
			m.pathInput.Blur()
			return m, nil
		case key.Matches(msg, m.keys.Submit):
			m.downloadImage()
			return m, nil
		}
		var cmd tea.Cmd
		m.pathInput, cmd = m.pathInput.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		m.note = nil
		m.screen = screenResults
		return m, nil
	case key.Matches(msg, m.keys.Download):
		if !m.note.HasImage() {
			m.setError("This note has no image")
			return m, nil
		}
		m.clearStatus()
		m.downloading = true
		m.pathInput.SetValue(fmt.Sprintf("note-%d%s", m.note.ID, imagecodec.Extension(m.note.Image)))
		return m, m.pathInput.Focus()
	case key.Matches(msg, m.keys.Copy):
		m.copyText()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewer, cmd = m.viewer.Update(msg)
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.closeEdit()
		return m, nil
	case key.Matches(msg, m.keys.Save):
		m.saveEdit()
		return m, nil
	case key.Matches(msg, m.keys.AppendClipboard):
		m.appendClipboard = !m.appendClipboard
		return m, nil
	case key.Matches(msg, m.keys.Next):
		return m, m.edit.next()
	case key.Matches(msg, m.keys.Prev):
		return m, m.edit.prev()
	}
	return m, m.edit.update(msg)
}

func (m *Model) addNote() {
	title, content, imagePath := m.form.values()

	var res *models.CreateResult
	err := m.app.Dispatch("create", func(ns *services.NoteService) error {
		var err error
		res, err = ns.Create(models.CreateNoteRequest{
			Title:     title,
			Content:   content,
			ImagePath: imagePath,
		})
		return err
	}, slog.Bool("has_image_path", imagePath != ""))
	if err != nil {
		m.setError(describeError(err))
		return
	}

	m.form.reset()
	m.setStatus(fmt.Sprintf("Note added! ID: %d  Created At: %s  Updated At: %s",
		res.ID, formatTime(res.CreatedAt), formatTime(res.UpdatedAt)))
	if res.ImageErr != nil {
		m.err = "Image not attached: " + describeError(res.ImageErr)
	}
}

// runQuery fetches notes and opens the results screen on the first page.
// An empty result stays on the current screen.
func (m *Model) runQuery(q query) {
	notes, err := m.fetch(q)
	if err != nil {
		m.setError(describeError(err))
		return
	}
	if len(notes) == 0 {
		m.setError("No notes found!")
		return
	}

	m.clearStatus()
	m.query = q
	m.notes = notes
	m.cursor = 0
	m.showPage(1)
	m.searchInput.Blur()
	m.form.title.Blur()
	m.form.content.Blur()
	m.form.image.Blur()
	m.screen = screenResults
}

// reload re-runs the last query and keeps the current page where possible.
func (m *Model) reload() {
	notes, err := m.fetch(m.query)
	if err != nil {
		m.err = describeError(err)
		return
	}
	if len(notes) == 0 {
		m.notes = nil
		m.screen = screenMain
		m.form.focusField(m.form.focus)
		return
	}

	m.notes = notes
	m.showPage(m.results.Number)
	m.screen = screenResults
}

func (m *Model) fetch(q query) ([]models.Note, error) {
	action := "search"
	if q.all {
		action = "list"
	}

	var notes []models.Note
	err := m.app.Dispatch(action, func(ns *services.NoteService) error {
		var err error
		if q.all {
			notes, err = ns.ListAll()
		} else {
			notes, err = ns.Search(q.kind, q.value)
		}
		return err
	}, slog.String("kind", string(q.kind)), slog.String("value", q.value))
	return notes, err
}

func (m *Model) showPage(page int) {
	m.results = services.Paginate(m.notes, page, m.app.Config.PageSize)
	if m.cursor >= len(m.results.Notes) {
		m.cursor = len(m.results.Notes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) selected() *models.Note {
	if m.cursor < 0 || m.cursor >= len(m.results.Notes) {
		return nil
	}
	return &m.results.Notes[m.cursor]
}

func (m *Model) deleteNote(id int64) {
	err := m.app.Dispatch("delete", func(ns *services.NoteService) error {
		return ns.Delete(id)
	}, slog.Int64("id", id))
	if err != nil {
		m.setError(describeError(err))
		return
	}

	m.setStatus(fmt.Sprintf("Note %d deleted!", id))
	m.reload()
}

func (m *Model) openNote(n models.Note) {
	m.clearStatus()
	m.note = &n
	m.downloading = false
	m.viewer.SetContent(renderNote(n, m.noteWidth()))
	m.viewer.GotoTop()
	m.screen = screenNote
}

func (m *Model) downloadImage() {
	path := strings.TrimSpace(m.pathInput.Value())
	if path == "" {
		m.setError("Enter a file path")
		return
	}

	saved, err := imagecodec.Export(path, m.note.Image)
	if err != nil {
		m.app.Logger.Error("image export failed", "id", m.note.ID, "path", path, "error", err)
		m.setError("Error: " + err.Error())
		return
	}

	m.app.Logger.Info("image exported", "id", m.note.ID, "path", saved)
	m.downloading = false
	m.pathInput.Blur()
	m.setStatus("Image saved to " + saved)
}

func (m *Model) copyText() {
	content := m.note.Content
	err := m.app.Dispatch("copy", func(ns *services.NoteService) error {
		return ns.CopyText(content)
	}, slog.Int64("id", m.note.ID))
	if err != nil {
		m.setError(describeError(err))
		return
	}
	m.setStatus("Text copied to clipboard!")
}

// openEdit loads the note fresh from the store and pre-fills the edit form.
// A stored image is exported to a temp file so that saving without changes keeps it.
func (m *Model) openEdit(id int64) tea.Cmd {
	var note *models.Note
	err := m.app.Dispatch("get", func(ns *services.NoteService) error {
		var err error
		note, err = ns.Get(id)
		return err
	}, slog.Int64("id", id))
	if err != nil {
		m.setError(describeError(err))
		if errors.Is(err, services.ErrNoteNotFound) {
			m.reload()
		}
		return nil
	}

	m.clearStatus()
	m.removeTempImage()

	imagePath := ""
	if note.HasImage() {
		path, err := imagecodec.ExportTemp(note.Image, fmt.Sprintf("note-%d", id))
		if err != nil {
			m.app.Logger.Warn("could not export current image", "id", id, "error", err)
			m.setError("Current image could not be exported: " + err.Error())
		} else {
			m.tempImage = path
			imagePath = path
		}
	}

	m.editID = id
	m.appendClipboard = false
	m.edit.fill(note.Title, note.Content, imagePath)
	m.screen = screenEdit
	return m.edit.focusField(fieldTitle)
}

func (m *Model) saveEdit() {
	id := m.editID
	title, content, imagePath := m.edit.values()
	appendClipboard := m.appendClipboard

	var res *models.UpdateResult
	err := m.app.Dispatch("update", func(ns *services.NoteService) error {
		var err error
		res, err = ns.Update(models.UpdateNoteRequest{
			ID:              id,
			Title:           title,
			Content:         content,
			ImagePath:       imagePath,
			AppendClipboard: appendClipboard,
		})
		return err
	}, slog.Int64("id", id), slog.Bool("append_clipboard", appendClipboard))
	if err != nil {
		m.setError(describeError(err))
		if errors.Is(err, services.ErrNoteNotFound) {
			m.removeTempImage()
			m.reload()
		}
		return
	}

	m.removeTempImage()
	m.setStatus(fmt.Sprintf("Note %d updated! Updated At: %s", id, formatTime(res.UpdatedAt)))
	if res.ImageErr != nil {
		m.err = "Image not attached: " + describeError(res.ImageErr)
	}
	m.reload()
}

func (m *Model) closeEdit() {
	m.removeTempImage()
	m.clearStatus()
	m.screen = screenResults
}

func (m *Model) removeTempImage() {
	if m.tempImage == "" {
		return
	}
	if err := os.Remove(m.tempImage); err != nil && !os.IsNotExist(err) {
		m.app.Logger.Warn("failed to remove temp image", "path", m.tempImage, "error", err)
	}
	m.tempImage = ""
}

func (m *Model) layout() {
	w := m.width - 6
	if w < 20 {
		w = 20
	}
	m.form.setWidth(w)
	m.edit.setWidth(w)
	m.searchInput.Width = w
	m.pathInput.Width = w
	m.help.Width = m.width

	h := m.height - 10
	if h < 3 {
		h = 3
	}
	m.viewer.Width = w
	m.viewer.Height = h
	if m.note != nil {
		m.viewer.SetContent(renderNote(*m.note, w))
	}
}

func (m Model) noteWidth() int {
	if m.viewer.Width > 0 {
		return m.viewer.Width
	}
	return 80
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.err = ""
}

func (m *Model) setError(s string) {
	m.status = ""
	m.err = s
}

func (m *Model) clearStatus() {
	m.status = ""
	m.err = ""
}

func describeError(err error) string {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, services.ErrEmptyTitle):
		return "Title cannot be empty!"
	case errors.As(err, &verrs):
		return verrs.Error()
	case errors.Is(err, services.ErrNoteNotFound):
		return "Note not found!"
	case errors.Is(err, services.ErrInvalidSearchDate):
		return "Invalid date, use YYYY-MM-DD"
	case errors.Is(err, services.ErrClipboardUnavailable):
		return "Clipboard is not available"
	case errors.Is(err, imagecodec.ErrInvalidFormat):
		return "Invalid image format! Use .png, .gif, .jpg or .jpeg"
	default:
		return "Error: " + err.Error()
	}
}

func searchPlaceholder(kind models.SearchKind) string {
	switch kind {
	case models.SearchByDate:
		return validator.DateLayout
	case models.SearchByTitle:
		return "part of a title"
	default:
		return "part of the content"
	}
}
