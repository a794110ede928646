package services

import "note-app/models"

const (
	DefaultPageSize = 2
	ExcerptLength   = 200
)

// Page is one screenful of an in-memory result list. Number is 1-based.
type Page struct {
	Notes      []models.Note
	Number     int
	Size       int
	TotalPages int
	Total      int
}

func (p Page) HasPrev() bool { return p.Number > 1 }
func (p Page) HasNext() bool { return p.Number < p.TotalPages }

// Paginate slices notes into pages of size and returns the requested page,
// clamped into the valid range. An empty list still has one (empty) page.
func Paginate(notes []models.Note, page, size int) Page {
	if size < 1 {
		size = DefaultPageSize
	}

	totalPages := (len(notes) + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * size
	end := start + size
	if start > len(notes) {
		start = len(notes)
	}
	if end > len(notes) {
		end = len(notes)
	}

	return Page{
		Notes:      notes[start:end],
		Number:     page,
		Size:       size,
		TotalPages: totalPages,
		Total:      len(notes),
	}
}

// Excerpt shortens content for list views.
func Excerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= ExcerptLength {
		return content
	}
	return string(runes[:ExcerptLength]) + "..."
}
