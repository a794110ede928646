package models

import "time"

// Note is the single persisted entity. A nil Image means the row stores NULL.
type Note struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	Image     []byte    `json:"-" db:"image"`
}

// HasImage reports whether an image is attached. Empty bytes still count as attached.
func (n Note) HasImage() bool {
	return n.Image != nil
}

type SearchKind string

const (
	SearchByDate  SearchKind = "Date"
	SearchByTitle SearchKind = "Title"
	SearchByText  SearchKind = "Text"
)

// SearchKinds lists the supported kinds in display order.
var SearchKinds = []SearchKind{SearchByDate, SearchByTitle, SearchByText}

type CreateNoteRequest struct {
	Title     string `json:"title" validate:"notblank,max=255"`
	Content   string `json:"content"`
	ImagePath string `json:"image_path"`
}

type UpdateNoteRequest struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Content         string `json:"content"`
	ImagePath       string `json:"image_path"`
	AppendClipboard bool   `json:"append_clipboard"`
}

type DateSearchRequest struct {
	Date string `json:"date" validate:"required,dateformat"`
}

// CreateResult is what a successful create hands back to the caller.
// ImageErr is set when an image was supplied but could not be attached.
type CreateResult struct {
	ID        int64
	CreatedAt time.Time
	UpdatedAt time.Time
	ImageErr  error
}

type UpdateResult struct {
	UpdatedAt time.Time
	ImageErr  error
}
