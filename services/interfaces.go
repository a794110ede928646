package services

import (
	"time"

	"note-app/models"
)

// NoteRepository defines the interface for note data access
type NoteRepository interface {
	InsertNote(note *models.Note) error
	UpdateNote(note *models.Note) error
	DeleteNote(id int64) error
	GetNote(id int64) (*models.Note, error)
	ListNotes() ([]models.Note, error)
	SearchByTitle(value string) ([]models.Note, error)
	SearchByContent(value string) ([]models.Note, error)
	SearchByDateRange(from, to time.Time) ([]models.Note, error)
}

// Clipboard is the desktop clipboard as seen by the note service
type Clipboard interface {
	ReadText() (string, error)
	WriteText(text string) error
}

// ImageLoader turns an image reference into the bytes to persist
type ImageLoader func(path string) ([]byte, error)
