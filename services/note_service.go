package services

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"note-app/models"
	"note-app/pkg/imagecodec"
	"note-app/validator"
)

// NoteService handles business logic for notes
type NoteService struct {
	repo      NoteRepository
	clipboard Clipboard
	validator *validator.Validator
	logger    *slog.Logger

	loadImage ImageLoader
	now       func() time.Time
	location  *time.Location
}

type Option func(*NoteService)

// WithClock overrides the time source used for created_at and updated_at.
func WithClock(now func() time.Time) Option {
	return func(ns *NoteService) { ns.now = now }
}

// WithImageLoader overrides how image references are read.
func WithImageLoader(load ImageLoader) Option {
	return func(ns *NoteService) { ns.loadImage = load }
}

// WithLocation sets the time zone in which date searches interpret calendar days.
func WithLocation(loc *time.Location) Option {
	return func(ns *NoteService) { ns.location = loc }
}

// NewNoteService creates a new note service. clipboard may be nil.
func NewNoteService(repo NoteRepository, clipboard Clipboard, logger *slog.Logger, opts ...Option) *NoteService {
	if logger == nil {
		logger = slog.Default()
	}

	ns := &NoteService{
		repo:      repo,
		clipboard: clipboard,
		validator: validator.New(),
		logger:    logger,
		loadImage: imagecodec.Load,
		now:       time.Now,
		location:  time.Local,
	}
	for _, opt := range opts {
		opt(ns)
	}
	return ns
}

// Create validates and stores a new note.
// An image that cannot be attached does not fail the create; it is reported in ImageErr.
func (ns *NoteService) Create(req models.CreateNoteRequest) (*models.CreateResult, error) {
	if err := ns.validator.Validate(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && verrs.HasTag("title", "notblank") {
			return nil, ErrEmptyTitle
		}
		return nil, err
	}

	image, imageErr := ns.attachImage(req.ImagePath)

	now := ns.timestamp()
	note := &models.Note{
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
		Image:     image,
	}

	if err := ns.repo.InsertNote(note); err != nil {
		return nil, err
	}

	ns.logger.Info("note created", "id", note.ID, "has_image", note.HasImage())

	return &models.CreateResult{
		ID:        note.ID,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
		ImageErr:  imageErr,
	}, nil
}

// Update replaces title, content and image of a note wholesale.
// A missing image reference clears the stored image. The title is not re-validated.
func (ns *NoteService) Update(req models.UpdateNoteRequest) (*models.UpdateResult, error) {
	content := req.Content
	if req.AppendClipboard {
		if ns.clipboard == nil {
			return nil, ErrClipboardUnavailable
		}
		text, err := ns.clipboard.ReadText()
		if err != nil {
			return nil, err
		}
		content += text
	}

	image, imageErr := ns.attachImage(req.ImagePath)

	note := &models.Note{
		ID:        req.ID,
		Title:     req.Title,
		Content:   content,
		UpdatedAt: ns.timestamp(),
		Image:     image,
	}

	if err := ns.repo.UpdateNote(note); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", ErrNoteNotFound, req.ID)
		}
		return nil, err
	}

	ns.logger.Info("note updated", "id", note.ID, "has_image", note.HasImage(), "appended_clipboard", req.AppendClipboard)

	return &models.UpdateResult{
		UpdatedAt: note.UpdatedAt,
		ImageErr:  imageErr,
	}, nil
}

// Delete removes a note. Unknown ids are ignored.
func (ns *NoteService) Delete(id int64) error {
	if err := ns.repo.DeleteNote(id); err != nil {
		return err
	}
	ns.logger.Info("note deleted", "id", id)
	return nil
}

// Get retrieves a single note by id
func (ns *NoteService) Get(id int64) (*models.Note, error) {
	note, err := ns.repo.GetNote(id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, fmt.Errorf("%w: id %d", ErrNoteNotFound, id)
	}
	return note, nil
}

// Search finds notes by calendar date, title substring or content substring.
// Unknown kinds yield no results.
func (ns *NoteService) Search(kind models.SearchKind, value string) ([]models.Note, error) {
	switch kind {
	case models.SearchByDate:
		from, to, err := ns.dayBounds(value)
		if err != nil {
			return nil, err
		}
		return ns.repo.SearchByDateRange(from, to)
	case models.SearchByTitle:
		return ns.repo.SearchByTitle(value)
	case models.SearchByText:
		return ns.repo.SearchByContent(value)
	default:
		return []models.Note{}, nil
	}
}

// ListAll returns every stored note
func (ns *NoteService) ListAll() ([]models.Note, error) {
	return ns.repo.ListNotes()
}

// CopyText puts text on the clipboard
func (ns *NoteService) CopyText(text string) error {
	if ns.clipboard == nil {
		return ErrClipboardUnavailable
	}
	return ns.clipboard.WriteText(text)
}

func (ns *NoteService) attachImage(path string) ([]byte, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}

	image, err := ns.loadImage(path)
	if err != nil {
		ns.logger.Warn("image not attached", "path", path, "error", err)
		return nil, err
	}
	return image, nil
}

// dayBounds returns the UTC interval covering the calendar day in the service location.
func (ns *NoteService) dayBounds(value string) (time.Time, time.Time, error) {
	req := models.DateSearchRequest{Date: strings.TrimSpace(value)}
	if err := ns.validator.Validate(&req); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidSearchDate, value)
	}

	day, err := time.ParseInLocation(validator.DateLayout, req.Date, ns.location)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidSearchDate, value)
	}
	return day.UTC(), day.AddDate(0, 0, 1).UTC(), nil
}

// timestamp is the current time as stored: UTC, microsecond precision
func (ns *NoteService) timestamp() time.Time {
	return ns.now().UTC().Truncate(time.Microsecond)
}
