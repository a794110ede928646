package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"note-app/models"
)

// ==================== NOTE OPERATIONS ====================

const noteColumns = `id, COALESCE(title, '') AS title, COALESCE(content, '') AS content,
		       created_at, updated_at, image`

// InsertNote stores a new note and sets note.ID to the generated id.
func (r *Repository) InsertNote(note *models.Note) error {
	query := r.db.Rebind(`
		INSERT INTO notes (title, content, created_at, updated_at, image)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`)

	err := r.db.QueryRowx(query,
		note.Title, note.Content, note.CreatedAt, note.UpdatedAt, imageArg(note.Image),
	).Scan(&note.ID)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

// UpdateNote replaces title, content and image of an existing note and stamps updated_at.
// Returns sql.ErrNoRows when no note has the given id.
func (r *Repository) UpdateNote(note *models.Note) error {
	query := r.db.Rebind(`
		UPDATE notes
		SET title = ?, content = ?, image = ?, updated_at = ?
		WHERE id = ?
	`)

	result, err := r.db.Exec(query, note.Title, note.Content, imageArg(note.Image), note.UpdatedAt, note.ID)
	if err != nil {
		return fmt.Errorf("update note %d: %w", note.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update note %d: %w", note.ID, err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteNote removes a note. Deleting a missing id is not an error.
func (r *Repository) DeleteNote(id int64) error {
	if _, err := r.db.Exec(r.db.Rebind(`DELETE FROM notes WHERE id = ?`), id); err != nil {
		return fmt.Errorf("delete note %d: %w", id, err)
	}
	return nil
}

// GetNote returns the note with the given id, or nil if there is none.
func (r *Repository) GetNote(id int64) (*models.Note, error) {
	var note models.Note
	err := r.db.Get(&note, r.db.Rebind(`SELECT `+noteColumns+` FROM notes WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get note %d: %w", id, err)
	}
	return &note, nil
}

// ListNotes returns every note in storage order.
func (r *Repository) ListNotes() ([]models.Note, error) {
	return r.selectNotes("list notes", `SELECT `+noteColumns+` FROM notes ORDER BY id`)
}

// SearchByTitle matches notes whose title contains value, ignoring case.
func (r *Repository) SearchByTitle(value string) ([]models.Note, error) {
	return r.searchColumn("title", value)
}

// SearchByContent matches notes whose content contains value, ignoring case.
func (r *Repository) SearchByContent(value string) ([]models.Note, error) {
	return r.searchColumn("content", value)
}

// SearchByDateRange matches notes created or updated in [from, to).
func (r *Repository) SearchByDateRange(from, to time.Time) ([]models.Note, error) {
	return r.selectNotes("search notes by date", `
		SELECT `+noteColumns+`
		FROM notes
		WHERE (created_at >= ? AND created_at < ?)
		   OR (updated_at >= ? AND updated_at < ?)
		ORDER BY id
	`, from, to, from, to)
}

func (r *Repository) searchColumn(column, value string) ([]models.Note, error) {
	where := column + ` ILIKE ? ESCAPE '\'`
	if r.db.isSQLite() {
		where = `unicode_lower(COALESCE(` + column + `, '')) LIKE unicode_lower(?) ESCAPE '\'`
	}

	return r.selectNotes("search notes by "+column, `
		SELECT `+noteColumns+`
		FROM notes
		WHERE `+where+`
		ORDER BY id
	`, "%"+escapeLike(value)+"%")
}

func (r *Repository) selectNotes(op, query string, args ...interface{}) ([]models.Note, error) {
	notes := make([]models.Note, 0)
	if err := r.db.Select(&notes, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return notes, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// imageArg keeps a nil image as SQL NULL.
func imageArg(image []byte) interface{} {
	if image == nil {
		return nil
	}
	return image
}
