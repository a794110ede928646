package services

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"note-app/config"
	"note-app/database"
	"note-app/models"
	"note-app/pkg/clipboard"
	"note-app/pkg/imagecodec"
)

// stepClock advances by one second on every call.
type stepClock struct {
	t time.Time
}

func (c *stepClock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func setupSQLiteService(t *testing.T, clip Clipboard) (*NoteService, *stepClock) {
	t.Helper()

	db, err := database.New(config.DBConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "notes.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())

	clock := &stepClock{t: time.Date(2025, 10, 17, 8, 0, 0, 0, time.UTC)}
	service := NewNoteService(database.NewRepository(db), clip, discardLogger(),
		WithClock(clock.now),
		WithLocation(time.UTC),
	)
	return service, clock
}

func TestScenario_CreateUpdateDelete(t *testing.T) {
	service, _ := setupSQLiteService(t, nil)

	created, err := service.Create(models.CreateNoteRequest{Title: "Shopping", Content: "Buy milk"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))

	note, err := service.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shopping", note.Title)
	assert.Equal(t, "Buy milk", note.Content)
	assert.True(t, note.CreatedAt.Equal(note.UpdatedAt))

	updated, err := service.Update(models.UpdateNoteRequest{ID: created.ID, Title: "Shopping", Content: "Buy milk and eggs"})
	require.NoError(t, err)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	note, err = service.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk and eggs", note.Content)
	assert.True(t, note.UpdatedAt.After(note.CreatedAt))
	assert.True(t, note.CreatedAt.Equal(created.CreatedAt))
	assert.True(t, note.UpdatedAt.Equal(updated.UpdatedAt))

	require.NoError(t, service.Delete(created.ID))

	all, err := service.ListAll()
	require.NoError(t, err)
	for _, n := range all {
		assert.NotEqual(t, created.ID, n.ID)
	}

	_, err = service.Get(created.ID)
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestScenario_BlankTitleCreatesNothing(t *testing.T) {
	service, _ := setupSQLiteService(t, nil)

	result, err := service.Create(models.CreateNoteRequest{Title: "   ", Content: "orphan"})
	assert.ErrorIs(t, err, ErrEmptyTitle)
	assert.Nil(t, result)

	all, err := service.ListAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestScenario_UpdateMissingNote(t *testing.T) {
	service, _ := setupSQLiteService(t, nil)

	_, err := service.Update(models.UpdateNoteRequest{ID: 12345, Title: "nope"})
	assert.ErrorIs(t, err, ErrNoteNotFound)

	assert.NoError(t, service.Delete(12345))
}

func TestScenario_Images(t *testing.T) {
	service, _ := setupSQLiteService(t, nil)
	dir := t.TempDir()

	src := image.NewRGBA(image.Rect(0, 0, 5, 4))
	for x := 0; x < 5; x++ {
		src.Set(x, 1, color.RGBA{R: 255, A: 255})
	}

	var pngBuf, jpegBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, src))
	require.NoError(t, jpeg.Encode(&jpegBuf, src, nil))

	pngPath := filepath.Join(dir, "pic.png")
	jpegPath := filepath.Join(dir, "photo.jpeg")
	bmpPath := filepath.Join(dir, "scan.bmp")
	require.NoError(t, os.WriteFile(pngPath, pngBuf.Bytes(), 0o644))
	require.NoError(t, os.WriteFile(jpegPath, jpegBuf.Bytes(), 0o644))
	require.NoError(t, os.WriteFile(bmpPath, []byte("BM"), 0o644))

	t.Run("PNG round-trips byte-identical", func(t *testing.T) {
		created, err := service.Create(models.CreateNoteRequest{Title: "png", ImagePath: pngPath})
		require.NoError(t, err)
		require.NoError(t, created.ImageErr)

		note, err := service.Get(created.ID)
		require.NoError(t, err)
		assert.Equal(t, pngBuf.Bytes(), note.Image)
	})

	t.Run("JPEG is stored as PNG", func(t *testing.T) {
		created, err := service.Create(models.CreateNoteRequest{Title: "jpeg", ImagePath: jpegPath})
		require.NoError(t, err)

		note, err := service.Get(created.ID)
		require.NoError(t, err)

		img, format, err := imagecodec.Decode(note.Image)
		require.NoError(t, err)
		assert.Equal(t, "png", format)
		assert.Equal(t, src.Bounds(), img.Bounds())
	})

	t.Run("Invalid format creates note without image", func(t *testing.T) {
		created, err := service.Create(models.CreateNoteRequest{Title: "bmp", ImagePath: bmpPath})
		require.NoError(t, err)
		assert.ErrorIs(t, created.ImageErr, imagecodec.ErrInvalidFormat)

		note, err := service.Get(created.ID)
		require.NoError(t, err)
		assert.False(t, note.HasImage())
	})

	t.Run("Update with invalid format saves the note without image", func(t *testing.T) {
		created, err := service.Create(models.CreateNoteRequest{Title: "swap", ImagePath: pngPath})
		require.NoError(t, err)

		updated, err := service.Update(models.UpdateNoteRequest{ID: created.ID, Title: "swap", Content: "now a bmp", ImagePath: bmpPath})
		require.NoError(t, err)
		assert.ErrorIs(t, updated.ImageErr, imagecodec.ErrInvalidFormat)

		note, err := service.Get(created.ID)
		require.NoError(t, err)
		assert.Equal(t, "now a bmp", note.Content)
		assert.Nil(t, note.Image)
	})

	t.Run("Update without image path drops the existing image", func(t *testing.T) {
		created, err := service.Create(models.CreateNoteRequest{Title: "keep?", ImagePath: pngPath})
		require.NoError(t, err)

		_, err = service.Update(models.UpdateNoteRequest{ID: created.ID, Title: "keep?", Content: "edited"})
		require.NoError(t, err)

		note, err := service.Get(created.ID)
		require.NoError(t, err)
		assert.Nil(t, note.Image)
	})
}

func TestScenario_Search(t *testing.T) {
	service, clock := setupSQLiteService(t, nil)

	meeting, err := service.Create(models.CreateNoteRequest{Title: "Weekly Meeting Notes", Content: "agenda"})
	require.NoError(t, err)
	_, err = service.Create(models.CreateNoteRequest{Title: "Groceries", Content: "Buy Milk"})
	require.NoError(t, err)

	notes, err := service.Search(models.SearchByTitle, "Meeting")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, meeting.ID, notes[0].ID)

	notes, err = service.Search(models.SearchByText, "milk")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Groceries", notes[0].Title)

	notes, err = service.Search(models.SearchByDate, "2025-10-17")
	require.NoError(t, err)
	assert.Len(t, notes, 2)

	notes, err = service.Search(models.SearchByDate, "2024-01-01")
	require.NoError(t, err)
	assert.Empty(t, notes)

	// An update two days later makes the note match that day too
	clock.t = clock.t.AddDate(0, 0, 2)
	_, err = service.Update(models.UpdateNoteRequest{ID: meeting.ID, Title: "Weekly Meeting Notes", Content: "minutes"})
	require.NoError(t, err)

	notes, err = service.Search(models.SearchByDate, "2025-10-19")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, meeting.ID, notes[0].ID)

	notes, err = service.Search(models.SearchByDate, "2025-10-17")
	require.NoError(t, err)
	assert.Len(t, notes, 2)
}

func TestScenario_AppendClipboard(t *testing.T) {
	clip := &clipboard.Memory{}
	service, _ := setupSQLiteService(t, clip)

	created, err := service.Create(models.CreateNoteRequest{Title: "Links", Content: "Read: "})
	require.NoError(t, err)

	require.NoError(t, clip.WriteText("https://go.dev"))
	_, err = service.Update(models.UpdateNoteRequest{ID: created.ID, Title: "Links", Content: "Read: ", AppendClipboard: true})
	require.NoError(t, err)

	note, err := service.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Read: https://go.dev", note.Content)
}

func TestScenario_SearchNonASCIITitle(t *testing.T) {
	service, _ := setupSQLiteService(t, nil)

	created, err := service.Create(models.CreateNoteRequest{Title: "Встреча команды", Content: "Обсудить ПЛАН"})
	require.NoError(t, err)

	notes, err := service.Search(models.SearchByTitle, "встреча")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, created.ID, notes[0].ID)

	notes, err = service.Search(models.SearchByText, "план")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, created.ID, notes[0].ID)
}
