package app

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"note-app/services"
)

func newTestApp(buf *bytes.Buffer) *App {
	logger := slog.New(slog.NewTextHandler(buf, nil))
	return New(nil, nil, logger)
}

func TestDispatch(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
		wantMsg   string
	}{
		{"Success", nil, "level=INFO", "action completed"},
		{"User error", services.ErrEmptyTitle, "level=WARN", "action rejected"},
		{"Storage failure", errors.New("connection refused"), "level=ERROR", "action failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			a := newTestApp(&buf)

			err := a.Dispatch("create", func(*services.NoteService) error { return tt.err }, slog.Int64("id", 7))

			assert.Equal(t, tt.err, err)
			out := buf.String()
			assert.Contains(t, out, tt.wantLevel)
			assert.Contains(t, out, tt.wantMsg)
			assert.Contains(t, out, "action=create")
			assert.Contains(t, out, "action_id=")
			assert.Contains(t, out, "id=7")
		})
	}
}
