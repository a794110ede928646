package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestCreateNoteRequest struct {
	Title   string `json:"title" validate:"notblank,max=255"`
	Content string `json:"content"`
}

type TestDateSearchRequest struct {
	Date string `json:"date" validate:"required,dateformat"`
}

func TestValidator_CreateNote(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		req       TestCreateNoteRequest
		wantError bool
		errorMsg  string
	}{
		{
			name:      "Valid note request",
			req:       TestCreateNoteRequest{Title: "Shopping", Content: "Buy milk"},
			wantError: false,
		},
		{
			name:      "Empty content is valid",
			req:       TestCreateNoteRequest{Title: "Shopping"},
			wantError: false,
		},
		{
			name:      "Empty title",
			req:       TestCreateNoteRequest{Title: "", Content: "Buy milk"},
			wantError: true,
			errorMsg:  "title cannot be empty",
		},
		{
			name:      "Whitespace-only title",
			req:       TestCreateNoteRequest{Title: " \t\n ", Content: "Buy milk"},
			wantError: true,
			errorMsg:  "title cannot be empty",
		},
		{
			name:      "Title too long",
			req:       TestCreateNoteRequest{Title: strings.Repeat("a", 256)},
			wantError: true,
			errorMsg:  "title must be at most 255 characters",
		},
		{
			name:      "Title at limit counts characters not bytes",
			req:       TestCreateNoteRequest{Title: strings.Repeat("ж", 255)},
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.req)

			if tt.wantError {
				assert.Error(t, err)
				if tt.errorMsg != "" {
					assert.Contains(t, err.Error(), tt.errorMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_DateSearch(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		date      string
		wantError bool
	}{
		{"Valid date", "2025-10-17", false},
		{"Surrounding whitespace", " 2025-10-17 ", false},
		{"Missing date", "", true},
		{"Wrong order", "17-10-2025", true},
		{"Impossible day", "2025-02-30", true},
		{"Free text", "yesterday", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&TestDateSearchRequest{Date: tt.date})
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidationErrors_HasTag(t *testing.T) {
	v := New()

	err := v.Validate(&TestCreateNoteRequest{Title: "   "})
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 1)
	assert.True(t, verrs.HasTag("title", "notblank"))
	assert.False(t, verrs.HasTag("title", "max"))
	assert.Equal(t, "   ", verrs[0].Value)
}
