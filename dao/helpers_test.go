package dao

import (
	"Margin/models"
	"Margin/pkg/database/dbtest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return dbtest.New(t, models.Tables()...)
}

func ptr[T any](v T) *T { return &v }

func seedNote(t *testing.T, db *gorm.DB, id, author uint64, contextID *uint64, createdAt time.Time) *models.Note {
	t.Helper()
	note := &models.Note{
		ID:        id,
		AuthorID:  author,
		Content:   "note",
		ContextID: contextID,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(note).Error)
	return note
}
