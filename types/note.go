package types

import (
	"Margin/models"
	"time"
)

type CreateNoteRequest struct {
	Content      string `json:"content" binding:"required"`
	ContextID    uint64 `json:"context_id"`
	FragmentTag  string `json:"fragment_tag"`
	ParentNoteID uint64 `json:"parent_note_id"`
}

type CreateNoteResponse struct {
	ID uint64 `json:"id"`
}

// ListNotesRequest mine / favorites / all 可以组合，all 需要 context_id
type ListNotesRequest struct {
	PageRequest
	Mine        bool   `form:"mine"`
	Favorites   bool   `form:"favorites"`
	All         bool   `form:"all"`
	ContextID   uint64 `form:"context_id"`
	FragmentTag string `form:"fragment_tag"`
}

type NoteItem struct {
	ID            uint64    `json:"id"`
	AuthorID      uint64    `json:"author_id"`
	Content       string    `json:"content"`
	ContextID     *uint64   `json:"context_id,omitempty"`
	FragmentTagID *uint64   `json:"fragment_tag_id,omitempty"`
	ParentNoteID  *uint64   `json:"parent_note_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type NoteDetail struct {
	NoteItem
	Tags       []string `json:"tags"`
	Mentions   []uint64 `json:"mentions"`
	Bookmarked bool     `json:"bookmarked"`
}

type ListNotesResponse struct {
	Rows  []*NoteItem `json:"rows"`
	Total int64       `json:"total"`
}

func NewNoteItem(n *models.Note) *NoteItem {
	return &NoteItem{
		ID:            n.ID,
		AuthorID:      n.AuthorID,
		Content:       n.Content,
		ContextID:     n.ContextID,
		FragmentTagID: n.FragmentTagID,
		ParentNoteID:  n.ParentNoteID,
		CreatedAt:     n.CreatedAt,
	}
}

type CreateContextRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
}

type ContextItem struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewContextItem(c *models.Context) *ContextItem {
	return &ContextItem{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
	}
}

type StartLiveSessionRequest struct {
	Metadata map[string]any `json:"metadata"`
}

type LiveSessionItem struct {
	ID        uint64    `json:"id"`
	NoteID    uint64    `json:"note_id"`
	AuthorID  uint64    `json:"author_id"`
	Status    int8      `json:"status"`
	Members   []uint64  `json:"members"`
	CreatedAt time.Time `json:"created_at"`
}

func NewLiveSessionItem(s *models.LiveSession) *LiveSessionItem {
	return &LiveSessionItem{
		ID:        s.ID,
		NoteID:    s.NoteID,
		AuthorID:  s.AuthorID,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
	}
}
