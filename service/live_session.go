package service

import (
	"Margin/dao"
	"Margin/dao/cache"
	"Margin/models"
	"Margin/pkg/log"
	"Margin/pkg/snowflake"
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

var _ ILiveSessionService = (*LiveSessionService)(nil)

type ILiveSessionService interface {
	StartLiveSession(ctx context.Context, note *models.Note, user *models.User, metadata map[string]any) (*models.LiveSession, error)
	ListByNote(ctx context.Context, noteID uint64) ([]*models.LiveSession, error)
	ListMembers(ctx context.Context, sessionID uint64) []uint64
	DeleteLiveSessionByAuthor(ctx context.Context, session *models.LiveSession, user *models.User) error
}

type LiveSessionService struct {
	LiveSessionDAO *dao.LiveSessionDAO
	Storage        *cache.LiveSessionStorage
}

// StartLiveSession 只有笔记作者可以发起
func (s *LiveSessionService) StartLiveSession(ctx context.Context, note *models.Note, user *models.User, metadata map[string]any) (*models.LiveSession, error) {
	if note == nil {
		return nil, ErrNoteRequired
	}
	if user == nil {
		return nil, ErrUserRequired
	}
	if !note.IsAuthoredBy(user) {
		return nil, ErrNotSessionAuthor
	}

	session := &models.LiveSession{
		ID:       snowflake.GenID(),
		NoteID:   note.ID,
		AuthorID: user.ID,
		Status:   models.LiveSessionStatusActive,
	}
	if len(metadata) > 0 {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return nil, fmt.Errorf("marshal session metadata: %w", err)
		}
		session.Metadata = datatypes.JSON(raw)
	}

	if err := s.LiveSessionDAO.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create live session: %w", err)
	}

	if err := s.Storage.Join(ctx, session.ID, user.ID); err != nil {
		log.L.Warn("add live session member failed", zap.Uint64("session_id", session.ID), zap.Error(err))
	}

	log.L.Info("live session started", zap.Uint64("session_id", session.ID), zap.Uint64("note_id", note.ID))
	return session, nil
}

func (s *LiveSessionService) ListByNote(ctx context.Context, noteID uint64) ([]*models.LiveSession, error) {
	return s.LiveSessionDAO.ListByNoteID(ctx, noteID)
}

// ListMembers redis 出错时返回空列表
func (s *LiveSessionService) ListMembers(ctx context.Context, sessionID uint64) []uint64 {
	members, err := s.Storage.Members(ctx, sessionID)
	if err != nil {
		log.L.Warn("list live session members failed", zap.Uint64("session_id", sessionID), zap.Error(err))
		return []uint64{}
	}
	return members
}

// DeleteLiveSessionByAuthor 清理 redis 中的实时状态后删除会话
// redis 失败只记日志，数据库才是准的
func (s *LiveSessionService) DeleteLiveSessionByAuthor(ctx context.Context, session *models.LiveSession, user *models.User) error {
	if session == nil {
		return nil
	}
	if user == nil {
		return ErrUserRequired
	}
	if session.AuthorID != user.ID {
		return ErrNotSessionAuthor
	}

	if err := s.Storage.Clear(ctx, session.ID); err != nil {
		log.L.Warn("delete live session members failed", zap.Uint64("session_id", session.ID), zap.Error(err))
	}
	if err := s.Storage.PublishEnded(ctx, session.ID, session.NoteID); err != nil {
		log.L.Warn("publish live session ended failed", zap.Uint64("session_id", session.ID), zap.Error(err))
	}

	if err := s.LiveSessionDAO.DeleteByID(ctx, session.ID); err != nil {
		return fmt.Errorf("delete live session: %w", err)
	}

	log.L.Info("live session ended", zap.Uint64("session_id", session.ID), zap.Uint64("note_id", session.NoteID))
	return nil
}
