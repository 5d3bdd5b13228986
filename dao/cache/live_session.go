package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	LiveSessionEventsChannel = "live:session:events"
	LiveSessionEventEnded    = "ended"
)

// LiveSessionEvent 发布到 LiveSessionEventsChannel 的消息
type LiveSessionEvent struct {
	Event     string `json:"event"`
	SessionID uint64 `json:"session_id"`
	NoteID    uint64 `json:"note_id"`
}

// LiveSessionStorage 实时会话在 redis 中的成员与事件
type LiveSessionStorage struct {
	redis redis.Cmdable
}

func NewLiveSessionStorage(rds redis.Cmdable) *LiveSessionStorage {
	return &LiveSessionStorage{redis: rds}
}

func LiveSessionMembersKey(sessionID uint64) string {
	return fmt.Sprintf("live:session:%d:members", sessionID)
}

// Join 加入会话成员
func (s *LiveSessionStorage) Join(ctx context.Context, sessionID, uid uint64) error {
	return s.redis.SAdd(ctx, LiveSessionMembersKey(sessionID), uid).Err()
}

// Members 会话当前成员
func (s *LiveSessionStorage) Members(ctx context.Context, sessionID uint64) ([]uint64, error) {
	items, err := s.redis.SMembers(ctx, LiveSessionMembersKey(sessionID)).Result()
	if err != nil {
		return nil, err
	}

	uids := make([]uint64, 0, len(items))
	for _, item := range items {
		if uid, err := strconv.ParseUint(item, 10, 64); err == nil {
			uids = append(uids, uid)
		}
	}
	return uids, nil
}

// Clear 删除会话成员集合
func (s *LiveSessionStorage) Clear(ctx context.Context, sessionID uint64) error {
	return s.redis.Del(ctx, LiveSessionMembersKey(sessionID)).Err()
}

// PublishEnded 通知订阅方会话已结束
func (s *LiveSessionStorage) PublishEnded(ctx context.Context, sessionID, noteID uint64) error {
	payload, err := json.Marshal(LiveSessionEvent{
		Event:     LiveSessionEventEnded,
		SessionID: sessionID,
		NoteID:    noteID,
	})
	if err != nil {
		return err
	}
	return s.redis.Publish(ctx, LiveSessionEventsChannel, payload).Err()
}
