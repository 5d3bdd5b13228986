package service

import (
	"Margin/dao/cache"
	"Margin/models"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveSessionService_Start(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.seedUser(t, "carol")
	other := env.seedUser(t, "dave")

	note, err := env.notes.AddNote(ctx, &AddNoteOpt{Author: author, Content: "live"})
	require.NoError(t, err)

	_, err = env.sessions.StartLiveSession(ctx, note, other, nil)
	assert.ErrorIs(t, err, ErrNotSessionAuthor)

	session, err := env.sessions.StartLiveSession(ctx, note, author, map[string]any{"room": "a"})
	require.NoError(t, err)
	assert.Equal(t, models.LiveSessionStatusActive, session.Status)
	assert.JSONEq(t, `{"room":"a"}`, string(session.Metadata))
	assert.Equal(t, []string{cache.LiveSessionMembersKey(session.ID)}, env.redis.added)

	sessions, err := env.sessions.ListByNote(ctx, note.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, session.ID, sessions[0].ID)
}

func TestLiveSessionService_DeleteByAuthor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.seedUser(t, "carol")
	other := env.seedUser(t, "dave")

	note, err := env.notes.AddNote(ctx, &AddNoteOpt{Author: author, Content: "live"})
	require.NoError(t, err)
	session, err := env.sessions.StartLiveSession(ctx, note, author, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, env.sessions.DeleteLiveSessionByAuthor(ctx, session, other), ErrNotSessionAuthor)
	assert.Equal(t, int64(1), env.count(t, &models.LiveSession{}, "id = ?", session.ID))

	// redis 不可用时仍然删除会话
	env.redis.err = errors.New("connection refused")
	require.NoError(t, env.sessions.DeleteLiveSessionByAuthor(ctx, session, author))
	assert.Zero(t, env.count(t, &models.LiveSession{}, "id = ?", session.ID))
	assert.Equal(t, []string{cache.LiveSessionMembersKey(session.ID)}, env.redis.deleted)
	assert.Equal(t, []string{cache.LiveSessionEventsChannel}, env.redis.published)
}

func TestLiveSessionService_ListMembers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.redis.members = []string{"10", "11", "bad"}
	assert.Equal(t, []uint64{10, 11}, env.sessions.ListMembers(ctx, 1))

	env.redis.err = errors.New("connection refused")
	members := env.sessions.ListMembers(ctx, 1)
	assert.NotNil(t, members)
	assert.Empty(t, members)
}
